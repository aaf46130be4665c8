package jsdoc

import (
	"encoding/json"
	"fmt"
)

// Kind is the JSDoc doclet kind of a record.
type Kind string

const (
	KindClass       Kind = "class"
	KindConstructor Kind = "constructor"
	KindFunction    Kind = "function"
	KindMember      Kind = "member"
	KindTypedef     Kind = "typedef"
)

// Known reports whether k is one of the kinds the documentation model uses.
// Other JSDoc kinds (module, namespace, package, event...) are decoded but ignored.
func (k Kind) Known() bool {
	switch k {
	case KindClass, KindConstructor, KindFunction, KindMember, KindTypedef:
		return true
	}
	return false
}

// TypeExpr is the JSDoc {names: [...]} type block.
type TypeExpr struct {
	Names []string `json:"names"`
}

// Param is a single @param entry.
type Param struct {
	Name        string    `json:"name"`
	Optional    bool      `json:"optional"`
	Type        *TypeExpr `json:"type"`
	Description string    `json:"description"`
}

// TypeNames returns the declared type names, nil when the param is untyped.
func (p Param) TypeNames() []string {
	if p.Type == nil {
		return nil
	}
	return p.Type.Names
}

// Return is a single @returns entry.
type Return struct {
	Type        *TypeExpr `json:"type"`
	Description string    `json:"description"`
}

// Property is a @property entry on a typedef, enum or virtual class.
type Property struct {
	Name         string          `json:"name"`
	Optional     bool            `json:"optional"`
	Type         *TypeExpr       `json:"type"`
	Description  string          `json:"description"`
	DefaultValue json.RawMessage `json:"defaultvalue"`
}

// Deprecation holds the @deprecated tag, which JSDoc emits either as a
// boolean or as the deprecation message.
type Deprecation struct {
	Deprecated bool
	Message    string
}

func (d *Deprecation) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		d.Deprecated = flag
		return nil
	}
	var msg string
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("deprecated must be a boolean or a string: %w", err)
	}
	d.Deprecated = true
	d.Message = msg
	return nil
}

func (d Deprecation) MarshalJSON() ([]byte, error) {
	if d.Message != "" {
		return json.Marshal(d.Message)
	}
	return json.Marshal(d.Deprecated)
}

// MarshalYAML mirrors MarshalJSON.
func (d Deprecation) MarshalYAML() (interface{}, error) {
	if d.Message != "" {
		return d.Message, nil
	}
	return d.Deprecated, nil
}

// Record is a single JSDoc doclet.
//
// Params, Returns and Properties distinguish absence from emptiness: a key
// present in the JSON (even as []) decodes to a non-nil slice.
type Record struct {
	Kind        Kind         `json:"kind"`
	Longname    string       `json:"longname"`
	Name        string       `json:"name"`
	MemberOf    string       `json:"memberof"`
	Scope       string       `json:"scope"`
	Description string       `json:"description"`
	Params      []Param      `json:"params"`
	Returns     []Return     `json:"returns"`
	Properties  []Property   `json:"properties"`
	Type        *TypeExpr    `json:"type"`
	Inherited   bool         `json:"inherited"`
	Inherits    string       `json:"inherits"`
	Augments    []string     `json:"augments"`
	IsEnum      bool         `json:"isEnum"`
	Deprecated  *Deprecation `json:"deprecated"`
	Virtual     *bool        `json:"virtual"`
	Examples    []string     `json:"examples"`
}

// TypeNames returns the member's declared type names.
func (r *Record) TypeNames() []string {
	if r.Type == nil {
		return nil
	}
	return r.Type.Names
}

// HasParams reports whether the record declared a params list.
func (r *Record) HasParams() bool { return r.Params != nil }

// HasReturns reports whether the record declared a returns list.
func (r *Record) HasReturns() bool { return r.Returns != nil }
