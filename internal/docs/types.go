package docs

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jcdickinson/jsdocgen/internal/jsdoc"
)

// DocType tags an entry for the renderer.
type DocType string

const (
	DocClass    DocType = "class"
	DocTypedef  DocType = "typedef"
	DocEnum     DocType = "enum"
	DocFunction DocType = "func"
)

// Entry is a single render-ready element of the model.
type Entry interface {
	// Key is the longname used for ordering and as the anchor id.
	Key() string
	Type() DocType
}

// ReferenceSet holds the longnames that resolve to internal anchors.
type ReferenceSet map[string]struct{}

// NewReferenceSet builds a set from names.
func NewReferenceSet(names ...string) ReferenceSet {
	s := make(ReferenceSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is eligible for internal linking.
func (s ReferenceSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the longnames in ascending order.
func (s ReferenceSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s ReferenceSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s ReferenceSet) MarshalYAML() (interface{}, error) {
	return s.Sorted(), nil
}

// ParamDoc is a parameter with its type already resolved.
type ParamDoc struct {
	Name        string `json:"name" yaml:"name"`
	Optional    bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	TypeRef     string `json:"typeRef,omitempty" yaml:"typeRef,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PropertyDoc is a class member or typedef property with its type resolved.
type PropertyDoc struct {
	Name        string `json:"name" yaml:"name"`
	Longname    string `json:"longname,omitempty" yaml:"longname,omitempty"`
	Optional    bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	TypeRef     string `json:"typeRef,omitempty" yaml:"typeRef,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Scope       string `json:"scope,omitempty" yaml:"scope,omitempty"`
}

// Constructor is the selected constructor of a class.
type Constructor struct {
	Name             string     `json:"name" yaml:"name"`
	Signature        string     `json:"signature" yaml:"signature"`
	Description      string     `json:"description,omitempty" yaml:"description,omitempty"`
	ShortDescription string     `json:"shortDescription,omitempty" yaml:"shortDescription,omitempty"`
	Params           []ParamDoc `json:"params,omitempty" yaml:"params,omitempty"`
	Examples         []string   `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Method is a function member of a class.
type Method struct {
	Name        string     `json:"name" yaml:"name"`
	Longname    string     `json:"longname" yaml:"longname"`
	Signature   string     `json:"signature" yaml:"signature"`
	ReturnValue string     `json:"returnValue,omitempty" yaml:"returnValue,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Scope       string     `json:"scope,omitempty" yaml:"scope,omitempty"`
	Inherited   bool       `json:"inherited,omitempty" yaml:"inherited,omitempty"`
	Inherits    string     `json:"inherits,omitempty" yaml:"inherits,omitempty"`
	Params      []ParamDoc `json:"params,omitempty" yaml:"params,omitempty"`
	Examples    []string   `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// ClassEntry documents a class with its members.
type ClassEntry struct {
	DocType     DocType            `json:"docType" yaml:"docType"`
	Name        string             `json:"name" yaml:"name"`
	Longname    string             `json:"longname" yaml:"longname"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  *jsdoc.Deprecation `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Constructor *Constructor       `json:"constructor,omitempty" yaml:"constructor,omitempty"`
	Methods     []Method           `json:"methods" yaml:"methods"`
	Parents     []string           `json:"parents" yaml:"parents"`
	Properties  []PropertyDoc      `json:"properties" yaml:"properties"`
	Virtual     *bool              `json:"virtual,omitempty" yaml:"virtual,omitempty"`
	Examples    []string           `json:"examples,omitempty" yaml:"examples,omitempty"`
}

func (c *ClassEntry) Key() string   { return c.Longname }
func (c *ClassEntry) Type() DocType { return DocClass }

// TypedefEntry documents either a callback or a data-shape typedef.
type TypedefEntry struct {
	DocType     DocType            `json:"docType" yaml:"docType"`
	Name        string             `json:"name" yaml:"name"`
	Longname    string             `json:"longname" yaml:"longname"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  *jsdoc.Deprecation `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Signature   string             `json:"signature,omitempty" yaml:"signature,omitempty"`
	ReturnValue string             `json:"returnValue,omitempty" yaml:"returnValue,omitempty"`
	Params      []ParamDoc         `json:"params,omitempty" yaml:"params,omitempty"`
	Properties  []PropertyDoc      `json:"properties,omitempty" yaml:"properties,omitempty"`
	Parents     []string           `json:"parents" yaml:"parents"`
}

func (t *TypedefEntry) Key() string   { return t.Longname }
func (t *TypedefEntry) Type() DocType { return DocTypedef }

// IsCallback reports whether the typedef describes a function.
func (t *TypedefEntry) IsCallback() bool { return t.Signature != "" }

// EnumValue is one value of an enum.
type EnumValue struct {
	Name         string          `json:"name" yaml:"name"`
	Description  string          `json:"description,omitempty" yaml:"description,omitempty"`
	DefaultValue json.RawMessage `json:"defaultValue,omitempty" yaml:"-"`
}

// MarshalYAML emits DefaultValue as the decoded JSON value.
func (v EnumValue) MarshalYAML() (interface{}, error) {
	out := struct {
		Name         string      `yaml:"name"`
		Description  string      `yaml:"description,omitempty"`
		DefaultValue interface{} `yaml:"defaultValue,omitempty"`
	}{Name: v.Name, Description: v.Description}
	if len(v.DefaultValue) > 0 {
		if err := json.Unmarshal(v.DefaultValue, &out.DefaultValue); err != nil {
			return nil, fmt.Errorf("decoding default value of %s: %w", v.Name, err)
		}
	}
	return out, nil
}

// EnumEntry documents an enum member record.
type EnumEntry struct {
	DocType     DocType            `json:"docType" yaml:"docType"`
	Name        string             `json:"name" yaml:"name"`
	Longname    string             `json:"longname" yaml:"longname"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  *jsdoc.Deprecation `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Values      []EnumValue        `json:"values,omitempty" yaml:"values,omitempty"`
}

func (e *EnumEntry) Key() string   { return e.Longname }
func (e *EnumEntry) Type() DocType { return DocEnum }

// FunctionEntry documents a static function.
type FunctionEntry struct {
	DocType     DocType            `json:"docType" yaml:"docType"`
	Name        string             `json:"name" yaml:"name"`
	Longname    string             `json:"longname" yaml:"longname"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  *jsdoc.Deprecation `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Signature   string             `json:"signature" yaml:"signature"`
	ReturnValue string             `json:"returnValue,omitempty" yaml:"returnValue,omitempty"`
	Params      []ParamDoc         `json:"params,omitempty" yaml:"params,omitempty"`
	Examples    []string           `json:"examples,omitempty" yaml:"examples,omitempty"`
}

func (f *FunctionEntry) Key() string   { return f.Longname }
func (f *FunctionEntry) Type() DocType { return DocFunction }
