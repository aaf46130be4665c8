package docs

import (
	"strings"

	"github.com/jcdickinson/jsdocgen/internal/jsdoc"
)

// Builder assembles entries from an index. It holds no state beyond the
// index and resolver, so building the same entry twice gives equal results.
type Builder struct {
	idx *Index
	res *Resolver
}

// NewBuilder returns a builder resolving against idx.References.
func NewBuilder(idx *Index, cfg LinkConfig) *Builder {
	return &Builder{idx: idx, res: NewResolver(idx.References, cfg)}
}

// Resolver exposes the builder's resolver to renderers.
func (b *Builder) Resolver() *Resolver { return b.res }

// Class assembles the entry for a class longname. It returns nil when the
// longname is not a known class.
func (b *Builder) Class(longname string) *ClassEntry {
	class, ok := b.idx.Classes.Get(longname)
	if !ok {
		return nil
	}
	members := b.idx.Members[longname]

	entry := &ClassEntry{
		DocType:     DocClass,
		Name:        class.Name,
		Longname:    class.Longname,
		Description: class.Description,
		Deprecated:  class.Deprecated,
		Constructor: b.constructor(members),
		Methods:     []Method{},
		Parents:     []string{},
		Properties:  []PropertyDoc{},
		Virtual:     class.Virtual,
	}
	if strings.Contains(class.Longname, "<anonymous>") {
		entry.Longname = class.Name
	}

	for _, m := range members {
		switch m.Kind {
		case jsdoc.KindFunction:
			entry.Methods = append(entry.Methods, b.method(m))
		case jsdoc.KindMember:
			entry.Properties = append(entry.Properties, b.memberProperty(m))
		}
	}
	entry.Parents = b.inheritedParents(members)

	// Classes declared without code carry their properties on the class record.
	for _, p := range class.Properties {
		entry.Properties = append(entry.Properties, b.property(p))
	}

	if entry.Constructor != nil && len(entry.Constructor.Examples) > 0 {
		entry.Examples = entry.Constructor.Examples
	} else {
		entry.Examples = class.Examples
	}

	return entry
}

// constructor picks the first constructor among members.
func (b *Builder) constructor(members []*jsdoc.Record) *Constructor {
	for _, m := range members {
		if m.Kind != jsdoc.KindConstructor {
			continue
		}
		return &Constructor{
			Name:             m.Name,
			Signature:        b.res.MethodSignature(m),
			Description:      m.Description,
			ShortDescription: firstLine(m.Description),
			Params:           b.res.ParamDocs(m.Params),
			Examples:         m.Examples,
		}
	}
	return nil
}

func (b *Builder) method(m *jsdoc.Record) Method {
	method := Method{
		Name:        m.Name,
		Longname:    m.Longname,
		Signature:   b.res.MethodSignature(m),
		Description: m.Description,
		Scope:       m.Scope,
		Inherited:   m.Inherited,
		Inherits:    m.Inherits,
		Params:      b.res.ParamDocs(m.Params),
		Examples:    m.Examples,
	}
	if m.HasReturns() {
		method.ReturnValue = b.res.ReturnValue(m.Returns)
	}
	return method
}

// inheritedParents reconstructs parent classes from the Owner#member
// provenance of inherited methods. It only sees what the annotations record,
// so a parent whose methods are all overridden is missing.
func (b *Builder) inheritedParents(members []*jsdoc.Record) []string {
	parents := []string{}
	seen := make(map[string]bool)
	for _, m := range members {
		if m.Kind != jsdoc.KindFunction || !m.Inherited {
			continue
		}
		owner, _, _ := strings.Cut(m.Inherits, "#")
		if owner == "" || seen[owner] {
			continue
		}
		seen[owner] = true
		parents = append(parents, b.res.Resolve(owner))
	}
	return parents
}

func (b *Builder) memberProperty(m *jsdoc.Record) PropertyDoc {
	p := PropertyDoc{
		Name:        m.Name,
		Longname:    m.Longname,
		Description: m.Description,
		Scope:       m.Scope,
	}
	if m.Type != nil {
		p.TypeRef = b.res.ResolveAll(m.Type.Names)
	}
	return p
}

func (b *Builder) property(prop jsdoc.Property) PropertyDoc {
	p := PropertyDoc{
		Name:        prop.Name,
		Optional:    prop.Optional,
		Description: prop.Description,
	}
	if prop.Type != nil {
		p.TypeRef = b.res.ResolveAll(prop.Type.Names)
	}
	return p
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
