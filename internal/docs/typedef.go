package docs

import (
	"strings"
)

// Typedef assembles a callback or data-shape typedef. It returns nil when
// the longname is not a known typedef.
func (b *Builder) Typedef(longname string) *TypedefEntry {
	td, ok := b.idx.Typedefs.Get(longname)
	if !ok {
		return nil
	}

	entry := &TypedefEntry{
		DocType:     DocTypedef,
		Name:        td.Name,
		Longname:    td.Longname,
		Description: td.Description,
		Deprecated:  td.Deprecated,
		Parents:     []string{},
	}
	for _, p := range td.Properties {
		entry.Properties = append(entry.Properties, b.property(p))
	}

	if td.HasParams() {
		entry.Signature = b.res.CallbackSignature(td)
		entry.Params = b.res.ParamDocs(td.Params)
		if td.HasReturns() {
			entry.ReturnValue = b.res.ReturnValue(td.Returns)
		}
		return entry
	}

	for _, parent := range td.Augments {
		entry.Parents = append(entry.Parents, b.res.Resolve(parent))
	}
	// The first line of a data-shape description repeats the typedef header.
	lines := strings.Split(td.Description, "\n")
	if len(lines) > 1 {
		entry.Description = lines[1]
	} else {
		entry.Description = ""
	}
	return entry
}

// Enum tags an enum record for the renderer.
func (b *Builder) Enum(longname string) *EnumEntry {
	e, ok := b.idx.Enums.Get(longname)
	if !ok {
		return nil
	}
	entry := &EnumEntry{
		DocType:     DocEnum,
		Name:        e.Name,
		Longname:    e.Longname,
		Description: e.Description,
		Deprecated:  e.Deprecated,
	}
	for _, p := range e.Properties {
		entry.Values = append(entry.Values, EnumValue{
			Name:         p.Name,
			Description:  p.Description,
			DefaultValue: p.DefaultValue,
		})
	}
	return entry
}

// Function assembles a static function entry.
func (b *Builder) Function(longname string) *FunctionEntry {
	fn, ok := b.idx.Functions.Get(longname)
	if !ok {
		return nil
	}
	entry := &FunctionEntry{
		DocType:     DocFunction,
		Name:        fn.Name,
		Longname:    fn.Longname,
		Description: fn.Description,
		Deprecated:  fn.Deprecated,
		Signature:   b.res.MethodSignature(fn),
		Params:      b.res.ParamDocs(fn.Params),
		Examples:    fn.Examples,
	}
	if fn.HasReturns() {
		entry.ReturnValue = b.res.ReturnValue(fn.Returns)
	}
	return entry
}
