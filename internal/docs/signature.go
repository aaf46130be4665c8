package docs

import (
	"strings"

	"github.com/jcdickinson/jsdocgen/internal/jsdoc"
)

// NamedParams formats each parameter as name[?][:types].
// Untyped parameters render as their bare name.
func (r *Resolver) NamedParams(params []jsdoc.Param) []string {
	named := make([]string, 0, len(params))
	for _, p := range params {
		s := p.Name
		if p.Optional {
			s += "?"
		}
		if p.Type != nil {
			s += ":" + r.ResolveAll(p.Type.Names)
		}
		named = append(named, s)
	}
	return named
}

// MethodSignature renders a constructor or method as name(p1, p2).
func (r *Resolver) MethodSignature(rec *jsdoc.Record) string {
	return rec.Name + "(" + strings.Join(r.NamedParams(rec.Params), ", ") + ")"
}

// CallbackSignature renders a callback typedef as function(p1,p2).
func (r *Resolver) CallbackSignature(rec *jsdoc.Record) string {
	return "function(" + strings.Join(r.NamedParams(rec.Params), ",") + ")"
}

// ReturnValue resolves every type name of every return entry, joined with "|".
func (r *Resolver) ReturnValue(returns []jsdoc.Return) string {
	var types []string
	for _, ret := range returns {
		if ret.Type == nil {
			continue
		}
		for _, name := range ret.Type.Names {
			types = append(types, r.Resolve(name))
		}
	}
	return strings.Join(types, "|")
}

// ParamDocs resolves parameters for the renderer's parameter table.
func (r *Resolver) ParamDocs(params []jsdoc.Param) []ParamDoc {
	if len(params) == 0 {
		return nil
	}
	docs := make([]ParamDoc, len(params))
	for i, p := range params {
		docs[i] = ParamDoc{
			Name:        p.Name,
			Optional:    p.Optional,
			Description: p.Description,
		}
		if p.Type != nil {
			docs[i].TypeRef = r.ResolveAll(p.Type.Names)
		}
	}
	return docs
}
