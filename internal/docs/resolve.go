package docs

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LabelStyle selects the text shown for internal links.
type LabelStyle string

const (
	// LabelShort shows the last dotted segment of the longname.
	LabelShort LabelStyle = "short"
	// LabelFull shows the whole longname.
	LabelFull LabelStyle = "full"
)

const (
	DefaultExternalPrefix  = "google.maps."
	DefaultExternalBaseURL = "https://developers.google.com/maps/documentation/javascript/reference"
)

// LinkConfig controls how type names outside the reference set are linked.
type LinkConfig struct {
	// ExternalNamespace enables links into a third-party reference for names
	// carrying ExternalPrefix.
	ExternalNamespace bool
	ExternalPrefix    string
	ExternalBaseURL   string
	Labels            LabelStyle
}

// DefaultLinkConfig returns the Google Maps namespace settings, disabled.
func DefaultLinkConfig() LinkConfig {
	return LinkConfig{
		ExternalPrefix:  DefaultExternalPrefix,
		ExternalBaseURL: DefaultExternalBaseURL,
		Labels:          LabelShort,
	}
}

// arrayOfRe matches Array.<T>, array.<A|B> and Array.<(A|B)>.
var arrayOfRe = regexp.MustCompile(`^[aA]rray\.<\(?([A-Za-z][A-Za-z0-9.]*(?:\|[A-Za-z][A-Za-z0-9.]*)*)\)?>$`)

// markupEscaper escapes the characters that would break surrounding markup.
var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Resolver turns type names into display strings.
type Resolver struct {
	refs ReferenceSet
	cfg  LinkConfig
}

// NewResolver returns a resolver over refs. A nil set resolves nothing internally.
func NewResolver(refs ReferenceSet, cfg LinkConfig) *Resolver {
	if refs == nil {
		refs = ReferenceSet{}
	}
	if cfg.Labels == "" {
		cfg.Labels = LabelShort
	}
	return &Resolver{refs: refs, cfg: cfg}
}

// Resolve is a one-shot helper around Resolver.Resolve.
func Resolve(typeName string, refs ReferenceSet, cfg LinkConfig) string {
	return NewResolver(refs, cfg).Resolve(typeName)
}

// Resolve renders a single type name, unwrapping Array.<...> first.
func (r *Resolver) Resolve(typeName string) string {
	m := arrayOfRe.FindStringSubmatch(typeName)
	if m == nil {
		return r.resolveName(typeName)
	}
	return "Array.&lt;" + r.ResolveAll(strings.Split(m[1], "|")) + "&gt;"
}

// ResolveAll renders a union list in order, joined with "|".
func (r *Resolver) ResolveAll(typeNames []string) string {
	refs := make([]string, len(typeNames))
	for i, name := range typeNames {
		refs[i] = r.Resolve(name)
	}
	return strings.Join(refs, "|")
}

func (r *Resolver) resolveName(name string) string {
	if r.refs.Has(name) {
		return fmt.Sprintf(`<a href="#%s">%s</a>`, name, r.label(name))
	}

	if r.cfg.ExternalNamespace && r.cfg.ExternalPrefix != "" && strings.HasPrefix(name, r.cfg.ExternalPrefix) {
		key := strings.TrimPrefix(name, r.cfg.ExternalPrefix)
		return fmt.Sprintf(`<a target="_blank" href="%s#%s">%s</a>`, r.cfg.ExternalBaseURL, key, name)
	}

	if !strings.Contains(name, ".") {
		name = capitalize(name)
	}
	return markupEscaper.Replace(name)
}

func (r *Resolver) label(longname string) string {
	if r.cfg.Labels == LabelFull {
		return longname
	}
	return ShortName(longname)
}

// ShortName returns the last dotted segment of a longname.
func ShortName(longname string) string {
	if i := strings.LastIndex(longname, "."); i >= 0 {
		return longname[i+1:]
	}
	return longname
}

func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}
