package docs

import (
	"log/slog"
	"sort"

	"github.com/jcdickinson/jsdocgen/internal/jsdoc"
)

// Options carries the run-level settings of Generate.
type Options struct {
	Version      string
	Experimental bool
	Links        LinkConfig
	// TreeRoot is the namespace whose entities make up the navigation tree.
	TreeRoot string
}

// Model is the render-ready documentation handed to a renderer.
type Model struct {
	Elements     []Entry      `json:"elements" yaml:"elements"`
	Version      string       `json:"version,omitempty" yaml:"version,omitempty"`
	References   ReferenceSet `json:"references" yaml:"references"`
	Experimental bool         `json:"experimental" yaml:"experimental"`
	Tree         *TreeNode    `json:"tree,omitempty" yaml:"tree,omitempty"`
}

// Generate indexes records and assembles every entry, sorted by longname.
// The output depends only on records and opts.
func Generate(records []jsdoc.Record, opts Options) *Model {
	idx := NewIndex(records)
	b := NewBuilder(idx, opts.Links)

	elements := make([]Entry, 0, idx.Classes.Len()+idx.Functions.Len()+idx.Typedefs.Len()+idx.Enums.Len())
	for _, name := range idx.Classes.Names() {
		elements = append(elements, b.Class(name))
	}
	for _, name := range idx.Functions.Names() {
		elements = append(elements, b.Function(name))
	}
	for _, name := range idx.Typedefs.Names() {
		elements = append(elements, b.Typedef(name))
	}
	for _, name := range idx.Enums.Names() {
		elements = append(elements, b.Enum(name))
	}
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].Key() < elements[j].Key()
	})

	treeNames := append(append([]string{}, idx.Classes.Names()...), idx.Functions.Names()...)

	slog.Debug("documentation model assembled",
		"records", len(records),
		"classes", idx.Classes.Len(),
		"functions", idx.Functions.Len(),
		"typedefs", idx.Typedefs.Len(),
		"enums", idx.Enums.Len(),
		"references", len(idx.References))

	return &Model{
		Elements:     elements,
		Version:      opts.Version,
		References:   idx.References,
		Experimental: opts.Experimental,
		Tree:         BuildTree(opts.TreeRoot, treeNames),
	}
}

// Lookup returns the element with the given longname.
func (m *Model) Lookup(longname string) (Entry, bool) {
	i := sort.Search(len(m.Elements), func(i int) bool {
		return m.Elements[i].Key() >= longname
	})
	if i < len(m.Elements) && m.Elements[i].Key() == longname {
		return m.Elements[i], true
	}
	return nil, false
}
