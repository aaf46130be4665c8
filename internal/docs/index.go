package docs

import (
	"github.com/jcdickinson/jsdocgen/internal/jsdoc"
)

// moduleExports is the synthetic function JSDoc emits for CommonJS exports.
const moduleExports = "module.exports"

// RecordMap is a longname → record map that remembers first-seen order.
// A repeated longname replaces the record but keeps its original position.
type RecordMap struct {
	byName map[string]*jsdoc.Record
	order  []string
}

func newRecordMap() RecordMap {
	return RecordMap{byName: make(map[string]*jsdoc.Record)}
}

func (m *RecordMap) put(r *jsdoc.Record) {
	if _, ok := m.byName[r.Longname]; !ok {
		m.order = append(m.order, r.Longname)
	}
	m.byName[r.Longname] = r
}

// Get returns the record stored under longname.
func (m *RecordMap) Get(longname string) (*jsdoc.Record, bool) {
	r, ok := m.byName[longname]
	return r, ok
}

// Names returns the longnames in first-seen order.
func (m *RecordMap) Names() []string { return m.order }

// Len returns the number of distinct longnames.
func (m *RecordMap) Len() int { return len(m.order) }

// Index partitions a record set by kind and groups members under owners.
// It is built once by NewIndex and never mutated afterwards.
type Index struct {
	Classes   RecordMap
	Typedefs  RecordMap
	Enums     RecordMap
	Functions RecordMap

	// References holds class, typedef and enum longnames.
	References ReferenceSet

	// Members maps a known class longname to its member records, in input order.
	Members map[string][]*jsdoc.Record

	// Children maps every owner name found in the input to its records,
	// whether or not the owner is a known class.
	Children map[string][]*jsdoc.Record
}

// NewIndex builds the index over records. The records are not modified.
func NewIndex(records []jsdoc.Record) *Index {
	idx := &Index{
		Classes:    newRecordMap(),
		Typedefs:   newRecordMap(),
		Enums:      newRecordMap(),
		Functions:  newRecordMap(),
		References: make(ReferenceSet),
		Members:    make(map[string][]*jsdoc.Record),
		Children:   make(map[string][]*jsdoc.Record),
	}

	for i := range records {
		r := &records[i]
		switch r.Kind {
		case jsdoc.KindClass:
			idx.Classes.put(r)
			idx.References[r.Longname] = struct{}{}
		case jsdoc.KindTypedef:
			idx.Typedefs.put(r)
			idx.References[r.Longname] = struct{}{}
		case jsdoc.KindMember:
			if r.IsEnum {
				idx.Enums.put(r)
				idx.References[r.Longname] = struct{}{}
			}
		case jsdoc.KindFunction:
			if r.Scope == "static" && r.Longname != moduleExports {
				idx.Functions.put(r)
			}
		}
	}

	// Grouping runs after indexing so members declared before their class
	// still land under it.
	for i := range records {
		r := &records[i]
		if r.MemberOf == "" {
			continue
		}
		if _, ok := idx.Classes.Get(r.MemberOf); ok {
			idx.Members[r.MemberOf] = append(idx.Members[r.MemberOf], r)
		}
		idx.Children[r.MemberOf] = append(idx.Children[r.MemberOf], r)
	}

	return idx
}
