package docs

import (
	"testing"

	"github.com/jcdickinson/jsdocgen/internal/jsdoc"
)

func names(recs []*jsdoc.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewIndex_Partitions(t *testing.T) {
	t.Parallel()

	idx := NewIndex([]jsdoc.Record{
		{Kind: jsdoc.KindClass, Name: "Map", Longname: "woosmap.Map"},
		{Kind: jsdoc.KindTypedef, Name: "Options", Longname: "woosmap.Options"},
		{Kind: jsdoc.KindMember, Name: "Kind", Longname: "woosmap.Kind", IsEnum: true},
		{Kind: jsdoc.KindMember, Name: "zoom", Longname: "woosmap.Map#zoom", MemberOf: "woosmap.Map"},
		{Kind: jsdoc.KindFunction, Name: "load", Longname: "woosmap.load", Scope: "static"},
		{Kind: jsdoc.KindFunction, Name: "exports", Longname: "module.exports", Scope: "static"},
		{Kind: jsdoc.KindFunction, Name: "pan", Longname: "woosmap.Map#pan", Scope: "instance", MemberOf: "woosmap.Map"},
		{Kind: "namespace", Name: "woosmap", Longname: "woosmap"},
	})

	if got := idx.Classes.Names(); !equalStrings(got, []string{"woosmap.Map"}) {
		t.Errorf("classes = %v", got)
	}
	if got := idx.Typedefs.Names(); !equalStrings(got, []string{"woosmap.Options"}) {
		t.Errorf("typedefs = %v", got)
	}
	if got := idx.Enums.Names(); !equalStrings(got, []string{"woosmap.Kind"}) {
		t.Errorf("enums = %v", got)
	}
	if got := idx.Functions.Names(); !equalStrings(got, []string{"woosmap.load"}) {
		t.Errorf("functions = %v (module.exports and instance methods must be excluded)", got)
	}

	want := []string{"woosmap.Kind", "woosmap.Map", "woosmap.Options"}
	if got := idx.References.Sorted(); !equalStrings(got, want) {
		t.Errorf("references = %v, want %v", got, want)
	}
	if idx.References.Has("woosmap.load") || idx.References.Has("woosmap") {
		t.Error("functions and unknown kinds must not be references")
	}
}

func TestNewIndex_MembersKeepInputOrder(t *testing.T) {
	t.Parallel()

	idx := NewIndex([]jsdoc.Record{
		{Kind: jsdoc.KindFunction, Name: "early", Longname: "a.B#early", MemberOf: "a.B", Scope: "instance"},
		{Kind: jsdoc.KindClass, Name: "B", Longname: "a.B"},
		{Kind: jsdoc.KindConstructor, Name: "B", Longname: "a.B", MemberOf: "a.B"},
		{Kind: jsdoc.KindFunction, Name: "zeta", Longname: "a.B#zeta", MemberOf: "a.B", Scope: "instance"},
		{Kind: jsdoc.KindFunction, Name: "alpha", Longname: "a.B#alpha", MemberOf: "a.B", Scope: "instance"},
	})

	want := []string{"early", "B", "zeta", "alpha"}
	if got := names(idx.Members["a.B"]); !equalStrings(got, want) {
		t.Errorf("members = %v, want %v", got, want)
	}
}

func TestNewIndex_OrphansAreDropped(t *testing.T) {
	t.Parallel()

	idx := NewIndex([]jsdoc.Record{
		{Kind: jsdoc.KindClass, Name: "B", Longname: "a.B"},
		{Kind: jsdoc.KindFunction, Name: "lost", Longname: "a.Missing#lost", MemberOf: "a.Missing", Scope: "instance"},
		{Kind: jsdoc.KindMember, Name: "v", Longname: "a.ns.v", MemberOf: "a.ns"},
	})

	if len(idx.Members) != 0 {
		t.Errorf("orphans grouped under a class: %v", idx.Members)
	}
	if _, ok := idx.Members["a.Missing"]; ok {
		t.Error("unknown owner must not get a member list")
	}
	if got := names(idx.Children["a.Missing"]); !equalStrings(got, []string{"lost"}) {
		t.Errorf("children of a.Missing = %v", got)
	}
	if got := names(idx.Children["a.ns"]); !equalStrings(got, []string{"v"}) {
		t.Errorf("children of a.ns = %v", got)
	}
}

func TestNewIndex_DuplicateLastWriteWins(t *testing.T) {
	t.Parallel()

	idx := NewIndex([]jsdoc.Record{
		{Kind: jsdoc.KindClass, Name: "A", Longname: "x.A", Description: "first"},
		{Kind: jsdoc.KindClass, Name: "B", Longname: "x.B"},
		{Kind: jsdoc.KindClass, Name: "A", Longname: "x.A", Description: "second"},
		{Kind: jsdoc.KindTypedef, Name: "A", Longname: "x.A"},
	})

	if got := idx.Classes.Names(); !equalStrings(got, []string{"x.A", "x.B"}) {
		t.Errorf("order = %v, want first-seen order", got)
	}
	a, ok := idx.Classes.Get("x.A")
	if !ok || a.Description != "second" {
		t.Errorf("expected last record to win, got %+v", a)
	}
	if _, ok := idx.Typedefs.Get("x.A"); !ok {
		t.Error("same longname in another kind map should be kept separately")
	}
	if idx.Classes.Len() != 2 {
		t.Errorf("Len = %d, want 2", idx.Classes.Len())
	}
}

func TestNewIndex_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	records := []jsdoc.Record{
		{Kind: jsdoc.KindClass, Name: "B", Longname: "a.B"},
		{Kind: jsdoc.KindFunction, Name: "f", Longname: "a.B#f", MemberOf: "a.B", Scope: "instance"},
	}
	before := records[1]
	NewIndex(records)
	NewIndex(records)
	if records[1].Name != before.Name || records[1].MemberOf != before.MemberOf || records[1].Longname != before.Longname {
		t.Errorf("input changed: %+v", records[1])
	}
}
