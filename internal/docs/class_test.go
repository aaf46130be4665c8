package docs

import (
	"testing"

	"github.com/jcdickinson/jsdocgen/internal/jsdoc"
)

func boolPtr(b bool) *bool { return &b }

func builderFor(records []jsdoc.Record) *Builder {
	return NewBuilder(NewIndex(records), DefaultLinkConfig())
}

func TestClass_MethodsKeepInputOrder(t *testing.T) {
	t.Parallel()

	b := builderFor([]jsdoc.Record{
		{Kind: jsdoc.KindClass, Name: "Map", Longname: "woosmap.Map"},
		{Kind: jsdoc.KindConstructor, Name: "Map", Longname: "woosmap.Map", MemberOf: "woosmap.Map"},
		{Kind: jsdoc.KindFunction, Name: "methodA", Longname: "woosmap.Map#methodA", MemberOf: "woosmap.Map", Scope: "instance"},
		{Kind: jsdoc.KindFunction, Name: "methodB", Longname: "woosmap.Map#methodB", MemberOf: "woosmap.Map", Scope: "instance"},
	})

	entry := b.Class("woosmap.Map")
	if entry == nil {
		t.Fatal("expected class entry")
	}
	if len(entry.Methods) != 2 || entry.Methods[0].Name != "methodA" || entry.Methods[1].Name != "methodB" {
		t.Errorf("methods = %+v", entry.Methods)
	}
	if entry.Constructor == nil || entry.Constructor.Signature != "Map()" {
		t.Errorf("constructor = %+v", entry.Constructor)
	}
}

func TestClass_FirstConstructorWins(t *testing.T) {
	t.Parallel()

	b := builderFor([]jsdoc.Record{
		{Kind: jsdoc.KindClass, Name: "Map", Longname: "woosmap.Map"},
		{Kind: jsdoc.KindConstructor, Name: "Map", Longname: "woosmap.Map", MemberOf: "woosmap.Map",
			Description: "Creates a map.\nLonger explanation.",
			Params:      []jsdoc.Param{{Name: "el", Type: typed("HTMLElement")}},
			Examples:    []string{"new woosmap.Map(el)"}},
		{Kind: jsdoc.KindConstructor, Name: "Other", Longname: "woosmap.Map", MemberOf: "woosmap.Map"},
	})

	c := b.Class("woosmap.Map").Constructor
	if c == nil {
		t.Fatal("expected constructor")
	}
	if c.Signature != "Map(el:HTMLElement)" {
		t.Errorf("signature = %q", c.Signature)
	}
	if c.ShortDescription != "Creates a map." {
		t.Errorf("short description = %q", c.ShortDescription)
	}
	if len(c.Params) != 1 || c.Params[0].TypeRef != "HTMLElement" {
		t.Errorf("params = %+v", c.Params)
	}
	if got := b.Class("woosmap.Map").Examples; len(got) != 1 || got[0] != "new woosmap.Map(el)" {
		t.Errorf("class examples = %v", got)
	}
}

func TestClass_NoConstructor(t *testing.T) {
	t.Parallel()

	b := builderFor([]jsdoc.Record{
		{Kind: jsdoc.KindClass, Name: "Iface", Longname: "woosmap.Iface", Virtual: boolPtr(true),
			Examples: []string{"class example"}},
	})

	entry := b.Class("woosmap.Iface")
	if entry == nil {
		t.Fatal("class without constructor must still produce an entry")
	}
	if entry.Constructor != nil {
		t.Errorf("expected no constructor, got %+v", entry.Constructor)
	}
	if entry.Virtual == nil || !*entry.Virtual {
		t.Error("virtual marker not copied")
	}
	if len(entry.Examples) != 1 || entry.Examples[0] != "class example" {
		t.Errorf("examples = %v", entry.Examples)
	}
	if entry.Methods == nil || entry.Parents == nil || entry.Properties == nil {
		t.Error("empty lists should be non-nil for renderers")
	}
}

func TestClass_UnknownLongname(t *testing.T) {
	t.Parallel()

	if got := builderFor(nil).Class("nope"); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestClass_MethodReturnValues(t *testing.T) {
	t.Parallel()

	b := builderFor([]jsdoc.Record{
		{Kind: jsdoc.KindClass, Name: "Map", Longname: "woosmap.Map"},
		{Kind: jsdoc.KindClass, Name: "LatLng", Longname: "woosmap.LatLng"},
		{Kind: jsdoc.KindFunction, Name: "getCenter", Longname: "woosmap.Map#getCenter", MemberOf: "woosmap.Map", Scope: "instance",
			Returns: []jsdoc.Return{{Type: typed("woosmap.LatLng")}}},
		{Kind: jsdoc.KindFunction, Name: "setCenter", Longname: "woosmap.Map#setCenter", MemberOf: "woosmap.Map", Scope: "instance",
			Params: []jsdoc.Param{{Name: "latLng", Type: typed("woosmap.LatLng", "google.maps.LatLngLiteral")}}},
	})

	methods := b.Class("woosmap.Map").Methods
	if len(methods) != 2 {
		t.Fatalf("got %d methods", len(methods))
	}
	if methods[0].ReturnValue != `<a href="#woosmap.LatLng">LatLng</a>` {
		t.Errorf("return value = %q", methods[0].ReturnValue)
	}
	if methods[1].ReturnValue != "" {
		t.Errorf("method without returns got %q", methods[1].ReturnValue)
	}
	want := `setCenter(latLng:<a href="#woosmap.LatLng">LatLng</a>|google.maps.LatLngLiteral)`
	if methods[1].Signature != want {
		t.Errorf("signature = %q, want %q", methods[1].Signature, want)
	}
}

func TestClass_InheritedParents(t *testing.T) {
	t.Parallel()

	b := builderFor([]jsdoc.Record{
		{Kind: jsdoc.KindClass, Name: "Base", Longname: "woosmap.Base"},
		{Kind: jsdoc.KindClass, Name: "Map", Longname: "woosmap.Map"},
		{Kind: jsdoc.KindFunction, Name: "on", Longname: "woosmap.Map#on", MemberOf: "woosmap.Map", Scope: "instance",
			Inherited: true, Inherits: "woosmap.Base#on"},
		{Kind: jsdoc.KindFunction, Name: "off", Longname: "woosmap.Map#off", MemberOf: "woosmap.Map", Scope: "instance",
			Inherited: true, Inherits: "woosmap.Base#off"},
		{Kind: jsdoc.KindFunction, Name: "set", Longname: "woosmap.Map#set", MemberOf: "woosmap.Map", Scope: "instance",
			Inherited: true, Inherits: "google.maps.MVCObject#set"},
		{Kind: jsdoc.KindFunction, Name: "own", Longname: "woosmap.Map#own", MemberOf: "woosmap.Map", Scope: "instance",
			Inherits: "woosmap.Other#own"},
	})

	got := b.Class("woosmap.Map").Parents
	want := []string{`<a href="#woosmap.Base">Base</a>`, "google.maps.MVCObject"}
	if !equalStrings(got, want) {
		t.Errorf("parents = %v, want %v", got, want)
	}
	if got := b.Class("woosmap.Base").Parents; len(got) != 0 {
		t.Errorf("base parents = %v", got)
	}
}

func TestClass_InheritedWithoutOwner(t *testing.T) {
	t.Parallel()

	b := builderFor([]jsdoc.Record{
		{Kind: jsdoc.KindClass, Name: "Map", Longname: "woosmap.Map"},
		{Kind: jsdoc.KindFunction, Name: "on", Longname: "woosmap.Map#on", MemberOf: "woosmap.Map", Scope: "instance",
			Inherited: true},
		{Kind: jsdoc.KindFunction, Name: "off", Longname: "woosmap.Map#off", MemberOf: "woosmap.Map", Scope: "instance",
			Inherited: true, Inherits: "#off"},
	})

	if got := b.Class("woosmap.Map").Parents; len(got) != 0 {
		t.Errorf("parents = %q, want none", got)
	}
}

func TestClass_PropertiesMerged(t *testing.T) {
	t.Parallel()

	b := builderFor([]jsdoc.Record{
		{Kind: jsdoc.KindClass, Name: "Options", Longname: "woosmap.Options",
			Properties: []jsdoc.Property{
				{Name: "declared", Type: typed("Array.<string>"), Optional: true},
				{Name: "untyped"},
			}},
		{Kind: jsdoc.KindMember, Name: "zoom", Longname: "woosmap.Options#zoom", MemberOf: "woosmap.Options",
			Scope: "instance", Type: typed("number")},
	})

	props := b.Class("woosmap.Options").Properties
	if len(props) != 3 {
		t.Fatalf("got %d properties, want 3", len(props))
	}
	if props[0].Name != "zoom" || props[0].TypeRef != "Number" || props[0].Longname != "woosmap.Options#zoom" {
		t.Errorf("member property first: %+v", props[0])
	}
	if props[1].Name != "declared" || props[1].TypeRef != "Array.&lt;String&gt;" || !props[1].Optional {
		t.Errorf("declared property: %+v", props[1])
	}
	if props[2].TypeRef != "" {
		t.Errorf("untyped property got %q", props[2].TypeRef)
	}
}

func TestClass_AnonymousLongname(t *testing.T) {
	t.Parallel()

	b := builderFor([]jsdoc.Record{
		{Kind: jsdoc.KindClass, Name: "Widget", Longname: "<anonymous>~Widget"},
	})
	if got := b.Class("<anonymous>~Widget").Key(); got != "Widget" {
		t.Errorf("Key = %q, want Widget", got)
	}
}

func TestClass_Deprecated(t *testing.T) {
	t.Parallel()

	b := builderFor([]jsdoc.Record{
		{Kind: jsdoc.KindClass, Name: "Old", Longname: "x.Old", Deprecated: &jsdoc.Deprecation{Deprecated: true, Message: "use x.New"}},
	})
	d := b.Class("x.Old").Deprecated
	if d == nil || d.Message != "use x.New" {
		t.Errorf("deprecated = %+v", d)
	}
}
