package steps

import "testing"

func TestLookupKnownTypes(t *testing.T) {
	for _, name := range Names() {
		info, ok := Lookup(name)
		if !ok {
			t.Errorf("expected %s to be registered", name)
			continue
		}
		if info.Slug == "" || info.Table == "" || info.FormID == "" {
			t.Errorf("incomplete registry entry for %s: %+v", name, info)
		}
	}
}

func TestLookupUnknownType(t *testing.T) {
	if _, ok := Lookup("DieCutting"); ok {
		t.Error("expected unknown step name to miss the registry")
	}
	if _, ok := Lookup(""); ok {
		t.Error("expected empty step name to miss the registry")
	}
}

func TestLookupSlugRoundTrip(t *testing.T) {
	for _, name := range Names() {
		info, _ := Lookup(name)
		bySlug, ok := LookupSlug(info.Slug)
		if !ok || bySlug.Name != name {
			t.Errorf("slug %s did not round-trip to %s", info.Slug, name)
		}
	}
}

func TestSlugsAreUnique(t *testing.T) {
	seen := make(map[string]string)
	for _, name := range Names() {
		info, _ := Lookup(name)
		if prev, dup := seen[info.Slug]; dup {
			t.Errorf("slug %s shared by %s and %s", info.Slug, prev, name)
		}
		seen[info.Slug] = name
	}
}
