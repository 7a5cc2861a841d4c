package catalog

import (
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestBuiltin_IsStableAndCopied(t *testing.T) {
	first := Builtin()
	second := Builtin()

	if len(first) == 0 {
		t.Fatal("built-in catalog is empty")
	}
	if len(first) != len(second) {
		t.Fatalf("len = %d and %d, want equal", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("item %d ID changed between calls", i)
		}
	}

	first[0].Title = "mutated"
	if Builtin()[0].Title == "mutated" {
		t.Error("Builtin() exposed the shared table")
	}
}

func TestBuiltin_UniqueTitlesAndIDs(t *testing.T) {
	titles := make(map[string]bool)
	ids := make(map[uuid.UUID]bool)

	for _, item := range Builtin() {
		if titles[item.Title] {
			t.Errorf("duplicate title %q", item.Title)
		}
		titles[item.Title] = true

		if ids[item.ID] {
			t.Errorf("duplicate ID for %q", item.Title)
		}
		ids[item.ID] = true

		if item.Type == TypeCustom {
			t.Errorf("built-in item %q has custom type", item.Title)
		}
		if item.Ref.Kind == RefHFSCode && len(item.Ref.Value) != 4 {
			t.Errorf("item %q HFS code %q is not four bytes", item.Title, item.Ref.Value)
		}
	}
}

func TestCatalog_Search(t *testing.T) {
	c := New()

	tests := []struct {
		query     string
		wantTitle string
		wantEmpty bool
	}{
		{"jpeg", "JPEG", false},
		{"JpEg", "JPEG", false},
		{"  folder ", "Applications Folder", false},
		{"no such icon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := c.Search(tt.query)
			if tt.wantEmpty {
				if len(got) != 0 {
					t.Errorf("Search(%q) returned %d items, want 0", tt.query, len(got))
				}
				return
			}

			found := false
			for _, item := range got {
				if item.Title == tt.wantTitle {
					found = true
				}
			}
			if !found {
				t.Errorf("Search(%q) missing %q", tt.query, tt.wantTitle)
			}
		})
	}
}

func TestCatalog_SearchEmptyQueryReturnsAll(t *testing.T) {
	c := New()
	if got := len(c.Search("")); got != c.Len() {
		t.Errorf("Search(\"\") = %d items, want %d", got, c.Len())
	}
}

func TestCatalog_SectionsOrderedAndSorted(t *testing.T) {
	c := New()
	sections := c.Sections()

	order := make(map[ItemType]int)
	for i, typ := range AllItemTypes() {
		order[typ] = i
	}

	total := 0
	for i, s := range sections {
		if len(s.Items) == 0 {
			t.Errorf("section %s is empty", s.Type)
		}
		if i > 0 && order[sections[i-1].Type] >= order[s.Type] {
			t.Errorf("section %s out of order", s.Type)
		}
		if !sort.SliceIsSorted(s.Items, func(a, b int) bool { return s.Items[a].Title < s.Items[b].Title }) {
			t.Errorf("section %s not sorted by title", s.Type)
		}
		for _, item := range s.Items {
			if item.Type != s.Type {
				t.Errorf("item %q in wrong section %s", item.Title, s.Type)
			}
		}
		total += len(s.Items)
	}

	if total != c.Len() {
		t.Errorf("sections hold %d items, want %d", total, c.Len())
	}

	for _, s := range sections {
		if s.Type == TypeCustom {
			t.Error("custom section present with no custom items")
		}
	}
}

func TestCatalog_AddPathAndRemove(t *testing.T) {
	c := NewEmpty()
	path := filepath.Join(t.TempDir(), "Project Folder")

	item, err := c.AddPath(path + string(filepath.Separator))
	if err != nil {
		t.Fatalf("AddPath() error = %v", err)
	}
	if item.Title != "Project Folder" {
		t.Errorf("Title = %q, want %q", item.Title, "Project Folder")
	}
	if item.Type != TypeCustom {
		t.Errorf("Type = %s, want custom", item.Type)
	}
	if item.Ref.Kind != RefPath || item.Ref.Value != path {
		t.Errorf("Ref = %v, want path:%s", item.Ref, path)
	}

	if found, ok := c.Find(item.ID); !ok || found.Title != item.Title {
		t.Errorf("Find() = %v, %v", found, ok)
	}

	if !c.Remove(item.ID) {
		t.Error("Remove() = false, want true")
	}
	if c.Remove(item.ID) {
		t.Error("second Remove() = true, want false")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestCatalog_AddPathRejectsEmpty(t *testing.T) {
	if _, err := NewEmpty().AddPath("  "); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestCatalog_AddAssignsID(t *testing.T) {
	c := NewEmpty()
	item := c.Add(Item{Title: "x", Type: TypeCustom, Ref: Path("/x")})
	if item.ID == uuid.Nil {
		t.Error("Add() did not assign an ID")
	}
}

func TestCatalog_FindByTitle(t *testing.T) {
	c := New()

	item, ok := c.FindByTitle("shell script")
	if !ok {
		t.Fatal("FindByTitle() did not find Shell Script")
	}
	if item.Ref != ContentType("public.shell-script") {
		t.Errorf("Ref = %v", item.Ref)
	}

	if _, ok := c.FindByTitle("shell"); ok {
		t.Error("FindByTitle() matched a partial title")
	}
}

func TestCatalog_OfType(t *testing.T) {
	items := New().OfType(TypeDevices)
	if len(items) == 0 {
		t.Fatal("no devices")
	}
	for _, item := range items {
		if item.Type != TypeDevices {
			t.Errorf("item %q has type %s", item.Title, item.Type)
		}
	}
}

func TestCatalog_ConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			item, _ := c.AddPath("/tmp/concurrent")
			c.Remove(item.ID)
		}()
		go func() {
			defer wg.Done()
			_ = c.Search("folder")
			_ = c.Sections()
		}()
	}

	wg.Wait()
	if c.Len() != len(Builtin()) {
		t.Errorf("Len() = %d, want %d", c.Len(), len(Builtin()))
	}
}

func TestParseItemType(t *testing.T) {
	for _, typ := range AllItemTypes() {
		got, err := ParseItemType(typ.Title())
		if err != nil {
			t.Errorf("ParseItemType(%q) error = %v", typ.Title(), err)
			continue
		}
		if got != typ {
			t.Errorf("ParseItemType(%q) = %s, want %s", typ.Title(), got, typ)
		}
	}

	if _, err := ParseItemType("widgets"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestItemType_Title(t *testing.T) {
	if got := TypeArchives.Title(); got != "Archives" {
		t.Errorf("Title() = %q, want %q", got, "Archives")
	}
	if got := ItemType(99).String(); got != "ItemType(99)" {
		t.Errorf("String() = %q", got)
	}
}
