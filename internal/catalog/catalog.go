// Package catalog holds the browsable list of icons: a built-in table of
// system file types and folders plus user-added custom entries.
package catalog

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Catalog is a mutable, concurrency-safe list of items.
type Catalog struct {
	mu    sync.RWMutex
	items []Item
}

// New creates a catalog seeded with the built-in entries.
func New() *Catalog {
	return &Catalog{items: Builtin()}
}

// NewEmpty creates a catalog with no entries.
func NewEmpty() *Catalog {
	return &Catalog{}
}

// Items returns a copy of every item in insertion order.
func (c *Catalog) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Add appends an item, assigning an ID if it has none.
func (c *Catalog) Add(item Item) Item {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	return item
}

// AddPath adds a custom item for a file or folder, titled by its base name.
func (c *Catalog) AddPath(path string) (Item, error) {
	if strings.TrimSpace(path) == "" {
		return Item{}, fmt.Errorf("path must not be empty")
	}

	clean := filepath.Clean(path)
	title := filepath.Base(clean)
	if title == "." || title == string(filepath.Separator) {
		title = clean
	}

	return c.Add(NewItem(title, TypeCustom, Path(clean))), nil
}

// Remove deletes the item with the given ID and reports whether it existed.
func (c *Catalog) Remove(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the item with the given ID.
func (c *Catalog) Find(id uuid.UUID) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// FindByTitle returns the first item whose title equals title, ignoring case.
func (c *Catalog) FindByTitle(title string) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if strings.EqualFold(item.Title, title) {
			return item, true
		}
	}
	return Item{}, false
}

// Search returns items whose title contains query, ignoring case.
// An empty query matches everything.
func (c *Catalog) Search(query string) []Item {
	query = strings.ToLower(strings.TrimSpace(query))
	items := c.Items()
	if query == "" {
		return items
	}

	var out []Item
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), query) {
			out = append(out, item)
		}
	}
	return out
}

// OfType returns the items of one type sorted by title.
func (c *Catalog) OfType(typ ItemType) []Item {
	var out []Item
	for _, item := range c.Items() {
		if item.Type == typ {
			out = append(out, item)
		}
	}
	sortByTitle(out)
	return out
}

// Sections groups items by type in AllItemTypes order, each sorted by title.
// Types with no items are omitted.
func (c *Catalog) Sections() []Section {
	return GroupSections(c.Items())
}

// GroupSections groups items the same way Sections does.
func GroupSections(items []Item) []Section {
	byType := make(map[ItemType][]Item)
	for _, item := range items {
		byType[item.Type] = append(byType[item.Type], item)
	}

	var sections []Section
	for _, typ := range AllItemTypes() {
		group := byType[typ]
		if len(group) == 0 {
			continue
		}
		sortByTitle(group)
		sections = append(sections, Section{Type: typ, Items: group})
	}
	return sections
}

func sortByTitle(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Title < items[j].Title
	})
}
