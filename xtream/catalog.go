package xtream

import "sort"

// The pseudo-category holding streams that claim no known category.
const (
	UncategorizedID   = "uncategorized"
	UncategorizedName = "Uncategorized"
)

// Catalog groups live streams by category for the sidebar. Categories
// keep the panel's order; streams within a category are ordered by
// their panel number.
type Catalog struct {
	Categories []Category

	byCategory map[string][]Stream
}

// BuildCatalog sorts streams by panel number and groups them under
// every category they claim. Streams matching no known category land
// in a trailing Uncategorized bucket, so nothing the account can see
// ever disappears from the UI.
func BuildCatalog(categories []Category, streams []Stream) *Catalog {
	sorted := append([]Stream(nil), streams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Num < sorted[j].Num
	})

	known := make(map[string]bool, len(categories))
	for _, cat := range categories {
		known[string(cat.ID)] = true
	}

	c := &Catalog{
		Categories: append([]Category(nil), categories...),
		byCategory: make(map[string][]Stream, len(categories)+1),
	}
	var loose bool
	for _, s := range sorted {
		placed := false
		for _, id := range s.categoryKeys() {
			if known[id] {
				c.byCategory[id] = append(c.byCategory[id], s)
				placed = true
			}
		}
		if !placed {
			c.byCategory[UncategorizedID] = append(c.byCategory[UncategorizedID], s)
			loose = true
		}
	}
	if loose {
		c.Categories = append(c.Categories, Category{
			ID:   UncategorizedID,
			Name: UncategorizedName,
		})
	}
	return c
}

// Streams returns the channels of one category in panel order. The
// returned slice is owned by the catalog.
func (c *Catalog) Streams(categoryID string) []Stream {
	return c.byCategory[categoryID]
}
