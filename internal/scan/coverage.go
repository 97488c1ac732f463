package scan

import (
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// Coverage is a bitmap incidence table over scan entries: for each
// attribute key, which entries carry it, and how many distinct values
// it takes. Entry ordinals are their positions in Result.Entries.
type Coverage struct {
	Total  int
	keys   map[string]*roaring.Bitmap
	values map[string]map[string]int
}

func buildCoverage(entries []Entry) *Coverage {
	c := &Coverage{
		Total:  len(entries),
		keys:   make(map[string]*roaring.Bitmap),
		values: make(map[string]map[string]int),
	}
	for i, e := range entries {
		for k, v := range e.Attrs {
			bm, ok := c.keys[k]
			if !ok {
				bm = roaring.New()
				c.keys[k] = bm
				c.values[k] = make(map[string]int)
			}
			bm.Add(uint32(i))
			c.values[k][v]++
		}
	}
	return c
}

// Keys returns every attribute key seen during the scan, sorted.
func (c *Coverage) Keys() []string {
	out := make([]string, 0, len(c.keys))
	for k := range c.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Count returns how many entries carry key.
func (c *Coverage) Count(key string) int {
	bm, ok := c.keys[key]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// Cardinality returns how many distinct values key takes.
func (c *Coverage) Cardinality(key string) int {
	return len(c.values[key])
}

// With returns the entry ordinals carrying key. The bitmap is shared;
// callers must not mutate it.
func (c *Coverage) With(key string) *roaring.Bitmap {
	bm, ok := c.keys[key]
	if !ok {
		return roaring.New()
	}
	return bm
}

// Missing returns the entry ordinals lacking key.
func (c *Coverage) Missing(key string) *roaring.Bitmap {
	return roaring.Flip(c.With(key), 0, uint64(c.Total))
}

// Universal reports whether every entry carries key. Vacuously false
// for an empty scan.
func (c *Coverage) Universal(key string) bool {
	return c.Total > 0 && c.Count(key) == c.Total
}
