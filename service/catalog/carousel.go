package catalog

import (
	"sync"

	"shopzone.GO/core/apperr"
)

// Carousel tracks the displayed media index of each product. Products
// without an entry are at index 0.
type Carousel struct {
	mu  sync.Mutex
	idx map[uint]int
}

func NewCarousel() *Carousel {
	return &Carousel{idx: make(map[uint]int)}
}

func (c *Carousel) Index(productID uint) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx[productID]
}

// Next advances with wraparound. count <= 0 leaves the index unchanged.
func (c *Carousel) Next(productID uint, count int) int {
	return c.step(productID, count, 1)
}

// Prev goes back with wraparound.
func (c *Carousel) Prev(productID uint, count int) int {
	return c.step(productID, count, -1)
}

func (c *Carousel) step(productID uint, count, delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.idx[productID]
	if count <= 0 {
		return cur
	}
	next := ((cur+delta)%count + count) % count
	c.idx[productID] = next
	return next
}

// Set jumps to index, which must be in [0, count).
func (c *Carousel) Set(productID uint, index, count int) error {
	if index < 0 || index >= count {
		return apperr.Invalid("carousel.set", "index", "out of range")
	}
	c.mu.Lock()
	c.idx[productID] = index
	c.mu.Unlock()
	return nil
}

// Retain drops entries for products not in ids.
func (c *Carousel) Retain(ids []uint) {
	keep := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.idx {
		if _, ok := keep[id]; !ok {
			delete(c.idx, id)
		}
	}
}

// Indexes returns a copy of the non-default entries.
func (c *Carousel) Indexes() map[uint]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[uint]int, len(c.idx))
	for k, v := range c.idx {
		out[k] = v
	}
	return out
}
