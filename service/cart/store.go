// Package cart holds the per-session shopping cart.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"shopzone.GO/model/entity"
)

// LineItem is one cart row, unique by ProductID. Product fields are
// copied at add time so the cart renders without a catalog lookup.
type LineItem struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
}

// LineTotal is price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(li.Price).Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Snapshot is an immutable copy of the cart state.
type Snapshot struct {
	Items []LineItem `json:"items"`
	Open  bool       `json:"open"`
}

// Listener receives a snapshot after every mutation.
type Listener func(Snapshot)

// Store is a concurrency-safe cart. Every quantity it holds is >= 1.
//
// Listeners run after the store lock is released, one mutation at a time
// and in mutation order. They may read the store but must not mutate it
// or unsubscribe from inside the callback.
type Store struct {
	mu    sync.Mutex
	items []LineItem
	open  bool

	notifyMu  sync.Mutex
	listeners map[int]Listener
	nextID    int
}

func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// NewStoreFrom restores a store from a snapshot, dropping invalid lines.
func NewStoreFrom(s Snapshot) *Store {
	st := NewStore()
	st.open = s.Open
	for _, li := range s.Items {
		if li.Quantity < 1 || st.index(li.ProductID) >= 0 {
			continue
		}
		st.items = append(st.items, li)
	}
	return st
}

func (s *Store) index(productID uint) int {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add increments the line for p or appends a new line with quantity 1.
func (s *Store) Add(p entity.Product) {
	s.mutate(func() bool {
		if i := s.index(p.ID); i >= 0 {
			s.items[i].Quantity++
			return true
		}
		s.items = append(s.items, LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.PrimaryImage(),
			Category:  p.Category,
			Quantity:  1,
		})
		return true
	})
}

// Remove deletes the line for productID. Absent lines are a no-op.
func (s *Store) Remove(productID uint) {
	s.mutate(func() bool {
		return s.removeLocked(productID)
	})
}

func (s *Store) removeLocked(productID uint) bool {
	i := s.index(productID)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// Decrement lowers the quantity by one, removing the line at zero.
func (s *Store) Decrement(productID uint) {
	s.mutate(func() bool {
		i := s.index(productID)
		if i < 0 {
			return false
		}
		if s.items[i].Quantity <= 1 {
			return s.removeLocked(productID)
		}
		s.items[i].Quantity--
		return true
	})
}

// SetQuantity sets an existing line's quantity; qty <= 0 removes it.
// It reports whether the line exists.
func (s *Store) SetQuantity(productID uint, qty int) bool {
	found := false
	s.mutate(func() bool {
		i := s.index(productID)
		if i < 0 {
			return false
		}
		found = true
		if qty <= 0 {
			return s.removeLocked(productID)
		}
		if s.items[i].Quantity == qty {
			return false
		}
		s.items[i].Quantity = qty
		return true
	})
	return found
}

func (s *Store) Clear() {
	s.mutate(func() bool {
		if len(s.items) == 0 {
			return false
		}
		s.items = nil
		return true
	})
}

// Subtract lowers each line by the quantity in items, removing lines that
// reach zero. Lines added or raised after items was taken are kept.
func (s *Store) Subtract(items []LineItem) {
	s.mutate(func() bool {
		changed := false
		for _, li := range items {
			i := s.index(li.ProductID)
			if i < 0 || li.Quantity <= 0 {
				continue
			}
			changed = true
			if s.items[i].Quantity <= li.Quantity {
				s.removeLocked(li.ProductID)
				continue
			}
			s.items[i].Quantity -= li.Quantity
		}
		return changed
	})
}

func (s *Store) SetOpen(open bool) {
	s.mutate(func() bool {
		if s.open == open {
			return false
		}
		s.open = open
		return true
	})
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Count is the number of lines, not units.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Quantity is the total number of units.
func (s *Store) Quantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, li := range s.items {
		n += li.Quantity
	}
	return n
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// TotalPrice is the sum of price times quantity, full precision.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.items)
}

// Total sums LineTotal over items.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.LineTotal())
	}
	return total
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{Items: s.copyItems(), Open: s.open}
}

func (s *Store) copyItems() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Subscribe registers fn for every subsequent mutation.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.notifyMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.notifyMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.notifyMu.Lock()
			delete(s.listeners, id)
			s.notifyMu.Unlock()
		})
	}
}

// mutate runs fn under the store lock. When fn reports a change, the
// notify lock is taken before the store lock is released so that
// snapshots reach listeners in mutation order.
func (s *Store) mutate(fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, l := range s.sortedListeners() {
		l(snap)
	}
}

func (s *Store) sortedListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}
