package cart

import (
	"sync"
	"testing"

	"shopzone.GO/model/entity"
)

func product(id uint, name string, price float64) entity.Product {
	return entity.Product{
		ID: id, Name: name, Price: price, Category: "Electronics",
		Media: []entity.Media{{Type: entity.MediaImage, URL: name + ".jpg"}},
	}
}

var (
	iphone  = product(1, "iPhone 15 Pro", 999)
	airpods = product(3, "AirPods Pro", 249)
)

func TestStore_AddIncrementsExistingLine(t *testing.T) {
	s := NewStore()
	s.Add(iphone)
	s.Add(iphone)

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("lines = %d, want 1", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", items[0].Quantity)
	}
	if items[0].Image != "iPhone 15 Pro.jpg" {
		t.Errorf("Image = %q, want primary image", items[0].Image)
	}
}

func TestStore_TotalPrice(t *testing.T) {
	s := NewStore()
	if !s.TotalPrice().IsZero() {
		t.Errorf("empty TotalPrice = %s, want 0", s.TotalPrice())
	}
	s.Add(iphone)
	s.Add(airpods)
	s.Add(airpods)
	if got := s.TotalPrice().StringFixed(2); got != "1497.00" {
		t.Errorf("TotalPrice = %s, want 1497.00", got)
	}
	if s.Count() != 2 || s.Quantity() != 3 {
		t.Errorf("Count, Quantity = %d, %d; want 2, 3", s.Count(), s.Quantity())
	}
}

func TestStore_FractionalPricesKeepPrecision(t *testing.T) {
	s := NewStore()
	s.Add(product(7, "Pen", 0.1))
	s.Add(product(8, "Cap", 0.2))
	if got := s.TotalPrice().String(); got != "0.3" {
		t.Errorf("TotalPrice = %s, want 0.3", got)
	}
}

func TestStore_RemoveAbsentIsNoop(t *testing.T) {
	s := NewStore()
	s.Add(iphone)
	s.Remove(42)
	if s.Count() != 1 {
		t.Errorf("Count = %d, want 1", s.Count())
	}
	s.Remove(iphone.ID)
	if s.Count() != 0 {
		t.Errorf("Count after remove = %d, want 0", s.Count())
	}
}

func TestStore_AddTwiceThenRemoveEmpties(t *testing.T) {
	s := NewStore()
	s.Add(iphone)
	s.Add(iphone)
	s.Remove(iphone.ID)
	if s.Count() != 0 || len(s.Items()) != 0 {
		t.Errorf("Items = %+v, want empty", s.Items())
	}
	if !s.TotalPrice().IsZero() {
		t.Errorf("TotalPrice = %s, want 0", s.TotalPrice())
	}
}

func TestStore_SubtractKeepsLaterChanges(t *testing.T) {
	s := NewStore()
	s.Add(iphone)
	s.Add(airpods)
	taken := s.Items()

	s.Add(iphone)
	s.Add(product(9, "Basketball", 35))
	s.Subtract(taken)

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("Items = %+v, want iphone x1 and basketball x1", items)
	}
	if items[0].ProductID != iphone.ID || items[0].Quantity != 1 {
		t.Errorf("items[0] = %+v, want iphone x1", items[0])
	}
	if items[1].ProductID != 9 || items[1].Quantity != 1 {
		t.Errorf("items[1] = %+v, want basketball x1", items[1])
	}
}

func TestStore_DecrementToZeroRemoves(t *testing.T) {
	s := NewStore()
	s.Add(iphone)
	s.Add(iphone)
	s.Decrement(iphone.ID)
	if q := s.Items()[0].Quantity; q != 1 {
		t.Errorf("Quantity = %d, want 1", q)
	}
	s.Decrement(iphone.ID)
	if s.Count() != 0 {
		t.Errorf("Count = %d, want 0 after decrement to zero", s.Count())
	}
	s.Decrement(iphone.ID)
}

func TestStore_SetQuantity(t *testing.T) {
	s := NewStore()
	s.Add(iphone)
	if !s.SetQuantity(iphone.ID, 4) {
		t.Fatal("SetQuantity existing = false")
	}
	if q := s.Quantity(); q != 4 {
		t.Errorf("Quantity = %d, want 4", q)
	}
	if s.SetQuantity(99, 1) {
		t.Error("SetQuantity absent = true")
	}
	s.SetQuantity(iphone.ID, -1)
	if s.Count() != 0 {
		t.Errorf("Count = %d, want 0 after qty <= 0", s.Count())
	}
}

func TestStore_ClearAndOpen(t *testing.T) {
	s := NewStore()
	s.Add(iphone)
	s.SetOpen(true)
	s.Clear()
	if s.Count() != 0 || !s.IsOpen() {
		t.Errorf("Count, IsOpen = %d, %v; want 0, true", s.Count(), s.IsOpen())
	}
}

func TestStore_ItemsIsCopy(t *testing.T) {
	s := NewStore()
	s.Add(iphone)
	items := s.Items()
	items[0].Quantity = 100
	if s.Quantity() != 1 {
		t.Errorf("Quantity = %d, mutation of Items() leaked", s.Quantity())
	}
}

func TestStore_SubscribersSeeEveryMutation(t *testing.T) {
	s := NewStore()
	var got []int
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		n := 0
		for _, li := range snap.Items {
			n += li.Quantity
		}
		got = append(got, n)
		// reading inside a listener must not deadlock
		_ = s.Count()
	})

	s.Add(iphone)
	s.Add(iphone)
	s.Add(airpods)
	s.Decrement(iphone.ID)
	s.Remove(42) // no-op, no notification
	s.Clear()

	want := []int{1, 2, 3, 2, 0}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %d, want %d", i, got[i], want[i])
		}
	}

	unsubscribe()
	unsubscribe()
	s.Add(iphone)
	if len(got) != len(want) {
		t.Errorf("notified after unsubscribe: %v", got)
	}
}

func TestStore_ConcurrentAddsKeepOrderAndInvariant(t *testing.T) {
	s := NewStore()
	var mu sync.Mutex
	last := 0
	ordered := true
	s.Subscribe(func(snap Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		q := 0
		for _, li := range snap.Items {
			q += li.Quantity
		}
		if q != last+1 {
			ordered = false
		}
		last = q
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(iphone)
		}()
	}
	wg.Wait()

	if s.Quantity() != 50 || s.Count() != 1 {
		t.Errorf("Quantity, Count = %d, %d; want 50, 1", s.Quantity(), s.Count())
	}
	if !ordered {
		t.Error("snapshots delivered out of mutation order")
	}
}

func TestNewStoreFrom_DropsInvalidLines(t *testing.T) {
	s := NewStoreFrom(Snapshot{Open: true, Items: []LineItem{
		{ProductID: 1, Quantity: 2, Price: 10},
		{ProductID: 1, Quantity: 5, Price: 10},
		{ProductID: 2, Quantity: 0, Price: 10},
	}})
	if s.Count() != 1 || s.Quantity() != 2 || !s.IsOpen() {
		t.Errorf("restored Count, Quantity, Open = %d, %d, %v", s.Count(), s.Quantity(), s.IsOpen())
	}
}
