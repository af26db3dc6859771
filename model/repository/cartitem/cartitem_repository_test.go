package cartitem

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopzone.GO/core/apperr"
	"shopzone.GO/model/entity"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&entity.Product{}, &entity.CartItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, name := range []string{"AirPods Pro", "Basketball"} {
		p := entity.Product{Name: name, Category: "Electronics", Price: 10, Media: []entity.Media{{Type: entity.MediaImage, URL: "x"}}}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	return db
}

func TestCartItemRepository_AddOrUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewCartItemRepository(testDB(t))

	item, err := repo.AddOrUpdate(ctx, "u1", 1, 2)
	if err != nil {
		t.Fatalf("AddOrUpdate insert: %v", err)
	}
	if item.Quantity != 2 || item.CreatedAt.IsZero() {
		t.Errorf("insert = %+v", item)
	}

	item, err = repo.AddOrUpdate(ctx, "u1", 1, 5)
	if err != nil {
		t.Fatalf("AddOrUpdate update: %v", err)
	}
	if item.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", item.Quantity)
	}

	items, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("ListByUser = %d rows, want 1", len(items))
	}

	item, err = repo.AddOrUpdate(ctx, "u1", 1, 0)
	if err != nil || item != nil {
		t.Fatalf("AddOrUpdate(0) = %v, %v; want nil, nil", item, err)
	}
	if items, _ := repo.ListByUser(ctx, "u1"); len(items) != 0 {
		t.Errorf("after qty 0: %d rows, want 0", len(items))
	}
}

func TestCartItemRepository_AddOrUpdateErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewCartItemRepository(testDB(t))

	if _, err := repo.AddOrUpdate(ctx, "", 0, -1); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("invalid input kind = %v, want Validation", apperr.KindOf(err))
	}
	if _, err := repo.AddOrUpdate(ctx, "u1", 99, 1); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("unknown product kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestCartItemRepository_ConcurrentAddOrUpdate(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewCartItemRepository(db)

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			if _, err := repo.AddOrUpdate(ctx, "u1", 2, q); err != nil {
				t.Errorf("AddOrUpdate: %v", err)
			}
		}(i)
	}
	wg.Wait()

	var n int64
	db.Model(&entity.CartItem{}).Where("user_id = ? AND product_id = ?", "u1", 2).Count(&n)
	if n != 1 {
		t.Errorf("rows for (u1, 2) = %d, want 1", n)
	}
}

func TestCartItemRepository_CollapsesDuplicates(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewCartItemRepository(db)
	db.Create(&entity.CartItem{UserID: "u1", ProductID: 1, Quantity: 1})
	db.Create(&entity.CartItem{UserID: "u1", ProductID: 1, Quantity: 3})

	if _, err := repo.AddOrUpdate(ctx, "u1", 1, 4); err != nil {
		t.Fatalf("AddOrUpdate: %v", err)
	}
	items, _ := repo.ListByUser(ctx, "u1")
	if len(items) != 1 || items[0].Quantity != 4 {
		t.Errorf("items = %+v, want one line with quantity 4", items)
	}
}

func TestCartItemRepository_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	repo := NewCartItemRepository(testDB(t))
	a, _ := repo.AddOrUpdate(ctx, "u1", 1, 1)
	_, _ = repo.AddOrUpdate(ctx, "u1", 2, 1)
	_, _ = repo.AddOrUpdate(ctx, "u2", 1, 1)

	if err := repo.Remove(ctx, "u2", a.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("Remove other user's line kind = %v, want NotFound", apperr.KindOf(err))
	}
	if err := repo.Remove(ctx, "u1", a.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	n, err := repo.ClearUser(ctx, "u1")
	if err != nil || n != 1 {
		t.Errorf("ClearUser = %d, %v; want 1", n, err)
	}
	if items, _ := repo.ListByUser(ctx, "u2"); len(items) != 1 {
		t.Errorf("u2 lines = %d, want 1", len(items))
	}
}

func TestCartItemRepository_DeleteStale(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewCartItemRepository(db)
	_, _ = repo.AddOrUpdate(ctx, "u1", 1, 1)
	old := time.Now().Add(-48 * time.Hour)
	db.Model(&entity.CartItem{}).Where("user_id = ?", "u1").UpdateColumn("updated_at", old)
	_, _ = repo.AddOrUpdate(ctx, "u2", 1, 1)

	n, err := repo.DeleteStale(ctx, time.Now().Add(-24*time.Hour))
	if err != nil || n != 1 {
		t.Errorf("DeleteStale = %d, %v; want 1", n, err)
	}
}
