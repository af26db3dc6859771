package cartitem

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopzone.GO/core/apperr"
	"shopzone.GO/model/entity"
	"shopzone.GO/model/repository"
)

type CartItemRepository struct {
	db *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) *CartItemRepository {
	return &CartItemRepository{db: db}
}

// ListByUser returns a user's cart lines in insertion order.
func (r *CartItemRepository) ListByUser(ctx context.Context, userID string) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error
	return items, repository.Err("cart_items.list", "cart items", err)
}

// AddOrUpdate sets the quantity of (userID, productID). The lookup and the
// insert/update/delete run in one transaction with the existing row locked,
// so a user never ends up with two rows for one product. qty == 0 removes
// the line and returns (nil, nil).
func (r *CartItemRepository) AddOrUpdate(ctx context.Context, userID string, productID uint, qty int) (*entity.CartItem, error) {
	const op = "cart_items.add_or_update"
	fields := map[string]string{}
	if userID == "" {
		fields["userId"] = "required"
	}
	if productID == 0 {
		fields["productId"] = "required"
	}
	if qty < 0 {
		fields["quantity"] = "must be >= 0"
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(op, fields)
	}

	var out *entity.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []entity.CartItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Order("id ASC").
			Find(&existing).Error; err != nil {
			return err
		}

		if qty == 0 {
			if len(existing) == 0 {
				return nil
			}
			return tx.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&entity.CartItem{}).Error
		}

		if len(existing) == 0 {
			if err := tx.Select("id").First(&entity.Product{}, productID).Error; err != nil {
				return repository.Err(op, repository.Describe("product", productID), err)
			}
			item := entity.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			out = &item
			return nil
		}

		item := existing[0]
		item.Quantity = qty
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		// Collapse duplicates written before the lock was in place.
		if len(existing) > 1 {
			ids := make([]uint, 0, len(existing)-1)
			for _, dup := range existing[1:] {
				ids = append(ids, dup.ID)
			}
			if err := tx.Delete(&entity.CartItem{}, ids).Error; err != nil {
				return err
			}
		}
		out = &item
		return nil
	})
	if err != nil {
		return nil, repository.Err(op, "cart item", err)
	}
	return out, nil
}

// Remove deletes one cart line by id.
func (r *CartItemRepository) Remove(ctx context.Context, userID string, id uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.CartItem{}, id)
	if res.Error != nil {
		return repository.Err("cart_items.remove", repository.Describe("cart item", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("cart_items.remove", repository.Describe("cart item", id))
	}
	return nil
}

// ClearUser deletes every line of a user and returns how many were removed.
func (r *CartItemRepository) ClearUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.CartItem{})
	return res.RowsAffected, repository.Err("cart_items.clear", "cart items", res.Error)
}

// DeleteStale removes lines not touched since before.
func (r *CartItemRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("updated_at < ?", before).Delete(&entity.CartItem{})
	return res.RowsAffected, repository.Err("cart_items.delete_stale", "cart items", res.Error)
}
