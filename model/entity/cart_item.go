package entity

import "time"

// CartItem is a persisted cart line for a user. (user_id, product_id) is
// kept unique by the repository, not by the database.
type CartItem struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);not null;index:idx_cart_items_user_product,priority:1" json:"userId"`
	ProductID uint      `gorm:"column:product_id;not null;index:idx_cart_items_user_product,priority:2" json:"productId"`
	Quantity  int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
