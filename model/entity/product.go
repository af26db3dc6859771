package entity

import (
	"time"

	"gorm.io/datatypes"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Categories is the fixed product category enumeration, in display order.
var Categories = []string{"Electronics", "Fashion", "Home", "Books", "Sports", "Beauty"}

// IsCategory reports whether name is one of Categories (exact match).
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Layout hints for the product grid.
var Sizes = []string{"small", "medium", "large", "wide", "tall"}

func IsSize(s string) bool {
	if s == "" {
		return true
	}
	for _, v := range Sizes {
		if v == s {
			return true
		}
	}
	return false
}

// Media is one carousel item of a product.
type Media struct {
	Type MediaType `json:"type"`
	URL  string    `json:"url"`
}

// Product represents the products table
type Product struct {
	ID        uint                       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string                     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Category  string                     `gorm:"column:category;type:varchar(64);not null;index:idx_products_category" json:"category"`
	Price     float64                    `gorm:"column:price;type:decimal(12,2);not null;default:0" json:"price"`
	Rating    float64                    `gorm:"column:rating;type:decimal(3,2);not null;default:0" json:"rating"`
	Media     datatypes.JSONSlice[Media] `gorm:"column:media" json:"media"`
	Featured  bool                       `gorm:"column:featured;not null;default:false" json:"featured"`
	Size      string                     `gorm:"column:size;type:varchar(16)" json:"size,omitempty"`
	CreatedAt time.Time                  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time                  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

// PrimaryImage returns the first image URL, falling back to the first media URL.
func (p Product) PrimaryImage() string {
	for _, m := range p.Media {
		if m.Type == MediaImage {
			return m.URL
		}
	}
	if len(p.Media) > 0 {
		return p.Media[0].URL
	}
	return ""
}
