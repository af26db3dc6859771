package entity

import (
	"time"

	"gorm.io/datatypes"
)

// ComponentItem is one tile inside a promotional component.
type ComponentItem struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Link  string `json:"link"`
}

// CustomComponent is a promotional block shown above the catalog.
type CustomComponent struct {
	ID              uint                               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title           string                             `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Size            string                             `gorm:"column:size;type:varchar(16);not null" json:"size"`
	Items           datatypes.JSONSlice[ComponentItem] `gorm:"column:items" json:"items"`
	BackgroundColor *string                            `gorm:"column:background_color;type:varchar(64)" json:"backgroundColor,omitempty"`
	CreatedAt       time.Time                          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time                          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (CustomComponent) TableName() string {
	return "custom_components"
}
