package models

import "time"

// CatalogItem is a priced service or a package bundling several services.
type CatalogItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `gorm:"index" json:"studio_id"`

	Kind        string   `gorm:"size:20;not null;default:'service'" json:"kind"`
	Name        string   `gorm:"size:100;not null" json:"name"`
	Description string   `gorm:"size:255" json:"description"`
	Price       int64    `json:"price"`
	Features    []string `gorm:"serializer:json;type:text" json:"features"`
	Category    string   `gorm:"size:50" json:"category"`
	Active      bool     `gorm:"default:true" json:"active"`

	SearchKey string `gorm:"size:300;index" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
