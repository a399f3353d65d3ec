package models

import "time"

type Transaction struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `gorm:"index" json:"studio_id"`

	Type        string    `gorm:"size:10;not null;index" json:"type"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Category    string    `gorm:"size:50;index" json:"category"`
	Status      string    `gorm:"size:20;default:'completed'" json:"status"`
	Date        time.Time `gorm:"index" json:"date"`
	Description string    `gorm:"size:255" json:"description"`

	ContractID *uint `gorm:"index" json:"contract_id"`

	// ExternalRef holds the online payment id; unique so webhooks record once.
	ExternalRef *string `gorm:"size:64;uniqueIndex" json:"external_ref,omitempty"`

	SearchKey string `gorm:"size:300" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
