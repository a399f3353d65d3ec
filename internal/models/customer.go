package models

import "time"

type Customer struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `gorm:"index;uniqueIndex:idx_customer_studio_phone,priority:1" json:"studio_id"`

	Name        string     `gorm:"size:100;not null" json:"name"`
	Phone       string     `gorm:"size:20;not null;uniqueIndex:idx_customer_studio_phone,priority:2" json:"phone"`
	Email       string     `gorm:"size:100" json:"email"`
	Source      string     `gorm:"size:50" json:"source"`
	Status      string     `gorm:"size:20;default:'interested';index" json:"status"`
	WeddingDate *time.Time `json:"wedding_date"`

	NotesSummary     string     `gorm:"type:text" json:"notes_summary"`
	SummaryUpdatedAt *time.Time `json:"summary_updated_at"`

	SearchKey string `gorm:"size:400;index" json:"-"`

	Notes []CustomerNote `gorm:"constraint:OnDelete:CASCADE;" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CustomerNote struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CustomerID uint   `gorm:"index" json:"customer_id"`
	Author     string `gorm:"size:100" json:"author"`
	Content    string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
}
