package models

import "time"

type RetouchItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `gorm:"index" json:"studio_id"`

	ContractID uint     `gorm:"index" json:"contract_id"`
	Contract   Contract `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Title  string `gorm:"size:150" json:"title"`
	Status string `gorm:"size:30;default:'awaiting_selection';index" json:"status"`

	SelectedImageURL string `gorm:"size:500" json:"selected_image_url"`
	RetouchImageURL  string `gorm:"size:500" json:"retouch_image_url"`

	AssigneeID *uint        `gorm:"index" json:"assignee_id"`
	Assignee   *StaffMember `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"assignee,omitempty"`

	Deadline      *time.Time `json:"deadline"`
	RevisionCount int        `json:"revision_count"`
	StartedAt     *time.Time `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at"`

	Notes []RetouchNote `gorm:"constraint:OnDelete:CASCADE;" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RetouchNote struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	RetouchItemID uint   `gorm:"index" json:"retouch_item_id"`
	Author        string `gorm:"size:100" json:"author"`
	FromStatus    string `gorm:"size:30" json:"from_status,omitempty"`
	ToStatus      string `gorm:"size:30" json:"to_status,omitempty"`
	Content       string `gorm:"type:text" json:"content"`

	CreatedAt time.Time `json:"created_at"`
}
