package models

import "time"

type Appointment struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `gorm:"index" json:"studio_id"`

	CoupleName string `gorm:"size:150;not null" json:"couple_name"`
	Phone      string `gorm:"size:20" json:"phone"`

	CustomerID    *uint        `gorm:"index" json:"customer_id"`
	ContractID    *uint        `gorm:"index" json:"contract_id"`
	StaffMemberID *uint        `gorm:"index" json:"staff_member_id"`
	StaffMember   *StaffMember `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff_member,omitempty"`

	Kind     string `gorm:"size:30;default:'consultation'" json:"kind"`
	Location string `gorm:"size:255" json:"location"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	Notes        string     `gorm:"size:500" json:"notes"`
	CancelReason string     `gorm:"size:255" json:"cancel_reason"`
	ConfirmedAt  *time.Time `json:"confirmed_at"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	RemindedAt   *time.Time `json:"reminded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
