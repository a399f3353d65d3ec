package models

import "time"

type StaffMember struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `gorm:"index" json:"studio_id"`

	Name                string `gorm:"size:100;not null" json:"name"`
	Position            string `gorm:"size:50" json:"position"`
	Phone               string `gorm:"size:20" json:"phone"`
	BaseSalary          int64  `json:"base_salary"`
	HourlyRate          int64  `json:"hourly_rate"`
	WorkingDaysPerMonth int    `gorm:"default:26" json:"working_days_per_month"`
	Status              string `gorm:"size:20;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Attendance struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StaffMemberID uint      `gorm:"uniqueIndex:idx_attendance_staff_date,priority:1" json:"staff_member_id"`
	Date          time.Time `gorm:"type:date;uniqueIndex:idx_attendance_staff_date,priority:2" json:"date"`
	Status        string    `gorm:"size:20" json:"status"`
	OvertimeHours float64   `json:"overtime_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Reward struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StaffMemberID uint      `gorm:"index" json:"staff_member_id"`
	Date          time.Time `gorm:"type:date" json:"date"`
	Kind          string    `gorm:"size:20" json:"kind"`
	Amount        int64     `json:"amount"`
	Reason        string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
