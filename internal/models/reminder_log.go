package models

import "time"

type ReminderLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StudioID      uint      `gorm:"index" json:"studio_id"`
	AppointmentID uint      `gorm:"index" json:"appointment_id"`
	Channel       string    `gorm:"size:20" json:"channel"`
	To            string    `gorm:"size:30" json:"to"`
	Message       string    `gorm:"type:text" json:"message"`
	Status        string    `gorm:"size:20" json:"status"`
	Error         string    `gorm:"size:255" json:"error"`
	SentAt        time.Time `json:"sent_at"`
}
