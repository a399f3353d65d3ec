package dto

import (
	"time"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	StatusColor string    `json:"status_color"`
	NextActions []string  `json:"next_actions"`
	CoupleName  string    `json:"couple_name"`
	Phone       string    `json:"phone"`
	Location    string    `json:"location"`
	StaffName   string    `json:"staff_name,omitempty"`
	ContractID  *uint     `json:"contract_id,omitempty"`
}

// NewAppointmentList renders times in loc and attaches display config.
func NewAppointmentList(apps []models.Appointment, loc *time.Location) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		st := domain.Status(ap.Status)
		display := domain.Machine.Display(st)

		next := []string{}
		for _, n := range domain.Machine.Next(st) {
			next = append(next, string(n))
		}

		row := AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime.In(loc),
			EndTime:     ap.EndTime.In(loc),
			Kind:        ap.Kind,
			Status:      ap.Status,
			StatusLabel: display.Label,
			StatusColor: display.Color,
			NextActions: next,
			CoupleName:  ap.CoupleName,
			Phone:       ap.Phone,
			Location:    ap.Location,
			ContractID:  ap.ContractID,
		}
		if ap.StaffMember != nil {
			row.StaffName = ap.StaffMember.Name
		}
		out = append(out, row)
	}
	return out
}
