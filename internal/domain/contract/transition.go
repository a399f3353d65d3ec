package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

// TransitionInput carries the confirmation fields of the status dialog.
type TransitionInput struct {
	To           Status
	Note         string
	ShootDate    *time.Time
	HandoverDate *time.Time
	Reason       string
	Author       string
}

// RequiredFields lists what the dialog must collect before moving to s.
func RequiredFields(s Status) []string {
	switch s {
	case StatusScheduled:
		return []string{"shoot_date"}
	case StatusHandover:
		return []string{"handover_date"}
	case StatusCancelled:
		return []string{"reason"}
	default:
		return nil
	}
}

func validate(in TransitionInput) error {
	for _, f := range RequiredFields(in.To) {
		switch f {
		case "shoot_date":
			if in.ShootDate == nil {
				return httperr.ErrBusiness("missing_shoot_date")
			}
		case "handover_date":
			if in.HandoverDate == nil {
				return httperr.ErrBusiness("missing_handover_date")
			}
		case "reason":
			if strings.TrimSpace(in.Reason) == "" {
				return httperr.ErrBusiness("missing_reason")
			}
		}
	}
	return nil
}

// Apply moves c to in.To, stamps the stage timestamp and returns the history
// entry to persist. c is left untouched on error.
func Apply(c *models.Contract, in TransitionInput, now time.Time) (*models.ContractNote, error) {
	from := Status(c.Status)
	if err := Machine.CanTransition(from, in.To); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	switch in.To {
	case StatusScheduled:
		c.ShootDate = in.ShootDate
		c.ScheduledAt = &now
	case StatusRetouch:
		c.RetouchAt = &now
	case StatusHandover:
		c.HandoverDate = in.HandoverDate
		c.HandoverAt = &now
	case StatusCompleted:
		c.CompletedAt = &now
	case StatusCancelled:
		c.CancelReason = strings.TrimSpace(in.Reason)
		c.CancelledAt = &now
	}
	c.Status = string(in.To)

	return &models.ContractNote{
		ContractID: c.ID,
		Author:     in.Author,
		FromStatus: string(from),
		ToStatus:   string(in.To),
		Content:    historyText(from, in),
	}, nil
}

func historyText(from Status, in TransitionInput) string {
	parts := []string{fmt.Sprintf("%s → %s",
		Machine.Display(from).Label, Machine.Display(in.To).Label)}

	switch in.To {
	case StatusScheduled:
		parts = append(parts, "Ngày chụp: "+in.ShootDate.Format("02/01/2006"))
	case StatusHandover:
		parts = append(parts, "Ngày bàn giao: "+in.HandoverDate.Format("02/01/2006"))
	case StatusCancelled:
		parts = append(parts, "Lý do: "+strings.TrimSpace(in.Reason))
	}
	if note := strings.TrimSpace(in.Note); note != "" {
		parts = append(parts, note)
	}
	return strings.Join(parts, ". ")
}
