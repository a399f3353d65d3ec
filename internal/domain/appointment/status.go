package appointment

import (
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/domain/fsm"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

var Machine = fsm.New("appointment",
	fsm.State[Status]{
		Status:  StatusPending,
		Display: fsm.Display{Label: "Chờ xác nhận", Color: "amber", Icon: "clock"},
		Next:    []Status{StatusConfirmed, StatusCancelled},
	},
	fsm.State[Status]{
		Status:  StatusConfirmed,
		Display: fsm.Display{Label: "Đã xác nhận", Color: "blue", Icon: "calendar-check"},
		Next:    []Status{StatusCompleted, StatusCancelled, StatusNoShow},
	},
	fsm.State[Status]{
		Status:  StatusCompleted,
		Display: fsm.Display{Label: "Hoàn thành", Color: "green", Icon: "check-circle"},
	},
	fsm.State[Status]{
		Status:  StatusCancelled,
		Display: fsm.Display{Label: "Đã hủy", Color: "red", Icon: "x-circle"},
	},
	fsm.State[Status]{
		Status:  StatusNoShow,
		Display: fsm.Display{Label: "Khách không đến", Color: "gray", Icon: "user-x"},
	},
)

// Statuses that hold a slot on the calendar.
func BlockingStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Kinds
// ===============================

type Kind string

const (
	KindConsultation Kind = "consultation"
	KindPreWedding   Kind = "pre_wedding"
	KindWeddingDay   Kind = "wedding_day"
	KindDressFitting Kind = "dress_fitting"
	KindDelivery     Kind = "delivery"
)

func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindConsultation, nil
	}
	switch k := Kind(s); k {
	case KindConsultation, KindPreWedding, KindWeddingDay, KindDressFitting, KindDelivery:
		return k, nil
	}
	return "", httperr.ErrBusiness("invalid_kind")
}

// DefaultDuration is used when the booking form leaves duration empty.
func DefaultDuration(k Kind) time.Duration {
	switch k {
	case KindPreWedding:
		return 4 * time.Hour
	case KindWeddingDay:
		return 8 * time.Hour
	case KindDressFitting:
		return 90 * time.Minute
	case KindDelivery:
		return 30 * time.Minute
	default:
		return time.Hour
	}
}
