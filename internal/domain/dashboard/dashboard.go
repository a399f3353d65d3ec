// Package dashboard describes the studio home overview.
package dashboard

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type Finance struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Profit  int64 `json:"profit"`
}

type Overview struct {
	CustomersByStatus map[string]int64 `json:"customers_by_status"`
	ContractsByStatus map[string]int64 `json:"contracts_by_status"`

	AppointmentsToday    int64 `json:"appointments_today"`
	AppointmentsUpcoming int64 `json:"appointments_next_7_days"`

	RetouchOpen    int64 `json:"retouch_open"`
	RetouchOverdue int64 `json:"retouch_overdue"`

	Month       Finance `json:"month"`
	Outstanding int64   `json:"outstanding"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Window holds the instants the overview is computed against; all bounds
// are half-open.
type Window struct {
	Now        time.Time
	TodayStart time.Time
	TodayEnd   time.Time
	WeekEnd    time.Time
	MonthStart time.Time
	MonthEnd   time.Time
}

// NewWindow derives the window from now in the studio's location.
func NewWindow(now time.Time) Window {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	return Window{
		Now:        now,
		TodayStart: today,
		TodayEnd:   today.AddDate(0, 0, 1),
		WeekEnd:    today.AddDate(0, 0, 8),
		MonthStart: month,
		MonthEnd:   month.AddDate(0, 1, 0),
	}
}

type Repository interface {
	GetStudioByID(ctx context.Context, studioID uint) (*models.Studio, error)
	Overview(ctx context.Context, studioID uint, w Window) (*Overview, error)
}
