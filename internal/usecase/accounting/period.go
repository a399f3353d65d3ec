package accounting

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/accounting"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

// PeriodQuery holds inclusive YYYY-MM-DD bounds; either may be empty.
type PeriodQuery struct {
	From string
	To   string
}

func studioLocation(ctx context.Context, repo domain.Repository, studioID uint) (*time.Location, error) {
	studio, err := repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return nil, err
	}
	return timezone.Location(studio.Timezone), nil
}

func parseDay(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	return &d, nil
}

// bounds converts the query to the half-open range used by the repository.
func (p PeriodQuery) bounds(loc *time.Location) (*time.Time, *time.Time, error) {
	from, err := parseDay(p.From, loc)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseDay(p.To, loc)
	if err != nil {
		return nil, nil, err
	}
	if to != nil {
		next := to.AddDate(0, 0, 1)
		to = &next
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, httperr.ErrBusiness("invalid_period")
	}
	return from, to, nil
}
