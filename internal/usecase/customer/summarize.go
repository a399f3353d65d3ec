package customer

import (
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/customer"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type SummarizeNotes struct {
	repo       domain.Repository
	summarizer domain.Summarizer
	audit      *audit.Dispatcher
	metrics    *metrics.Metrics
	log        *slog.Logger
}

// NewSummarizeNotes accepts a nil summarizer; Execute then reports
// summary_disabled.
func NewSummarizeNotes(
	repo domain.Repository,
	summarizer domain.Summarizer,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	log *slog.Logger,
) *SummarizeNotes {
	return &SummarizeNotes{
		repo:       repo,
		summarizer: summarizer,
		audit:      audit,
		metrics:    m,
		log:        logger.Component(log, "summarize"),
	}
}

// Execute replaces the stored summary only on success.
func (uc *SummarizeNotes) Execute(ctx context.Context, studioID, userID, customerID uint) (*models.Customer, error) {
	if uc.summarizer == nil {
		return nil, httperr.ErrBusiness("summary_disabled")
	}

	c, err := uc.repo.Get(ctx, studioID, customerID)
	if err != nil {
		return nil, err
	}
	if len(c.Notes) == 0 {
		return nil, httperr.ErrBusiness("no_notes")
	}

	notes := make([]string, 0, len(c.Notes))
	for _, n := range c.Notes {
		notes = append(notes, n.Content)
	}

	summary, err := uc.summarizer.Summarize(ctx, c.Name, notes)
	if err != nil {
		uc.metrics.Summary("error")
		uc.log.Warn("summary failed",
			slog.Uint64("customer_id", uint64(c.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	now := time.Now().UTC()
	c.NotesSummary = summary
	c.SummaryUpdatedAt = &now

	if err := uc.repo.SaveSummary(ctx, c); err != nil {
		return nil, err
	}

	uc.metrics.Summary("ok")
	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   "customer_summarized",
		Entity:   "customer",
		EntityID: &c.ID,
		Metadata: map[string]any{"notes": len(notes)},
	})

	return c, nil
}
