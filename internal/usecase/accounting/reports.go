package accounting

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/accounting"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type Reports struct {
	repo domain.Repository
}

func NewReports(repo domain.Repository) *Reports {
	return &Reports{repo: repo}
}

func (uc *Reports) Summary(ctx context.Context, studioID uint, p PeriodQuery) (*domain.Summary, error) {
	txs, err := uc.load(ctx, studioID, p)
	if err != nil {
		return nil, err
	}
	s := domain.Summarize(txs)
	return &s, nil
}

func (uc *Reports) ByCategory(ctx context.Context, studioID uint, p PeriodQuery) ([]domain.CategoryRow, error) {
	txs, err := uc.load(ctx, studioID, p)
	if err != nil {
		return nil, err
	}
	rows := domain.ByCategory(txs)
	if rows == nil {
		rows = []domain.CategoryRow{}
	}
	return rows, nil
}

func (uc *Reports) Monthly(ctx context.Context, studioID uint, year int) ([]domain.MonthRow, error) {
	if year < 2000 || year > 2100 {
		return nil, httperr.ErrBusiness("invalid_period")
	}

	loc, err := studioLocation(ctx, uc.repo, studioID)
	if err != nil {
		return nil, err
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(1, 0, 0)

	txs, err := uc.repo.List(ctx, studioID, domain.ListFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}
	return domain.Monthly(txs, year, loc), nil
}

func (uc *Reports) load(ctx context.Context, studioID uint, p PeriodQuery) ([]models.Transaction, error) {
	loc, err := studioLocation(ctx, uc.repo, studioID)
	if err != nil {
		return nil, err
	}
	from, to, err := p.bounds(loc)
	if err != nil {
		return nil, err
	}
	return uc.repo.List(ctx, studioID, domain.ListFilter{From: from, To: to})
}
