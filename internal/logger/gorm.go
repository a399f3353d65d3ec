package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormAdapter routes gorm logging through slog. SQL goes to debug, slow
// queries and query errors to warn. ErrRecordNotFound is not an error here.
type GormAdapter struct {
	logger        *slog.Logger
	slowThreshold time.Duration
}

func NewGormAdapter(l *slog.Logger, slowThreshold time.Duration) *GormAdapter {
	return &GormAdapter{
		logger:        Component(l, "datastore"),
		slowThreshold: slowThreshold,
	}
}

func (a *GormAdapter) LogMode(_ gormlogger.LogLevel) gormlogger.Interface {
	return a
}

func (a *GormAdapter) Info(ctx context.Context, msg string, data ...any) {
	a.logger.DebugContext(ctx, fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Warn(ctx context.Context, msg string, data ...any) {
	a.logger.WarnContext(ctx, fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Error(ctx context.Context, msg string, data ...any) {
	a.logger.ErrorContext(ctx, fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		a.logger.WarnContext(ctx, "query error",
			"sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds(), "error", err)
	case a.slowThreshold > 0 && elapsed > a.slowThreshold:
		a.logger.WarnContext(ctx, "slow query",
			"sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	default:
		a.logger.DebugContext(ctx, "query",
			"sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	}
}

var _ gormlogger.Interface = (*GormAdapter)(nil)
