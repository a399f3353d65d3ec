package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/dashboard"
	"github.com/BruksfildServices01/studio-manager/internal/infra/cache"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

type GetOverview struct {
	repo    domain.Repository
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewGetOverview(
	repo domain.Repository,
	c cache.Cache,
	ttl time.Duration,
	m *metrics.Metrics,
	log *slog.Logger,
) *GetOverview {
	return &GetOverview{
		repo:    repo,
		cache:   c,
		ttl:     ttl,
		metrics: m,
		log:     logger.Component(log, "dashboard"),
	}
}

func cacheKey(studioID uint) string {
	return fmt.Sprintf("dashboard:%d", studioID)
}

// Execute serves the overview from cache for up to the TTL. Cache errors
// fall through to the database.
func (uc *GetOverview) Execute(ctx context.Context, studioID uint) (*domain.Overview, error) {
	key := cacheKey(studioID)

	var cached domain.Overview
	if ok, err := uc.cache.Get(ctx, key, &cached); err != nil {
		uc.log.Warn("dashboard cache read failed", "error", err)
	} else if ok {
		uc.metrics.CacheLookup("dashboard", true)
		return &cached, nil
	}
	uc.metrics.CacheLookup("dashboard", false)

	studio, err := uc.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return nil, err
	}

	out, err := uc.repo.Overview(ctx, studioID, domain.NewWindow(timezone.NowIn(studio.Timezone)))
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, key, out, uc.ttl); err != nil {
		uc.log.Warn("dashboard cache write failed", "error", err)
	}
	return out, nil
}
