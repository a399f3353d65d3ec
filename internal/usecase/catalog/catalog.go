package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/catalog"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/infra/cache"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/search"
)

type ItemInput struct {
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Features    []string `json:"features"`
	Category    string   `json:"category"`
	Active      *bool    `json:"active"`
}

func (in ItemInput) apply(item *models.CatalogItem) error {
	kind, err := domain.ParseKind(in.Kind)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return httperr.ErrBusiness("missing_name")
	}
	if in.Price < 0 {
		return httperr.ErrBusiness("invalid_price")
	}

	features := make([]string, 0, len(in.Features))
	for _, f := range in.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}

	item.Kind = string(kind)
	item.Name = name
	item.Description = strings.TrimSpace(in.Description)
	item.Price = in.Price
	item.Features = features
	item.Category = strings.TrimSpace(in.Category)
	if in.Active != nil {
		item.Active = *in.Active
	}
	return nil
}

type ListQuery struct {
	Kind   string
	Active *bool
	Query  string
}

type Catalog struct {
	repo    domain.Repository
	cache   cache.Cache
	ttl     time.Duration
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewCatalog(
	repo domain.Repository,
	c cache.Cache,
	ttl time.Duration,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	log *slog.Logger,
) *Catalog {
	return &Catalog{
		repo:    repo,
		cache:   c,
		ttl:     ttl,
		audit:   audit,
		metrics: m,
		log:     logger.Component(log, "catalog"),
	}
}

func cachePrefix(studioID uint) string {
	return fmt.Sprintf("catalog:%d:", studioID)
}

func cacheKey(studioID uint, q ListQuery) string {
	active := "all"
	if q.Active != nil {
		active = fmt.Sprint(*q.Active)
	}
	return fmt.Sprintf("%s%s:%s:%s", cachePrefix(studioID), q.Kind, active, search.Normalize(q.Query))
}

// List returns items with usage stats. Results are cached per filter until
// the next catalog write or the TTL; stats may trail contract changes by
// at most the TTL.
func (uc *Catalog) List(ctx context.Context, studioID uint, q ListQuery) ([]domain.ItemWithStats, error) {
	if q.Kind != "" {
		k, err := domain.ParseKind(q.Kind)
		if err != nil {
			return nil, err
		}
		q.Kind = string(k)
	}

	key := cacheKey(studioID, q)
	var cached []domain.ItemWithStats
	if ok, err := uc.cache.Get(ctx, key, &cached); err != nil {
		uc.log.Warn("catalog cache read failed", "error", err)
	} else if ok {
		uc.metrics.CacheLookup("catalog", true)
		return cached, nil
	}
	uc.metrics.CacheLookup("catalog", false)

	items, err := uc.repo.List(ctx, studioID, domain.ListFilter{Kind: q.Kind, Active: q.Active, Query: q.Query})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	contracts, err := uc.repo.ContractsUsing(ctx, studioID, ids)
	if err != nil {
		return nil, err
	}

	out := domain.ComputeStats(items, contracts)
	if err := uc.cache.Set(ctx, key, out, uc.ttl); err != nil {
		uc.log.Warn("catalog cache write failed", "error", err)
	}
	return out, nil
}

func (uc *Catalog) Get(ctx context.Context, studioID, itemID uint) (*domain.ItemWithStats, error) {
	item, err := uc.repo.Get(ctx, studioID, itemID)
	if err != nil {
		return nil, err
	}
	contracts, err := uc.repo.ContractsUsing(ctx, studioID, []uint{item.ID})
	if err != nil {
		return nil, err
	}
	out := domain.ComputeStats([]models.CatalogItem{*item}, contracts)
	return &out[0], nil
}

func (uc *Catalog) Create(ctx context.Context, studioID, userID uint, in ItemInput) (*models.CatalogItem, error) {
	item := &models.CatalogItem{StudioID: studioID, Active: true}
	if err := in.apply(item); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	uc.changed(ctx, studioID, userID, "catalog_item_created", item.ID)
	return item, nil
}

func (uc *Catalog) Update(ctx context.Context, studioID, userID, itemID uint, in ItemInput) (*models.CatalogItem, error) {
	item, err := uc.repo.Get(ctx, studioID, itemID)
	if err != nil {
		return nil, err
	}
	if err := in.apply(item); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	uc.changed(ctx, studioID, userID, "catalog_item_updated", item.ID)
	return item, nil
}

func (uc *Catalog) Delete(ctx context.Context, studioID, userID, itemID uint) error {
	if err := uc.repo.Delete(ctx, studioID, itemID); err != nil {
		return err
	}
	uc.changed(ctx, studioID, userID, "catalog_item_deleted", itemID)
	return nil
}

func (uc *Catalog) changed(ctx context.Context, studioID, userID uint, action string, itemID uint) {
	if err := uc.cache.DeletePrefix(ctx, cachePrefix(studioID)); err != nil {
		uc.log.Warn("catalog cache invalidation failed", "error", err)
	}
	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   action,
		Entity:   "catalog_item",
		EntityID: &itemID,
	})
}
