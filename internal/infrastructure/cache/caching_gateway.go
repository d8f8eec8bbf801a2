package cache

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/spotcheck/spotcheck/internal/core/domain"
	"github.com/spotcheck/spotcheck/internal/core/ports"
	"github.com/spotcheck/spotcheck/internal/metrics"
)

// CachingGateway decorates a ports.CafeGateway with the shared keyed
// cache: GetByID is served from the cache when warm, list results warm it,
// and every mutation invalidates the touched entry. Views still own their
// fetched collections; the cache only removes the duplicate-fetch
// inconsistency between concurrently open views.
type CachingGateway struct {
	next   ports.CafeGateway
	cache  ports.CafeCache
	logger zerolog.Logger
}

func NewCachingGateway(next ports.CafeGateway, cache ports.CafeCache, logger zerolog.Logger) *CachingGateway {
	return &CachingGateway{next: next, cache: cache, logger: logger}
}

var _ ports.CafeGateway = (*CachingGateway)(nil)

func (g *CachingGateway) ListAll(ctx context.Context) ([]domain.Cafe, error) {
	cafes, err := g.next.ListAll(ctx)
	if err == nil {
		g.cache.PutAll(ctx, cafes)
	}
	return cafes, err
}

func (g *CachingGateway) GetByID(ctx context.Context, id string) (*domain.Cafe, error) {
	if cafe, ok := g.cache.Get(ctx, id); ok {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return cafe, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	cafe, err := g.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	g.cache.Put(ctx, *cafe)
	return cafe, nil
}

func (g *CachingGateway) ListByStatus(ctx context.Context, status domain.CafeStatus) ([]domain.Cafe, error) {
	cafes, err := g.next.ListByStatus(ctx, status)
	if err == nil {
		g.cache.PutAll(ctx, cafes)
	}
	return cafes, err
}

func (g *CachingGateway) Create(ctx context.Context, draft ports.CafeDraft) (*domain.Cafe, error) {
	cafe, err := g.next.Create(ctx, draft)
	if err == nil && cafe != nil && cafe.ID != "" {
		g.cache.Put(ctx, *cafe)
	}
	return cafe, err
}

func (g *CachingGateway) Update(ctx context.Context, id string, draft ports.CafeDraft) (*domain.Cafe, error) {
	cafe, err := g.next.Update(ctx, id, draft)
	g.invalidate(ctx, id)
	if err == nil && cafe != nil {
		g.cache.Put(ctx, *cafe)
	}
	return cafe, err
}

func (g *CachingGateway) PatchSeats(ctx context.Context, id string, availableSeats int, notes string) (*domain.Cafe, error) {
	cafe, err := g.next.PatchSeats(ctx, id, availableSeats, notes)
	g.invalidate(ctx, id)
	if err == nil && cafe != nil {
		g.cache.Put(ctx, *cafe)
	}
	return cafe, err
}

func (g *CachingGateway) Delete(ctx context.Context, id string) error {
	err := g.next.Delete(ctx, id)
	g.invalidate(ctx, id)
	return err
}

func (g *CachingGateway) StatsOverview(ctx context.Context) (*domain.StatsOverview, error) {
	return g.next.StatsOverview(ctx)
}

func (g *CachingGateway) invalidate(ctx context.Context, id string) {
	g.cache.Invalidate(ctx, id)
	metrics.CacheInvalidationsTotal.Inc()
}
