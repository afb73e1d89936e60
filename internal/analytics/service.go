package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	overviewCacheKey = "admin:analytics:overview"
	overviewCacheTTL = 30 * time.Second
)

// Service computes dashboard aggregates with a short-lived cache.
type Service struct {
	repo  RepositoryPort
	cache *redis.Client
}

// NewService builds a Service instance. The cache client may be nil.
func NewService(repo RepositoryPort, cache *redis.Client) *Service {
	return &Service{repo: repo, cache: cache}
}

// Overview fans the counter queries out concurrently. Results are
// cached briefly so dashboard refreshes do not hammer the database.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	if cached, ok := s.cachedOverview(ctx); ok {
		return cached, nil
	}

	var out Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Companies, err = s.repo.CountCompanies(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		out.ActiveCompanies, err = s.repo.CountCompanies(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		out.Users, err = s.repo.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.ConnectedIntegrations, err = s.repo.CountConnectedIntegrations(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.MessagesToday, err = s.repo.CountMessagesToday(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	s.storeOverview(ctx, out)
	return out, nil
}

// MessagesPerDay returns the daily message series for the window.
func (s *Service) MessagesPerDay(ctx context.Context, days int) ([]SeriesPoint, error) {
	if days <= 0 || days > 90 {
		days = 30
	}
	return s.repo.MessagesPerDay(ctx, days)
}

func (s *Service) cachedOverview(ctx context.Context) (Overview, bool) {
	if s.cache == nil {
		return Overview{}, false
	}
	raw, err := s.cache.Get(ctx, overviewCacheKey).Bytes()
	if err != nil {
		return Overview{}, false
	}
	var out Overview
	if err := json.Unmarshal(raw, &out); err != nil {
		return Overview{}, false
	}
	return out, true
}

func (s *Service) storeOverview(ctx context.Context, out Overview) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return
	}
	s.cache.Set(ctx, overviewCacheKey, raw, overviewCacheTTL)
}
