// Package aggregator coordinates provider fan-out, caching, normalization
// and the derived analytics behind the public service surface.
package aggregator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/mkorolev/skill-scout/internal/analytics"
	"github.com/mkorolev/skill-scout/internal/cache"
	"github.com/mkorolev/skill-scout/internal/domain"
	"github.com/mkorolev/skill-scout/internal/provider"
	"github.com/mkorolev/skill-scout/internal/ratelimit"
)

const (
	defaultAggregationTimeout = 10 * time.Second
	defaultLimit              = 10
	defaultTrendsSampleSize   = 200
	defaultRecommendLimit     = 5

	breakerConsecutiveFailures = 3
	breakerCooldown            = 30 * time.Second
)

// Config tunes the orchestrator.
type Config struct {
	AggregationTimeout time.Duration
	DefaultLimit       int
	TrendsSampleSize   int
	RecommendLimit     int
}

func (c Config) withDefaults() Config {
	if c.AggregationTimeout <= 0 {
		c.AggregationTimeout = defaultAggregationTimeout
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = defaultLimit
	}
	if c.TrendsSampleSize <= 0 {
		c.TrendsSampleSize = defaultTrendsSampleSize
	}
	if c.RecommendLimit <= 0 {
		c.RecommendLimit = defaultRecommendLimit
	}
	return c
}

// SearchOptions narrows one search call.
type SearchOptions struct {
	Providers []string
	Limit     int
	Level     string
	Location  string
	Remote    *bool
	Language  string
}

// Service is the aggregation engine, constructed once at process start and
// injected into the transport layer. It owns the adapter set, the
// per-provider rate gates and breakers, and the tiered cache.
type Service struct {
	adapters []provider.Adapter
	limiter  *ratelimit.Limiter
	cache    *cache.Tiered
	breakers map[string]*gobreaker.CircuitBreaker[[]domain.RawRecord]
	logger   *zap.Logger
	cfg      Config
}

// New wires the service together. Circuit breakers are installed only in
// front of configured adapters; synthetic stand-ins cannot fail.
func New(logger *zap.Logger, adapters []provider.Adapter, limiter *ratelimit.Limiter, store *cache.Tiered, cfg Config) *Service {
	breakers := make(map[string]*gobreaker.CircuitBreaker[[]domain.RawRecord])
	for _, a := range adapters {
		if !a.Configured() {
			continue
		}
		breakers[a.Name()] = gobreaker.NewCircuitBreaker[[]domain.RawRecord](gobreaker.Settings{
			Name:    a.Name(),
			Timeout: breakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerConsecutiveFailures
			},
		})
	}

	return &Service{
		adapters: adapters,
		limiter:  limiter,
		cache:    store,
		breakers: breakers,
		logger:   logger,
		cfg:      cfg.withDefaults(),
	}
}

// SearchCourses returns ranked course records for the query, served from
// cache when possible.
func (s *Service) SearchCourses(ctx context.Context, text string, opts SearchOptions) ([]domain.Record, error) {
	q := domain.Query{
		Text: text,
		Kind: domain.KindCourse,
		Filters: domain.Filters{
			Level:    opts.Level,
			Language: opts.Language,
		},
		Limit: s.limit(opts.Limit),
	}
	return s.search(ctx, q, opts.Providers)
}

// SearchJobs returns ranked job records for the query, served from cache
// when possible.
func (s *Service) SearchJobs(ctx context.Context, text string, opts SearchOptions) ([]domain.Record, error) {
	q := domain.Query{
		Text: text,
		Kind: domain.KindJob,
		Filters: domain.Filters{
			Location: opts.Location,
			Remote:   opts.Remote,
		},
		Limit: s.limit(opts.Limit),
	}
	return s.search(ctx, q, opts.Providers)
}

func (s *Service) search(ctx context.Context, q domain.Query, providers []string) ([]domain.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	key := cache.Key(q, providers)
	var cached []domain.Record
	if s.cache.Get(ctx, key, &cached) {
		s.logger.Debug("cache hit", zap.String("key", key), zap.Int("records", len(cached)))
		return cached, nil
	}

	outcome := s.aggregate(ctx, q, provider.ByKind(s.adapters, q.Kind, providers))
	s.cache.Set(ctx, key, outcome.Records)

	return outcome.Records, nil
}

// Recommendations returns a small ranked course set per requested skill.
func (s *Service) Recommendations(ctx context.Context, skills []string, level string) ([]domain.SkillCourses, error) {
	if len(skills) == 0 {
		return nil, fmt.Errorf("%w: at least one skill is required", domain.ErrInvalidQuery)
	}

	out := make([]domain.SkillCourses, 0, len(skills))
	for _, skill := range skills {
		courses, err := s.SearchCourses(ctx, skill, SearchOptions{
			Limit: s.cfg.RecommendLimit,
			Level: level,
		})
		if err != nil {
			return nil, fmt.Errorf("recommending for %q: %w", skill, err)
		}
		out = append(out, domain.SkillCourses{Skill: skill, Courses: courses})
	}

	return out, nil
}

// MarketTrends computes (or re-serves) the market analytics per skill. The
// job sample behind each entry is aggregated with a wide internal limit so
// demand bucketing sees the real sample size, not the caller's page size.
func (s *Service) MarketTrends(ctx context.Context, skills []string) ([]domain.Analytics, error) {
	if len(skills) == 0 {
		return nil, fmt.Errorf("%w: at least one skill is required", domain.ErrInvalidQuery)
	}

	out := make([]domain.Analytics, 0, len(skills))
	for _, skill := range skills {
		key := cache.TrendsKey(skill)

		var cached domain.Analytics
		if s.cache.Get(ctx, key, &cached) {
			out = append(out, cached)
			continue
		}

		q := domain.Query{Text: skill, Kind: domain.KindJob, Limit: s.cfg.TrendsSampleSize}
		if err := q.Validate(); err != nil {
			return nil, err
		}

		outcome := s.aggregate(ctx, q, provider.ByKind(s.adapters, domain.KindJob, nil))
		trends := analytics.Trends(skill, outcome.Records)

		s.cache.Set(ctx, key, trends)
		out = append(out, trends)
	}

	return out, nil
}

// ClearCache drops cached entries, bypassing TTL. Scope "all" clears
// everything; any other value is treated as a key-namespace prefix
// ("course", "job", "trends"). Returns the local-tier entries dropped.
func (s *Service) ClearCache(ctx context.Context, scope string) int {
	prefix := scope
	if scope == "all" {
		prefix = ""
	}

	dropped := s.cache.Clear(ctx, prefix)
	s.logger.Info("cache cleared", zap.String("scope", scope), zap.Int("dropped", dropped))
	return dropped
}

// Status reports the provider and cache state.
func (s *Service) Status() domain.Status {
	windows := s.limiter.Snapshot()

	providers := make([]domain.ProviderStatus, 0, len(s.adapters))
	for _, a := range s.adapters {
		providers = append(providers, domain.ProviderStatus{
			Name:             a.Name(),
			Kind:             a.Kind(),
			Configured:       a.Configured(),
			RateLimitPerHour: windows[a.Name()].RateLimitPerHour,
		})
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i].Name < providers[j].Name })

	return domain.Status{
		Providers: providers,
		Cache: domain.CacheStatus{
			EntryCount: s.cache.EntryCount(),
			TTLSeconds: int(s.cache.TTL().Seconds()),
			RemoteTier: s.cache.HasRemote(),
		},
	}
}

func (s *Service) limit(limit int) int {
	if limit > 0 {
		return limit
	}
	return s.cfg.DefaultLimit
}
