package aggregator

import (
	"context"
	"errors"
	"sort"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/mkorolev/skill-scout/internal/domain"
	"github.com/mkorolev/skill-scout/internal/normalize"
	"github.com/mkorolev/skill-scout/internal/provider"
	"github.com/mkorolev/skill-scout/internal/provider/synthetic"
)

// fallbackLabel attributes last-resort records generated when no provider
// contributed anything.
const fallbackLabel = "fallback"

type dispatchResult struct {
	provider string
	raws     []domain.RawRecord
	err      error
}

// aggregate runs one fan-out round: admission, concurrent dispatch, bounded
// collection, fallback, then normalize/filter/rank/truncate. Individual
// provider failures degrade the outcome, they never abort it.
func (s *Service) aggregate(ctx context.Context, q domain.Query, adapters []provider.Adapter) domain.Outcome {
	var admitted []provider.Adapter
	for _, a := range adapters {
		if !s.limiter.TryAdmit(a.Name()) {
			s.logger.Debug("provider rate limited, skipping this round", zap.String("provider", a.Name()))
			continue
		}
		admitted = append(admitted, a)
	}

	dispatchCtx, cancel := context.WithTimeout(ctx, s.cfg.AggregationTimeout)
	defer cancel()

	// Buffered so calls outliving the round can still settle and be
	// discarded instead of leaking a goroutine.
	results := make(chan dispatchResult, len(admitted))
	for _, a := range admitted {
		go func(a provider.Adapter) {
			raws, err := s.call(dispatchCtx, a, q)
			results <- dispatchResult{provider: a.Name(), raws: raws, err: err}
		}(a)
	}

	outcome := domain.Outcome{}
	pending := make(map[string]bool, len(admitted))
	configured := make(map[string]bool, len(admitted))
	for _, a := range admitted {
		pending[a.Name()] = true
		configured[a.Name()] = a.Configured()
	}
	configuredSucceeded := false

	var raws []domain.RawRecord
collect:
	for i := 0; i < len(admitted); i++ {
		select {
		case r := <-results:
			delete(pending, r.provider)
			if r.err != nil {
				s.logger.Warn("provider failed",
					zap.String("provider", r.provider),
					zap.String("reason", domain.FailureReason(r.err)),
					zap.Error(r.err),
				)
				outcome.ProvidersFailed = append(outcome.ProvidersFailed, domain.ProviderFailure{
					Provider: r.provider,
					Reason:   domain.FailureReason(r.err),
				})
				continue
			}
			outcome.ProvidersSucceeded = append(outcome.ProvidersSucceeded, r.provider)
			raws = append(raws, r.raws...)
			if configured[r.provider] {
				configuredSucceeded = true
			}
		case <-dispatchCtx.Done():
			for name := range pending {
				outcome.ProvidersFailed = append(outcome.ProvidersFailed, domain.ProviderFailure{
					Provider: name,
					Reason:   domain.ReasonTimeout,
				})
			}
			s.logger.Warn("aggregation timeout, abandoning outstanding providers",
				zap.Int("outstanding", len(pending)))
			break collect
		}
	}

	// Completion order is arbitrary; keep the outcome lists stable.
	sort.Strings(outcome.ProvidersSucceeded)
	sort.Slice(outcome.ProvidersFailed, func(i, j int) bool {
		return outcome.ProvidersFailed[i].Provider < outcome.ProvidersFailed[j].Provider
	})

	if len(outcome.ProvidersSucceeded) == 0 {
		raws = s.fallback(q)
	}

	// Synthetic-only data counts as fallback, whether it came from the
	// last-resort generator or from unconfigured sample adapters.
	outcome.UsedFallback = len(raws) > 0 && !configuredSucceeded

	records := normalize.Records(s.logger, raws)
	records = normalize.Run(s.logger, normalize.FromQuery(q.Filters), records)
	normalize.Rank(records, q.Text)
	outcome.Records = normalize.Truncate(records, q.Limit)

	return outcome
}

// call invokes one adapter, routed through its circuit breaker when one is
// installed.
func (s *Service) call(ctx context.Context, a provider.Adapter, q domain.Query) ([]domain.RawRecord, error) {
	cb, ok := s.breakers[a.Name()]
	if !ok {
		return a.Search(ctx, q.Text, q.Limit)
	}

	raws, err := cb.Execute(func() ([]domain.RawRecord, error) {
		return a.Search(ctx, q.Text, q.Limit)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &domain.ProviderError{Provider: a.Name(), Reason: domain.ReasonBreakerOpen, Err: err}
	}

	return raws, err
}

func (s *Service) fallback(q domain.Query) []domain.RawRecord {
	if q.Kind == domain.KindJob {
		return synthetic.Jobs(fallbackLabel, q.Text, q.Limit)
	}
	return synthetic.Courses(fallbackLabel, q.Text, q.Limit)
}
