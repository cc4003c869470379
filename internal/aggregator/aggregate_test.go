package aggregator

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mkorolev/skill-scout/internal/cache"
	"github.com/mkorolev/skill-scout/internal/domain"
	"github.com/mkorolev/skill-scout/internal/provider"
	"github.com/mkorolev/skill-scout/internal/ratelimit"
)

type fakeAdapter struct {
	name       string
	kind       domain.Kind
	raws       []domain.RawRecord
	err        error
	delay      time.Duration
	configured bool
	calls      atomic.Int64
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Kind() domain.Kind { return f.kind }

func (f *fakeAdapter) Configured() bool { return f.configured }

func (f *fakeAdapter) Search(ctx context.Context, _ string, _ int) ([]domain.RawRecord, error) {
	f.calls.Add(1)

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, &domain.ProviderError{Provider: f.name, Reason: domain.ReasonTimeout, Err: ctx.Err()}
		}
	}

	if f.err != nil {
		return nil, f.err
	}
	return f.raws, nil
}

func courseRaw(providerName, id, title string, rating float64, enrollments int, free bool) domain.RawRecord {
	return domain.RawRecord{
		Provider: providerName,
		Kind:     domain.KindCourse,
		Fields: map[string]any{
			"external_id": id,
			"title":       title,
			"description": "about " + title,
			"url":         "https://example.com/" + id,
			"rating":      rating,
			"enrollments": enrollments,
			"free":        free,
		},
	}
}

func jobRaw(providerName, id, title string, salaryMin, salaryMax float64, location string) domain.RawRecord {
	fields := map[string]any{
		"external_id": id,
		"title":       title,
		"url":         "https://example.com/" + id,
		"location":    location,
		"posted_at":   "2026-08-01T00:00:00Z",
		"skills":      []string{"git", "sql"},
	}
	if salaryMax > 0 {
		fields["salary_min"] = salaryMin
		fields["salary_max"] = salaryMax
	}
	return domain.RawRecord{Provider: providerName, Kind: domain.KindJob, Fields: fields}
}

func newTestService(adapters []provider.Adapter, limits map[string]int) *Service {
	logger := zap.NewNop()
	return New(
		logger,
		adapters,
		ratelimit.New(limits),
		cache.NewTiered(logger, nil, time.Minute),
		Config{AggregationTimeout: 300 * time.Millisecond},
	)
}

func TestAggregateTwoProvidersTruncatesAfterRanking(t *testing.T) {
	one := &fakeAdapter{name: "alpha", kind: domain.KindCourse, configured: true, raws: []domain.RawRecord{
		courseRaw("alpha", "1", "Python Basics", 4.0, 1000, false),
		courseRaw("alpha", "2", "Python Deep Dive", 4.5, 50000, false),
		courseRaw("alpha", "3", "Data Things", 3.0, 10, false),
	}}
	two := &fakeAdapter{name: "beta", kind: domain.KindCourse, configured: true, raws: []domain.RawRecord{
		courseRaw("beta", "1", "Python for All", 4.9, 200000, true),
		courseRaw("beta", "2", "Intro to Python", 4.2, 300, false),
		courseRaw("beta", "3", "Unrelated", 1.0, 5, false),
	}}

	s := newTestService([]provider.Adapter{one, two}, nil)
	q := domain.Query{Text: "python", Kind: domain.KindCourse, Limit: 5}

	outcome := s.aggregate(context.Background(), q, []provider.Adapter{one, two})

	if len(outcome.ProvidersFailed) != 0 {
		t.Fatalf("expected no failures, got %v", outcome.ProvidersFailed)
	}
	if outcome.UsedFallback {
		t.Fatalf("fallback must not fire when providers succeed")
	}
	if len(outcome.Records) != 5 {
		t.Fatalf("expected 5 records (truncated from 6), got %d", len(outcome.Records))
	}
	if outcome.Records[0].ID != "beta:1" {
		t.Fatalf("expected the free, highly-rated python course first, got %s", outcome.Records[0].ID)
	}
	// The lowest-scored record is the one truncated away.
	for _, r := range outcome.Records {
		if r.ID == "beta:3" {
			t.Fatalf("truncation dropped a higher-ranked record instead of the lowest")
		}
	}
}

func TestAggregateDeterministicOrder(t *testing.T) {
	one := &fakeAdapter{name: "alpha", kind: domain.KindCourse, configured: true, raws: []domain.RawRecord{
		courseRaw("alpha", "1", "Go Course", 4.0, 100, false),
		courseRaw("alpha", "2", "Go Course", 4.0, 100, false),
	}}
	two := &fakeAdapter{name: "beta", kind: domain.KindCourse, configured: true, raws: []domain.RawRecord{
		courseRaw("beta", "1", "Go Course", 4.0, 100, false),
	}}

	s := newTestService([]provider.Adapter{one, two}, nil)
	q := domain.Query{Text: "go", Kind: domain.KindCourse, Limit: 10}

	first := s.aggregate(context.Background(), q, []provider.Adapter{one, two})
	second := s.aggregate(context.Background(), q, []provider.Adapter{two, one})

	if len(first.Records) != len(second.Records) {
		t.Fatalf("record counts differ: %d vs %d", len(first.Records), len(second.Records))
	}
	for i := range first.Records {
		if first.Records[i].ID != second.Records[i].ID {
			t.Fatalf("order differs at %d: %s vs %s", i, first.Records[i].ID, second.Records[i].ID)
		}
	}
}

func TestAggregateToleratesTimeout(t *testing.T) {
	slow := &fakeAdapter{name: "slow", kind: domain.KindJob, configured: true, delay: 5 * time.Second}
	fast := &fakeAdapter{name: "fast", kind: domain.KindJob, configured: true, raws: []domain.RawRecord{
		jobRaw("fast", "1", "Go Engineer", 100, 200, "Berlin"),
		jobRaw("fast", "2", "Go Developer", 0, 0, "London"),
	}}

	s := newTestService([]provider.Adapter{slow, fast}, nil)
	q := domain.Query{Text: "go", Kind: domain.KindJob, Limit: 10}

	outcome := s.aggregate(context.Background(), q, []provider.Adapter{slow, fast})

	if len(outcome.Records) != 2 {
		t.Fatalf("expected the fast provider's 2 records, got %d", len(outcome.Records))
	}
	if outcome.UsedFallback {
		t.Fatalf("fallback must not fire: one provider succeeded")
	}
	if len(outcome.ProvidersFailed) != 1 {
		t.Fatalf("expected 1 failed provider, got %v", outcome.ProvidersFailed)
	}
	failed := outcome.ProvidersFailed[0]
	if failed.Provider != "slow" || failed.Reason != domain.ReasonTimeout {
		t.Fatalf("unexpected failure entry: %+v", failed)
	}
}

func TestAggregateAllDeniedFallsBack(t *testing.T) {
	a := &fakeAdapter{name: "alpha", kind: domain.KindCourse, configured: true}
	limits := map[string]int{"alpha": 1}

	s := newTestService([]provider.Adapter{a}, limits)

	// Exhaust the only admission of the hour.
	if !s.limiter.TryAdmit("alpha") {
		t.Fatalf("setup: first admission must pass")
	}

	q := domain.Query{Text: "python", Kind: domain.KindCourse, Limit: 5}
	outcome := s.aggregate(context.Background(), q, []provider.Adapter{a})

	if !outcome.UsedFallback {
		t.Fatalf("expected fallback when every provider is rate limited")
	}
	if len(outcome.Records) == 0 {
		t.Fatalf("fallback result must be non-empty")
	}
	if a.calls.Load() != 0 {
		t.Fatalf("denied provider must not be called")
	}
	// Denied providers are excluded, not failed.
	if len(outcome.ProvidersFailed) != 0 {
		t.Fatalf("rate-limit denial must not be recorded as a failure: %v", outcome.ProvidersFailed)
	}
}

func TestAggregateAllFailedFallsBack(t *testing.T) {
	a := &fakeAdapter{name: "alpha", kind: domain.KindJob, configured: true,
		err: &domain.ProviderError{Provider: "alpha", Reason: domain.ReasonStatus + " 500"}}

	s := newTestService([]provider.Adapter{a}, nil)
	q := domain.Query{Text: "rust", Kind: domain.KindJob, Limit: 5}

	outcome := s.aggregate(context.Background(), q, []provider.Adapter{a})

	if !outcome.UsedFallback {
		t.Fatalf("expected fallback when every provider failed")
	}
	if len(outcome.Records) == 0 {
		t.Fatalf("fallback result must be non-empty")
	}
	if len(outcome.ProvidersFailed) != 1 || !strings.HasPrefix(outcome.ProvidersFailed[0].Reason, domain.ReasonStatus) {
		t.Fatalf("unexpected failures: %v", outcome.ProvidersFailed)
	}
	for _, r := range outcome.Records {
		if !strings.Contains(r.Title, "[sample]") {
			t.Fatalf("fallback records must be labeled, got title %q", r.Title)
		}
	}
}

func TestAggregateSyntheticAdaptersCountAsFallback(t *testing.T) {
	sample := &fakeAdapter{name: "coursera", kind: domain.KindCourse, configured: false, raws: []domain.RawRecord{
		courseRaw("coursera-sample", "s1", "[sample] Python Fundamentals", 4.6, 1000, true),
	}}

	s := newTestService([]provider.Adapter{sample}, nil)
	q := domain.Query{Text: "python", Kind: domain.KindCourse, Limit: 5}

	outcome := s.aggregate(context.Background(), q, []provider.Adapter{sample})

	if !outcome.UsedFallback {
		t.Fatalf("synthetic-only data must be flagged as fallback")
	}
	if len(outcome.Records) == 0 {
		t.Fatalf("expected the sample records")
	}
}

func TestAggregateUniqueIDs(t *testing.T) {
	// Both providers return the same external ids; the same provider also
	// duplicates one of its own records.
	one := &fakeAdapter{name: "alpha", kind: domain.KindCourse, configured: true, raws: []domain.RawRecord{
		courseRaw("alpha", "1", "Go Course", 4.0, 100, false),
		courseRaw("alpha", "1", "Go Course", 4.0, 100, false),
	}}
	two := &fakeAdapter{name: "beta", kind: domain.KindCourse, configured: true, raws: []domain.RawRecord{
		courseRaw("beta", "1", "Go Course", 4.0, 100, false),
	}}

	s := newTestService([]provider.Adapter{one, two}, nil)
	q := domain.Query{Text: "go", Kind: domain.KindCourse, Limit: 10}

	outcome := s.aggregate(context.Background(), q, []provider.Adapter{one, two})

	seen := make(map[string]bool)
	for _, r := range outcome.Records {
		if seen[r.ID] {
			t.Fatalf("duplicate id %s in response", r.ID)
		}
		seen[r.ID] = true
	}
	if len(outcome.Records) != 2 {
		t.Fatalf("expected 2 records after dedupe, got %d", len(outcome.Records))
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	failing := &fakeAdapter{name: "alpha", kind: domain.KindJob, configured: true,
		err: &domain.ProviderError{Provider: "alpha", Reason: domain.ReasonUnreachable, Err: fmt.Errorf("conn refused")}}

	s := newTestService([]provider.Adapter{failing}, nil)
	q := domain.Query{Text: "go", Kind: domain.KindJob, Limit: 5}

	for i := 0; i < breakerConsecutiveFailures; i++ {
		s.aggregate(context.Background(), q, []provider.Adapter{failing})
	}

	calls := failing.calls.Load()
	outcome := s.aggregate(context.Background(), q, []provider.Adapter{failing})

	if failing.calls.Load() != calls {
		t.Fatalf("open breaker must not reach the adapter")
	}
	if len(outcome.ProvidersFailed) != 1 || outcome.ProvidersFailed[0].Reason != domain.ReasonBreakerOpen {
		t.Fatalf("expected a breaker-open failure, got %v", outcome.ProvidersFailed)
	}
}
