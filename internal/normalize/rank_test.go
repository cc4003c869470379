package normalize

import (
	"math"
	"testing"
	"time"

	"github.com/mkorolev/skill-scout/internal/domain"
)

func courseRecord(id, provider, title string, rating float64, enrollments int, free bool) domain.Record {
	return domain.Record{
		ID:       provider + ":" + id,
		Title:    title,
		Provider: provider,
		Kind:     domain.KindCourse,
		Attributes: domain.Attributes{
			Rating:      &rating,
			Enrollments: &enrollments,
			Free:        &free,
		},
	}
}

func TestCourseScoreFormula(t *testing.T) {
	r := courseRecord("1", "p", "Learn Python Fast", 4.5, 999, true)

	got := CourseScore(r, "python")
	want := 10 + 2*4.5 + 0.5*math.Log(1000) + 5
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", got, want)
	}

	// No title match, not free.
	r2 := courseRecord("2", "p", "Data Course", 3.0, 0, false)
	got2 := CourseScore(r2, "python")
	want2 := 2 * 3.0
	if math.Abs(got2-want2) > 1e-9 {
		t.Fatalf("score = %v, want %v", got2, want2)
	}
}

func TestRankCoursesDescendingWithTieBreaks(t *testing.T) {
	records := []domain.Record{
		courseRecord("1", "zeta", "Go Course", 4.0, 100, false),
		courseRecord("1", "alpha", "Go Course", 4.0, 100, false),
		courseRecord("0", "zeta", "Go Course", 4.0, 100, false),
		courseRecord("9", "alpha", "Go Masterclass", 5.0, 100000, true),
	}

	Rank(records, "go")

	wantOrder := []string{"alpha:9", "alpha:1", "zeta:0", "zeta:1"}
	for i, want := range wantOrder {
		if records[i].ID != want {
			t.Fatalf("position %d: got %s, want %s", i, records[i].ID, want)
		}
	}
}

func TestRankJobsByRecencyThenCompleteness(t *testing.T) {
	newer := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	remote := true

	sparse := domain.Record{
		ID: "p:sparse", Provider: "p", Kind: domain.KindJob,
		Attributes: domain.Attributes{Posted: &older},
	}
	full := domain.Record{
		ID: "p:full", Provider: "p", Kind: domain.KindJob,
		Description: "desc", URL: "https://example.com",
		Attributes: domain.Attributes{
			Posted:   &older,
			Location: "Berlin",
			Remote:   &remote,
			Salary:   &domain.SalaryRange{Min: 1, Max: 2},
			Skills:   []string{"go"},
		},
	}
	fresh := domain.Record{
		ID: "p:fresh", Provider: "p", Kind: domain.KindJob,
		Attributes: domain.Attributes{Posted: &newer},
	}

	records := []domain.Record{sparse, full, fresh}
	Rank(records, "go")

	if records[0].ID != "p:fresh" {
		t.Fatalf("most recent job must rank first, got %s", records[0].ID)
	}
	if records[1].ID != "p:full" {
		t.Fatalf("same-day jobs must rank by completeness, got %s", records[1].ID)
	}
}

func TestTruncateOnlyAfterRanking(t *testing.T) {
	records := []domain.Record{
		courseRecord("low", "p", "Unrelated", 1.0, 0, false),
		courseRecord("high", "p", "Go Course", 5.0, 10000, true),
	}

	Rank(records, "go")
	got := Truncate(records, 1)

	if len(got) != 1 || got[0].ID != "p:high" {
		t.Fatalf("truncation must keep the best record, got %v", got)
	}

	if len(Truncate(records, 10)) != 2 {
		t.Fatalf("limit above the record count must be a no-op")
	}
}
