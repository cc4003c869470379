package normalize

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mkorolev/skill-scout/internal/domain"
)

// Rank orders records by the composite score of their kind: courses by the
// weighted relevance score, jobs by recency then field completeness. Ties
// break by provider name then id, ascending, so identical input always
// yields identical order.
func Rank(records []domain.Record, term string) {
	term = strings.ToLower(strings.TrimSpace(term))
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j], term)
	})
}

// Truncate caps the ranked result at limit. It must only run after Rank so
// truncation never discards a higher-ranked record.
func Truncate(records []domain.Record, limit int) []domain.Record {
	if limit <= 0 || len(records) <= limit {
		return records
	}
	return records[:limit]
}

func less(a, b domain.Record, term string) bool {
	if a.Kind == domain.KindJob && b.Kind == domain.KindJob {
		pa, pb := postedAt(a), postedAt(b)
		if !pa.Equal(pb) {
			return pa.After(pb)
		}
		ca, cb := completeness(a), completeness(b)
		if ca != cb {
			return ca > cb
		}
	} else {
		sa, sb := CourseScore(a, term), CourseScore(b, term)
		if sa != sb {
			return sa > sb
		}
	}

	if a.Provider != b.Provider {
		return a.Provider < b.Provider
	}
	return a.ID < b.ID
}

// CourseScore computes the ranking score of a course record:
// 10 for a title match, 2 per rating point, 0.5*ln(enrollments+1), and a
// 5-point bonus for free courses.
func CourseScore(r domain.Record, term string) float64 {
	score := 0.0

	if term != "" && strings.Contains(strings.ToLower(r.Title), term) {
		score += 10
	}
	if r.Attributes.Rating != nil {
		score += 2 * *r.Attributes.Rating
	}
	if r.Attributes.Enrollments != nil {
		score += 0.5 * math.Log(float64(*r.Attributes.Enrollments)+1)
	}
	if r.Attributes.Free != nil && *r.Attributes.Free {
		score += 5
	}

	return score
}

func postedAt(r domain.Record) time.Time {
	if r.Attributes.Posted == nil {
		return time.Time{}
	}
	return *r.Attributes.Posted
}

func completeness(r domain.Record) int {
	n := 0
	if r.Description != "" {
		n++
	}
	if r.URL != "" {
		n++
	}
	if r.Attributes.Location != "" {
		n++
	}
	if r.Attributes.Salary != nil {
		n++
	}
	if r.Attributes.Remote != nil {
		n++
	}
	if len(r.Attributes.Skills) > 0 {
		n++
	}
	if r.Attributes.Posted != nil {
		n++
	}
	return n
}
