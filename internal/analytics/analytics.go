// Package analytics derives market aggregates from a job-record sample.
// Everything here is a pure function of its input, safe to recompute and
// cache independently of the aggregation that produced the records.
package analytics

import (
	"sort"
	"strings"

	"github.com/mkorolev/skill-scout/internal/domain"
)

const (
	topLocationCount = 5
	topSkillCount    = 10

	highDemandThreshold   = 100
	mediumDemandThreshold = 50
)

// Growth-rate estimates per skill, in percent. These are static editorial
// estimates, not derived from the job sample.
var growthBySkill = map[string]float64{
	"python":           22,
	"go":               28,
	"rust":             31,
	"javascript":       15,
	"typescript":       24,
	"java":             9,
	"kotlin":           18,
	"swift":            12,
	"react":            18,
	"kubernetes":       30,
	"terraform":        26,
	"sql":              7,
	"machine learning": 35,
	"data engineering": 29,
}

const defaultGrowthRate = 8.0

// Trends computes the market view for one skill over the given job sample.
func Trends(skill string, jobs []domain.Record) domain.Analytics {
	return domain.Analytics{
		Skill:             skill,
		Demand:            DemandLevel(len(jobs)),
		AverageSalary:     AverageSalary(jobs),
		TopLocations:      TopLocations(jobs, topLocationCount),
		GrowthRatePercent: GrowthRate(skill),
		RequiredSkills:    TopSkills(jobs, topSkillCount),
		JobCount:          len(jobs),
	}
}

// DemandLevel buckets a sample size: >100 high, 51-100 medium, else low.
func DemandLevel(count int) domain.Demand {
	switch {
	case count > highDemandThreshold:
		return domain.DemandHigh
	case count > mediumDemandThreshold:
		return domain.DemandMedium
	default:
		return domain.DemandLow
	}
}

// AverageSalary is the mean of range midpoints over records exposing a
// salary range, or nil when none do.
func AverageSalary(jobs []domain.Record) *float64 {
	sum := 0.0
	n := 0
	for _, job := range jobs {
		if job.Attributes.Salary == nil {
			continue
		}
		sum += job.Attributes.Salary.Midpoint()
		n++
	}

	if n == 0 {
		return nil
	}

	avg := sum / float64(n)
	return &avg
}

// TopLocations returns the most frequent locations, descending, capped at
// max. Frequency ties break alphabetically for deterministic output.
func TopLocations(jobs []domain.Record, max int) []domain.LocationCount {
	counts := make(map[string]int)
	for _, job := range jobs {
		location := strings.TrimSpace(job.Attributes.Location)
		if location == "" {
			continue
		}
		counts[location]++
	}

	out := make([]domain.LocationCount, 0, len(counts))
	for location, count := range counts {
		out = append(out, domain.LocationCount{Location: location, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Location < out[j].Location
	})

	if len(out) > max {
		out = out[:max]
	}
	return out
}

// TopSkills returns the most frequent skill tokens over the sample's
// requirement lists, descending, capped at max.
func TopSkills(jobs []domain.Record, max int) []domain.SkillFrequency {
	counts := make(map[string]int)
	for _, job := range jobs {
		for _, skill := range job.Attributes.Skills {
			token := strings.ToLower(strings.TrimSpace(skill))
			if token == "" {
				continue
			}
			counts[token]++
		}
	}

	out := make([]domain.SkillFrequency, 0, len(counts))
	for skill, frequency := range counts {
		out = append(out, domain.SkillFrequency{Skill: skill, Frequency: frequency})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Skill < out[j].Skill
	})

	if len(out) > max {
		out = out[:max]
	}
	return out
}

// GrowthRate looks the skill up in the static estimate table, falling back
// to the default for unknown skills.
func GrowthRate(skill string) float64 {
	if rate, ok := growthBySkill[strings.ToLower(strings.TrimSpace(skill))]; ok {
		return rate
	}
	return defaultGrowthRate
}
