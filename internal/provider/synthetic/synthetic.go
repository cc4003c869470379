// Package synthetic produces deterministic, clearly-labeled sample records.
// It backs two flows: sources without credentials get a synthetic adapter so
// development and demo setups keep working, and the orchestrator uses the
// same generator as its last-resort fallback.
package synthetic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mkorolev/skill-scout/internal/domain"
)

// Label marks every synthetic record so it can never be mistaken for
// provider data.
const Label = "[sample]"

var courseTemplates = []struct {
	title       string
	level       string
	rating      float64
	enrollments int
	price       float64
}{
	{"%s Fundamentals", "beginner", 4.6, 125000, 0},
	{"Advanced %s", "advanced", 4.4, 31000, 49.99},
	{"%s for Working Professionals", "intermediate", 4.2, 18500, 29.99},
	{"The Complete %s Bootcamp", "beginner", 4.7, 210000, 89.99},
	{"%s Crash Course", "beginner", 4.0, 56000, 0},
	{"Practical %s Projects", "intermediate", 4.3, 12400, 19.99},
	{"%s Interview Preparation", "advanced", 4.5, 8700, 39.99},
	{"Hands-On %s", "intermediate", 4.1, 27300, 0},
}

var jobTemplates = []struct {
	title     string
	remote    bool
	salaryMin float64
	salaryMax float64
}{
	{"Senior %s Engineer", true, 120000, 165000},
	{"%s Developer", false, 85000, 110000},
	{"Staff %s Engineer", true, 160000, 210000},
	{"Junior %s Developer", false, 55000, 75000},
	{"%s Consultant", true, 0, 0},
	{"Lead %s Engineer", false, 140000, 180000},
}

var jobLocations = []string{
	"London", "Berlin", "New York", "Remote", "Amsterdam", "London", "Austin", "Berlin",
}

var baseSkills = []string{"git", "sql", "docker", "linux", "agile", "rest apis"}

// Courses generates limit deterministic sample course records attributed to
// the given provider label.
func Courses(providerLabel, query string, limit int) []domain.RawRecord {
	topic := cases.Title(language.English).String(strings.TrimSpace(query))
	records := make([]domain.RawRecord, 0, limit)

	for i := 0; i < limit; i++ {
		tpl := courseTemplates[i%len(courseTemplates)]
		id := fmt.Sprintf("sample-course-%04d", i)
		records = append(records, domain.RawRecord{
			Provider: providerLabel,
			Kind:     domain.KindCourse,
			Fields: map[string]any{
				"external_id": id,
				"title":       fmt.Sprintf("%s %s", Label, fmt.Sprintf(tpl.title, topic)),
				"description": fmt.Sprintf("Sample course about %s, generated because no provider data was available.", topic),
				"url":         fmt.Sprintf("https://example.invalid/courses/%s", id),
				"language":    "en",
				"level":       tpl.level,
				"rating":      tpl.rating,
				"enrollments": tpl.enrollments + i, // keeps duplicated templates distinguishable
				"price":       tpl.price,
				"free":        tpl.price == 0,
				"skills":      skillsFor(query, i),
			},
		})
	}

	return records
}

// Jobs generates limit deterministic sample job records attributed to the
// given provider label.
func Jobs(providerLabel, query string, limit int) []domain.RawRecord {
	topic := cases.Title(language.English).String(strings.TrimSpace(query))
	day := time.Now().UTC().Truncate(24 * time.Hour)
	records := make([]domain.RawRecord, 0, limit)

	for i := 0; i < limit; i++ {
		tpl := jobTemplates[i%len(jobTemplates)]
		id := fmt.Sprintf("sample-job-%04d", i)
		fields := map[string]any{
			"external_id": id,
			"title":       fmt.Sprintf("%s %s", Label, fmt.Sprintf(tpl.title, topic)),
			"description": fmt.Sprintf("Sample vacancy for %s, generated because no provider data was available.", topic),
			"url":         fmt.Sprintf("https://example.invalid/jobs/%s", id),
			"location":    jobLocations[i%len(jobLocations)],
			"remote":      tpl.remote,
			"posted_at":   day.AddDate(0, 0, -(i % 30)).Format(time.RFC3339),
			"skills":      skillsFor(query, i),
		}
		if tpl.salaryMax > 0 {
			fields["salary_min"] = tpl.salaryMin
			fields["salary_max"] = tpl.salaryMax
			fields["currency"] = "USD"
		}
		records = append(records, domain.RawRecord{
			Provider: providerLabel,
			Kind:     domain.KindJob,
			Fields:   fields,
		})
	}

	return records
}

func skillsFor(query string, i int) []string {
	skills := []string{strings.ToLower(strings.TrimSpace(query))}
	for j := 0; j < 3; j++ {
		skills = append(skills, baseSkills[(i+j)%len(baseSkills)])
	}
	return skills
}

// Adapter is the first-class stand-in used when a source has no credentials
// configured.
type Adapter struct {
	name string
	kind domain.Kind
}

// NewAdapter creates a synthetic stand-in for the named source.
func NewAdapter(name string, kind domain.Kind) *Adapter {
	return &Adapter{name: name, kind: kind}
}

func (a *Adapter) Name() string { return a.name }

func (a *Adapter) Kind() domain.Kind { return a.kind }

func (a *Adapter) Configured() bool { return false }

// Search generates the sample set. It never fails.
func (a *Adapter) Search(_ context.Context, query string, limit int) ([]domain.RawRecord, error) {
	label := a.name + "-sample"
	if a.kind == domain.KindJob {
		return Jobs(label, query, limit), nil
	}
	return Courses(label, query, limit), nil
}
