package synthetic

import (
	"context"
	"strings"
	"testing"

	"github.com/mkorolev/skill-scout/internal/domain"
)

func TestCoursesAreLabeledAndDeterministic(t *testing.T) {
	first := Courses("udemy-sample", "go", 12)
	second := Courses("udemy-sample", "go", 12)

	if len(first) != 12 {
		t.Fatalf("got %d records, want 12", len(first))
	}

	seen := make(map[string]bool)
	for i, r := range first {
		if r.Provider != "udemy-sample" {
			t.Fatalf("provider = %s", r.Provider)
		}
		if r.Kind != domain.KindCourse {
			t.Fatalf("kind = %s", r.Kind)
		}
		title, _ := r.Fields["title"].(string)
		if !strings.HasPrefix(title, Label) {
			t.Fatalf("title %q is not labeled", title)
		}
		id, _ := r.Fields["external_id"].(string)
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true

		otherTitle, _ := second[i].Fields["title"].(string)
		if title != otherTitle {
			t.Fatalf("generation is not deterministic: %q vs %q", title, otherTitle)
		}
	}
}

func TestJobsOmitUnknownSalary(t *testing.T) {
	jobs := Jobs("adzuna-sample", "rust", len(jobTemplates))

	withSalary, withoutSalary := 0, 0
	for _, r := range jobs {
		_, hasMax := r.Fields["salary_max"]
		_, hasCurrency := r.Fields["currency"]
		if hasMax != hasCurrency {
			t.Fatalf("salary fields must appear together: %v", r.Fields)
		}
		if hasMax {
			withSalary++
		} else {
			withoutSalary++
		}
	}
	if withSalary == 0 || withoutSalary == 0 {
		t.Fatalf("expected a mix of salaried and unsalaried templates, got %d/%d", withSalary, withoutSalary)
	}
}

func TestSkillsIncludeQueryTerm(t *testing.T) {
	jobs := Jobs("x", "Kubernetes", 3)
	for _, r := range jobs {
		skills, ok := r.Fields["skills"].([]string)
		if !ok || len(skills) == 0 {
			t.Fatalf("missing skills on %v", r.Fields["external_id"])
		}
		if skills[0] != "kubernetes" {
			t.Fatalf("first skill = %s, want the query term", skills[0])
		}
	}
}

func TestAdapterRoutesByKind(t *testing.T) {
	courses := NewAdapter("coursera", domain.KindCourse)
	if courses.Configured() {
		t.Fatal("synthetic adapters must report unconfigured")
	}

	got, err := courses.Search(context.Background(), "go", 4)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d records, want 4", len(got))
	}
	if got[0].Provider != "coursera-sample" {
		t.Fatalf("provider = %s, want coursera-sample", got[0].Provider)
	}
	if got[0].Kind != domain.KindCourse {
		t.Fatalf("kind = %s", got[0].Kind)
	}

	jobs := NewAdapter("remotive", domain.KindJob)
	gotJobs, err := jobs.Search(context.Background(), "go", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotJobs[0].Kind != domain.KindJob {
		t.Fatalf("kind = %s, want job", gotJobs[0].Kind)
	}
}
