// Package coursera adapts the public Coursera catalog API.
package coursera

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mkorolev/skill-scout/internal/domain"
	"github.com/mkorolev/skill-scout/internal/provider"
)

const (
	apiURL         = "https://api.coursera.org/api/courses.v1"
	courseBaseURL  = "https://www.coursera.org/learn/"
	requestTimeout = 8 * time.Second
)

type course struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"primaryLanguages,omitempty"`
}

type searchResponse struct {
	Elements []course `json:"elements"`
}

// Adapter is the course adapter for Coursera. The catalog endpoint is
// public: no credentials are needed beyond enabling the source.
type Adapter struct {
	APIURL string
	HTTP   *http.Client
}

// New creates the Coursera adapter.
func New() *Adapter {
	return &Adapter{
		APIURL: apiURL,
		HTTP:   &http.Client{Timeout: requestTimeout},
	}
}

func (a *Adapter) Name() string { return "coursera" }

func (a *Adapter) Kind() domain.Kind { return domain.KindCourse }

func (a *Adapter) Configured() bool { return true }

// Search queries the catalog and reduces each element to the common raw
// vocabulary. Catalog entries carry no rating or enrollment data, so those
// fields are left unset for the normalizer to null-fill.
func (a *Adapter) Search(ctx context.Context, query string, limit int) ([]domain.RawRecord, error) {
	q := url.Values{}
	q.Set("q", "search")
	q.Set("query", query)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("fields", "slug,description")

	var resp searchResponse
	if err := provider.GetJSON(ctx, a.Name(), a.HTTP, a.APIURL, q, nil, &resp); err != nil {
		return nil, err
	}

	records := make([]domain.RawRecord, 0, len(resp.Elements))
	for _, c := range resp.Elements {
		if c.ID == "" || c.Name == "" {
			continue
		}
		records = append(records, domain.RawRecord{
			Provider: a.Name(),
			Kind:     domain.KindCourse,
			Fields: map[string]any{
				"external_id": c.ID,
				"title":       c.Name,
				"description": c.Description,
				"url":         courseBaseURL + c.Slug,
				"language":    c.Language,
			},
		})
	}

	return records, nil
}
