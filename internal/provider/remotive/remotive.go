// Package remotive adapts the public Remotive remote-jobs API.
package remotive

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
	apiURL         = "https://remotive.com/api/remote-jobs"
	requestTimeout = 8 * time.Second
)

type job struct {
	ID              int      `json:"id"`
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Location        string   `json:"candidate_required_location"`
	PublicationDate string   `json:"publication_date"`
	Tags            []string `json:"tags"`
}

type searchResponse struct {
	Jobs []job `json:"jobs"`
}

// Adapter is the job adapter for Remotive. Listings carry free-text salary
// only, so no structured salary range is emitted.
type Adapter struct {
	APIURL string
	HTTP   *http.Client
}

// New creates the Remotive adapter.
func New() *Adapter {
	return &Adapter{
		APIURL: apiURL,
		HTTP:   &http.Client{Timeout: requestTimeout},
	}
}

func (a *Adapter) Name() string { return "remotive" }

func (a *Adapter) Kind() domain.Kind { return domain.KindJob }

func (a *Adapter) Configured() bool { return true }

func (a *Adapter) Search(ctx context.Context, query string, limit int) ([]domain.RawRecord, error) {
	q := url.Values{}
	q.Set("search", query)
	q.Set("limit", strconv.Itoa(limit))

	var resp searchResponse
	if err := provider.GetJSON(ctx, a.Name(), a.HTTP, a.APIURL, q, nil, &resp); err != nil {
		return nil, err
	}

	records := make([]domain.RawRecord, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		if j.ID == 0 || j.Title == "" {
			continue
		}
		records = append(records, domain.RawRecord{
			Provider: a.Name(),
			Kind:     domain.KindJob,
			Fields: map[string]any{
				"external_id": strconv.Itoa(j.ID),
				"title":       j.Title,
				"description": j.Description,
				"url":         j.URL,
				"location":    j.Location,
				"remote":      true,
				"posted_at":   normalizeDate(j.PublicationDate),
				"skills":      j.Tags,
			},
		})
	}

	return records, nil
}

// normalizeDate converts Remotive's zone-less timestamps to RFC3339 UTC.
func normalizeDate(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return s
}
