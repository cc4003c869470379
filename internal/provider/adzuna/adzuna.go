// Package adzuna adapts the Adzuna job-search API, authenticated with an
// app-id/app-key pair passed as query parameters.
package adzuna

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mkorolev/skill-scout/internal/domain"
	"github.com/mkorolev/skill-scout/internal/provider"
)

const (
	apiURL         = "https://api.adzuna.com/v1/api/jobs"
	defaultCountry = "gb"
	requestTimeout = 8 * time.Second
)

type job struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	RedirectURL string  `json:"redirect_url"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	Created     string  `json:"created"`
	Location    struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

type searchResponse struct {
	Results []job `json:"results"`
}

// Adapter is the job adapter for Adzuna.
type Adapter struct {
	APIURL  string
	Country string
	HTTP    *http.Client
	appID   string
	appKey  string
}

// New creates the Adzuna adapter. country selects the regional index and
// defaults to "gb".
func New(appID, appKey, country string) *Adapter {
	if country == "" {
		country = defaultCountry
	}
	return &Adapter{
		APIURL:  apiURL,
		Country: country,
		HTTP:    &http.Client{Timeout: requestTimeout},
		appID:   appID,
		appKey:  appKey,
	}
}

func (a *Adapter) Name() string { return "adzuna" }

func (a *Adapter) Kind() domain.Kind { return domain.KindJob }

func (a *Adapter) Configured() bool { return true }

func (a *Adapter) Search(ctx context.Context, query string, limit int) ([]domain.RawRecord, error) {
	q := url.Values{}
	q.Set("app_id", a.appID)
	q.Set("app_key", a.appKey)
	q.Set("what", query)
	q.Set("results_per_page", strconv.Itoa(limit))
	q.Set("content-type", "application/json")

	searchURL := fmt.Sprintf("%s/%s/search/1", a.APIURL, a.Country)

	var resp searchResponse
	if err := provider.GetJSON(ctx, a.Name(), a.HTTP, searchURL, q, nil, &resp); err != nil {
		return nil, err
	}

	records := make([]domain.RawRecord, 0, len(resp.Results))
	for _, j := range resp.Results {
		if j.ID == "" || j.Title == "" {
			continue
		}
		fields := map[string]any{
			"external_id": j.ID,
			"title":       j.Title,
			"description": j.Description,
			"url":         j.RedirectURL,
			"location":    j.Location.DisplayName,
			"posted_at":   j.Created,
		}
		if j.SalaryMax > 0 {
			fields["salary_min"] = j.SalaryMin
			fields["salary_max"] = j.SalaryMax
		}
		records = append(records, domain.RawRecord{
			Provider: a.Name(),
			Kind:     domain.KindJob,
			Fields:   fields,
		})
	}

	return records, nil
}
