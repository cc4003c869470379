package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/mkorolev/skill-scout/internal/domain"
)

const userAgent = "mkorolev/skill-scout"

// GetJSON issues one GET request and decodes the 2xx body into target. Any
// failure comes back as a *domain.ProviderError carrying the provider name
// and a classified reason.
func GetJSON(ctx context.Context, provider string, client *http.Client, rawURL string, q url.Values, header http.Header, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &domain.ProviderError{Provider: provider, Reason: domain.ReasonUnreachable, Err: err}
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	resp, err := client.Do(req)
	if err != nil {
		return &domain.ProviderError{Provider: provider, Reason: classify(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.ProviderError{
			Provider: provider,
			Reason:   fmt.Sprintf("%s %d", domain.ReasonStatus, resp.StatusCode),
			Err:      fmt.Errorf("bad status: %s", resp.Status),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &domain.ProviderError{Provider: provider, Reason: domain.ReasonDecode, Err: err}
	}

	return nil
}

func classify(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domain.ReasonTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return domain.ReasonTimeout
	default:
		return domain.ReasonUnreachable
	}
}
