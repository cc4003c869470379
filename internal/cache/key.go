package cache

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/goccy/go-json"

	"github.com/mkorolev/skill-scout/internal/domain"
)

// Key derives the deterministic cache key for a search round. The key is
// namespaced by record kind so administrative clears can target one family,
// and is invariant under provider-set ordering.
func Key(q domain.Query, providers []string) string {
	sorted := append([]string(nil), providers...)
	sort.Strings(sorted)

	payload, _ := json.Marshal(struct {
		Text      string         `json:"text"`
		Filters   domain.Filters `json:"filters"`
		Limit     int            `json:"limit"`
		Providers []string       `json:"providers"`
	}{q.Term(), q.Filters, q.Limit, sorted})

	return fmt.Sprintf("%s:%x", q.Kind, sha256.Sum256(payload))
}

// TrendsKey derives the cache key for one skill's market analytics.
func TrendsKey(skill string) string {
	return fmt.Sprintf("trends:%x", sha256.Sum256([]byte(skill)))
}
