// Package provider defines the adapter contract every content source
// implements and the HTTP plumbing shared by the real adapters.
package provider

import (
	"context"

	"github.com/mkorolev/skill-scout/internal/domain"
)

// Adapter translates a generic query into one source's API call and reduces
// the reply to the common raw-record vocabulary. Adapters never talk to each
// other and must only be invoked after rate-limit admission.
type Adapter interface {
	Name() string
	Kind() domain.Kind

	// Configured reports whether real credentials/configuration back this
	// adapter. Synthetic stand-ins return false.
	Configured() bool

	// Search returns up to limit raw records for the query, or a typed
	// *domain.ProviderError on any failure.
	Search(ctx context.Context, query string, limit int) ([]domain.RawRecord, error)
}

// ByKind returns the adapters serving the given record kind, optionally
// restricted to the named providers.
func ByKind(adapters []Adapter, kind domain.Kind, names []string) []Adapter {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	var out []Adapter
	for _, a := range adapters {
		if a.Kind() != kind {
			continue
		}
		if len(wanted) > 0 && !wanted[a.Name()] {
			continue
		}
		out = append(out, a)
	}
	return out
}
