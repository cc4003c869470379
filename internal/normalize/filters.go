package normalize

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mkorolev/skill-scout/internal/domain"
)

// Filter is one post-normalization narrowing step. Filters are lenient:
// a record whose attribute is unknown passes rather than being dropped.
type Filter interface {
	Name() string
	Apply(records []domain.Record) []domain.Record
}

// FromQuery builds the filter chain for the set fields of the query filters.
func FromQuery(f domain.Filters) []Filter {
	var filters []Filter
	if f.Level != "" {
		filters = append(filters, levelFilter(f.Level))
	}
	if f.Location != "" {
		filters = append(filters, locationFilter(f.Location))
	}
	if f.Remote != nil {
		filters = append(filters, remoteFilter(*f.Remote))
	}
	if f.Language != "" {
		filters = append(filters, languageFilter(f.Language))
	}
	return filters
}

// Run applies the filters in order, logging initial/dropped/left counts for
// each step.
func Run(logger *zap.Logger, filters []Filter, records []domain.Record) []domain.Record {
	for _, f := range filters {
		initial := len(records)
		records = f.Apply(records)

		logger.Debug("filter step",
			zap.String("name", f.Name()),
			zap.Int("initial", initial),
			zap.Int("dropped", initial-len(records)),
			zap.Int("left", len(records)),
		)
	}
	return records
}

type funcFilter struct {
	name string
	keep func(domain.Record) bool
}

func (f funcFilter) Name() string { return f.name }

func (f funcFilter) Apply(records []domain.Record) []domain.Record {
	kept := records[:0:0]
	for _, r := range records {
		if f.keep(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

func levelFilter(level string) Filter {
	return funcFilter{name: "level", keep: func(r domain.Record) bool {
		have := strings.ToLower(r.Attributes.Level)
		return have == "" || have == "all levels" || have == strings.ToLower(level)
	}}
}

func locationFilter(location string) Filter {
	return funcFilter{name: "location", keep: func(r domain.Record) bool {
		have := strings.ToLower(r.Attributes.Location)
		return have == "" || strings.Contains(have, strings.ToLower(location))
	}}
}

func remoteFilter(remote bool) Filter {
	return funcFilter{name: "remote", keep: func(r domain.Record) bool {
		return r.Attributes.Remote == nil || *r.Attributes.Remote == remote
	}}
}

func languageFilter(language string) Filter {
	return funcFilter{name: "language", keep: func(r domain.Record) bool {
		have := strings.ToLower(r.Attributes.Language)
		return have == "" || strings.HasPrefix(have, strings.ToLower(language))
	}}
}
