package domain

import "time"

// RawRecord is a provider reply reduced to a common field vocabulary by its
// adapter. It never leaves the aggregation path: the normalizer consumes it
// and only Record is exposed downstream.
type RawRecord struct {
	Provider string
	Kind     Kind
	Fields   map[string]any
}

// SalaryRange is the advertised salary span of a job record.
type SalaryRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}

// Midpoint returns the center of the range.
func (s SalaryRange) Midpoint() float64 {
	return (s.Min + s.Max) / 2
}

// Attributes carries the optional per-record fields. Unknown optionals stay
// nil rather than being omitted, so consumers see a uniform shape.
type Attributes struct {
	Rating      *float64     `json:"rating"`
	Enrollments *int         `json:"enrollments"`
	Price       *float64     `json:"price"`
	Free        *bool        `json:"free"`
	Salary      *SalaryRange `json:"salaryRange"`
	Location    string       `json:"location"`
	Remote      *bool        `json:"remote"`
	Language    string       `json:"language"`
	Level       string       `json:"level"`
	Posted      *time.Time   `json:"posted"`
	Skills      []string     `json:"skills"`
}

// Record is the normalized course or job shape returned to callers.
// Immutable after creation. ID is provider-prefixed and unique within a
// response.
type Record struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Provider    string     `json:"provider"`
	Kind        Kind       `json:"kind"`
	Attributes  Attributes `json:"attributes"`
	URL         string     `json:"url"`
}

// ProviderFailure records one provider that did not contribute to a round.
type ProviderFailure struct {
	Provider string `json:"provider"`
	Reason   string `json:"reason"`
}

// Outcome is what one aggregation round produces before caching.
type Outcome struct {
	Records            []Record          `json:"records"`
	ProvidersSucceeded []string          `json:"providersSucceeded"`
	ProvidersFailed    []ProviderFailure `json:"providersFailed"`
	UsedFallback       bool              `json:"usedFallback"`
}

// SkillCourses pairs a skill with its recommended courses.
type SkillCourses struct {
	Skill   string   `json:"skill"`
	Courses []Record `json:"courses"`
}

// ProviderStatus describes one configured source for the status endpoint.
type ProviderStatus struct {
	Name             string `json:"name"`
	Kind             Kind   `json:"kind"`
	Configured       bool   `json:"configured"`
	RateLimitPerHour int    `json:"rateLimitPerHour"`
}

// CacheStatus summarizes the local cache tier.
type CacheStatus struct {
	EntryCount int  `json:"entryCount"`
	TTLSeconds int  `json:"ttlSeconds"`
	RemoteTier bool `json:"remoteTier"`
}

// Status is the aggregator's operational snapshot.
type Status struct {
	Providers []ProviderStatus `json:"providers"`
	Cache     CacheStatus      `json:"cache"`
}
