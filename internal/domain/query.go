package domain

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two record families served by the aggregator.
type Kind string

const (
	KindCourse Kind = "course"
	KindJob    Kind = "job"
)

// Filters narrows an aggregated result set. Zero values mean "no constraint".
type Filters struct {
	Level    string
	Location string
	Remote   *bool
	Language string
}

// Query is the immutable unit of work handed to the orchestrator.
type Query struct {
	Text    string
	Kind    Kind
	Filters Filters
	Limit   int
}

// Validate reports malformed caller input. This is the only class of error
// the aggregator surfaces to its caller.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: query text must not be empty", ErrInvalidQuery)
	}

	if q.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidQuery, q.Limit)
	}

	if q.Kind != KindCourse && q.Kind != KindJob {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidQuery, q.Kind)
	}

	return nil
}

// Term returns the lowercased search term used for matching and scoring.
func (q Query) Term() string {
	return strings.ToLower(strings.TrimSpace(q.Text))
}
