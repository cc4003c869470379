// Package normalize maps provider raw records onto the common record schema
// and orders them deterministically.
package normalize

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/mkorolev/skill-scout/internal/domain"
)

type rawCourse struct {
	ExternalID  string `mapstructure:"external_id"`
	Title       string
	Description string
	URL         string
	Language    string
	Level       string
	Rating      *float64
	Enrollments *int
	Price       *float64
	Free        *bool
	Skills      []string
}

type rawJob struct {
	ExternalID  string `mapstructure:"external_id"`
	Title       string
	Description string
	URL         string
	Location    string
	Remote      *bool
	SalaryMin   *float64 `mapstructure:"salary_min"`
	SalaryMax   *float64 `mapstructure:"salary_max"`
	Currency    string
	PostedAt    string `mapstructure:"posted_at"`
	Skills      []string
}

// Records maps every raw record onto the normalized schema, dropping
// undecodable entries and collapsing duplicates of the same
// (provider, external id) pair. Unknown optional attributes stay nil so all
// consumers see a uniform shape.
func Records(logger *zap.Logger, raws []domain.RawRecord) []domain.Record {
	seen := make(map[string]bool, len(raws))
	records := make([]domain.Record, 0, len(raws))

	for _, raw := range raws {
		record, err := one(raw)
		if err != nil {
			logger.Debug("dropping raw record", zap.String("provider", raw.Provider), zap.Error(err))
			continue
		}

		if seen[record.ID] {
			continue
		}
		seen[record.ID] = true

		records = append(records, record)
	}

	return records
}

func one(raw domain.RawRecord) (domain.Record, error) {
	switch raw.Kind {
	case domain.KindCourse:
		return course(raw)
	case domain.KindJob:
		return job(raw)
	default:
		return domain.Record{}, fmt.Errorf("unknown record kind %q", raw.Kind)
	}
}

func course(raw domain.RawRecord) (domain.Record, error) {
	var c rawCourse
	if err := decode(raw.Fields, &c); err != nil {
		return domain.Record{}, err
	}
	if c.ExternalID == "" || c.Title == "" {
		return domain.Record{}, fmt.Errorf("course record missing id or title")
	}

	return domain.Record{
		ID:          recordID(raw.Provider, c.ExternalID),
		Title:       c.Title,
		Description: c.Description,
		Provider:    raw.Provider,
		Kind:        domain.KindCourse,
		URL:         c.URL,
		Attributes: domain.Attributes{
			Rating:      c.Rating,
			Enrollments: c.Enrollments,
			Price:       c.Price,
			Free:        c.Free,
			Language:    c.Language,
			Level:       c.Level,
			Skills:      skills(c.Skills),
		},
	}, nil
}

func job(raw domain.RawRecord) (domain.Record, error) {
	var j rawJob
	if err := decode(raw.Fields, &j); err != nil {
		return domain.Record{}, err
	}
	if j.ExternalID == "" || j.Title == "" {
		return domain.Record{}, fmt.Errorf("job record missing id or title")
	}

	var salary *domain.SalaryRange
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMax > 0 {
		salary = &domain.SalaryRange{Min: *j.SalaryMin, Max: *j.SalaryMax, Currency: j.Currency}
	}

	var posted *time.Time
	if t, err := time.Parse(time.RFC3339, j.PostedAt); err == nil {
		t = t.UTC()
		posted = &t
	}

	return domain.Record{
		ID:          recordID(raw.Provider, j.ExternalID),
		Title:       j.Title,
		Description: j.Description,
		Provider:    raw.Provider,
		Kind:        domain.KindJob,
		URL:         j.URL,
		Attributes: domain.Attributes{
			Salary:   salary,
			Location: j.Location,
			Remote:   j.Remote,
			Posted:   posted,
			Skills:   skills(j.Skills),
		},
	}, nil
}

func decode(fields map[string]any, target any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(fields)
}

func recordID(provider, externalID string) string {
	return provider + ":" + externalID
}

func skills(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
