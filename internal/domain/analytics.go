package domain

// Demand is the coarse demand level derived from a job sample size.
type Demand string

const (
	DemandLow    Demand = "low"
	DemandMedium Demand = "medium"
	DemandHigh   Demand = "high"
)

// LocationCount is one entry of the top-locations table.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// SkillFrequency is one entry of the required-skills table.
type SkillFrequency struct {
	Skill     string `json:"skill"`
	Frequency int    `json:"frequency"`
}

// Analytics is the derived market view for one skill. It is a pure function
// of the aggregated job sample and is cached independently of it.
type Analytics struct {
	Skill             string           `json:"skill"`
	Demand            Demand           `json:"demand"`
	AverageSalary     *float64         `json:"averageSalary"`
	TopLocations      []LocationCount  `json:"topLocations"`
	GrowthRatePercent float64          `json:"growthRatePercent"`
	RequiredSkills    []SkillFrequency `json:"requiredSkills"`
	JobCount          int              `json:"jobCount"`
}
