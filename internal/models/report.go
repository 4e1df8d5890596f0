package models

// Timeframe values accepted on summary requests.
const (
	TimeframeDay   = "24h"
	TimeframeWeek  = "7d"
	TimeframeMonth = "30d"
)

// DisasterQuery carries the filters a client submits when requesting a
// generated summary or action plan. DisasterType is the only required field;
// everything else changes phrasing, not validity.
type DisasterQuery struct {
	DisasterType string `json:"disasterType"`
	Location     string `json:"location,omitempty"`
	Severity     string `json:"severity,omitempty"`
	Population   string `json:"population,omitempty"`
	Resources    string `json:"resources,omitempty"`
	Timeframe    string `json:"timeframe,omitempty"`
}

// Recommendations holds the per-audience sub-buckets of a report's
// Recommendations section.
type Recommendations struct {
	Government string `json:"government"`
	NGOs       string `json:"ngos"`
	Citizens   string `json:"citizens"`
}

// StructuredReport is the fixed section set a cleaned summary parses into.
// Every field is always present in the JSON encoding, empty or not.
type StructuredReport struct {
	CurrentSituation     string          `json:"current_situation"`
	AffectedAreas        string          `json:"affected_areas"`
	EnvironmentalImpacts string          `json:"environmental_impacts"`
	ReliefEfforts        string          `json:"relief_efforts"`
	Recommendations      Recommendations `json:"recommendations"`
}
