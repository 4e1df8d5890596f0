package models

import "fmt"

// ActionPlan is the structured disaster response plan the plan generator
// must produce. Every list field needs at least one entry to validate.
type ActionPlan struct {
	DisasterType         string   `json:"disaster_type"`
	ImmediateActions     []string `json:"immediate_actions"`
	ResourceMobilization []string `json:"resource_mobilization"`
	LongTermMeasures     []string `json:"long_term_measures"`
	Stakeholders         []string `json:"stakeholders"`
	Recommendations      []string `json:"recommendations"`
}

func (p *ActionPlan) Validate() error {
	if p.DisasterType == "" {
		return fmt.Errorf("action plan missing disaster_type")
	}
	lists := map[string][]string{
		"immediate_actions":     p.ImmediateActions,
		"resource_mobilization": p.ResourceMobilization,
		"long_term_measures":    p.LongTermMeasures,
		"stakeholders":          p.Stakeholders,
		"recommendations":       p.Recommendations,
	}
	for name, items := range lists {
		if len(items) == 0 {
			return fmt.Errorf("action plan missing %s", name)
		}
	}
	return nil
}
