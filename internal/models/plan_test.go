package models

import "testing"

func validPlan() ActionPlan {
	return ActionPlan{
		DisasterType:         "Severe flooding",
		ImmediateActions:     []string{"Evacuate"},
		ResourceMobilization: []string{"Boats"},
		LongTermMeasures:     []string{"Embankments"},
		Stakeholders:         []string{"NDRF"},
		Recommendations:      []string{"Stockpile"},
	}
}

func TestActionPlan_Validate(t *testing.T) {
	p := validPlan()
	if err := p.Validate(); err != nil {
		t.Fatalf("valid plan rejected: %v", err)
	}
}

func TestActionPlan_ValidateMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ActionPlan)
	}{
		{"disaster type", func(p *ActionPlan) { p.DisasterType = "" }},
		{"immediate actions", func(p *ActionPlan) { p.ImmediateActions = nil }},
		{"resource mobilization", func(p *ActionPlan) { p.ResourceMobilization = []string{} }},
		{"long term measures", func(p *ActionPlan) { p.LongTermMeasures = nil }},
		{"stakeholders", func(p *ActionPlan) { p.Stakeholders = nil }},
		{"recommendations", func(p *ActionPlan) { p.Recommendations = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPlan()
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
