package actionplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crisisdesk/disaster-response-api/internal/agent"
	"github.com/crisisdesk/disaster-response-api/internal/models"
)

// ErrNoPlan means the agent response never yielded a valid plan object.
var ErrNoPlan = errors.New("failed to generate valid action plan")

const promptTemplate = `Create a detailed disaster response plan for:
- Disaster Type: %s
- Location: %s
- Severity: %s
- Population Affected: %s
- Available Resources: %s

Return a JSON object with exactly these keys:
{
    "disaster_type": "Detailed description of the disaster",
    "immediate_actions": ["5 specific, immediate actions to take"],
    "resource_mobilization": ["5 detailed resource allocation strategies"],
    "long_term_measures": ["5 comprehensive recovery steps"],
    "stakeholders": ["5 key organizations or groups and their roles"],
    "recommendations": ["5 specific, actionable recommendations"]
}

Make all items specific and detailed. Return only the JSON object.`

// Generator produces validated disaster response plans from a single
// planning agent.
type Generator struct {
	client  agent.Client
	planner agent.Agent
}

func NewGenerator(client agent.Client) *Generator {
	return &Generator{
		client: client,
		planner: agent.Agent{
			Name: "Action Plan Generator",
			Role: "Generate comprehensive disaster response plans",
			Instructions: []string{
				"You are a disaster response planning expert.",
				"Generate detailed and actionable plans based on the provided scenario.",
				"Include specific steps, resource allocation, and recommendations.",
				"Format output as clean JSON with no additional text.",
				"Ensure comprehensive coverage of all aspects of disaster response.",
			},
		},
	}
}

// Generate asks the planning agent for a plan and extracts it from the
// response. Extraction or validation failure surfaces as ErrNoPlan.
func (g *Generator) Generate(ctx context.Context, query models.DisasterQuery) (*models.ActionPlan, error) {
	prompt := BuildPrompt(query)

	response, err := g.planner.Run(ctx, g.client, prompt)
	if err != nil {
		return nil, err
	}

	raw := ExtractJSON(response)
	if raw == nil {
		slog.Error("no JSON object found in plan response", "disaster_type", query.DisasterType)
		return nil, ErrNoPlan
	}

	plan, err := planFromMap(raw)
	if err != nil {
		slog.Error("plan response rejected", "disaster_type", query.DisasterType, "error", err)
		return nil, ErrNoPlan
	}

	return plan, nil
}

// BuildPrompt renders the planning prompt from the request fields. Optional
// fields render as "not specified" rather than being dropped so the agent
// still sees every axis of the scenario.
func BuildPrompt(query models.DisasterQuery) string {
	return fmt.Sprintf(promptTemplate,
		query.DisasterType,
		orUnspecified(query.Location),
		orUnspecified(query.Severity),
		orUnspecified(query.Population),
		orUnspecified(query.Resources),
	)
}

func orUnspecified(s string) string {
	if s == "" {
		return "not specified"
	}
	return s
}

func planFromMap(raw map[string]any) (*models.ActionPlan, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("error re-encoding plan: %w", err)
	}

	var plan models.ActionPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("error decoding plan fields: %w", err)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}
