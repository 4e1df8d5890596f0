// Package notify drafts disaster communication messages and delivers
// summaries over email.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/crisisdesk/disaster-response-api/internal/agent"
)

// ErrMissingMessageFields is returned when a draft request lacks any of its
// three required inputs.
var ErrMissingMessageFields = errors.New("message type, target audience and key details are required")

// MessageRequest describes the notification a client wants drafted.
type MessageRequest struct {
	MessageType    string `json:"messageType"`
	TargetAudience string `json:"targetAudience"`
	KeyDetails     string `json:"keyDetails"`
}

// Drafter generates disaster-related messages through a two-stage agent
// team: a template generator drafts, a validation agent refines.
type Drafter struct {
	client agent.Client
	team   agent.Team
}

func NewDrafter(client agent.Client) *Drafter {
	return &Drafter{
		client: client,
		team: agent.Team{
			Agents: []agent.Agent{
				{
					Name: "Template Generator Agent",
					Role: "Generate templates for disaster-related messages.",
					Instructions: []string{
						"Draft a clear, concise message based on the inputs: message type, target audience, and key details.",
						"Ensure the message is structured appropriately for the audience.",
					},
				},
				{
					Name: "Validation Agent",
					Role: "Validate and enhance the generated template.",
					Instructions: []string{
						"Review the generated message for tone, clarity, and audience appropriateness.",
						"Ensure it meets the expected standards for communication during disasters.",
						"Produce the final refined message as output.",
					},
				},
			},
		},
	}
}

func (d *Drafter) Draft(ctx context.Context, req MessageRequest) (string, error) {
	if strings.TrimSpace(req.MessageType) == "" ||
		strings.TrimSpace(req.TargetAudience) == "" ||
		strings.TrimSpace(req.KeyDetails) == "" {
		return "", ErrMissingMessageFields
	}

	query := fmt.Sprintf(
		"Generate a %s message for %s including the following details: %s. "+
			"Ensure the tone is appropriate and the message is actionable.",
		strings.ToLower(req.MessageType), strings.ToLower(req.TargetAudience), req.KeyDetails,
	)

	message, err := d.team.Run(ctx, d.client, query)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(message), nil
}
