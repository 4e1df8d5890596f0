package agent

import (
	"context"
	"errors"
	"strings"
)

// ErrRateLimited is returned when the agent backend keeps answering 429
// after the bounded retry budget is spent.
var ErrRateLimited = errors.New("agent backend rate limited")

// Client is the minimal surface a pipeline needs to call a hosted
// language-model agent backend.
type Client interface {
	Run(ctx context.Context, system, prompt string) (string, error)
}

// Agent is a named role with an instruction list, rendered into the system
// prompt on every call. Agents are plain data so pipelines can be assembled
// from configuration instead of copy-pasted per endpoint.
type Agent struct {
	Name         string
	Role         string
	Instructions []string
}

func (a Agent) systemPrompt() string {
	var sb strings.Builder
	if a.Role != "" {
		sb.WriteString(a.Role)
		sb.WriteString("\n")
	}
	if len(a.Instructions) > 0 {
		sb.WriteString("Instructions:\n")
		for _, inst := range a.Instructions {
			sb.WriteString("- ")
			sb.WriteString(inst)
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Run sends the prompt to the backend under this agent's system prompt.
func (a Agent) Run(ctx context.Context, client Client, prompt string) (string, error) {
	return client.Run(ctx, a.systemPrompt(), prompt)
}

// Team runs its agents strictly in order, feeding each agent the previous
// agent's output appended to the original prompt. There is no fan-out: every
// stage depends on its predecessor's text.
type Team struct {
	Agents []Agent
}

func (t Team) Run(ctx context.Context, client Client, prompt string) (string, error) {
	out := ""
	for _, a := range t.Agents {
		input := prompt
		if out != "" {
			input = prompt + "\n\nPrevious draft:\n" + out
		}
		resp, err := a.Run(ctx, client, input)
		if err != nil {
			return "", err
		}
		out = resp
	}
	return out, nil
}
