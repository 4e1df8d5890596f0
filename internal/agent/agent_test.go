package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordingClient struct {
	systems   []string
	prompts   []string
	responses []string
	errs      []error
}

func (r *recordingClient) Run(ctx context.Context, system, prompt string) (string, error) {
	i := len(r.prompts)
	r.systems = append(r.systems, system)
	r.prompts = append(r.prompts, prompt)
	if i < len(r.errs) && r.errs[i] != nil {
		return "", r.errs[i]
	}
	if i < len(r.responses) {
		return r.responses[i], nil
	}
	return "", nil
}

func TestAgent_SystemPrompt(t *testing.T) {
	a := Agent{
		Name: "Research Agent",
		Role: "Analyze disaster impact",
		Instructions: []string{
			"Focus on verified sources.",
			"Summarize in plain language.",
		},
	}

	got := a.systemPrompt()
	want := "Analyze disaster impact\nInstructions:\n- Focus on verified sources.\n- Summarize in plain language."
	if got != want {
		t.Errorf("systemPrompt() = %q, want %q", got, want)
	}
}

func TestAgent_SystemPromptEmpty(t *testing.T) {
	if got := (Agent{Name: "Bare"}).systemPrompt(); got != "" {
		t.Errorf("expected empty system prompt, got %q", got)
	}
}

func TestTeam_RunsAgentsInOrder(t *testing.T) {
	client := &recordingClient{responses: []string{"first draft", "final draft"}}
	team := Team{Agents: []Agent{
		{Name: "Drafter", Role: "Draft the message"},
		{Name: "Reviewer", Role: "Review the draft"},
	}}

	out, err := team.Run(context.Background(), client, "write an alert")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "final draft" {
		t.Errorf("got %q", out)
	}
	if len(client.prompts) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(client.prompts))
	}
	if client.prompts[0] != "write an alert" {
		t.Errorf("first stage prompt = %q", client.prompts[0])
	}
	if !strings.Contains(client.prompts[1], "write an alert") ||
		!strings.Contains(client.prompts[1], "Previous draft:\nfirst draft") {
		t.Errorf("second stage should see original prompt and prior output: %q", client.prompts[1])
	}
	if client.systems[0] != "Draft the message" || client.systems[1] != "Review the draft" {
		t.Errorf("system prompts = %v", client.systems)
	}
}

func TestTeam_StopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	client := &recordingClient{errs: []error{boom}}
	team := Team{Agents: []Agent{{Name: "A"}, {Name: "B"}}}

	_, err := team.Run(context.Background(), client, "prompt")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if len(client.prompts) != 1 {
		t.Errorf("expected the second agent to be skipped, got %d calls", len(client.prompts))
	}
}
