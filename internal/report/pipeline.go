package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crisisdesk/disaster-response-api/internal/agent"
	"github.com/crisisdesk/disaster-response-api/internal/models"
)

// Result is a generated summary: the cleaned markdown plus its parsed
// section set.
type Result struct {
	Markdown string
	Report   models.StructuredReport
}

// Pipeline runs the three-stage summary flow: search for current updates,
// research impacts and response, then synthesize both into a sectioned
// markdown report. Stages are strictly sequential; each stage's output feeds
// the next prompt, so a failed stage short-circuits the rest.
type Pipeline struct {
	client    agent.Client
	cleaner   *Cleaner
	search    agent.Agent
	research  agent.Agent
	synthesis agent.Agent
}

func NewPipeline(client agent.Client) *Pipeline {
	return &Pipeline{
		client:  client,
		cleaner: NewCleaner(),
		search: agent.Agent{
			Name: "Web Search Agent",
			Role: "Search the web for disaster-related news and information",
			Instructions: []string{
				"Search for latest news and updates about the specified disaster",
				"Focus on verified sources and official reports",
				"Collect information about current status and immediate impacts",
				"Return information in a clear, narrative format",
			},
		},
		research: agent.Agent{
			Name: "Research Agent",
			Role: "Gather in-depth disaster response research",
			Instructions: []string{
				"Research and analyze disaster response strategies",
				"Focus on relief efforts and recovery plans",
				"Gather information about environmental impacts",
				"Identify recommendations for different stakeholders",
				"Present information in a clear, narrative format without raw data",
			},
		},
		synthesis: agent.Agent{
			Name: "Synthesis Agent",
			Role: "Synthesize and structure disaster information",
			Instructions: []string{
				"Combine and structure information into a clean markdown report",
				"Format the report exactly as follows:",
				"",
				"# Current Situation",
				"<situation content>",
				"",
				"# Affected Areas",
				"<areas content>",
				"",
				"# Environmental Impacts",
				"<impacts content>",
				"",
				"# Ongoing Relief Efforts",
				"<efforts content>",
				"",
				"# Recommendations",
				"",
				"## For Government Agencies",
				"<government recommendations>",
				"",
				"## For NGOs",
				"<ngo recommendations>",
				"",
				"## For Individual Citizens",
				"<citizen recommendations>",
			},
		},
	}
}

// Generate builds the stage prompts from the query and runs the pipeline.
func (p *Pipeline) Generate(ctx context.Context, query models.DisasterQuery) (*Result, error) {
	queries, err := BuildQueries(query)
	if err != nil {
		return nil, err
	}

	slog.Info("gathering current information", "disaster_type", query.DisasterType)
	currentInfo, err := p.search.Run(ctx, p.client, queries.Search)
	if err != nil {
		return nil, fmt.Errorf("search stage: %w", err)
	}

	slog.Info("researching response and impacts", "disaster_type", query.DisasterType)
	researchInfo, err := p.research.Run(ctx, p.client, queries.Research)
	if err != nil {
		return nil, fmt.Errorf("research stage: %w", err)
	}

	slog.Info("synthesizing report", "disaster_type", query.DisasterType)
	synthesisPrompt := fmt.Sprintf(
		"Based on these inputs:\n\n"+
			"CURRENT INFORMATION:\n%s\n\n"+
			"RESEARCH INFORMATION:\n%s\n\n"+
			"%s Ensure proper markdown formatting and remove any raw data or metadata.",
		currentInfo, researchInfo, queries.Synthesis,
	)
	raw, err := p.synthesis.Run(ctx, p.client, synthesisPrompt)
	if err != nil {
		return nil, fmt.Errorf("synthesis stage: %w", err)
	}
	if raw == "" {
		return nil, fmt.Errorf("synthesis stage returned no content")
	}

	markdown := p.cleaner.Clean(raw)

	return &Result{
		Markdown: markdown,
		Report:   ParseSections(markdown),
	}, nil
}
