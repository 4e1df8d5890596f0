package report

import (
	"errors"
	"strings"

	"github.com/crisisdesk/disaster-response-api/internal/models"
)

// ErrMissingDisasterType is the only required-field failure a summary
// request can produce.
var ErrMissingDisasterType = errors.New("disaster type is required")

var timeframePhrases = map[string]string{
	models.TimeframeDay:   "24 hours",
	models.TimeframeWeek:  "7 days",
	models.TimeframeMonth: "30 days",
}

// Queries are the three stage prompts of the summary pipeline, in the order
// they run.
type Queries struct {
	Search    string
	Research  string
	Synthesis string
}

// BuildQueries renders a DisasterQuery into the stage prompts. Omitted
// optional fields change phrasing only: no location reads "globally", an
// absent or unrecognized timeframe drops the time clause entirely.
func BuildQueries(q models.DisasterQuery) (Queries, error) {
	if strings.TrimSpace(q.DisasterType) == "" {
		return Queries{}, ErrMissingDisasterType
	}

	where := "globally"
	if q.Location != "" {
		where = "in " + q.Location
	}

	when := ""
	if phrase, ok := timeframePhrases[q.Timeframe]; ok {
		when = " during the last " + phrase
	}

	return Queries{
		Search: "Latest updates on " + q.DisasterType + " " + where + when + ". " +
			"Provide information in a clear narrative format without raw data.",
		Research: "Analysis of " + q.DisasterType + " impacts and response efforts " + where + when + ". " +
			"Present findings in a narrative format without raw data or URLs.",
		Synthesis: "Create a comprehensive report on the " + q.DisasterType + " situation " + where + when + ". " +
			"Format as a clean markdown document with proper sections.",
	}, nil
}
