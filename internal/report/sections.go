package report

import (
	"strings"

	"github.com/crisisdesk/disaster-response-api/internal/models"
)

// Bucket targets while scanning. The discard bucket swallows text under
// headings outside the fixed set and anything before the first heading.
type bucket int

const (
	bucketDiscard bucket = iota
	bucketCurrentSituation
	bucketAffectedAreas
	bucketEnvironmentalImpacts
	bucketReliefEfforts
	bucketGovernment
	bucketNGOs
	bucketCitizens
)

var topHeadings = map[string]bucket{
	"current situation":      bucketCurrentSituation,
	"affected areas":         bucketAffectedAreas,
	"environmental impacts":  bucketEnvironmentalImpacts,
	"ongoing relief efforts": bucketReliefEfforts,
	// Recommendations carries no direct content; text lands in a sub-bucket
	// or is discarded until one is seen.
	"recommendations": bucketDiscard,
}

var subHeadings = []struct {
	prefix string
	target bucket
}{
	{"for government", bucketGovernment},
	{"for ngos", bucketNGOs},
	{"for individual", bucketCitizens},
}

// ParseSections splits cleaned markdown into the fixed report section set.
// Every section of the result is always present, empty when the text never
// reached it. This is a line-scanning heuristic: repeated headings append to
// the same bucket, unknown headings open a bucket whose text is dropped.
func ParseSections(text string) models.StructuredReport {
	buckets := map[bucket]*strings.Builder{}
	for b := bucketCurrentSituation; b <= bucketCitizens; b++ {
		buckets[b] = &strings.Builder{}
	}

	active := bucketDiscard
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "## "):
			name := strings.ToLower(strings.TrimSpace(trimmed[3:]))
			active = bucketDiscard
			for _, sub := range subHeadings {
				if strings.HasPrefix(name, sub.prefix) {
					active = sub.target
					break
				}
			}
		case strings.HasPrefix(trimmed, "# "):
			name := strings.ToLower(strings.TrimSpace(trimmed[2:]))
			target, ok := topHeadings[name]
			if !ok {
				target = bucketDiscard
			}
			active = target
		case strings.HasPrefix(trimmed, "#"):
			// Deeper or malformed heading: opens a bucket we drop.
			active = bucketDiscard
		default:
			if active != bucketDiscard {
				buckets[active].WriteString(trimmed)
				buckets[active].WriteString("\n")
			}
		}
	}

	rtrim := func(b bucket) string {
		return strings.TrimRight(buckets[b].String(), " \t\n")
	}

	return models.StructuredReport{
		CurrentSituation:     rtrim(bucketCurrentSituation),
		AffectedAreas:        rtrim(bucketAffectedAreas),
		EnvironmentalImpacts: rtrim(bucketEnvironmentalImpacts),
		ReliefEfforts:        rtrim(bucketReliefEfforts),
		Recommendations: models.Recommendations{
			Government: rtrim(bucketGovernment),
			NGOs:       rtrim(bucketNGOs),
			Citizens:   rtrim(bucketCitizens),
		},
	}
}
