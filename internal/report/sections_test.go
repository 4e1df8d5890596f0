package report

import (
	"testing"
)

func TestParseSections_EmptyInput(t *testing.T) {
	got := ParseSections("")

	if got.CurrentSituation != "" || got.AffectedAreas != "" ||
		got.EnvironmentalImpacts != "" || got.ReliefEfforts != "" ||
		got.Recommendations.Government != "" || got.Recommendations.NGOs != "" ||
		got.Recommendations.Citizens != "" {
		t.Errorf("expected all sections empty, got %+v", got)
	}
}

func TestParseSections_FullReport(t *testing.T) {
	input := `# Current Situation
Flooding continues across the region.
Water levels remain high.

# Affected Areas
Kathmandu valley and surrounding districts.

# Environmental Impacts
Soil erosion along riverbanks.

# Ongoing Relief Efforts
Rescue teams deployed.

# Recommendations

## For Government Agencies
Open emergency shelters.

## For NGOs
Deploy medical teams.

## For Individual Citizens
Avoid low-lying areas.`

	got := ParseSections(input)

	if got.CurrentSituation != "Flooding continues across the region.\nWater levels remain high." {
		t.Errorf("current situation = %q", got.CurrentSituation)
	}
	if got.AffectedAreas != "Kathmandu valley and surrounding districts." {
		t.Errorf("affected areas = %q", got.AffectedAreas)
	}
	if got.EnvironmentalImpacts != "Soil erosion along riverbanks." {
		t.Errorf("environmental impacts = %q", got.EnvironmentalImpacts)
	}
	if got.ReliefEfforts != "Rescue teams deployed." {
		t.Errorf("relief efforts = %q", got.ReliefEfforts)
	}
	if got.Recommendations.Government != "Open emergency shelters." {
		t.Errorf("government recommendations = %q", got.Recommendations.Government)
	}
	if got.Recommendations.NGOs != "Deploy medical teams." {
		t.Errorf("NGO recommendations = %q", got.Recommendations.NGOs)
	}
	if got.Recommendations.Citizens != "Avoid low-lying areas." {
		t.Errorf("citizen recommendations = %q", got.Recommendations.Citizens)
	}
}

func TestParseSections_TextBeforeFirstHeadingDiscarded(t *testing.T) {
	got := ParseSections("preamble we never asked for\n# Current Situation\nReal content.")

	if got.CurrentSituation != "Real content." {
		t.Errorf("current situation = %q", got.CurrentSituation)
	}
}

func TestParseSections_UnknownHeadingDiscarded(t *testing.T) {
	got := ParseSections("# Sources\nSome URL list.\n# Current Situation\nActual report.")

	if got.CurrentSituation != "Actual report." {
		t.Errorf("current situation = %q", got.CurrentSituation)
	}
	if got.AffectedAreas != "" {
		t.Errorf("unexpected affected areas content: %q", got.AffectedAreas)
	}
}

func TestParseSections_CaseInsensitiveHeadings(t *testing.T) {
	got := ParseSections("# CURRENT SITUATION\nUppercase heading.\n## for ngos\nLowercase sub.")

	if got.CurrentSituation != "Uppercase heading." {
		t.Errorf("current situation = %q", got.CurrentSituation)
	}
	if got.Recommendations.NGOs != "Lowercase sub." {
		t.Errorf("NGO recommendations = %q", got.Recommendations.NGOs)
	}
}

func TestParseSections_RepeatedHeadingAppends(t *testing.T) {
	got := ParseSections("# Current Situation\nFirst part.\n# Affected Areas\nAreas.\n# Current Situation\nSecond part.")

	if got.CurrentSituation != "First part.\nSecond part." {
		t.Errorf("current situation = %q", got.CurrentSituation)
	}
}

func TestParseSections_RecommendationsWithoutSubBucketDiscarded(t *testing.T) {
	got := ParseSections("# Recommendations\nOrphan line with no audience.\n## For Government\nTargeted line.")

	if got.Recommendations.Government != "Targeted line." {
		t.Errorf("government recommendations = %q", got.Recommendations.Government)
	}
	if got.Recommendations.NGOs != "" || got.Recommendations.Citizens != "" {
		t.Errorf("orphan text leaked into sub-buckets: %+v", got.Recommendations)
	}
}

func TestCleanAndParse_InlineHeadingScenario(t *testing.T) {
	c := NewCleaner()

	raw := "**Instructions** # Current Situation\nFlooding is severe.\n## For NGOs\nDeploy teams."
	got := ParseSections(c.Clean(raw))

	if got.CurrentSituation != "Flooding is severe." {
		t.Errorf("current situation = %q", got.CurrentSituation)
	}
	if got.Recommendations.NGOs != "Deploy teams." {
		t.Errorf("NGO recommendations = %q", got.Recommendations.NGOs)
	}
	if got.AffectedAreas != "" || got.EnvironmentalImpacts != "" || got.ReliefEfforts != "" ||
		got.Recommendations.Government != "" || got.Recommendations.Citizens != "" {
		t.Errorf("expected remaining sections empty, got %+v", got)
	}
}
