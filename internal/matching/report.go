package matching

import (
	"fmt"
	"strings"
)

// Report is the sponsorship match report returned by the generate_report
// command. The AI reporter fills the narrative fields; MatchScore and
// GeneratedBy are always set by the service.
type Report struct {
	Headline       string   `json:"headline"`
	Narrative      string   `json:"narrative"`
	Highlights     []string `json:"highlights"`
	Risks          []string `json:"risks"`
	Recommendation string   `json:"recommendation"`
	MatchScore     int      `json:"match_score"`
	GeneratedBy    string   `json:"generated_by"`
}

// HeuristicReport assembles a report from the heuristic analysis alone, used
// when no AI narrative backend is configured.
func HeuristicReport(creator *Creator, campaign *Campaign, analysis *Analysis) *Report {
	name := displayName(creator)
	title := displayTitle(campaign)

	parts := []string{fmt.Sprintf("%s scores %d/100 for %s.", name, analysis.MatchScore, title)}

	if creator != nil && creator.Followers > 0 {
		audience := fmt.Sprintf("The creator reaches %d followers", creator.Followers)
		if creator.EngagementRate > 0 {
			audience += fmt.Sprintf(" at a %.1f%% engagement rate", creator.EngagementRate)
		}
		parts = append(parts, audience+".")
	}

	if campaign != nil && campaign.Budget > 0 {
		parts = append(parts, fmt.Sprintf("The campaign budget is %.0f.", campaign.Budget))
	}

	parts = append(parts, fmt.Sprintf("Recommendation: %s.", analysis.Recommendation))

	return &Report{
		Headline:       fmt.Sprintf("%s and %s: %d/100 match", name, title, analysis.MatchScore),
		Narrative:      strings.Join(parts, " "),
		Highlights:     analysis.Strengths,
		Risks:          analysis.Risks,
		Recommendation: analysis.Recommendation,
		MatchScore:     analysis.MatchScore,
		GeneratedBy:    SourceHeuristic,
	}
}
