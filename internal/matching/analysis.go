package matching

import (
	"fmt"
	"strings"
)

// SourceHeuristic marks analyses and reports produced without an AI backend.
const SourceHeuristic = "heuristic"

// Analysis is the comprehensive match analysis returned by the analyze command.
type Analysis struct {
	MatchScore     int           `json:"match_score"`
	Factors        *MatchFactors `json:"match_factors"`
	Strengths      []string      `json:"strengths"`
	Risks          []string      `json:"risks"`
	Recommendation string        `json:"recommendation"`
	Summary        string        `json:"summary"`
	Source         string        `json:"source"`
}

// Analyze builds the full heuristic analysis for the pair.
func (e *Engine) Analyze(creator *Creator, campaign *Campaign) *Analysis {
	score, factors := e.Score(creator, campaign)

	analysis := &Analysis{
		MatchScore:     score,
		Factors:        factors,
		Strengths:      strengths(factors, creator),
		Risks:          risks(factors, creator, campaign),
		Recommendation: recommendation(score),
		Source:         SourceHeuristic,
	}
	analysis.Summary = fmt.Sprintf("%s scores %d/100 for %s: %s.",
		displayName(creator), score, displayTitle(campaign), analysis.Recommendation)

	return analysis
}

// strengths lists factors at 80 or above. Any factor that high implies the
// profiles carried the data it was graded on.
func strengths(factors *MatchFactors, creator *Creator) []string {
	found := make([]string, 0, 4)

	if factors.AudienceFit >= 80 {
		found = append(found, fmt.Sprintf("audience of %d followers fits the campaign target range", creator.Followers))
	}
	if factors.EngagementFit >= 80 {
		found = append(found, fmt.Sprintf("engagement rate of %.1f%% is strong", creator.EngagementRate))
	}
	if factors.LocationFit >= 80 {
		found = append(found, fmt.Sprintf("creator location %s is targeted by the campaign", strings.TrimSpace(creator.Location)))
	}
	if factors.CategoryFit >= 80 {
		found = append(found, "creator categories overlap the campaign targets")
	}

	return found
}

func risks(factors *MatchFactors, creator *Creator, campaign *Campaign) []string {
	found := make([]string, 0, 4)

	if factors.AudienceFit <= 40 {
		found = append(found, fmt.Sprintf("follower count %d is below the campaign minimum of %d", creator.Followers, campaign.MinFollowers))
	}
	if factors.EngagementFit <= 40 {
		found = append(found, fmt.Sprintf("engagement rate of %.1f%% is weak", creator.EngagementRate))
	}
	if factors.LocationFit <= 40 {
		found = append(found, "creator location is outside the campaign target locations")
	}
	if factors.CategoryFit <= 40 {
		found = append(found, "creator categories do not overlap the campaign targets")
	}

	return found
}

func recommendation(score int) string {
	switch {
	case score >= 80:
		return "strong match, proceed with outreach"
	case score >= 60:
		return "viable match, proceed with caveats"
	default:
		return "weak match, consider other creators"
	}
}

func displayName(creator *Creator) string {
	if creator == nil || strings.TrimSpace(creator.Name) == "" {
		return "the creator"
	}

	return strings.TrimSpace(creator.Name)
}

func displayTitle(campaign *Campaign) string {
	if campaign == nil || strings.TrimSpace(campaign.Title) == "" {
		return "the campaign"
	}

	return strings.TrimSpace(campaign.Title)
}
