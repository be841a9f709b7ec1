package matching

import (
	"strings"

	"go.uber.org/zap"
)

// Factor weights of the overall match score.
const (
	weightAudience   = 0.30
	weightEngagement = 0.25
	weightLocation   = 0.20
	weightCategory   = 0.25
)

// neutralScore is used for any factor whose inputs are missing.
const neutralScore = 50

// MatchFactors breaks the overall score down by factor, each on a 0-100 scale.
type MatchFactors struct {
	AudienceFit   int `json:"audience_fit"`
	EngagementFit int `json:"engagement_fit"`
	LocationFit   int `json:"location_fit"`
	CategoryFit   int `json:"category_fit"`
}

// Engine computes deterministic creator/campaign match scores. Identical
// inputs always produce identical output.
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{logger: logger}
}

// Score returns the weighted match score and its factor breakdown. Nil
// profiles yield the all-neutral breakdown; requiredness is the caller's
// concern.
func (e *Engine) Score(creator *Creator, campaign *Campaign) (int, *MatchFactors) {
	factors := &MatchFactors{
		AudienceFit:   audienceFit(creator, campaign),
		EngagementFit: engagementFit(creator),
		LocationFit:   locationFit(creator, campaign),
		CategoryFit:   categoryFit(creator, campaign),
	}

	score := int(
		float64(factors.AudienceFit)*weightAudience +
			float64(factors.EngagementFit)*weightEngagement +
			float64(factors.LocationFit)*weightLocation +
			float64(factors.CategoryFit)*weightCategory,
	)

	e.logger.Debug("calculated match score",
		zap.Int("score", score),
		zap.Int("audience_fit", factors.AudienceFit),
		zap.Int("engagement_fit", factors.EngagementFit),
		zap.Int("location_fit", factors.LocationFit),
		zap.Int("category_fit", factors.CategoryFit),
	)

	return score, factors
}

func audienceFit(creator *Creator, campaign *Campaign) int {
	if creator == nil || campaign == nil || creator.Followers <= 0 {
		return neutralScore
	}

	minFollowers := campaign.MinFollowers
	maxFollowers := campaign.MaxFollowers
	if minFollowers <= 0 && maxFollowers <= 0 {
		return neutralScore
	}

	followers := creator.Followers

	switch {
	case followers >= minFollowers && (maxFollowers <= 0 || followers <= maxFollowers):
		return 100
	case maxFollowers > 0 && followers > maxFollowers:
		return 80
	case float64(followers) >= 0.8*float64(minFollowers):
		return 60
	case float64(followers) >= 0.5*float64(minFollowers):
		return 40
	default:
		return 20
	}
}

// engagementFit grades the engagement rate, expressed in percent.
func engagementFit(creator *Creator) int {
	if creator == nil || creator.EngagementRate <= 0 {
		return neutralScore
	}

	switch rate := creator.EngagementRate; {
	case rate >= 6:
		return 100
	case rate >= 3:
		return 80
	case rate >= 1:
		return 60
	default:
		return 30
	}
}

func locationFit(creator *Creator, campaign *Campaign) int {
	if campaign == nil || len(campaign.TargetLocations) == 0 {
		return neutralScore
	}
	if creator == nil || strings.TrimSpace(creator.Location) == "" {
		return neutralScore
	}

	location := strings.TrimSpace(creator.Location)
	for _, target := range campaign.TargetLocations {
		if strings.EqualFold(strings.TrimSpace(target), location) {
			return 100
		}
	}

	return 30
}

func categoryFit(creator *Creator, campaign *Campaign) int {
	if campaign == nil || len(campaign.TargetCategories) == 0 {
		return neutralScore
	}
	if creator == nil || len(creator.Categories) == 0 {
		return neutralScore
	}

	for _, category := range creator.Categories {
		for _, target := range campaign.TargetCategories {
			if strings.EqualFold(strings.TrimSpace(category), strings.TrimSpace(target)) {
				return 100
			}
		}
	}

	return 40
}
