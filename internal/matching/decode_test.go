package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatorFromJSONWeaklyTyped(t *testing.T) {
	raw := []byte(`{
		"id": 7,
		"name": "Alice",
		"followers": "52000",
		"engagement_rate": "4.5",
		"categories": ["fitness"],
		"location": "Berlin",
		"media_kit_url": "https://example.com/alice"
	}`)

	creator, err := CreatorFromJSON(raw)
	assert.NoError(t, err)
	assert.Equal(t, "7", creator.ID)
	assert.Equal(t, "Alice", creator.Name)
	assert.Equal(t, 52000, creator.Followers)
	assert.Equal(t, 4.5, creator.EngagementRate)
	assert.Equal(t, []string{"fitness"}, creator.Categories)
}

func TestCampaignFromJSON(t *testing.T) {
	raw := []byte(`{
		"id": "c-12",
		"title": "Spring Launch",
		"brand": "Acme",
		"budget": 25000,
		"min_followers": 10000,
		"max_followers": 100000,
		"target_categories": ["fitness", "nutrition"],
		"target_locations": ["Berlin"]
	}`)

	campaign, err := CampaignFromJSON(raw)
	assert.NoError(t, err)
	assert.Equal(t, "c-12", campaign.ID)
	assert.Equal(t, "Spring Launch", campaign.Title)
	assert.Equal(t, 25000.0, campaign.Budget)
	assert.Equal(t, 10000, campaign.MinFollowers)
	assert.Equal(t, []string{"Berlin"}, campaign.TargetLocations)
}

func TestAnalysisFromJSON(t *testing.T) {
	raw := []byte(`{
		"match_score": 42,
		"match_factors": {"audience_fit": 80, "engagement_fit": 60},
		"strengths": ["good audience"],
		"recommendation": "viable match, proceed with caveats",
		"source": "heuristic"
	}`)

	analysis, err := AnalysisFromJSON(raw)
	assert.NoError(t, err)
	assert.Equal(t, 42, analysis.MatchScore)
	assert.NotNil(t, analysis.Factors)
	assert.Equal(t, 80, analysis.Factors.AudienceFit)
	assert.Equal(t, []string{"good audience"}, analysis.Strengths)
}

func TestDecodeRejectsMissingPayloads(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("   "), []byte("null")} {
		_, err := CreatorFromJSON(raw)
		assert.ErrorContains(t, err, "creator payload is required")
	}
}

func TestDecodeRejectsNonObjectPayloads(t *testing.T) {
	_, err := CreatorFromJSON([]byte(`[1, 2]`))
	assert.ErrorContains(t, err, "parsing creator payload")

	_, err = CampaignFromJSON([]byte(`"just a string"`))
	assert.ErrorContains(t, err, "parsing campaign payload")
}

func TestDecodeRejectsUncoercibleFields(t *testing.T) {
	_, err := CreatorFromJSON([]byte(`{"followers": "plenty"}`))
	assert.ErrorContains(t, err, "decoding creator payload")
}
