package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestEngineScore(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	tests := []struct {
		name     string
		creator  *Creator
		campaign *Campaign
		expected int
	}{
		{
			name: "perfect match across all factors",
			creator: &Creator{
				Followers:      50000,
				EngagementRate: 6.5,
				Location:       "Berlin",
				Categories:     []string{"fitness"},
			},
			campaign: &Campaign{
				MinFollowers:     10000,
				MaxFollowers:     100000,
				TargetLocations:  []string{"berlin"},
				TargetCategories: []string{"Fitness"},
			},
			// 100*0.30 + 100*0.25 + 100*0.20 + 100*0.25 = 100
			expected: 100,
		},
		{
			name: "oversized audience with good engagement",
			creator: &Creator{
				Followers:      250000,
				EngagementRate: 4.5,
				Location:       "Berlin",
				Categories:     []string{"fitness"},
			},
			campaign: &Campaign{
				MinFollowers:     10000,
				MaxFollowers:     100000,
				TargetLocations:  []string{"Berlin", "Hamburg"},
				TargetCategories: []string{"fitness"},
			},
			// 80*0.30 + 80*0.25 + 100*0.20 + 100*0.25 = 89
			expected: 89,
		},
		{
			name:     "empty profiles stay neutral",
			creator:  &Creator{},
			campaign: &Campaign{},
			// 50*0.30 + 50*0.25 + 50*0.20 + 50*0.25 = 50
			expected: 50,
		},
		{
			name:     "nil profiles stay neutral",
			creator:  nil,
			campaign: nil,
			expected: 50,
		},
		{
			name: "weak match on every factor",
			creator: &Creator{
				Followers:      4000,
				EngagementRate: 0.5,
				Location:       "Oslo",
				Categories:     []string{"gaming"},
			},
			campaign: &Campaign{
				MinFollowers:     10000,
				TargetLocations:  []string{"Berlin"},
				TargetCategories: []string{"fitness"},
			},
			// 20*0.30 + 30*0.25 + 30*0.20 + 40*0.25 = 29.5, truncated to 29
			expected: 29,
		},
		{
			name: "partial data mixes graded and neutral factors",
			creator: &Creator{
				Followers:      8000,
				EngagementRate: 1.5,
				Categories:     []string{"beauty"},
			},
			campaign: &Campaign{
				MinFollowers:     10000,
				TargetCategories: []string{"Beauty"},
			},
			// 60*0.30 + 60*0.25 + 50*0.20 + 100*0.25 = 68
			expected: 68,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, factors := engine.Score(tt.creator, tt.campaign)
			assert.Equal(t, tt.expected, score)
			assert.NotNil(t, factors)
		})
	}
}

func TestAudienceFit(t *testing.T) {
	campaign := &Campaign{MinFollowers: 10000, MaxFollowers: 100000}

	tests := []struct {
		name      string
		followers int
		campaign  *Campaign
		expected  int
	}{
		{"unknown followers", 0, campaign, 50},
		{"no campaign bounds", 50000, &Campaign{}, 50},
		{"nil campaign", 50000, nil, 50},
		{"inside target range", 50000, campaign, 100},
		{"min-only bound satisfied", 60000, &Campaign{MinFollowers: 10000}, 100},
		{"above maximum", 150000, campaign, 80},
		{"at eighty percent of minimum", 8000, campaign, 60},
		{"at half of minimum", 5000, campaign, 40},
		{"below half of minimum", 4999, campaign, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &Creator{Followers: tt.followers}
			assert.Equal(t, tt.expected, audienceFit(creator, tt.campaign))
		})
	}
}

func TestEngagementFit(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		expected int
	}{
		{"unknown rate", 0, 50},
		{"negative rate", -1, 50},
		{"excellent", 6, 100},
		{"good", 3, 80},
		{"below good ceiling", 5.9, 80},
		{"modest", 1, 60},
		{"poor", 0.9, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engagementFit(&Creator{EngagementRate: tt.rate}))
		})
	}

	assert.Equal(t, 50, engagementFit(nil))
}

func TestLocationFit(t *testing.T) {
	campaign := &Campaign{TargetLocations: []string{"Berlin", "Hamburg"}}

	assert.Equal(t, 50, locationFit(&Creator{Location: "Berlin"}, &Campaign{}))
	assert.Equal(t, 50, locationFit(&Creator{}, campaign))
	assert.Equal(t, 100, locationFit(&Creator{Location: " berlin "}, campaign))
	assert.Equal(t, 30, locationFit(&Creator{Location: "Oslo"}, campaign))
}

func TestCategoryFit(t *testing.T) {
	campaign := &Campaign{TargetCategories: []string{"Fitness", "Nutrition"}}

	assert.Equal(t, 50, categoryFit(&Creator{Categories: []string{"fitness"}}, &Campaign{}))
	assert.Equal(t, 50, categoryFit(&Creator{}, campaign))
	assert.Equal(t, 100, categoryFit(&Creator{Categories: []string{"travel", "fitness"}}, campaign))
	assert.Equal(t, 40, categoryFit(&Creator{Categories: []string{"gaming"}}, campaign))
}

func BenchmarkEngineScore(b *testing.B) {
	engine := NewEngine(zap.NewNop())
	creator := &Creator{
		Followers:      50000,
		EngagementRate: 4.5,
		Location:       "Berlin",
		Categories:     []string{"fitness", "nutrition"},
	}
	campaign := &Campaign{
		MinFollowers:     10000,
		MaxFollowers:     100000,
		TargetLocations:  []string{"Berlin"},
		TargetCategories: []string{"fitness"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Score(creator, campaign)
	}
}
