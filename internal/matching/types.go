package matching

// Creator is the influencer profile side of a match. Payloads originate in
// another runtime, so every field is optional and decoded leniently.
type Creator struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Platform       string   `json:"platform"`
	Followers      int      `json:"followers"`
	EngagementRate float64  `json:"engagement_rate"`
	Categories     []string `json:"categories"`
	Location       string   `json:"location"`
}

// Campaign is the brand campaign side of a match.
type Campaign struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Brand            string   `json:"brand"`
	Platform         string   `json:"platform"`
	Budget           float64  `json:"budget"`
	MinFollowers     int      `json:"min_followers"`
	MaxFollowers     int      `json:"max_followers"`
	TargetCategories []string `json:"target_categories"`
	TargetLocations  []string `json:"target_locations"`
}
