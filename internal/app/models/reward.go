package models

// RewardOption is an entry of the fixed redemption catalog
type RewardOption struct {
	ID                int    `json:"id"`
	Name              string `json:"name" example:"Platform Pro Badge"`
	CoinsRequired     int    `json:"coinsRequired" example:"150"`
	IllustrativeValue string `json:"illustrativeValue" example:"₹15 (ref)"`
	HighlightsProfile bool   `json:"-"`
}

// RewardCatalog lists every reward an account can redeem coins for
var RewardCatalog = []RewardOption{
	{
		ID:                1,
		Name:              "Tech Excellence Certificate",
		CoinsRequired:     100,
		IllustrativeValue: "₹10 (ref)",
	},
	{
		ID:                2,
		Name:              "Community Creation Credits",
		CoinsRequired:     200,
		IllustrativeValue: "₹20 (ref)",
	},
	{
		ID:                3,
		Name:              "Profile Highlight (7 days)",
		CoinsRequired:     50,
		IllustrativeValue: "₹5 (ref)",
		HighlightsProfile: true,
	},
	{
		ID:                4,
		Name:              "Platform Pro Badge",
		CoinsRequired:     150,
		IllustrativeValue: "₹15 (ref)",
	},
}

// FindReward looks a reward up by id
func FindReward(id int) (RewardOption, bool) {
	for _, r := range RewardCatalog {
		if r.ID == id {
			return r, true
		}
	}
	return RewardOption{}, false
}
