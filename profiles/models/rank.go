package models

// Rank is the tier a profile holds based on its accumulated votes.
type Rank string

const (
	RankBronze   Rank = "bronze"
	RankSilver   Rank = "silver"
	RankGold     Rank = "gold"
	RankPlatinum Rank = "platinum"
	RankDiamond  Rank = "diamond"
	RankMaster   Rank = "master"
	RankLegend   Rank = "legend"
)

// rankThresholds maps minimum vote counts to tiers, highest first. A profile
// holds the first tier whose threshold its vote count meets.
var rankThresholds = []struct {
	Min  int64
	Rank Rank
}{
	{1000, RankLegend},
	{500, RankMaster},
	{200, RankDiamond},
	{100, RankPlatinum},
	{50, RankGold},
	{20, RankSilver},
	{0, RankBronze},
}

// RankFor returns the tier for the given vote count. Negative counts clamp to
// the lowest tier.
func RankFor(votes int64) Rank {
	for _, t := range rankThresholds {
		if votes >= t.Min {
			return t.Rank
		}
	}
	return RankBronze
}
