package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankFor_Thresholds(t *testing.T) {
	cases := []struct {
		votes int64
		want  Rank
	}{
		{0, RankBronze},
		{19, RankBronze},
		{20, RankSilver},
		{49, RankSilver},
		{50, RankGold},
		{99, RankGold},
		{100, RankPlatinum},
		{199, RankPlatinum},
		{200, RankDiamond},
		{499, RankDiamond},
		{500, RankMaster},
		{999, RankMaster},
		{1000, RankLegend},
		{250000, RankLegend},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, RankFor(tc.votes), "votes=%d", tc.votes)
	}
}

func TestRankFor_NegativeClampsToBronze(t *testing.T) {
	assert.Equal(t, RankBronze, RankFor(-5))
}
