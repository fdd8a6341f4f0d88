package mastery_test

import (
	"testing"

	"github.com/avelar/memora/internal/mastery"
	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		dist mastery.Distribution
		want int
	}{
		{"empty scope", mastery.Distribution{}, 0},
		{"all unseen", mastery.Distribution{mastery.Unseen: 4}, 0},
		{"all mastered", mastery.Distribution{mastery.Mastered: 3}, 100},
		{
			"mixed scope",
			mastery.Distribution{
				mastery.Unseen:     1,
				mastery.Fragile:    2,
				mastery.Developing: 1,
				mastery.Mastered:   1,
			},
			// (0 + 25*2 + 50 + 100) / 5 = 40
			40,
		},
		{
			"misconceived drags the average",
			mastery.Distribution{mastery.Mastered: 1, mastery.Misconceived: 1},
			// (100 + 5) / 2 = 52.5, rounded away from zero
			53,
		},
		{"negative counts ignored", mastery.Distribution{mastery.Solid: -3, mastery.Exposed: 1}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mastery.Progress(tt.dist))
		})
	}
}

func TestLowest(t *testing.T) {
	tests := []struct {
		name string
		dist mastery.Distribution
		want mastery.State
	}{
		{"empty scope", mastery.Distribution{}, mastery.Unseen},
		{
			"misconceived dominates everything",
			mastery.Distribution{mastery.Mastered: 10, mastery.Misconceived: 1},
			mastery.Misconceived,
		},
		{
			"lowest linear state wins",
			mastery.Distribution{mastery.Solid: 3, mastery.Fragile: 1, mastery.Mastered: 2},
			mastery.Fragile,
		},
		{"single state", mastery.Distribution{mastery.Developing: 5}, mastery.Developing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mastery.Lowest(tt.dist))
		})
	}
}

func TestDistribution_Total(t *testing.T) {
	d := mastery.Distribution{mastery.Unseen: 2, mastery.Solid: 3}
	assert.Equal(t, 5, d.Total())
	assert.Equal(t, 0, mastery.Distribution{}.Total())
}
