package gap_test

import (
	"testing"

	"github.com/avelar/memora/internal/gap"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    gap.Recommendation
	}{
		{"perfect score", 10, 10, gap.Proceed},
		{"exactly at proceed threshold", 8, 10, gap.Proceed},
		{"just below proceed threshold", 79, 100, gap.ReviewSuggested},
		{"exactly at suggest threshold", 5, 10, gap.ReviewSuggested},
		{"just below suggest threshold", 49, 100, gap.ReviewRequired},
		{"zero score", 0, 10, gap.ReviewRequired},
		{"empty pretest counts as full gap", 0, 0, gap.ReviewRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := gap.Classify(tt.correct, tt.total, nil)
			assert.Equal(t, tt.want, result.Recommendation)
			assert.Equal(t, tt.correct, result.Correct)
			assert.Equal(t, tt.total, result.Total)
		})
	}
}

func TestClassify_ScoreAndGaps(t *testing.T) {
	gaps := []string{"pointers", "interfaces"}
	result := gap.Classify(3, 4, gaps)

	assert.Equal(t, 75.0, result.ScorePercent)
	assert.Equal(t, gap.ReviewSuggested, result.Recommendation)
	assert.Equal(t, gaps, result.Gaps, "missed prerequisites carry through untouched")
}

func TestClassify_EmptyPretestScore(t *testing.T) {
	result := gap.Classify(0, 0, nil)
	assert.Equal(t, 0.0, result.ScorePercent)
	assert.Equal(t, gap.ReviewRequired, result.Recommendation)
}
