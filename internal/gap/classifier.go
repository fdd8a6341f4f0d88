package gap

// Recommendation buckets a prerequisite pretest score. This is a standalone
// decision engine that shares a UI surface with the review core but is
// otherwise unrelated to it.
type Recommendation string

const (
	Proceed        Recommendation = "proceed"
	ReviewSuggested Recommendation = "review_suggested"
	ReviewRequired  Recommendation = "review_required"
)

// Score thresholds as percentages of correct pretest answers.
const (
	proceedThreshold = 80.0
	suggestThreshold = 50.0
)

// Result is the full gap-analysis outcome for a pretest.
type Result struct {
	Correct        int            `json:"correct"`
	Total          int            `json:"total"`
	ScorePercent   float64        `json:"score_percent"`
	Recommendation Recommendation `json:"recommendation"`
	Gaps           []string       `json:"gaps"`
}

// Classify buckets correct/total into a recommendation and carries through
// the list of prerequisites the learner missed. An empty pretest counts as a
// full gap: review required.
func Classify(correct, total int, gaps []string) Result {
	var score float64
	if total > 0 {
		score = 100.0 * float64(correct) / float64(total)
	}

	rec := ReviewRequired
	switch {
	case total == 0:
		rec = ReviewRequired
	case score >= proceedThreshold:
		rec = Proceed
	case score >= suggestThreshold:
		rec = ReviewSuggested
	}

	return Result{
		Correct:        correct,
		Total:          total,
		ScorePercent:   score,
		Recommendation: rec,
		Gaps:           gaps,
	}
}
