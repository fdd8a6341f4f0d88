package mastery

import "math"

// Distribution maps each state to the number of concepts currently in it for
// some scope (one project, or everything). It is a derived, report-only
// structure: recomputed on demand, never persisted as source of truth.
type Distribution map[State]int

// Total returns the number of concepts covered by the distribution.
func (d Distribution) Total() int {
	total := 0
	for _, n := range d {
		total += n
	}
	return total
}

// Progress computes the count-weighted average of the states' progress
// weights, rounded to the nearest integer percent (ties away from zero).
// An empty scope reports 0, not an error.
func Progress(d Distribution) int {
	total := 0
	weighted := 0
	for s, n := range d {
		if n <= 0 || !s.IsValid() {
			continue
		}
		total += n
		weighted += n * stateMeta[s].Progress
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(weighted) / float64(total)))
}

// Lowest returns the weakest state present in the distribution. Misconceived
// dominates whenever its count is nonzero, regardless of how advanced the
// rest of the scope is; otherwise the lowest-ranked state with a nonzero
// count wins. An empty distribution reports Unseen as the neutral default.
func Lowest(d Distribution) State {
	if d[Misconceived] > 0 {
		return Misconceived
	}
	for _, s := range linearStates {
		if d[s] > 0 {
			return s
		}
	}
	return Unseen
}
