package review

import (
	"sort"
	"time"

	"github.com/avelar/memora/internal/models"
)

// IsDue reports whether the card is eligible for review at the given time.
// A card with reps == 0 is newly introduced, not overdue, but it is still
// reviewable once its due timestamp has passed.
func IsDue(card models.ReviewCard, now time.Time) bool {
	return !card.DueAt.After(now)
}

// DaysOverdue returns floor((now - due_at) / 1 day), clamped to zero for
// cards not yet due. Unreviewed cards never count as overdue.
func DaysOverdue(card models.ReviewCard, now time.Time) int {
	if card.Reps == 0 || card.DueAt.After(now) {
		return 0
	}
	return int(now.Sub(card.DueAt).Hours() / 24)
}

// OrderDue sorts cards for a review sitting: most overdue first, ties broken
// by ascending stability so the most fragile concepts surface first among
// equally overdue ones. The input slice is not modified.
func OrderDue(cards []models.ReviewCard, now time.Time) []models.ReviewCard {
	ordered := make([]models.ReviewCard, len(cards))
	copy(ordered, cards)

	sort.SliceStable(ordered, func(i, j int) bool {
		oi, oj := DaysOverdue(ordered[i], now), DaysOverdue(ordered[j], now)
		if oi != oj {
			return oi > oj
		}
		if ordered[i].Stability != ordered[j].Stability {
			return ordered[i].Stability < ordered[j].Stability
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}
