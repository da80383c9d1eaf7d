package drill

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
)

// MaxQuizItems caps the number of items returned for review and weak drills.
const MaxQuizItems = 10

// Window restricts which answers are considered, relative to now.
type Window string

// Recency windows.
const (
	WindowAll       Window = "all"
	WindowWeek      Window = "week"
	WindowMonth     Window = "month"
	WindowOverMonth Window = "over_month"
)

// Windows lists every recency window.
var Windows = []Window{WindowWeek, WindowMonth, WindowOverMonth, WindowAll}

const (
	weekSpan  = 7 * 24 * time.Hour
	monthSpan = 30 * 24 * time.Hour
)

// ParseWindow converts a client token to a Window. Empty and unrecognized
// tokens mean no restriction.
func ParseWindow(s string) Window {
	switch Window(s) {
	case WindowWeek, WindowMonth, WindowOverMonth:
		return Window(s)
	default:
		return WindowAll
	}
}

// Range returns the half-open interval [since, until) of answer timestamps the
// window admits. A zero bound is unbounded on that side.
func (w Window) Range(now time.Time) (since, until time.Time) {
	now = now.UTC()
	switch w {
	case WindowWeek:
		return now.Add(-weekSpan), time.Time{}
	case WindowMonth:
		return now.Add(-monthSpan), time.Time{}
	case WindowOverMonth:
		return time.Time{}, now.Add(-monthSpan)
	default:
		return time.Time{}, time.Time{}
	}
}

// Contains reports whether an answer given at t falls inside the window.
func (w Window) Contains(t, now time.Time) bool {
	since, until := w.Range(now)
	if !since.IsZero() && t.Before(since) {
		return false
	}
	if !until.IsZero() && !t.Before(until) {
		return false
	}
	return true
}

// FilterAnswers returns the answers that fall inside the window.
func FilterAnswers(answers []domain.Answer, w Window, now time.Time) []domain.Answer {
	if w == WindowAll {
		return answers
	}
	out := make([]domain.Answer, 0, len(answers))
	for _, a := range answers {
		if w.Contains(a.AnsweredAt, now) {
			out = append(out, a)
		}
	}
	return out
}

// DistinctItemIDs returns the item IDs referenced by the answers, in first-seen order.
func DistinctItemIDs(answers []domain.Answer) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(answers))
	ids := make([]uuid.UUID, 0, len(answers))
	for _, a := range answers {
		if _, ok := seen[a.ItemID]; ok {
			continue
		}
		seen[a.ItemID] = struct{}{}
		ids = append(ids, a.ItemID)
	}
	return ids
}

// ShuffleFunc permutes n elements using swap, with the signature of rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// DefaultShuffle is the package-level uniform shuffle.
var DefaultShuffle ShuffleFunc = rand.Shuffle

// Shuffle returns a shuffled copy of values. A nil shuffle uses DefaultShuffle.
func Shuffle[T any](values []T, shuffle ShuffleFunc) []T {
	if shuffle == nil {
		shuffle = DefaultShuffle
	}
	out := make([]T, len(values))
	copy(out, values)
	shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Sample returns up to limit values chosen uniformly at random, in random order.
func Sample[T any](values []T, limit int, shuffle ShuffleFunc) []T {
	out := Shuffle(values, shuffle)
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
