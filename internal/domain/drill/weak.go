package drill

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
)

// WeakThreshold is the pure accuracy below which an item counts as weak.
const WeakThreshold = 0.9

// ItemStats summarizes a learner's answers for one item.
type ItemStats struct {
	ItemID uuid.UUID
	// Total is the number of answers.
	Total int
	// PureCorrect counts correct answers given without a hint.
	PureCorrect int
	// CorrectCount counts correct answers with or without a hint.
	CorrectCount int
	// HintCount counts correct answers given with a hint.
	HintCount int
}

// Accuracy returns PureCorrect/Total, or 0 for an item with no answers.
func (s ItemStats) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.PureCorrect) / float64(s.Total)
}

// IsWeak reports whether pure accuracy is strictly below WeakThreshold.
func (s ItemStats) IsWeak() bool {
	if s.Total == 0 {
		return false
	}
	// Integer form of PureCorrect/Total < 0.9.
	return s.PureCorrect*10 < s.Total*9
}

// Tally groups answers by item, in first-seen order.
func Tally(answers []domain.Answer) []ItemStats {
	index := make(map[uuid.UUID]int)
	var stats []ItemStats
	for _, a := range answers {
		i, ok := index[a.ItemID]
		if !ok {
			i = len(stats)
			index[a.ItemID] = i
			stats = append(stats, ItemStats{ItemID: a.ItemID})
		}
		s := &stats[i]
		s.Total++
		if a.Correct {
			s.CorrectCount++
			if a.HintUsed {
				s.HintCount++
			} else {
				s.PureCorrect++
			}
		}
	}
	return stats
}

// WeakStats returns the stats of every weak item among the answers.
func WeakStats(answers []domain.Answer) []ItemStats {
	var weak []ItemStats
	for _, s := range Tally(answers) {
		if s.IsWeak() {
			weak = append(weak, s)
		}
	}
	return weak
}

// WeakItemIDs returns the IDs of weak items among the answers.
func WeakItemIDs(answers []domain.Answer) []uuid.UUID {
	weak := WeakStats(answers)
	ids := make([]uuid.UUID, len(weak))
	for i, s := range weak {
		ids[i] = s.ItemID
	}
	return ids
}

// SortKey selects the field a weak-word report is ordered by.
type SortKey string

// Sort keys.
const (
	SortByAccuracy      SortKey = "accuracy"
	SortByTotalAttempts SortKey = "total_attempts"
	SortBySpelling      SortKey = "spelling"
	SortByGloss         SortKey = "gloss"
)

// ParseSortKey converts a client token to a SortKey, accepting the legacy
// aliases "english" and "japanese". Unknown tokens sort by accuracy.
func ParseSortKey(s string) SortKey {
	switch s {
	case string(SortByTotalAttempts):
		return SortByTotalAttempts
	case string(SortBySpelling), "english":
		return SortBySpelling
	case string(SortByGloss), "japanese":
		return SortByGloss
	default:
		return SortByAccuracy
	}
}

// SortOrder is the direction of a report ordering.
type SortOrder string

// Sort orders.
const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ParseSortOrder converts a client token to a SortOrder. Anything other
// than "desc" is ascending.
func ParseSortOrder(s string) SortOrder {
	if s == string(Descending) {
		return Descending
	}
	return Ascending
}

// WeakEntry is one row of the weak-word report.
type WeakEntry struct {
	Item          domain.Item
	TotalAttempts int
	CorrectCount  int
	HintCount     int
	Accuracy      float64
}

// WeakReport builds the weak-word report from a learner's answers. Items
// missing from the catalog map are skipped.
func WeakReport(answers []domain.Answer, items map[uuid.UUID]domain.Item, key SortKey, order SortOrder) []WeakEntry {
	var entries []WeakEntry
	for _, s := range WeakStats(answers) {
		item, ok := items[s.ItemID]
		if !ok {
			continue
		}
		entries = append(entries, WeakEntry{
			Item:          item,
			TotalAttempts: s.Total,
			CorrectCount:  s.CorrectCount,
			HintCount:     s.HintCount,
			Accuracy:      roundTo(s.Accuracy(), 3),
		})
	}
	SortWeakEntries(entries, key, order)
	return entries
}

// SortWeakEntries orders entries in place. Ties fall back to spelling and then
// item ID so the order is deterministic.
func SortWeakEntries(entries []WeakEntry, key SortKey, order SortOrder) {
	sort.SliceStable(entries, func(i, j int) bool {
		c := compareEntries(entries[i], entries[j], key)
		if c == 0 {
			return tieBreak(entries[i], entries[j]) < 0
		}
		if order == Descending {
			return c > 0
		}
		return c < 0
	})
}

func compareEntries(a, b WeakEntry, key SortKey) int {
	switch key {
	case SortByTotalAttempts:
		return compareInts(a.TotalAttempts, b.TotalAttempts)
	case SortBySpelling:
		return strings.Compare(strings.ToLower(a.Item.Spelling), strings.ToLower(b.Item.Spelling))
	case SortByGloss:
		return strings.Compare(a.Item.Gloss, b.Item.Gloss)
	default:
		switch {
		case a.Accuracy < b.Accuracy:
			return -1
		case a.Accuracy > b.Accuracy:
			return 1
		}
		return 0
	}
}

func tieBreak(a, b WeakEntry) int {
	if c := strings.Compare(strings.ToLower(a.Item.Spelling), strings.ToLower(b.Item.Spelling)); c != 0 {
		return c
	}
	return strings.Compare(a.Item.ID.String(), b.Item.ID.String())
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// roundTo rounds half to even, so 1/16 reports as 0.062.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}
