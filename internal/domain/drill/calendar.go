package drill

import (
	"time"

	"github.com/phrazzld/tango-api/internal/domain"
)

// DayStats holds one regional day's answer counts, indexed by category and
// outcome.
type DayStats struct {
	Date   domain.Date
	Counts [3][3]int
}

// Count returns the number of answers for a category and outcome.
func (d DayStats) Count(c domain.Category, o domain.Outcome) int {
	ci, ok := categoryIndex(c)
	if !ok || o < domain.OutcomeCorrect || o > domain.OutcomeIncorrect {
		return 0
	}
	return d.Counts[ci][o]
}

// Total returns the number of answers recorded on the day.
func (d DayStats) Total() int {
	n := 0
	for _, row := range d.Counts {
		for _, v := range row {
			n += v
		}
	}
	return n
}

// MonthlyCalendar buckets answers into one entry per day of the regional
// month, earliest first. Days without activity are present with zero counts.
// Answers outside the month or with an unknown category are ignored.
func MonthlyCalendar(year, month int, answers []domain.Answer) ([]DayStats, error) {
	if err := domain.ValidateMonth(month); err != nil {
		return nil, err
	}
	m := time.Month(month)
	days := make([]DayStats, domain.DaysIn(year, m))
	for i := range days {
		days[i].Date = domain.Date{Year: year, Month: m, Day: i + 1}
	}

	for i := range answers {
		a := &answers[i]
		d := domain.RegionalDate(a.AnsweredAt)
		if d.Year != year || d.Month != m {
			continue
		}
		ci, ok := categoryIndex(a.Category)
		if !ok {
			continue
		}
		days[d.Day-1].Counts[ci][a.Outcome()]++
	}
	return days, nil
}

func categoryIndex(c domain.Category) (int, bool) {
	switch c {
	case domain.CategoryNewSection:
		return 0, true
	case domain.CategoryReview:
		return 1, true
	case domain.CategoryWeak:
		return 2, true
	}
	return 0, false
}
