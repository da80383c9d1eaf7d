package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/domain/drill"
	"github.com/phrazzld/tango-api/internal/service"
)

// SubmitAnswerRequest defines the payload for POST /api/learning/answers.
type SubmitAnswerRequest struct {
	ItemID   string `json:"item_id"   validate:"required,uuid"`
	Answer   string `json:"answer"    validate:"max=200"`
	Category string `json:"category"  validate:"required,category"`
	HintUsed bool   `json:"hint_used"`
}

// AnswerResponse reports the grading of a submitted answer.
type AnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Phonetic      string `json:"phonetic"`
}

// ItemResponse is a quiz item as sent to clients.
type ItemResponse struct {
	ID       uuid.UUID `json:"id"`
	Spelling string    `json:"spelling"`
	Phonetic string    `json:"phonetic"`
	Gloss    string    `json:"gloss"`
	Section  int       `json:"section"`
}

// SectionResponse is the result of the daily progression check.
type SectionResponse struct {
	Section       int       `json:"section"`
	Advanced      bool      `json:"advanced"`
	LastAdvanceAt time.Time `json:"last_advance_at"`
}

// QuizResponse carries the items of a drill. Section is set for new-section
// drills only.
type QuizResponse struct {
	Section  int            `json:"section,omitempty"`
	Advanced bool           `json:"advanced,omitempty"`
	Window   drill.Window   `json:"range,omitempty"`
	Items    []ItemResponse `json:"items"`
}

// MenuStatusResponse summarizes the drills available right now.
type MenuStatusResponse struct {
	Section       int            `json:"section"`
	SectionItems  int            `json:"section_items"`
	ReviewCounts  map[string]int `json:"review_counts"`
	WeakCounts    map[string]int `json:"weak_counts"`
	LastAdvanceAt *time.Time     `json:"last_advance_at"`
}

// WeakWordResponse is one row of the weak-word report.
type WeakWordResponse struct {
	ItemResponse
	TotalAttempts int     `json:"total_attempts"`
	CorrectCount  int     `json:"correct_count"`
	HintCount     int     `json:"hint_count"`
	Accuracy      float64 `json:"accuracy"`
}

// OutcomeCounts holds one category's answers on one day.
type OutcomeCounts struct {
	Correct   int `json:"correct"`
	Hint      int `json:"hint"`
	Incorrect int `json:"incorrect"`
}

// CalendarDayResponse is one regional day of the monthly report.
type CalendarDayResponse struct {
	Date       string        `json:"date"`
	NewSection OutcomeCounts `json:"new_section"`
	Review     OutcomeCounts `json:"review"`
	Weak       OutcomeCounts `json:"weak"`
	Total      int           `json:"total"`
}

// CalendarResponse is the monthly report.
type CalendarResponse struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Days  []CalendarDayResponse `json:"days"`
}

// LearnerResponse identifies a guardian's dependent.
type LearnerResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func itemToResponse(item domain.Item) ItemResponse {
	return ItemResponse{
		ID:       item.ID,
		Spelling: item.Spelling,
		Phonetic: item.Phonetic,
		Gloss:    item.Gloss,
		Section:  item.Section,
	}
}

func itemsToResponse(items []domain.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemToResponse(item))
	}
	return out
}

func menuStatusToResponse(m *service.MenuStatus) MenuStatusResponse {
	resp := MenuStatusResponse{
		Section:       m.Section,
		SectionItems:  m.SectionItems,
		ReviewCounts:  make(map[string]int, len(drill.Windows)),
		WeakCounts:    make(map[string]int, len(drill.Windows)),
		LastAdvanceAt: m.LastAdvanceAt,
	}
	for _, w := range drill.Windows {
		resp.ReviewCounts[string(w)] = m.ReviewCounts[w]
		resp.WeakCounts[string(w)] = m.WeakCounts[w]
	}
	return resp
}

func weakEntriesToResponse(entries []drill.WeakEntry) []WeakWordResponse {
	out := make([]WeakWordResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, WeakWordResponse{
			ItemResponse:  itemToResponse(e.Item),
			TotalAttempts: e.TotalAttempts,
			CorrectCount:  e.CorrectCount,
			HintCount:     e.HintCount,
			Accuracy:      e.Accuracy,
		})
	}
	return out
}

func outcomeCounts(d drill.DayStats, c domain.Category) OutcomeCounts {
	return OutcomeCounts{
		Correct:   d.Count(c, domain.OutcomeCorrect),
		Hint:      d.Count(c, domain.OutcomeHint),
		Incorrect: d.Count(c, domain.OutcomeIncorrect),
	}
}

func calendarToResponse(year, month int, days []drill.DayStats) CalendarResponse {
	resp := CalendarResponse{Year: year, Month: month, Days: make([]CalendarDayResponse, 0, len(days))}
	for _, d := range days {
		resp.Days = append(resp.Days, CalendarDayResponse{
			Date:       d.Date.String(),
			NewSection: outcomeCounts(d, domain.CategoryNewSection),
			Review:     outcomeCounts(d, domain.CategoryReview),
			Weak:       outcomeCounts(d, domain.CategoryWeak),
			Total:      d.Total(),
		})
	}
	return resp
}

func learnersToResponse(users []domain.User) []LearnerResponse {
	out := make([]LearnerResponse, 0, len(users))
	for _, u := range users {
		out = append(out, LearnerResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt})
	}
	return out
}
