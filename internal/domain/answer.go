package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category identifies which drill an answer was given in.
type Category string

// Answer categories.
const (
	CategoryNewSection Category = "new-section"
	CategoryReview     Category = "review"
	CategoryWeak       Category = "weak"
)

// Categories lists all categories in report order.
var Categories = []Category{CategoryNewSection, CategoryReview, CategoryWeak}

// ParseCategory converts a client token to a Category. The legacy token
// "today" is accepted as an alias for the new-section drill.
func ParseCategory(s string) (Category, error) {
	switch s {
	case string(CategoryNewSection), "today":
		return CategoryNewSection, nil
	case string(CategoryReview):
		return CategoryReview, nil
	case string(CategoryWeak):
		return CategoryWeak, nil
	default:
		return "", NewValidationError("category", "must be one of new-section, review, weak", ErrInvalidCategory)
	}
}

// Outcome classifies a single answer for reporting.
type Outcome int

// Answer outcomes. A correct answer given with a hint counts as OutcomeHint.
const (
	OutcomeCorrect Outcome = iota
	OutcomeHint
	OutcomeIncorrect
)

// Answer is one immutable entry in a learner's answer ledger.
type Answer struct {
	ID         uuid.UUID `json:"id"`
	LearnerID  uuid.UUID `json:"learner_id"`
	ItemID     uuid.UUID `json:"item_id"`
	Correct    bool      `json:"correct"`
	HintUsed   bool      `json:"hint_used"`
	AnsweredAt time.Time `json:"answered_at"`
	Category   Category  `json:"category"`
}

// NewAnswer creates a ledger entry stamped with the given time in UTC.
func NewAnswer(learnerID, itemID uuid.UUID, correct, hintUsed bool, category Category, at time.Time) (*Answer, error) {
	a := &Answer{
		ID:         uuid.New(),
		LearnerID:  learnerID,
		ItemID:     itemID,
		Correct:    correct,
		HintUsed:   hintUsed,
		AnsweredAt: at.UTC(),
		Category:   category,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks if the Answer has valid data.
func (a *Answer) Validate() error {
	if a.LearnerID == uuid.Nil {
		return NewValidationError("learner_id", "cannot be empty", ErrInvalidID)
	}
	if a.ItemID == uuid.Nil {
		return NewValidationError("item_id", "cannot be empty", ErrInvalidID)
	}
	if _, err := ParseCategory(string(a.Category)); err != nil {
		return err
	}
	return nil
}

// PureCorrect reports whether the answer was correct without a hint.
func (a *Answer) PureCorrect() bool {
	return a.Correct && !a.HintUsed
}

// Outcome classifies the answer as correct, hint-assisted, or incorrect.
func (a *Answer) Outcome() Outcome {
	switch {
	case a.Correct && a.HintUsed:
		return OutcomeHint
	case a.Correct:
		return OutcomeCorrect
	default:
		return OutcomeIncorrect
	}
}
