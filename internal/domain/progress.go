package domain

import (
	"time"

	"github.com/google/uuid"
)

// InitialSection is the section every learner starts in.
const InitialSection = 1

// Progress records how far a learner has advanced through the sections.
type Progress struct {
	LearnerID      uuid.UUID  `json:"learner_id"`
	CurrentSection int        `json:"current_section"`
	LastAdvanceAt  *time.Time `json:"last_advance_at,omitempty"`
}

// NewProgress creates progress for a learner who has never visited.
func NewProgress(learnerID uuid.UUID) *Progress {
	return &Progress{LearnerID: learnerID, CurrentSection: InitialSection}
}

// Validate checks if the Progress has valid data.
func (p *Progress) Validate() error {
	if p.LearnerID == uuid.Nil {
		return NewValidationError("learner_id", "cannot be empty", ErrInvalidID)
	}
	if p.CurrentSection < InitialSection {
		return NewValidationError("current_section", "must be at least 1", ErrInvalidSection)
	}
	return nil
}

// Advance applies the daily section rule at the given instant and reports
// whether the section changed. It returns true only when the stored timestamp
// and now fall on different regional days, and then moves forward by exactly
// one section no matter how many days have passed. The first visit only
// records the timestamp. Progress is modified in place.
func (p *Progress) Advance(now time.Time) bool {
	now = now.UTC()
	if p.LastAdvanceAt == nil {
		p.LastAdvanceAt = &now
		return false
	}
	if RegionalDate(*p.LastAdvanceAt) == RegionalDate(now) {
		return false
	}
	p.CurrentSection++
	p.LastAdvanceAt = &now
	return true
}
