package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Item is an immutable vocabulary catalog entry. Items are created by the
// catalog import process; the learning engine only reads them.
type Item struct {
	ID       uuid.UUID `json:"id"`
	Spelling string    `json:"spelling"` // target-language spelling
	Phonetic string    `json:"phonetic"` // phonetic rendering of the spelling
	Gloss    string    `json:"gloss"`    // native-language meaning
	Section  int       `json:"section"`
}

// Validate checks if the Item has valid data.
func (i *Item) Validate() error {
	if i.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if strings.TrimSpace(i.Spelling) == "" {
		return NewValidationError("spelling", "cannot be empty", ErrEmptyContent)
	}
	if strings.TrimSpace(i.Gloss) == "" {
		return NewValidationError("gloss", "cannot be empty", ErrEmptyContent)
	}
	if i.Section < 1 {
		return NewValidationError("section", "must be at least 1", ErrInvalidSection)
	}
	return nil
}

// Matches reports whether a submitted answer is the item's spelling.
// Surrounding whitespace is ignored and the comparison is case-insensitive.
func (i *Item) Matches(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(i.Spelling))
}
