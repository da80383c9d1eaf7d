package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"new-section", CategoryNewSection, false},
		{"today", CategoryNewSection, false},
		{"review", CategoryReview, false},
		{"weak", CategoryWeak, false},
		{"", "", true},
		{"Review", "", true},
		{"bogus", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCategory(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCategory)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewAnswer(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("JST", 9*3600))
	a, err := NewAnswer(uuid.New(), uuid.New(), true, false, CategoryReview, at)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, time.UTC, a.AnsweredAt.Location())
	assert.True(t, a.AnsweredAt.Equal(at))

	_, err = NewAnswer(uuid.Nil, uuid.New(), true, false, CategoryReview, at)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = NewAnswer(uuid.New(), uuid.New(), true, false, Category("x"), at)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestAnswerOutcome(t *testing.T) {
	assert.Equal(t, OutcomeCorrect, (&Answer{Correct: true}).Outcome())
	assert.Equal(t, OutcomeHint, (&Answer{Correct: true, HintUsed: true}).Outcome())
	assert.Equal(t, OutcomeIncorrect, (&Answer{}).Outcome())
	assert.Equal(t, OutcomeIncorrect, (&Answer{HintUsed: true}).Outcome())

	assert.True(t, (&Answer{Correct: true}).PureCorrect())
	assert.False(t, (&Answer{Correct: true, HintUsed: true}).PureCorrect())
}

func TestItemMatches(t *testing.T) {
	item := &Item{Spelling: "Apple"}

	assert.True(t, item.Matches("apple"))
	assert.True(t, item.Matches("  APPLE\n"))
	assert.False(t, item.Matches("apples"))
	assert.False(t, item.Matches(""))
}

func TestItemValidate(t *testing.T) {
	valid := Item{ID: uuid.New(), Spelling: "dog", Phonetic: "ドッグ", Gloss: "いぬ", Section: 1}
	assert.NoError(t, valid.Validate())

	noGloss := valid
	noGloss.Gloss = " "
	assert.ErrorIs(t, noGloss.Validate(), ErrEmptyContent)

	badSection := valid
	badSection.Section = 0
	assert.ErrorIs(t, badSection.Validate(), ErrInvalidSection)
}

func TestUserIsDependentOf(t *testing.T) {
	guardian := uuid.New()
	learner := &User{ID: uuid.New(), Role: RoleLearner, GuardianID: &guardian}

	assert.True(t, learner.IsDependentOf(guardian))
	assert.False(t, learner.IsDependentOf(uuid.New()))
	assert.False(t, (&User{Role: RoleLearner}).IsDependentOf(guardian))
	assert.False(t, (&User{Role: RoleGuardian, GuardianID: &guardian}).IsDependentOf(guardian))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("parent")
	require.NoError(t, err)
	assert.Equal(t, RoleGuardian, r)

	r, err = ParseRole("learner")
	require.NoError(t, err)
	assert.Equal(t, RoleLearner, r)

	_, err = ParseRole("admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
}
