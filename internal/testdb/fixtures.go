package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/store"
	"github.com/stretchr/testify/require"
)

// MustInsertGuardian inserts a guardian account and returns it.
func MustInsertGuardian(t *testing.T, db store.DBTX) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:        uuid.New(),
		Username:  "guardian-" + uuid.NewString()[:8],
		Role:      domain.RoleGuardian,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	mustInsertUser(t, db, u)
	return u
}

// MustInsertLearner inserts a learner owned by guardianID and returns it.
func MustInsertLearner(t *testing.T, db store.DBTX, guardianID uuid.UUID) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:         uuid.New(),
		Username:   "learner-" + uuid.NewString()[:8],
		Role:       domain.RoleLearner,
		GuardianID: &guardianID,
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
	mustInsertUser(t, db, u)
	return u
}

func mustInsertUser(t *testing.T, db store.DBTX, u *domain.User) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO users (id, username, role, guardian_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Username, string(u.Role), u.GuardianID, u.CreatedAt)
	require.NoError(t, err, "Failed to insert user")
}

// MustInsertItem inserts a catalog item in the given section and returns it.
func MustInsertItem(t *testing.T, db store.DBTX, spelling, gloss string, section int) *domain.Item {
	t.Helper()
	item := &domain.Item{ID: uuid.New(), Spelling: spelling, Phonetic: "", Gloss: gloss, Section: section}
	require.NoError(t, item.Validate())
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO items (id, spelling, phonetic, gloss, section) VALUES ($1, $2, $3, $4, $5)`,
		item.ID, item.Spelling, item.Phonetic, item.Gloss, item.Section)
	require.NoError(t, err, "Failed to insert item")
	return item
}
