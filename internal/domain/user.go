package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes account holders from the learners they manage.
type Role string

// User roles.
const (
	RoleGuardian Role = "guardian"
	RoleLearner  Role = "learner"
)

// ParseRole converts a stored or token role string to a Role. The legacy
// values "parent" and "child" map to guardian and learner.
func ParseRole(s string) (Role, error) {
	switch s {
	case string(RoleGuardian), "parent":
		return RoleGuardian, nil
	case string(RoleLearner), "child":
		return RoleLearner, nil
	default:
		return "", ErrInvalidRole
	}
}

// User is an account known to the learning engine. Accounts are managed
// elsewhere; the engine only reads them to resolve learners and guardians.
type User struct {
	ID         uuid.UUID  `json:"id"`
	Username   string     `json:"username"`
	Role       Role       `json:"role"`
	GuardianID *uuid.UUID `json:"guardian_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IsDependentOf reports whether the user is a learner managed by guardianID.
func (u *User) IsDependentOf(guardianID uuid.UUID) bool {
	return u.Role == RoleLearner && u.GuardianID != nil && *u.GuardianID == guardianID
}
