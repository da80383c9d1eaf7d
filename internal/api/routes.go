package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tango-api/internal/api/middleware"
	"github.com/phrazzld/tango-api/internal/domain"
)

// RegisterRoutes mounts the authenticated API under /api. Learner routes live
// under /api/learning and guardian routes under /api/guardian; a token with
// the other role gets 403.
func RegisterRoutes(
	r chi.Router,
	authMiddleware *middleware.AuthMiddleware,
	learning *LearningHandler,
	guardian *GuardianHandler,
) {
	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/learning", func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleLearner))
			learning.Routes(r)
		})

		r.Route("/guardian", func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleGuardian))
			guardian.Routes(r)
		})
	})
}
