package routes

import (
	"net/http"

	"github.com/AnshRaj112/vidtube-backend/internal/handlers"
	"github.com/AnshRaj112/vidtube-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// Handlers bundles what the route table needs.
type Handlers struct {
	Auth          middleware.Authenticator
	Users         *handlers.UserHandler
	Subscriptions *handlers.SubscriptionHandler
}

func SetupRoutes(r chi.Router, h Handlers) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	verifyJWT := middleware.VerifyJWT(h.Auth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.Users.Register)
			r.Post("/login", h.Users.Login)
			r.Post("/refresh-token", h.Users.RefreshToken)
			r.With(middleware.OptionalAuth(h.Auth)).Get("/c/{username}", h.Users.ChannelProfile)

			r.Group(func(r chi.Router) {
				r.Use(verifyJWT)
				r.Post("/logout", h.Users.Logout)
				r.Post("/change-password", h.Users.ChangePassword)
				r.Get("/current-user", h.Users.CurrentUser)
				r.Patch("/update-account", h.Users.UpdateAccount)
				r.Patch("/avatar", h.Users.UpdateAvatar)
				r.Patch("/cover-image", h.Users.UpdateCoverImage)
				r.Get("/history", h.Users.WatchHistory)
			})
		})

		r.With(verifyJWT).Post("/subscriptions/c/{channelId}", h.Subscriptions.Toggle)
	})
}
