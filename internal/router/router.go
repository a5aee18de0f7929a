package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mdd-api/internal/config"
	"mdd-api/internal/handler"
	"mdd-api/internal/middleware"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	subjectHandler *handler.SubjectHandler,
	postHandler *handler.PostHandler,
	feedHandler *handler.FeedHandler,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", authHandler.Register)
			auth.Post("/login", authHandler.Login)
			auth.Post("/refresh", authHandler.Refresh)
			auth.Post("/logout", authHandler.Logout)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(authMiddleware.RequireAuth)

			protected.Get("/users/me", userHandler.Me)
			protected.Put("/users/me", userHandler.UpdateMe)

			protected.Get("/subjects", subjectHandler.List)
			protected.Post("/subjects/{subjectID}/subscription", subjectHandler.Subscribe)
			protected.Delete("/subjects/{subjectID}/subscription", subjectHandler.Unsubscribe)

			protected.Post("/posts", postHandler.Create)
			protected.Get("/posts/{postID}", postHandler.Get)
			protected.Post("/posts/{postID}/comments", postHandler.AddComment)

			protected.Get("/feed", feedHandler.Get)
		})
	})

	return r
}
