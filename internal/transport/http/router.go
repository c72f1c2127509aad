package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"corrigeaqui/internal/handler"
	"corrigeaqui/internal/httputil"
	authmw "corrigeaqui/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	PostHandler     *handler.PostHandler
	CommentHandler  *handler.CommentHandler
	LikeHandler     *handler.LikeHandler
	ReportHandler   *handler.ReportHandler
	CategoryHandler *handler.CategoryHandler
	MediaHandler    *handler.MediaHandler
	JWTSecret       string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
	})

	// Public reads with optional authentication. An authenticated viewer
	// gets their own like flags on feed items and comments.
	r.Group(func(r chi.Router) {
		r.Use(authmw.OptionalAuthMiddleware(cfg.JWTSecret))

		r.Get("/posts", cfg.PostHandler.GetFeed)
		r.Get("/posts/markers", cfg.PostHandler.GetMarkers)
		r.Get("/posts/search", cfg.PostHandler.Search)
		r.Get("/posts/{id}", cfg.PostHandler.GetByID)
		r.Get("/posts/{id}/comments", cfg.CommentHandler.List)
		r.Get("/posts/{id}/likes", cfg.LikeHandler.GetPostLikes)
		r.Get("/comments/{commentId}/likes", cfg.LikeHandler.GetCommentLikes)

		r.Get("/users/{id}", cfg.UserHandler.GetProfile)
		r.Get("/users/{id}/posts", cfg.PostHandler.GetUserPosts)

		r.Get("/categories", cfg.CategoryHandler.List)
		r.Get("/categories/{id}", cfg.CategoryHandler.GetByID)
	})

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		// Current user endpoints
		r.Get("/me", cfg.AuthHandler.Me)
		r.Patch("/me", cfg.UserHandler.Update)

		// Post endpoints
		r.Post("/posts", cfg.PostHandler.Create)
		r.Patch("/posts/{id}", cfg.PostHandler.Update)
		r.Delete("/posts/{id}", cfg.PostHandler.Delete)

		// Comment endpoints
		r.Post("/posts/{id}/comments", cfg.CommentHandler.Create)
		r.Patch("/comments/{commentId}", cfg.CommentHandler.Update)
		r.Delete("/comments/{commentId}", cfg.CommentHandler.Delete)

		// Like endpoints
		r.Post("/posts/{id}/likes", cfg.LikeHandler.LikePost)
		r.Delete("/posts/{id}/likes", cfg.LikeHandler.UnlikePost)
		r.Post("/comments/{commentId}/likes", cfg.LikeHandler.LikeComment)
		r.Delete("/comments/{commentId}/likes", cfg.LikeHandler.UnlikeComment)

		// Anyone logged in may file a report
		r.Post("/reports", cfg.ReportHandler.Create)

		// Media endpoints
		r.Post("/media/avatars", cfg.MediaHandler.UploadAvatar)
		r.Post("/media/posts", cfg.MediaHandler.UploadPostImage)

		// Moderation endpoints
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireModerator)

			r.Get("/reports", cfg.ReportHandler.List)
			r.Get("/reports/{id}", cfg.ReportHandler.GetByID)
			r.Put("/reports/{id}/status", cfg.ReportHandler.Transition)
			r.Patch("/reports/{id}", cfg.ReportHandler.Update)
			r.Delete("/reports/{id}", cfg.ReportHandler.Delete)

			r.Post("/categories", cfg.CategoryHandler.Create)
		})
	})

	return r
}
