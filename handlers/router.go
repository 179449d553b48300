package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/taibui324/la-gougah/backend/cms"
	"github.com/taibui324/la-gougah/backend/middleware"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	CMS            *cms.Service
	Health         Pinger
	Logger         *slog.Logger
	Metrics        *middleware.Metrics // optional
	JWTSecret      string
	TokenTTL       time.Duration
	CORSOrigins    []string
	LoginLimiter   *middleware.RateLimiter
	ContactLimiter *middleware.RateLimiter
}

func NewRouter(c RouterConfig) http.Handler {
	authHandler := &AuthHandler{CMS: c.CMS, JWTSecret: c.JWTSecret, TokenTTL: c.TokenTTL}
	usersHandler := &UsersHandler{CMS: c.CMS}
	postsHandler := &PostsHandler{CMS: c.CMS}
	bannersHandler := &BannersHandler{CMS: c.CMS}
	menuHandler := &MenuItemsHandler{CMS: c.CMS}
	contactHandler := &ContactHandler{CMS: c.CMS}
	storageHandler := &StorageHandler{CMS: c.CMS}
	publicHandler := &PublicHandler{CMS: c.CMS}

	loginLimit := passthrough
	if c.LoginLimiter != nil {
		loginLimit = c.LoginLimiter.Middleware
	}
	contactLimit := passthrough
	if c.ContactLimiter != nil {
		contactLimit = c.ContactLimiter.Middleware
	}
	requireAuth := middleware.Auth(c.JWTSecret, c.CMS.LookupPrincipal)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CORS(c.CORSOrigins))
	if c.Logger != nil {
		r.Use(middleware.RequestLogger(c.Logger))
	}
	if c.Metrics != nil {
		r.Use(c.Metrics.Middleware)
	}
	r.Use(chimw.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "La Gougah CMS API"})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if c.Health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := c.Health.Ping(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if c.Metrics != nil {
		r.Handle("/metrics", c.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimit).Post("/login", authHandler.Login)
			r.With(loginLimit).Post("/register", authHandler.Register)
			r.With(requireAuth).Get("/me", authHandler.Me)
			r.With(requireAuth).Patch("/me", authHandler.UpdateMe)
		})

		r.Route("/public", func(r chi.Router) {
			r.Get("/posts", publicHandler.Posts)
			r.Get("/posts/{slug}", publicHandler.Post)
			r.Get("/static-paths", publicHandler.StaticPaths)
			r.Get("/menu-items", publicHandler.MenuItems)
			r.Get("/home-sections", publicHandler.HomeSections)
			r.Get("/banners", publicHandler.Banners)
			r.Get("/banners/sliders", publicHandler.Sliders)
			r.Get("/contact-settings", contactHandler.Get)
			r.With(contactLimit).Post("/contact", contactHandler.Submit)
		})

		// storage ids resolve for anyone; images are embedded on public pages
		r.Get("/storage/{storageId}", storageHandler.Redirect)
		r.Get("/storage/{storageId}/url", storageHandler.URL)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/storage/upload-url", storageHandler.UploadURL)

			r.Get("/posts", postsHandler.List)
			r.Post("/posts", postsHandler.Create)
			r.Get("/posts/by-slug/{slug}", postsHandler.GetBySlug)
			r.Get("/posts/{id}", postsHandler.Get)
			r.Patch("/posts/{id}", postsHandler.Update)
			r.Delete("/posts/{id}", postsHandler.Delete)

			r.Get("/banners", bannersHandler.List)
			r.Post("/banners", bannersHandler.Create)
			r.Put("/banners/order", bannersHandler.Reorder)
			r.Get("/banners/{id}", bannersHandler.Get)
			r.Patch("/banners/{id}", bannersHandler.Update)
			r.Delete("/banners/{id}", bannersHandler.Delete)

			r.Get("/menu-items", menuHandler.List)
			r.Post("/menu-items", menuHandler.Create)
			r.Put("/menu-items/order", menuHandler.Reorder)
			r.Get("/menu-items/{id}", menuHandler.Get)
			r.Patch("/menu-items/{id}", menuHandler.Update)
			r.Delete("/menu-items/{id}", menuHandler.Delete)

			r.Get("/users", usersHandler.ListUsers)
			r.Post("/users", usersHandler.CreateUser)
			r.Get("/users/{id}", usersHandler.GetUser)
			r.Patch("/users/{id}", usersHandler.UpdateUser)
			r.Delete("/users/{id}", usersHandler.DeleteUser)

			r.Get("/contact-settings", contactHandler.Get)
			r.Put("/contact-settings", contactHandler.Save)
			r.Get("/contact-inquiries", contactHandler.ListInquiries)
		})
	})

	return r
}

func passthrough(next http.Handler) http.Handler { return next }
