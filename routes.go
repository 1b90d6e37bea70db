package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"restaurant-booking-server/config"
	"restaurant-booking-server/handlers"
)

func SetupRouter(cfg config.Config, h *handlers.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(handlers.RequestLogger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	router.With(h.RequireUser).Get("/ws/moderation", h.ModerationFeed)

	// users
	router.With(handlers.RequireToken).Post("/users", h.CreateUser)
	router.Get("/users/{id}", h.GetUser)

	// restaurants
	router.With(h.RequireUser).Post("/restaurants", h.CreateRestaurant)
	router.Get("/restaurants/top", h.GetTopRestaurants)
	router.With(h.RequireUser).Get("/restaurants/suggested", h.GetSuggestedRestaurants)
	router.With(h.RequireUser).Get("/restaurants/recently-viewed", h.GetRecentlyViewedRestaurants)
	router.With(h.OptionalUser).Get("/restaurants/{id}", h.GetRestaurant)
	router.Get("/recommendations", h.GetRecommendations)

	// reviews
	router.Route("/reviews", func(r chi.Router) {
		r.Get("/restaurant/{id}", h.GetRestaurantReviews)
		r.Group(func(r chi.Router) {
			r.Use(h.RequireUser)
			r.With(httprate.LimitByIP(cfg.Server.ReviewRateLimit, cfg.Server.ReviewRateWindow)).Post("/", h.CreateReview)
			r.Put("/{id}", h.UpdateReview)
			r.Delete("/{id}", h.DeleteReview)
		})
	})

	// menus and dish reviews
	router.With(h.RequireUser).Post("/menus", h.CreateMenuItem)
	router.Get("/dishreviews/{menuItemId}", h.GetDishReviews)
	router.With(h.RequireUser).Post("/dishreviews/{menuItemId}", h.CreateDishReview)

	if cfg.Server.Mode == "test" {
		router.Post("/resetTestDatabase", h.ResetTestDatabase)
	}

	return router
}

func SetupServer(cfg config.Config, h *handlers.Handler) *http.Server {
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: SetupRouter(cfg, h),
	}

	return server
}
