package handlers

import (
	"gorm.io/gorm"

	"restaurant-booking-server/config"
	"restaurant-booking-server/db"
	"restaurant-booking-server/internals"
	"restaurant-booking-server/ws"
)

// Dependencies is everything the HTTP layer is built from.
type Dependencies struct {
	DB         *gorm.DB
	Translator internals.Translator
	Scorer     internals.SentimentScorer
	Hub        *ws.Hub
	Config     config.Config
}

type Handler struct {
	reviewDAO     *db.ReviewDAO
	restaurantDAO *db.RestaurantDAO
	userDAO       *db.UserDAO
	dishReviewDAO *db.DishReviewDAO

	engine     *internals.IntegrityEngine
	aggregator *internals.RecommendationAggregator
	composer   *internals.SuggestionComposer
	tracker    *internals.ViewHistoryTracker

	hub *ws.Hub
	cfg config.Config
}

func NewHandler(deps Dependencies) *Handler {
	reviewDAO := db.NewReviewDAO(deps.DB)
	restaurantDAO := db.NewRestaurantDAO(deps.DB)
	userDAO := db.NewUserDAO(deps.DB)

	cfg := deps.Config
	return &Handler{
		reviewDAO:     reviewDAO,
		restaurantDAO: restaurantDAO,
		userDAO:       userDAO,
		dishReviewDAO: db.NewDishReviewDAO(deps.DB),

		engine:     internals.NewIntegrityEngine(deps.Translator, deps.Scorer, reviewDAO, cfg.Integrity, cfg.Translation.PivotLang),
		aggregator: internals.NewRecommendationAggregator(deps.Translator, deps.Scorer, reviewDAO, restaurantDAO, cfg.Recommendation, cfg.Translation),
		composer:   internals.NewSuggestionComposer(userDAO, restaurantDAO, cfg.Suggestion),
		tracker:    internals.NewViewHistoryTracker(userDAO, restaurantDAO, cfg.Suggestion),

		hub: deps.Hub,
		cfg: cfg,
	}
}
