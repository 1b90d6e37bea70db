package internals

import (
	"context"

	"restaurant-booking-server/config"
	"restaurant-booking-server/logging"
	"restaurant-booking-server/model"
)

type PopularRestaurantSource interface {
	RestaurantSource
	GetPopularRestaurants(ctx context.Context, excludeIDs []int, limit int) ([]model.Restaurant, error)
}

type HistoryReader interface {
	GetViewHistory(ctx context.Context, userID int) ([]model.ViewedRestaurant, error)
}

// SuggestionComposer fills cfg.Size slots: up to cfg.MaxViewed recently viewed
// restaurants, then the most popular ones the user has not viewed.
type SuggestionComposer struct {
	history     HistoryReader
	restaurants PopularRestaurantSource
	cfg         config.SuggestionConfig
}

func NewSuggestionComposer(history HistoryReader, restaurants PopularRestaurantSource, cfg config.SuggestionConfig) *SuggestionComposer {
	return &SuggestionComposer{
		history:     history,
		restaurants: restaurants,
		cfg:         cfg,
	}
}

func (composer *SuggestionComposer) Suggest(ctx context.Context, userID int) []model.Restaurant {
	history, err := composer.history.GetViewHistory(ctx, userID)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int("user_id", userID).Msg("failed loading view history")
		history = nil
	}

	// every viewed restaurant is excluded from the popular block
	allViewed := recentRestaurantIDs(history, len(history))

	viewedBlock := []model.Restaurant{}
	if len(allViewed) > 0 {
		resolved, err := resolveRestaurants(ctx, composer.restaurants, allViewed)
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Int("user_id", userID).Msg("failed resolving viewed restaurants")
		} else {
			viewedBlock = resolved
		}
	}
	if len(viewedBlock) > composer.cfg.MaxViewed {
		viewedBlock = viewedBlock[:composer.cfg.MaxViewed]
	}

	numPopular := composer.cfg.Size - len(viewedBlock)
	popular, err := composer.restaurants.GetPopularRestaurants(ctx, allViewed, numPopular)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int("user_id", userID).Msg("failed loading popular restaurants")
		return viewedBlock
	}

	return append(viewedBlock, popular...)
}
