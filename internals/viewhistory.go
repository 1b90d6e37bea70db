package internals

import (
	"context"
	"sort"
	"strconv"
	"time"

	"restaurant-booking-server/config"
	"restaurant-booking-server/logging"
	"restaurant-booking-server/model"
)

type ViewHistoryStore interface {
	GetViewHistory(ctx context.Context, userID int) ([]model.ViewedRestaurant, error)
	RemoveViewedRestaurant(ctx context.Context, userID, restaurantID int) error
	PushViewedRestaurant(ctx context.Context, userID, restaurantID int, viewedAt time.Time) error
}

// ViewHistoryTracker keeps each user's viewed restaurants, most recent first,
// one entry per restaurant.
type ViewHistoryTracker struct {
	history     ViewHistoryStore
	restaurants RestaurantSource
	cfg         config.SuggestionConfig
	now         func() time.Time
}

func NewViewHistoryTracker(history ViewHistoryStore, restaurants RestaurantSource, cfg config.SuggestionConfig) *ViewHistoryTracker {
	return &ViewHistoryTracker{
		history:     history,
		restaurants: restaurants,
		cfg:         cfg,
		now:         time.Now,
	}
}

// RecordView moves restaurantID to the front of the user's history. Invalid
// ids and store errors are logged and otherwise ignored.
func (tracker *ViewHistoryTracker) RecordView(ctx context.Context, userID int, restaurantID string) {
	id, err := strconv.Atoi(restaurantID)
	if err != nil || id <= 0 {
		logging.Ctx(ctx).Warn().Str("restaurant_id", restaurantID).Msg("invalid restaurant id, view not recorded")
		return
	}

	// pull then push; concurrent views of the same user may race
	err = tracker.history.RemoveViewedRestaurant(ctx, userID, id)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("user_id", userID).Msg("failed removing viewed restaurant")
		return
	}
	err = tracker.history.PushViewedRestaurant(ctx, userID, id, tracker.now())
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("user_id", userID).Msg("failed recording viewed restaurant")
	}
}

// RecentlyViewed resolves up to limit history entries, most recent first.
// Restaurants that no longer exist are dropped; errors yield an empty list.
func (tracker *ViewHistoryTracker) RecentlyViewed(ctx context.Context, userID, limit int) []model.Restaurant {
	if limit <= 0 {
		limit = tracker.cfg.RecentlyViewedLimit
	}

	history, err := tracker.history.GetViewHistory(ctx, userID)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int("user_id", userID).Msg("failed loading view history")
		return []model.Restaurant{}
	}

	restaurantIDs := recentRestaurantIDs(history, limit)
	restaurants, err := resolveRestaurants(ctx, tracker.restaurants, restaurantIDs)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int("user_id", userID).Msg("failed resolving viewed restaurants")
		return []model.Restaurant{}
	}

	return restaurants
}

// recentRestaurantIDs sorts history by lastViewed descending and returns at
// most limit distinct restaurant ids.
func recentRestaurantIDs(history []model.ViewedRestaurant, limit int) []int {
	sorted := make([]model.ViewedRestaurant, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastViewed.After(sorted[j].LastViewed)
	})

	seen := make(map[int]bool, len(sorted))
	restaurantIDs := []int{}
	for _, entry := range sorted {
		if len(restaurantIDs) == limit {
			break
		}
		if seen[entry.RestaurantID] {
			continue
		}
		seen[entry.RestaurantID] = true
		restaurantIDs = append(restaurantIDs, entry.RestaurantID)
	}

	return restaurantIDs
}

// resolveRestaurants loads restaurantIDs keeping their order and dropping the
// missing ones.
func resolveRestaurants(ctx context.Context, source RestaurantSource, restaurantIDs []int) ([]model.Restaurant, error) {
	found, err := source.GetRestaurantsByIds(ctx, restaurantIDs)
	if err != nil {
		return nil, err
	}

	restaurants := make([]model.Restaurant, 0, len(restaurantIDs))
	for _, restaurantID := range restaurantIDs {
		if restaurant, ok := found[restaurantID]; ok {
			restaurants = append(restaurants, restaurant)
		}
	}

	return restaurants, nil
}
