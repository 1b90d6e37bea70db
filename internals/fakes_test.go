package internals

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"restaurant-booking-server/model"
)

var errFake = errors.New("fake failure")

// fakeTranslator returns the text unchanged unless a translation is configured.
type fakeTranslator struct {
	mu           sync.Mutex
	translations map[string]string
	fail         bool
	calls        int
}

func (f *fakeTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return "", errFake
	}
	if translated, ok := f.translations[text]; ok {
		return translated, nil
	}
	return text, nil
}

// fakeScorer looks scores up by text; unknown text scores 0.
type fakeScorer struct {
	mu     sync.Mutex
	scores map[string]int
	failOn map[string]bool
	fail   bool
	calls  int
}

func (f *fakeScorer) Score(_ context.Context, text string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail || f.failOn[text] {
		return 0, errFake
	}
	return f.scores[text], nil
}

// fakeReviewStore filters like ReviewDAO.GetAuthorReviewsSince.
type fakeReviewStore struct {
	reviews []model.Review
	err     error
}

func (f *fakeReviewStore) GetAuthorReviewsSince(_ context.Context, userID, restaurantID int, sameRestaurant bool, since time.Time, limit int) ([]model.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	var matched []model.Review
	for _, review := range f.reviews {
		if review.UserID != userID || review.CreatedAt.Before(since) {
			continue
		}
		if (review.RestaurantID == restaurantID) != sameRestaurant {
			continue
		}
		matched = append(matched, review)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeReviewStore) GetActiveReviewsWithContent(_ context.Context) ([]model.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reviews, nil
}

type fakeRestaurantStore struct {
	restaurants map[int]model.Restaurant
	err         error
	popularErr  error
	excluded    []int
}

func newFakeRestaurantStore(restaurants ...model.Restaurant) *fakeRestaurantStore {
	store := &fakeRestaurantStore{restaurants: make(map[int]model.Restaurant)}
	for _, restaurant := range restaurants {
		store.restaurants[restaurant.RestaurantID] = restaurant
	}
	return store
}

func (f *fakeRestaurantStore) GetRestaurantsByIds(_ context.Context, restaurantIDs []int) (map[int]model.Restaurant, error) {
	if f.err != nil {
		return nil, f.err
	}
	found := make(map[int]model.Restaurant)
	for _, restaurantID := range restaurantIDs {
		if restaurant, ok := f.restaurants[restaurantID]; ok {
			found[restaurantID] = restaurant
		}
	}
	return found, nil
}

func (f *fakeRestaurantStore) GetPopularRestaurants(_ context.Context, excludeIDs []int, limit int) ([]model.Restaurant, error) {
	if f.popularErr != nil {
		return nil, f.popularErr
	}
	f.excluded = excludeIDs
	exclude := make(map[int]bool)
	for _, restaurantID := range excludeIDs {
		exclude[restaurantID] = true
	}
	var popular []model.Restaurant
	for _, restaurant := range f.restaurants {
		if !exclude[restaurant.RestaurantID] {
			popular = append(popular, restaurant)
		}
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Rating != popular[j].Rating {
			return popular[i].Rating > popular[j].Rating
		}
		if popular[i].BookingCount != popular[j].BookingCount {
			return popular[i].BookingCount > popular[j].BookingCount
		}
		return popular[i].RestaurantID < popular[j].RestaurantID
	})
	if len(popular) > limit {
		popular = popular[:limit]
	}
	return popular, nil
}

// fakeHistoryStore keeps one slice per user, most recent first.
type fakeHistoryStore struct {
	entries map[int][]model.ViewedRestaurant
	err     error
}

func newFakeHistoryStore() *fakeHistoryStore {
	return &fakeHistoryStore{entries: make(map[int][]model.ViewedRestaurant)}
}

func (f *fakeHistoryStore) GetViewHistory(_ context.Context, userID int) ([]model.ViewedRestaurant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[userID], nil
}

func (f *fakeHistoryStore) RemoveViewedRestaurant(_ context.Context, userID, restaurantID int) error {
	if f.err != nil {
		return f.err
	}
	kept := []model.ViewedRestaurant{}
	for _, entry := range f.entries[userID] {
		if entry.RestaurantID != restaurantID {
			kept = append(kept, entry)
		}
	}
	f.entries[userID] = kept
	return nil
}

func (f *fakeHistoryStore) PushViewedRestaurant(_ context.Context, userID, restaurantID int, viewedAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	entry := model.ViewedRestaurant{UserID: userID, RestaurantID: restaurantID, LastViewed: viewedAt}
	f.entries[userID] = append([]model.ViewedRestaurant{entry}, f.entries[userID]...)
	return nil
}

func restaurant(id int, rating float64, bookings int) model.Restaurant {
	return model.Restaurant{
		RestaurantID:  id,
		Name:          "restaurant",
		Rating:        rating,
		BookingCount:  bookings,
		AddressDetail: "1 Le Loi",
		District:      "District 1",
		Province:      "Ho Chi Minh",
	}
}
