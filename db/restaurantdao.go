package db

import (
	"context"

	"gorm.io/gorm"

	"restaurant-booking-server/model"
)

type RestaurantDAO struct {
	db *gorm.DB
}

func NewRestaurantDAO(db *gorm.DB) *RestaurantDAO {
	return &RestaurantDAO{db: db}
}

func (restaurantDAO *RestaurantDAO) CreateRestaurant(ctx context.Context, restaurant *model.Restaurant) error {
	// takes a pointer, in order to update the param struct
	result := restaurantDAO.db.WithContext(ctx).Create(restaurant)
	return result.Error
}

func (restaurantDAO *RestaurantDAO) GetRestaurantById(ctx context.Context, restaurantID int) (model.Restaurant, error) {
	var restaurant model.Restaurant

	result := restaurantDAO.db.WithContext(ctx).First(&restaurant, restaurantID)
	if result.Error != nil {
		return model.Restaurant{}, notFound(result.Error)
	}

	return restaurant, nil
}

// GetRestaurantsByIds returns the restaurants that exist among restaurantIDs,
// keyed by id.
func (restaurantDAO *RestaurantDAO) GetRestaurantsByIds(ctx context.Context, restaurantIDs []int) (map[int]model.Restaurant, error) {
	restaurants := make(map[int]model.Restaurant, len(restaurantIDs))
	if len(restaurantIDs) == 0 {
		return restaurants, nil
	}

	var found []model.Restaurant
	result := restaurantDAO.db.WithContext(ctx).Where("id_restaurant IN ?", restaurantIDs).Find(&found)
	if result.Error != nil {
		return nil, result.Error
	}
	for _, restaurant := range found {
		restaurants[restaurant.RestaurantID] = restaurant
	}

	return restaurants, nil
}

// GetPopularRestaurants orders by rating, then booking count, both descending,
// skipping the excluded ids.
func (restaurantDAO *RestaurantDAO) GetPopularRestaurants(ctx context.Context, excludeIDs []int, limit int) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	if limit <= 0 {
		return restaurants, nil
	}

	query := restaurantDAO.db.WithContext(ctx)
	if len(excludeIDs) > 0 {
		query = query.Where("id_restaurant NOT IN ?", excludeIDs)
	}
	result := query.
		Order("rating desc, booking_count desc, id_restaurant asc").
		Limit(limit).
		Find(&restaurants)
	if result.Error != nil {
		return nil, result.Error
	}

	return restaurants, nil
}

// GetTopRatedRestaurants returns the limit best rated restaurants.
func (restaurantDAO *RestaurantDAO) GetTopRatedRestaurants(ctx context.Context, limit int) ([]model.Restaurant, error) {
	return restaurantDAO.GetPopularRestaurants(ctx, nil, limit)
}

// IncrementViewed bumps the public view counter.
func (restaurantDAO *RestaurantDAO) IncrementViewed(ctx context.Context, restaurantID int) error {
	result := restaurantDAO.db.WithContext(ctx).
		Model(&model.Restaurant{}).
		Where("id_restaurant = ?", restaurantID).
		UpdateColumn("viewed", gorm.Expr("viewed + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
