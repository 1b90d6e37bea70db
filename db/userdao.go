package db

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"restaurant-booking-server/model"
)

// UnknownUsername is shown for authors that no longer exist.
const UnknownUsername = "Unknown"

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

func (userDAO *UserDAO) GetUserById(ctx context.Context, id int) (model.User, error) {
	var user model.User

	result := userDAO.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		return model.User{}, notFound(result.Error)
	}

	return user, nil
}

func (userDAO *UserDAO) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (model.User, error) {
	var user model.User

	result := userDAO.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user)
	if result.Error != nil {
		return model.User{}, notFound(result.Error)
	}

	return user, nil
}

func (userDAO *UserDAO) AddUser(ctx context.Context, user model.User) (model.User, error) {
	result := userDAO.db.WithContext(ctx).Create(&user)
	return user, result.Error
}

// GetUsernames maps each existing user id to its username.
func (userDAO *UserDAO) GetUsernames(ctx context.Context, userIDs []int) (map[int]string, error) {
	usernames := make(map[int]string, len(userIDs))
	if len(userIDs) == 0 {
		return usernames, nil
	}

	var users []model.User
	result := userDAO.db.WithContext(ctx).
		Select("id_user", "username").
		Where("id_user IN ?", userIDs).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	for _, user := range users {
		usernames[user.UserID] = user.Username
	}

	return usernames, nil
}

// UsernameOrUnknown looks userID up in usernames.
func UsernameOrUnknown(usernames map[int]string, userID int) string {
	if username, ok := usernames[userID]; ok && username != "" {
		return username
	}
	return UnknownUsername
}

// GetViewHistory returns the view history of a user, most recent first.
func (userDAO *UserDAO) GetViewHistory(ctx context.Context, userID int) ([]model.ViewedRestaurant, error) {
	var viewed []model.ViewedRestaurant

	result := userDAO.db.WithContext(ctx).
		Where("id_user = ?", userID).
		Order("last_viewed desc, id_restaurant desc").
		Find(&viewed)
	if result.Error != nil {
		return nil, result.Error
	}

	return viewed, nil
}

func (userDAO *UserDAO) RemoveViewedRestaurant(ctx context.Context, userID, restaurantID int) error {
	result := userDAO.db.WithContext(ctx).
		Where("id_user = ? AND id_restaurant = ?", userID, restaurantID).
		Delete(&model.ViewedRestaurant{})
	return result.Error
}

// PushViewedRestaurant puts restaurantID at the front of the history, replacing
// any entry already there for the same restaurant.
func (userDAO *UserDAO) PushViewedRestaurant(ctx context.Context, userID, restaurantID int, viewedAt time.Time) error {
	entry := model.ViewedRestaurant{
		UserID:       userID,
		RestaurantID: restaurantID,
		LastViewed:   viewedAt.UTC(),
	}
	result := userDAO.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id_user"}, {Name: "id_restaurant"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_viewed"}),
		}).
		Create(&entry)
	return result.Error
}
