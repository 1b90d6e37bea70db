package model

import "time"

type User struct {
	UserID      int       `gorm:"column:id_user;primaryKey;autoIncrement" json:"user_id"`
	Username    string    `gorm:"column:username;type:text;not null;uniqueIndex" json:"username"`
	Name        string    `gorm:"column:name;type:text;not null" json:"name"`
	Email       string    `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	Phone       string    `gorm:"column:phone;type:text" json:"phone"`
	FirebaseUID string    `gorm:"column:firebase_uid;type:text;not null;uniqueIndex" json:"firebase_uid"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`

	ViewedRestaurants []ViewedRestaurant `gorm:"foreignKey:UserID" json:"viewed_restaurants,omitempty"`
}

func (User) TableName() string {
	return "user"
}

// ViewedRestaurant is one entry of a user's view history; a restaurant appears at
// most once per user.
type ViewedRestaurant struct {
	UserID       int       `gorm:"column:id_user;primaryKey" json:"user_id"`
	RestaurantID int       `gorm:"column:id_restaurant;primaryKey" json:"restaurant_id"`
	LastViewed   time.Time `gorm:"column:last_viewed;not null;index" json:"last_viewed"`
}

func (ViewedRestaurant) TableName() string {
	return "viewed_restaurant"
}
