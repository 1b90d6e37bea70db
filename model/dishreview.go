package model

import "time"

type MenuItem struct {
	MenuItemID   int       `gorm:"column:id_menu_item;primaryKey;autoIncrement" json:"menu_item_id"`
	RestaurantID int       `gorm:"column:id_restaurant;type:integer;not null;index" json:"restaurant_id"`
	Name         string    `gorm:"column:name;type:text;not null" json:"name"`
	Description  string    `gorm:"column:description;type:text" json:"description"`
	Price        float64   `gorm:"column:price;type:numeric;not null" json:"price"`
	ImageURL     string    `gorm:"column:image_url;type:text" json:"image_url"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (MenuItem) TableName() string {
	return "menu_item"
}

type DishReview struct {
	DishReviewID int       `gorm:"column:id_dish_review;primaryKey;autoIncrement" json:"dish_review_id"`
	MenuItemID   int       `gorm:"column:id_menu_item;type:integer;not null;index" json:"menu_item_id"`
	UserID       int       `gorm:"column:id_user;type:integer;not null" json:"user_id"`
	Content      string    `gorm:"column:content;type:text" json:"content"`
	ImageURL     *string   `gorm:"column:image_url;type:text" json:"image_url"`
	Rating       float64   `gorm:"column:rating;type:numeric;not null;default:0" json:"rating"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
	Username     string    `gorm:"-" json:"username"`
}

func (DishReview) TableName() string {
	return "dish_review"
}

// DishReviewElement is the list of reviews of a dish sent to the client
type DishReviewElement struct {
	Reviews       []DishReview `json:"reviews"`
	AverageRating float64      `json:"average_rating"`
	NumReviews    int          `json:"num_reviews"`
}
