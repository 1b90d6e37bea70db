package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
)

const (
	FlagReasonConflict       = "Conflict sentiment"
	FlagReasonSpamSameVenue  = "Similar content in short time at same restaurant"
	FlagReasonSpamCrossVenue = "Similar content across restaurants"
)

type Review struct {
	ReviewID     int            `gorm:"column:id_review;primaryKey;autoIncrement" json:"review_id"`
	RestaurantID int            `gorm:"column:id_restaurant;type:integer;not null;index" json:"restaurant_id"`
	UserID       int            `gorm:"column:id_user;type:integer;not null;index" json:"user_id"`
	Content      string         `gorm:"column:content;type:text;not null;default:''" json:"content"`
	ImageURL     *string        `gorm:"column:image_url;type:text" json:"image_url"`
	ImageID      *string        `gorm:"column:image_id;type:text" json:"image_id"`
	ParentID     *int           `gorm:"column:id_parent;type:integer;index" json:"parent_id"` // nil for root reviews
	Rating       float64        `gorm:"column:rating;type:numeric;not null;default:0" json:"rating"`
	Sentiment    string         `gorm:"column:sentiment;type:text;not null;default:'positive'" json:"sentiment"`
	IsFlagged    bool           `gorm:"column:is_flagged;not null;default:false" json:"is_flagged"`
	FlagReason   *string        `gorm:"column:flag_reason;type:text" json:"flag_reason"`
	CreatedAt    time.Time      `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Review) TableName() string {
	return "review"
}
