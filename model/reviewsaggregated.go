package model

// DishReviewsAggregated is a struct corresponding to a DB table, that contains
// aggregate data about the reviews of a menu item: it avoids scanning every
// review when the average rating is requested
type DishReviewsAggregated struct {
	MenuItemID    int     `gorm:"column:id_menu_item;primaryKey"`
	SumRating     float64 `gorm:"column:sum_rating;type:numeric;not null"`
	NumberRatings int     `gorm:"column:number_ratings;type:integer;not null"`
}

func (DishReviewsAggregated) TableName() string {
	return "dish_reviews_aggregated"
}
