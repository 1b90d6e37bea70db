package model

// SentimentCount accumulates review polarity for one restaurant. Total also
// counts neutral reviews.
type SentimentCount struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Total    int `json:"total"`
}

type RestaurantRecommendation struct {
	RestaurantID          int     `json:"restaurant_id"`
	TotalReviews          int     `json:"total_reviews"`
	PositiveReviews       int     `json:"positive_reviews"`
	NegativeReviews       int     `json:"negative_reviews"`
	PositiveRate          float64 `json:"positive_rate"`
	NegativeRate          float64 `json:"negative_rate"`
	PositiveNegativeRatio float64 `json:"positive_negative_ratio"`

	// restaurant snapshot
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Type          string  `json:"type"`
	Rating        float64 `json:"rating"`
	ImageURL      string  `json:"image_url"`
	Description   string  `json:"description"`
	OpenTime      string  `json:"open_time"`
	CloseTime     string  `json:"close_time"`
	PricePerTable float64 `json:"price_per_table"`
}
