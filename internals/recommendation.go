package internals

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"restaurant-booking-server/config"
	"restaurant-booking-server/logging"
	"restaurant-booking-server/metrics"
	"restaurant-booking-server/model"
)

type ReviewSource interface {
	GetActiveReviewsWithContent(ctx context.Context) ([]model.Review, error)
}

type RestaurantSource interface {
	GetRestaurantsByIds(ctx context.Context, restaurantIDs []int) (map[int]model.Restaurant, error)
}

type RecommendationAggregator struct {
	translator  Translator
	scorer      SentimentScorer
	reviews     ReviewSource
	restaurants RestaurantSource
	cfg         config.RecommendationConfig
	sourceLang  string
	pivotLang   string
}

func NewRecommendationAggregator(translator Translator, scorer SentimentScorer, reviews ReviewSource, restaurants RestaurantSource, cfg config.RecommendationConfig, translationCfg config.TranslationConfig) *RecommendationAggregator {
	return &RecommendationAggregator{
		translator:  translator,
		scorer:      scorer,
		reviews:     reviews,
		restaurants: restaurants,
		cfg:         cfg,
		sourceLang:  translationCfg.SourceLang,
		pivotLang:   translationCfg.PivotLang,
	}
}

// Recommend ranks restaurants by the sentiment of their reviews. Reviews that
// cannot be scored are skipped; failing to load reviews or restaurants is
// returned.
func (aggregator *RecommendationAggregator) Recommend(ctx context.Context) ([]model.RestaurantRecommendation, error) {
	start := time.Now()
	defer func() {
		metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	}()

	reviews, err := aggregator.reviews.GetActiveReviewsWithContent(ctx)
	if err != nil {
		return nil, err
	}

	counts := aggregator.buildSentimentMap(ctx, reviews)

	restaurantIDs := make([]int, 0, len(counts))
	for restaurantID := range counts {
		restaurantIDs = append(restaurantIDs, restaurantID)
	}
	restaurants, err := aggregator.restaurants.GetRestaurantsByIds(ctx, restaurantIDs)
	if err != nil {
		return nil, err
	}

	return RankRestaurants(counts, restaurants, aggregator.cfg.MinRating), nil
}

// buildSentimentMap scores every review with at most cfg.Concurrency calls in
// flight.
func (aggregator *RecommendationAggregator) buildSentimentMap(ctx context.Context, reviews []model.Review) map[int]model.SentimentCount {
	counts := make(map[int]model.SentimentCount)
	var mutex sync.Mutex

	group := new(errgroup.Group)
	limit := aggregator.cfg.Concurrency
	if limit <= 0 {
		limit = 1
	}
	group.SetLimit(limit)

	for _, review := range reviews {
		// blank content carries no sentiment
		if strings.TrimSpace(review.Content) == "" {
			continue
		}
		review := review
		group.Go(func() error {
			score, err := aggregator.scoreReview(ctx, review.Content)
			if err != nil {
				logging.Ctx(ctx).Warn().Err(err).Int("review_id", review.ReviewID).Msg("skipping review in aggregation")
				return nil
			}

			mutex.Lock()
			defer mutex.Unlock()
			count := counts[review.RestaurantID]
			switch {
			case score > 0:
				count.Positive++
			case score < 0:
				count.Negative++
			}
			count.Total++
			counts[review.RestaurantID] = count
			return nil
		})
	}
	// goroutines never return an error
	_ = group.Wait()

	return counts
}

func (aggregator *RecommendationAggregator) scoreReview(ctx context.Context, content string) (int, error) {
	translated, err := aggregator.translator.Translate(ctx, content, aggregator.pivotLang, aggregator.sourceLang)
	if err != nil {
		metrics.AdapterFailures.WithLabelValues("translation").Inc()
		return 0, err
	}

	score, err := aggregator.scorer.Score(ctx, translated)
	if err != nil {
		metrics.AdapterFailures.WithLabelValues("sentiment").Inc()
		return 0, err
	}

	return score, nil
}

// RankRestaurants applies the quality gate and keeps restaurants with more
// positive than negative reviews, best positive/negative ratio first.
func RankRestaurants(counts map[int]model.SentimentCount, restaurants map[int]model.Restaurant, minRating float64) []model.RestaurantRecommendation {
	restaurantIDs := make([]int, 0, len(counts))
	for restaurantID := range counts {
		restaurantIDs = append(restaurantIDs, restaurantID)
	}
	// fixed input order, so equal ratios keep a deterministic order
	sort.Ints(restaurantIDs)

	recommendations := []model.RestaurantRecommendation{}
	for _, restaurantID := range restaurantIDs {
		count := counts[restaurantID]
		if count.Total == 0 {
			continue
		}
		restaurant, ok := restaurants[restaurantID]
		if !ok || restaurant.Rating < minRating {
			continue
		}

		positiveRate := float64(count.Positive) / float64(count.Total)
		negativeRate := float64(count.Negative) / float64(count.Total)
		if positiveRate <= negativeRate {
			continue
		}
		ratio := positiveRate
		if negativeRate != 0 {
			ratio = positiveRate / negativeRate
		}

		recommendations = append(recommendations, model.RestaurantRecommendation{
			RestaurantID:          restaurantID,
			TotalReviews:          count.Total,
			PositiveReviews:       count.Positive,
			NegativeReviews:       count.Negative,
			PositiveRate:          positiveRate,
			NegativeRate:          negativeRate,
			PositiveNegativeRatio: ratio,
			Name:                  restaurant.Name,
			Address:               restaurant.Address(),
			Type:                  restaurant.Type,
			Rating:                restaurant.Rating,
			ImageURL:              restaurant.ImageURL,
			Description:           restaurant.Description,
			OpenTime:              restaurant.OpenTime,
			CloseTime:             restaurant.CloseTime,
			PricePerTable:         restaurant.PricePerTable,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].PositiveNegativeRatio > recommendations[j].PositiveNegativeRatio
	})

	return recommendations
}
