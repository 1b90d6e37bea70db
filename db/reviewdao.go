package db

import (
	"context"
	"time"

	"gorm.io/gorm"

	"restaurant-booking-server/model"
)

type ReviewDAO struct {
	db *gorm.DB
}

func NewReviewDAO(db *gorm.DB) *ReviewDAO {
	return &ReviewDAO{db: db}
}

func (reviewDAO *ReviewDAO) CreateReview(ctx context.Context, review *model.Review) error {
	// takes a pointer, in order to update the param struct
	result := reviewDAO.db.WithContext(ctx).Create(review)
	return result.Error
}

func (reviewDAO *ReviewDAO) GetReviewById(ctx context.Context, reviewID int) (model.Review, error) {
	var review model.Review

	result := reviewDAO.db.WithContext(ctx).First(&review, reviewID)
	if result.Error != nil {
		return model.Review{}, notFound(result.Error)
	}

	return review, nil
}

func (reviewDAO *ReviewDAO) UpdateReview(ctx context.Context, review *model.Review) error {
	result := reviewDAO.db.WithContext(ctx).Save(review)
	return result.Error
}

// DeleteReview removes the row for good.
func (reviewDAO *ReviewDAO) DeleteReview(ctx context.Context, reviewID int) error {
	result := reviewDAO.db.WithContext(ctx).Unscoped().Delete(&model.Review{}, reviewID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// SoftDeleteReview sets deleted_at, which hides the review from every active query.
func (reviewDAO *ReviewDAO) SoftDeleteReview(ctx context.Context, reviewID int) error {
	result := reviewDAO.db.WithContext(ctx).Delete(&model.Review{}, reviewID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetAuthorReviewsSince returns the reviews written by userID since the given
// instant, newest first, either at restaurantID (sameRestaurant) or at any other
// restaurant. limit <= 0 means no limit.
func (reviewDAO *ReviewDAO) GetAuthorReviewsSince(ctx context.Context, userID, restaurantID int, sameRestaurant bool, since time.Time, limit int) ([]model.Review, error) {
	var reviews []model.Review

	query := reviewDAO.db.WithContext(ctx).Where("id_user = ? AND created_at >= ?", userID, since.UTC())
	if sameRestaurant {
		query = query.Where("id_restaurant = ?", restaurantID)
	} else {
		query = query.Where("id_restaurant <> ?", restaurantID)
	}
	query = query.Order("created_at desc, id_review desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	result := query.Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}

// GetActiveReviewsWithContent returns every non-deleted, non-flagged review
// that carries text.
func (reviewDAO *ReviewDAO) GetActiveReviewsWithContent(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review

	result := reviewDAO.db.WithContext(ctx).
		Where("content <> '' AND is_flagged = ?", false).
		Order("id_review asc").
		Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}

// GetRootReviewsByRestaurant returns one page of unflagged root reviews, newest
// first, and the total number of unflagged root reviews.
func (reviewDAO *ReviewDAO) GetRootReviewsByRestaurant(ctx context.Context, restaurantID, page, limit int) ([]model.Review, int, error) {
	var reviews []model.Review

	base := reviewDAO.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id_restaurant = ? AND id_parent IS NULL AND is_flagged = ?", restaurantID, false)

	// get number of root reviews
	var numReviews int64
	result := base.Session(&gorm.Session{}).Count(&numReviews)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	result = base.Session(&gorm.Session{}).
		Order("created_at desc, id_review desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return reviews, int(numReviews), nil
}

// GetReviewsByRestaurant returns all unflagged reviews of a restaurant, replies
// included.
func (reviewDAO *ReviewDAO) GetReviewsByRestaurant(ctx context.Context, restaurantID int) ([]model.Review, error) {
	var reviews []model.Review

	result := reviewDAO.db.WithContext(ctx).
		Where("id_restaurant = ? AND is_flagged = ?", restaurantID, false).
		Order("created_at asc, id_review asc").
		Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}
