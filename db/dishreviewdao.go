package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"restaurant-booking-server/model"
)

type DishReviewDAO struct {
	db *gorm.DB
}

func NewDishReviewDAO(db *gorm.DB) *DishReviewDAO {
	return &DishReviewDAO{db: db}
}

func (dishReviewDAO *DishReviewDAO) CreateMenuItem(ctx context.Context, menuItem *model.MenuItem) error {
	result := dishReviewDAO.db.WithContext(ctx).Create(menuItem)
	return result.Error
}

func (dishReviewDAO *DishReviewDAO) GetMenuItemById(ctx context.Context, menuItemID int) (model.MenuItem, error) {
	var menuItem model.MenuItem

	result := dishReviewDAO.db.WithContext(ctx).First(&menuItem, menuItemID)
	if result.Error != nil {
		return model.MenuItem{}, notFound(result.Error)
	}

	return menuItem, nil
}

// CreateDishReview stores the review and updates the aggregate row of its menu
// item in the same transaction.
func (dishReviewDAO *DishReviewDAO) CreateDishReview(ctx context.Context, dishReview *model.DishReview) error {
	// create transaction
	transaction := dishReviewDAO.db.WithContext(ctx).Begin()
	if transaction.Error != nil {
		return transaction.Error
	}
	// rollback handled manually

	// save review
	result := transaction.Create(dishReview)
	if result.Error != nil {
		transaction.Rollback()
		return result.Error
	}

	// get aggregated data
	var aggregated model.DishReviewsAggregated
	result = transaction.First(&aggregated, dishReview.MenuItemID)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			transaction.Rollback()
			return result.Error
		}
		// first review of this dish
		aggregated = model.DishReviewsAggregated{
			MenuItemID:    dishReview.MenuItemID,
			SumRating:     dishReview.Rating,
			NumberRatings: 1,
		}
	} else {
		aggregated.SumRating += dishReview.Rating
		aggregated.NumberRatings++
	}

	result = transaction.Save(&aggregated)
	if result.Error != nil {
		transaction.Rollback()
		return result.Error
	}

	// commit
	return transaction.Commit().Error
}

// GetDishReviews lists the reviews of a dish, newest first, with the author
// usernames and the average rating.
func (dishReviewDAO *DishReviewDAO) GetDishReviews(ctx context.Context, menuItemID int) (model.DishReviewElement, error) {
	reviews := []model.DishReview{}

	result := dishReviewDAO.db.WithContext(ctx).
		Where("id_menu_item = ?", menuItemID).
		Order("created_at desc, id_dish_review desc").
		Find(&reviews)
	if result.Error != nil {
		return model.DishReviewElement{}, result.Error
	}

	// inject usernames
	userIDs := make([]int, 0, len(reviews))
	for _, review := range reviews {
		userIDs = append(userIDs, review.UserID)
	}
	usernames, err := NewUserDAO(dishReviewDAO.db).GetUsernames(ctx, userIDs)
	if err != nil {
		return model.DishReviewElement{}, err
	}
	for i := range reviews {
		reviews[i].Username = UsernameOrUnknown(usernames, reviews[i].UserID)
	}

	average, numReviews, err := dishReviewDAO.computeAverage(ctx, menuItemID)
	if err != nil {
		return model.DishReviewElement{}, err
	}

	return model.DishReviewElement{
		Reviews:       reviews,
		AverageRating: average,
		NumReviews:    numReviews,
	}, nil
}

func (dishReviewDAO *DishReviewDAO) computeAverage(ctx context.Context, menuItemID int) (float64, int, error) {
	var aggregated model.DishReviewsAggregated

	result := dishReviewDAO.db.WithContext(ctx).First(&aggregated, menuItemID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, 0, nil
		}
		return 0, 0, result.Error
	}

	if aggregated.NumberRatings == 0 {
		return 0, 0, nil
	}

	return aggregated.SumRating / float64(aggregated.NumberRatings), aggregated.NumberRatings, nil
}
