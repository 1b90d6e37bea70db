package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"restaurant-booking-server/db"
	"restaurant-booking-server/internals"
	"restaurant-booking-server/metrics"
	"restaurant-booking-server/model"
)

const (
	defaultThreadPageSize = 10
	maxThreadPageSize     = 100
)

type CreateReviewRequest struct {
	RestaurantID int     `json:"restaurant_id" validate:"required,gt=0"`
	Content      string  `json:"content" validate:"max=5000"`
	Rating       float64 `json:"rating" validate:"gte=0,lte=5"`
	ImageURL     *string `json:"image_url" validate:"omitempty,url"`
	ImageID      *string `json:"image_id" validate:"omitempty,max=256"`
	ParentID     *int    `json:"parent_id" validate:"omitempty,gt=0"`
}

// UpdateReviewRequest carries the editable fields; nil means unchanged.
type UpdateReviewRequest struct {
	Content  *string `json:"content" validate:"omitempty,max=5000"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
	ImageID  *string `json:"image_id" validate:"omitempty,max=256"`
	ParentID *int    `json:"parent_id" validate:"omitempty,gt=0"`
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFromContext(ctx)

	var request CreateReviewRequest
	err := decodeAndValidate(r, &request)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid data format", err)
		return
	}

	// check restaurant
	_, err = h.restaurantDAO.GetRestaurantById(ctx, request.RestaurantID)
	if err != nil {
		writeDAOError(w, r, "Restaurant", err)
		return
	}

	// replies must stay inside the restaurant thread
	if request.ParentID != nil {
		parent, err := h.reviewDAO.GetReviewById(ctx, *request.ParentID)
		if err != nil {
			writeDAOError(w, r, "Parent review", err)
			return
		}
		if parent.RestaurantID != request.RestaurantID {
			writeError(w, r, http.StatusBadRequest, "Parent review belongs to another restaurant", nil)
			return
		}
	}

	verdict, err := h.engine.Evaluate(ctx, user.UserID, request.RestaurantID, request.Content, request.Rating)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error checking review", err)
		return
	}

	review := model.Review{
		RestaurantID: request.RestaurantID,
		UserID:       user.UserID,
		Content:      request.Content,
		ImageURL:     request.ImageURL,
		ImageID:      request.ImageID,
		ParentID:     request.ParentID,
		Rating:       request.Rating,
		Sentiment:    verdict.Sentiment,
		IsFlagged:    verdict.IsFlagged,
		FlagReason:   verdict.FlagReason,
	}
	err = h.reviewDAO.CreateReview(ctx, &review)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error creating review", err)
		return
	}

	metrics.ReviewsCreated.WithLabelValues(strconv.FormatBool(review.IsFlagged)).Inc()
	if review.IsFlagged {
		h.announceFlagged(review)
	}

	writeJSON(w, r, http.StatusCreated, "Review created", review, nil)
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFromContext(ctx)

	reviewID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Wrong review id", err)
		return
	}

	var request UpdateReviewRequest
	err = decodeAndValidate(r, &request)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid data format", err)
		return
	}

	review, err := h.reviewDAO.GetReviewById(ctx, reviewID)
	if err != nil {
		writeDAOError(w, r, "Review", err)
		return
	}

	// check author
	if review.UserID != user.UserID {
		writeError(w, r, http.StatusForbidden, "Review belongs to another user", nil)
		return
	}

	if request.ParentID != nil {
		if *request.ParentID == review.ReviewID {
			writeError(w, r, http.StatusBadRequest, "A review cannot reply to itself", nil)
			return
		}
		parent, err := h.reviewDAO.GetReviewById(ctx, *request.ParentID)
		if err != nil {
			writeDAOError(w, r, "Parent review", err)
			return
		}
		if parent.RestaurantID != review.RestaurantID {
			writeError(w, r, http.StatusBadRequest, "Parent review belongs to another restaurant", nil)
			return
		}
		review.ParentID = request.ParentID
	}
	if request.ImageURL != nil {
		review.ImageURL = request.ImageURL
	}
	if request.ImageID != nil {
		review.ImageID = request.ImageID
	}

	wasFlagged := review.IsFlagged
	if request.Content != nil && *request.Content != review.Content {
		review.Content = *request.Content
		h.engine.ReassessEdit(ctx, &review)
	}

	err = h.reviewDAO.UpdateReview(ctx, &review)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error updating review", err)
		return
	}

	if review.IsFlagged && !wasFlagged {
		h.announceFlagged(review)
	}

	writeJSON(w, r, http.StatusOK, "Review updated", review, nil)
}

// DeleteReview removes a review for good, or hides it when soft=true.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFromContext(ctx)

	reviewID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Wrong review id", err)
		return
	}

	review, err := h.reviewDAO.GetReviewById(ctx, reviewID)
	if err != nil {
		writeDAOError(w, r, "Review", err)
		return
	}
	if review.UserID != user.UserID {
		writeError(w, r, http.StatusForbidden, "Review belongs to another user", nil)
		return
	}

	soft, _ := strconv.ParseBool(r.URL.Query().Get("soft"))
	if soft {
		err = h.reviewDAO.SoftDeleteReview(ctx, reviewID)
	} else {
		err = h.reviewDAO.DeleteReview(ctx, reviewID)
	}
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "Review not found", err)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "Error deleting review", err)
		return
	}

	writeJSON(w, r, http.StatusOK, "Review deleted", nil, nil)
}

// GetRestaurantReviews lists a page of root reviews, each with its reply tree.
// Flagged reviews never appear.
func (h *Handler) GetRestaurantReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	restaurantID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Wrong restaurant id", err)
		return
	}
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", defaultThreadPageSize)
	if limit > maxThreadPageSize {
		limit = maxThreadPageSize
	}

	roots, numRoots, err := h.reviewDAO.GetRootReviewsByRestaurant(ctx, restaurantID, page, limit)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error getting reviews", err)
		return
	}
	all, err := h.reviewDAO.GetReviewsByRestaurant(ctx, restaurantID)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error getting reviews", err)
		return
	}

	// resolve usernames in one query
	userIDs := make([]int, 0, len(all))
	for _, review := range all {
		userIDs = append(userIDs, review.UserID)
	}
	usernames, err := h.userDAO.GetUsernames(ctx, userIDs)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error getting usernames", err)
		return
	}

	comments := internals.BuildReviewThreads(roots, all, func(userID int) string {
		return db.UsernameOrUnknown(usernames, userID)
	})

	pagination := model.Pagination{
		TotalComments: numRoots,
		TotalPages:    (numRoots + limit - 1) / limit,
		CurrentPage:   page,
		PerPage:       limit,
	}

	writeJSON(w, r, http.StatusOK, "Reviews", comments, pagination)
}

func (h *Handler) announceFlagged(review model.Review) {
	reason := ""
	if review.FlagReason != nil {
		reason = *review.FlagReason
	}
	metrics.ReviewsFlagged.WithLabelValues(reason).Inc()

	if h.hub != nil {
		h.hub.ReviewFlagged(review)
	}
}
