package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"restaurant-booking-server/model"
)

type CreateDishReviewRequest struct {
	Content  string  `json:"content" validate:"max=2000"`
	Rating   float64 `json:"rating" validate:"gte=0,lte=5"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
}

func (h *Handler) CreateDishReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFromContext(ctx)

	menuItemID, err := parseID(chi.URLParam(r, "menuItemId"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Wrong menu item id", err)
		return
	}

	var request CreateDishReviewRequest
	err = decodeAndValidate(r, &request)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid data format", err)
		return
	}

	// check menu item
	_, err = h.dishReviewDAO.GetMenuItemById(ctx, menuItemID)
	if err != nil {
		writeDAOError(w, r, "Menu item", err)
		return
	}

	dishReview := model.DishReview{
		MenuItemID: menuItemID,
		UserID:     user.UserID,
		Content:    request.Content,
		ImageURL:   request.ImageURL,
		Rating:     request.Rating,
		Username:   user.Username,
	}
	err = h.dishReviewDAO.CreateDishReview(ctx, &dishReview)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error creating dish review", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, "Dish review created", dishReview, nil)
}

func (h *Handler) GetDishReviews(w http.ResponseWriter, r *http.Request) {
	menuItemID, err := parseID(chi.URLParam(r, "menuItemId"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Wrong menu item id", err)
		return
	}

	element, err := h.dishReviewDAO.GetDishReviews(r.Context(), menuItemID)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error getting dish reviews", err)
		return
	}

	writeJSON(w, r, http.StatusOK, "Dish reviews", element, nil)
}
