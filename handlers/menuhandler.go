package handlers

import (
	"net/http"

	"restaurant-booking-server/model"
)

type CreateMenuItemRequest struct {
	RestaurantID int     `json:"restaurant_id" validate:"required,gt=0"`
	Name         string  `json:"name" validate:"required,max=200"`
	Description  string  `json:"description" validate:"max=2000"`
	Price        float64 `json:"price" validate:"gte=0"`
	ImageURL     string  `json:"image_url" validate:"omitempty,url"`
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request CreateMenuItemRequest
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

	menuItem := model.MenuItem{
		RestaurantID: request.RestaurantID,
		Name:         request.Name,
		Description:  request.Description,
		Price:        request.Price,
		ImageURL:     request.ImageURL,
	}
	err = h.dishReviewDAO.CreateMenuItem(ctx, &menuItem)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error creating menu item", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, "Menu item created", menuItem, nil)
}
