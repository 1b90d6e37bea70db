package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"restaurant-booking-server/model"
)

const defaultTopRestaurants = 5

type CreateRestaurantRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Province      string  `json:"province" validate:"required"`
	ProvinceCode  *string `json:"province_code"`
	District      string  `json:"district" validate:"required"`
	DistrictCode  *string `json:"district_code"`
	AddressDetail string  `json:"address_detail" validate:"required"`
	Type          string  `json:"type" validate:"required"`
	OpenTime      string  `json:"open_time" validate:"required"`
	CloseTime     string  `json:"close_time" validate:"required"`
	Description   string  `json:"description"`
	Rating        float64 `json:"rating" validate:"gte=0,lte=5"`
	ImageURL      string  `json:"image_url" validate:"omitempty,url"`
	PricePerTable float64 `json:"price_per_table" validate:"gte=0"`
	Latitude      float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude     float64 `json:"longitude" validate:"gte=-180,lte=180"`
	BookingCount  int     `json:"booking_count" validate:"gte=0"`
}

func (h *Handler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var request CreateRestaurantRequest
	err := decodeAndValidate(r, &request)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid data format", err)
		return
	}

	restaurant := model.Restaurant{
		Name:          request.Name,
		Province:      request.Province,
		ProvinceCode:  request.ProvinceCode,
		District:      request.District,
		DistrictCode:  request.DistrictCode,
		AddressDetail: request.AddressDetail,
		Type:          request.Type,
		OpenTime:      request.OpenTime,
		CloseTime:     request.CloseTime,
		Description:   request.Description,
		Rating:        request.Rating,
		ImageURL:      request.ImageURL,
		PricePerTable: request.PricePerTable,
		Latitude:      request.Latitude,
		Longitude:     request.Longitude,
		BookingCount:  request.BookingCount,
	}
	err = h.restaurantDAO.CreateRestaurant(r.Context(), &restaurant)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error creating restaurant", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, "Restaurant created", restaurant, nil)
}

// GetRestaurant returns a restaurant. For a signed in user the view is
// recorded; failures there only get logged.
func (h *Handler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	idStr := chi.URLParam(r, "id")
	restaurantID, err := parseID(idStr)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Wrong restaurant id", err)
		return
	}

	restaurant, err := h.restaurantDAO.GetRestaurantById(ctx, restaurantID)
	if err != nil {
		writeDAOError(w, r, "Restaurant", err)
		return
	}

	if user, ok := userFromContext(ctx); ok {
		h.tracker.RecordView(ctx, user.UserID, idStr)

		err = h.restaurantDAO.IncrementViewed(ctx, restaurantID)
		if err != nil {
			writeLogOnly(r, "Error incrementing viewed counter", err)
		} else {
			restaurant.Viewed++
		}
	}

	writeJSON(w, r, http.StatusOK, "Restaurant", restaurant, nil)
}

func (h *Handler) GetTopRestaurants(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultTopRestaurants)

	restaurants, err := h.restaurantDAO.GetTopRatedRestaurants(r.Context(), limit)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error getting restaurants", err)
		return
	}

	writeJSON(w, r, http.StatusOK, "Top restaurants", restaurants, nil)
}

func (h *Handler) GetSuggestedRestaurants(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	restaurants := h.composer.Suggest(r.Context(), user.UserID)

	writeJSON(w, r, http.StatusOK, "Suggested restaurants", restaurants, nil)
}

func (h *Handler) GetRecentlyViewedRestaurants(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	limit := queryInt(r, "limit", h.cfg.Suggestion.RecentlyViewedLimit)

	restaurants := h.tracker.RecentlyViewed(r.Context(), user.UserID, limit)

	writeJSON(w, r, http.StatusOK, "Recently viewed restaurants", restaurants, nil)
}
