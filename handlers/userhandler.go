package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"restaurant-booking-server/model"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
}

// CreateUser registers the owner of the bearer token.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request CreateUserRequest
	err := decodeAndValidate(r, &request)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Wrong data provided", err)
		return
	}

	firebaseUID := firebaseUIDFromContext(ctx)
	_, err = h.userDAO.GetUserByFirebaseUID(ctx, firebaseUID)
	if err == nil {
		writeError(w, r, http.StatusConflict, "User already registered", nil)
		return
	}

	user, err := h.userDAO.AddUser(ctx, model.User{
		Username:    request.Username,
		Name:        request.Name,
		Email:       request.Email,
		Phone:       request.Phone,
		FirebaseUID: firebaseUID,
	})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error creating user", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, "User created", user, nil)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "The provided id is not valid", err)
		return
	}

	user, err := h.userDAO.GetUserById(r.Context(), userID)
	if err != nil {
		writeDAOError(w, r, "User", err)
		return
	}

	writeJSON(w, r, http.StatusOK, "User", user, nil)
}
