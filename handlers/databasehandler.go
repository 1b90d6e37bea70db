package handlers

import (
	"net/http"

	"restaurant-booking-server/db"
)

// ResetTestDatabase empties every table. Only mounted in test mode.
func (h *Handler) ResetTestDatabase(w http.ResponseWriter, r *http.Request) {
	err := db.ResetTestDatabase()
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error resetting test database", err)
		return
	}

	writeJSON(w, r, http.StatusOK, "Test database reset", nil, nil)
}
