package handlers

import (
	"net/http"
)

// GetRecommendations ranks restaurants by the sentiment of their reviews.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	recommendations, err := h.aggregator.Recommend(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error computing recommendations", err)
		return
	}

	writeJSON(w, r, http.StatusOK, "Recommendations", recommendations, nil)
}
