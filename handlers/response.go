package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"restaurant-booking-server/db"
	"restaurant-booking-server/logging"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Response is the envelope of every JSON reply.
type Response struct {
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Info       interface{} `json:"info,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, message string, data, info interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(Response{
		StatusCode: status,
		Message:    message,
		Data:       data,
		Info:       info,
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Error encoding JSON")
	}
}

// writeError logs err and replies with message. Server errors never leak err.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	event := logging.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = logging.Ctx(r.Context()).Error()
	}
	event.Err(err).Int("status", status).Msg(message)

	writeJSON(w, r, status, message, nil, nil)
}

func writeLogOnly(r *http.Request, message string, err error) {
	logging.Ctx(r.Context()).Warn().Err(err).Msg(message)
}

// writeDAOError maps db.ErrNotFound to 404, anything else to 500.
func writeDAOError(w http.ResponseWriter, r *http.Request, what string, err error) {
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, what+" not found", err)
		return
	}
	writeError(w, r, http.StatusInternalServerError, "Error getting "+what, err)
}

// decodeAndValidate reads a JSON body into dst and runs the validator on it.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	defer func() {
		err := r.Body.Close()
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Error closing request body")
		}
	}()

	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		return err
	}

	return validate.Struct(dst)
}

// parseID parses a positive integer identifier.
func parseID(value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}

// queryInt reads a positive integer query parameter, def when absent or bad.
func queryInt(r *http.Request, name string, def int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || value <= 0 {
		return def
	}
	return value
}
