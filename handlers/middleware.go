package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"restaurant-booking-server/db"
	"restaurant-booking-server/externals"
	"restaurant-booking-server/logging"
	"restaurant-booking-server/model"
)

type contextKey string

const (
	firebaseUIDKey contextKey = "firebase_uid"
	userKey        contextKey = "user"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags the request with an id and logs it once served.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = logging.NewRequestID()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		logging.Ctx(ctx).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	idToken := strings.TrimPrefix(authHeader, "Bearer ")
	return idToken, idToken != ""
}

// RequireToken rejects requests without a valid Firebase token.
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idToken, ok := bearerToken(r)
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "Missing or invalid auth header", nil)
			return
		}

		firebaseUID, err := externals.VerifyFirebaseToken(r.Context(), idToken)
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, "Unauthorized", err)
			return
		}

		ctx := context.WithValue(r.Context(), firebaseUIDKey, firebaseUID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects requests whose token does not belong to a registered user.
func (h *Handler) RequireUser(next http.Handler) http.Handler {
	return RequireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.userDAO.GetUserByFirebaseUID(r.Context(), firebaseUIDFromContext(r.Context()))
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, r, http.StatusUnauthorized, "Unknown user", err)
				return
			}
			writeError(w, r, http.StatusInternalServerError, "Error getting user", err)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}))
}

// OptionalUser attaches the user when a valid token is sent, and otherwise lets
// the request through anonymously.
func (h *Handler) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idToken, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		firebaseUID, err := externals.VerifyFirebaseToken(r.Context(), idToken)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("ignoring invalid token")
			next.ServeHTTP(w, r)
			return
		}
		user, err := h.userDAO.GetUserByFirebaseUID(r.Context(), firebaseUID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func firebaseUIDFromContext(ctx context.Context) string {
	firebaseUID, _ := ctx.Value(firebaseUIDKey).(string)
	return firebaseUID
}

func userFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
