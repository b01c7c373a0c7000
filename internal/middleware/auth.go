package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/meetzy/meetzy-backend/internal/models"
	"github.com/meetzy/meetzy-backend/internal/services"
	"github.com/meetzy/meetzy-backend/pkg/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const (
	userContextKey  contextKey = "currentUser"
	groupContextKey contextKey = "currentGroup"
)

func extractBearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}

// Protect authenticates the request via the Authorization bearer token and
// loads the user document into the request context.
func Protect(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				unauthorized(w, "Not authorized, no token")
				return
			}

			userIDHex, err := utils.ParseToken(token, jwtSecret)
			if err != nil {
				unauthorized(w, "Not authorized, token failed")
				return
			}
			userID, err := primitive.ObjectIDFromHex(userIDHex)
			if err != nil {
				unauthorized(w, "Not authorized, token failed")
				return
			}

			user, err := services.FindUserByID(r.Context(), userID)
			if err != nil {
				unauthorized(w, "Not authorized, user not found")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user placed in the context by
// Protect, or nil for unauthenticated requests.
func CurrentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(userContextKey).(*models.User)
	return u
}

// AdminOnly allows only platform admins through. Must run after Protect.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil || !user.IsAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"success":false,"message":"Admin access required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GroupAdminOnly loads the group from the "id" URL param and allows the
// request only when the actor is that group's admin. The loaded group is
// stored in the context so handlers don't fetch it twice.
func GroupAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			unauthorized(w, "Not authorized")
			return
		}

		groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"message":"Invalid group id"}`))
			return
		}

		group, err := services.FindGroupByID(r.Context(), groupID)
		if errors.Is(err, services.ErrNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"message":"Group not found"}`))
			return
		}
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success":false,"message":"Failed to load group"}`))
			return
		}

		if group.GroupAdmin != user.ID {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"success":false,"message":"Only the group admin can perform this action"}`))
			return
		}

		ctx := context.WithValue(r.Context(), groupContextKey, group)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentGroup returns the group loaded by GroupAdminOnly, or nil.
func CurrentGroup(r *http.Request) *models.Group {
	g, _ := r.Context().Value(groupContextKey).(*models.Group)
	return g
}
