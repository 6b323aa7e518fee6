package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/menuhq/pos-admin/internal/auth"
	"github.com/menuhq/pos-admin/internal/enum"
)

type contextKey string

const claimsKey contextKey = "claims"

// Authenticate requires a valid bearer access token and stores its claims on
// the request context.
func Authenticate(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, msg := bearerToken(r)
			if msg != "" {
				deny(w, http.StatusUnauthorized, msg)
				return
			}
			claims, err := auth.ValidateToken(jwtSecret, token)
			if err != nil {
				deny(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// bearerToken returns the token, or a client message when the header is
// absent or not a Bearer credential.
func bearerToken(r *http.Request) (string, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", "missing authorization header"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", "invalid authorization format"
	}
	return token, ""
}

// RequireOutlet confines non-owners to the outlet in their token.
func RequireOutlet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		switch {
		case claims == nil:
			deny(w, http.StatusUnauthorized, "not authenticated")
			return
		case claims.Role == enum.UserRoleOwner:
			next.ServeHTTP(w, r)
			return
		}

		raw := r.PathValue("oid")
		if raw == "" {
			deny(w, http.StatusBadRequest, "missing outlet ID")
			return
		}
		oid, err := uuid.Parse(raw)
		if err != nil {
			deny(w, http.StatusBadRequest, "invalid outlet ID")
			return
		}
		if claims.OutletID != oid {
			deny(w, http.StatusForbidden, "access denied for this outlet")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				deny(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if !allowed[claims.Role] {
				deny(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoleForWrites lets safe methods through and applies RequireRole to
// everything else.
func RequireRoleForWrites(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		guarded := RequireRole(roles...)(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				guarded.ServeHTTP(w, r)
			}
		})
	}
}

func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

func deny(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
