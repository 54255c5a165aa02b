package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"complaint-portal/pkg/response"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	AdminContextKey contextKey = "admin"

	RoleAdmin = "admin"
)

var defaultJWTSecret = []byte("SUPER_SECRET_KEY_CHANGE_ME")

// JWTSecret returns the token signing key, preferring JWT_SECRET from the
// environment.
func JWTSecret() []byte {
	if v := strings.TrimSpace(os.Getenv("JWT_SECRET")); v != "" {
		return []byte(v)
	}
	return defaultJWTSecret
}

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminAuthMiddleware rejects requests without a valid bearer token (401) or
// with a valid token that lacks the admin role (403).
func AdminAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, http.StatusUnauthorized, "Missing Authorization header", "")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			response.Error(w, http.StatusUnauthorized, "Invalid token format", "Format must be Bearer <token>")
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return JWTSecret(), nil
		})

		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid or expired token", err.Error())
			return
		}

		claims, ok := token.Claims.(*AdminClaims)
		if !ok || !token.Valid {
			response.Error(w, http.StatusUnauthorized, "Invalid token claims", "")
			return
		}

		if claims.Role != RoleAdmin {
			response.Error(w, http.StatusForbidden, "Forbidden", "Admin role required")
			return
		}

		ctx := context.WithValue(r.Context(), AdminContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}
