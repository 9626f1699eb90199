// Package auth validates identity-provider JWTs at the HTTP boundary and
// converts their claims into a typed Actor. Raw claims never travel
// further into the system than this package.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hirecanvas/hirecanvas/internal/builder/models"
)

type contextKey string

const actorContextKey contextKey = "actor"

// Middleware extracts a Bearer token when one is present and attaches the
// validated Actor to the request context. Requests without an
// Authorization header pass through actorless: public reads are allowed
// and mutation handlers decide between 401 and 403 themselves. A present
// but invalid token is rejected outright.
func Middleware(next http.Handler, jwtSecret string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := extractTokenFromHeader(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		claims, err := validateToken(tokenString, jwtSecret)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		actor, err := actorFromClaims(claims)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext returns the validated actor attached by Middleware, or
// nil when the request carried no credentials.
func ActorFromContext(ctx context.Context) *models.Actor {
	actor, _ := ctx.Value(actorContextKey).(*models.Actor)
	return actor
}

// actorFromClaims builds the typed Actor from raw token claims. A missing
// role claim means a freshly provisioned account and defaults to
// candidate; a present but unrecognized role is rejected.
func actorFromClaims(claims jwt.MapClaims) (*models.Actor, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing subject")
	}

	role := models.RoleCandidate
	if raw, ok := claims["role"]; ok {
		s, _ := raw.(string)
		parsed, err := models.ParseRole(s)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	return &models.Actor{ID: sub, Role: role}, nil
}

func extractTokenFromHeader(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fmt.Errorf("invalid authorization format: missing Bearer prefix")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		return "", fmt.Errorf("invalid authorization format: empty token")
	}

	return tokenString, nil
}

// validateToken checks the token signature and returns parsed claims if valid.
func validateToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}
