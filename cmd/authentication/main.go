// This is a **mock identity provider**, standing in for the hosted
// authentication service. It issues JWTs carrying a subject and a role so
// the builder can be exercised locally. The role is an explicit
// provisioning input on the request, validated against the fixed
// enumeration before it is ever signed into a token.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/hirecanvas/hirecanvas/internal/builder/auth"
	"github.com/hirecanvas/hirecanvas/internal/builder/models"
)

const (
	defaultPort   = "8081"       // Default port for the authentication service
	defaultSecret = "jwt_secret" // Secret for signing JWT
)

// TokenRequest carries the identity to provision a token for.
type TokenRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// TokenResponse represents the response structure
type TokenResponse struct {
	Token string `json:"token"`
}

// tokenHandler validates the requested role, generates a JWT and returns
// it in a JSON response.
func tokenHandler(w http.ResponseWriter, r *http.Request) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = defaultSecret
	}

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	role := models.RoleCandidate
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		role = parsed
	}

	token, err := auth.GenerateToken(req.UserID, role, secret)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	resp := TokenResponse{Token: token}
	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(resp)
	if err != nil {
		http.Error(w, "Failed to encode token", http.StatusInternalServerError)
	}
}

func main() {
	port := os.Getenv("AUTH_PORT")
	if port == "" {
		port = defaultPort
	}
	http.HandleFunc("/token", tokenHandler)

	log.Printf("Authentication service running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
