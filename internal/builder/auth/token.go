package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hirecanvas/hirecanvas/internal/builder/models"
)

// GenerateToken signs a 24h identity token carrying the subject and role.
// The role is an explicit provisioning input, never ambient state.
func GenerateToken(userID string, role models.Role, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(time.Hour * 24).Unix(),
		"iat":  time.Now().Unix(),
		"iss":  "auth-service",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
