package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jgecalumni/room-booking-app/models"
)

// TokenTTL is the fixed identity-token lifetime.
const TokenTTL = 24 * time.Hour

// GenerateToken signs the identity token carrying id, email, name and role.
func GenerateToken(user *models.User, secret string) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  string(user.Role),
		"exp":   time.Now().Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
