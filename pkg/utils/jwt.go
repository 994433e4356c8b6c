package utils

import (
	"github.com/golang-jwt/jwt/v5"

	"nomadai/pkg/config"
)

// Claims carries the identity the excluded auth layer minted. The engine
// itself never reads these; they only gate the thin API surface.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, err
	}

	return claims, nil
}
