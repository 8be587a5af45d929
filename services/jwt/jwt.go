package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// GenerateToken signs an HS256 access token carrying the user id.
func GenerateToken(userID uint, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAndGetClaims checks the signature and expiry of an access token.
func ValidateAndGetClaims(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// UserIDFromClaims reads the numeric id claim.
func UserIDFromClaims(claims jwt.MapClaims) (uint, error) {
	switch v := claims["id"].(type) {
	case float64:
		if v <= 0 {
			return 0, fmt.Errorf("invalid user id %v", v)
		}
		return uint(v), nil
	default:
		return 0, fmt.Errorf("invalid userID format")
	}
}
