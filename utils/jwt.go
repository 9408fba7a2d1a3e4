package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"restaurant-pos/models"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// development fallback, override in production
		secret = "pos-dev-secret"
	}
	return []byte(secret)
}

type CustomClaims struct {
	EmployeeID uint   `json:"employee_id"`
	Username   string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed token for an employee and returns the
// token together with its expiry time.
func GenerateToken(employee *models.Employee) (string, time.Time, error) {
	expiresAt := time.Now().Add(TokenTTL)
	claims := &CustomClaims{
		EmployeeID: employee.ID,
		Username:   employee.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "restaurant-pos",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
