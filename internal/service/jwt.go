package service

import (
	"errors"
	"os"
	"time"

	"gaia_backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("token required")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Tokens are stateless: there is no revocation list, so a token stays
// valid for the full window regardless of logout.
const sessionTTL = 7 * 24 * time.Hour

var jwtSecret []byte

func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET is not set")
	}
	jwtSecret = []byte(secret)
}

// Claims is the identity a verified token proves.
type Claims struct {
	UserID   int64
	Email    string
	Username string
}

func GenerateJWT(user *domain.User) (string, error) {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"username": user.Username,
		"exp":      time.Now().Add(sessionTTL).Unix(),
		"iat":      now,
		"nbf":      now,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseJWT(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := mc["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{UserID: int64(userID)}
	if email, ok := mc["email"].(string); ok {
		claims.Email = email
	}
	if username, ok := mc["username"].(string); ok {
		claims.Username = username
	}
	return claims, nil
}
