package service

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"gaia_backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()
}

func TestGenerateAndParseJWT(t *testing.T) {
	initTestJWT(t)

	user := &domain.User{ID: 42, Username: "Ana", Email: "ana@x.com"}
	token, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "ana@x.com" || claims.Username != "Ana" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseJWTRejectsTampered(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateJWT(&domain.User{ID: 1, Username: "u", Email: "u@x.com"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parts := strings.Split(token, ".")
	sig := parts[2]
	flip := byte('A')
	if sig[0] == 'A' {
		flip = 'B'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(flip) + sig[1:]
	if _, err := ParseJWT(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("tampered token: err = %v; want ErrInvalidToken", err)
	}

	if _, err := ParseJWT("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage token: err = %v; want ErrInvalidToken", err)
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	initTestJWT(t)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(1),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := other.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: err = %v; want ErrInvalidToken", err)
	}
}

func TestParseJWTRejectsExpired(t *testing.T) {
	initTestJWT(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(1),
		"exp":     time.Now().Add(-time.Hour).Unix(),
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
	})
	signed, err := expired.SignedString(jwtSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(signed); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expired token: err = %v; want ErrExpiredToken", err)
	}
}

func TestGenerateResetCodeShape(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := GenerateResetCode()
		if len(code) != 6 {
			t.Fatalf("len(%q) = %d; want 6", code, len(code))
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("non-numeric code %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d outside [100000, 999999]", n)
		}
	}
}
