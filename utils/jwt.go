package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"medconnect/config"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const devSecret = "medconnect-dev-secret"

func secretKey() []byte {
	if config.AppConfig.JWTSecret != "" {
		return []byte(config.AppConfig.JWTSecret)
	}
	return []byte(devSecret)
}

// GenerateToken creates a signed JWT with the given subject (a doctor ID) and
// email and a random token ID. It returns the token and its expiry as a unix
// timestamp.
func GenerateToken(subject, email string, duration time.Duration) (string, int64, error) {
	now := time.Now()
	exp := now.Add(duration).Unix()
	claims := jwt.MapClaims{
		"jti":   uuid.New().String(),
		"sub":   subject,
		"email": email,
		"iat":   now.Unix(),
		"exp":   exp,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secretKey())
	if err != nil {
		return "", 0, err
	}
	return signed, exp, nil
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractIDFromToken returns the subject of a valid token.
func ExtractIDFromToken(tokenString string) (string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}
