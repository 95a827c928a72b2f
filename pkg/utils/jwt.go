package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenIssuer = "healthcheck-api"
	TokenTTL    = 24 * time.Hour
)

var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// Claims is the identity carried by a bearer token.
type Claims struct {
	UserID int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func GenerateToken(userID int64, name, email, secret string) (string, error) {
	return GenerateTokenAt(userID, name, email, secret, time.Now())
}

// GenerateTokenAt signs a token whose lifetime starts at issuedAt.
func GenerateTokenAt(userID int64, name, email, secret string, issuedAt time.Time) (string, error) {
	if userID <= 0 {
		return "", errors.New("invalid user ID")
	}
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}

	claims := Claims{
		UserID: userID,
		Name:   name,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(tokenString, secret string) (*Claims, error) {
	return ValidateTokenAt(tokenString, secret, time.Now())
}

// ValidateTokenAt checks signature and claims as of now. The returned error is always
// one of ErrTokenMalformed, ErrTokenExpired or ErrTokenInvalid.
func ValidateTokenAt(tokenString, secret string, now time.Time) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrTokenMalformed
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		// signature is verified before expiry, so an expired token with a
		// forged signature still reports invalid
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenInvalid
		}
	}

	if claims.UserID <= 0 || claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
