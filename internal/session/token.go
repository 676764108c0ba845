package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errNoExpiry = errors.New("token carries no expiry claim")

// TokenExpiry peeks at the backend JWT's exp claim without verifying
// the signature. The value is only used for logging next to the local
// TTL; the backend remains the authority on token validity.
func TokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errNoExpiry
	}
	return exp.Time, nil
}
