// Package auth issues and verifies the bearer tokens that guard the API when
// auth.required is set.
package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/notaspie/notaspie/config"
	"github.com/notaspie/notaspie/internal"
)

const JwtAlg = "HS256"

const issuer = "notaspie"

var log = internal.GetLogger()

var ErrSecretNotSet = errors.New(
	"auth secret not set. Ensure NOTASPIE_AUTH_SECRET is set in your environment",
)

// GenerateJWT signs a token for the secret in cfg. Tokens carry no expiry;
// rotate the secret to revoke them.
func GenerateJWT(cfg *config.Config) (string, error) {
	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		return "", ErrSecretNotSet
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:   issuer,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	})
	return token.SignedString(secret)
}

func JWTVerifier(cfg *config.Config) func(http.Handler) http.Handler {
	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		log.Fatal(ErrSecretNotSet)
	}
	tokenAuth := jwtauth.New(JwtAlg, secret, nil)
	return jwtauth.Verifier(tokenAuth)
}
