// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth validates bearer credentials on inbound requests before any
// protocol-level processing happens.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is returned for any rejected credential. The transport maps
// it to a 401 without detail; specifics stay in the logs.
var ErrUnauthorized = errors.New("unauthorized")

// Validator checks the credentials carried on a request's headers.
type Validator interface {
	Validate(headers http.Header) error
}

// JWTValidator validates HS256-signed bearer tokens.
type JWTValidator struct {
	secret []byte
}

// NewJWTValidator creates a validator with the given signing secret.
func NewJWTValidator(secret []byte) *JWTValidator {
	return &JWTValidator{secret: secret}
}

// Validate extracts the bearer token from the Authorization header and checks
// its signature and expiry.
func (v *JWTValidator) Validate(headers http.Header) error {
	tokenString, err := extractBearerToken(headers.Get("Authorization"))
	if err != nil {
		return err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrUnauthorized
	}

	return nil
}

// Generate creates a signed token for the given subject. Used by tests and
// the admin tooling.
func (v *JWTValidator) Generate(subject string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", fmt.Errorf("%w: missing authorization header", ErrUnauthorized)
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fmt.Errorf("%w: invalid authorization header format", ErrUnauthorized)
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", fmt.Errorf("%w: empty token", ErrUnauthorized)
	}
	return token, nil
}

// NoopValidator accepts every request. Development mode only.
type NoopValidator struct{}

// Validate implements Validator.
func (NoopValidator) Validate(http.Header) error { return nil }
