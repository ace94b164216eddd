/*
Copyright 2026 the PN Academy Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fake

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

type tokenClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// tokenIssuer signs and verifies HS256 tokens.
type tokenIssuer struct {
	signingKey      []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
	now             func() time.Time
}

func (t *tokenIssuer) issue(userID, tokenType string) (string, error) {
	now := t.now()

	lifetime := t.accessLifetime
	if tokenType == tokenTypeRefresh {
		lifetime = t.refreshLifetime
	}

	claims := tokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.signingKey)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", tokenType, err)
	}

	return signed, nil
}

func (t *tokenIssuer) issuePair(userID string) (string, string, error) {
	access, err := t.issue(userID, tokenTypeAccess)
	if err != nil {
		return "", "", err
	}

	refresh, err := t.issue(userID, tokenTypeRefresh)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// validate checks the signature, expiry and type of a token and returns the
// user ID it was issued for.
func (t *tokenIssuer) validate(tokenString, tokenType string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		return t.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.TokenType != tokenType {
		return "", ErrWrongTokenType
	}

	return claims.Subject, nil
}
