// Package auth resolves an opaque bearer token to a user identity.
package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Giusk10/SpendyApp/internal/util"
)

// ErrInvalidToken is returned for tokens that are missing, malformed,
// expired or rejected by the gateway.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenVerifier resolves a bearer token to a username. Implementations are
// synchronous; callers decide whether a failure is fatal (owner-scoped
// queries) or degrades to an unauthenticated owner (ingestion).
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// JWTVerifier validates HS256 tokens locally against a shared secret.
type JWTVerifier struct {
	Secret string
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{Secret: secret}
}

func (v *JWTVerifier) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	claims, err := util.ParseToken(v.Secret, token)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		return "", ErrInvalidToken
	}
	if claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}

// GatewayVerifier delegates verification to the auth gateway over HTTP,
// posting {"token": ...} and reading {"username": ...}.
type GatewayVerifier struct {
	URL    string
	Client *http.Client
}

func NewGatewayVerifier(url string) *GatewayVerifier {
	return &GatewayVerifier{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (v *GatewayVerifier) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	body, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return "", fmt.Errorf("encode verify request: %w", err)
	}

	resp, err := v.Client.Post(v.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrInvalidToken
	}

	var payload struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode verify response: %w", err)
	}
	if payload.Username == "" {
		return "", ErrInvalidToken
	}
	return payload.Username, nil
}
