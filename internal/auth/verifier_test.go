package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Giusk10/SpendyApp/internal/util"
)

const testSecret = "test-secret"

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	token, err := util.GenerateToken(testSecret, "giuseppe", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	username, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if username != "giuseppe" {
		t.Errorf("Verify() = %q, want giuseppe", username)
	}
}

func TestJWTVerifier_Rejections(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	wrongSecret, err := util.GenerateToken("other-secret", "giuseppe", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// hand-built token with an expiry in the past
	expiredClaims := &util.Claims{
		Username: "giuseppe",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	noUserClaims := &util.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noUserClaims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign no-user token: %v", err)
	}

	testCases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"wrong secret", wrongSecret},
		{"expired", expired},
		{"no username", noUser},
	}

	for _, tc := range testCases {
		if _, err := v.Verify(tc.token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: Verify() error = %v, want ErrInvalidToken", tc.name, err)
		}
	}
}

func TestGatewayVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"username":"giuseppe"}`))
	}))
	defer srv.Close()

	v := NewGatewayVerifier(srv.URL)

	username, err := v.Verify("some-token")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if username != "giuseppe" {
		t.Errorf("Verify() = %q, want giuseppe", username)
	}
}

func TestGatewayVerifier_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	v := NewGatewayVerifier(srv.URL)

	if _, err := v.Verify("bad-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestGatewayVerifier_EmptyUsername(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username":""}`))
	}))
	defer srv.Close()

	v := NewGatewayVerifier(srv.URL)

	if _, err := v.Verify("token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}
