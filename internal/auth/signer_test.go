package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eugenenazirov/mernconfig/internal/config"
)

func testSettings(secret string) config.Settings {
	return config.Settings{
		JWTSecret: secret,
		Mongoose:  config.MongooseSettings{URI: config.DefaultMongoDBURI},
	}
}

func TestIssueAndParse(t *testing.T) {
	signer := NewSigner(testSettings("abc123"))

	token, err := signer.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	subject, err := signer.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if subject != "user-42" {
		t.Fatalf("expected subject user-42, got %q", subject)
	}
}

func TestIssueRejectsEmptySubject(t *testing.T) {
	if _, err := NewSigner(testSettings("abc123")).Issue(""); !errors.Is(err, ErrEmptySubject) {
		t.Fatalf("expected ErrEmptySubject, got %v", err)
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, err := NewSigner(testSettings("one")).Issue("user-42")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := NewSigner(testSettings("two")).Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewSigner(testSettings("abc123"), WithTTL(time.Minute), WithClock(func() time.Time { return issued }))

	token, err := issuer.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	later := NewSigner(testSettings("abc123"), WithClock(func() time.Time { return issued.Add(2 * time.Minute) }))
	if _, err := later.Parse(token); !errors.Is(err, ErrInvalidToken) || !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired token error, got %v", err)
	}
}

func TestParseRejectsUnexpectedAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("abc123"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewSigner(testSettings("abc123")).Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS512 token, got %v", err)
	}
}

func TestParseRejectsMissingSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("abc123"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewSigner(testSettings("abc123")).Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
