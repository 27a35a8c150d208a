// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SaphalKatuwal/SilverScreened/internal/config"
)

const testSecret = "this_is_a_very_long_secret_key_for_testing_purposes_12345"

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		JWTSecret:      testSecret,
		SessionTimeout: time.Hour,
	}
}

func TestNewJWTManager(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cfg         *config.SecurityConfig
		wantErr     bool
		wantTimeout time.Duration
	}{
		{
			name:        "valid secret",
			cfg:         &config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: 2 * time.Hour},
			wantTimeout: 2 * time.Hour,
		},
		{
			name:        "zero timeout defaults to one hour",
			cfg:         &config.SecurityConfig{JWTSecret: testSecret},
			wantTimeout: time.Hour,
		},
		{
			name:    "empty secret",
			cfg:     &config.SecurityConfig{SessionTimeout: time.Hour},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			manager, err := NewJWTManager(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewJWTManager() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewJWTManager() unexpected error = %v", err)
			}
			if manager.Timeout() != tt.wantTimeout {
				t.Errorf("expected timeout %v, got %v", tt.wantTimeout, manager.Timeout())
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	manager, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	for _, userID := range []string{"65f1c0ffee", "user-with-dashes", "u"} {
		token, err := manager.GenerateToken(userID)
		if err != nil {
			t.Fatalf("GenerateToken(%q) error = %v", userID, err)
		}

		claims, err := manager.ValidateToken(token)
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}
		if claims.UserID != userID {
			t.Errorf("expected userId %q, got %q", userID, claims.UserID)
		}
		if claims.ExpiresAt == nil {
			t.Fatal("expected exp claim to be set")
		}
		lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
		if lifetime != time.Hour {
			t.Errorf("expected 1h lifetime, got %v", lifetime)
		}
	}
}

func TestValidateToken_Invalid(t *testing.T) {
	t.Parallel()

	manager, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"invalid token format", "invalid.token.format"},
		{"empty token", ""},
		{"malformed token", "not_a_jwt_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claims, err := manager.ValidateToken(tt.token)
			if err == nil {
				t.Error("ValidateToken() expected error for invalid token, got nil")
			}
			if claims != nil {
				t.Error("ValidateToken() expected nil claims for invalid token")
			}
		})
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	manager1, _ := NewJWTManager(&config.SecurityConfig{JWTSecret: "first_secret_key_that_is_long_enough_for_testing_12345"})
	manager2, _ := NewJWTManager(&config.SecurityConfig{JWTSecret: "second_secret_key_that_is_different_from_first_12345"})

	token, err := manager1.GenerateToken("u1")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if claims, err := manager2.ValidateToken(token); err == nil || claims != nil {
		t.Errorf("expected rejection with a different secret, got %+v, %v", claims, err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	manager := &JWTManager{secret: []byte(testSecret), timeout: -time.Hour}

	token, err := manager.GenerateToken("u1")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if claims, err := manager.ValidateToken(token); err == nil || claims != nil {
		t.Errorf("expected expired token to be rejected, got %+v, %v", claims, err)
	}
}

func TestValidateToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	manager, _ := NewJWTManager(testSecurityConfig())

	claims := &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	tests := []struct {
		name   string
		method jwt.SigningMethod
		key    interface{}
	}{
		{"HS512", jwt.SigningMethodHS512, []byte(testSecret)},
		{"none", jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			token, err := jwt.NewWithClaims(tt.method, claims).SignedString(tt.key)
			if err != nil {
				t.Fatalf("SignedString() error = %v", err)
			}
			if _, err := manager.ValidateToken(token); err == nil {
				t.Errorf("expected %s token to be rejected", tt.name)
			}
		})
	}
}

func TestValidateToken_RequiresUserID(t *testing.T) {
	t.Parallel()

	manager, _ := NewJWTManager(testSecurityConfig())
	token, err := manager.GenerateToken("")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := manager.ValidateToken(token); err == nil {
		t.Error("expected token without userId to be rejected")
	}
}
