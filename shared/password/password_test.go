package password_test

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"quadra/shared/password"
)

func TestConstants(t *testing.T) {
	if password.DefaultCost != bcrypt.DefaultCost {
		t.Errorf("expected DefaultCost to be %d, got %d", bcrypt.DefaultCost, password.DefaultCost)
	}
}

func TestHash(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectedError error
	}{
		{
			name:     "valid password",
			password: "validPassword123",
		},
		{
			name:          "empty password",
			password:      "",
			expectedError: password.ErrEmptyPassword,
		},
		{
			name:          "password below minimum length",
			password:      "abc",
			expectedError: password.ErrWeakPassword,
		},
		{
			name:     "minimum length password",
			password: "abcdef",
		},
		{
			name:     "long password",
			password: strings.Repeat("a", 70),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if hash == tt.password {
				t.Error("hash must not equal the plaintext password")
			}

			if err := password.Verify(tt.password, hash); err != nil {
				t.Errorf("expected hashed password to verify, got %v", err)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("abcdef")
	if err != nil {
		t.Fatalf("unexpected error hashing: %v", err)
	}

	tests := []struct {
		name          string
		password      string
		hash          string
		expectedError error
	}{
		{
			name:     "matching password",
			password: "abcdef",
			hash:     hash,
		},
		{
			name:          "wrong password",
			password:      "wrong-password",
			hash:          hash,
			expectedError: password.ErrInvalidPassword,
		},
		{
			name:          "empty password",
			password:      "",
			hash:          hash,
			expectedError: password.ErrInvalidPassword,
		},
		{
			name:          "empty hash",
			password:      "abcdef",
			hash:          "",
			expectedError: password.ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}

				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
