package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		shouldFail    bool
		errorContains string
	}{
		{
			name:     "valid password",
			password: "Secure123",
		},
		{
			name:     "valid with symbols and accents",
			password: "Mật khẩu 2024",
		},
		{
			name:          "too short",
			password:      "Pass1",
			shouldFail:    true,
			errorContains: "at least 8 characters",
		},
		{
			name:          "missing uppercase",
			password:      "securepass123",
			shouldFail:    true,
			errorContains: "uppercase",
		},
		{
			name:          "missing digit",
			password:      "SecurePassword",
			shouldFail:    true,
			errorContains: "digit",
		},
		{
			name:          "common password rejected",
			password:      "Password123",
			shouldFail:    true,
			errorContains: "too common",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if !tt.shouldFail {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Secure123")
	require.NoError(t, err)

	assert.NotEqual(t, "Secure123", hash)
	assert.NoError(t, ComparePassword(hash, "Secure123"))
	assert.Error(t, ComparePassword(hash, "Secure124"))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}
