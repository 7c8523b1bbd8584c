package testutil

import (
	"context"

	"github.com/enslabs/clubs-admin-api/internal/shared/token"
)

// MockTokenManager is a mock implementation of token.Manager for testing
type MockTokenManager struct {
	GenerateSessionTokenFunc func(address string) (string, error)
	ValidateTokenFunc        func(tokenString string) (*token.Claims, error)
}

func (m *MockTokenManager) GenerateSessionToken(address string) (string, error) {
	if m.GenerateSessionTokenFunc != nil {
		return m.GenerateSessionTokenFunc(address)
	}
	return "mock-session-token", nil
}

func (m *MockTokenManager) ValidateToken(tokenString string) (*token.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	return &token.Claims{Address: TestAdminAddress}, nil
}

// Ensure MockTokenManager implements token.Manager
var _ token.Manager = (*MockTokenManager)(nil)

// NewMockTokenManager creates a new mock token manager with default behavior
func NewMockTokenManager() *MockTokenManager {
	return &MockTokenManager{}
}

// MockSignatureVerifier fakes the upstream wallet-signature check.
type MockSignatureVerifier struct {
	VerifySignatureFunc func(ctx context.Context, address, message, signature string) (bool, error)
}

func (m *MockSignatureVerifier) VerifySignature(ctx context.Context, address, message, signature string) (bool, error) {
	if m.VerifySignatureFunc != nil {
		return m.VerifySignatureFunc(ctx, address, message, signature)
	}
	return true, nil
}
