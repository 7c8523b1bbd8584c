package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/enslabs/clubs-admin-api/internal/config"
	"github.com/enslabs/clubs-admin-api/internal/shared/logger"
	"github.com/enslabs/clubs-admin-api/internal/shared/token"
)

// SignatureVerifier is the wallet-cryptography collaborator. The admin API
// never verifies signatures itself; the grails client implements this against
// the upstream verification endpoint, and tests inject a mock.
type SignatureVerifier interface {
	VerifySignature(ctx context.Context, address, message, signature string) (bool, error)
}

type AuthService struct {
	cfg          *config.Config
	nonceStore   NonceStore
	verifier     SignatureVerifier
	tokenManager token.Manager
}

func NewAuthService(cfg *config.Config, nonceStore NonceStore, verifier SignatureVerifier, tokenManager token.Manager) *AuthService {
	return &AuthService{
		cfg:          cfg,
		nonceStore:   nonceStore,
		verifier:     verifier,
		tokenManager: tokenManager,
	}
}

// Nonce issues a fresh single-use login nonce for the given wallet.
func (a *AuthService) Nonce(ctx context.Context, request *NonceRequest) (*NonceResponse, error) {
	log := logger.FromContext(ctx)

	nonce, err := a.nonceStore.Issue(ctx, request.Address)
	if err != nil {
		log.Error("failed to issue login nonce", "error", err)
		return nil, fmt.Errorf("issue nonce: %w", err)
	}

	log.Debug("login nonce issued", "address", logger.MaskAddress(request.Address))
	return &NonceResponse{Nonce: nonce}, nil
}

// Login exchanges a signed message for a session token. The signature itself
// is verified by the external collaborator; this service only enforces the
// nonce lifecycle and the admin allowlist.
func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)
	address := strings.ToLower(request.Address)

	// 1. The signed message must embed the nonce we issued (single use)
	nonce, ok, err := a.nonceStore.Take(ctx, address)
	if err != nil {
		log.Error("nonce lookup failed", "error", err)
		return nil, fmt.Errorf("nonce lookup: %w", err)
	}
	if !ok {
		log.Warn("login without active nonce", "address", logger.MaskAddress(address))
		return nil, fmt.Errorf("login: %w", ErrNonceExpired)
	}
	if !strings.Contains(request.Message, nonce) {
		log.Warn("login message missing issued nonce", "address", logger.MaskAddress(address))
		return nil, fmt.Errorf("login: %w", ErrInvalidSignature)
	}

	// 2. Delegate signature verification
	valid, err := a.verifier.VerifySignature(ctx, address, request.Message, request.Signature)
	if err != nil {
		log.Error("signature verifier unavailable", "error", err)
		return nil, fmt.Errorf("verify signature: %w", ErrVerifierUnavailable)
	}
	if !valid {
		log.Warn("invalid login signature", "address", logger.MaskAddress(address))
		return nil, fmt.Errorf("login: %w", ErrInvalidSignature)
	}

	// 3. Only allowlisted admin wallets get a session
	if !a.cfg.IsAdmin(address) {
		log.Warn("wallet not on admin allowlist", "address", logger.MaskAddress(address))
		return nil, fmt.Errorf("login: %w", ErrWalletNotAllowed)
	}

	// 4. Issue session token
	accessToken, err := a.tokenManager.GenerateSessionToken(address)
	if err != nil {
		log.Error("failed to generate session token", "error", err)
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	log.Info("admin logged in", "address", logger.MaskAddress(address))

	return &LoginResponse{AccessToken: accessToken}, nil
}

// Me describes the authenticated session.
func (a *AuthService) Me(address string) *MeResponse {
	return &MeResponse{
		Address: address,
		IsAdmin: a.cfg.IsAdmin(address),
	}
}
