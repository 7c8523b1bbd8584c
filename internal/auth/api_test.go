package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/enslabs/clubs-admin-api/internal/auth"
	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"
	"github.com/enslabs/clubs-admin-api/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnvironment creates all dependencies needed for auth handler tests
func setupTestEnvironment(t *testing.T) (*gin.Engine, *testutil.MockSignatureVerifier) {
	t.Helper()

	cfg := testutil.NewTestConfig()
	nonceStore := auth.NewNonceStore(nil) // in-memory
	verifier := &testutil.MockSignatureVerifier{}
	tokenManager := testutil.NewMockTokenManager()

	authService := auth.NewAuthService(cfg, nonceStore, verifier, tokenManager)
	authHandler := auth.NewAuthHandler(authService)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/nonce", authHandler.Nonce)
	router.POST("/api/v1/auth/login", authHandler.Login)

	return router, verifier
}

// requestNonce runs the nonce step of the login flow
func requestNonce(t *testing.T, router *gin.Engine, address string) string {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/nonce",
		Body:   auth.NonceRequest{Address: address},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var response auth.NonceResponse
	testutil.ParseResponse(t, recorder, &response)
	require.NotEmpty(t, response.Nonce)
	return response.Nonce
}

func TestLogin_Success(t *testing.T) {
	// Given: an allowlisted wallet with an issued nonce
	router, _ := setupTestEnvironment(t)
	nonce := requestNonce(t, router, testutil.TestAdminAddress)

	// When: a signed message embedding the nonce is submitted
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body: auth.LoginRequest{
			Address:   testutil.TestAdminAddress,
			Message:   "Sign in to the clubs dashboard\nNonce: " + nonce,
			Signature: "0xsigned",
		},
	})

	// Then: a session token is issued
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response auth.LoginResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.NotEmpty(t, response.AccessToken)
}

func TestLogin_WithoutNonce(t *testing.T) {
	// Given: no nonce was ever issued
	router, _ := setupTestEnvironment(t)

	// When: a login is attempted
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body: auth.LoginRequest{
			Address:   testutil.TestAdminAddress,
			Message:   "Sign in",
			Signature: "0xsigned",
		},
	})

	// Then: rejected as expired nonce
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "AUTH-003", errorResponse.Code)
}

func TestLogin_NonceIsSingleUse(t *testing.T) {
	// Given: a completed login
	router, _ := setupTestEnvironment(t)
	nonce := requestNonce(t, router, testutil.TestAdminAddress)

	request := testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body: auth.LoginRequest{
			Address:   testutil.TestAdminAddress,
			Message:   "Nonce: " + nonce,
			Signature: "0xsigned",
		},
	}

	first := testutil.ExecuteRequest(t, router, request)
	require.Equal(t, http.StatusOK, first.Code)

	// When: the same signed message is replayed
	second := testutil.ExecuteRequest(t, router, request)

	// Then: the nonce is gone
	assert.Equal(t, http.StatusBadRequest, second.Code)
}

func TestLogin_InvalidSignature(t *testing.T) {
	// Given: a verifier that rejects the signature
	router, verifier := setupTestEnvironment(t)
	verifier.VerifySignatureFunc = func(ctx context.Context, address, message, signature string) (bool, error) {
		return false, nil
	}
	nonce := requestNonce(t, router, testutil.TestAdminAddress)

	// When: the login is attempted
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body: auth.LoginRequest{
			Address:   testutil.TestAdminAddress,
			Message:   "Nonce: " + nonce,
			Signature: "0xforged",
		},
	})

	// Then: unauthorized
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "AUTH-002", errorResponse.Code)
}

func TestLogin_NonAdminWallet(t *testing.T) {
	// Given: a wallet with a valid signature but not on the allowlist
	router, _ := setupTestEnvironment(t)
	outsider := "0x00000000000000000000000000000000000000ff"
	nonce := requestNonce(t, router, outsider)

	// When: the login is attempted
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body: auth.LoginRequest{
			Address:   outsider,
			Message:   "Nonce: " + nonce,
			Signature: "0xsigned",
		},
	})

	// Then: forbidden
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "AUTH-001", errorResponse.Code)
}

func TestNonce_ValidationError(t *testing.T) {
	router, _ := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/nonce",
		Body:   auth.NonceRequest{Address: "not-an-address"},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
