package context

import (
	"net/http"

	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"
	"github.com/enslabs/clubs-admin-api/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// Context keys for storing the authenticated actor
const (
	ActorAddressKey = "actor_address"
)

func GetActorAddress(c *gin.Context) (string, bool) {
	value, exists := c.Get(ActorAddressKey)
	if !exists {
		return "", false
	}

	address, ok := value.(string)
	if !ok || address == "" {
		return "", false
	}

	return address, true
}

// RequireActorAddress retrieves the authenticated admin's wallet address from
// the Gin context. If it is missing, an authentication error response is sent
// automatically. Returns the address and true if found, empty string and
// false if not found (error already sent).
func RequireActorAddress(c *gin.Context) (string, bool) {
	address, ok := GetActorAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-000",
			Message: "Authentication required.",
		})
		c.Abort()
		logger.FromContext(c.Request.Context()).Error("[API] actor address missing from context")
		return "", false
	}
	return address, true
}
