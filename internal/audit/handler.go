package audit

import (
	"net/http"
	"strconv"

	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"
	"github.com/enslabs/clubs-admin-api/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
	maxWindowDays    = 365
)

type AuditHandler struct {
	auditService *AuditService
}

func NewAuditHandler(auditService *AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// Activity serves GET /activity. All filters are optional query parameters.
func (h *AuditHandler) Activity(c *gin.Context) {
	page, limit := handler.ParsePageQuery(c, defaultPageLimit, maxPageLimit)

	days, _ := strconv.Atoi(c.DefaultQuery("days", "0"))
	if days < 0 {
		days = 0
	}
	if days > maxWindowDays {
		days = maxWindowDays
	}

	filter := Filter{
		Table:      c.Query("table"),
		Operation:  c.Query("operation"),
		Actor:      c.Query("actor"),
		HideSystem: c.Query("hideSystem") == "true",
		Club:       c.Query("category"),
		Name:       c.Query("name"),
		Days:       days,
	}

	response, err := h.auditService.Activity(c.Request.Context(), filter, page, limit)
	if err != nil {
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, response)
}
