package membership

import (
	"net/http"

	sharedContext "github.com/enslabs/clubs-admin-api/internal/shared/context"
	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"
	"github.com/enslabs/clubs-admin-api/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

type MembershipHandler struct {
	membershipService *MembershipService
}

func NewMembershipHandler(membershipService *MembershipService) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
	}
}

func (h *MembershipHandler) AddNames(c *gin.Context) {
	actor, ok := sharedContext.RequireActorAddress(c)
	if !ok {
		return
	}

	var request NamesRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.membershipService.AddNames(c.Request.Context(), actor, c.Param("name"), request.Names)
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}

		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	// the validity gate rejected the batch: nothing was written, the body
	// carries per-name reasons
	if !response.Success {
		c.JSON(http.StatusBadRequest, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MembershipHandler) RemoveNames(c *gin.Context) {
	actor, ok := sharedContext.RequireActorAddress(c)
	if !ok {
		return
	}

	var request NamesRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.membershipService.RemoveNames(c.Request.Context(), actor, c.Param("name"), request.Names)
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}

		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MembershipHandler) ListMembers(c *gin.Context) {
	page, limit := handler.ParsePageQuery(c, defaultPageLimit, maxPageLimit)

	response, err := h.membershipService.ListMembers(c.Request.Context(), c.Param("name"), page, limit)
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}

		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MembershipHandler) ScanInvalidNames(c *gin.Context) {
	response, err := h.membershipService.Scan(c.Request.Context(), c.Param("name"))
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}

		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, response)
}
