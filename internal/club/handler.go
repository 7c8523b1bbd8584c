package club

import (
	"net/http"

	sharedContext "github.com/enslabs/clubs-admin-api/internal/shared/context"
	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"
	"github.com/enslabs/clubs-admin-api/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

type ClubHandler struct {
	clubService *ClubService
}

func NewClubHandler(clubService *ClubService) *ClubHandler {
	return &ClubHandler{
		clubService: clubService,
	}
}

func (h *ClubHandler) Create(c *gin.Context) {
	actor, ok := sharedContext.RequireActorAddress(c)
	if !ok {
		return
	}

	var request CreateClubRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.clubService.Create(c.Request.Context(), actor, &request)
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}

		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *ClubHandler) Get(c *gin.Context) {
	response, err := h.clubService.Get(c.Request.Context(), c.Param("name"))
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

func (h *ClubHandler) List(c *gin.Context) {
	page, limit := handler.ParsePageQuery(c, defaultPageLimit, maxPageLimit)

	response, err := h.clubService.List(c.Request.Context(), page, limit)
	if err != nil {
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ClubHandler) Update(c *gin.Context) {
	actor, ok := sharedContext.RequireActorAddress(c)
	if !ok {
		return
	}

	var request UpdateClubRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.clubService.Update(c.Request.Context(), actor, c.Param("name"), &request)
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

func (h *ClubHandler) Delete(c *gin.Context) {
	actor, ok := sharedContext.RequireActorAddress(c)
	if !ok {
		return
	}

	err := h.clubService.Delete(c.Request.Context(), actor, c.Param("name"))
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}

		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UploadImage handles multipart uploads for PUT /clubs/:name/images/:kind.
// The image is read from the "image" form field.
func (h *ClubHandler) UploadImage(c *gin.Context) {
	actor, ok := sharedContext.RequireActorAddress(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}
	defer file.Close()

	response, err := h.clubService.UploadImage(
		c.Request.Context(),
		actor,
		c.Param("name"),
		c.Param("kind"),
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
	)
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

func (h *ClubHandler) DeleteImage(c *gin.Context) {
	actor, ok := sharedContext.RequireActorAddress(c)
	if !ok {
		return
	}

	err := h.clubService.DeleteImage(c.Request.Context(), actor, c.Param("name"), c.Param("kind"))
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}

		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
