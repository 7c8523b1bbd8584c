package club_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/enslabs/clubs-admin-api/internal/club"
	"github.com/enslabs/clubs-admin-api/internal/model"
	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"
	"github.com/enslabs/clubs-admin-api/internal/shared/storage"
	"github.com/enslabs/clubs-admin-api/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeUploader records storage calls instead of talking to S3
type fakeUploader struct {
	uploaded []string
	deleted  []string
}

func (f *fakeUploader) Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) (*storage.UploadResult, error) {
	f.uploaded = append(f.uploaded, key)
	return &storage.UploadResult{
		Key:         key,
		URL:         f.PublicURL(key),
		ContentType: contentType,
		Size:        size,
	}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeUploader) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

// setupTestEnvironment creates all dependencies needed for club handler tests
func setupTestEnvironment(t *testing.T) (*gin.Engine, *gorm.DB, *fakeUploader) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	uploader := &fakeUploader{}
	clubRepository := club.NewClubRepository()
	clubService := club.NewClubService(db, clubRepository, uploader)
	clubHandler := club.NewClubHandler(clubService)

	router := testutil.SetupTestRouter()
	router.Use(testutil.AsAdmin())
	router.GET("/api/v1/clubs", clubHandler.List)
	router.POST("/api/v1/clubs", clubHandler.Create)
	router.GET("/api/v1/clubs/:name", clubHandler.Get)
	router.PATCH("/api/v1/clubs/:name", clubHandler.Update)
	router.DELETE("/api/v1/clubs/:name", clubHandler.Delete)
	router.PUT("/api/v1/clubs/:name/images/:kind", clubHandler.UploadImage)
	router.DELETE("/api/v1/clubs/:name/images/:kind", clubHandler.DeleteImage)

	return router, db, uploader
}

func TestCreateClub_Success(t *testing.T) {
	// Given: a valid create request
	router, db, _ := setupTestEnvironment(t)

	request := testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/clubs",
		Body: club.CreateClubRequest{
			Name:            "pioneers",
			DisplayName:     "Pioneers",
			Description:     "The earliest registered names",
			Classifications: []string{"community", "curated"},
		},
	}

	// When: the club is created
	recorder := testutil.ExecuteRequest(t, router, request)

	// Then: created and persisted
	assert.Equal(t, http.StatusCreated, recorder.Code)

	var response club.ClubResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, "pioneers", response.Name)
	assert.Equal(t, []string{"community", "curated"}, response.Classifications)

	var count int64
	require.NoError(t, db.Model(&model.Club{}).Where("name = ?", "pioneers").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateClub_DuplicateName(t *testing.T) {
	// Given: an existing club
	router, db, _ := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")

	// When: a club with the same name is created
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/clubs",
		Body:   club.CreateClubRequest{Name: "pioneers"},
	})

	// Then: conflict
	assert.Equal(t, http.StatusConflict, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "CLUB-002", errorResponse.Code)
}

func TestCreateClub_ValidationErrors(t *testing.T) {
	router, _, _ := setupTestEnvironment(t)

	testCases := []struct {
		name string
		body club.CreateClubRequest
	}{
		{name: "uppercase slug", body: club.CreateClubRequest{Name: "Pioneers"}},
		{name: "slug too short", body: club.CreateClubRequest{Name: "p"}},
		{name: "unknown classification", body: club.CreateClubRequest{Name: "pioneers", Classifications: []string{"fancy"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/clubs",
				Body:   tc.body,
			})

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestGetClub_NotFound(t *testing.T) {
	router, _, _ := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/clubs/ghost",
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "CLUB-001", errorResponse.Code)
}

func TestUpdateClub_PartialUpdate(t *testing.T) {
	// Given: a club with a display name and description
	router, db, _ := setupTestEnvironment(t)
	seeded := model.NewClub("pioneers", "Pioneers", "original", nil)
	require.NoError(t, db.Create(seeded).Error)

	// When: only the description is patched
	newDescription := "rewritten"
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPatch,
		URL:    "/api/v1/clubs/pioneers",
		Body:   club.UpdateClubRequest{Description: &newDescription},
	})

	// Then: the description changes and the display name is untouched
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response club.ClubResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, "rewritten", response.Description)
	assert.Equal(t, "Pioneers", response.DisplayName)
}

func TestDeleteClub_RemovesMemberships(t *testing.T) {
	// Given: a club with members
	router, db, _ := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")
	require.NoError(t, db.Create(&model.ClubMember{ClubName: "pioneers", Name: "vitalik.eth"}).Error)

	// When: the club is deleted
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/api/v1/clubs/pioneers",
	})

	// Then: the club and its memberships are gone
	assert.Equal(t, http.StatusOK, recorder.Code)

	var clubs, members int64
	require.NoError(t, db.Model(&model.Club{}).Count(&clubs).Error)
	require.NoError(t, db.Model(&model.ClubMember{}).Count(&members).Error)
	assert.Equal(t, int64(0), clubs)
	assert.Equal(t, int64(0), members)
}

func TestDeleteClub_NotFound(t *testing.T) {
	router, _, _ := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/api/v1/clubs/ghost",
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

// executeImageUpload posts a multipart body to the image endpoint
func executeImageUpload(t *testing.T, router *gin.Engine, url, contentType string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="image"; filename="avatar.png"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, url, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestUploadImage_Success(t *testing.T) {
	// Given: a club and a small png
	router, db, uploader := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")

	// When: an avatar is uploaded
	recorder := executeImageUpload(t, router, "/api/v1/clubs/pioneers/images/avatar", "image/png", []byte("png-bytes"))

	// Then: stored and pointed at
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response club.UploadImageResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.True(t, response.Success)
	assert.Equal(t, "avatar", response.Kind)
	assert.NotEmpty(t, response.Key)
	require.Len(t, uploader.uploaded, 1)

	var stored model.Club
	require.NoError(t, db.Where("name = ?", "pioneers").First(&stored).Error)
	require.NotNil(t, stored.AvatarImageKey)
	assert.Equal(t, response.Key, *stored.AvatarImageKey)
}

func TestUploadImage_ReplacesOldObject(t *testing.T) {
	// Given: a club that already has an avatar
	router, db, uploader := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")

	first := executeImageUpload(t, router, "/api/v1/clubs/pioneers/images/avatar", "image/png", []byte("one"))
	require.Equal(t, http.StatusOK, first.Code)
	var firstResponse club.UploadImageResponse
	testutil.ParseResponse(t, first, &firstResponse)

	// When: a new avatar replaces it
	second := executeImageUpload(t, router, "/api/v1/clubs/pioneers/images/avatar", "image/png", []byte("two"))

	// Then: the old object is deleted
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, uploader.deleted, firstResponse.Key)
}

func TestUploadImage_RejectsUnsupportedType(t *testing.T) {
	router, db, uploader := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")

	recorder := executeImageUpload(t, router, "/api/v1/clubs/pioneers/images/avatar", "application/pdf", []byte("%PDF"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "CLUB-005", errorResponse.Code)
	assert.Empty(t, uploader.uploaded)
}

func TestUploadImage_RejectsUnknownKind(t *testing.T) {
	router, db, _ := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")

	recorder := executeImageUpload(t, router, "/api/v1/clubs/pioneers/images/banner", "image/png", []byte("png"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "CLUB-003", errorResponse.Code)
}

func TestDeleteImage_Success(t *testing.T) {
	// Given: a club with an uploaded header image
	router, db, uploader := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")

	upload := executeImageUpload(t, router, "/api/v1/clubs/pioneers/images/header", "image/jpeg", []byte("jpg"))
	require.Equal(t, http.StatusOK, upload.Code)
	var uploadResponse club.UploadImageResponse
	testutil.ParseResponse(t, upload, &uploadResponse)

	// When: the header image is deleted
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/api/v1/clubs/pioneers/images/header",
	})

	// Then: the pointer is cleared and the object removed
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, uploader.deleted, uploadResponse.Key)

	var stored model.Club
	require.NoError(t, db.Where("name = ?", "pioneers").First(&stored).Error)
	assert.Nil(t, stored.HeaderImageKey)
}

func TestDeleteImage_NoImage(t *testing.T) {
	router, db, _ := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/api/v1/clubs/pioneers/images/avatar",
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "CLUB-006", errorResponse.Code)
}

func TestListClubs_Pagination(t *testing.T) {
	// Given: three clubs
	router, db, _ := setupTestEnvironment(t)
	for _, name := range []string{"alpha", "bravo", "charlie"} {
		testutil.SeedClub(t, db, name)
	}

	// When: the second page of size 2 is requested
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/clubs?page=2&limit=2",
	})

	// Then: one club remains
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response club.ListClubsResponse
	testutil.ParseResponse(t, recorder, &response)
	require.Len(t, response.Clubs, 1)
	assert.Equal(t, "charlie", response.Clubs[0].Name)
	assert.Equal(t, int64(3), response.Pagination.Total)
}
