package membership_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/enslabs/clubs-admin-api/internal/club"
	"github.com/enslabs/clubs-admin-api/internal/ensname"
	"github.com/enslabs/clubs-admin-api/internal/membership"
	"github.com/enslabs/clubs-admin-api/internal/model"
	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"
	"github.com/enslabs/clubs-admin-api/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestEnvironment creates all dependencies needed for membership handler tests
func setupTestEnvironment(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	clubRepository := club.NewClubRepository()
	membershipRepository := membership.NewMembershipRepository()
	nameDirectory := ensname.NewRepository()

	membershipService := membership.NewMembershipService(db, membershipRepository, clubRepository, nameDirectory)
	membershipHandler := membership.NewMembershipHandler(membershipService)

	router := testutil.SetupTestRouter()
	router.Use(testutil.AsAdmin())
	router.GET("/api/v1/clubs/:name/members", membershipHandler.ListMembers)
	router.POST("/api/v1/clubs/:name/members", membershipHandler.AddNames)
	router.DELETE("/api/v1/clubs/:name/members", membershipHandler.RemoveNames)
	router.GET("/api/v1/clubs/:name/invalid-names", membershipHandler.ScanInvalidNames)

	return router, db
}

func countMembers(t *testing.T, db *gorm.DB, clubName string) int64 {
	t.Helper()

	var count int64
	err := db.Model(&model.ClubMember{}).Where("club_name = ?", clubName).Count(&count).Error
	require.NoError(t, err)
	return count
}

func TestAddNames_Success(t *testing.T) {
	// Given: a club and two registered names
	router, db := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")
	testutil.SeedNameDirectory(t, db, "vitalik.eth", "nick.eth")

	// When: both names are added
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/clubs/pioneers/members",
		Body:   membership.NamesRequest{Names: []string{"vitalik.eth", "nick.eth"}},
	})

	// Then: both are inserted
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response membership.AddNamesResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.True(t, response.Success)
	assert.Equal(t, int64(2), response.Added)
	assert.Equal(t, int64(0), response.Skipped)
	assert.Equal(t, int64(2), countMembers(t, db, "pioneers"))
}

func TestAddNames_IdempotentAdd(t *testing.T) {
	// Given: a club with one name already added
	router, db := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")
	testutil.SeedNameDirectory(t, db, "vitalik.eth")

	request := testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/clubs/pioneers/members",
		Body:   membership.NamesRequest{Names: []string{"vitalik.eth"}},
	}

	first := testutil.ExecuteRequest(t, router, request)
	require.Equal(t, http.StatusOK, first.Code)

	var firstResponse membership.AddNamesResponse
	testutil.ParseResponse(t, first, &firstResponse)
	require.Equal(t, int64(1), firstResponse.Added)

	// When: the same name is added again
	second := testutil.ExecuteRequest(t, router, request)

	// Then: the duplicate is skipped, not an error, and exactly one row exists
	assert.Equal(t, http.StatusOK, second.Code)

	var secondResponse membership.AddNamesResponse
	testutil.ParseResponse(t, second, &secondResponse)
	assert.True(t, secondResponse.Success)
	assert.Equal(t, int64(0), secondResponse.Added)
	assert.Equal(t, int64(1), secondResponse.Skipped)
	assert.Equal(t, int64(1), countMembers(t, db, "pioneers"))
}

func TestAddNames_AllOrNothingGate(t *testing.T) {
	// Given: a valid registered name alongside an unnormalizable one
	router, db := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")
	testutil.SeedNameDirectory(t, db, "vitalik.eth")

	// When: the batch is submitted
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/clubs/pioneers/members",
		Body:   membership.NamesRequest{Names: []string{"vitalik.eth", "Not A Name!!"}},
	})

	// Then: the whole batch is rejected with zero rows written
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var response membership.AddNamesResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.False(t, response.Success)
	assert.Contains(t, response.InvalidNames, "Not A Name!!")
	require.NotNil(t, response.Details)
	assert.Len(t, response.Details.InvalidFormat, 1)
	assert.Equal(t, int64(0), countMembers(t, db, "pioneers"))
}

func TestAddNames_NotInDatabase(t *testing.T) {
	// Given: a name that normalizes fine but is unknown to the directory
	router, db := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")

	// When: it is added
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/clubs/pioneers/members",
		Body:   membership.NamesRequest{Names: []string{"unregistered.eth"}},
	})

	// Then: rejected under the notInDatabase sub-reason
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var response membership.AddNamesResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.False(t, response.Success)
	require.NotNil(t, response.Details)
	assert.Empty(t, response.Details.InvalidFormat)
	assert.Equal(t, []string{"unregistered.eth"}, response.Details.NotInDatabase)
	assert.Equal(t, int64(0), countMembers(t, db, "pioneers"))
}

func TestAddNames_NonCanonicalInputRejected(t *testing.T) {
	// Given: a registered name submitted in uppercase
	router, db := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")
	testutil.SeedNameDirectory(t, db, "vitalik.eth")

	// When: the non-canonical form is submitted
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/clubs/pioneers/members",
		Body:   membership.NamesRequest{Names: []string{"Vitalik.eth"}},
	})

	// Then: rejected with guidance instead of silent rewriting
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var response membership.AddNamesResponse
	testutil.ParseResponse(t, recorder, &response)
	require.NotNil(t, response.Details)
	require.Len(t, response.Details.InvalidFormat, 1)
	assert.Contains(t, response.Details.InvalidFormat[0].Reason, "vitalik.eth")
	assert.Equal(t, int64(0), countMembers(t, db, "pioneers"))
}

func TestAddNames_BatchTooLarge(t *testing.T) {
	// Given: a batch one past the cap
	router, db := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")

	names := make([]string, membership.MaxBatchSize+1)
	for i := range names {
		names[i] = fmt.Sprintf("name%d.eth", i)
	}

	// When: the oversized batch is submitted
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/clubs/pioneers/members",
		Body:   membership.NamesRequest{Names: names},
	})

	// Then: rejected outright, distinguishable from per-name validation
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "MEMBER-001", errorResponse.Code)
	assert.Equal(t, int64(0), countMembers(t, db, "pioneers"))
}

func TestAddNames_ClubNotFound(t *testing.T) {
	// Given: no club
	router, _ := setupTestEnvironment(t)

	// When: names are added to a missing club
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/clubs/ghost/members",
		Body:   membership.NamesRequest{Names: []string{"vitalik.eth"}},
	})

	// Then: 404
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "CLUB-001", errorResponse.Code)
}

func TestRemoveNames_Success(t *testing.T) {
	// Given: a club with one member
	router, db := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")
	require.NoError(t, db.Create(&model.ClubMember{ClubName: "pioneers", Name: "vitalik.eth"}).Error)

	// When: the member is removed with different casing
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/api/v1/clubs/pioneers/members",
		Body:   membership.NamesRequest{Names: []string{"VITALIK.eth"}},
	})

	// Then: the row is gone
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response membership.RemoveNamesResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.True(t, response.Success)
	assert.Equal(t, int64(1), response.Removed)
	assert.Equal(t, int64(0), countMembers(t, db, "pioneers"))
}

func TestRemoveNames_IdempotentRemove(t *testing.T) {
	// Given: a club with no members
	router, db := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")

	// When: a non-member name is removed
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/api/v1/clubs/pioneers/members",
		Body:   membership.NamesRequest{Names: []string{"vitalik.eth"}},
	})

	// Then: removed=0 and no error
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response membership.RemoveNamesResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.True(t, response.Success)
	assert.Equal(t, int64(0), response.Removed)
}

func TestScan_ShortNamePolicy(t *testing.T) {
	// Given: a club holding a normalizable but policy-too-short name
	router, db := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")
	require.NoError(t, db.Create(&model.ClubMember{ClubName: "pioneers", Name: "ab.eth"}).Error)
	require.NoError(t, db.Create(&model.ClubMember{ClubName: "pioneers", Name: "abc.eth"}).Error)

	// When: the club is scanned
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/clubs/pioneers/invalid-names",
	})

	// Then: only the short label is flagged, with a length-based reason
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response membership.ScanResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, 2, response.TotalScanned)
	assert.Equal(t, 1, response.InvalidCount)
	require.Len(t, response.InvalidNames, 1)
	assert.Equal(t, "ab.eth", response.InvalidNames[0].Name)
	assert.Contains(t, response.InvalidNames[0].Reason, "shorter")
}

func TestScan_FlagsUnnormalizableName(t *testing.T) {
	// Given: a stored name that no longer normalizes (registry drift)
	router, db := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")
	require.NoError(t, db.Create(&model.ClubMember{ClubName: "pioneers", Name: "bad name.eth"}).Error)

	// When: the club is scanned
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/clubs/pioneers/invalid-names",
	})

	// Then: the name is reported as a normalization failure
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response membership.ScanResponse
	testutil.ParseResponse(t, recorder, &response)
	require.Len(t, response.InvalidNames, 1)
	assert.Equal(t, "bad name.eth", response.InvalidNames[0].Name)
	assert.Contains(t, response.InvalidNames[0].Reason, "normalization")
}

func TestScan_NonMutation(t *testing.T) {
	// Given: a club with a mix of valid and invalid members
	router, db := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")
	require.NoError(t, db.Create(&model.ClubMember{ClubName: "pioneers", Name: "ab.eth"}).Error)
	require.NoError(t, db.Create(&model.ClubMember{ClubName: "pioneers", Name: "vitalik.eth"}).Error)

	var before []model.ClubMember
	require.NoError(t, db.Order("id ASC").Find(&before).Error)

	// When: the scan runs twice
	first := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/clubs/pioneers/invalid-names",
	})
	second := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/clubs/pioneers/invalid-names",
	})

	// Then: nothing changed
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())

	var after []model.ClubMember
	require.NoError(t, db.Order("id ASC").Find(&after).Error)
	assert.Equal(t, before, after)
}

func TestListMembers_Pagination(t *testing.T) {
	// Given: a club with three members
	router, db := setupTestEnvironment(t)
	testutil.SeedClub(t, db, "pioneers")
	for _, name := range []string{"alpha.eth", "bravo.eth", "charlie.eth"} {
		require.NoError(t, db.Create(&model.ClubMember{ClubName: "pioneers", Name: name}).Error)
	}

	// When: the second page of size 2 is requested
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/clubs/pioneers/members?page=2&limit=2",
	})

	// Then: one member remains on the page, total covers all three
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response membership.ListMembersResponse
	testutil.ParseResponse(t, recorder, &response)
	require.Len(t, response.Members, 1)
	assert.Equal(t, "charlie.eth", response.Members[0].Name)
	assert.Equal(t, int64(3), response.Pagination.Total)
	assert.Equal(t, 2, response.Pagination.TotalPages)
}
