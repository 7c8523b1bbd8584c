package audit_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/enslabs/clubs-admin-api/internal/audit"
	"github.com/enslabs/clubs-admin-api/internal/model"
	"github.com/enslabs/clubs-admin-api/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupActivityEnvironment wires the activity endpoint against a seeded
// ledger. Rows are inserted directly since triggers own writes in production.
func setupActivityEnvironment(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	auditService := audit.NewAuditService(db, audit.NewAuditRepository())
	auditHandler := audit.NewAuditHandler(auditService)

	router := testutil.SetupTestRouter()
	router.Use(testutil.AsAdmin())
	router.GET("/api/v1/activity", auditHandler.Activity)

	return router, db
}

func seedLedger(t *testing.T, db *gorm.DB, entries ...*model.AuditLog) {
	t.Helper()
	for _, entry := range entries {
		require.NoError(t, db.Create(entry).Error)
	}
}

func TestActivity_GroupsMembershipWithCounterUpdate(t *testing.T) {
	// Given: a membership insert followed by its counter bump
	router, db := setupActivityEnvironment(t)
	now := time.Now().UTC().Truncate(time.Second)
	seedLedger(t, db,
		memberInsert(0, "pioneers", "vitalik.eth", now, addr(testActor)),
		clubUpdate(0, "pioneers",
			clubRow("pioneers", "", 0),
			clubRow("pioneers", "", 1),
			now.Add(5*time.Millisecond), addr(testActor)),
	)

	// When: the activity feed is requested
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/activity",
	})

	// Then: one grouped event with the counter bump nested; pagination
	// still counts both raw ledger rows
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response audit.ActivityResponse
	testutil.ParseResponse(t, recorder, &response)
	require.Len(t, response.Entries, 1)
	assert.Equal(t, model.AuditInsert, response.Entries[0].Operation)
	assert.Equal(t, testActor, response.Entries[0].Actor)
	assert.Len(t, response.Entries[0].Triggered, 1)
	assert.Equal(t, int64(2), response.Pagination.Total)
}

func TestActivity_HideSystemFilter(t *testing.T) {
	// Given: one attributed entry and one system-originated entry
	router, db := setupActivityEnvironment(t)
	now := time.Now().UTC()
	seedLedger(t, db,
		memberInsert(0, "pioneers", "vitalik.eth", now, addr(testActor)),
		memberInsert(0, "pioneers", "nick.eth", now.Add(-time.Hour), nil),
	)

	// When: system entries are hidden
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/activity?hideSystem=true",
	})

	// Then: only the attributed entry remains
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response audit.ActivityResponse
	testutil.ParseResponse(t, recorder, &response)
	require.Len(t, response.Entries, 1)
	assert.Equal(t, testActor, response.Entries[0].Actor)
}

func TestActivity_SystemActorLabel(t *testing.T) {
	// Given: an unattributed entry
	router, db := setupActivityEnvironment(t)
	seedLedger(t, db, memberInsert(0, "pioneers", "nick.eth", time.Now().UTC(), nil))

	// When: the feed is read without filters
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/activity",
	})

	// Then: the actor renders as "system"
	var response audit.ActivityResponse
	testutil.ParseResponse(t, recorder, &response)
	require.Len(t, response.Entries, 1)
	assert.Equal(t, audit.SystemActor, response.Entries[0].Actor)
}

func TestActivity_CategoryCorrelation(t *testing.T) {
	// Given: entries for two clubs, including membership rows
	router, db := setupActivityEnvironment(t)
	now := time.Now().UTC()
	seedLedger(t, db,
		memberInsert(0, "pioneers", "vitalik.eth", now, addr(testActor)),
		memberInsert(0, "legends", "nick.eth", now.Add(-time.Minute), addr(testActor)),
	)

	// When: the feed is filtered to one club
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/activity?category=pioneers",
	})

	// Then: only that club's entries are returned
	var response audit.ActivityResponse
	testutil.ParseResponse(t, recorder, &response)
	require.Len(t, response.Entries, 1)
	assert.Equal(t, "pioneers:vitalik.eth", response.Entries[0].RecordKey)
}

func TestActivity_OperationAndTableFilters(t *testing.T) {
	// Given: a mixed ledger
	router, db := setupActivityEnvironment(t)
	now := time.Now().UTC()
	seedLedger(t, db,
		memberInsert(0, "pioneers", "vitalik.eth", now, addr(testActor)),
		&model.AuditLog{
			Table:        model.AuditTableClubs,
			Operation:    model.AuditInsert,
			RecordKey:    "pioneers",
			NewData:      clubRow("pioneers", "", 0),
			ActorAddress: addr(testActor),
			CreatedAt:    now.Add(-time.Minute),
		},
	)

	// When: filtered by table
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/activity?table=clubs&operation=insert",
	})

	// Then: only the clubs insert survives
	var response audit.ActivityResponse
	testutil.ParseResponse(t, recorder, &response)
	require.Len(t, response.Entries, 1)
	assert.Equal(t, model.AuditTableClubs, response.Entries[0].Table)
}
