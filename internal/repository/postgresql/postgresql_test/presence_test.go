package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/magiclogon/attendance-backend-go/internal/domain/presence"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/database"
	"github.com/magiclogon/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// testDatabase connects lazily so the suite is skipped, not failed, on
// machines without a test database.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	if testDB != nil {
		return testDB
	}

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	return testDB
}

func truncateTables(t *testing.T, db *database.DB) {
	ctx := context.Background()
	for _, table := range []string{"presences", "schedules", "employees", "organizations"} {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func seedEmployee(t *testing.T, db *database.DB) (organizationID, employeeID string) {
	ctx := context.Background()
	organizationID = uuid.NewString()
	employeeID = uuid.NewString()

	_, err := db.Exec(ctx, `
		INSERT INTO organizations (id, name, camera_code)
		VALUES ($1, $2, $3)
	`, organizationID, "Test Org", "CAM-"+organizationID[:8])
	require.NoError(t, err)

	_, err = db.Exec(ctx, `
		INSERT INTO employees (id, organization_id, full_name, position_title, has_registered_face, is_active)
		VALUES ($1, $2, $3, $4, TRUE, TRUE)
	`, employeeID, organizationID, "Ana Pop", "Engineer")
	require.NoError(t, err)

	return organizationID, employeeID
}

func TestPresenceRepository_CreateIfAbsent(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	organizationID, employeeID := seedEmployee(t, db)

	repo := postgresql.NewPresenceRepository(db)
	ctx := context.Background()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	rec, created, err := repo.CreateIfAbsent(ctx, presence.NewDayRecord(employeeID, organizationID, day, false))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, presence.StatusNotOpened, rec.Status)

	// Second insert for the same (employee, date) loses and gets the
	// existing row back.
	again, created, err := repo.CreateIfAbsent(ctx, presence.NewDayRecord(employeeID, organizationID, day, true))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, rec.ID, again.ID)
	assert.Equal(t, presence.StatusNotOpened, again.Status)
}

func TestPresenceRepository_UpdateIfStatus(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	organizationID, employeeID := seedEmployee(t, db)

	repo := postgresql.NewPresenceRepository(db)
	ctx := context.Background()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	rec, _, err := repo.CreateIfAbsent(ctx, presence.NewDayRecord(employeeID, organizationID, day, false))
	require.NoError(t, err)

	checkin := day.Add(9 * time.Hour)
	update := rec
	update.Status = presence.StatusPresent
	update.CheckinTime = &checkin

	applied, err := repo.UpdateIfStatus(ctx, update, presence.StatusNotOpened)
	require.NoError(t, err)
	assert.True(t, applied)

	// A stale writer that still believes the record is NOT_OPENED must lose.
	stale := rec
	stale.Status = presence.StatusAbsent
	applied, err = repo.UpdateIfStatus(ctx, stale, presence.StatusNotOpened)
	require.NoError(t, err)
	assert.False(t, applied)

	stored, err := repo.GetByEmployeeAndDate(ctx, employeeID, day)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, presence.StatusPresent, stored.Status)
	require.NotNil(t, stored.CheckinTime)
}

func TestPresenceRepository_ListAndCount(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	organizationID, employeeID := seedEmployee(t, db)

	repo := postgresql.NewPresenceRepository(db)
	ctx := context.Background()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	rec := presence.NewDayRecord(employeeID, organizationID, day, false)
	rec.Status = presence.StatusLate
	_, _, err := repo.CreateIfAbsent(ctx, rec)
	require.NoError(t, err)

	records, err := repo.ListByOrganizationAndDate(ctx, organizationID, day)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].EmployeeName)
	assert.Equal(t, "Ana Pop", *records[0].EmployeeName)

	count, err := repo.CountByStatus(ctx, organizationID, day,
		[]presence.Status{presence.StatusPresent, presence.StatusLate})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	missing, err := repo.GetByEmployeeAndDate(ctx, employeeID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, missing)
}
