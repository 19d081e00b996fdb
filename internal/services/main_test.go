package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beacon-dev/beacon/db"
	"github.com/beacon-dev/beacon/internal/models"
)

var seq atomic.Uint64

func nextSeq() uint64 { return seq.Add(1) }

// newTestDB opens an isolated in-memory database with foreign keys
// enforced, mirroring the production schema via the shared migration.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))

	return gdb
}

func testLogger() *zap.Logger { return zap.NewNop() }

// pinClock fixes the service clock for the duration of a test.
func pinClock(t *testing.T, at time.Time) {
	t.Helper()

	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func seedUser(t *testing.T, gdb *gorm.DB) models.User {
	t.Helper()

	user := models.User{
		Name:         "Test User",
		Email:        fmt.Sprintf("user%d@example.com", nextSeq()),
		PasswordHash: "x",
		Role:         models.RoleUser,
	}
	require.NoError(t, gdb.Create(&user).Error)

	return user
}

func seedOrg(t *testing.T, gdb *gorm.DB, ownerID uint, planTier string) models.Organization {
	t.Helper()

	org := models.Organization{
		Name:     "Acme",
		Slug:     fmt.Sprintf("acme-%d", nextSeq()),
		PlanTier: planTier,
		OwnerID:  ownerID,
	}
	require.NoError(t, gdb.Create(&org).Error)

	return org
}

func seedPage(t *testing.T, gdb *gorm.DB, orgID uint) models.StatusPage {
	t.Helper()

	page := models.StatusPage{
		OrganizationID: orgID,
		Name:           "Main",
		Slug:           fmt.Sprintf("main-%d", nextSeq()),
		IsPublic:       true,
	}
	require.NoError(t, gdb.Create(&page).Error)

	return page
}

func seedComponent(t *testing.T, gdb *gorm.DB, pageID uint) models.Component {
	t.Helper()

	component := models.Component{
		StatusPageID: pageID,
		Name:         fmt.Sprintf("api-%d", nextSeq()),
		Status:       models.ComponentOperational,
	}
	require.NoError(t, gdb.Create(&component).Error)

	return component
}

func unscopedCount(t *testing.T, gdb *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, gdb.Unscoped().Model(model).Where(query, args...).Count(&count).Error)

	return count
}
