package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/beacon-dev/beacon/internal/apperrors"
	"github.com/beacon-dev/beacon/internal/models"
)

func TestStatusPageServiceCreate(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewStatusPageService(gdb, testLogger())
	owner := seedUser(t, gdb)
	ctx := context.Background()

	t.Run("free plan allows one page and rejects the second", func(t *testing.T) {
		org := seedOrg(t, gdb, owner.ID, models.PlanFree)

		pageA, err := svc.Create(ctx, org.ID, CreateStatusPageInput{Name: "A", Slug: "page-a"})
		require.NoError(t, err)
		assert.True(t, pageA.IsPublic)

		_, err = svc.Create(ctx, org.ID, CreateStatusPageInput{Name: "B", Slug: "page-b"})
		require.Error(t, err)

		var quotaErr *apperrors.QuotaExceededError
		require.ErrorAs(t, err, &quotaErr)
		assert.Contains(t, err.Error(), "free")
		assert.Contains(t, err.Error(), "1")
	})

	t.Run("pro plan allows three pages", func(t *testing.T) {
		org := seedOrg(t, gdb, owner.ID, models.PlanPro)

		for _, slug := range []string{"pro-a", "pro-b", "pro-c"} {
			_, err := svc.Create(ctx, org.ID, CreateStatusPageInput{Name: slug, Slug: slug})
			require.NoError(t, err)
		}

		_, err := svc.Create(ctx, org.ID, CreateStatusPageInput{Name: "d", Slug: "pro-d"})
		require.Error(t, err)
	})

	t.Run("unknown organization", func(t *testing.T) {
		_, err := svc.Create(ctx, 999999, CreateStatusPageInput{Name: "X", Slug: "x"})

		var notFound *apperrors.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "organization", notFound.Entity)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		org := seedOrg(t, gdb, owner.ID, models.PlanPro)

		_, err := svc.Create(ctx, org.ID, CreateStatusPageInput{Name: "A", Slug: "dup-slug"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, org.ID, CreateStatusPageInput{Name: "B", Slug: "dup-slug"})

		var conflict *apperrors.ConflictError
		require.ErrorAs(t, err, &conflict)
	})
}

func TestStatusPageServiceUpdate(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewStatusPageService(gdb, testLogger())
	owner := seedUser(t, gdb)
	org := seedOrg(t, gdb, owner.ID, models.PlanPro)
	ctx := context.Background()

	t.Run("sparse patch leaves absent fields alone", func(t *testing.T) {
		page := seedPage(t, gdb, org.ID)

		name := "Renamed"
		updated, err := svc.Update(ctx, page.ID, UpdateStatusPageInput{Name: &name})
		require.NoError(t, err)

		assert.Equal(t, "Renamed", updated.Name)
		assert.Equal(t, page.Slug, updated.Slug)
		assert.Equal(t, page.IsPublic, updated.IsPublic)
	})

	t.Run("empty patch still bumps updated_at", func(t *testing.T) {
		page := seedPage(t, gdb, org.ID)
		pinClock(t, time.Now().Add(time.Hour))

		updated, err := svc.Update(ctx, page.ID, UpdateStatusPageInput{})
		require.NoError(t, err)

		assert.True(t, updated.UpdatedAt.After(page.UpdatedAt))
	})

	t.Run("unknown id", func(t *testing.T) {
		name := "x"
		_, err := svc.Update(ctx, 999999, UpdateStatusPageInput{Name: &name})

		var notFound *apperrors.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "status page", notFound.Entity)
	})
}

type pageTree struct {
	page      models.StatusPage
	component models.Component
	incident  models.Incident
	window    models.MaintenanceWindow
}

// buildTree populates a page with a component, an incident carrying one
// update and one affected-component link, and a maintenance window with
// one link.
func buildTree(t *testing.T, gdb *gorm.DB, orgID, userID uint) pageTree {
	t.Helper()

	page := seedPage(t, gdb, orgID)
	component := seedComponent(t, gdb, page.ID)

	incident := models.Incident{
		StatusPageID: page.ID,
		Title:        "API degraded",
		Status:       models.IncidentInvestigating,
		CreatedByID:  userID,
	}
	require.NoError(t, gdb.Create(&incident).Error)
	require.NoError(t, gdb.Create(&models.IncidentUpdate{
		IncidentID:  incident.ID,
		Title:       "Looking into it",
		Status:      models.IncidentInvestigating,
		CreatedByID: userID,
	}).Error)
	require.NoError(t, gdb.Create(&models.IncidentComponent{
		IncidentID:  incident.ID,
		ComponentID: component.ID,
	}).Error)

	window := models.MaintenanceWindow{
		StatusPageID:   page.ID,
		Title:          "DB upgrade",
		Status:         models.MaintenanceScheduled,
		ScheduledStart: time.Now().Add(time.Hour),
		ScheduledEnd:   time.Now().Add(2 * time.Hour),
		CreatedByID:    userID,
	}
	require.NoError(t, gdb.Create(&window).Error)
	require.NoError(t, gdb.Create(&models.MaintenanceComponent{
		MaintenanceWindowID: window.ID,
		ComponentID:         component.ID,
	}).Error)

	return pageTree{page: page, component: component, incident: incident, window: window}
}

func TestStatusPageServiceDelete(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewStatusPageService(gdb, testLogger())
	owner := seedUser(t, gdb)
	org := seedOrg(t, gdb, owner.ID, models.PlanPro)
	ctx := context.Background()

	t.Run("removes the whole tree and spares siblings", func(t *testing.T) {
		doomed := buildTree(t, gdb, org.ID, owner.ID)
		sibling := buildTree(t, gdb, org.ID, owner.ID)

		deleted, err := svc.Delete(ctx, doomed.page.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		assert.Zero(t, unscopedCount(t, gdb, &models.StatusPage{}, "id = ?", doomed.page.ID))
		assert.Zero(t, unscopedCount(t, gdb, &models.Component{}, "status_page_id = ?", doomed.page.ID))
		assert.Zero(t, unscopedCount(t, gdb, &models.Incident{}, "status_page_id = ?", doomed.page.ID))
		assert.Zero(t, unscopedCount(t, gdb, &models.MaintenanceWindow{}, "status_page_id = ?", doomed.page.ID))
		assert.Zero(t, unscopedCount(t, gdb, &models.IncidentUpdate{}, "incident_id = ?", doomed.incident.ID))
		assert.Zero(t, unscopedCount(t, gdb, &models.IncidentComponent{}, "incident_id = ?", doomed.incident.ID))
		assert.Zero(t, unscopedCount(t, gdb, &models.MaintenanceComponent{}, "maintenance_window_id = ?", doomed.window.ID))

		assert.EqualValues(t, 1, unscopedCount(t, gdb, &models.StatusPage{}, "id = ?", sibling.page.ID))
		assert.EqualValues(t, 1, unscopedCount(t, gdb, &models.Component{}, "status_page_id = ?", sibling.page.ID))
		assert.EqualValues(t, 1, unscopedCount(t, gdb, &models.Incident{}, "status_page_id = ?", sibling.page.ID))
		assert.EqualValues(t, 1, unscopedCount(t, gdb, &models.MaintenanceWindow{}, "status_page_id = ?", sibling.page.ID))
		assert.EqualValues(t, 1, unscopedCount(t, gdb, &models.IncidentUpdate{}, "incident_id = ?", sibling.incident.ID))
		assert.EqualValues(t, 1, unscopedCount(t, gdb, &models.IncidentComponent{}, "incident_id = ?", sibling.incident.ID))
		assert.EqualValues(t, 1, unscopedCount(t, gdb, &models.MaintenanceComponent{}, "maintenance_window_id = ?", sibling.window.ID))
	})

	t.Run("unknown id is a quiet no-op", func(t *testing.T) {
		deleted, err := svc.Delete(ctx, 999999)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestStatusPageServicePublicView(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewStatusPageService(gdb, testLogger())
	owner := seedUser(t, gdb)
	org := seedOrg(t, gdb, owner.ID, models.PlanPro)
	ctx := context.Background()

	t.Run("returns components in display order", func(t *testing.T) {
		page := seedPage(t, gdb, org.ID)

		second := models.Component{StatusPageID: page.ID, Name: "web", Status: models.ComponentOperational, Position: 2}
		first := models.Component{StatusPageID: page.ID, Name: "api", Status: models.ComponentOperational, Position: 1}
		require.NoError(t, gdb.Create(&second).Error)
		require.NoError(t, gdb.Create(&first).Error)

		view, err := svc.GetPublicView(ctx, page.Slug)
		require.NoError(t, err)
		require.Len(t, view.Components, 2)
		assert.Equal(t, "api", view.Components[0].Name)
		assert.Equal(t, "web", view.Components[1].Name)
	})

	t.Run("private pages are not served", func(t *testing.T) {
		page := models.StatusPage{
			OrganizationID: org.ID,
			Name:           "Internal",
			Slug:           "internal-only",
			IsPublic:       false,
		}
		require.NoError(t, gdb.Create(&page).Error)

		_, err := svc.GetPublicView(ctx, "internal-only")
		require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
