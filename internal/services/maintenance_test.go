package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacon-dev/beacon/internal/apperrors"
	"github.com/beacon-dev/beacon/internal/models"
)

func TestMaintenanceServiceCreate(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewMaintenanceService(gdb, testLogger())
	owner := seedUser(t, gdb)
	org := seedOrg(t, gdb, owner.ID, models.PlanPro)
	page := seedPage(t, gdb, org.ID)
	ctx := context.Background()

	start := time.Now().Add(24 * time.Hour)
	end := start.Add(2 * time.Hour)

	t.Run("links components on the same page", func(t *testing.T) {
		first := seedComponent(t, gdb, page.ID)
		second := seedComponent(t, gdb, page.ID)

		window, err := svc.Create(ctx, page.ID, owner.ID, CreateMaintenanceInput{
			Title:                "Network upgrade",
			ScheduledStart:       start,
			ScheduledEnd:         end,
			AffectedComponentIDs: []uint{first.ID, second.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, models.MaintenanceScheduled, window.Status)

		assert.EqualValues(t, 2, unscopedCount(t, gdb, &models.MaintenanceComponent{}, "maintenance_window_id = ?", window.ID))
	})

	t.Run("rejects components from another page with every offending id", func(t *testing.T) {
		otherPage := seedPage(t, gdb, org.ID)
		foreign := seedComponent(t, gdb, otherPage.ID)
		own := seedComponent(t, gdb, page.ID)

		_, err := svc.Create(ctx, page.ID, owner.ID, CreateMaintenanceInput{
			Title:                "mixed bag",
			ScheduledStart:       start,
			ScheduledEnd:         end,
			AffectedComponentIDs: []uint{own.ID, foreign.ID, 999999},
		})
		require.Error(t, err)

		var referential *apperrors.ReferentialViolationError
		require.ErrorAs(t, err, &referential)
		assert.Contains(t, err.Error(), fmt.Sprint(foreign.ID))
		assert.Contains(t, err.Error(), "999999")

		assert.Zero(t, unscopedCount(t, gdb, &models.MaintenanceWindow{}, "title = ?", "mixed bag"))
		assert.Zero(t, unscopedCount(t, gdb, &models.MaintenanceComponent{}, "component_id = ?", own.ID))
	})

	t.Run("unknown page", func(t *testing.T) {
		_, err := svc.Create(ctx, 999999, owner.ID, CreateMaintenanceInput{
			Title:          "orphan",
			ScheduledStart: start,
			ScheduledEnd:   end,
		})

		var notFound *apperrors.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "status page", notFound.Entity)
	})
}

func TestMaintenanceServiceLifecycle(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewMaintenanceService(gdb, testLogger())
	owner := seedUser(t, gdb)
	org := seedOrg(t, gdb, owner.ID, models.PlanPro)
	page := seedPage(t, gdb, org.ID)
	ctx := context.Background()

	window, err := svc.Create(ctx, page.ID, owner.ID, CreateMaintenanceInput{
		Title:          "DB upgrade",
		ScheduledStart: time.Now().Add(time.Hour),
		ScheduledEnd:   time.Now().Add(3 * time.Hour),
	})
	require.NoError(t, err)

	startedAt := time.Date(2026, 5, 2, 1, 0, 0, 0, time.UTC)
	endedAt := time.Date(2026, 5, 2, 3, 0, 0, 0, time.UTC)

	status := models.MaintenanceInProgress
	pinClock(t, startedAt)
	updated, err := svc.Update(ctx, window.ID, UpdateMaintenanceInput{Status: &status})
	require.NoError(t, err)
	require.NotNil(t, updated.ActualStart)
	assert.WithinDuration(t, startedAt, *updated.ActualStart, time.Second)
	assert.Nil(t, updated.ActualEnd)

	status = models.MaintenanceCompleted
	pinClock(t, endedAt)
	updated, err = svc.Update(ctx, window.ID, UpdateMaintenanceInput{Status: &status})
	require.NoError(t, err)
	require.NotNil(t, updated.ActualEnd)
	assert.WithinDuration(t, endedAt, *updated.ActualEnd, time.Second)

	status = models.MaintenanceScheduled
	updated, err = svc.Update(ctx, window.ID, UpdateMaintenanceInput{Status: &status})
	require.NoError(t, err)
	assert.Nil(t, updated.ActualStart)
	assert.Nil(t, updated.ActualEnd)
}

func TestMaintenanceServiceUpdate(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewMaintenanceService(gdb, testLogger())
	owner := seedUser(t, gdb)
	org := seedOrg(t, gdb, owner.ID, models.PlanPro)
	page := seedPage(t, gdb, org.ID)
	ctx := context.Background()

	t.Run("explicit actual_start wins over the derived stamp", func(t *testing.T) {
		window, err := svc.Create(ctx, page.ID, owner.ID, CreateMaintenanceInput{
			Title:          "early start",
			ScheduledStart: time.Now().Add(time.Hour),
			ScheduledEnd:   time.Now().Add(2 * time.Hour),
		})
		require.NoError(t, err)

		explicit := time.Date(2026, 5, 2, 0, 30, 0, 0, time.UTC)
		status := models.MaintenanceInProgress
		pinClock(t, time.Date(2026, 5, 2, 1, 0, 0, 0, time.UTC))

		updated, err := svc.Update(ctx, window.ID, UpdateMaintenanceInput{
			Status:      &status,
			ActualStart: &explicit,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.ActualStart)
		assert.WithinDuration(t, explicit, *updated.ActualStart, time.Second)
	})

	t.Run("reset to scheduled clears timestamps despite overrides", func(t *testing.T) {
		window, err := svc.Create(ctx, page.ID, owner.ID, CreateMaintenanceInput{
			Title:          "false alarm",
			Status:         models.MaintenanceInProgress,
			ScheduledStart: time.Now().Add(time.Hour),
			ScheduledEnd:   time.Now().Add(2 * time.Hour),
		})
		require.NoError(t, err)

		explicit := time.Date(2026, 5, 2, 0, 30, 0, 0, time.UTC)
		status := models.MaintenanceScheduled

		updated, err := svc.Update(ctx, window.ID, UpdateMaintenanceInput{
			Status:      &status,
			ActualStart: &explicit,
			ActualEnd:   &explicit,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.ActualStart)
		assert.Nil(t, updated.ActualEnd)
	})

	t.Run("unknown id", func(t *testing.T) {
		title := "x"
		_, err := svc.Update(ctx, 999999, UpdateMaintenanceInput{Title: &title})

		var notFound *apperrors.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "maintenance window", notFound.Entity)
	})
}
