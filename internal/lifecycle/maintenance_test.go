package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacon-dev/beacon/internal/models"
)

func TestMaintenanceTransition(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	explicit := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("into in_progress stamps actual_start", func(t *testing.T) {
		patch := MaintenanceTransition(models.MaintenanceScheduled, models.MaintenanceInProgress, MaintenanceOverrides{}, now)
		require.Contains(t, patch, "actual_start")
		assert.Equal(t, now, patch["actual_start"])
		assert.NotContains(t, patch, "actual_end")
	})

	t.Run("explicit actual_start wins over the derived one", func(t *testing.T) {
		patch := MaintenanceTransition(models.MaintenanceScheduled, models.MaintenanceInProgress, MaintenanceOverrides{ActualStart: &explicit}, now)
		assert.Equal(t, explicit, patch["actual_start"])
	})

	t.Run("into completed stamps actual_end", func(t *testing.T) {
		patch := MaintenanceTransition(models.MaintenanceInProgress, models.MaintenanceCompleted, MaintenanceOverrides{}, now)
		assert.Equal(t, now, patch["actual_end"])
	})

	t.Run("into cancelled stamps actual_end", func(t *testing.T) {
		patch := MaintenanceTransition(models.MaintenanceScheduled, models.MaintenanceCancelled, MaintenanceOverrides{}, now)
		assert.Equal(t, now, patch["actual_end"])
	})

	t.Run("explicit actual_end wins for completed and cancelled", func(t *testing.T) {
		for _, to := range []string{models.MaintenanceCompleted, models.MaintenanceCancelled} {
			patch := MaintenanceTransition(models.MaintenanceInProgress, to, MaintenanceOverrides{ActualEnd: &explicit}, now)
			assert.Equal(t, explicit, patch["actual_end"], "to %s", to)
		}
	})

	t.Run("back to scheduled clears both even with overrides", func(t *testing.T) {
		patch := MaintenanceTransition(models.MaintenanceCompleted, models.MaintenanceScheduled, MaintenanceOverrides{ActualStart: &explicit, ActualEnd: &explicit}, now)
		require.Contains(t, patch, "actual_start")
		require.Contains(t, patch, "actual_end")
		assert.Nil(t, patch["actual_start"])
		assert.Nil(t, patch["actual_end"])
	})

	t.Run("unchanged status derives nothing", func(t *testing.T) {
		patch := MaintenanceTransition(models.MaintenanceInProgress, models.MaintenanceInProgress, MaintenanceOverrides{}, now)
		assert.Empty(t, patch)
	})
}
