package lifecycle

import (
	"time"

	"github.com/beacon-dev/beacon/internal/models"
)

// MaintenanceOverrides carries actual timestamps the caller supplied
// explicitly in the same update. Explicit values win over derived ones,
// except on a reset to scheduled.
type MaintenanceOverrides struct {
	ActualStart *time.Time
	ActualEnd   *time.Time
}

// MaintenanceTransition returns the actual_start/actual_end patch for a
// maintenance status change:
//
//   - into in_progress: actual_start = now, unless overridden
//   - into completed or cancelled: actual_end = now, unless overridden
//   - into scheduled: both cleared, overrides ignored (hard reset)
//
// Transitions where the status does not change produce no derived patch.
func MaintenanceTransition(oldStatus, newStatus string, overrides MaintenanceOverrides, now time.Time) map[string]interface{} {
	patch := map[string]interface{}{}

	if newStatus == oldStatus {
		return patch
	}

	switch newStatus {
	case models.MaintenanceScheduled:
		patch["actual_start"] = nil
		patch["actual_end"] = nil
	case models.MaintenanceInProgress:
		if overrides.ActualStart != nil {
			patch["actual_start"] = *overrides.ActualStart
		} else {
			patch["actual_start"] = now
		}
	case models.MaintenanceCompleted, models.MaintenanceCancelled:
		if overrides.ActualEnd != nil {
			patch["actual_end"] = *overrides.ActualEnd
		} else {
			patch["actual_end"] = now
		}
	}

	return patch
}
