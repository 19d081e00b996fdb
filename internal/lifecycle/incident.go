// Package lifecycle derives the timestamp side effects of status
// transitions. Transition functions are pure: they take the old and new
// status and return the column patch the caller merges into its update.
package lifecycle

import (
	"time"

	"github.com/beacon-dev/beacon/internal/models"
)

// IncidentTransition returns the resolved_at patch for an incident status
// change. Any transition between the four states is legal; the only side
// effect is stamping resolved_at on entry to resolved and clearing it on
// exit. A resolved -> resolved update keeps the existing timestamp.
func IncidentTransition(oldStatus, newStatus string, now time.Time) map[string]interface{} {
	patch := map[string]interface{}{}

	entering := newStatus == models.IncidentResolved && oldStatus != models.IncidentResolved
	leaving := newStatus != models.IncidentResolved && oldStatus == models.IncidentResolved

	if entering {
		patch["resolved_at"] = now
	}

	if leaving {
		patch["resolved_at"] = nil
	}

	return patch
}
