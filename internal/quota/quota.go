// Package quota is the single source of plan-tier limits. Every create
// path for a quota-bound resource goes through Check so limits cannot
// drift between handlers.
package quota

import (
	"github.com/beacon-dev/beacon/internal/apperrors"
	"github.com/beacon-dev/beacon/internal/models"
)

type Resource string

const (
	ResourceStatusPages Resource = "status pages"
	ResourceComponents  Resource = "components"
	ResourceMembers     Resource = "members"
)

// Unlimited disables quota enforcement for a resource.
const Unlimited = -1

var planLimits = map[string]map[Resource]int{
	models.PlanFree: {
		ResourceStatusPages: 1,
		ResourceComponents:  7,
		ResourceMembers:     7,
	},
	models.PlanPro: {
		ResourceStatusPages: 3,
		ResourceComponents:  36,
		ResourceMembers:     35,
	},
	models.PlanPlus: {
		ResourceStatusPages: 12,
		ResourceComponents:  60,
		ResourceMembers:     50,
	},
	models.PlanEnterprise: {
		ResourceStatusPages: 100,
		ResourceComponents:  Unlimited,
		ResourceMembers:     Unlimited,
	},
}

// Limit returns the maximum count of resource for the given plan tier, or
// Unlimited. Unknown tiers fall back to the free plan.
func Limit(planTier string, resource Resource) int {
	limits, ok := planLimits[planTier]
	if !ok {
		limits = planLimits[models.PlanFree]
	}
	return limits[resource]
}

// Check admits or rejects creating one more resource under a parent that
// currently holds current of them.
func Check(planTier string, resource Resource, current int64) error {
	limit := Limit(planTier, resource)

	if limit == Unlimited {
		return nil
	}

	if current >= int64(limit) {
		return &apperrors.QuotaExceededError{
			PlanTier: planTier,
			Resource: string(resource),
			Limit:    limit,
		}
	}

	return nil
}
