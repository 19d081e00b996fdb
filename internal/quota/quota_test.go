package quota

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacon-dev/beacon/internal/apperrors"
	"github.com/beacon-dev/beacon/internal/models"
)

func TestLimit(t *testing.T) {
	tests := []struct {
		plan     string
		resource Resource
		want     int
	}{
		{models.PlanFree, ResourceStatusPages, 1},
		{models.PlanFree, ResourceComponents, 7},
		{models.PlanFree, ResourceMembers, 7},
		{models.PlanPro, ResourceStatusPages, 3},
		{models.PlanPro, ResourceComponents, 36},
		{models.PlanPro, ResourceMembers, 35},
		{models.PlanPlus, ResourceStatusPages, 12},
		{models.PlanPlus, ResourceComponents, 60},
		{models.PlanPlus, ResourceMembers, 50},
		{models.PlanEnterprise, ResourceStatusPages, 100},
		{models.PlanEnterprise, ResourceComponents, Unlimited},
		{models.PlanEnterprise, ResourceMembers, Unlimited},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.plan, tt.resource), func(t *testing.T) {
			assert.Equal(t, tt.want, Limit(tt.plan, tt.resource))
		})
	}
}

func TestLimitUnknownPlanFallsBackToFree(t *testing.T) {
	assert.Equal(t, 1, Limit("trial", ResourceStatusPages))
	assert.Equal(t, 7, Limit("", ResourceMembers))
}

func TestCheck(t *testing.T) {
	t.Run("allows below the limit", func(t *testing.T) {
		assert.NoError(t, Check(models.PlanFree, ResourceStatusPages, 0))
		assert.NoError(t, Check(models.PlanPro, ResourceMembers, 34))
	})

	t.Run("rejects at the limit", func(t *testing.T) {
		err := Check(models.PlanFree, ResourceStatusPages, 1)
		require.Error(t, err)

		var quotaErr *apperrors.QuotaExceededError
		require.True(t, errors.As(err, &quotaErr))
		assert.Equal(t, models.PlanFree, quotaErr.PlanTier)
		assert.Equal(t, 1, quotaErr.Limit)
		assert.Contains(t, err.Error(), "free")
		assert.Contains(t, err.Error(), "1")
	})

	t.Run("rejects past the limit", func(t *testing.T) {
		err := Check(models.PlanPlus, ResourceComponents, 61)
		require.Error(t, err)
	})

	t.Run("enterprise never rejects unlimited resources", func(t *testing.T) {
		assert.NoError(t, Check(models.PlanEnterprise, ResourceComponents, 1_000_000))
		assert.NoError(t, Check(models.PlanEnterprise, ResourceMembers, 1_000_000))
	})

	t.Run("every plan and resource rejects exactly at its limit", func(t *testing.T) {
		for plan, limits := range planLimits {
			for resource, limit := range limits {
				if limit == Unlimited {
					continue
				}
				assert.NoError(t, Check(plan, resource, int64(limit-1)), "%s/%s", plan, resource)
				assert.Error(t, Check(plan, resource, int64(limit)), "%s/%s", plan, resource)
			}
		}
	})
}
