package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
	assert.NotNil(t, VendorAPICallsTotal)
	assert.NotNil(t, VendorAPIErrorsTotal)
	assert.NotNil(t, SimulationFallbacksTotal)
	assert.NotNil(t, EbayDailyUsage)
	assert.NotNil(t, EbayDailyLimitHits)
	assert.NotNil(t, TokenRefreshesTotal)
	assert.NotNil(t, SessionsActive)
	assert.NotNil(t, SessionsExpiredTotal)
	assert.NotNil(t, DashboardDuration)
	assert.NotNil(t, DashboardDemoFallbacksTotal)
}
