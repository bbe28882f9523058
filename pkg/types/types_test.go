package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/yahuti/trade-engine/pkg/types"
)

func TestDataSource_Simulated(t *testing.T) {
	t.Parallel()

	assert.False(t, domain.SourceEbayAPI.Simulated())
	assert.False(t, domain.SourceEbayFindingAPI.Simulated())
	assert.False(t, domain.SourceG2AAPI.Simulated())
	assert.True(t, domain.SourceEbaySimulation.Simulated())
	assert.True(t, domain.SourceG2ASimulation.Simulated())
	assert.True(t, domain.SourceDemoDataset.Simulated())
}

func TestAveragePriceOf(t *testing.T) {
	t.Parallel()

	items := []domain.MarketplaceItem{
		{Price: domain.Money{Value: 10, Currency: "USD"}},
		{Price: domain.Money{Value: 20, Currency: "USD"}},
		{Price: domain.Money{Value: 30, Currency: "USD"}},
	}

	assert.InDelta(t, 20.0, domain.AveragePriceOf(items), 0.001)
	assert.Zero(t, domain.AveragePriceOf(nil))
}

func TestCategoryCounts(t *testing.T) {
	t.Parallel()

	items := []domain.MarketplaceItem{
		{Category: "Electronics"},
		{Category: "Electronics"},
		{Category: "Gaming"},
		{Category: ""},
	}

	counts := domain.CategoryCounts(items)
	assert.Equal(t, 2, counts["Electronics"])
	assert.Equal(t, 1, counts["Gaming"])
	assert.Equal(t, 1, counts["Other"])
}
