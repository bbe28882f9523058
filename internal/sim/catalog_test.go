package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahuti/trade-engine/internal/sim"
)

func TestSearch_Deterministic(t *testing.T) {
	t.Parallel()

	first := sim.Search("playstation 5", 10)
	second := sim.Search("playstation 5", 10)

	require.Len(t, first, 10)
	assert.Equal(t, first, second)

	// Different queries produce different sets.
	other := sim.Search("steam gift card", 10)
	assert.NotEqual(t, first, other)
}

func TestSearch_ItemsAreWellFormed(t *testing.T) {
	t.Parallel()

	for _, item := range sim.Search("airpods pro", 25) {
		item := item
		require.NoError(t, item.Validate())
		assert.Positive(t, item.Price.Value)
	}
}

func TestSearch_DefaultLimit(t *testing.T) {
	t.Parallel()

	assert.Len(t, sim.Search("x", 0), 10)
}

func TestLookup_FixedDemoRecord(t *testing.T) {
	t.Parallel()

	item := sim.Lookup("12345")
	assert.Contains(t, item.Title, "iPhone 15 Pro Max")
	assert.InDelta(t, 1199.99, item.Price.Value, 0.001)
	assert.Equal(t, "USD", item.Price.Currency)

	// Browse-style ids resolve to the same record.
	assert.Equal(t, item, sim.Lookup("v1|12345|0"))
}

func TestLookup_OtherIDsGenerated(t *testing.T) {
	t.Parallel()

	item := sim.Lookup("99999")
	require.NoError(t, item.Validate())
	assert.Equal(t, "99999", item.ID)
	assert.Equal(t, item, sim.Lookup("99999"))
}

func TestDemoDashboard(t *testing.T) {
	t.Parallel()

	items := sim.DemoDashboard()
	require.NotEmpty(t, items)
	for _, item := range items {
		item := item
		require.NoError(t, item.Validate())
	}
	assert.Contains(t, items[0].Title, "iPhone 15 Pro Max")
}
