package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEffectiveThreshold_InventoryOverrideWins(t *testing.T) {
	row := StockLowRow{InventoryOptimal: f64(20), MaterialOptimal: f64(50)}
	got, ok := row.EffectiveThreshold()
	require.True(t, ok)
	assert.Equal(t, 20.0, got)
}

func TestEffectiveThreshold_FallsBackToMaterialDefault(t *testing.T) {
	row := StockLowRow{MaterialOptimal: f64(50)}
	got, ok := row.EffectiveThreshold()
	require.True(t, ok)
	assert.Equal(t, 50.0, got)
}

func TestEffectiveThreshold_NotDerivable(t *testing.T) {
	_, ok := StockLowRow{}.EffectiveThreshold()
	assert.False(t, ok)

	_, ok = StockLowRow{InventoryOptimal: f64(0)}.EffectiveThreshold()
	assert.False(t, ok)

	_, ok = StockLowRow{MaterialOptimal: f64(-1)}.EffectiveThreshold()
	assert.False(t, ok)
}

func TestRankStockLow_SelectsOnlyBelowThreshold(t *testing.T) {
	rows := []StockLowRow{
		{MaterialID: "flour", Quantity: 5, MaterialOptimal: f64(20)},   // 0.25, candidate
		{MaterialID: "sugar", Quantity: 30, MaterialOptimal: f64(10)},  // above, not a candidate
		{MaterialID: "salt", Quantity: 10, MaterialOptimal: f64(10)},   // equal, not strictly below
		{MaterialID: "yeast", Quantity: 3, InventoryOptimal: f64(100)}, // 0.03, candidate
		{MaterialID: "oil", Quantity: 1},                               // no threshold, skipped
	}

	got := RankStockLow(rows, 50)
	require.Len(t, got, 2)
	assert.Equal(t, "yeast", got[0].MaterialID)
	assert.Equal(t, "flour", got[1].MaterialID)
	assert.Equal(t, 20.0, got[1].Threshold)
}

func TestRankStockLow_OrdersByRatioThenQuantity(t *testing.T) {
	rows := []StockLowRow{
		{MaterialID: "a", Quantity: 5, MaterialOptimal: f64(10)},  // ratio 0.5
		{MaterialID: "b", Quantity: 2, MaterialOptimal: f64(10)},  // ratio 0.2
		{MaterialID: "c", Quantity: 10, MaterialOptimal: f64(50)}, // ratio 0.2, larger quantity
	}

	got := RankStockLow(rows, 50)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].MaterialID) // same ratio as c but smaller quantity
	assert.Equal(t, "c", got[1].MaterialID)
	assert.Equal(t, "a", got[2].MaterialID)
}

func TestRankStockLow_CapsRows(t *testing.T) {
	rows := []StockLowRow{
		{MaterialID: "a", Quantity: 1, MaterialOptimal: f64(10)},
		{MaterialID: "b", Quantity: 2, MaterialOptimal: f64(10)},
		{MaterialID: "c", Quantity: 3, MaterialOptimal: f64(10)},
	}

	got := RankStockLow(rows, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].MaterialID)

	// maxRows below 1 still yields one row
	got = RankStockLow(rows, 0)
	assert.Len(t, got, 1)
}

func TestRankExpireSoon_HalfOpenWindow(t *testing.T) {
	today := day(2026, time.March, 10)
	rows := []ExpireSoonRow{
		{MaterialID: "m1", LotCode: "L1", Quantity: 5, ExpirationDate: day(2026, time.March, 10)}, // today, included
		{MaterialID: "m2", LotCode: "L2", Quantity: 5, ExpirationDate: day(2026, time.March, 13)}, // exactly 3 days out, included
		{MaterialID: "m3", LotCode: "L3", Quantity: 5, ExpirationDate: day(2026, time.March, 14)}, // 4 days out, excluded
		{MaterialID: "m4", LotCode: "L4", Quantity: 5, ExpirationDate: day(2026, time.March, 9)},  // already expired, excluded
	}

	got := RankExpireSoon(rows, today, 3, 50)
	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].MaterialID)
	assert.Equal(t, 0, got[0].DaysLeft)
	assert.Equal(t, "m2", got[1].MaterialID)
	assert.Equal(t, 3, got[1].DaysLeft)
}

func TestRankExpireSoon_SkipsEmptyLots(t *testing.T) {
	today := day(2026, time.March, 10)
	rows := []ExpireSoonRow{
		{MaterialID: "m1", Quantity: 0, ExpirationDate: day(2026, time.March, 11)},
		{MaterialID: "m2", Quantity: -1, ExpirationDate: day(2026, time.March, 11)},
		{MaterialID: "m3", Quantity: 0.5, ExpirationDate: day(2026, time.March, 11)},
	}

	got := RankExpireSoon(rows, today, 3, 50)
	require.Len(t, got, 1)
	assert.Equal(t, "m3", got[0].MaterialID)
}

func TestRankExpireSoon_OrdersByUrgency(t *testing.T) {
	today := day(2026, time.March, 10)
	rows := []ExpireSoonRow{
		{MaterialID: "m1", LotCode: "L1", Quantity: 1, ExpirationDate: day(2026, time.March, 12)},
		{MaterialID: "m2", LotCode: "L2", Quantity: 1, ExpirationDate: day(2026, time.March, 10)},
		{MaterialID: "m3", LotCode: "L3", Quantity: 1, ExpirationDate: day(2026, time.March, 11)},
	}

	got := RankExpireSoon(rows, today, 3, 50)
	require.Len(t, got, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{got[0].DaysLeft, got[1].DaysLeft, got[2].DaysLeft})
	assert.Equal(t, "m2", got[0].MaterialID)
}

func TestRankExpireSoon_DaysLeftSpansDSTTransition(t *testing.T) {
	// Midnight before a spring-forward transition vs midnight two calendar
	// days later: the wall-clock gap is 47h, but DaysLeft must still be 2
	beforeShift := time.FixedZone("STD", -5*3600)
	afterShift := time.FixedZone("DST", -4*3600)

	today := time.Date(2026, time.March, 7, 0, 0, 0, 0, beforeShift)
	rows := []ExpireSoonRow{
		{MaterialID: "m1", Quantity: 1, ExpirationDate: time.Date(2026, time.March, 9, 0, 0, 0, 0, afterShift)},
	}

	got := RankExpireSoon(rows, today, 3, 50)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].DaysLeft)
}

func TestRankExpireSoon_IgnoresTimeOfDay(t *testing.T) {
	// A scan at 23:50 must see the same window as one at midnight
	today := time.Date(2026, time.March, 10, 23, 50, 0, 0, time.UTC)
	rows := []ExpireSoonRow{
		{MaterialID: "m1", Quantity: 1, ExpirationDate: time.Date(2026, time.March, 13, 1, 0, 0, 0, time.UTC)},
	}

	got := RankExpireSoon(rows, today, 3, 50)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].DaysLeft)
}
