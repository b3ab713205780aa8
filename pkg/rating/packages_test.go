package rating_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/rating/pkg/rating"
)

func TestSplitWeight_NoLimit(t *testing.T) {
	assert.Equal(t, []float64{125}, rating.SplitWeight(125, 0))
}

func TestSplitWeight_UnderLimit(t *testing.T) {
	assert.Equal(t, []float64{30}, rating.SplitWeight(30, 50))
}

func TestSplitWeight_FullPlusRemainder(t *testing.T) {
	assert.Equal(t, []float64{50, 50, 25}, rating.SplitWeight(125, 50))
}

func TestSplitWeight_ExactMultiple(t *testing.T) {
	// No empty remainder package.
	assert.Equal(t, []float64{50, 50}, rating.SplitWeight(100, 50))
}

func TestSplitWeight_AtLimit(t *testing.T) {
	assert.Equal(t, []float64{50}, rating.SplitWeight(50, 50))
}

func TestShippableTotals(t *testing.T) {
	order := &rating.Order{
		Lines: []rating.OrderLine{
			{ProductName: "Desk", Qty: 2, Weight: 10},
			{ProductName: "Chair", Qty: 3, Weight: 4},
			{ProductName: "Shipping", Qty: 1, Weight: 0, IsDelivery: true},
			{ProductName: "Furniture", IsSection: true},
		},
	}

	weight, qty := rating.ShippableTotals(order)
	assert.Equal(t, 32.0, weight)
	assert.Equal(t, 5.0, qty)
}

func TestShippableTotals_EmptyOrder(t *testing.T) {
	weight, qty := rating.ShippableTotals(&rating.Order{})
	assert.Zero(t, weight)
	assert.Zero(t, qty)
}

func TestBuildOrderPackages_ConvertsToCarrierUnit(t *testing.T) {
	order := &rating.Order{
		Lines: []rating.OrderLine{{ProductName: "Desk", Qty: 1, Weight: 10}},
	}

	packages, err := rating.BuildOrderPackages(order, rating.PackageSpec{
		WeightUnit:    rating.WeightLBS,
		DimensionUnit: rating.DimensionIN,
		PackagingCode: "02",
	})
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.InDelta(t, 22.0462, packages[0].Weight, 0.001)
	assert.Equal(t, rating.WeightLBS, packages[0].WeightUnit)
	assert.Equal(t, "02", packages[0].PackagingCode)
}

func TestBuildOrderPackages_SplitsOnMaxWeight(t *testing.T) {
	order := &rating.Order{
		Lines: []rating.OrderLine{{ProductName: "Bricks", Qty: 5, Weight: 25}},
	}

	packages, err := rating.BuildOrderPackages(order, rating.PackageSpec{
		MaxWeight:  50,
		WeightUnit: rating.WeightKGS,
	})
	require.NoError(t, err)
	require.Len(t, packages, 3)
	assert.Equal(t, 50.0, packages[0].Weight)
	assert.Equal(t, 50.0, packages[1].Weight)
	assert.Equal(t, 25.0, packages[2].Weight)
}

func TestBuildOrderPackages_UnknownUnit(t *testing.T) {
	order := &rating.Order{
		Lines: []rating.OrderLine{{ProductName: "Desk", Qty: 1, Weight: 10}},
	}

	_, err := rating.BuildOrderPackages(order, rating.PackageSpec{
		WeightUnit: rating.WeightUnit("STONE"),
	})
	assert.ErrorIs(t, err, rating.ErrUnknownUnit)
}
