package rating

import "github.com/samber/lo"

// PackageSpec describes how a carrier wants order weight turned into
// packages: the default packaging, measurement units and the maximum weight
// a single package may carry.
type PackageSpec struct {
	MaxWeight     float64 // kilograms; zero means no limit
	WeightUnit    WeightUnit
	DimensionUnit DimensionUnit
	Dimensions    Dimensions // default packaging dimensions
	PackagingCode string
}

// shippableLines returns the order lines that contribute to the shipment.
func shippableLines(order *Order) []OrderLine {
	return lo.Filter(order.Lines, func(l OrderLine, _ int) bool {
		return !l.IsDelivery && !l.IsSection
	})
}

// ShippableTotals computes the total weight (kilograms) and quantity across
// the order's non-delivery, non-section lines.
func ShippableTotals(order *Order) (weight, qty float64) {
	for _, line := range shippableLines(order) {
		qty += line.Qty
		weight += line.Weight * line.Qty
	}
	return weight, qty
}

// SplitWeight partitions a total weight into package weights no heavier than
// max: full packages first, then a remainder package unless it would be
// empty. A zero max yields a single package with the whole weight.
func SplitWeight(total, max float64) []float64 {
	if max <= 0 || total <= max {
		return []float64{total}
	}
	full := int(total / max)
	remainder := total - float64(full)*max
	weights := make([]float64, 0, full+1)
	for i := 0; i < full; i++ {
		weights = append(weights, max)
	}
	if remainder > 0 {
		weights = append(weights, remainder)
	}
	return weights
}

// BuildOrderPackages turns an order's shippable lines into packages per the
// spec, converting each package weight from kilograms into the carrier's
// weight unit. A unit conversion failure is a configuration error.
func BuildOrderPackages(order *Order, spec PackageSpec) ([]Package, error) {
	total, _ := ShippableTotals(order)
	weights := SplitWeight(total, spec.MaxWeight)

	packages := make([]Package, 0, len(weights))
	for _, w := range weights {
		converted, err := ConvertWeight(w, WeightKGS, spec.WeightUnit)
		if err != nil {
			return nil, err
		}
		packages = append(packages, Package{
			Weight:        converted,
			WeightUnit:    spec.WeightUnit,
			Dimensions:    spec.Dimensions,
			DimensionUnit: spec.DimensionUnit,
			PackagingCode: spec.PackagingCode,
		})
	}
	return packages, nil
}
