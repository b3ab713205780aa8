package rating

import "fmt"

// Conversion factors to the reference unit (kilograms, centimeters).
var (
	weightToKG = map[WeightUnit]float64{
		WeightKGS: 1,
		WeightLBS: 0.45359237,
	}

	dimensionToCM = map[DimensionUnit]float64{
		DimensionCM: 1,
		DimensionIN: 2.54,
	}
)

// ConvertWeight converts a weight value between measurement units. An
// unrecognized unit is a programmer error, not a user-facing failure.
func ConvertWeight(value float64, from, to WeightUnit) (float64, error) {
	ff, ok := weightToKG[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	tf, ok := weightToKG[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
	return value * ff / tf, nil
}

// ConvertDimension converts a dimension value between measurement units.
func ConvertDimension(value float64, from, to DimensionUnit) (float64, error) {
	ff, ok := dimensionToCM[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	tf, ok := dimensionToCM[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
	return value * ff / tf, nil
}
