package style

import "strconv"

// OpacityFromPercent converts a 0-100 slider position into the decimal
// fraction stored in the document. Out-of-range input is clamped.
//
// This is the only place the percent scale exists; documents and [Resolve]
// deal in fractions.
func OpacityFromPercent(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return strconv.FormatFloat(float64(percent)/100, 'f', -1, 64)
}

// OpacityPercent is the inverse of [OpacityFromPercent], used to position
// the slider. Unset or unparsable values read as fully opaque.
func OpacityPercent(fraction string) int {
	v := parseOpacity(fraction)
	if v == nil {
		return 100
	}
	p := int(*v*100 + 0.5)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
