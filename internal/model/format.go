package model

import "strconv"

// formatPercent renders a value the way the source dataset spells it:
// shortest representation, no trailing zeros.
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatValue is the data-attribute form of a resolved education value.
func FormatValue(v float64) string {
	return formatPercent(v)
}
