package evaluator

import "strconv"

// formatNumber renders a number the canonical way: integral values
// print without a decimal point ("Page 2", not "Page 2.0").
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// inspectQuoted renders a value for display inside a container, where
// strings keep their quotes.
func inspectQuoted(obj Object) string {
	if s, ok := obj.(*String); ok {
		return strconv.Quote(s.Value)
	}
	return obj.Inspect()
}
