package output

import (
	"strings"

	"github.com/fatih/color"
)

const ruleWidth = 60

var ruleColor = color.New(color.FgCyan)

// Rule returns a horizontal line placed under section titles.
func Rule() string {
	return ruleColor.Sprint(strings.Repeat("─", ruleWidth))
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
