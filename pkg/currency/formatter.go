package currency

import (
	"fmt"
	"math"
)

// FormatBDT renders an amount in taka with lakh/crore digit grouping: the
// last three digits form a group, every group above that has two digits
// (12,34,567).
func FormatBDT(amount float64) string {
	rounded := math.Round(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	intStr := fmt.Sprintf("%.0f", rounded)
	formatted := addLakhSeparators(intStr, ",")

	result := "BDT " + formatted
	if negative {
		result = "-" + result
	}

	return result
}

func addLakhSeparators(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	head := s[:n-3]
	tail := s[n-3:]

	out := ""
	for len(head) > 2 {
		out = sep + head[len(head)-2:] + out
		head = head[:len(head)-2]
	}
	return head + out + sep + tail
}
