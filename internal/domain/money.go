package domain

import "strconv"

// FormatAmount groups thousands with plain spaces, the way the app renders
// prices ("1 500"). Amounts are whole CFA, no minor units.
func FormatAmount(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + " " + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
