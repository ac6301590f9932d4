package utils

import (
	"fmt"
)

// FormatAmount renders an amount in the smallest currency unit as a decimal
// string with two places, e.g. 12345 -> "123.45". Negative amounts keep the
// sign in front of the whole part.
func FormatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
