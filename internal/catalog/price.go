package catalog

import (
	"fmt"
	"strings"
)

// DisplayPrice formats a USD amount for rendering ("$1,234.56"). Display
// only: sorting and filtering always operate on the numeric price.
func DisplayPrice(amountUSD float64) string {
	sign := ""
	if amountUSD < 0 {
		sign = "-"
		amountUSD = -amountUSD
	}

	s := fmt.Sprintf("%.2f", amountUSD)
	whole, cents, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("$")
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteByte('.')
	b.WriteString(cents)
	return b.String()
}
