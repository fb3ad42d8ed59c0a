package util

import "time"

var cst = time.FixedZone("CST", 8*60*60)

// FormatCST renders t on the audience's wall clock, China Standard Time.
func FormatCST(t time.Time, layout string) string {
	return t.In(cst).Format(layout)
}
