package engine

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatPrice renders a price with es-AR thousands separators, e.g. 8500 -> "8.500".
// humanize.Comma stays on int64, so every accepted amount renders exactly.
func FormatPrice(price int64) string {
	return strings.ReplaceAll(humanize.Comma(price), ",", ".")
}
