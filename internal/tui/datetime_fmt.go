package tui

import (
	"strconv"
	"time"
)

// formatUpdated renders an epoch-ms timestamp as dd/mm/yy, the short date the
// list column has always shown.
func formatUpdated(ms int64) string {
	return time.UnixMilli(ms).Format("02/01/06")
}

// formatQuantity drops the trailing ".0" noise for whole quantities.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
