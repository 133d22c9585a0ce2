package api

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatDate renders t as "October 19th 2026, 3:04:05 pm".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %s %d, %s",
		t.Format("January"), humanize.Ordinal(t.Day()), t.Year(), t.Format("3:04:05 pm"))
}
