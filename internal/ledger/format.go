package ledger

import "time"

const invalidDate = "Invalid Date"

// FormatDate renders t as "Jan 2, 2006". Unset dates fall back to a
// placeholder instead of printing year one.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return invalidDate
	}

	return t.Format("Jan 2, 2006")
}
