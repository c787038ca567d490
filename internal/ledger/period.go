package ledger

import (
	"fmt"
	"time"
)

// Period is a named date range relative to a reference time.
type Period string

const (
	PeriodAll       Period = "all"
	PeriodThisWeek  Period = "this_week"
	PeriodLastWeek  Period = "last_week"
	PeriodThisMonth Period = "this_month"
	PeriodLastMonth Period = "last_month"
)

func Periods() []Period {
	return []Period{PeriodAll, PeriodThisWeek, PeriodLastWeek, PeriodThisMonth, PeriodLastMonth}
}

func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return PeriodAll, nil
	}

	for _, p := range Periods() {
		if string(p) == s {
			return p, nil
		}
	}

	return "", fmt.Errorf("unknown period %q", s)
}

func (p Period) String() string {
	switch p {
	case PeriodThisWeek:
		return "This Week"
	case PeriodLastWeek:
		return "Last Week"
	case PeriodThisMonth:
		return "This Month"
	case PeriodLastMonth:
		return "Last Month"
	default:
		return "All Time"
	}
}

// Range returns the half-open interval [start, end) the period covers
// around now. Weeks start on Monday. ok is false for PeriodAll.
func (p Period) Range(now time.Time) (start, end time.Time, ok bool) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	offset := int(day.Weekday()) - 1
	if offset < 0 {
		offset = 6
	}

	monday := day.AddDate(0, 0, -offset)

	switch p {
	case PeriodThisWeek:
		return monday, monday.AddDate(0, 0, 7), true
	case PeriodLastWeek:
		return monday.AddDate(0, 0, -7), monday, true
	case PeriodThisMonth:
		start = MonthStart(now)
		return start, start.AddDate(0, 1, 0), true
	case PeriodLastMonth:
		end = MonthStart(now)
		return end.AddDate(0, -1, 0), end, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// Filter keeps the transactions of txs dated inside the period.
func (p Period) Filter(txs []Transaction, now time.Time) []Transaction {
	start, end, ok := p.Range(now)
	if !ok {
		return txs
	}

	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.Date.Before(start) && tx.Date.Before(end) {
			out = append(out, tx)
		}
	}

	return out
}
