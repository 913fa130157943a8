package kpi

import (
	"fmt"
	"time"

	"github.com/blaisecz/health-trends/internal/domain"
)

// Lookback bounds accepted by CurrentAndPreviousRange.
const (
	MinLookbackDays     = 1
	MaxLookbackDays     = 365
	DefaultLookbackDays = 30
)

// Presets lists the lookbacks offered to dashboard users.
var Presets = []int{15, 30, 60, 90}

// CurrentAndPreviousRange returns the current window [today-n, today] and the
// equally long window immediately before it, [today-2n, today-n]. The
// previous window ends exactly where the current one starts. Today is the
// UTC calendar day of now.
func CurrentAndPreviousRange(now time.Time, lookbackDays int) (current, previous domain.Period, err error) {
	if lookbackDays < MinLookbackDays || lookbackDays > MaxLookbackDays {
		return domain.Period{}, domain.Period{}, fmt.Errorf("%w: lookback must be between %d and %d days, got %d",
			domain.ErrInvalidInput, MinLookbackDays, MaxLookbackDays, lookbackDays)
	}

	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -lookbackDays)

	current = domain.Period{
		Start: start,
		End:   today,
		Label: fmt.Sprintf("Last %d days", lookbackDays),
	}
	previous = domain.Period{
		Start: start.AddDate(0, 0, -lookbackDays),
		End:   start,
		Label: fmt.Sprintf("Previous %d days", lookbackDays),
	}
	return current, previous, nil
}

// HistoryRange is the window used for general summaries: the year up to
// today, paired with the year before it.
func HistoryRange(now time.Time) (history, before domain.Period) {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	start := today.AddDate(-1, 0, 0)
	history = domain.Period{Start: start, End: today, Label: "Full history"}
	before = domain.Period{Start: start.AddDate(-1, 0, 0), End: start, Label: "Year before"}
	return history, before
}
