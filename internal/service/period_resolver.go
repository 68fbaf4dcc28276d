package service

import (
	"fmt"
	"time"
)

// markableMarginMinutes is how far outside a period's scheduled window
// attendance may still be recorded, on both sides, inclusive.
const markableMarginMinutes = 15

// periodsPerDay is fixed by the institution timetable.
const periodsPerDay = 5

// PeriodWindow is a period's scheduled slot in local wall-clock minutes
// since midnight.
type PeriodWindow struct {
	Start int `json:"-"`
	End   int `json:"-"`
}

// PeriodSlot is the display form of a window.
type PeriodSlot struct {
	Period int    `json:"period"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// MarkableVerdict reports whether a period may be marked right now.
type MarkableVerdict struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Weekday timing tables. Saturday runs a compressed schedule; Sunday has
// no classes. Indexed by period-1.
var regularPeriods = [periodsPerDay]PeriodWindow{
	{Start: 9*60 + 20, End: 10*60 + 20},
	{Start: 10*60 + 20, End: 11*60 + 20},
	{Start: 11*60 + 20, End: 12*60 + 20},
	{Start: 13*60 + 20, End: 14*60 + 20},
	{Start: 14*60 + 20, End: 15*60 + 20},
}

var shortDayPeriods = [periodsPerDay]PeriodWindow{
	{Start: 9*60 + 20, End: 10*60 + 10},
	{Start: 10*60 + 10, End: 11 * 60},
	{Start: 11 * 60, End: 11*60 + 50},
	{Start: 12*60 + 20, End: 13*60 + 10},
	{Start: 13*60 + 10, End: 14 * 60},
}

// PeriodResolver converts (day-of-week, period) into time windows and the
// wall clock into markability verdicts. It holds no state and performs no
// I/O; callers own timezone normalization and must pass their local day.
type PeriodResolver struct{}

// NewPeriodResolver constructs the resolver.
func NewPeriodResolver() *PeriodResolver {
	return &PeriodResolver{}
}

// WindowFor returns the scheduled window for a day and period number.
// The second return value is false on rest days and for period numbers
// outside 1..5.
func (pr *PeriodResolver) WindowFor(day time.Weekday, period int) (PeriodWindow, bool) {
	if period < 1 || period > periodsPerDay {
		return PeriodWindow{}, false
	}
	switch day {
	case time.Sunday:
		return PeriodWindow{}, false
	case time.Saturday:
		return shortDayPeriods[period-1], true
	default:
		return regularPeriods[period-1], true
	}
}

// Windows returns the full timetable for a day in display form, empty on
// rest days.
func (pr *PeriodResolver) Windows(day time.Weekday) []PeriodSlot {
	slots := make([]PeriodSlot, 0, periodsPerDay)
	for period := 1; period <= periodsPerDay; period++ {
		window, ok := pr.WindowFor(day, period)
		if !ok {
			continue
		}
		slots = append(slots, PeriodSlot{
			Period: period,
			Start:  clock(window.Start),
			End:    clock(window.End),
		})
	}
	return slots
}

// IsMarkable reports whether attendance for the period may be recorded at
// the given moment. The window runs from 15 minutes before the period
// starts until 15 minutes after it ends, both inclusive.
func (pr *PeriodResolver) IsMarkable(day time.Weekday, period int, now time.Time) MarkableVerdict {
	window, ok := pr.WindowFor(day, period)
	if !ok {
		return MarkableVerdict{Allowed: false, Reason: "no classes scheduled"}
	}

	minute := now.Hour()*60 + now.Minute()
	opens := window.Start - markableMarginMinutes
	closes := window.End + markableMarginMinutes

	switch {
	case minute < opens:
		return MarkableVerdict{Allowed: false, Reason: fmt.Sprintf("marking opens in %s", formatWait(opens-minute))}
	case minute > closes:
		return MarkableVerdict{Allowed: false, Reason: "marking window closed"}
	default:
		return MarkableVerdict{Allowed: true}
	}
}

// CurrentPeriod returns the period whose scheduled window contains the
// given moment, or 0 when no period is active. It reflects the timetable
// only; use IsMarkable to enforce the write window.
func (pr *PeriodResolver) CurrentPeriod(day time.Weekday, now time.Time) int {
	minute := now.Hour()*60 + now.Minute()
	for period := 1; period <= periodsPerDay; period++ {
		window, ok := pr.WindowFor(day, period)
		if !ok {
			return 0
		}
		if minute >= window.Start && minute < window.End {
			return period
		}
	}
	return 0
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func formatWait(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
