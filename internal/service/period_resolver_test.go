package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 2, hour, minute, 0, 0, time.UTC)
}

func TestWindowForRegularDay(t *testing.T) {
	pr := NewPeriodResolver()

	window, ok := pr.WindowFor(time.Monday, 1)
	require.True(t, ok)
	assert.Equal(t, 9*60+20, window.Start)
	assert.Equal(t, 10*60+20, window.End)

	window, ok = pr.WindowFor(time.Friday, 5)
	require.True(t, ok)
	assert.Equal(t, 14*60+20, window.Start)
	assert.Equal(t, 15*60+20, window.End)
}

func TestWindowForShortDay(t *testing.T) {
	pr := NewPeriodResolver()

	window, ok := pr.WindowFor(time.Saturday, 1)
	require.True(t, ok)
	assert.Equal(t, 9*60+20, window.Start)
	assert.Equal(t, 10*60+10, window.End)

	window, ok = pr.WindowFor(time.Saturday, 4)
	require.True(t, ok)
	assert.Equal(t, 12*60+20, window.Start)
}

func TestWindowForRestDayAndBadPeriod(t *testing.T) {
	pr := NewPeriodResolver()

	_, ok := pr.WindowFor(time.Sunday, 1)
	assert.False(t, ok)

	_, ok = pr.WindowFor(time.Monday, 0)
	assert.False(t, ok)
	_, ok = pr.WindowFor(time.Monday, 6)
	assert.False(t, ok)
}

func TestWindowsShape(t *testing.T) {
	pr := NewPeriodResolver()

	slots := pr.Windows(time.Tuesday)
	require.Len(t, slots, 5)
	assert.Equal(t, "09:20", slots[0].Start)
	assert.Equal(t, "10:20", slots[0].End)
	assert.Equal(t, 5, slots[4].Period)

	assert.Empty(t, pr.Windows(time.Sunday))
}

func TestIsMarkableBoundaries(t *testing.T) {
	pr := NewPeriodResolver()

	// Period 2 ends 11:20 on regular days; window closes 11:35 inclusive.
	assert.True(t, pr.IsMarkable(time.Monday, 2, at(11, 34)).Allowed)
	assert.True(t, pr.IsMarkable(time.Monday, 2, at(11, 35)).Allowed)
	assert.False(t, pr.IsMarkable(time.Monday, 2, at(11, 36)).Allowed)

	// Period 1 starts 09:20; window opens 09:05 inclusive.
	assert.False(t, pr.IsMarkable(time.Monday, 1, at(9, 4)).Allowed)
	assert.True(t, pr.IsMarkable(time.Monday, 1, at(9, 5)).Allowed)
}

func TestIsMarkableReasons(t *testing.T) {
	pr := NewPeriodResolver()

	verdict := pr.IsMarkable(time.Sunday, 1, at(10, 0))
	assert.False(t, verdict.Allowed)
	assert.Equal(t, "no classes scheduled", verdict.Reason)

	verdict = pr.IsMarkable(time.Monday, 1, at(9, 0))
	assert.False(t, verdict.Allowed)
	assert.Equal(t, "marking opens in 5m", verdict.Reason)

	verdict = pr.IsMarkable(time.Monday, 5, at(8, 0))
	assert.False(t, verdict.Allowed)
	assert.Equal(t, "marking opens in 6h 05m", verdict.Reason)

	verdict = pr.IsMarkable(time.Monday, 1, at(11, 0))
	assert.False(t, verdict.Allowed)
	assert.Equal(t, "marking window closed", verdict.Reason)
}

func TestCurrentPeriod(t *testing.T) {
	pr := NewPeriodResolver()

	assert.Equal(t, 1, pr.CurrentPeriod(time.Monday, at(9, 20)))
	assert.Equal(t, 1, pr.CurrentPeriod(time.Monday, at(10, 19)))
	// Period boundaries are start-inclusive, end-exclusive.
	assert.Equal(t, 2, pr.CurrentPeriod(time.Monday, at(10, 20)))
	// Lunch gap on regular days.
	assert.Equal(t, 0, pr.CurrentPeriod(time.Monday, at(12, 40)))
	assert.Equal(t, 0, pr.CurrentPeriod(time.Monday, at(8, 0)))
	assert.Equal(t, 0, pr.CurrentPeriod(time.Sunday, at(10, 0)))

	assert.Equal(t, 3, pr.CurrentPeriod(time.Saturday, at(11, 10)))
}
