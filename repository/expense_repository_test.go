package repository

import (
	"testing"
	"time"
)

func TestMonthWindow(t *testing.T) {
	at := time.Date(2026, time.July, 14, 18, 30, 0, 0, time.UTC)
	start, end := monthWindow(at)
	if !start.Equal(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected window start: %v", start)
	}
	if !end.Equal(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected window end: %v", end)
	}
}

func TestMonthWindowDecemberRollsOver(t *testing.T) {
	start, end := monthWindow(time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC))
	if start.Month() != time.December || start.Year() != 2026 {
		t.Errorf("unexpected window start: %v", start)
	}
	if end.Month() != time.January || end.Year() != 2027 {
		t.Errorf("unexpected window end: %v", end)
	}
}
