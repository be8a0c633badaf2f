package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDayWindow(t *testing.T) {
	at := time.Date(2026, time.May, 12, 14, 37, 9, 0, time.UTC)
	start, end := DayWindow(at)
	if !start.Equal(time.Date(2026, time.May, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected window start: %v", start)
	}
	if !end.Equal(time.Date(2026, time.May, 13, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected window end: %v", end)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("expected a 24h window, got %v", end.Sub(start))
	}
}

func TestLateMinutes(t *testing.T) {
	day := func(h, m int) time.Time {
		return time.Date(2026, time.May, 12, h, m, 0, 0, time.UTC)
	}
	cases := []struct {
		name    string
		start   string
		checkIn time.Time
		want    int
	}{
		{"on time", "09:00", day(9, 0), 0},
		{"early", "09:00", day(8, 45), 0},
		{"fifteen late", "09:00", day(9, 15), 15},
		{"over an hour late", "09:00", day(10, 12), 72},
		{"unparseable shift start", "not-a-time", day(9, 30), 0},
	}
	for _, c := range cases {
		if got := LateMinutes(c.start, c.checkIn); got != c.want {
			t.Errorf("%s: expected %d, got %d", c.name, c.want, got)
		}
	}
}

func TestNewCheckIn(t *testing.T) {
	staffID := primitive.NewObjectID()
	now := time.Date(2026, time.May, 12, 9, 17, 0, 0, time.UTC)

	a := NewCheckIn(staffID, now, AttendanceStatusLate, 17)

	if a.StaffID != staffID {
		t.Errorf("unexpected staff ID: %v", a.StaffID)
	}
	if !a.Date.Equal(time.Date(2026, time.May, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date should be the start of the day, got %v", a.Date)
	}
	if a.CheckIn == nil || !a.CheckIn.Equal(now) {
		t.Errorf("check-in should be the scan instant, got %v", a.CheckIn)
	}
	if a.Status != AttendanceStatusLate || a.LateMinutes != 17 {
		t.Errorf("status/late minutes not carried: %s %d", a.Status, a.LateMinutes)
	}
	if a.CreatedAt.IsZero() || a.UpdatedAt.IsZero() {
		t.Errorf("creation timestamps must be set, got created=%v updated=%v", a.CreatedAt, a.UpdatedAt)
	}
}

func TestWorkedMinutes(t *testing.T) {
	in := time.Date(2026, time.May, 12, 9, 0, 0, 0, time.UTC)
	if got := WorkedMinutes(in, in.Add(8*time.Hour+30*time.Minute)); got != 510 {
		t.Errorf("expected 510 worked minutes, got %d", got)
	}
	if got := WorkedMinutes(in, in.Add(-time.Hour)); got != 0 {
		t.Errorf("check-out before check-in should be 0, got %d", got)
	}
	if got := WorkedMinutes(in, in); got != 0 {
		t.Errorf("zero span should be 0, got %d", got)
	}
}
