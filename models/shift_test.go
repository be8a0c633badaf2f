package models

import (
	"testing"
	"time"
)

func TestShiftOccurrencesWithoutRule(t *testing.T) {
	s := Shift{Name: "Day"}
	from := date(2026, time.June, 1)
	until := date(2026, time.June, 7)
	days, err := ShiftOccurrences(s, from, until)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 7 {
		t.Fatalf("expected every day in the range, got %d", len(days))
	}
	if !days[0].Equal(from) || !days[6].Equal(until) {
		t.Errorf("range bounds not covered: first=%v last=%v", days[0], days[6])
	}
}

func TestShiftOccurrencesWeekdayRule(t *testing.T) {
	s := Shift{Name: "Day", WorkdayRule: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"}
	// 2026-06-01 is a Monday.
	days, err := ShiftOccurrences(s, date(2026, time.June, 1), date(2026, time.June, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 5 {
		t.Fatalf("expected 5 weekday occurrences, got %d", len(days))
	}
	for _, d := range days {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("weekend day %v should not occur", d)
		}
	}
}

func TestShiftOccurrencesRejectsBadRule(t *testing.T) {
	s := Shift{Name: "Day", WorkdayRule: "FREQ=SOMETIMES"}
	if _, err := ShiftOccurrences(s, date(2026, time.June, 1), date(2026, time.June, 7)); err == nil {
		t.Fatalf("expected an error for an invalid rule")
	}
}

func TestIsWorkday(t *testing.T) {
	s := Shift{Name: "Day", WorkdayRule: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"}

	ok, err := IsWorkday(s, date(2026, time.June, 3)) // Wednesday
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Errorf("Wednesday should be a workday")
	}

	ok, err = IsWorkday(s, date(2026, time.June, 6)) // Saturday
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("Saturday should not be a workday")
	}
}

func TestAssignmentCovers(t *testing.T) {
	start := date(2026, time.June, 1)
	end := date(2026, time.June, 30)
	a := ShiftAssignment{StartDate: start, EndDate: &end, IsActive: true}

	if !a.Covers(date(2026, time.June, 15)) {
		t.Errorf("mid-range instant should be covered")
	}
	if !a.Covers(start) || !a.Covers(end) {
		t.Errorf("range bounds should be covered")
	}
	if a.Covers(date(2026, time.May, 31)) {
		t.Errorf("instant before start should not be covered")
	}
	if a.Covers(date(2026, time.July, 1)) {
		t.Errorf("instant after end should not be covered")
	}

	a.IsActive = false
	if a.Covers(date(2026, time.June, 15)) {
		t.Errorf("inactive assignment should never cover")
	}

	open := ShiftAssignment{StartDate: start, IsActive: true}
	if !open.Covers(date(2030, time.January, 1)) {
		t.Errorf("open-ended assignment should cover any future instant")
	}
}
