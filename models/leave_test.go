package models

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeaveDays(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"single day", date(2026, time.March, 10), date(2026, time.March, 10), 1},
		{"inclusive span", date(2026, time.March, 10), date(2026, time.March, 14), 5},
		{"across month boundary", date(2026, time.January, 30), date(2026, time.February, 2), 4},
		{"end before start", date(2026, time.March, 14), date(2026, time.March, 10), 0},
	}
	for _, c := range cases {
		if got := LeaveDays(c.start, c.end); got != c.want {
			t.Errorf("%s: expected %d days, got %d", c.name, c.want, got)
		}
	}
}

func TestLeaveDaysIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, time.March, 10, 23, 50, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 11, 0, 5, 0, 0, time.UTC)
	if got := LeaveDays(start, end); got != 2 {
		t.Fatalf("expected 2 calendar days regardless of clock time, got %d", got)
	}
}

func TestLeaveDaysAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("could not load location: %v", err)
	}
	// DST starts 2026-03-08 in this zone, making it a 23h day.
	start := time.Date(2026, time.March, 7, 0, 0, 0, 0, loc)
	end := time.Date(2026, time.March, 9, 0, 0, 0, 0, loc)
	if got := LeaveDays(start, end); got != 3 {
		t.Fatalf("expected 3 calendar days across the DST change, got %d", got)
	}
}

func TestResolveApprovedRangeFullApproval(t *testing.T) {
	req := LeaveRequest{StartDate: date(2026, time.April, 1), EndDate: date(2026, time.April, 5)}
	start, end, status, err := ResolveApprovedRange(req, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != LeaveStatusApproved {
		t.Errorf("expected full approval, got %s", status)
	}
	if !start.Equal(req.StartDate) || !end.Equal(req.EndDate) {
		t.Errorf("expected the requested range back, got %v..%v", start, end)
	}
}

func TestResolveApprovedRangePartial(t *testing.T) {
	req := LeaveRequest{StartDate: date(2026, time.April, 1), EndDate: date(2026, time.April, 5)}
	s := date(2026, time.April, 2)
	e := date(2026, time.April, 3)
	start, end, status, err := ResolveApprovedRange(req, &s, &e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != LeaveStatusPartiallyApproved {
		t.Errorf("expected partial approval, got %s", status)
	}
	if !start.Equal(s) || !end.Equal(e) {
		t.Errorf("expected the narrowed range back, got %v..%v", start, end)
	}
}

func TestResolveApprovedRangeExactMatchIsFullApproval(t *testing.T) {
	req := LeaveRequest{StartDate: date(2026, time.April, 1), EndDate: date(2026, time.April, 5)}
	s, e := req.StartDate, req.EndDate
	_, _, status, err := ResolveApprovedRange(req, &s, &e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != LeaveStatusApproved {
		t.Errorf("explicit range equal to the request should be a full approval, got %s", status)
	}
}

func TestResolveApprovedRangeErrors(t *testing.T) {
	req := LeaveRequest{StartDate: date(2026, time.April, 1), EndDate: date(2026, time.April, 5)}
	s := date(2026, time.April, 2)
	e := date(2026, time.April, 3)
	before := date(2026, time.March, 30)
	after := date(2026, time.April, 9)

	cases := []struct {
		name       string
		start, end *time.Time
	}{
		{"only start given", &s, nil},
		{"only end given", nil, &e},
		{"end before start", &e, &s},
		{"starts before request", &before, &e},
		{"ends after request", &s, &after},
	}
	for _, c := range cases {
		if _, _, _, err := ResolveApprovedRange(req, c.start, c.end); err == nil {
			t.Errorf("%s: expected an error", c.name)
		}
	}
}
