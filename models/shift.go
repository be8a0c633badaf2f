package models

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shift is a named work window. WorkdayRule is an optional RRULE string
// (e.g. FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR) describing which days the
// shift operates; an empty rule means every day.
type Shift struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	StartTime   string             `json:"start_time" bson:"start_time"`
	EndTime     string             `json:"end_time" bson:"end_time"`
	WorkdayRule string             `json:"workday_rule,omitempty" bson:"workday_rule,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type ShiftCreatePayload struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	WorkdayRule string `json:"workday_rule" validate:"omitempty,max=255"`
}

type ShiftUpdatePayload struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	StartTime   string `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime     string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	WorkdayRule string `json:"workday_rule,omitempty" validate:"omitempty,max=255"`
}

// ShiftAssignment binds a staff member to a shift for a date range. A
// staff member has at most one active assignment at any instant.
type ShiftAssignment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID   primitive.ObjectID `json:"staff_id" bson:"staff_id"`
	ShiftID   primitive.ObjectID `json:"shift_id" bson:"shift_id"`
	StartDate time.Time          `json:"start_date" bson:"start_date"`
	EndDate   *time.Time         `json:"end_date,omitempty" bson:"end_date,omitempty"`
	IsActive  bool               `json:"is_active" bson:"is_active"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type AssignmentEndPayload struct {
	EndDate string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type ShiftAssignPayload struct {
	StaffID   string `json:"staff_id" validate:"required,len=24,hexadecimal"`
	ShiftID   string `json:"shift_id" validate:"required,len=24,hexadecimal"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02,gtefield=StartDate"`
}

// Covers reports whether the assignment's date range contains t.
func (a ShiftAssignment) Covers(t time.Time) bool {
	if !a.IsActive || a.StartDate.After(t) {
		return false
	}
	return a.EndDate == nil || !a.EndDate.Before(t)
}

// ShiftOccurrences expands the shift's workday rule within [from, until].
// With no rule every day in the range is an occurrence.
func ShiftOccurrences(s Shift, from, until time.Time) ([]time.Time, error) {
	if s.WorkdayRule == "" {
		var days []time.Time
		for d := from; !d.After(until); d = d.AddDate(0, 0, 1) {
			days = append(days, d)
		}
		return days, nil
	}

	opt, err := rrule.StrToROption(s.WorkdayRule)
	if err != nil {
		return nil, fmt.Errorf("invalid workday rule %q: %w", s.WorkdayRule, err)
	}
	opt.Dtstart = from
	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("invalid workday rule %q: %w", s.WorkdayRule, err)
	}
	return rule.Between(from, until, true), nil
}

// IsWorkday reports whether day falls on one of the shift's workdays.
func IsWorkday(s Shift, day time.Time) (bool, error) {
	start, _ := DayWindow(day)
	occurrences, err := ShiftOccurrences(s, start, start.Add(23*time.Hour+59*time.Minute))
	if err != nil {
		return false, err
	}
	return len(occurrences) > 0, nil
}
