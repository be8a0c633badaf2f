package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AttendanceStatusPresent = "present"
	AttendanceStatusLate    = "late"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLeave   = "on_leave"
)

// Attendance is one record per staff per calendar date.
type Attendance struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID      primitive.ObjectID `json:"staff_id" bson:"staff_id"`
	Date         time.Time          `json:"date" bson:"date"`
	Status       string             `json:"status" bson:"status"`
	CheckIn      *time.Time         `json:"check_in,omitempty" bson:"check_in,omitempty"`
	CheckOut     *time.Time         `json:"check_out,omitempty" bson:"check_out,omitempty"`
	LateMinutes  int                `json:"late_minutes" bson:"late_minutes"`
	TotalMinutes int                `json:"total_minutes" bson:"total_minutes"`
	Note         string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

// NewCheckIn builds the record the first scan of a day inserts: dated at
// the start of the calendar day, with check-in and creation timestamps
// both set to the scan instant.
func NewCheckIn(staffID primitive.ObjectID, now time.Time, status string, lateMinutes int) Attendance {
	dayStart, _ := DayWindow(now)
	return Attendance{
		StaffID:     staffID,
		Date:        dayStart,
		Status:      status,
		CheckIn:     &now,
		LateMinutes: lateMinutes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type AttendanceScanPayload struct {
	Code string `json:"code" validate:"required"`
}

type AttendanceUpdatePayload struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=present late absent on_leave"`
	Note   string `json:"note,omitempty" validate:"omitempty,max=255"`
}

// QRCode is the daily check-in code staff scan. One active code per day;
// value is a random token encoded into the PNG served to the dashboard.
type QRCode struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Code      string               `json:"code" bson:"code"`
	Date      string               `json:"date" bson:"date"`
	ExpiresAt time.Time            `json:"expires_at" bson:"expires_at"`
	UsedBy    []primitive.ObjectID `json:"used_by,omitempty" bson:"used_by,omitempty"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time            `json:"updated_at" bson:"updated_at,omitempty"`
}

// DayWindow returns the [start, end) bounds of the calendar day containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// LateMinutes reports how many whole minutes after the shift start
// ("15:04" clock time on the same day) the check-in happened. Checking in
// at or before the shift start is zero.
func LateMinutes(shiftStart string, checkIn time.Time) int {
	clock, err := time.Parse("15:04", shiftStart)
	if err != nil {
		return 0
	}
	startOfDay, _ := DayWindow(checkIn)
	scheduled := startOfDay.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
	if !checkIn.After(scheduled) {
		return 0
	}
	return int(checkIn.Sub(scheduled) / time.Minute)
}

// WorkedMinutes is the whole-minute span between check-in and check-out.
func WorkedMinutes(checkIn, checkOut time.Time) int {
	if checkOut.Before(checkIn) {
		return 0
	}
	return int(checkOut.Sub(checkIn) / time.Minute)
}
