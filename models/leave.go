package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LeaveStatusPending           = "pending"
	LeaveStatusApproved          = "approved"
	LeaveStatusPartiallyApproved = "partially_approved"
	LeaveStatusRejected          = "rejected"
	LeaveStatusRevoked           = "revoked"
)

type LeaveRequest struct {
	ID            primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID       primitive.ObjectID  `json:"staff_id" bson:"staff_id"`
	Type          string              `json:"type" bson:"type"`
	StartDate     time.Time           `json:"start_date" bson:"start_date"`
	EndDate       time.Time           `json:"end_date" bson:"end_date"`
	RequestedDays int                 `json:"requested_days" bson:"requested_days"`
	Reason        string              `json:"reason" bson:"reason"`
	Status        string              `json:"status" bson:"status"`
	ApprovedStart *time.Time          `json:"approved_start,omitempty" bson:"approved_start,omitempty"`
	ApprovedEnd   *time.Time          `json:"approved_end,omitempty" bson:"approved_end,omitempty"`
	ApprovedDays  int                 `json:"approved_days" bson:"approved_days"`
	DecisionNote  string              `json:"decision_note,omitempty" bson:"decision_note,omitempty"`
	DecidedBy     *primitive.ObjectID `json:"decided_by,omitempty" bson:"decided_by,omitempty"`
	DecidedAt     *time.Time          `json:"decided_at,omitempty" bson:"decided_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at,omitempty"`
}

// LeaveBalance tracks allocated vs used leave days per staff per year.
type LeaveBalance struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID   primitive.ObjectID `json:"staff_id" bson:"staff_id"`
	Year      int                `json:"year" bson:"year"`
	Allocated int                `json:"allocated" bson:"allocated"`
	Used      int                `json:"used" bson:"used"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type LeaveCreatePayload struct {
	Type      string `json:"type" validate:"required,oneof=casual sick annual unpaid"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02,gtefield=StartDate"`
	Reason    string `json:"reason" validate:"required,min=10,max=500"`
}

// LeaveDecisionPayload drives approval. Leaving the approved range empty
// approves the full requested range; a sub-range yields a partial approval.
type LeaveDecisionPayload struct {
	ApprovedStart string `json:"approved_start,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ApprovedEnd   string `json:"approved_end,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Note          string `json:"note,omitempty" validate:"omitempty,max=255"`
}

type LeaveRejectPayload struct {
	Note string `json:"note" validate:"required,min=3,max=255"`
}

// LeaveDays counts the calendar days in [start, end], inclusive. Both
// dates are normalized to UTC midnight so DST transitions in the input
// locations cannot skew the count.
func LeaveDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s)/(24*time.Hour)) + 1
}

// ResolveApprovedRange validates a decision's approved range against the
// requested one and returns the effective range plus the resulting status.
// An empty payload range approves the request in full.
func ResolveApprovedRange(req LeaveRequest, start, end *time.Time) (time.Time, time.Time, string, error) {
	if start == nil && end == nil {
		return req.StartDate, req.EndDate, LeaveStatusApproved, nil
	}
	if start == nil || end == nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("approved_start and approved_end must be given together")
	}
	if end.Before(*start) {
		return time.Time{}, time.Time{}, "", fmt.Errorf("approved_end is before approved_start")
	}
	if start.Before(req.StartDate) || end.After(req.EndDate) {
		return time.Time{}, time.Time{}, "", fmt.Errorf("approved range must lie within the requested range")
	}
	status := LeaveStatusApproved
	if !start.Equal(req.StartDate) || !end.Equal(req.EndDate) {
		status = LeaveStatusPartiallyApproved
	}
	return *start, *end, status, nil
}
