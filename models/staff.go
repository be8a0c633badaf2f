package models

import (
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StaffStatusActive     = "active"
	StaffStatusInactive   = "inactive"
	StaffStatusTerminated = "terminated"
)

// Staff is an employee record, optionally linked to a User identity.
// Salary, PIN and reset-token fields are excluded from default
// projections and only surfaced through the salary-view flow.
type Staff struct {
	ID               primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID           *primitive.ObjectID `json:"user_id,omitempty" bson:"user_id,omitempty"`
	StaffID          string              `json:"staff_id" bson:"staff_id,omitempty"`
	Phone            string              `json:"phone" bson:"phone,omitempty"`
	BranchID         *primitive.ObjectID `json:"branch_id,omitempty" bson:"branch_id,omitempty"`
	Department       string              `json:"department" bson:"department,omitempty"`
	Designation      string              `json:"designation" bson:"designation,omitempty"`
	JoinDate         *time.Time          `json:"join_date,omitempty" bson:"join_date,omitempty"`
	Status           string              `json:"status" bson:"status,omitempty"`
	DateOfBirth      *time.Time          `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	NationalID       string              `json:"national_id,omitempty" bson:"national_id,omitempty"`
	BloodGroup       string              `json:"blood_group,omitempty" bson:"blood_group,omitempty"`
	Address          string              `json:"address,omitempty" bson:"address,omitempty"`
	EmergencyContact string              `json:"emergency_contact,omitempty" bson:"emergency_contact,omitempty"`
	FatherName       string              `json:"father_name,omitempty" bson:"father_name,omitempty"`
	MotherName       string              `json:"mother_name,omitempty" bson:"mother_name,omitempty"`
	ExitDate         *time.Time          `json:"exit_date,omitempty" bson:"exit_date,omitempty"`
	ProfileCompleted bool                `json:"profile_completed" bson:"profile_completed"`
	SharePercent     float64             `json:"share_percent,omitempty" bson:"share_percent,omitempty"`

	Salary          float64    `json:"-" bson:"salary,omitempty"`
	SalaryVisible   bool       `json:"-" bson:"salary_visible,omitempty"`
	SalaryPin       string     `json:"-" bson:"salary_pin,omitempty"`
	PinResetToken   string     `json:"-" bson:"pin_reset_token,omitempty"`
	PinResetExpires *time.Time `json:"-" bson:"pin_reset_expires,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at,omitempty"`
}

type StaffCreatePayload struct {
	StaffID     string  `json:"staff_id" validate:"required,min=3,max=20"`
	Phone       string  `json:"phone" validate:"required,min=6,max=20"`
	BranchID    string  `json:"branch_id" validate:"omitempty,len=24,hexadecimal"`
	Department  string  `json:"department" validate:"required"`
	Designation string  `json:"designation" validate:"required"`
	JoinDate    string  `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
	Salary      float64 `json:"salary" validate:"min=0"`
}

type CompleteProfilePayload struct {
	Phone            string `json:"phone" validate:"required,min=6,max=20"`
	BranchID         string `json:"branch_id" validate:"omitempty,len=24,hexadecimal"`
	Department       string `json:"department" validate:"required"`
	Designation      string `json:"designation" validate:"required"`
	DateOfBirth      string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	NationalID       string `json:"national_id" validate:"omitempty,min=5,max=30"`
	BloodGroup       string `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Address          string `json:"address" validate:"omitempty,min=5,max=255"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,min=6,max=20"`
	FatherName       string `json:"father_name" validate:"omitempty,max=100"`
	MotherName       string `json:"mother_name" validate:"omitempty,max=100"`
}

type StaffUpdatePayload struct {
	Phone            string   `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	BranchID         string   `json:"branch_id,omitempty" validate:"omitempty,len=24,hexadecimal"`
	Department       string   `json:"department,omitempty"`
	Designation      string   `json:"designation,omitempty"`
	Status           string   `json:"status,omitempty" validate:"omitempty,oneof=active inactive terminated"`
	Role             string   `json:"role,omitempty" validate:"omitempty,oneof=admin super_admin staff"`
	Address          string   `json:"address,omitempty" validate:"omitempty,min=5,max=255"`
	EmergencyContact string   `json:"emergency_contact,omitempty" validate:"omitempty,min=6,max=20"`
	ExitDate         string   `json:"exit_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	SharePercent     *float64 `json:"share_percent,omitempty" validate:"omitempty,min=0,max=100"`
}

type SalaryUpdatePayload struct {
	Salary float64 `json:"salary" validate:"required,min=0"`
	Reason string  `json:"reason" validate:"required,min=3,max=255"`
}

type SalaryViewPayload struct {
	Pin string `json:"pin" validate:"required,min=4,max=12"`
}

type SetSalaryPinPayload struct {
	Pin string `json:"pin" validate:"required,min=4,max=12,numeric"`
}

type ResetSalaryPinPayload struct {
	Token string `json:"token" validate:"required,uuid4"`
	Pin   string `json:"pin" validate:"required,min=4,max=12,numeric"`
}

type SalaryVisibilityPayload struct {
	Visible *bool `json:"visible"`
}

// SalaryHistory is append-only: entries are inserted together with the
// salary update in one transaction and never mutated afterwards.
type SalaryHistory struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID        primitive.ObjectID `json:"staff_id" bson:"staff_id"`
	PreviousSalary float64            `json:"previous_salary" bson:"previous_salary"`
	NewSalary      float64            `json:"new_salary" bson:"new_salary"`
	ChangedBy      primitive.ObjectID `json:"changed_by" bson:"changed_by"`
	Reason         string             `json:"reason" bson:"reason,omitempty"`
	ChangedAt      time.Time          `json:"changed_at" bson:"changed_at"`
}

// CurrentShift is the projection of the shift definition reached through
// a staff member's active assignment.
type CurrentShift struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	StartTime string             `json:"start_time" bson:"start_time"`
	EndTime   string             `json:"end_time" bson:"end_time"`
}

// EnrichedStaff is one roster row: the staff document joined with its
// linked user, branch, today's attendance and current shift. Any of the
// joined sub-documents may be absent.
type EnrichedStaff struct {
	Staff      `bson:",inline"`
	User       *User         `json:"user,omitempty" bson:"user,omitempty"`
	Branch     *Branch       `json:"branch,omitempty" bson:"branch,omitempty"`
	Attendance *Attendance   `json:"attendance,omitempty" bson:"attendance,omitempty"`
	Shift      *CurrentShift `json:"current_shift,omitempty" bson:"current_shift,omitempty"`
}

type PageMeta struct {
	Total     int64 `json:"total"`
	Page      int64 `json:"page"`
	Limit     int64 `json:"limit"`
	TotalPage int64 `json:"totalPage"`
}

type RosterPage struct {
	Staffs []EnrichedStaff `json:"staffs"`
	Meta   PageMeta        `json:"meta"`
}

const (
	RosterDefaultLimit = 10
	RosterMaxLimit     = 100
)

// RosterQuery is the validated filter set for the roster listing. Only
// recognized keys are parsed; malformed object IDs are rejected at the
// boundary instead of silently matching nothing.
type RosterQuery struct {
	Page          int64
	Limit         int64
	Search        string
	Department    string
	Designation   string
	Status        string
	BranchID      *primitive.ObjectID
	ShiftID       *primitive.ObjectID
	ExcludeAdmins bool
}

// ParseRosterQuery lowers a raw query-parameter bag into a RosterQuery.
func ParseRosterQuery(params map[string]string) (RosterQuery, error) {
	q := RosterQuery{
		Page:  1,
		Limit: RosterDefaultLimit,
	}

	if raw, ok := params["page"]; ok && raw != "" {
		page, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, fmt.Errorf("page must be a number: %q", raw)
		}
		if page > 0 {
			q.Page = page
		}
	}

	if raw, ok := params["limit"]; ok && raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, fmt.Errorf("limit must be a number: %q", raw)
		}
		if limit > 0 {
			q.Limit = limit
		}
	}
	if q.Limit > RosterMaxLimit {
		q.Limit = RosterMaxLimit
	}

	q.Search = params["search"]
	q.Department = params["department"]
	q.Designation = params["designation"]
	q.Status = params["status"]

	if raw, ok := params["branchId"]; ok && raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return q, fmt.Errorf("branchId is not a valid ID: %q", raw)
		}
		q.BranchID = &id
	}

	if raw, ok := params["shiftId"]; ok && raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return q, fmt.Errorf("shiftId is not a valid ID: %q", raw)
		}
		q.ShiftID = &id
	}

	q.ExcludeAdmins = params["excludeAdmins"] == "true"

	return q, nil
}

// NewPageMeta computes pagination metadata; totalPage is ceil(total/limit).
func NewPageMeta(total, page, limit int64) PageMeta {
	totalPage := int64(0)
	if limit > 0 {
		totalPage = (total + limit - 1) / limit
	}
	return PageMeta{Total: total, Page: page, Limit: limit, TotalPage: totalPage}
}
