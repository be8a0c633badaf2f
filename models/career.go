package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ApplicationStatusSubmitted   = "submitted"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusHired       = "hired"
)

type JobOpening struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Department  string             `json:"department" bson:"department"`
	Designation string             `json:"designation" bson:"designation"`
	Openings    int                `json:"openings" bson:"openings"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Deadline    *time.Time         `json:"deadline,omitempty" bson:"deadline,omitempty"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type JobOpeningCreatePayload struct {
	Title       string `json:"title" validate:"required,min=3,max=150"`
	Department  string `json:"department" validate:"required"`
	Designation string `json:"designation" validate:"required"`
	Openings    int    `json:"openings" validate:"required,min=1"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Deadline    string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
}

type JobOpeningUpdatePayload struct {
	Title       string `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Department  string `json:"department,omitempty"`
	Designation string `json:"designation,omitempty"`
	Openings    *int   `json:"openings,omitempty" validate:"omitempty,min=1"`
	Description string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Deadline    string `json:"deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type JobApplication struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OpeningID  primitive.ObjectID `json:"opening_id" bson:"opening_id"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Phone      string             `json:"phone" bson:"phone"`
	ResumeURL  string             `json:"resume_url,omitempty" bson:"resume_url,omitempty"`
	CoverNote  string             `json:"cover_note,omitempty" bson:"cover_note,omitempty"`
	Status     string             `json:"status" bson:"status"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type JobApplicationPayload struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=6,max=20"`
	ResumeURL string `json:"resume_url" validate:"omitempty,url"`
	CoverNote string `json:"cover_note" validate:"omitempty,max=2000"`
}

type ApplicationStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=submitted shortlisted rejected hired"`
}
