package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Expense struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Category     string             `json:"category" bson:"category"`
	Amount       float64            `json:"amount" bson:"amount"`
	IncurredDate time.Time          `json:"incurred_date" bson:"incurred_date"`
	Note         string             `json:"note,omitempty" bson:"note,omitempty"`
	RecordedBy   primitive.ObjectID `json:"recorded_by" bson:"recorded_by"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type ExpenseCreatePayload struct {
	Category     string  `json:"category" validate:"required,oneof=rent utilities salaries equipment marketing travel misc"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	IncurredDate string  `json:"incurred_date" validate:"required,datetime=2006-01-02"`
	Note         string  `json:"note" validate:"omitempty,max=500"`
}

type ExpenseUpdatePayload struct {
	Category     string  `json:"category,omitempty" validate:"omitempty,oneof=rent utilities salaries equipment marketing travel misc"`
	Amount       float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	IncurredDate string  `json:"incurred_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Note         string  `json:"note,omitempty" validate:"omitempty,max=500"`
}

// ExpenseCategorySummary is one bucket of the monthly summary aggregation.
type ExpenseCategorySummary struct {
	Category string  `json:"category" bson:"_id"`
	Count    int64   `json:"count" bson:"count"`
	Total    float64 `json:"total" bson:"total"`
}
