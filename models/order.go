package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type Client struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Company   string             `json:"company,omitempty" bson:"company,omitempty"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type ClientCreatePayload struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Company string `json:"company" validate:"omitempty,max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,min=6,max=20"`
	Address string `json:"address" validate:"omitempty,min=5,max=255"`
}

type Order struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ClientID     primitive.ObjectID `json:"client_id" bson:"client_id"`
	Title        string             `json:"title" bson:"title"`
	Amount       float64            `json:"amount" bson:"amount"`
	Advance      float64            `json:"advance" bson:"advance"`
	Due          float64            `json:"due" bson:"due"`
	Status       string             `json:"status" bson:"status"`
	DeliveryDate *time.Time         `json:"delivery_date,omitempty" bson:"delivery_date,omitempty"`
	Note         string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedBy    primitive.ObjectID `json:"created_by" bson:"created_by"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type OrderCreatePayload struct {
	ClientID     string  `json:"client_id" validate:"required,len=24,hexadecimal"`
	Title        string  `json:"title" validate:"required,min=2,max=200"`
	Amount       float64 `json:"amount" validate:"required,min=0"`
	Advance      float64 `json:"advance" validate:"min=0,ltefield=Amount"`
	DeliveryDate string  `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	Note         string  `json:"note" validate:"omitempty,max=500"`
}

type OrderStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress delivered cancelled"`
}

// OrderWithClient is the order listing row joined with its client.
type OrderWithClient struct {
	Order  `bson:",inline"`
	Client *Client `json:"client,omitempty" bson:"client,omitempty"`
}

// OrderStatusSummary is one bucket of the status summary aggregation.
type OrderStatusSummary struct {
	Status   string  `json:"status" bson:"_id"`
	Count    int64   `json:"count" bson:"count"`
	Turnover float64 `json:"turnover" bson:"turnover"`
}
