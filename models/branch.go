package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Branch struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type BranchCreatePayload struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Address string `json:"address" validate:"omitempty,min=5,max=255"`
	Phone   string `json:"phone" validate:"omitempty,min=6,max=20"`
}

type BranchUpdatePayload struct {
	Name    string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Address string `json:"address,omitempty" validate:"omitempty,min=5,max=255"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
}
