package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Counter is a single-document atomic sequence. The staff-ID sequence is
// advanced with FindOneAndUpdate + $inc so concurrent profile completions
// can never observe the same value.
type Counter struct {
	ID  primitive.ObjectID `bson:"_id,omitempty"`
	Key string             `bson:"key"`
	Seq int64              `bson:"seq"`
}

const StaffIDCounterKey = "staff_id"
