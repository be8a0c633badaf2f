package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fuyadhasanfahim/hr-management-sub001/config"
	"github.com/fuyadhasanfahim/hr-management-sub001/models"
)

type CounterRepository struct {
	collection *mongo.Collection
}

func NewCounterRepository() *CounterRepository {
	return &CounterRepository{
		collection: config.GetCollection(config.CounterCollection),
	}
}

// NextSequence atomically increments and returns the named sequence. The
// increment happens in a single findOneAndUpdate with upsert, so two
// concurrent callers can never observe the same value.
func (r *CounterRepository) NextSequence(ctx context.Context, key string) (int64, error) {
	filter := bson.M{"key": key}
	update := bson.M{"$inc": bson.M{"seq": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.Counter
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %q: %w", key, err)
	}
	return counter.Seq, nil
}
