package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fuyadhasanfahim/hr-management-sub001/config"
	"github.com/fuyadhasanfahim/hr-management-sub001/models"
)

type OrderRepository struct {
	collection       *mongo.Collection
	clientCollection *mongo.Collection
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		collection:       config.GetCollection(config.OrderCollection),
		clientCollection: config.GetCollection(config.ClientCollection),
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) (*mongo.InsertOneResult, error) {
	count, err := r.clientCollection.CountDocuments(ctx, bson.M{"_id": order.ClientID})
	if err != nil {
		return nil, fmt.Errorf("failed to verify client: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("client not found: %w", ErrNotFound)
	}

	order.ID = primitive.NewObjectID()
	order.Status = models.OrderStatusPending
	order.Due = order.Amount - order.Advance
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	return r.collection.InsertOne(ctx, order)
}

// FindAllWithClient joins each order with its client, newest first. An
// empty status selects every order.
func (r *OrderRepository) FindAllWithClient(ctx context.Context, status string) ([]models.OrderWithClient, error) {
	match := bson.M{}
	if status != "" {
		match["status"] = status
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.ClientCollection},
			{Key: "localField", Value: "client_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "client"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$client"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to run order listing aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.OrderWithClient
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	if orders == nil {
		orders = []models.OrderWithClient{}
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("order not found: %w", ErrNotFound)
	}
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("order not found: %w", ErrNotFound)
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("order not found: %w", ErrNotFound)
	}
	return nil
}

// StatusSummary groups orders by status with counts and turnover.
func (r *OrderRepository) StatusSummary(ctx context.Context) ([]models.OrderStatusSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "turnover", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to run status summary aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var summary []models.OrderStatusSummary
	if err = cursor.All(ctx, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode status summary: %w", err)
	}
	if summary == nil {
		summary = []models.OrderStatusSummary{}
	}
	return summary, nil
}

// MonthlyRevenue sums delivered order amounts for the month containing t.
func (r *OrderRepository) MonthlyRevenue(ctx context.Context, t time.Time) (float64, error) {
	monthStart := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "status", Value: models.OrderStatusDelivered},
			{Key: "updated_at", Value: bson.D{
				{Key: "$gte", Value: monthStart},
				{Key: "$lt", Value: monthEnd},
			}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to run revenue aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
