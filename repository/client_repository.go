package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fuyadhasanfahim/hr-management-sub001/config"
	"github.com/fuyadhasanfahim/hr-management-sub001/models"
)

type ClientRepository struct {
	collection      *mongo.Collection
	orderCollection *mongo.Collection
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{
		collection:      config.GetCollection(config.ClientCollection),
		orderCollection: config.GetCollection(config.OrderCollection),
	}
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) (*mongo.InsertOneResult, error) {
	client.ID = primitive.NewObjectID()
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt
	return r.collection.InsertOne(ctx, client)
}

func (r *ClientRepository) FindAll(ctx context.Context) ([]models.Client, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []models.Client
	if err = cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}
	if clients == nil {
		clients = []models.Client{}
	}
	return clients, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	var client models.Client
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find client by ID: %w", err)
	}
	return &client, nil
}

func (r *ClientRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("client not found: %w", ErrNotFound)
	}
	return nil
}

// Delete refuses to remove a client that still has orders.
func (r *ClientRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	count, err := r.orderCollection.CountDocuments(ctx, bson.M{"client_id": id})
	if err != nil {
		return fmt.Errorf("failed to count client orders: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("client has %d orders: %w", count, ErrConflict)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("client not found: %w", ErrNotFound)
	}
	return nil
}
