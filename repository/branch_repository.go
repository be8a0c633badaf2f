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

type BranchRepository interface {
	CreateBranch(ctx context.Context, branch *models.Branch) (*mongo.InsertOneResult, error)
	GetAllBranches(ctx context.Context) ([]models.Branch, error)
	GetBranchByID(ctx context.Context, id primitive.ObjectID) (*models.Branch, error)
	UpdateBranch(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error)
	DeleteBranch(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type branchRepository struct {
	collection *mongo.Collection
}

func NewBranchRepository() BranchRepository {
	return &branchRepository{
		collection: config.GetCollection(config.BranchCollection),
	}
}

func (r *branchRepository) CreateBranch(ctx context.Context, branch *models.Branch) (*mongo.InsertOneResult, error) {
	branch.ID = primitive.NewObjectID()
	branch.CreatedAt = time.Now()
	branch.UpdatedAt = branch.CreatedAt

	result, err := r.collection.InsertOne(ctx, branch)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("branch name already exists: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}
	return result, nil
}

func (r *branchRepository) GetAllBranches(ctx context.Context) ([]models.Branch, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find branches: %w", err)
	}
	defer cursor.Close(ctx)

	var branches []models.Branch
	if err = cursor.All(ctx, &branches); err != nil {
		return nil, fmt.Errorf("failed to decode branches: %w", err)
	}
	return branches, nil
}

func (r *branchRepository) GetBranchByID(ctx context.Context, id primitive.ObjectID) (*models.Branch, error) {
	var branch models.Branch
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&branch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("branch not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find branch by ID: %w", err)
	}
	return &branch, nil
}

func (r *branchRepository) UpdateBranch(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	updateData["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateData})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("branch name already exists: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}
	return result, nil
}

func (r *branchRepository) DeleteBranch(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to delete branch: %w", err)
	}
	return result, nil
}
