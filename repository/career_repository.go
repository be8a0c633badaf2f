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

type CareerRepository struct {
	openingCollection     *mongo.Collection
	applicationCollection *mongo.Collection
}

func NewCareerRepository() *CareerRepository {
	return &CareerRepository{
		openingCollection:     config.GetCollection(config.JobOpeningCollection),
		applicationCollection: config.GetCollection(config.JobApplicationCollection),
	}
}

func (r *CareerRepository) CreateOpening(ctx context.Context, opening *models.JobOpening) (*mongo.InsertOneResult, error) {
	opening.ID = primitive.NewObjectID()
	opening.IsActive = true
	opening.CreatedAt = time.Now()
	opening.UpdatedAt = opening.CreatedAt
	return r.openingCollection.InsertOne(ctx, opening)
}

// FindOpenings returns openings newest first. With activeOnly set it
// also drops openings whose deadline has passed, which is what the
// public careers page shows.
func (r *CareerRepository) FindOpenings(ctx context.Context, activeOnly bool) ([]models.JobOpening, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
		filter["$or"] = bson.A{
			bson.M{"deadline": nil},
			bson.M{"deadline": bson.M{"$gte": time.Now()}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.openingCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find job openings: %w", err)
	}
	defer cursor.Close(ctx)

	var openings []models.JobOpening
	if err = cursor.All(ctx, &openings); err != nil {
		return nil, fmt.Errorf("failed to decode job openings: %w", err)
	}
	if openings == nil {
		openings = []models.JobOpening{}
	}
	return openings, nil
}

func (r *CareerRepository) FindOpeningByID(ctx context.Context, id primitive.ObjectID) (*models.JobOpening, error) {
	var opening models.JobOpening
	err := r.openingCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&opening)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find job opening by ID: %w", err)
	}
	return &opening, nil
}

func (r *CareerRepository) UpdateOpening(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	res, err := r.openingCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update job opening: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("job opening not found: %w", ErrNotFound)
	}
	return nil
}

func (r *CareerRepository) DeleteOpening(ctx context.Context, id primitive.ObjectID) error {
	count, err := r.applicationCollection.CountDocuments(ctx, bson.M{"opening_id": id})
	if err != nil {
		return fmt.Errorf("failed to count applications: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("opening has %d applications: %w", count, ErrConflict)
	}

	res, err := r.openingCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete job opening: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("job opening not found: %w", ErrNotFound)
	}
	return nil
}

// CreateApplication inserts a candidate's application. A unique index on
// (opening_id, email) makes a second application by the same email a
// duplicate-key error, surfaced as a conflict.
func (r *CareerRepository) CreateApplication(ctx context.Context, application *models.JobApplication) (*mongo.InsertOneResult, error) {
	opening, err := r.FindOpeningByID(ctx, application.OpeningID)
	if err != nil {
		return nil, err
	}
	if opening == nil {
		return nil, fmt.Errorf("job opening not found: %w", ErrNotFound)
	}
	if !opening.IsActive {
		return nil, fmt.Errorf("job opening is closed: %w", ErrConflict)
	}
	if opening.Deadline != nil && opening.Deadline.Before(time.Now()) {
		return nil, fmt.Errorf("application deadline has passed: %w", ErrConflict)
	}

	application.ID = primitive.NewObjectID()
	application.Status = models.ApplicationStatusSubmitted
	application.CreatedAt = time.Now()
	application.UpdatedAt = application.CreatedAt

	result, err := r.applicationCollection.InsertOne(ctx, application)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("an application from this email already exists: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert application: %w", err)
	}
	return result, nil
}

func (r *CareerRepository) FindApplicationsByOpening(ctx context.Context, openingID primitive.ObjectID) ([]models.JobApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.applicationCollection.Find(ctx, bson.M{"opening_id": openingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find applications: %w", err)
	}
	defer cursor.Close(ctx)

	var applications []models.JobApplication
	if err = cursor.All(ctx, &applications); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}
	if applications == nil {
		applications = []models.JobApplication{}
	}
	return applications, nil
}

func (r *CareerRepository) FindApplicationByID(ctx context.Context, id primitive.ObjectID) (*models.JobApplication, error) {
	var application models.JobApplication
	err := r.applicationCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&application)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find application by ID: %w", err)
	}
	return &application, nil
}

func (r *CareerRepository) UpdateApplicationStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.applicationCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("application not found: %w", ErrNotFound)
	}
	return nil
}
