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

type ShiftRepository struct {
	shiftCollection      *mongo.Collection
	assignmentCollection *mongo.Collection
	client               *mongo.Client
}

func NewShiftRepository() *ShiftRepository {
	return &ShiftRepository{
		shiftCollection:      config.GetCollection(config.ShiftCollection),
		assignmentCollection: config.GetCollection(config.ShiftAssignmentCollection),
		client:               config.MongoConn,
	}
}

func (r *ShiftRepository) CreateShift(ctx context.Context, shift *models.Shift) (*mongo.InsertOneResult, error) {
	shift.ID = primitive.NewObjectID()
	shift.CreatedAt = time.Now()
	shift.UpdatedAt = shift.CreatedAt

	result, err := r.shiftCollection.InsertOne(ctx, shift)
	if err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}
	return result, nil
}

func (r *ShiftRepository) GetAllShifts(ctx context.Context) ([]models.Shift, error) {
	cursor, err := r.shiftCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find shifts: %w", err)
	}
	defer cursor.Close(ctx)

	var shifts []models.Shift
	if err = cursor.All(ctx, &shifts); err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}
	return shifts, nil
}

func (r *ShiftRepository) GetShiftByID(ctx context.Context, id primitive.ObjectID) (*models.Shift, error) {
	var shift models.Shift
	err := r.shiftCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&shift)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("shift not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find shift by ID: %w", err)
	}
	return &shift, nil
}

func (r *ShiftRepository) UpdateShift(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	updateData["updated_at"] = time.Now()
	result, err := r.shiftCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateData})
	if err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}
	return result, nil
}

func (r *ShiftRepository) DeleteShift(ctx context.Context, id primitive.ObjectID) error {
	count, err := r.assignmentCollection.CountDocuments(ctx, bson.M{"shift_id": id, "is_active": true})
	if err != nil {
		return fmt.Errorf("failed to check shift assignments: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("shift still has active assignments: %w", ErrConflict)
	}

	res, err := r.shiftCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("shift not found: %w", ErrNotFound)
	}
	return nil
}

// AssignShift ends any currently active assignment for the staff member
// and creates the new one in the same transaction, preserving the
// at-most-one-active invariant.
func (r *ShiftRepository) AssignShift(ctx context.Context, assignment *models.ShiftAssignment) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		dayBefore := assignment.StartDate.AddDate(0, 0, -1)
		update := bson.M{"$set": bson.M{
			"is_active":  false,
			"end_date":   dayBefore,
			"updated_at": time.Now(),
		}}
		if _, err := r.assignmentCollection.UpdateMany(sc, bson.M{
			"staff_id":  assignment.StaffID,
			"is_active": true,
		}, update); err != nil {
			return nil, fmt.Errorf("failed to close previous assignments: %w", err)
		}

		assignment.ID = primitive.NewObjectID()
		assignment.IsActive = true
		assignment.CreatedAt = time.Now()
		assignment.UpdatedAt = assignment.CreatedAt
		if _, err := r.assignmentCollection.InsertOne(sc, assignment); err != nil {
			return nil, fmt.Errorf("failed to create assignment: %w", err)
		}
		return nil, nil
	})
	return err
}

// FindActiveAssignment returns the assignment covering the given instant,
// or nil when the staff member has none. Sorted by created_at so a data
// anomaly with two active assignments resolves deterministically.
func (r *ShiftRepository) FindActiveAssignment(ctx context.Context, staffID primitive.ObjectID, at time.Time) (*models.ShiftAssignment, error) {
	filter := bson.M{
		"staff_id":   staffID,
		"is_active":  true,
		"start_date": bson.M{"$lte": at},
		"$or": bson.A{
			bson.M{"end_date": bson.M{"$exists": false}},
			bson.M{"end_date": nil},
			bson.M{"end_date": bson.M{"$gte": at}},
		},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var assignment models.ShiftAssignment
	err := r.assignmentCollection.FindOne(ctx, filter, opts).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active assignment: %w", err)
	}
	return &assignment, nil
}

func (r *ShiftRepository) ListAssignmentsByStaff(ctx context.Context, staffID primitive.ObjectID) ([]models.ShiftAssignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	cursor, err := r.assignmentCollection.Find(ctx, bson.M{"staff_id": staffID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer cursor.Close(ctx)

	var assignments []models.ShiftAssignment
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, fmt.Errorf("failed to decode assignments: %w", err)
	}
	if assignments == nil {
		assignments = []models.ShiftAssignment{}
	}
	return assignments, nil
}

func (r *ShiftRepository) EndAssignment(ctx context.Context, id primitive.ObjectID, endDate time.Time) error {
	update := bson.M{"$set": bson.M{
		"is_active":  false,
		"end_date":   endDate,
		"updated_at": time.Now(),
	}}
	res, err := r.assignmentCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to end assignment: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("assignment not found: %w", ErrNotFound)
	}
	return nil
}
