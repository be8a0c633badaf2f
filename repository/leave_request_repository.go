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

// DefaultAnnualAllocation is the leave-day allocation granted per staff
// per calendar year when no balance document exists yet.
const DefaultAnnualAllocation = 20

type LeaveRequestRepository interface {
	Create(ctx context.Context, req *models.LeaveRequest) (*mongo.InsertOneResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error)
	FindByStaffID(ctx context.Context, staffID primitive.ObjectID) ([]models.LeaveRequest, error)
	ListWithStaff(ctx context.Context, filter bson.M) ([]bson.M, error)
	CountPending(ctx context.Context) (int64, error)

	Approve(ctx context.Context, id primitive.ObjectID, decidedBy primitive.ObjectID, start, end *time.Time, note string) (*models.LeaveRequest, error)
	Reject(ctx context.Context, id primitive.ObjectID, decidedBy primitive.ObjectID, note string) error
	Revoke(ctx context.Context, id primitive.ObjectID, decidedBy primitive.ObjectID) error

	HasApprovedLeaveOn(ctx context.Context, staffID primitive.ObjectID, day time.Time) (bool, error)
	GetBalance(ctx context.Context, staffID primitive.ObjectID, year int) (*models.LeaveBalance, error)
}

type leaveRequestRepository struct {
	collection        *mongo.Collection
	balanceCollection *mongo.Collection
	client            *mongo.Client
}

func NewLeaveRequestRepository() LeaveRequestRepository {
	return &leaveRequestRepository{
		collection:        config.GetCollection(config.LeaveRequestCollection),
		balanceCollection: config.GetCollection(config.LeaveBalanceCollection),
		client:            config.MongoConn,
	}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req *models.LeaveRequest) (*mongo.InsertOneResult, error) {
	req.ID = primitive.NewObjectID()
	req.Status = models.LeaveStatusPending
	req.RequestedDays = models.LeaveDays(req.StartDate, req.EndDate)
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	return r.collection.InsertOne(ctx, req)
}

func (r *leaveRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find leave request by ID: %w", err)
	}
	return &request, nil
}

func (r *leaveRequestRepository) FindByStaffID(ctx context.Context, staffID primitive.ObjectID) ([]models.LeaveRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"staff_id": staffID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find leave requests by staff: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.LeaveRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode leave requests: %w", err)
	}
	if requests == nil {
		requests = []models.LeaveRequest{}
	}
	return requests, nil
}

// ListWithStaff joins each request with staff and user identity for the
// approval dashboard.
func (r *leaveRequestRepository) ListWithStaff(ctx context.Context, filter bson.M) ([]bson.M, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.StaffCollection},
			{Key: "localField", Value: "staff_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "staff"},
		}}},
		{{Key: "$unwind", Value: "$staff"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.UserCollection},
			{Key: "localField", Value: "staff.user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "type", Value: 1},
			{Key: "start_date", Value: 1},
			{Key: "end_date", Value: 1},
			{Key: "requested_days", Value: 1},
			{Key: "reason", Value: 1},
			{Key: "status", Value: 1},
			{Key: "approved_start", Value: 1},
			{Key: "approved_end", Value: 1},
			{Key: "approved_days", Value: 1},
			{Key: "decision_note", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "staff_code", Value: "$staff.staff_id"},
			{Key: "staff_name", Value: "$user.name"},
			{Key: "staff_email", Value: "$user.email"},
			{Key: "department", Value: "$staff.department"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to run leave listing aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode leave listing: %w", err)
	}
	if results == nil {
		results = []bson.M{}
	}
	return results, nil
}

func (r *leaveRequestRepository) CountPending(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": models.LeaveStatusPending})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}
	return count, nil
}

// Approve decides a pending request, possibly for a sub-range of the
// requested dates. The status change and the balance deduction commit in
// one transaction.
func (r *leaveRequestRepository) Approve(ctx context.Context, id primitive.ObjectID, decidedBy primitive.ObjectID, start, end *time.Time, note string) (*models.LeaveRequest, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var req models.LeaveRequest
		if err := r.collection.FindOne(sc, bson.M{"_id": id}).Decode(&req); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("leave request not found: %w", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to find leave request: %w", err)
		}
		if req.Status != models.LeaveStatusPending {
			return nil, fmt.Errorf("leave request has already been decided: %w", ErrConflict)
		}

		approvedStart, approvedEnd, status, err := models.ResolveApprovedRange(req, start, end)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrConflict)
		}
		approvedDays := models.LeaveDays(approvedStart, approvedEnd)

		// Unpaid leave bypasses the balance.
		if req.Type != "unpaid" {
			balance, err := r.ensureBalance(sc, req.StaffID, approvedStart.Year())
			if err != nil {
				return nil, err
			}
			if balance.Used+approvedDays > balance.Allocated {
				return nil, fmt.Errorf("approving %d days exceeds the remaining balance: %w", approvedDays, ErrInsufficientBalance)
			}
			if _, err := r.balanceCollection.UpdateOne(sc,
				bson.M{"_id": balance.ID},
				bson.M{"$inc": bson.M{"used": approvedDays}, "$set": bson.M{"updated_at": time.Now()}},
			); err != nil {
				return nil, fmt.Errorf("failed to deduct leave balance: %w", err)
			}
		}

		now := time.Now()
		update := bson.M{"$set": bson.M{
			"status":         status,
			"approved_start": approvedStart,
			"approved_end":   approvedEnd,
			"approved_days":  approvedDays,
			"decision_note":  note,
			"decided_by":     decidedBy,
			"decided_at":     now,
			"updated_at":     now,
		}}
		if _, err := r.collection.UpdateOne(sc, bson.M{"_id": id}, update); err != nil {
			return nil, fmt.Errorf("failed to approve leave request: %w", err)
		}

		if err := r.collection.FindOne(sc, bson.M{"_id": id}).Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to reload leave request: %w", err)
		}
		return &req, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.LeaveRequest), nil
}

func (r *leaveRequestRepository) Reject(ctx context.Context, id primitive.ObjectID, decidedBy primitive.ObjectID, note string) error {
	now := time.Now()
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.LeaveStatusPending},
		bson.M{"$set": bson.M{
			"status":        models.LeaveStatusRejected,
			"decision_note": note,
			"decided_by":    decidedBy,
			"decided_at":    now,
			"updated_at":    now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to reject leave request: %w", err)
	}
	if res.MatchedCount == 0 {
		req, findErr := r.FindByID(ctx, id)
		if findErr == nil && req == nil {
			return fmt.Errorf("leave request not found: %w", ErrNotFound)
		}
		return fmt.Errorf("leave request has already been decided: %w", ErrConflict)
	}
	return nil
}

// Revoke cancels an approved request and restores the deducted days in
// the same transaction.
func (r *leaveRequestRepository) Revoke(ctx context.Context, id primitive.ObjectID, decidedBy primitive.ObjectID) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var req models.LeaveRequest
		if err := r.collection.FindOne(sc, bson.M{"_id": id}).Decode(&req); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("leave request not found: %w", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to find leave request: %w", err)
		}
		if req.Status != models.LeaveStatusApproved && req.Status != models.LeaveStatusPartiallyApproved {
			return nil, fmt.Errorf("only approved requests can be revoked: %w", ErrConflict)
		}

		if req.Type != "unpaid" && req.ApprovedDays > 0 && req.ApprovedStart != nil {
			if _, err := r.balanceCollection.UpdateOne(sc,
				bson.M{"staff_id": req.StaffID, "year": req.ApprovedStart.Year()},
				bson.M{"$inc": bson.M{"used": -req.ApprovedDays}, "$set": bson.M{"updated_at": time.Now()}},
			); err != nil {
				return nil, fmt.Errorf("failed to restore leave balance: %w", err)
			}
		}

		now := time.Now()
		update := bson.M{"$set": bson.M{
			"status":     models.LeaveStatusRevoked,
			"decided_by": decidedBy,
			"decided_at": now,
			"updated_at": now,
		}}
		if _, err := r.collection.UpdateOne(sc, bson.M{"_id": id}, update); err != nil {
			return nil, fmt.Errorf("failed to revoke leave request: %w", err)
		}
		return nil, nil
	})
	return err
}

func (r *leaveRequestRepository) HasApprovedLeaveOn(ctx context.Context, staffID primitive.ObjectID, day time.Time) (bool, error) {
	dayStart, _ := models.DayWindow(day)
	filter := bson.M{
		"staff_id":       staffID,
		"status":         bson.M{"$in": bson.A{models.LeaveStatusApproved, models.LeaveStatusPartiallyApproved}},
		"approved_start": bson.M{"$lte": dayStart},
		"approved_end":   bson.M{"$gte": dayStart},
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}
	return count > 0, nil
}

func (r *leaveRequestRepository) GetBalance(ctx context.Context, staffID primitive.ObjectID, year int) (*models.LeaveBalance, error) {
	return r.ensureBalance(ctx, staffID, year)
}

func (r *leaveRequestRepository) ensureBalance(ctx context.Context, staffID primitive.ObjectID, year int) (*models.LeaveBalance, error) {
	filter := bson.M{"staff_id": staffID, "year": year}
	update := bson.M{
		"$setOnInsert": bson.M{
			"staff_id":   staffID,
			"year":       year,
			"allocated":  DefaultAnnualAllocation,
			"used":       0,
			"updated_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var balance models.LeaveBalance
	if err := r.balanceCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&balance); err != nil {
		return nil, fmt.Errorf("failed to load leave balance: %w", err)
	}
	return &balance, nil
}
