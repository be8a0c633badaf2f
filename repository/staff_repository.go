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
	util "github.com/fuyadhasanfahim/hr-management-sub001/pkg/utils"
)

type StaffRepository struct {
	collection        *mongo.Collection
	historyCollection *mongo.Collection
	userCollection    *mongo.Collection
	client            *mongo.Client
}

func NewStaffRepository() *StaffRepository {
	return &StaffRepository{
		collection:        config.GetCollection(config.StaffCollection),
		historyCollection: config.GetCollection(config.SalaryHistoryCollection),
		userCollection:    config.GetCollection(config.UserCollection),
		client:            config.MongoConn,
	}
}

// rosterFacetResult decodes the $facet output: the page of rows and the
// count computed over the same filtered set.
type rosterFacetResult struct {
	Data  []models.EnrichedStaff `bson:"data"`
	Total []struct {
		Count int64 `bson:"count"`
	} `bson:"total"`
}

// ListRoster runs the filtered, paginated, enriched staff listing. The
// pipeline is a pure read; a page past the end yields an empty slice with
// the total still reported.
func (r *StaffRepository) ListRoster(ctx context.Context, q models.RosterQuery) (*models.RosterPage, error) {
	now := time.Now()
	pipeline := append(BuildRosterPipeline(q, now), stageFacet(q))

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to run roster aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var results []rosterFacetResult
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode roster results: %w", err)
	}

	page := &models.RosterPage{Staffs: []models.EnrichedStaff{}}
	if len(results) > 0 {
		if results[0].Data != nil {
			page.Staffs = results[0].Data
		}
		var total int64
		if len(results[0].Total) > 0 {
			total = results[0].Total[0].Count
		}
		page.Meta = models.NewPageMeta(total, q.Page, q.Limit)
	} else {
		page.Meta = models.NewPageMeta(0, q.Page, q.Limit)
	}
	return page, nil
}

func (r *StaffRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
	return r.findOne(ctx, bson.M{"_id": id}, false)
}

// FindByIDWithSensitive includes the salary/PIN fields; only the salary
// flows may use it.
func (r *StaffRepository) FindByIDWithSensitive(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
	return r.findOne(ctx, bson.M{"_id": id}, true)
}

func (r *StaffRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Staff, error) {
	return r.findOne(ctx, bson.M{"user_id": userID}, false)
}

func (r *StaffRepository) FindByUserIDWithSensitive(ctx context.Context, userID primitive.ObjectID) (*models.Staff, error) {
	return r.findOne(ctx, bson.M{"user_id": userID}, true)
}

func (r *StaffRepository) FindByStaffID(ctx context.Context, staffID string) (*models.Staff, error) {
	return r.findOne(ctx, bson.M{"staff_id": staffID}, false)
}

func (r *StaffRepository) findOne(ctx context.Context, filter bson.M, withSensitive bool) (*models.Staff, error) {
	opts := options.FindOne()
	if !withSensitive {
		opts.SetProjection(bson.M{
			"salary":            0,
			"salary_pin":        0,
			"pin_reset_token":   0,
			"pin_reset_expires": 0,
		})
	}

	var staff models.Staff
	err := r.collection.FindOne(ctx, filter, opts).Decode(&staff)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find staff: %w", err)
	}
	return &staff, nil
}

// CreateStaff inserts an administratively created staff record. The
// duplicate check and insert run in one transaction so two concurrent
// creations with the same staff_id cannot both succeed.
func (r *StaffRepository) CreateStaff(ctx context.Context, staff *models.Staff) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		count, err := r.collection.CountDocuments(sc, bson.M{"$or": bson.A{
			bson.M{"staff_id": staff.StaffID},
			bson.M{"phone": staff.Phone},
		}})
		if err != nil {
			return nil, fmt.Errorf("failed to check for existing staff: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("staff ID or phone already in use: %w", ErrConflict)
		}

		staff.ID = primitive.NewObjectID()
		staff.CreatedAt = time.Now()
		staff.UpdatedAt = staff.CreatedAt
		if staff.Status == "" {
			staff.Status = models.StaffStatusActive
		}

		if _, err := r.collection.InsertOne(sc, staff); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, fmt.Errorf("staff ID or phone already in use: %w", ErrConflict)
			}
			return nil, fmt.Errorf("failed to create staff: %w", err)
		}
		return nil, nil
	})
	return err
}

// CompleteProfile is the one-time self-service flow. A staff shell is
// created for the acting user if none exists, with a staff_id taken from
// the atomic counter; profile_completed flips false->true exactly once.
func (r *StaffRepository) CompleteProfile(ctx context.Context, userID primitive.ObjectID, fields bson.M, counters *CounterRepository) (*models.Staff, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var staff models.Staff
		err := r.collection.FindOne(sc, bson.M{"user_id": userID}).Decode(&staff)
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			seq, err := counters.NextSequence(sc, models.StaffIDCounterKey)
			if err != nil {
				return nil, err
			}
			now := time.Now()
			staff = models.Staff{
				ID:        primitive.NewObjectID(),
				UserID:    &userID,
				StaffID:   util.FormatStaffID(seq),
				Status:    models.StaffStatusActive,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, err := r.collection.InsertOne(sc, &staff); err != nil {
				return nil, fmt.Errorf("failed to create staff shell: %w", err)
			}
		case err != nil:
			return nil, fmt.Errorf("failed to look up staff for user: %w", err)
		case staff.ProfileCompleted:
			return nil, ErrProfileCompleted
		}

		fields["profile_completed"] = true
		fields["updated_at"] = time.Now()
		if _, err := r.collection.UpdateOne(sc, bson.M{"_id": staff.ID}, bson.M{"$set": fields}); err != nil {
			return nil, fmt.Errorf("failed to complete profile: %w", err)
		}

		if err := r.collection.FindOne(sc, bson.M{"_id": staff.ID}).Decode(&staff); err != nil {
			return nil, fmt.Errorf("failed to reload staff: %w", err)
		}
		return &staff, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Staff), nil
}

// UpdateStaff applies field updates; when the payload carries a role
// change, the linked user's role is updated in the same transaction.
func (r *StaffRepository) UpdateStaff(ctx context.Context, id primitive.ObjectID, fields bson.M, newRole string) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var staff models.Staff
		if err := r.collection.FindOne(sc, bson.M{"_id": id}).Decode(&staff); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("staff not found: %w", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to find staff: %w", err)
		}

		fields["updated_at"] = time.Now()
		if _, err := r.collection.UpdateOne(sc, bson.M{"_id": id}, bson.M{"$set": fields}); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, fmt.Errorf("phone already in use: %w", ErrConflict)
			}
			return nil, fmt.Errorf("failed to update staff: %w", err)
		}

		if newRole != "" {
			if staff.UserID == nil {
				return nil, fmt.Errorf("cannot change role: staff has no linked user: %w", ErrConflict)
			}
			update := bson.M{"$set": bson.M{"role": newRole, "updated_at": time.Now()}}
			if _, err := r.userCollection.UpdateOne(sc, bson.M{"_id": *staff.UserID}, update); err != nil {
				return nil, fmt.Errorf("failed to update linked user role: %w", err)
			}
		}
		return nil, nil
	})
	return err
}

// UpdateSalary changes the salary and appends the immutable history entry
// atomically: either both writes commit or neither does.
func (r *StaffRepository) UpdateSalary(ctx context.Context, id primitive.ObjectID, newSalary float64, changedBy primitive.ObjectID, reason string) (*models.SalaryHistory, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var staff models.Staff
		if err := r.collection.FindOne(sc, bson.M{"_id": id}).Decode(&staff); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("staff not found: %w", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to find staff: %w", err)
		}

		update := bson.M{"$set": bson.M{"salary": newSalary, "updated_at": time.Now()}}
		if _, err := r.collection.UpdateOne(sc, bson.M{"_id": id}, update); err != nil {
			return nil, fmt.Errorf("failed to update salary: %w", err)
		}

		entry := &models.SalaryHistory{
			ID:             primitive.NewObjectID(),
			StaffID:        id,
			PreviousSalary: staff.Salary,
			NewSalary:      newSalary,
			ChangedBy:      changedBy,
			Reason:         reason,
			ChangedAt:      time.Now(),
		}
		if _, err := r.historyCollection.InsertOne(sc, entry); err != nil {
			return nil, fmt.Errorf("failed to record salary history: %w", err)
		}
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.SalaryHistory), nil
}

func (r *StaffRepository) ListSalaryHistory(ctx context.Context, staffID primitive.ObjectID) ([]models.SalaryHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "changed_at", Value: -1}})
	cursor, err := r.historyCollection.Find(ctx, bson.M{"staff_id": staffID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary history: %w", err)
	}
	defer cursor.Close(ctx)

	var history []models.SalaryHistory
	if err = cursor.All(ctx, &history); err != nil {
		return nil, fmt.Errorf("failed to decode salary history: %w", err)
	}
	if history == nil {
		history = []models.SalaryHistory{}
	}
	return history, nil
}

func (r *StaffRepository) SetSalaryPin(ctx context.Context, id primitive.ObjectID, pinHash string) error {
	update := bson.M{
		"$set":   bson.M{"salary_pin": pinHash, "updated_at": time.Now()},
		"$unset": bson.M{"pin_reset_token": "", "pin_reset_expires": ""},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set salary PIN: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("staff not found: %w", ErrNotFound)
	}
	return nil
}

func (r *StaffRepository) SetPinResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error {
	update := bson.M{"$set": bson.M{
		"pin_reset_token":   token,
		"pin_reset_expires": expires,
		"updated_at":        time.Now(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to store PIN reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("staff not found: %w", ErrNotFound)
	}
	return nil
}

func (r *StaffRepository) SetSalaryVisibility(ctx context.Context, id primitive.ObjectID, visible bool) error {
	update := bson.M{"$set": bson.M{"salary_visible": visible, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update salary visibility: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("staff not found: %w", ErrNotFound)
	}
	return nil
}

func (r *StaffRepository) DeleteStaff(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("staff not found: %w", ErrNotFound)
	}
	return nil
}

// FindActiveShares returns the profit-share inputs for all active staff.
func (r *StaffRepository) FindActiveShares(ctx context.Context) ([]models.StaffShare, error) {
	filter := bson.M{"status": models.StaffStatusActive, "share_percent": bson.M{"$gt": 0}}
	opts := options.Find().SetProjection(bson.M{"_id": 1, "share_percent": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find staff shares: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID           primitive.ObjectID `bson:"_id"`
		SharePercent float64            `bson:"share_percent"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode staff shares: %w", err)
	}

	shares := make([]models.StaffShare, 0, len(rows))
	for _, row := range rows {
		shares = append(shares, models.StaffShare{StaffID: row.ID, SharePercent: row.SharePercent})
	}
	return shares, nil
}

// FindAllActive returns active staff with their id and current shift
// resolution inputs, used by the absent-marking job.
func (r *StaffRepository) FindAllActive(ctx context.Context) ([]models.Staff, error) {
	opts := options.Find().SetProjection(bson.M{
		"salary":            0,
		"salary_pin":        0,
		"pin_reset_token":   0,
		"pin_reset_expires": 0,
	})
	cursor, err := r.collection.Find(ctx, bson.M{"status": models.StaffStatusActive}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find active staff: %w", err)
	}
	defer cursor.Close(ctx)

	var staffs []models.Staff
	if err = cursor.All(ctx, &staffs); err != nil {
		return nil, fmt.Errorf("failed to decode active staff: %w", err)
	}
	return staffs, nil
}
