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

type ProfitShareRepository struct {
	collection *mongo.Collection
	client     *mongo.Client
}

func NewProfitShareRepository() *ProfitShareRepository {
	return &ProfitShareRepository{
		collection: config.GetCollection(config.ProfitShareCollection),
		client:     config.MongoConn,
	}
}

// CreateRun distributes netProfit among staff with a configured share.
// At most one run may exist per period, enforced inside the transaction
// so two concurrent runs for the same month cannot both commit.
func (r *ProfitShareRepository) CreateRun(ctx context.Context, period string, netProfit float64, runBy primitive.ObjectID, staffRepo *StaffRepository) (*models.ProfitShareRun, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		count, err := r.collection.CountDocuments(sc, bson.M{"period": period})
		if err != nil {
			return nil, fmt.Errorf("failed to check existing runs: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("a profit share run already exists for %s: %w", period, ErrConflict)
		}

		shares, err := staffRepo.FindActiveShares(sc)
		if err != nil {
			return nil, err
		}
		if len(shares) == 0 {
			return nil, fmt.Errorf("no staff has a profit share configured: %w", ErrNotFound)
		}

		lines, residual := models.ComputeDistribution(netProfit, shares)
		run := &models.ProfitShareRun{
			ID:        primitive.NewObjectID(),
			Period:    period,
			NetProfit: netProfit,
			Residual:  residual,
			Lines:     lines,
			RunBy:     runBy,
			CreatedAt: time.Now(),
		}
		if _, err := r.collection.InsertOne(sc, run); err != nil {
			return nil, fmt.Errorf("failed to insert profit share run: %w", err)
		}
		return run, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.ProfitShareRun), nil
}

func (r *ProfitShareRepository) ListRuns(ctx context.Context) ([]models.ProfitShareRun, error) {
	opts := options.Find().SetSort(bson.D{{Key: "period", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find profit share runs: %w", err)
	}
	defer cursor.Close(ctx)

	var runs []models.ProfitShareRun
	if err = cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("failed to decode profit share runs: %w", err)
	}
	if runs == nil {
		runs = []models.ProfitShareRun{}
	}
	return runs, nil
}

func (r *ProfitShareRepository) FindRunByID(ctx context.Context, id primitive.ObjectID) (*models.ProfitShareRun, error) {
	var run models.ProfitShareRun
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&run)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find profit share run by ID: %w", err)
	}
	return &run, nil
}
