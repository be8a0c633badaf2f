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

type ExpenseRepository struct {
	collection *mongo.Collection
}

func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{
		collection: config.GetCollection(config.ExpenseCollection),
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) (*mongo.InsertOneResult, error) {
	expense.ID = primitive.NewObjectID()
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = expense.CreatedAt
	return r.collection.InsertOne(ctx, expense)
}

// FindByMonth returns every expense incurred in the month containing t,
// newest first.
func (r *ExpenseRepository) FindByMonth(ctx context.Context, t time.Time) ([]models.Expense, error) {
	monthStart, monthEnd := monthWindow(t)
	filter := bson.M{"incurred_date": bson.M{"$gte": monthStart, "$lt": monthEnd}}
	opts := options.Find().SetSort(bson.D{{Key: "incurred_date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var expenses []models.Expense
	if err = cursor.All(ctx, &expenses); err != nil {
		return nil, fmt.Errorf("failed to decode expenses: %w", err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return expenses, nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Expense, error) {
	var expense models.Expense
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&expense)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find expense by ID: %w", err)
	}
	return &expense, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("expense not found: %w", ErrNotFound)
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("expense not found: %w", ErrNotFound)
	}
	return nil
}

// MonthlySummary groups the month's expenses by category.
func (r *ExpenseRepository) MonthlySummary(ctx context.Context, t time.Time) ([]models.ExpenseCategorySummary, error) {
	monthStart, monthEnd := monthWindow(t)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "incurred_date", Value: bson.D{
				{Key: "$gte", Value: monthStart},
				{Key: "$lt", Value: monthEnd},
			}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to run expense summary aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var summary []models.ExpenseCategorySummary
	if err = cursor.All(ctx, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode expense summary: %w", err)
	}
	if summary == nil {
		summary = []models.ExpenseCategorySummary{}
	}
	return summary, nil
}

// MonthlyTotal sums the month's expenses across all categories.
func (r *ExpenseRepository) MonthlyTotal(ctx context.Context, t time.Time) (float64, error) {
	summary, err := r.MonthlySummary(ctx, t)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, bucket := range summary {
		total += bucket.Total
	}
	return total, nil
}

func monthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
