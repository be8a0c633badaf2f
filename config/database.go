package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var MongoConn *mongo.Client

var DBName = "hr-management-db"

var (
	UserCollection            = "users"
	StaffCollection           = "staffs"
	BranchCollection          = "branches"
	AttendanceCollection      = "attendances"
	ShiftCollection           = "shifts"
	ShiftAssignmentCollection = "shift_assignments"
	SalaryHistoryCollection   = "salary_histories"
	CounterCollection         = "counters"
	LeaveRequestCollection    = "leave_requests"
	LeaveBalanceCollection    = "leave_balances"
	ClientCollection          = "clients"
	OrderCollection           = "orders"
	ExpenseCollection         = "expenses"
	ProfitShareCollection     = "profit_shares"
	JobOpeningCollection      = "job_openings"
	JobApplicationCollection  = "job_applications"
	QRCodeCollection          = "qr_codes"
)

func MongoConnect() {
	mongoURI := os.Getenv("MONGOSTRING")
	if mongoURI == "" {
		log.Fatal("MONGOSTRING is not set in the environment")
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to create MongoDB client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = client.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB")
	MongoConn = client
}

func GetCollection(collectionName string) *mongo.Collection {
	if MongoConn == nil {
		log.Fatal("MongoDB client is not initialized. Call MongoConnect() first")
	}
	return MongoConn.Database(DBName).Collection(collectionName)
}

// InitDatabase creates the unique indexes the write paths rely on.
// staff_id and phone are unique across staffs; user_id is unique-sparse
// because a staff record may not be linked to a user yet during onboarding.
func InitDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	staffIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "staff_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
	if _, err := GetCollection(StaffCollection).Indexes().CreateMany(ctx, staffIndexes); err != nil {
		log.Fatalf("Failed to create staff indexes: %v", err)
	}

	if _, err := GetCollection(UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		log.Fatalf("Failed to create user email index: %v", err)
	}

	if _, err := GetCollection(BranchCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		log.Fatalf("Failed to create branch name index: %v", err)
	}

	if _, err := GetCollection(AttendanceCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "staff_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		log.Fatalf("Failed to create attendance index: %v", err)
	}

	if _, err := GetCollection(JobApplicationCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "opening_id", Value: 1}, {Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		log.Fatalf("Failed to create job application index: %v", err)
	}

	log.Println("Database indexes ensured")
}

// GetGridFSBucket returns the bucket used for avatar and document
// uploads.
func GetGridFSBucket() (*gridfs.Bucket, error) {
	if MongoConn == nil {
		log.Fatal("MongoDB client is not initialized. Call MongoConnect() first")
	}
	return gridfs.NewBucket(MongoConn.Database(DBName))
}

func DisconnectDB() {
	if MongoConn != nil {
		if err := MongoConn.Disconnect(context.Background()); err != nil {
			log.Fatalf("Error disconnecting from MongoDB: %v", err)
		}
		log.Println("Disconnected from MongoDB")
	}
}
