package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fuyadhasanfahim/hr-management-sub001/config"
	"github.com/fuyadhasanfahim/hr-management-sub001/models"
)

type AttendanceRepository interface {
	CreateQRCode(ctx context.Context, qrCode *models.QRCode) (*mongo.InsertOneResult, error)
	FindQRCodeByValue(ctx context.Context, code string) (*models.QRCode, error)
	FindActiveQRCodeByDate(ctx context.Context, date string) (*models.QRCode, error)
	MarkQRCodeAsUsed(ctx context.Context, qrCodeID, staffID primitive.ObjectID) (*mongo.UpdateResult, error)

	CreateAttendance(ctx context.Context, attendance *models.Attendance) (*mongo.InsertOneResult, error)
	FindByStaffAndDay(ctx context.Context, staffID primitive.ObjectID, day time.Time) (*models.Attendance, error)
	CheckOut(ctx context.Context, attendanceID primitive.ObjectID, checkOut time.Time, totalMinutes int) (*mongo.UpdateResult, error)
	UpdateAttendance(ctx context.Context, id primitive.ObjectID, payload *models.AttendanceUpdatePayload) (*mongo.UpdateResult, error)
	FindByStaffID(ctx context.Context, staffID primitive.ObjectID) ([]models.Attendance, error)
	ListWithStaff(ctx context.Context, filter bson.M, page, limit int64) ([]bson.M, int64, error)

	MarkAbsentStaff(ctx context.Context, staffRepo *StaffRepository, shiftRepo *ShiftRepository, leaveRepo LeaveRequestRepository) error
}

type attendanceRepository struct {
	qrCodeCollection     *mongo.Collection
	attendanceCollection *mongo.Collection
}

func NewAttendanceRepository() AttendanceRepository {
	return &attendanceRepository{
		qrCodeCollection:     config.GetCollection(config.QRCodeCollection),
		attendanceCollection: config.GetCollection(config.AttendanceCollection),
	}
}

func (r *attendanceRepository) CreateQRCode(ctx context.Context, qrCode *models.QRCode) (*mongo.InsertOneResult, error) {
	res, err := r.qrCodeCollection.InsertOne(ctx, qrCode)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}
	return res, nil
}

func (r *attendanceRepository) FindQRCodeByValue(ctx context.Context, value string) (*models.QRCode, error) {
	var qrCode models.QRCode
	err := r.qrCodeCollection.FindOne(ctx, bson.M{"code": value}).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &qrCode, nil
}

func (r *attendanceRepository) FindActiveQRCodeByDate(ctx context.Context, date string) (*models.QRCode, error) {
	filter := bson.M{
		"date":       date,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var qrCode models.QRCode
	err := r.qrCodeCollection.FindOne(ctx, filter, opts).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active QR code: %w", err)
	}
	return &qrCode, nil
}

func (r *attendanceRepository) MarkQRCodeAsUsed(ctx context.Context, qrCodeID, staffID primitive.ObjectID) (*mongo.UpdateResult, error) {
	update := bson.M{
		"$addToSet": bson.M{"used_by": staffID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	res, err := r.qrCodeCollection.UpdateOne(ctx, bson.M{"_id": qrCodeID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to mark QR code as used: %w", err)
	}
	return res, nil
}

func (r *attendanceRepository) CreateAttendance(ctx context.Context, attendance *models.Attendance) (*mongo.InsertOneResult, error) {
	res, err := r.attendanceCollection.InsertOne(ctx, attendance)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("attendance already recorded for this day: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create attendance: %w", err)
	}
	return res, nil
}

func (r *attendanceRepository) FindByStaffAndDay(ctx context.Context, staffID primitive.ObjectID, day time.Time) (*models.Attendance, error) {
	dayStart, dayEnd := models.DayWindow(day)
	filter := bson.M{
		"staff_id": staffID,
		"date":     bson.M{"$gte": dayStart, "$lt": dayEnd},
	}

	var attendance models.Attendance
	err := r.attendanceCollection.FindOne(ctx, filter).Decode(&attendance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance by staff and day: %w", err)
	}
	return &attendance, nil
}

func (r *attendanceRepository) CheckOut(ctx context.Context, attendanceID primitive.ObjectID, checkOut time.Time, totalMinutes int) (*mongo.UpdateResult, error) {
	update := bson.M{
		"$set": bson.M{
			"check_out":     checkOut,
			"total_minutes": totalMinutes,
			"updated_at":    time.Now(),
		},
	}
	res, err := r.attendanceCollection.UpdateByID(ctx, attendanceID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to record check-out: %w", err)
	}
	return res, nil
}

func (r *attendanceRepository) UpdateAttendance(ctx context.Context, id primitive.ObjectID, payload *models.AttendanceUpdatePayload) (*mongo.UpdateResult, error) {
	set := bson.M{"updated_at": time.Now()}
	if payload.Status != "" {
		set["status"] = payload.Status
	}
	if payload.Note != "" {
		set["note"] = payload.Note
	}

	res, err := r.attendanceCollection.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}
	return res, nil
}

func (r *attendanceRepository) FindByStaffID(ctx context.Context, staffID primitive.ObjectID) ([]models.Attendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.attendanceCollection.Find(ctx, bson.M{"staff_id": staffID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance history: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Attendance
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode attendance history: %w", err)
	}
	if results == nil {
		results = []models.Attendance{}
	}
	return results, nil
}

// ListWithStaff pages the attendance log joined with staff and user
// identity for the admin view.
func (r *attendanceRepository) ListWithStaff(ctx context.Context, filter bson.M, page, limit int64) ([]bson.M, int64, error) {
	total, err := r.attendanceCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}, {Key: "check_in", Value: -1}}}},
		{{Key: "$skip", Value: (page - 1) * limit}},
		{{Key: "$limit", Value: limit}},
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
			{Key: "date", Value: 1},
			{Key: "status", Value: 1},
			{Key: "check_in", Value: 1},
			{Key: "check_out", Value: 1},
			{Key: "late_minutes", Value: 1},
			{Key: "total_minutes", Value: 1},
			{Key: "note", Value: 1},
			{Key: "staff_id", Value: "$staff.staff_id"},
			{Key: "staff_object_id", Value: "$staff._id"},
			{Key: "staff_name", Value: "$user.name"},
			{Key: "staff_email", Value: "$user.email"},
			{Key: "department", Value: "$staff.department"},
			{Key: "designation", Value: "$staff.designation"},
		}}},
	}

	cursor, err := r.attendanceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to run attendance aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err = cursor.All(ctx, &results); err != nil {
		return nil, 0, fmt.Errorf("failed to decode attendance aggregation: %w", err)
	}
	if results == nil {
		results = []bson.M{}
	}
	return results, total, nil
}

// MarkAbsentStaff runs after working hours: every active staff member
// with a working day on their current shift, no attendance record and no
// approved leave covering today gets an absent record.
func (r *attendanceRepository) MarkAbsentStaff(ctx context.Context, staffRepo *StaffRepository, shiftRepo *ShiftRepository, leaveRepo LeaveRequestRepository) error {
	now := time.Now()

	staffs, err := staffRepo.FindAllActive(ctx)
	if err != nil {
		return err
	}

	marked := 0
	for _, staff := range staffs {
		assignment, err := shiftRepo.FindActiveAssignment(ctx, staff.ID, now)
		if err != nil || assignment == nil {
			continue
		}

		shift, err := shiftRepo.GetShiftByID(ctx, assignment.ShiftID)
		if err != nil {
			continue
		}

		workday, err := models.IsWorkday(*shift, now)
		if err != nil || !workday {
			continue
		}

		endClock, err := time.Parse("15:04", shift.EndTime)
		if err != nil {
			continue
		}
		dayStart, _ := models.DayWindow(now)
		shiftEnd := dayStart.Add(time.Duration(endClock.Hour())*time.Hour + time.Duration(endClock.Minute())*time.Minute)
		if now.Before(shiftEnd) {
			continue
		}

		existing, err := r.FindByStaffAndDay(ctx, staff.ID, now)
		if err != nil || existing != nil {
			continue
		}

		onLeave, err := leaveRepo.HasApprovedLeaveOn(ctx, staff.ID, now)
		if err != nil || onLeave {
			continue
		}

		attendance := &models.Attendance{
			ID:        primitive.NewObjectID(),
			StaffID:   staff.ID,
			Date:      dayStart,
			Status:    models.AttendanceStatusAbsent,
			Note:      "Marked automatically after shift end",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if _, err := r.CreateAttendance(ctx, attendance); err != nil {
			log.Error().Err(err).Str("staff_id", staff.StaffID).Msg("Failed to mark staff absent")
			continue
		}
		marked++
	}

	log.Info().Int("marked", marked).Msg("Absent-marking job finished")
	return nil
}
