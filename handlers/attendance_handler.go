package handlers

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
	util "github.com/fuyadhasanfahim/hr-management-sub001/pkg/utils"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

const qrDateLayout = "2006-01-02"

type AttendanceHandler struct {
	attendanceRepo repository.AttendanceRepository
	staffRepo      *repository.StaffRepository
	shiftRepo      *repository.ShiftRepository
}

func NewAttendanceHandler(attendanceRepo repository.AttendanceRepository, staffRepo *repository.StaffRepository, shiftRepo *repository.ShiftRepository) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceRepo: attendanceRepo,
		staffRepo:      staffRepo,
		shiftRepo:      shiftRepo,
	}
}

// GenerateQR godoc
// @Summary Daily check-in QR code
// @Description Returns today's active QR code as a PNG, creating one if none exists yet
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{code=string,png_base64=string,expires_at=string}
// @Router /attendance/qr [post]
func (h *AttendanceHandler) GenerateQR(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	now := time.Now()
	today := now.Format(qrDateLayout)

	qr, err := h.attendanceRepo.FindActiveQRCodeByDate(ctx, today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to look up QR code"})
	}
	if qr == nil {
		_, dayEnd := models.DayWindow(now)
		qr = &models.QRCode{
			Code:      uuid.NewString(),
			Date:      today,
			ExpiresAt: dayEnd,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := h.attendanceRepo.CreateQRCode(ctx, qr); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create QR code"})
		}
	}

	png, err := qrcode.Encode(qr.Code, qrcode.Medium, 256)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to render QR code"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"code":       qr.Code,
		"png_base64": base64.StdEncoding.EncodeToString(png),
		"expires_at": qr.ExpiresAt,
	})
}

// Scan godoc
// @Summary Scan the check-in QR code
// @Description First scan of the day checks in (late minutes computed against the current shift); the second scan checks out
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.AttendanceScanPayload true "Scanned code"
// @Success 200 {object} models.Attendance
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /attendance/scan [post]
func (h *AttendanceHandler) Scan(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	var payload models.AttendanceScanPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	now := time.Now()

	qr, err := h.attendanceRepo.FindQRCodeByValue(ctx, payload.Code)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to look up QR code"})
	}
	if qr == nil || qr.Date != now.Format(qrDateLayout) || qr.ExpiresAt.Before(now) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR code is invalid or expired"})
	}

	staff, err := h.staffRepo.FindByUserID(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load staff record"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no staff record linked to this account"})
	}

	existing, err := h.attendanceRepo.FindByStaffAndDay(ctx, staff.ID, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load attendance"})
	}

	// Second scan of the day closes the record.
	if existing != nil {
		if existing.CheckOut != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "already checked out today"})
		}
		if existing.CheckIn == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "attendance record has no check-in"})
		}
		total := models.WorkedMinutes(*existing.CheckIn, now)
		if _, err := h.attendanceRepo.CheckOut(ctx, existing.ID, now, total); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to check out"})
		}
		existing.CheckOut = &now
		existing.TotalMinutes = total
		return c.Status(fiber.StatusOK).JSON(existing)
	}

	status := models.AttendanceStatusPresent
	lateMinutes := 0
	assignment, err := h.shiftRepo.FindActiveAssignment(ctx, staff.ID, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load shift assignment"})
	}
	if assignment != nil {
		shift, err := h.shiftRepo.GetShiftByID(ctx, assignment.ShiftID)
		if err == nil && shift != nil {
			lateMinutes = models.LateMinutes(shift.StartTime, now)
			if lateMinutes > 0 {
				status = models.AttendanceStatusLate
			}
		}
	}

	attendance := models.NewCheckIn(staff.ID, now, status, lateMinutes)
	if _, err := h.attendanceRepo.CreateAttendance(ctx, &attendance); err != nil {
		return repoError(c, err, "failed to record check-in")
	}
	if _, err := h.attendanceRepo.MarkQRCodeAsUsed(ctx, qr.ID, staff.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to mark QR code as used"})
	}

	return c.Status(fiber.StatusCreated).JSON(attendance)
}

// List godoc
// @Summary Attendance listing
// @Description Paginated attendance records joined with staff identity; filterable by date and staff
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Rows per page"
// @Param date query string false "Day (YYYY-MM-DD)"
// @Param staffId query string false "Staff ObjectID"
// @Param status query string false "Attendance status"
// @Success 200 {object} object{records=array,meta=models.PageMeta}
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	q, err := models.ParseRosterQuery(c.Queries())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	filter := bson.M{}
	if raw := c.Query("date"); raw != "" {
		day, err := time.Parse(qrDateLayout, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date"})
		}
		dayStart, dayEnd := models.DayWindow(day)
		filter["date"] = bson.M{"$gte": dayStart, "$lt": dayEnd}
	}
	if raw := c.Query("staffId"); raw != "" {
		staffID, parseErr := parseObjectID(raw)
		if parseErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid staffId"})
		}
		filter["staff_id"] = staffID
	}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	records, total, err := h.attendanceRepo.ListWithStaff(ctx, filter, q.Page, q.Limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list attendance"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"records": records,
		"meta":    models.NewPageMeta(total, q.Page, q.Limit),
	})
}

// MyAttendance godoc
// @Summary Own attendance history
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Attendance
// @Router /attendance/me [get]
func (h *AttendanceHandler) MyAttendance(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	staff, err := h.staffRepo.FindByUserID(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load staff record"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no staff record linked to this account"})
	}

	records, err := h.attendanceRepo.FindByStaffID(ctx, staff.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list attendance"})
	}
	return c.Status(fiber.StatusOK).JSON(records)
}

// Update godoc
// @Summary Correct an attendance record
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attendance ObjectID"
// @Param payload body models.AttendanceUpdatePayload true "Fields to change"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /attendance/{id} [patch]
func (h *AttendanceHandler) Update(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.AttendanceUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	res, err := h.attendanceRepo.UpdateAttendance(ctx, id, &payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update attendance"})
	}
	if res.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "attendance record not found"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "attendance updated"})
}
