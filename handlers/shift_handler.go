package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
	util "github.com/fuyadhasanfahim/hr-management-sub001/pkg/utils"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

type ShiftHandler struct {
	shiftRepo *repository.ShiftRepository
	staffRepo *repository.StaffRepository
}

func NewShiftHandler(shiftRepo *repository.ShiftRepository, staffRepo *repository.StaffRepository) *ShiftHandler {
	return &ShiftHandler{
		shiftRepo: shiftRepo,
		staffRepo: staffRepo,
	}
}

// Create godoc
// @Summary Create shift
// @Tags Shift
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shift body models.ShiftCreatePayload true "Shift data"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /shifts [post]
func (h *ShiftHandler) Create(c *fiber.Ctx) error {
	var payload models.ShiftCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	shift := &models.Shift{
		Name:        payload.Name,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		WorkdayRule: payload.WorkdayRule,
	}
	if shift.WorkdayRule != "" {
		if _, err := models.ShiftOccurrences(*shift, time.Now(), time.Now().AddDate(0, 0, 7)); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid workday_rule", "details": err.Error()})
		}
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.shiftRepo.CreateShift(ctx, shift)
	if err != nil {
		return repoError(c, err, "failed to create shift")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "shift created",
		"id":      result.InsertedID,
	})
}

// List godoc
// @Summary List shifts
// @Tags Shift
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Shift
// @Router /shifts [get]
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	shifts, err := h.shiftRepo.GetAllShifts(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list shifts"})
	}
	return c.Status(fiber.StatusOK).JSON(shifts)
}

// Get godoc
// @Summary Shift detail
// @Tags Shift
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shift ObjectID"
// @Success 200 {object} models.Shift
// @Failure 404 {object} models.ErrorResponse
// @Router /shifts/{id} [get]
func (h *ShiftHandler) Get(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	shift, err := h.shiftRepo.GetShiftByID(ctx, id)
	if err != nil {
		return repoError(c, err, "failed to load shift")
	}
	return c.Status(fiber.StatusOK).JSON(shift)
}

// Update godoc
// @Summary Update shift
// @Tags Shift
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shift ObjectID"
// @Param shift body models.ShiftUpdatePayload true "Fields to change"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /shifts/{id} [patch]
func (h *ShiftHandler) Update(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.ShiftUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	fields := bson.M{}
	setIfPresent(fields, "name", payload.Name)
	setIfPresent(fields, "start_time", payload.StartTime)
	setIfPresent(fields, "end_time", payload.EndTime)
	setIfPresent(fields, "workday_rule", payload.WorkdayRule)
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no fields to update"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	res, err := h.shiftRepo.UpdateShift(ctx, id, fields)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update shift"})
	}
	if res.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "shift not found"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "shift updated"})
}

// Delete godoc
// @Summary Delete shift
// @Description Fails while the shift still has active assignments
// @Tags Shift
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shift ObjectID"
// @Success 200 {object} models.MessageResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /shifts/{id} [delete]
func (h *ShiftHandler) Delete(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.shiftRepo.DeleteShift(ctx, id); err != nil {
		return repoError(c, err, "failed to delete shift")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "shift deleted"})
}

// Assign godoc
// @Summary Assign a shift to staff
// @Description Deactivates any previous active assignment and creates the new one in one transaction
// @Tags Shift
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body models.ShiftAssignPayload true "Assignment data"
// @Success 201 {object} models.ShiftAssignment
// @Failure 404 {object} models.ErrorResponse
// @Router /shifts/assign [post]
func (h *ShiftHandler) Assign(c *fiber.Ctx) error {
	var payload models.ShiftAssignPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	staffID, err := primitive.ObjectIDFromHex(payload.StaffID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid staff_id"})
	}
	shiftID, err := primitive.ObjectIDFromHex(payload.ShiftID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid shift_id"})
	}
	startDate, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid start_date"})
	}

	assignment := &models.ShiftAssignment{
		StaffID:   staffID,
		ShiftID:   shiftID,
		StartDate: startDate,
		IsActive:  true,
	}
	if payload.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", payload.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid end_date"})
		}
		assignment.EndDate = &endDate
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	staff, err := h.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load staff"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "staff not found"})
	}
	if _, err := h.shiftRepo.GetShiftByID(ctx, shiftID); err != nil {
		return repoError(c, err, "failed to load shift")
	}

	if err := h.shiftRepo.AssignShift(ctx, assignment); err != nil {
		return repoError(c, err, "failed to assign shift")
	}
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// EndAssignment godoc
// @Summary End a shift assignment
// @Description Deactivates the assignment, closing it at the given end date (default today)
// @Tags Shift
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ObjectID"
// @Param end body models.AssignmentEndPayload false "End date"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /shifts/assignments/{id}/end [post]
func (h *ShiftHandler) EndAssignment(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.AssignmentEndPayload
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
		}
		if errs := util.ValidateStruct(payload); errs != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}
	}

	endDate := time.Now()
	if payload.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", payload.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid end_date"})
		}
		endDate = parsed
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.shiftRepo.EndAssignment(ctx, id, endDate); err != nil {
		return repoError(c, err, "failed to end assignment")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "assignment ended"})
}

// Assignments godoc
// @Summary Assignment history of a staff member
// @Tags Shift
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ObjectID"
// @Success 200 {array} models.ShiftAssignment
// @Router /staff/{id}/shift-assignments [get]
func (h *ShiftHandler) Assignments(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	assignments, err := h.shiftRepo.ListAssignmentsByStaff(ctx, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list assignments"})
	}
	return c.Status(fiber.StatusOK).JSON(assignments)
}
