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

type StaffHandler struct {
	staffRepo   *repository.StaffRepository
	counterRepo *repository.CounterRepository
}

func NewStaffHandler(staffRepo *repository.StaffRepository, counterRepo *repository.CounterRepository) *StaffHandler {
	return &StaffHandler{
		staffRepo:   staffRepo,
		counterRepo: counterRepo,
	}
}

// ListRoster godoc
// @Summary Staff roster
// @Description Lists staff joined with user, branch, today's attendance and current shift, with filters and pagination
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Rows per page (max 100)"
// @Param search query string false "Matches staff ID, name, email, department or designation"
// @Param department query string false "Exact department"
// @Param designation query string false "Exact designation"
// @Param status query string false "Staff status"
// @Param branchId query string false "Branch ObjectID"
// @Param shiftId query string false "Current shift ObjectID"
// @Param excludeAdmins query bool false "Drop rows whose linked user has a privileged role"
// @Success 200 {object} models.RosterPage
// @Failure 400 {object} models.ErrorResponse
// @Router /staff [get]
func (h *StaffHandler) ListRoster(c *fiber.Ctx) error {
	q, err := models.ParseRosterQuery(c.Queries())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	page, err := h.staffRepo.ListRoster(ctx, q)
	if err != nil {
		return repoError(c, err, "failed to list staff roster")
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

// GetStaff godoc
// @Summary Staff detail
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ObjectID"
// @Success 200 {object} models.Staff
// @Failure 404 {object} models.ErrorResponse
// @Router /staff/{id} [get]
func (h *StaffHandler) GetStaff(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	staff, err := h.staffRepo.FindByID(ctx, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load staff"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "staff not found"})
	}
	return c.Status(fiber.StatusOK).JSON(staff)
}

// GetStaffByCode godoc
// @Summary Staff detail by staff code
// @Description Looks a staff member up by the human-readable staff ID (e.g. STF-0042)
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param staffId path string true "Staff code"
// @Success 200 {object} models.Staff
// @Failure 404 {object} models.ErrorResponse
// @Router /staff/code/{staffId} [get]
func (h *StaffHandler) GetStaffByCode(c *fiber.Ctx) error {
	code := c.Params("staffId")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "staffId is required"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	staff, err := h.staffRepo.FindByStaffID(ctx, code)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load staff"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "staff not found"})
	}
	return c.Status(fiber.StatusOK).JSON(staff)
}

// CreateStaff godoc
// @Summary Create staff
// @Description Creates a shell staff record with an explicit staff ID (admin flow)
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param staff body models.StaffCreatePayload true "Staff data"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /staff [post]
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	var payload models.StaffCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	staff := &models.Staff{
		StaffID:     payload.StaffID,
		Phone:       payload.Phone,
		Department:  payload.Department,
		Designation: payload.Designation,
		Status:      models.StaffStatusActive,
		Salary:      payload.Salary,
	}
	if payload.BranchID != "" {
		branchID, err := primitive.ObjectIDFromHex(payload.BranchID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid branch_id"})
		}
		staff.BranchID = &branchID
	}
	if payload.JoinDate != "" {
		joinDate, err := time.Parse("2006-01-02", payload.JoinDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid join_date"})
		}
		staff.JoinDate = &joinDate
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := h.staffRepo.CreateStaff(ctx, staff); err != nil {
		return repoError(c, err, "failed to create staff")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "staff created",
		"id":      staff.ID.Hex(),
	})
}

// CompleteProfile godoc
// @Summary Complete own profile
// @Description First-login onboarding: creates or fills the staff record linked to the caller's user, assigning the next sequential staff ID
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body models.CompleteProfilePayload true "Profile data"
// @Success 200 {object} models.Staff
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /staff/complete-profile [post]
func (h *StaffHandler) CompleteProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	var payload models.CompleteProfilePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	fields := bson.M{
		"phone":       payload.Phone,
		"department":  payload.Department,
		"designation": payload.Designation,
	}
	if payload.BranchID != "" {
		branchID, err := primitive.ObjectIDFromHex(payload.BranchID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid branch_id"})
		}
		fields["branch_id"] = branchID
	}
	if payload.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", payload.DateOfBirth)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date_of_birth"})
		}
		fields["date_of_birth"] = dob
	}
	setIfPresent(fields, "national_id", payload.NationalID)
	setIfPresent(fields, "blood_group", payload.BloodGroup)
	setIfPresent(fields, "address", payload.Address)
	setIfPresent(fields, "emergency_contact", payload.EmergencyContact)
	setIfPresent(fields, "father_name", payload.FatherName)
	setIfPresent(fields, "mother_name", payload.MotherName)

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	staff, err := h.staffRepo.CompleteProfile(ctx, claims.UserID, fields, h.counterRepo)
	if err != nil {
		return repoError(c, err, "failed to complete profile")
	}
	return c.Status(fiber.StatusOK).JSON(staff)
}

// UpdateStaff godoc
// @Summary Update staff
// @Description Partial update of a staff record; changing role also updates the linked user
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ObjectID"
// @Param staff body models.StaffUpdatePayload true "Fields to change"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /staff/{id} [patch]
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.StaffUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	fields := bson.M{}
	setIfPresent(fields, "phone", payload.Phone)
	setIfPresent(fields, "department", payload.Department)
	setIfPresent(fields, "designation", payload.Designation)
	setIfPresent(fields, "status", payload.Status)
	setIfPresent(fields, "address", payload.Address)
	setIfPresent(fields, "emergency_contact", payload.EmergencyContact)
	if payload.BranchID != "" {
		branchID, err := primitive.ObjectIDFromHex(payload.BranchID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid branch_id"})
		}
		fields["branch_id"] = branchID
	}
	if payload.ExitDate != "" {
		exitDate, err := time.Parse("2006-01-02", payload.ExitDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid exit_date"})
		}
		fields["exit_date"] = exitDate
	}
	if payload.SharePercent != nil {
		fields["share_percent"] = *payload.SharePercent
	}
	if len(fields) == 0 && payload.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no fields to update"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := h.staffRepo.UpdateStaff(ctx, id, fields, payload.Role); err != nil {
		return repoError(c, err, "failed to update staff")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "staff updated"})
}

// DeleteStaff godoc
// @Summary Delete staff
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ObjectID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /staff/{id} [delete]
func (h *StaffHandler) DeleteStaff(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.staffRepo.DeleteStaff(ctx, id); err != nil {
		return repoError(c, err, "failed to delete staff")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "staff deleted"})
}

func setIfPresent(fields bson.M, key, value string) {
	if value != "" {
		fields[key] = value
	}
}
