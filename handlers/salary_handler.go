package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
	"github.com/fuyadhasanfahim/hr-management-sub001/pkg/mailer"
	util "github.com/fuyadhasanfahim/hr-management-sub001/pkg/utils"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

const pinResetTTL = 30 * time.Minute

type SalaryHandler struct {
	staffRepo *repository.StaffRepository
	userRepo  *repository.UserRepository
	mailer    *mailer.Mailer
}

func NewSalaryHandler(staffRepo *repository.StaffRepository, userRepo *repository.UserRepository, mail *mailer.Mailer) *SalaryHandler {
	return &SalaryHandler{
		staffRepo: staffRepo,
		userRepo:  userRepo,
		mailer:    mail,
	}
}

// ViewSalary godoc
// @Summary View own salary
// @Description Returns the caller's salary. Fails closed: salary must be marked visible and the PIN must match.
// @Tags Salary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.SalaryViewPayload true "Salary PIN"
// @Success 200 {object} models.SalaryViewResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /salary/view [post]
func (h *SalaryHandler) ViewSalary(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	var payload models.SalaryViewPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	staff, err := h.staffRepo.FindByUserIDWithSensitive(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load staff record"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no staff record linked to this account"})
	}
	if !staff.SalaryVisible || staff.SalaryPin == "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "salary is not viewable"})
	}
	if !util.CheckPasswordHash(payload.Pin, staff.SalaryPin) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "incorrect PIN"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"salary":   staff.Salary,
		"staff_id": staff.StaffID,
	})
}

// SetPin godoc
// @Summary Set salary PIN
// @Description Sets or replaces the caller's salary PIN
// @Tags Salary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.SetSalaryPinPayload true "New PIN"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /salary/pin [post]
func (h *SalaryHandler) SetPin(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	var payload models.SetSalaryPinPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	staff, err := h.staffRepo.FindByUserID(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load staff record"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no staff record linked to this account"})
	}

	pinHash, err := util.HashPassword(payload.Pin)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to hash PIN"})
	}
	if err := h.staffRepo.SetSalaryPin(ctx, staff.ID, pinHash); err != nil {
		return repoError(c, err, "failed to set PIN")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "salary PIN set"})
}

// RequestPinReset godoc
// @Summary Request PIN reset
// @Description Emails the caller a short-lived reset token
// @Tags Salary
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /salary/pin/reset-request [post]
func (h *SalaryHandler) RequestPinReset(c *fiber.Ctx) error {
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

	token := uuid.NewString()
	expires := time.Now().Add(pinResetTTL)
	if err := h.staffRepo.SetPinResetToken(ctx, staff.ID, token, expires); err != nil {
		return repoError(c, err, "failed to store reset token")
	}

	body := fmt.Sprintf(
		"A salary PIN reset was requested for your account.\n\nReset token: %s\n\nThe token expires in %d minutes. Ignore this email if you did not request it.",
		token, int(pinResetTTL.Minutes()),
	)
	if err := h.mailer.Send(claims.Email, "Salary PIN reset", body); err != nil {
		log.Error().Err(err).Str("email", claims.Email).Msg("failed to send PIN reset email")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to send reset email"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "reset token sent"})
}

// ResetPin godoc
// @Summary Reset PIN with token
// @Tags Salary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ResetSalaryPinPayload true "Reset token and new PIN"
// @Success 200 {object} models.MessageResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /salary/pin/reset [post]
func (h *SalaryHandler) ResetPin(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	var payload models.ResetSalaryPinPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	staff, err := h.staffRepo.FindByUserIDWithSensitive(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load staff record"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no staff record linked to this account"})
	}
	if staff.PinResetToken == "" || staff.PinResetToken != payload.Token {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid reset token"})
	}
	if staff.PinResetExpires == nil || staff.PinResetExpires.Before(time.Now()) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "reset token has expired"})
	}

	pinHash, err := util.HashPassword(payload.Pin)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to hash PIN"})
	}
	if err := h.staffRepo.SetSalaryPin(ctx, staff.ID, pinHash); err != nil {
		return repoError(c, err, "failed to reset PIN")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "salary PIN reset"})
}

// AdminViewSalary godoc
// @Summary A staff member's current salary (admin)
// @Tags Salary
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ObjectID"
// @Success 200 {object} models.SalaryViewResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /staff/{id}/salary [get]
func (h *SalaryHandler) AdminViewSalary(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	staff, err := h.staffRepo.FindByIDWithSensitive(ctx, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load staff record"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "staff not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"staff_id":       staff.StaffID,
		"salary":         staff.Salary,
		"salary_visible": staff.SalaryVisible,
	})
}

// UpdateSalary godoc
// @Summary Update a staff member's salary
// @Description Sets the new salary and appends a history entry in one transaction
// @Tags Salary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ObjectID"
// @Param payload body models.SalaryUpdatePayload true "New salary and reason"
// @Success 200 {object} models.SalaryHistory
// @Failure 404 {object} models.ErrorResponse
// @Router /staff/{id}/salary [put]
func (h *SalaryHandler) UpdateSalary(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.SalaryUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	entry, err := h.staffRepo.UpdateSalary(ctx, id, payload.Salary, claims.UserID, payload.Reason)
	if err != nil {
		return repoError(c, err, "failed to update salary")
	}
	return c.Status(fiber.StatusOK).JSON(entry)
}

// SalaryHistory godoc
// @Summary Salary history of a staff member
// @Tags Salary
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ObjectID"
// @Success 200 {array} models.SalaryHistory
// @Router /staff/{id}/salary/history [get]
func (h *SalaryHandler) SalaryHistory(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	history, err := h.staffRepo.ListSalaryHistory(ctx, id)
	if err != nil {
		return repoError(c, err, "failed to load salary history")
	}
	return c.Status(fiber.StatusOK).JSON(history)
}

// SetVisibility godoc
// @Summary Toggle salary visibility
// @Description Controls whether the staff member can view their own salary
// @Tags Salary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ObjectID"
// @Param payload body models.SalaryVisibilityPayload true "Visibility flag"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /staff/{id}/salary/visibility [put]
func (h *SalaryHandler) SetVisibility(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.SalaryVisibilityPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if payload.Visible == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "visible is required"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.staffRepo.SetSalaryVisibility(ctx, id, *payload.Visible); err != nil {
		return repoError(c, err, "failed to update salary visibility")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "salary visibility updated"})
}
