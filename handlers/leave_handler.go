package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
	"github.com/fuyadhasanfahim/hr-management-sub001/pkg/mailer"
	util "github.com/fuyadhasanfahim/hr-management-sub001/pkg/utils"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

type LeaveHandler struct {
	leaveRepo repository.LeaveRequestRepository
	staffRepo *repository.StaffRepository
	userRepo  *repository.UserRepository
	mailer    *mailer.Mailer
}

func NewLeaveHandler(leaveRepo repository.LeaveRequestRepository, staffRepo *repository.StaffRepository, userRepo *repository.UserRepository, mail *mailer.Mailer) *LeaveHandler {
	return &LeaveHandler{
		leaveRepo: leaveRepo,
		staffRepo: staffRepo,
		userRepo:  userRepo,
		mailer:    mail,
	}
}

// Create godoc
// @Summary Request leave
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.LeaveCreatePayload true "Leave request"
// @Success 201 {object} models.LeaveRequest
// @Failure 400 {object} models.ErrorResponse
// @Router /leave [post]
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	var payload models.LeaveCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	startDate, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid start_date"})
	}
	endDate, err := time.Parse("2006-01-02", payload.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid end_date"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	staff, err := h.staffRepo.FindByUserID(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load staff record"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no staff record linked to this account"})
	}

	request := &models.LeaveRequest{
		StaffID:   staff.ID,
		Type:      payload.Type,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    payload.Reason,
	}
	if _, err := h.leaveRepo.Create(ctx, request); err != nil {
		return repoError(c, err, "failed to create leave request")
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

// MyRequests godoc
// @Summary Own leave requests
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.LeaveRequest
// @Router /leave/me [get]
func (h *LeaveHandler) MyRequests(c *fiber.Ctx) error {
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

	requests, err := h.leaveRepo.FindByStaffID(ctx, staff.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list leave requests"})
	}
	return c.Status(fiber.StatusOK).JSON(requests)
}

// MyBalance godoc
// @Summary Own leave balance for the current year
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.LeaveBalance
// @Router /leave/balance [get]
func (h *LeaveHandler) MyBalance(c *fiber.Ctx) error {
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

	balance, err := h.leaveRepo.GetBalance(ctx, staff.ID, time.Now().Year())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load leave balance"})
	}
	return c.Status(fiber.StatusOK).JSON(balance)
}

// List godoc
// @Summary Leave requests joined with staff identity
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {array} object
// @Router /leave [get]
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	requests, err := h.leaveRepo.ListWithStaff(ctx, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list leave requests"})
	}
	return c.Status(fiber.StatusOK).JSON(requests)
}

// Approve godoc
// @Summary Approve a leave request
// @Description Approves the full requested range, or a sub-range for a partial approval. Deducts the staff member's balance.
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ObjectID"
// @Param decision body models.LeaveDecisionPayload true "Approved range and note"
// @Success 200 {object} models.LeaveRequest
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /leave/{id}/approve [post]
func (h *LeaveHandler) Approve(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.LeaveDecisionPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	var start, end *time.Time
	if payload.ApprovedStart != "" {
		t, err := time.Parse("2006-01-02", payload.ApprovedStart)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid approved_start"})
		}
		start = &t
	}
	if payload.ApprovedEnd != "" {
		t, err := time.Parse("2006-01-02", payload.ApprovedEnd)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid approved_end"})
		}
		end = &t
	}

	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	request, err := h.leaveRepo.Approve(ctx, id, claims.UserID, start, end, payload.Note)
	if err != nil {
		return repoError(c, err, "failed to approve leave request")
	}

	h.notifyDecision(ctx, request)
	return c.Status(fiber.StatusOK).JSON(request)
}

// Reject godoc
// @Summary Reject a leave request
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ObjectID"
// @Param decision body models.LeaveRejectPayload true "Rejection note"
// @Success 200 {object} models.MessageResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /leave/{id}/reject [post]
func (h *LeaveHandler) Reject(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.LeaveRejectPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := h.leaveRepo.Reject(ctx, id, claims.UserID, payload.Note); err != nil {
		return repoError(c, err, "failed to reject leave request")
	}

	if request, err := h.leaveRepo.FindByID(ctx, id); err == nil && request != nil {
		h.notifyDecision(ctx, request)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "leave request rejected"})
}

// Revoke godoc
// @Summary Revoke an approved leave request
// @Description Cancels the approval and restores the deducted balance
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ObjectID"
// @Success 200 {object} models.MessageResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /leave/{id}/revoke [post]
func (h *LeaveHandler) Revoke(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	if err := h.leaveRepo.Revoke(ctx, id, claims.UserID); err != nil {
		return repoError(c, err, "failed to revoke leave request")
	}

	if request, err := h.leaveRepo.FindByID(ctx, id); err == nil && request != nil {
		h.notifyDecision(ctx, request)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "leave request revoked"})
}

// notifyDecision emails the staff member about the decision. Failures
// are logged, never surfaced: the decision itself has already committed.
func (h *LeaveHandler) notifyDecision(ctx context.Context, request *models.LeaveRequest) {
	staff, err := h.staffRepo.FindByID(ctx, request.StaffID)
	if err != nil || staff == nil || staff.UserID == nil {
		return
	}
	user, err := h.userRepo.FindUserByID(ctx, *staff.UserID)
	if err != nil || user == nil || user.Email == "" {
		return
	}

	subject := fmt.Sprintf("Leave request %s", request.Status)
	body := fmt.Sprintf(
		"Your %s leave request for %s to %s is now %s.",
		request.Type,
		request.StartDate.Format("2006-01-02"),
		request.EndDate.Format("2006-01-02"),
		request.Status,
	)
	if request.DecisionNote != "" {
		body += "\n\nNote: " + request.DecisionNote
	}
	if err := h.mailer.Send(user.Email, subject, body); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("failed to send leave decision email")
	}
}
