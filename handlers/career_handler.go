package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fuyadhasanfahim/hr-management-sub001/config"
	"github.com/fuyadhasanfahim/hr-management-sub001/models"
	"github.com/fuyadhasanfahim/hr-management-sub001/pkg/mailer"
	util "github.com/fuyadhasanfahim/hr-management-sub001/pkg/utils"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

type CareerHandler struct {
	careerRepo *repository.CareerRepository
	mailer     *mailer.Mailer
	adminInbox string
}

func NewCareerHandler(careerRepo *repository.CareerRepository, mail *mailer.Mailer, cfg *config.AppConfig) *CareerHandler {
	return &CareerHandler{
		careerRepo: careerRepo,
		mailer:     mail,
		adminInbox: cfg.AdminInbox,
	}
}

// PublicOpenings godoc
// @Summary Open positions (public)
// @Description No authentication; powers the public careers page
// @Tags Career
// @Produce json
// @Success 200 {array} models.JobOpening
// @Router /careers [get]
func (h *CareerHandler) PublicOpenings(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	openings, err := h.careerRepo.FindOpenings(ctx, true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list openings"})
	}
	return c.Status(fiber.StatusOK).JSON(openings)
}

// Apply godoc
// @Summary Apply to an opening (public)
// @Description One application per email per opening
// @Tags Career
// @Accept json
// @Produce json
// @Param id path string true "Opening ObjectID"
// @Param application body models.JobApplicationPayload true "Application data"
// @Success 201 {object} models.MessageResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /careers/{id}/apply [post]
func (h *CareerHandler) Apply(c *fiber.Ctx) error {
	openingID, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.JobApplicationPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	application := &models.JobApplication{
		OpeningID: openingID,
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		ResumeURL: payload.ResumeURL,
		CoverNote: payload.CoverNote,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.careerRepo.CreateApplication(ctx, application); err != nil {
		return repoError(c, err, "failed to submit application")
	}

	if h.adminInbox != "" {
		body := fmt.Sprintf("New application from %s (%s) for opening %s.", application.Name, application.Email, openingID.Hex())
		if err := h.mailer.Send(h.adminInbox, "New job application", body); err != nil {
			log.Error().Err(err).Msg("failed to send application notification")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "application submitted",
		"id":      application.ID.Hex(),
	})
}

// CreateOpening godoc
// @Summary Create job opening
// @Tags Career
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param opening body models.JobOpeningCreatePayload true "Opening data"
// @Success 201 {object} models.MessageResponse
// @Router /admin/careers [post]
func (h *CareerHandler) CreateOpening(c *fiber.Ctx) error {
	var payload models.JobOpeningCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	opening := &models.JobOpening{
		Title:       payload.Title,
		Department:  payload.Department,
		Designation: payload.Designation,
		Openings:    payload.Openings,
		Description: payload.Description,
	}
	if payload.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", payload.Deadline)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid deadline"})
		}
		opening.Deadline = &deadline
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.careerRepo.CreateOpening(ctx, opening); err != nil {
		return repoError(c, err, "failed to create opening")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "opening created",
		"id":      opening.ID.Hex(),
	})
}

// ListOpenings godoc
// @Summary All openings including inactive ones
// @Tags Career
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.JobOpening
// @Router /admin/careers [get]
func (h *CareerHandler) ListOpenings(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	openings, err := h.careerRepo.FindOpenings(ctx, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list openings"})
	}
	return c.Status(fiber.StatusOK).JSON(openings)
}

// UpdateOpening godoc
// @Summary Update job opening
// @Tags Career
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Opening ObjectID"
// @Param opening body models.JobOpeningUpdatePayload true "Fields to change"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/careers/{id} [patch]
func (h *CareerHandler) UpdateOpening(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.JobOpeningUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	fields := bson.M{}
	setIfPresent(fields, "title", payload.Title)
	setIfPresent(fields, "department", payload.Department)
	setIfPresent(fields, "designation", payload.Designation)
	setIfPresent(fields, "description", payload.Description)
	if payload.Openings != nil {
		fields["openings"] = *payload.Openings
	}
	if payload.IsActive != nil {
		fields["is_active"] = *payload.IsActive
	}
	if payload.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", payload.Deadline)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid deadline"})
		}
		fields["deadline"] = deadline
	}
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no fields to update"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.careerRepo.UpdateOpening(ctx, id, fields); err != nil {
		return repoError(c, err, "failed to update opening")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "opening updated"})
}

// DeleteOpening godoc
// @Summary Delete job opening
// @Description Fails while applications exist for the opening
// @Tags Career
// @Produce json
// @Security BearerAuth
// @Param id path string true "Opening ObjectID"
// @Success 200 {object} models.MessageResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/careers/{id} [delete]
func (h *CareerHandler) DeleteOpening(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.careerRepo.DeleteOpening(ctx, id); err != nil {
		return repoError(c, err, "failed to delete opening")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "opening deleted"})
}

// ListApplications godoc
// @Summary Applications for an opening
// @Tags Career
// @Produce json
// @Security BearerAuth
// @Param id path string true "Opening ObjectID"
// @Success 200 {array} models.JobApplication
// @Router /admin/careers/{id}/applications [get]
func (h *CareerHandler) ListApplications(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	applications, err := h.careerRepo.FindApplicationsByOpening(ctx, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list applications"})
	}
	return c.Status(fiber.StatusOK).JSON(applications)
}

// UpdateApplicationStatus godoc
// @Summary Move an application through the pipeline
// @Description The candidate is notified by email on every status change
// @Tags Career
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ObjectID"
// @Param status body models.ApplicationStatusPayload true "New status"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/applications/{id}/status [put]
func (h *CareerHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.ApplicationStatusPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := h.careerRepo.UpdateApplicationStatus(ctx, id, payload.Status); err != nil {
		return repoError(c, err, "failed to update application status")
	}

	if application, err := h.careerRepo.FindApplicationByID(ctx, id); err == nil && application != nil {
		body := fmt.Sprintf("Hello %s,\n\nYour application status is now: %s.", application.Name, application.Status)
		if err := h.mailer.Send(application.Email, "Application update", body); err != nil {
			log.Error().Err(err).Str("email", application.Email).Msg("failed to send application status email")
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "application status updated"})
}
