package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
	util "github.com/fuyadhasanfahim/hr-management-sub001/pkg/utils"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

type ProfitShareHandler struct {
	profitShareRepo *repository.ProfitShareRepository
	staffRepo       *repository.StaffRepository
}

func NewProfitShareHandler(profitShareRepo *repository.ProfitShareRepository, staffRepo *repository.StaffRepository) *ProfitShareHandler {
	return &ProfitShareHandler{
		profitShareRepo: profitShareRepo,
		staffRepo:       staffRepo,
	}
}

// Run godoc
// @Summary Distribute a period's net profit
// @Description Splits the given net profit across staff with a configured share percentage. One run per period.
// @Tags ProfitShare
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param run body models.ProfitShareRunPayload true "Period and net profit"
// @Success 201 {object} models.ProfitShareRun
// @Failure 409 {object} models.ErrorResponse
// @Router /profit-shares [post]
func (h *ProfitShareHandler) Run(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	var payload models.ProfitShareRunPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	run, err := h.profitShareRepo.CreateRun(ctx, payload.Period, payload.NetProfit, claims.UserID, h.staffRepo)
	if err != nil {
		return repoError(c, err, "failed to run profit share distribution")
	}
	return c.Status(fiber.StatusCreated).JSON(run)
}

// List godoc
// @Summary Past profit share runs
// @Tags ProfitShare
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ProfitShareRun
// @Router /profit-shares [get]
func (h *ProfitShareHandler) List(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	runs, err := h.profitShareRepo.ListRuns(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list profit share runs"})
	}
	return c.Status(fiber.StatusOK).JSON(runs)
}

// Get godoc
// @Summary Profit share run detail
// @Tags ProfitShare
// @Produce json
// @Security BearerAuth
// @Param id path string true "Run ObjectID"
// @Success 200 {object} models.ProfitShareRun
// @Failure 404 {object} models.ErrorResponse
// @Router /profit-shares/{id} [get]
func (h *ProfitShareHandler) Get(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	run, err := h.profitShareRepo.FindRunByID(ctx, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profit share run"})
	}
	if run == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profit share run not found"})
	}
	return c.Status(fiber.StatusOK).JSON(run)
}
