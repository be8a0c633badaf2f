package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
	util "github.com/fuyadhasanfahim/hr-management-sub001/pkg/utils"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

const monthLayout = "2006-01"

type ExpenseHandler struct {
	expenseRepo *repository.ExpenseRepository
}

func NewExpenseHandler(expenseRepo *repository.ExpenseRepository) *ExpenseHandler {
	return &ExpenseHandler{
		expenseRepo: expenseRepo,
	}
}

// monthParam reads the optional ?month=YYYY-MM query, defaulting to the
// current month.
func monthParam(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("month")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(monthLayout, raw)
}

// Create godoc
// @Summary Record an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param expense body models.ExpenseCreatePayload true "Expense data"
// @Success 201 {object} models.Expense
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	claims := c.Locals("user").(*models.Claims)

	var payload models.ExpenseCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	incurred, err := time.Parse("2006-01-02", payload.IncurredDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid incurred_date"})
	}

	expense := &models.Expense{
		Category:     payload.Category,
		Amount:       payload.Amount,
		IncurredDate: incurred,
		Note:         payload.Note,
		RecordedBy:   claims.UserID,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.expenseRepo.Create(ctx, expense); err != nil {
		return repoError(c, err, "failed to record expense")
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// List godoc
// @Summary Expenses for a month
// @Tags Expense
// @Produce json
// @Security BearerAuth
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Success 200 {array} models.Expense
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	month, err := monthParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid month"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	expenses, err := h.expenseRepo.FindByMonth(ctx, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list expenses"})
	}
	return c.Status(fiber.StatusOK).JSON(expenses)
}

// Update godoc
// @Summary Update an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ObjectID"
// @Param expense body models.ExpenseUpdatePayload true "Fields to change"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /expenses/{id} [patch]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	var payload models.ExpenseUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	fields := bson.M{}
	setIfPresent(fields, "category", payload.Category)
	setIfPresent(fields, "note", payload.Note)
	if payload.Amount > 0 {
		fields["amount"] = payload.Amount
	}
	if payload.IncurredDate != "" {
		incurred, err := time.Parse("2006-01-02", payload.IncurredDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid incurred_date"})
		}
		fields["incurred_date"] = incurred
	}
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no fields to update"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.expenseRepo.Update(ctx, id, fields); err != nil {
		return repoError(c, err, "failed to update expense")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "expense updated"})
}

// Delete godoc
// @Summary Delete an expense
// @Tags Expense
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ObjectID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.expenseRepo.Delete(ctx, id); err != nil {
		return repoError(c, err, "failed to delete expense")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "expense deleted"})
}

// Summary godoc
// @Summary Monthly expenses grouped by category
// @Tags Expense
// @Produce json
// @Security BearerAuth
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Success 200 {array} models.ExpenseCategorySummary
// @Router /expenses/summary [get]
func (h *ExpenseHandler) Summary(c *fiber.Ctx) error {
	month, err := monthParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid month"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	summary, err := h.expenseRepo.MonthlySummary(ctx, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute summary"})
	}
	return c.Status(fiber.StatusOK).JSON(summary)
}
