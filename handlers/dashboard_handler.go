package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

type DashboardHandler struct {
	orderRepo   *repository.OrderRepository
	expenseRepo *repository.ExpenseRepository
	leaveRepo   repository.LeaveRequestRepository
}

func NewDashboardHandler(orderRepo *repository.OrderRepository, expenseRepo *repository.ExpenseRepository, leaveRepo repository.LeaveRequestRepository) *DashboardHandler {
	return &DashboardHandler{
		orderRepo:   orderRepo,
		expenseRepo: expenseRepo,
		leaveRepo:   leaveRepo,
	}
}

// Overview godoc
// @Summary Monthly business overview
// @Description Delivered-order revenue and expense total for the month, net result, and the pending leave queue size
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	month, err := monthParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid month"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	revenue, err := h.orderRepo.MonthlyRevenue(ctx, month)
	if err != nil {
		return repoError(c, err, "failed to compute revenue")
	}
	expenses, err := h.expenseRepo.MonthlyTotal(ctx, month)
	if err != nil {
		return repoError(c, err, "failed to compute expenses")
	}
	pending, err := h.leaveRepo.CountPending(ctx)
	if err != nil {
		return repoError(c, err, "failed to count pending leave requests")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"month":                  month.Format(monthLayout),
		"revenue":                revenue,
		"expenses":               expenses,
		"net":                    revenue - expenses,
		"pending_leave_requests": pending,
	})
}
