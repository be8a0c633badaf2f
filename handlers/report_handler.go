package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
	"github.com/fuyadhasanfahim/hr-management-sub001/pkg/report"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

type ReportHandler struct {
	staffRepo   *repository.StaffRepository
	expenseRepo *repository.ExpenseRepository
}

func NewReportHandler(staffRepo *repository.StaffRepository, expenseRepo *repository.ExpenseRepository) *ReportHandler {
	return &ReportHandler{
		staffRepo:   staffRepo,
		expenseRepo: expenseRepo,
	}
}

// RosterExcel godoc
// @Summary Roster export
// @Description Runs the roster query with the same filters as the listing and streams the result as an .xlsx download
// @Tags Report
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param search query string false "Same filters as the roster listing"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Router /reports/roster [get]
func (h *ReportHandler) RosterExcel(c *fiber.Ctx) error {
	q, err := models.ParseRosterQuery(c.Queries())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	// Exports are not paginated; pull the widest page the engine allows.
	q.Page = 1
	q.Limit = models.RosterMaxLimit

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	page, err := h.staffRepo.ListRoster(ctx, q)
	if err != nil {
		return repoError(c, err, "failed to run roster query")
	}

	file, err := report.BuildRosterWorkbook(page.Staffs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to build workbook"})
	}

	filename := fmt.Sprintf("roster-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return file.Write(c.Response().BodyWriter())
}

// ExpenseExcel godoc
// @Summary Monthly expense export
// @Tags Report
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Success 200 {file} binary
// @Router /reports/expenses [get]
func (h *ReportHandler) ExpenseExcel(c *fiber.Ctx) error {
	month, err := monthParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid month"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	expenses, err := h.expenseRepo.FindByMonth(ctx, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load expenses"})
	}
	summary, err := h.expenseRepo.MonthlySummary(ctx, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute summary"})
	}

	file, err := report.BuildExpenseWorkbook(month.Format(monthLayout), expenses, summary)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to build workbook"})
	}

	filename := fmt.Sprintf("expenses-%s.xlsx", month.Format(monthLayout))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return file.Write(c.Response().BodyWriter())
}
