package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
)

const rosterSheet = "Roster"

// BuildRosterWorkbook renders one roster page into a spreadsheet, one row
// per staff member with the joined identity/branch/shift columns.
func BuildRosterWorkbook(staffs []models.EnrichedStaff) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", rosterSheet)

	headers := []string{"Staff ID", "Name", "Email", "Phone", "Branch", "Department", "Designation", "Status", "Current Shift"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(rosterSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, s := range staffs {
		name, email := "", ""
		if s.User != nil {
			name, email = s.User.Name, s.User.Email
		}
		branch := ""
		if s.Branch != nil {
			branch = s.Branch.Name
		}
		shift := ""
		if s.Shift != nil {
			shift = fmt.Sprintf("%s (%s-%s)", s.Shift.Name, s.Shift.StartTime, s.Shift.EndTime)
		}

		values := []interface{}{s.StaffID, name, email, s.Phone, branch, s.Department, s.Designation, s.Status, shift}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(rosterSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

const expenseSheet = "Expenses"

// BuildExpenseWorkbook renders a month's expenses plus a per-category
// summary block below the detail rows.
func BuildExpenseWorkbook(month string, expenses []models.Expense, summary []models.ExpenseCategorySummary) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", expenseSheet)

	if err := f.SetCellValue(expenseSheet, "A1", fmt.Sprintf("Expense report %s", month)); err != nil {
		return nil, err
	}

	headers := []string{"Date", "Category", "Amount", "Note"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(expenseSheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 3
	for _, e := range expenses {
		values := []interface{}{e.IncurredDate.Format("2006-01-02"), e.Category, e.Amount, e.Note}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(expenseSheet, cell, v); err != nil {
				return nil, err
			}
		}
		row++
	}

	row++
	if err := f.SetCellValue(expenseSheet, fmt.Sprintf("A%d", row), "Category totals"); err != nil {
		return nil, err
	}
	row++
	for _, s := range summary {
		if err := f.SetCellValue(expenseSheet, fmt.Sprintf("A%d", row), s.Category); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(expenseSheet, fmt.Sprintf("B%d", row), s.Total); err != nil {
			return nil, err
		}
		row++
	}

	return f, nil
}
