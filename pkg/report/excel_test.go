package report

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
)

func TestBuildRosterWorkbook(t *testing.T) {
	staffs := []models.EnrichedStaff{
		{
			Staff: models.Staff{
				StaffID:     "STF-0001",
				Phone:       "555-0101",
				Department:  "Engineering",
				Designation: "Developer",
				Status:      models.StaffStatusActive,
			},
			User:   &models.User{Name: "Jane Doe", Email: "jane@example.com"},
			Branch: &models.Branch{Name: "Head Office"},
			Shift:  &models.CurrentShift{Name: "Day", StartTime: "09:00", EndTime: "17:00"},
		},
		{
			Staff: models.Staff{StaffID: "STF-0002", Department: "Sales", Status: models.StaffStatusInactive},
		},
	}

	f, err := BuildRosterWorkbook(staffs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := func(cell string) string {
		v, err := f.GetCellValue("Roster", cell)
		if err != nil {
			t.Fatalf("reading %s: %v", cell, err)
		}
		return v
	}

	if got("A1") != "Staff ID" || got("I1") != "Current Shift" {
		t.Errorf("unexpected header row: A1=%q I1=%q", got("A1"), got("I1"))
	}
	if got("A2") != "STF-0001" || got("B2") != "Jane Doe" || got("C2") != "jane@example.com" {
		t.Errorf("unexpected first data row: %q %q %q", got("A2"), got("B2"), got("C2"))
	}
	if got("E2") != "Head Office" {
		t.Errorf("expected branch name, got %q", got("E2"))
	}
	if got("I2") != "Day (09:00-17:00)" {
		t.Errorf("expected shift summary, got %q", got("I2"))
	}
	if got("B3") != "" || got("I3") != "" {
		t.Errorf("missing joins should render empty cells, got name=%q shift=%q", got("B3"), got("I3"))
	}
}

func TestBuildExpenseWorkbook(t *testing.T) {
	expenses := []models.Expense{
		{
			ID:           primitive.NewObjectID(),
			Category:     "rent",
			Amount:       1500,
			IncurredDate: time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
			Note:         "office lease",
		},
		{
			ID:           primitive.NewObjectID(),
			Category:     "travel",
			Amount:       320.5,
			IncurredDate: time.Date(2026, time.July, 14, 0, 0, 0, 0, time.UTC),
		},
	}
	summary := []models.ExpenseCategorySummary{
		{Category: "rent", Count: 1, Total: 1500},
		{Category: "travel", Count: 1, Total: 320.5},
	}

	f, err := BuildExpenseWorkbook("2026-07", expenses, summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := func(cell string) string {
		v, err := f.GetCellValue("Expenses", cell)
		if err != nil {
			t.Fatalf("reading %s: %v", cell, err)
		}
		return v
	}

	if got("A1") != "Expense report 2026-07" {
		t.Errorf("unexpected title: %q", got("A1"))
	}
	if got("A3") != "2026-07-01" || got("B3") != "rent" || got("C3") != "1500" {
		t.Errorf("unexpected first detail row: %q %q %q", got("A3"), got("B3"), got("C3"))
	}
	if got("A4") != "2026-07-14" || got("C4") != "320.5" {
		t.Errorf("unexpected second detail row: %q %q", got("A4"), got("C4"))
	}
	if got("A6") != "Category totals" {
		t.Errorf("expected summary block header at A6, got %q", got("A6"))
	}
	if got("A7") != "rent" || got("B7") != "1500" {
		t.Errorf("unexpected summary row: %q %q", got("A7"), got("B7"))
	}
}
