package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseRosterQueryDefaults(t *testing.T) {
	q, err := ParseRosterQuery(map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Page != 1 {
		t.Errorf("expected default page 1, got %d", q.Page)
	}
	if q.Limit != RosterDefaultLimit {
		t.Errorf("expected default limit %d, got %d", RosterDefaultLimit, q.Limit)
	}
	if q.BranchID != nil || q.ShiftID != nil {
		t.Errorf("expected no ID filters by default")
	}
	if q.ExcludeAdmins {
		t.Errorf("excludeAdmins should default to false")
	}
}

func TestParseRosterQueryClampsLimit(t *testing.T) {
	q, err := ParseRosterQuery(map[string]string{"limit": "5000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Limit != RosterMaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", RosterMaxLimit, q.Limit)
	}
}

func TestParseRosterQueryIgnoresNonPositivePaging(t *testing.T) {
	q, err := ParseRosterQuery(map[string]string{"page": "0", "limit": "-3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Page != 1 || q.Limit != RosterDefaultLimit {
		t.Errorf("non-positive values should fall back to defaults, got page=%d limit=%d", q.Page, q.Limit)
	}
}

func TestParseRosterQueryRejectsMalformedInput(t *testing.T) {
	cases := map[string]map[string]string{
		"non-numeric page":  {"page": "abc"},
		"non-numeric limit": {"limit": "ten"},
		"bad branch id":     {"branchId": "not-hex"},
		"bad shift id":      {"shiftId": "1234"},
	}
	for name, params := range cases {
		if _, err := ParseRosterQuery(params); err == nil {
			t.Errorf("%s: expected an error for %v", name, params)
		}
	}
}

func TestParseRosterQueryFilters(t *testing.T) {
	branchID := primitive.NewObjectID()
	shiftID := primitive.NewObjectID()
	q, err := ParseRosterQuery(map[string]string{
		"search":        "jane",
		"department":    "Engineering",
		"designation":   "Developer",
		"status":        StaffStatusActive,
		"branchId":      branchID.Hex(),
		"shiftId":       shiftID.Hex(),
		"excludeAdmins": "true",
		"page":          "4",
		"limit":         "25",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Search != "jane" || q.Department != "Engineering" || q.Designation != "Developer" || q.Status != StaffStatusActive {
		t.Errorf("string filters not carried through: %+v", q)
	}
	if q.BranchID == nil || *q.BranchID != branchID {
		t.Errorf("branch ID not parsed")
	}
	if q.ShiftID == nil || *q.ShiftID != shiftID {
		t.Errorf("shift ID not parsed")
	}
	if !q.ExcludeAdmins {
		t.Errorf("excludeAdmins=true not parsed")
	}
	if q.Page != 4 || q.Limit != 25 {
		t.Errorf("paging not parsed: page=%d limit=%d", q.Page, q.Limit)
	}
}

func TestNewPageMeta(t *testing.T) {
	cases := []struct {
		total, page, limit, wantPages int64
	}{
		{0, 1, 10, 0},
		{1, 1, 10, 1},
		{10, 1, 10, 1},
		{11, 2, 10, 2},
		{101, 1, 10, 11},
		{5, 1, 0, 0},
	}
	for _, c := range cases {
		meta := NewPageMeta(c.total, c.page, c.limit)
		if meta.TotalPage != c.wantPages {
			t.Errorf("total=%d limit=%d: expected %d pages, got %d", c.total, c.limit, c.wantPages, meta.TotalPage)
		}
		if meta.Total != c.total || meta.Page != c.page || meta.Limit != c.limit {
			t.Errorf("meta did not echo inputs: %+v", meta)
		}
	}
}
