package repository

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
)

func opNames(p mongo.Pipeline) []string {
	names := make([]string, 0, len(p))
	for _, stage := range p {
		names = append(names, stage[0].Key)
	}
	return names
}

func TestBuildRosterPipelineDefaultQuery(t *testing.T) {
	q := models.RosterQuery{Page: 1, Limit: 10}
	pipeline := BuildRosterPipeline(q, time.Now())

	want := []string{
		"$lookup", "$unwind", // user
		"$lookup", "$unwind", // branch
		"$lookup", "$unwind", // today's attendance
		"$lookup", "$unwind", // current shift
		"$project",
		"$sort",
	}
	got := opNames(pipeline)
	if len(got) != len(want) {
		t.Fatalf("expected %d stages, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stage %d: expected %s, got %s (full: %v)", i, want[i], got[i], got)
		}
	}
}

func TestBuildRosterPipelineAllFilters(t *testing.T) {
	branchID := primitive.NewObjectID()
	shiftID := primitive.NewObjectID()
	q := models.RosterQuery{
		Page:          2,
		Limit:         20,
		Search:        "jane",
		Department:    "Engineering",
		Designation:   "Developer",
		Status:        models.StaffStatusActive,
		BranchID:      &branchID,
		ShiftID:       &shiftID,
		ExcludeAdmins: true,
	}
	pipeline := BuildRosterPipeline(q, time.Now())

	want := []string{
		"$match",             // staff-level filters
		"$lookup", "$unwind", // user
		"$match",             // exclude privileged roles
		"$match",             // search
		"$lookup", "$unwind", // branch
		"$lookup", "$unwind", // today's attendance
		"$lookup", "$unwind", // current shift
		"$match", // shift filter on the derived field
		"$project",
		"$sort",
	}
	got := opNames(pipeline)
	if len(got) != len(want) {
		t.Fatalf("expected %d stages, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stage %d: expected %s, got %s (full: %v)", i, want[i], got[i], got)
		}
	}
}

func TestStageMatchStaffFieldsCombinesFilters(t *testing.T) {
	branchID := primitive.NewObjectID()
	q := models.RosterQuery{
		Department: "Sales",
		Status:     models.StaffStatusActive,
		BranchID:   &branchID,
	}
	stages := stageMatchStaffFields(q, time.Now())
	if len(stages) != 1 {
		t.Fatalf("expected one $match stage, got %d", len(stages))
	}

	match, ok := stages[0][0].Value.(bson.M)
	if !ok {
		t.Fatalf("expected bson.M match document, got %T", stages[0][0].Value)
	}
	if match["department"] != "Sales" {
		t.Errorf("expected department filter, got %v", match["department"])
	}
	if match["status"] != models.StaffStatusActive {
		t.Errorf("expected status filter, got %v", match["status"])
	}
	if match["branch_id"] != branchID {
		t.Errorf("expected branch filter, got %v", match["branch_id"])
	}
	if _, present := match["designation"]; present {
		t.Errorf("designation was not requested but appears in the match")
	}
}

func TestStageSearchEscapesRegexMetacharacters(t *testing.T) {
	q := models.RosterQuery{Search: "a.b*c"}
	stages := stageSearch(q, time.Now())
	if len(stages) != 1 {
		t.Fatalf("expected one $match stage, got %d", len(stages))
	}

	match := stages[0][0].Value.(bson.M)
	arms, ok := match["$or"].(bson.A)
	if !ok {
		t.Fatalf("expected $or arms, got %T", match["$or"])
	}
	if len(arms) != 5 {
		t.Fatalf("expected 5 search arms, got %d", len(arms))
	}

	first := arms[0].(bson.M)
	pattern := first["staff_id"].(primitive.Regex)
	if pattern.Pattern == "a.b*c" {
		t.Errorf("regex metacharacters were not escaped: %q", pattern.Pattern)
	}
	if pattern.Options != "i" {
		t.Errorf("expected case-insensitive match, got options %q", pattern.Options)
	}
}

func TestStageExcludeAdminsDisabledByDefault(t *testing.T) {
	if stages := stageExcludeAdmins(models.RosterQuery{}, time.Now()); stages != nil {
		t.Fatalf("expected no stage when excludeAdmins is off, got %v", stages)
	}

	stages := stageExcludeAdmins(models.RosterQuery{ExcludeAdmins: true}, time.Now())
	if len(stages) != 1 {
		t.Fatalf("expected one $match stage, got %d", len(stages))
	}
	match := stages[0][0].Value.(bson.M)
	cond, ok := match["user.role"].(bson.M)
	if !ok {
		t.Fatalf("expected role condition, got %T", match["user.role"])
	}
	roles, ok := cond["$nin"].(bson.A)
	if !ok || len(roles) != 2 {
		t.Fatalf("expected $nin over both privileged roles, got %v", cond)
	}
}

func TestStageFacetPagination(t *testing.T) {
	q := models.RosterQuery{Page: 3, Limit: 25}
	facet := stageFacet(q)

	if facet[0].Key != "$facet" {
		t.Fatalf("expected $facet, got %s", facet[0].Key)
	}
	branches := facet[0].Value.(bson.D)
	data := branches[0].Value.(mongo.Pipeline)
	if skip := data[0][0].Value.(int64); skip != 50 {
		t.Errorf("expected skip 50 for page 3 limit 25, got %d", skip)
	}
	if limit := data[1][0].Value.(int64); limit != 25 {
		t.Errorf("expected limit 25, got %d", limit)
	}

	total := branches[1].Value.(mongo.Pipeline)
	if total[0][0].Key != "$count" {
		t.Errorf("expected $count branch, got %s", total[0][0].Key)
	}
}

func TestStageHideSensitiveFields(t *testing.T) {
	stages := stageHideSensitiveFields(models.RosterQuery{}, time.Now())
	project := stages[0][0].Value.(bson.D)

	hidden := map[string]bool{}
	for _, field := range project {
		hidden[field.Key] = true
	}
	for _, field := range []string{"salary", "salary_pin", "pin_reset_token", "pin_reset_expires", "user.password"} {
		if !hidden[field] {
			t.Errorf("expected %s to be projected out", field)
		}
	}
}

func TestStageSortIsDeterministic(t *testing.T) {
	stages := stageSortNewestFirst(models.RosterQuery{}, time.Now())
	sort := stages[0][0].Value.(bson.D)
	if len(sort) != 2 {
		t.Fatalf("expected a two-key sort, got %v", sort)
	}
	if sort[0].Key != "created_at" || sort[1].Key != "_id" {
		t.Fatalf("expected created_at then _id tie-break, got %v", sort)
	}
}
