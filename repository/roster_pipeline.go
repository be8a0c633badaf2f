package repository

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fuyadhasanfahim/hr-management-sub001/config"
	"github.com/fuyadhasanfahim/hr-management-sub001/models"
)

// rosterStage builds zero or more aggregation stages for one step of the
// roster pipeline. Each builder is pure: it depends only on the filter
// parameters and the query time, which keeps every step independently
// testable and the stage ordering explicit.
type rosterStage func(q models.RosterQuery, now time.Time) mongo.Pipeline

// rosterStages is the ordered pipeline contract. Filters that only touch
// the staff document run first; anything that depends on a joined field
// (user role/name, derived current shift) must come after its join.
var rosterStages = []rosterStage{
	stageMatchStaffFields,
	stageLookupUser,
	stageExcludeAdmins,
	stageSearch,
	stageLookupBranch,
	stageLookupTodayAttendance,
	stageLookupCurrentShift,
	stageMatchShiftID,
	stageHideSensitiveFields,
	stageSortNewestFirst,
}

// BuildRosterPipeline folds the stage builders in order into one
// aggregation pipeline, without pagination.
func BuildRosterPipeline(q models.RosterQuery, now time.Time) mongo.Pipeline {
	var pipeline mongo.Pipeline
	for _, stage := range rosterStages {
		pipeline = append(pipeline, stage(q, now)...)
	}
	return pipeline
}

// stageFacet forks the filtered set into the requested page and a total
// count. Both branches run after the shared filter stages, so the
// reported total always agrees with what paging would reach.
func stageFacet(q models.RosterQuery) bson.D {
	return bson.D{{Key: "$facet", Value: bson.D{
		{Key: "data", Value: mongo.Pipeline{
			{{Key: "$skip", Value: (q.Page - 1) * q.Limit}},
			{{Key: "$limit", Value: q.Limit}},
		}},
		{Key: "total", Value: mongo.Pipeline{
			{{Key: "$count", Value: "count"}},
		}},
	}}}
}

func stageMatchStaffFields(q models.RosterQuery, _ time.Time) mongo.Pipeline {
	match := bson.M{}
	if q.Department != "" {
		match["department"] = q.Department
	}
	if q.Designation != "" {
		match["designation"] = q.Designation
	}
	if q.Status != "" {
		match["status"] = q.Status
	}
	if q.BranchID != nil {
		match["branch_id"] = *q.BranchID
	}
	if len(match) == 0 {
		return nil
	}
	return mongo.Pipeline{{{Key: "$match", Value: match}}}
}

// stageLookupUser joins the linked identity. Staff with no linked user
// must survive the join (valid during onboarding), hence the preserving
// unwind.
func stageLookupUser(_ models.RosterQuery, _ time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.UserCollection},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// stageExcludeAdmins drops rows whose joined user holds a privileged
// role. Runs after the user join because role lives on the user document;
// $nin also passes rows with no user at all.
func stageExcludeAdmins(q models.RosterQuery, _ time.Time) mongo.Pipeline {
	if !q.ExcludeAdmins {
		return nil
	}
	return mongo.Pipeline{{{Key: "$match", Value: bson.M{
		"user.role": bson.M{"$nin": bson.A{models.RoleAdmin, models.RoleSuperAdmin}},
	}}}}
}

// stageSearch applies the case-insensitive substring filter. It spans
// staff fields and joined user fields, so it cannot run before the user
// join; staff without a user simply never match the user-field arms.
func stageSearch(q models.RosterQuery, _ time.Time) mongo.Pipeline {
	if q.Search == "" {
		return nil
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	return mongo.Pipeline{{{Key: "$match", Value: bson.M{
		"$or": bson.A{
			bson.M{"staff_id": pattern},
			bson.M{"user.name": pattern},
			bson.M{"user.email": pattern},
			bson.M{"department": pattern},
			bson.M{"designation": pattern},
		},
	}}}}
}

func stageLookupBranch(_ models.RosterQuery, _ time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.BranchCollection},
			{Key: "localField", Value: "branch_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "branch"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$branch"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// stageLookupTodayAttendance joins at most one attendance record within
// the calendar-day window around now. $limit 1 guards against duplicate
// attendance rows for the same day.
func stageLookupTodayAttendance(_ models.RosterQuery, now time.Time) mongo.Pipeline {
	dayStart, dayEnd := models.DayWindow(now)
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.AttendanceCollection},
			{Key: "let", Value: bson.D{{Key: "sid", Value: "$_id"}}},
			{Key: "pipeline", Value: mongo.Pipeline{
				{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{{Key: "$and", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$staff_id", "$$sid"}}},
					bson.D{{Key: "$gte", Value: bson.A{"$date", dayStart}}},
					bson.D{{Key: "$lt", Value: bson.A{"$date", dayEnd}}},
				}}}}}}},
				{{Key: "$limit", Value: 1}},
			}},
			{Key: "as", Value: "attendance"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$attendance"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// stageLookupCurrentShift resolves the assignment whose date range
// contains now and is still active, then follows it to the shift
// definition. The created_at sort before $limit makes the pick
// deterministic if data anomalies leave two assignments active at once.
func stageLookupCurrentShift(_ models.RosterQuery, now time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.ShiftAssignmentCollection},
			{Key: "let", Value: bson.D{{Key: "sid", Value: "$_id"}}},
			{Key: "pipeline", Value: mongo.Pipeline{
				{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{{Key: "$and", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$staff_id", "$$sid"}}},
					bson.D{{Key: "$eq", Value: bson.A{"$is_active", true}}},
					bson.D{{Key: "$lte", Value: bson.A{"$start_date", now}}},
					bson.D{{Key: "$or", Value: bson.A{
						bson.D{{Key: "$eq", Value: bson.A{bson.D{{Key: "$ifNull", Value: bson.A{"$end_date", primitive.Null{}}}}, primitive.Null{}}}},
						bson.D{{Key: "$gte", Value: bson.A{"$end_date", now}}},
					}}},
				}}}}}}},
				{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
				{{Key: "$limit", Value: 1}},
				{{Key: "$lookup", Value: bson.D{
					{Key: "from", Value: config.ShiftCollection},
					{Key: "localField", Value: "shift_id"},
					{Key: "foreignField", Value: "_id"},
					{Key: "as", Value: "shift"},
				}}},
				{{Key: "$unwind", Value: "$shift"}},
				{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$shift"}}}},
				{{Key: "$project", Value: bson.D{
					{Key: "_id", Value: 1},
					{Key: "name", Value: 1},
					{Key: "start_time", Value: 1},
					{Key: "end_time", Value: 1},
				}}},
			}},
			{Key: "as", Value: "current_shift"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$current_shift"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// stageMatchShiftID filters on the derived current shift, so it must run
// after the shift lookup. A staff with no active assignment has no
// current_shift field and therefore never matches.
func stageMatchShiftID(q models.RosterQuery, _ time.Time) mongo.Pipeline {
	if q.ShiftID == nil {
		return nil
	}
	return mongo.Pipeline{{{Key: "$match", Value: bson.M{"current_shift._id": *q.ShiftID}}}}
}

func stageHideSensitiveFields(_ models.RosterQuery, _ time.Time) mongo.Pipeline {
	return mongo.Pipeline{{{Key: "$project", Value: bson.D{
		{Key: "salary", Value: 0},
		{Key: "salary_pin", Value: 0},
		{Key: "pin_reset_token", Value: 0},
		{Key: "pin_reset_expires", Value: 0},
		{Key: "user.password", Value: 0},
	}}}}
}

// stageSortNewestFirst orders by creation time descending with _id as a
// stable tie-break so pagination never repeats or skips rows.
func stageSortNewestFirst(_ models.RosterQuery, _ time.Time) mongo.Pipeline {
	return mongo.Pipeline{{{Key: "$sort", Value: bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	}}}}
}
