package planning_test

import (
	"testing"
	"time"

	"github.com/warp/maintenance-engine/planning"
)

func TestAdvance_MovesRawIntervalForward(t *testing.T) {
	// GIVEN: A weekly cursor pointing at 2024-01-08
	// WHEN: Materializing that occurrence
	// THEN: Last becomes 2024-01-08 and next becomes 2024-01-15

	cursor := planning.ScheduleCursor{
		PlanID:            "plan-1",
		NextScheduledDate: d(2024, time.January, 8),
	}

	advanced := planning.Advance(cursor, d(2024, time.January, 8), 7)

	if !advanced.LastGeneratedDate.Equal(d(2024, time.January, 8)) {
		t.Errorf("Expected last 2024-01-08, got %s", advanced.LastGeneratedDate)
	}
	if !advanced.NextScheduledDate.Equal(d(2024, time.January, 15)) {
		t.Errorf("Expected next 2024-01-15, got %s", advanced.NextScheduledDate)
	}
	if advanced.PlanID != cursor.PlanID {
		t.Errorf("Plan id changed: %s", advanced.PlanID)
	}
}

func TestAdvance_AnchorsOnMaterializedDateNotCursor(t *testing.T) {
	// GIVEN: A cursor whose next date differs from the date being
	//        materialized (the occurrence was weekend-adjusted)
	// WHEN: Advancing
	// THEN: The new interval anchors on the materialized date

	cursor := planning.ScheduleCursor{
		PlanID:            "plan-1",
		NextScheduledDate: d(2024, time.January, 6), // Saturday
	}

	// User materialized the adjusted Monday.
	advanced := planning.Advance(cursor, d(2024, time.January, 8), 7)

	if !advanced.NextScheduledDate.Equal(d(2024, time.January, 15)) {
		t.Errorf("Expected next 2024-01-15, got %s", advanced.NextScheduledDate)
	}
}

func TestAdvance_IsPure(t *testing.T) {
	// GIVEN: A cursor
	// WHEN: Advancing twice with identical inputs
	// THEN: Both results are identical and the input is untouched

	cursor := planning.ScheduleCursor{
		PlanID:            "plan-1",
		NextScheduledDate: d(2024, time.March, 4),
	}

	first := planning.Advance(cursor, d(2024, time.March, 4), 30)
	second := planning.Advance(cursor, d(2024, time.March, 4), 30)

	if first != second {
		t.Errorf("Advance not deterministic: %+v vs %+v", first, second)
	}
	if !cursor.NextScheduledDate.Equal(d(2024, time.March, 4)) {
		t.Errorf("Input cursor mutated: %+v", cursor)
	}
}

func TestSeedCursor_AnchorsAtPlanStart(t *testing.T) {
	// GIVEN: A new schedulable plan
	// WHEN: Seeding its cursor
	// THEN: The first projection starts at the plan's start date

	plan := weeklyPlan()
	cursor := planning.SeedCursor(plan)

	if cursor.PlanID != plan.ID {
		t.Errorf("Expected plan id %s, got %s", plan.ID, cursor.PlanID)
	}
	if !cursor.NextScheduledDate.Equal(plan.StartDate) {
		t.Errorf("Expected next %s, got %s", plan.StartDate, cursor.NextScheduledDate)
	}
	if !cursor.LastGeneratedDate.IsZero() {
		t.Errorf("Expected zero last-generated date, got %s", cursor.LastGeneratedDate)
	}
}
