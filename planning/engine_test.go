package planning_test

import (
	"context"
	"testing"
	"time"

	"github.com/warp/maintenance-engine/planning"
	"github.com/warp/maintenance-engine/planning/store"
)

func newTestEngine() (*planning.Engine, *store.Memory) {
	repo := store.NewMemory()
	return planning.NewEngine(repo), repo
}

func TestProjectAll_SortsByDateThenPlan(t *testing.T) {
	// GIVEN: Two weekly plans whose occurrences interleave
	// WHEN: Projecting all plans
	// THEN: The combined list is ordered by date, plan id breaking ties

	engine, repo := newTestEngine()

	a := weeklyPlan()
	a.ID = "plan-a"
	b := weeklyPlan()
	b.ID = "plan-b"
	b.StartDate = d(2024, time.January, 10) // Wednesday

	repo.PutPlan(a)
	repo.PutPlan(b)
	repo.PutCursor(planning.ScheduleCursor{PlanID: a.ID, NextScheduledDate: a.StartDate})
	repo.PutCursor(planning.ScheduleCursor{PlanID: b.ID, NextScheduledDate: b.StartDate})

	occurrences, err := engine.ProjectAll(context.Background(), d(2024, time.January, 31))
	if err != nil {
		t.Fatalf("ProjectAll failed: %v", err)
	}

	for i := 1; i < len(occurrences); i++ {
		prev, cur := occurrences[i-1], occurrences[i]
		if cur.Date.Before(prev.Date) {
			t.Errorf("Out of order at %d: %s before %s", i, cur.Date, prev.Date)
		}
		if cur.Date.Equal(prev.Date) && cur.PlanID < prev.PlanID {
			t.Errorf("Tie not broken by plan id at %d: %s < %s", i, cur.PlanID, prev.PlanID)
		}
	}
}

func TestProjectAll_FillsEquipmentNames(t *testing.T) {
	// GIVEN: A plan whose equipment has a registered display name
	// WHEN: Projecting
	// THEN: Every occurrence carries the equipment name

	engine, repo := newTestEngine()

	plan := weeklyPlan()
	repo.PutPlan(plan)
	repo.PutCursor(planning.ScheduleCursor{PlanID: plan.ID, NextScheduledDate: plan.StartDate})
	repo.PutEquipmentName(plan.EquipmentID, "Hydraulic Press 04")

	occurrences, err := engine.ProjectAll(context.Background(), d(2024, time.February, 1))
	if err != nil {
		t.Fatalf("ProjectAll failed: %v", err)
	}
	if len(occurrences) == 0 {
		t.Fatal("Expected occurrences")
	}
	for _, occ := range occurrences {
		if occ.EquipmentName != "Hydraulic Press 04" {
			t.Errorf("Expected equipment name, got %q", occ.EquipmentName)
		}
	}
}

func TestProjectAll_MissingCursorFallsBackToStartDate(t *testing.T) {
	// GIVEN: A schedulable plan with no stored cursor
	// WHEN: Projecting
	// THEN: Projection anchors at the plan's start date instead of
	//       silently skipping the plan

	engine, repo := newTestEngine()
	repo.PutPlan(weeklyPlan())

	occurrences, err := engine.ProjectAll(context.Background(), d(2024, time.February, 1))
	if err != nil {
		t.Fatalf("ProjectAll failed: %v", err)
	}

	if len(occurrences) == 0 {
		t.Fatal("Expected occurrences from seeded cursor")
	}
	if got := occurrences[0].Date.String(); got != "2024-01-08" {
		t.Errorf("Expected first occurrence 2024-01-08, got %s", got)
	}
}

func TestProjectAll_SuppressesMaterializedOccurrences(t *testing.T) {
	// GIVEN: The weekly plan with its first Monday already materialized
	// WHEN: Projecting
	// THEN: That date is absent and later occurrences survive

	engine, repo := newTestEngine()

	plan := weeklyPlan()
	repo.PutPlan(plan)
	repo.PutCursor(planning.ScheduleCursor{PlanID: plan.ID, NextScheduledDate: plan.StartDate})
	repo.AddMaterialized(planning.MaterializedOccurrence{
		PlanID: plan.ID,
		Date:   d(2024, time.January, 8),
	})

	occurrences, err := engine.ProjectAll(context.Background(), d(2024, time.February, 1))
	if err != nil {
		t.Fatalf("ProjectAll failed: %v", err)
	}

	for _, occ := range occurrences {
		if occ.Date.String() == "2024-01-08" {
			t.Error("Materialized occurrence was not suppressed")
		}
	}
	if len(occurrences) != 3 {
		t.Errorf("Expected 3 remaining occurrences, got %d", len(occurrences))
	}
}

func TestProjectPlan_SinglePlanView(t *testing.T) {
	// GIVEN: Two plans in the store
	// WHEN: Projecting one of them directly
	// THEN: Only that plan's occurrences are returned

	engine, repo := newTestEngine()

	a := weeklyPlan()
	a.ID = "plan-a"
	b := weeklyPlan()
	b.ID = "plan-b"
	repo.PutPlan(a)
	repo.PutPlan(b)

	occurrences, err := engine.ProjectPlan(context.Background(), a, d(2024, time.February, 1))
	if err != nil {
		t.Fatalf("ProjectPlan failed: %v", err)
	}
	if len(occurrences) == 0 {
		t.Fatal("Expected occurrences")
	}
	for _, occ := range occurrences {
		if occ.PlanID != a.ID {
			t.Errorf("Unexpected plan in projection: %s", occ.PlanID)
		}
	}
}
