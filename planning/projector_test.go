package planning_test

import (
	"testing"
	"time"

	"github.com/warp/maintenance-engine/planning"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func d(year int, month time.Month, day int) planning.Date {
	return planning.NewDate(year, month, day)
}

func weeklyPlan() planning.MaintenancePlan {
	return planning.MaintenancePlan{
		ID:            "plan-1",
		EquipmentID:   "eq-1",
		Name:          "Weekly lubrication",
		Type:          planning.TypePreventive,
		Priority:      planning.PriorityMedium,
		FrequencyDays: 7,
		StartDate:     d(2024, time.January, 6),
		Active:        true,
	}
}

func cursorAt(next planning.Date) planning.ScheduleCursor {
	return planning.ScheduleCursor{PlanID: "plan-1", NextScheduledDate: next}
}

func scheduledDates(candidates []planning.Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Scheduled.String()
	}
	return out
}

func assertDates(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d occurrences %v, got %d: %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Occurrence %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

// =============================================================================
// WEEKEND ADJUSTMENT
// =============================================================================

func TestAdjustWorkday_ShiftsWeekendsToMonday(t *testing.T) {
	// GIVEN: Dates across a full week
	// WHEN: Adjusting each for scheduling
	// THEN: Saturday and Sunday land on Monday, weekdays are unchanged

	saturday := d(2024, time.January, 6)
	sunday := d(2024, time.January, 7)
	monday := d(2024, time.January, 8)

	if got := planning.AdjustWorkday(saturday); !got.Equal(monday) {
		t.Errorf("Saturday: expected %s, got %s", monday, got)
	}
	if got := planning.AdjustWorkday(sunday); !got.Equal(monday) {
		t.Errorf("Sunday: expected %s, got %s", monday, got)
	}
	for day := 8; day <= 12; day++ {
		weekday := d(2024, time.January, day)
		if got := planning.AdjustWorkday(weekday); !got.Equal(weekday) {
			t.Errorf("Weekday %s: expected unchanged, got %s", weekday, got)
		}
	}
}

// =============================================================================
// CANDIDATE PROJECTION
// =============================================================================

func TestProjectCandidates_WeeklyFromSaturday(t *testing.T) {
	// GIVEN: A weekly plan whose cursor sits on Saturday 2024-01-06
	// WHEN: Projecting up to 2024-02-01
	// THEN: Every raw Saturday shifts to the following Monday

	plan := weeklyPlan()
	cursor := cursorAt(d(2024, time.January, 6))
	horizon := d(2024, time.February, 1)

	candidates := planning.ProjectCandidates(plan, cursor, horizon)

	assertDates(t, scheduledDates(candidates),
		"2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29")

	// Raw dates keep the 7-day spacing; adjustment never feeds back.
	for i := 1; i < len(candidates); i++ {
		gap := planning.DaysBetween(candidates[i-1].Raw, candidates[i].Raw)
		if gap != 7 {
			t.Errorf("Raw gap %d->%d: expected 7 days, got %d", i-1, i, gap)
		}
	}
}

func TestProjectCandidates_NoWeekendOccurrences(t *testing.T) {
	// GIVEN: A daily plan over several weeks
	// WHEN: Projecting
	// THEN: No scheduled date falls on a weekend

	plan := weeklyPlan()
	plan.FrequencyDays = 1
	cursor := cursorAt(d(2024, time.January, 1))

	candidates := planning.ProjectCandidates(plan, cursor, d(2024, time.January, 31))

	for _, c := range candidates {
		if c.Scheduled.IsWeekend() {
			t.Errorf("Occurrence on weekend: %s (%s)", c.Scheduled, c.Scheduled.Weekday())
		}
	}
}

func TestProjectCandidates_EndDateDropsAdjustedOvershoot(t *testing.T) {
	// GIVEN: The weekly Saturday plan ending 2024-01-20
	// WHEN: Projecting to 2024-02-01
	// THEN: Raw 2024-01-20 is within bounds, but its Monday adjustment
	//       (2024-01-22) passes the end date and is dropped, not clipped

	plan := weeklyPlan()
	end := d(2024, time.January, 20)
	plan.EndDate = &end
	cursor := cursorAt(d(2024, time.January, 6))

	candidates := planning.ProjectCandidates(plan, cursor, d(2024, time.February, 1))

	assertDates(t, scheduledDates(candidates), "2024-01-08", "2024-01-15")
}

func TestProjectCandidates_EndDateIsTerminal(t *testing.T) {
	// GIVEN: A plan whose cursor already sits past its end date
	// WHEN: Projecting
	// THEN: The sequence is empty; nothing is ever generated again

	plan := weeklyPlan()
	end := d(2024, time.January, 20)
	plan.EndDate = &end
	cursor := cursorAt(d(2024, time.January, 27))

	candidates := planning.ProjectCandidates(plan, cursor, d(2024, time.June, 1))

	if len(candidates) != 0 {
		t.Errorf("Expected no candidates past end date, got %v", scheduledDates(candidates))
	}
}

func TestProjectCandidates_AdjustedPastHorizonDropped(t *testing.T) {
	// GIVEN: A cursor on a Saturday that is the horizon itself
	// WHEN: Projecting
	// THEN: The raw date qualifies but the Monday adjustment exceeds the
	//       horizon, so the candidate is dropped

	plan := weeklyPlan()
	cursor := cursorAt(d(2024, time.January, 6))
	horizon := d(2024, time.January, 6)

	candidates := planning.ProjectCandidates(plan, cursor, horizon)

	if len(candidates) != 0 {
		t.Errorf("Expected empty projection, got %v", scheduledDates(candidates))
	}
}

func TestProjectCandidates_ZeroFrequencyYieldsNothing(t *testing.T) {
	// GIVEN: A plan with frequency_days = 0
	// WHEN: Projecting
	// THEN: The plan is not schedulable and nothing is generated

	plan := weeklyPlan()
	plan.FrequencyDays = 0
	cursor := cursorAt(d(2024, time.January, 6))

	candidates := planning.ProjectCandidates(plan, cursor, d(2024, time.June, 1))

	if candidates != nil {
		t.Errorf("Expected nil for zero frequency, got %v", scheduledDates(candidates))
	}
}

func TestProjectCandidates_InactivePlanYieldsNothing(t *testing.T) {
	// GIVEN: A paused plan
	// WHEN: Projecting
	// THEN: Projection resumes only when the plan is reactivated

	plan := weeklyPlan()
	plan.Active = false
	cursor := cursorAt(d(2024, time.January, 6))

	if got := planning.ProjectCandidates(plan, cursor, d(2024, time.June, 1)); got != nil {
		t.Errorf("Expected nil for inactive plan, got %v", scheduledDates(got))
	}
}

func TestProjectCandidates_Deterministic(t *testing.T) {
	// GIVEN: Fixed plan, cursor and horizon
	// WHEN: Projecting twice
	// THEN: Both sequences are identical

	plan := weeklyPlan()
	cursor := cursorAt(d(2024, time.January, 6))
	horizon := d(2024, time.March, 1)

	first := scheduledDates(planning.ProjectCandidates(plan, cursor, horizon))
	second := scheduledDates(planning.ProjectCandidates(plan, cursor, horizon))

	assertDates(t, second, first...)
}

func TestProjectCandidates_DailyPlanHonorsScheduleDays(t *testing.T) {
	// GIVEN: A daily plan restricted to Mondays and Thursdays
	// WHEN: Projecting one week
	// THEN: Only raw Mondays and Thursdays survive

	plan := weeklyPlan()
	plan.FrequencyDays = 1
	set, err := planning.ParseWeekdaySet([]string{"monday", "thursday"})
	if err != nil {
		t.Fatalf("Failed to parse weekday set: %v", err)
	}
	plan.ScheduleDays = set
	cursor := cursorAt(d(2024, time.January, 8)) // Monday

	candidates := planning.ProjectCandidates(plan, cursor, d(2024, time.January, 14))

	assertDates(t, scheduledDates(candidates), "2024-01-08", "2024-01-11")
}

func TestProjectCandidates_ScheduleDaysIgnoredForNonDailyPlans(t *testing.T) {
	// GIVEN: A weekly plan with a whitelist excluding its own weekday
	// WHEN: Projecting
	// THEN: The whitelist only binds daily plans, so occurrences remain

	plan := weeklyPlan()
	set, err := planning.ParseWeekdaySet([]string{"friday"})
	if err != nil {
		t.Fatalf("Failed to parse weekday set: %v", err)
	}
	plan.ScheduleDays = set
	cursor := cursorAt(d(2024, time.January, 8)) // Monday

	candidates := planning.ProjectCandidates(plan, cursor, d(2024, time.January, 22))

	assertDates(t, scheduledDates(candidates),
		"2024-01-08", "2024-01-15", "2024-01-22")
}

// =============================================================================
// DEDUPLICATION
// =============================================================================

func TestDedupe_SkipsMaterializedDates(t *testing.T) {
	// GIVEN: The weekly projection with 2024-01-08 already materialized
	// WHEN: Deduplicating
	// THEN: Only 2024-01-08 is suppressed; later Mondays remain virtual

	plan := weeklyPlan()
	cursor := cursorAt(d(2024, time.January, 6))
	candidates := planning.ProjectCandidates(plan, cursor, d(2024, time.February, 1))

	set := planning.NewMaterializedSet([]planning.MaterializedOccurrence{
		{PlanID: plan.ID, Date: d(2024, time.January, 8)},
	})

	occurrences := planning.Dedupe(plan, candidates, set)

	dates := make([]string, len(occurrences))
	for i, o := range occurrences {
		dates[i] = o.Date.String()
	}
	assertDates(t, dates, "2024-01-15", "2024-01-22", "2024-01-29")
}

func TestDedupe_OtherPlansDoNotSuppress(t *testing.T) {
	// GIVEN: A materialized order for a different plan on the same date
	// WHEN: Deduplicating
	// THEN: The match is per (plan, date), so nothing is suppressed

	plan := weeklyPlan()
	cursor := cursorAt(d(2024, time.January, 6))
	candidates := planning.ProjectCandidates(plan, cursor, d(2024, time.February, 1))

	set := planning.NewMaterializedSet([]planning.MaterializedOccurrence{
		{PlanID: "other-plan", Date: d(2024, time.January, 8)},
	})

	occurrences := planning.Dedupe(plan, candidates, set)
	if len(occurrences) != len(candidates) {
		t.Errorf("Expected %d occurrences, got %d", len(candidates), len(occurrences))
	}
}

func TestDedupe_CarriesPlanDisplayFields(t *testing.T) {
	// GIVEN: A plan with display metadata
	// WHEN: Lifting candidates into virtual occurrences
	// THEN: Plan name, type, priority and the auto-scheduled status carry over

	plan := weeklyPlan()
	candidates := []planning.Candidate{
		{Raw: d(2024, time.January, 6), Scheduled: d(2024, time.January, 8)},
	}

	occurrences := planning.Dedupe(plan, candidates, planning.NewMaterializedSet(nil))

	if len(occurrences) != 1 {
		t.Fatalf("Expected 1 occurrence, got %d", len(occurrences))
	}
	occ := occurrences[0]
	if occ.PlanID != plan.ID || occ.EquipmentID != plan.EquipmentID {
		t.Errorf("Plan/equipment references not carried: %+v", occ)
	}
	if occ.PlanName != plan.Name || occ.Type != plan.Type || occ.Priority != plan.Priority {
		t.Errorf("Display fields not carried: %+v", occ)
	}
	if occ.Status != planning.StatusAutoScheduled {
		t.Errorf("Expected status %q, got %q", planning.StatusAutoScheduled, occ.Status)
	}
}
