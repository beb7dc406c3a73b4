/*
engine.go - The full projection pipeline

PURPOSE:
  Runs project -> adjust -> dedupe for every schedulable plan and returns
  the surviving virtual occurrences, ordered by date, for calendar
  rendering.

DATA FLOW:
  Plan + cursor --ProjectCandidates--> candidate dates up to horizon
  --AdjustWorkday--> workday candidates --Dedupe--> virtual occurrences

REPOSITORY:
  The engine depends only on the Repository interface, never on a concrete
  store. Each ProjectAll call works on its own fetched snapshot; the engine
  holds no state between calls and performs no writes. A fetch failure
  aborts the run - there is no partial projection over incomplete input.

SEE ALSO:
  - store/memory.go: In-memory Repository for tests and dev
  - ../store/sqlite: SQLite-backed Repository
*/
package planning

import (
	"context"
	"fmt"
	"sort"
)

// DefaultHorizonMonths is how far ahead one projection pass looks.
const DefaultHorizonMonths = 3

// DefaultHorizon returns today + 3 months, the standard projection cutoff.
func DefaultHorizon() Date {
	return Today().AddMonths(DefaultHorizonMonths)
}

// Repository is the engine's read-only view of the backing store.
type Repository interface {
	// ListActivePlans returns all plans with Active = true.
	ListActivePlans(ctx context.Context) ([]MaintenancePlan, error)

	// GetCursor returns the schedule cursor for a plan, or (nil, nil) when
	// the plan has no cursor yet.
	GetCursor(ctx context.Context, planID PlanID) (*ScheduleCursor, error)

	// ListMaterialized returns the (plan, date) pairs of all work orders
	// that reference a plan and are scheduled on or before the given date.
	ListMaterialized(ctx context.Context, until Date) ([]MaterializedOccurrence, error)

	// ListEquipmentNames returns the display name per equipment id.
	ListEquipmentNames(ctx context.Context) (map[EquipmentID]string, error)
}

// Engine projects upcoming maintenance occurrences for all active plans.
type Engine struct {
	Repo Repository
}

func NewEngine(repo Repository) *Engine {
	return &Engine{Repo: repo}
}

// ProjectAll fetches a snapshot of plans, cursors and materialized work
// orders and returns every virtual occurrence up to the horizon, ordered by
// date then plan id. The result is deterministic for a fixed snapshot.
func (e *Engine) ProjectAll(ctx context.Context, horizon Date) ([]VirtualOccurrence, error) {
	plans, err := e.Repo.ListActivePlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	existing, err := e.Repo.ListMaterialized(ctx, horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to list materialized occurrences: %w", err)
	}
	set := NewMaterializedSet(existing)

	names, err := e.Repo.ListEquipmentNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}

	var occurrences []VirtualOccurrence
	for _, plan := range plans {
		occs, err := e.projectPlan(ctx, plan, horizon, set)
		if err != nil {
			return nil, err
		}
		for i := range occs {
			occs[i].EquipmentName = names[plan.EquipmentID]
		}
		occurrences = append(occurrences, occs...)
	}

	sort.Slice(occurrences, func(i, j int) bool {
		if !occurrences[i].Date.Equal(occurrences[j].Date) {
			return occurrences[i].Date.Before(occurrences[j].Date)
		}
		return occurrences[i].PlanID < occurrences[j].PlanID
	})

	return occurrences, nil
}

// ProjectPlan projects a single plan against a fresh snapshot of its
// materialized occurrences.
func (e *Engine) ProjectPlan(ctx context.Context, plan MaintenancePlan, horizon Date) ([]VirtualOccurrence, error) {
	existing, err := e.Repo.ListMaterialized(ctx, horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to list materialized occurrences: %w", err)
	}
	return e.projectPlan(ctx, plan, horizon, NewMaterializedSet(existing))
}

func (e *Engine) projectPlan(ctx context.Context, plan MaintenancePlan, horizon Date, set *MaterializedSet) ([]VirtualOccurrence, error) {
	if !plan.Schedulable() {
		return nil, nil
	}

	cursor, err := e.Repo.GetCursor(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cursor for plan %s: %w", plan.ID, err)
	}
	if cursor == nil {
		// Plans created before cursor tracking fall back to their anchor.
		seeded := SeedCursor(plan)
		cursor = &seeded
	}

	candidates := ProjectCandidates(plan, *cursor, horizon)
	return Dedupe(plan, candidates, set), nil
}
