/*
materialize.go - Turning virtual occurrences into work orders

PURPOSE:
  On explicit user action, converts a projected occurrence into a persisted
  work order and advances the plan's schedule cursor. This is the only path
  that moves the cursor.

FAILURE SEMANTICS:
  Both writes happen inside one store transaction. If either fails, the
  transaction rolls back, the stored cursor is unchanged, and the virtual
  occurrence remains eligible for re-materialization on the next attempt.
  No optimistic local cursor advance is applied, which avoids cursor drift
  from a failed write.

RACE NOTE:
  Between a caller's projection fetch and this write, a concurrent actor can
  materialize the same occurrence. The result is two valid work orders for
  the same (plan, date) - a rare, harmless duplicate resolved manually, not
  prevented by a store constraint. See DESIGN.md.

SEE ALSO:
  - planning/cursor.go: The advance rule applied here
*/
package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/warp/maintenance-engine/planning"
)

// Store is the persistence surface the materializer needs.
type Store interface {
	GetPlan(ctx context.Context, id planning.PlanID) (*planning.MaintenancePlan, error)
	GetCursor(ctx context.Context, planID planning.PlanID) (*planning.ScheduleCursor, error)
	SaveCursor(ctx context.Context, cursor planning.ScheduleCursor) error
	CreateWorkOrder(ctx context.Context, order WorkOrder) error
}

// TxStore is a Store whose writes can run inside one transaction.
type TxStore interface {
	Store
	WithTx(ctx context.Context, fn func(Store) error) error
}

// Materializer creates work orders from projected occurrences.
type Materializer struct {
	Store TxStore

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewMaterializer(store TxStore) *Materializer {
	return &Materializer{Store: store, Now: time.Now}
}

// Materialize creates the work order for (planID, date) and advances the
// plan's cursor, atomically. The plan's type, priority, description, tasks
// and equipment reference are carried through unchanged.
func (m *Materializer) Materialize(ctx context.Context, planID planning.PlanID, date planning.Date) (*WorkOrder, error) {
	plan, err := m.Store.GetPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if plan == nil {
		return nil, planning.ErrPlanNotFound
	}
	if !plan.Schedulable() {
		return nil, planning.ErrNotSchedulable
	}

	now := m.now().UTC()
	order := WorkOrder{
		ID:            planning.WorkOrderID(uuid.NewString()),
		PlanID:        plan.ID,
		EquipmentID:   plan.EquipmentID,
		Title:         "Plan: " + plan.Name,
		Type:          plan.Type,
		Priority:      plan.Priority,
		Status:        StatusOpen,
		ScheduledDate: date,
		Description:   plan.Description,
		Tasks:         append([]string(nil), plan.Tasks...),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = m.Store.WithTx(ctx, func(s Store) error {
		if err := s.CreateWorkOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to create work order: %w", err)
		}

		cursor, err := s.GetCursor(ctx, plan.ID)
		if err != nil {
			return fmt.Errorf("failed to load cursor: %w", err)
		}
		if cursor == nil {
			seeded := planning.SeedCursor(*plan)
			cursor = &seeded
		}

		advanced := planning.Advance(*cursor, date, plan.FrequencyDays)
		if err := s.SaveCursor(ctx, advanced); err != nil {
			return fmt.Errorf("failed to advance cursor: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (m *Materializer) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}
