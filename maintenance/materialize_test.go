package maintenance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/maintenance-engine/maintenance"
	"github.com/warp/maintenance-engine/planning"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// fakeStore is an in-memory maintenance.TxStore. WithTx snapshots state and
// rolls it back when fn fails, matching the sqlite store's contract.
type fakeStore struct {
	plans   map[planning.PlanID]planning.MaintenancePlan
	cursors map[planning.PlanID]planning.ScheduleCursor
	orders  []maintenance.WorkOrder

	failCreate error // injected CreateWorkOrder failure
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		plans:   make(map[planning.PlanID]planning.MaintenancePlan),
		cursors: make(map[planning.PlanID]planning.ScheduleCursor),
	}
}

func (f *fakeStore) GetPlan(_ context.Context, id planning.PlanID) (*planning.MaintenancePlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) GetCursor(_ context.Context, planID planning.PlanID) (*planning.ScheduleCursor, error) {
	c, ok := f.cursors[planID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeStore) SaveCursor(_ context.Context, c planning.ScheduleCursor) error {
	f.cursors[c.PlanID] = c
	return nil
}

func (f *fakeStore) CreateWorkOrder(_ context.Context, o maintenance.WorkOrder) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeStore) WithTx(_ context.Context, fn func(maintenance.Store) error) error {
	cursors := make(map[planning.PlanID]planning.ScheduleCursor, len(f.cursors))
	for k, v := range f.cursors {
		cursors[k] = v
	}
	orders := append([]maintenance.WorkOrder(nil), f.orders...)

	if err := fn(f); err != nil {
		f.cursors = cursors
		f.orders = orders
		return err
	}
	return nil
}

func testPlan() planning.MaintenancePlan {
	end := planning.NewDate(2024, time.December, 31)
	return planning.MaintenancePlan{
		ID:            "plan-1",
		EquipmentID:   "eq-1",
		Name:          "Monthly filter swap",
		Type:          planning.TypePreventive,
		Priority:      planning.PriorityHigh,
		Description:   "Swap intake filters",
		Tasks:         []string{"shut down line", "swap filters", "restart"},
		FrequencyDays: 30,
		StartDate:     planning.NewDate(2024, time.January, 8),
		EndDate:       &end,
		Active:        true,
	}
}

func newTestMaterializer(store *fakeStore) *maintenance.Materializer {
	m := maintenance.NewMaterializer(store)
	m.Now = func() time.Time {
		return time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC)
	}
	return m
}

// =============================================================================
// MATERIALIZATION TESTS
// =============================================================================

func TestMaterialize_CreatesOrderAndAdvancesCursor(t *testing.T) {
	// GIVEN: A schedulable plan with a cursor at its start date
	// WHEN: Materializing the 2024-01-08 occurrence
	// THEN: A work order carrying the plan's fields is created and the
	//       cursor advances by one frequency interval

	ctx := context.Background()
	store := newFakeStore()
	plan := testPlan()
	store.plans[plan.ID] = plan
	store.cursors[plan.ID] = planning.SeedCursor(plan)

	m := newTestMaterializer(store)

	order, err := m.Materialize(ctx, plan.ID, planning.NewDate(2024, time.January, 8))
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, plan.ID, order.PlanID)
	assert.Equal(t, plan.EquipmentID, order.EquipmentID)
	assert.Equal(t, "Plan: Monthly filter swap", order.Title)
	assert.Equal(t, plan.Type, order.Type)
	assert.Equal(t, plan.Priority, order.Priority)
	assert.Equal(t, maintenance.StatusOpen, order.Status)
	assert.Equal(t, "2024-01-08", order.ScheduledDate.String())
	assert.Equal(t, plan.Tasks, order.Tasks)

	require.Len(t, store.orders, 1)

	cursor := store.cursors[plan.ID]
	assert.Equal(t, "2024-01-08", cursor.LastGeneratedDate.String())
	assert.Equal(t, "2024-02-07", cursor.NextScheduledDate.String())
}

func TestMaterialize_MissingCursorSeedsFromPlanStart(t *testing.T) {
	// GIVEN: A schedulable plan with no stored cursor
	// WHEN: Materializing an occurrence
	// THEN: The cursor is created rather than the call failing

	ctx := context.Background()
	store := newFakeStore()
	plan := testPlan()
	store.plans[plan.ID] = plan

	m := newTestMaterializer(store)

	_, err := m.Materialize(ctx, plan.ID, planning.NewDate(2024, time.January, 8))
	require.NoError(t, err)

	cursor, ok := store.cursors[plan.ID]
	require.True(t, ok, "cursor should have been created")
	assert.Equal(t, "2024-02-07", cursor.NextScheduledDate.String())
}

func TestMaterialize_FailedWriteLeavesCursorUnchanged(t *testing.T) {
	// GIVEN: A store whose work-order insert fails
	// WHEN: Materializing
	// THEN: The error propagates and the cursor keeps its prior state, so
	//       the occurrence stays eligible for re-materialization

	ctx := context.Background()
	store := newFakeStore()
	plan := testPlan()
	store.plans[plan.ID] = plan
	store.cursors[plan.ID] = planning.SeedCursor(plan)
	store.failCreate = errors.New("disk full")

	m := newTestMaterializer(store)

	_, err := m.Materialize(ctx, plan.ID, planning.NewDate(2024, time.January, 8))
	require.Error(t, err)

	cursor := store.cursors[plan.ID]
	assert.Equal(t, "2024-01-08", cursor.NextScheduledDate.String())
	assert.True(t, cursor.LastGeneratedDate.IsZero())
	assert.Empty(t, store.orders)
}

func TestMaterialize_UnknownPlan(t *testing.T) {
	ctx := context.Background()
	m := newTestMaterializer(newFakeStore())

	_, err := m.Materialize(ctx, "no-such-plan", planning.NewDate(2024, time.January, 8))
	assert.ErrorIs(t, err, planning.ErrPlanNotFound)
}

func TestMaterialize_UnschedulablePlanRejected(t *testing.T) {
	// GIVEN: An inactive plan and a zero-frequency plan
	// WHEN: Materializing either
	// THEN: Both are rejected before any write happens

	ctx := context.Background()
	store := newFakeStore()

	inactive := testPlan()
	inactive.ID = "plan-inactive"
	inactive.Active = false
	store.plans[inactive.ID] = inactive

	unscheduled := testPlan()
	unscheduled.ID = "plan-adhoc"
	unscheduled.FrequencyDays = 0
	store.plans[unscheduled.ID] = unscheduled

	m := newTestMaterializer(store)

	_, err := m.Materialize(ctx, inactive.ID, planning.NewDate(2024, time.January, 8))
	assert.ErrorIs(t, err, planning.ErrNotSchedulable)

	_, err = m.Materialize(ctx, unscheduled.ID, planning.NewDate(2024, time.January, 8))
	assert.ErrorIs(t, err, planning.ErrNotSchedulable)

	assert.Empty(t, store.orders)
}

func TestMaterialize_TaskListIsCopied(t *testing.T) {
	// Mutating the order's task list must not reach back into the plan.
	ctx := context.Background()
	store := newFakeStore()
	plan := testPlan()
	store.plans[plan.ID] = plan

	m := newTestMaterializer(store)

	order, err := m.Materialize(ctx, plan.ID, planning.NewDate(2024, time.January, 8))
	require.NoError(t, err)

	order.Tasks[0] = "mutated"
	assert.Equal(t, "shut down line", store.plans[plan.ID].Tasks[0])
}
