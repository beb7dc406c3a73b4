// Package store provides Repository implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/maintenance-engine/planning"
)

// =============================================================================
// MEMORY REPOSITORY - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu           sync.RWMutex
	plans        map[planning.PlanID]planning.MaintenancePlan
	cursors      map[planning.PlanID]planning.ScheduleCursor
	materialized []planning.MaterializedOccurrence
	equipment    map[planning.EquipmentID]string
}

func NewMemory() *Memory {
	return &Memory{
		plans:     make(map[planning.PlanID]planning.MaintenancePlan),
		cursors:   make(map[planning.PlanID]planning.ScheduleCursor),
		equipment: make(map[planning.EquipmentID]string),
	}
}

// PutPlan adds or replaces a plan.
func (m *Memory) PutPlan(plan planning.MaintenancePlan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.ID] = plan
}

// PutCursor adds or replaces a schedule cursor.
func (m *Memory) PutCursor(cursor planning.ScheduleCursor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursors[cursor.PlanID] = cursor
}

// AddMaterialized records an existing (plan, date) work order pair.
func (m *Memory) AddMaterialized(occ planning.MaterializedOccurrence) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.materialized = append(m.materialized, occ)
}

// PutEquipmentName registers an equipment display name.
func (m *Memory) PutEquipmentName(id planning.EquipmentID, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.equipment[id] = name
}

func (m *Memory) ListActivePlans(_ context.Context) ([]planning.MaintenancePlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var plans []planning.MaintenancePlan
	for _, p := range m.plans {
		if p.Active {
			plans = append(plans, p)
		}
	}
	return plans, nil
}

func (m *Memory) GetCursor(_ context.Context, planID planning.PlanID) (*planning.ScheduleCursor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cursor, ok := m.cursors[planID]
	if !ok {
		return nil, nil
	}
	return &cursor, nil
}

func (m *Memory) ListMaterialized(_ context.Context, until planning.Date) ([]planning.MaterializedOccurrence, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []planning.MaterializedOccurrence
	for _, occ := range m.materialized {
		if occ.Date.BeforeOrEqual(until) {
			result = append(result, occ)
		}
	}
	return result, nil
}

func (m *Memory) ListEquipmentNames(_ context.Context) (map[planning.EquipmentID]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make(map[planning.EquipmentID]string, len(m.equipment))
	for id, name := range m.equipment {
		names[id] = name
	}
	return names, nil
}
