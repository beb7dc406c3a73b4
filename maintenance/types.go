/*
Package maintenance provides the domain services built on the planning engine.

PURPOSE:
  Equipment registry records, the work-order lifecycle, materialization of
  virtual occurrences into concrete work orders, and the read/aggregate
  reporting views (status summary, yearly downtime map).

KEY CONCEPTS IN THIS FILE (types.go):
  - Equipment: A registered asset that plans and work orders reference
  - WorkOrder: A materialized (or manually created) maintenance event
  - WorkOrderStatus: open -> in_progress -> completed, with cancellation

DESIGN PRINCIPLES:
  1. Tasks are an ordered []string everywhere in domain code; the storage
     layer owns the encode/decode contract for the serialized form.
  2. Costs and downtime use decimal.Decimal to avoid floating-point errors.
  3. Status transitions are validated here, not in handlers.

SEE ALSO:
  - materialize.go: Virtual occurrence -> work order + cursor advance
  - reports.go: Aggregations over work orders
*/
package maintenance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/maintenance-engine/planning"
)

// =============================================================================
// EQUIPMENT
// =============================================================================

type EquipmentStatus string

const (
	EquipmentOperational   EquipmentStatus = "operational"
	EquipmentInMaintenance EquipmentStatus = "in_maintenance"
	EquipmentInoperative   EquipmentStatus = "inoperative"
)

type Equipment struct {
	ID        planning.EquipmentID
	Name      string
	Code      string
	Location  string
	Category  string
	Status    EquipmentStatus
	Notes     string
	CreatedAt time.Time
}

// =============================================================================
// WORK ORDER
// =============================================================================

type WorkOrderStatus string

const (
	StatusOpen       WorkOrderStatus = "open"
	StatusInProgress WorkOrderStatus = "in_progress"
	StatusCompleted  WorkOrderStatus = "completed"
	StatusCancelled  WorkOrderStatus = "cancelled"
)

// WorkOrder is a concrete, persisted maintenance event. PlanID is empty for
// manually created orders. For a given (PlanID, ScheduledDate) pair at most
// one order should exist; that invariant is protected client-side by the
// planning deduplicator, not by a store constraint.
type WorkOrder struct {
	ID            planning.WorkOrderID
	PlanID        planning.PlanID // empty = manual order
	EquipmentID   planning.EquipmentID
	Title         string
	Type          planning.MaintenanceType
	Priority      planning.Priority
	Status        WorkOrderStatus
	ScheduledDate planning.Date
	CompletedDate *planning.Date
	Description   string
	Tasks         []string
	Cost          decimal.Decimal
	DowntimeHours decimal.Decimal
	Overdue       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
// Completed and cancelled are terminal.
func (s WorkOrderStatus) CanTransitionTo(next WorkOrderStatus) bool {
	switch s {
	case StatusOpen:
		return next == StatusInProgress || next == StatusCompleted || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// IsOpen reports whether the order still counts toward the overdue check.
func (w WorkOrder) IsOpen() bool {
	return w.Status == StatusOpen || w.Status == StatusInProgress
}

// IsOverdueAt reports whether an open order's scheduled date has passed.
func (w WorkOrder) IsOverdueAt(today planning.Date) bool {
	return w.IsOpen() && w.ScheduledDate.Before(today)
}
