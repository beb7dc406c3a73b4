/*
Package planning provides the recurring maintenance projection engine.

PURPOSE:
  This package turns a maintenance plan's recurrence rule into a bounded
  sequence of future maintenance occurrences, shifts occurrences off
  weekends, suppresses occurrences that already exist as work orders, and
  tracks the per-plan schedule cursor.

KEY CONCEPTS IN THIS FILE (types.go):
  - MaintenancePlan: A recurring maintenance policy for a piece of equipment
  - ScheduleCursor: Persisted pointer tracking where projection resumes
  - Candidate: One projected date (raw + workday-adjusted)
  - VirtualOccurrence: A projected, not-yet-materialized maintenance event

DESIGN PRINCIPLES:
  1. Purity: Projection is a pure function of (plan, cursor, horizon);
     calling it twice with the same inputs yields the same sequence.
  2. Day granularity: All arithmetic is calendar-day addition in UTC.
  3. Type safety: Strong typing for IDs prevents mixing plan/equipment IDs.
  4. No hidden I/O: The engine reads its inputs through the Repository
     interface and never writes anything.

SEE ALSO:
  - projector.go: Candidate generation and workday adjustment
  - dedupe.go: Suppression of already-materialized occurrences
  - cursor.go: Schedule-advance rules
  - engine.go: The full project -> adjust -> dedupe pipeline
*/
package planning

// =============================================================================
// IDENTIFIERS
// =============================================================================

type PlanID string
type EquipmentID string
type WorkOrderID string

// =============================================================================
// PLAN CLASSIFICATION
// =============================================================================

type MaintenanceType string

const (
	TypePreventive MaintenanceType = "preventive"
	TypePredictive MaintenanceType = "predictive"
	TypeCorrective MaintenanceType = "corrective"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// =============================================================================
// MAINTENANCE PLAN - Recurrence rule plus carried-through metadata
// =============================================================================

// MaintenancePlan is owned by the backing store; the engine reads it and
// never mutates it. FrequencyDays, EndDate, ScheduleDays and Active form the
// recurrence rule; the remaining fields are carried unchanged onto
// materialized work orders.
type MaintenancePlan struct {
	ID          PlanID
	EquipmentID EquipmentID
	Name        string
	Type        MaintenanceType
	Priority    Priority
	Description string
	Tasks       []string

	// Recurrence rule.
	FrequencyDays int        // non-positive = plan is not auto-scheduled
	StartDate     Date       // anchor for the first cursor
	EndDate       *Date      // no occurrence strictly after this date
	ScheduleDays  WeekdaySet // constrains daily plans only
	Active        bool
}

// Schedulable reports whether the projector will emit anything for this plan.
func (p MaintenancePlan) Schedulable() bool {
	return p.Active && p.FrequencyDays > 0
}

// =============================================================================
// SCHEDULE CURSOR - Persisted per-plan projection pointer
// =============================================================================

// ScheduleCursor records where projection resumes for one plan.
// Invariant: NextScheduledDate is always >= any previously materialized
// occurrence's date for the plan.
type ScheduleCursor struct {
	PlanID            PlanID
	NextScheduledDate Date
	LastGeneratedDate Date // zero until the first materialization; display/audit only
}

// =============================================================================
// OCCURRENCES
// =============================================================================

// Candidate is a single projected date. Raw is the unadjusted interval step;
// Scheduled is Raw shifted off the weekend. Deduplication and all bound
// checks operate on Scheduled.
type Candidate struct {
	Raw       Date
	Scheduled Date
}

// MaterializedOccurrence is the (plan, date) key of an existing work order.
// The deduplicator suppresses candidates matching one of these exactly.
type MaterializedOccurrence struct {
	PlanID PlanID
	Date   Date
}

// StatusAutoScheduled is the display status carried by every virtual
// occurrence surfaced to the calendar.
const StatusAutoScheduled = "auto-scheduled"

// VirtualOccurrence is an ephemeral projected maintenance event. It has no
// identity beyond (PlanID, Date), is recreated on every projection run, and
// is never persisted.
type VirtualOccurrence struct {
	PlanID        PlanID
	EquipmentID   EquipmentID
	Date          Date
	PlanName      string
	EquipmentName string
	Type          MaintenanceType
	Priority      Priority
	Status        string
}
