/*
dedupe.go - Suppression of already-materialized occurrences

PURPOSE:
  Cross-references candidate dates against existing work orders so the
  projector never re-offers an occurrence that has already been turned
  into a concrete work order (manually created or executed).

GUARANTEE:
  Suppression is based solely on exact (plan id, date) match. A work order
  scheduled one day off from a projected date does NOT suppress the
  candidate; the calendar then shows both. That is a documented limitation
  of the reference behavior, preserved here.

SEE ALSO:
  - engine.go: Builds the set from the Repository snapshot
*/
package planning

type occurrenceKey struct {
	plan PlanID
	date string
}

// MaterializedSet is the deduplication lookup built from all currently known
// work orders that reference a plan.
type MaterializedSet struct {
	keys map[occurrenceKey]bool
}

func NewMaterializedSet(existing []MaterializedOccurrence) *MaterializedSet {
	set := &MaterializedSet{keys: make(map[occurrenceKey]bool, len(existing))}
	for _, occ := range existing {
		set.keys[occurrenceKey{plan: occ.PlanID, date: occ.Date.String()}] = true
	}
	return set
}

// Contains reports whether a real work order already covers (plan, date).
func (s *MaterializedSet) Contains(plan PlanID, date Date) bool {
	return s.keys[occurrenceKey{plan: plan, date: date.String()}]
}

// Dedupe filters candidates whose scheduled date is already materialized and
// lifts the survivors into VirtualOccurrences carrying the plan's display
// fields. EquipmentName is filled by the caller, which owns the lookup.
func Dedupe(plan MaintenancePlan, candidates []Candidate, set *MaterializedSet) []VirtualOccurrence {
	var out []VirtualOccurrence
	for _, c := range candidates {
		if set.Contains(plan.ID, c.Scheduled) {
			continue
		}
		out = append(out, VirtualOccurrence{
			PlanID:      plan.ID,
			EquipmentID: plan.EquipmentID,
			Date:        c.Scheduled,
			PlanName:    plan.Name,
			Type:        plan.Type,
			Priority:    plan.Priority,
			Status:      StatusAutoScheduled,
		})
	}
	return out
}
