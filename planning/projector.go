/*
projector.go - Candidate occurrence generation

PURPOSE:
  Expands a plan's recurrence rule into the ordered sequence of candidate
  occurrence dates between the plan's schedule cursor and the projection
  horizon, shifting weekend candidates onto the following Monday.

ALGORITHM:
  raw := cursor.NextScheduledDate
  while raw <= horizon:
      if plan.EndDate set and raw > EndDate: stop (terminal - no more ever)
      scheduled := AdjustWorkday(raw)
      emit (raw, scheduled) unless scheduled exceeds horizon or EndDate
      raw += plan.FrequencyDays

  The loop is O(days-until-horizon / frequency) with no failure modes
  beyond malformed input, which yields an empty sequence.

ADJUSTMENT POLICY:
  Saturday -> +2 days, Sunday -> +1 day, weekdays unchanged. Applied
  unconditionally: the system never auto-schedules an occurrence on a
  weekend, even when ScheduleDays whitelists weekend days. An adjustment
  that pushes a date past the horizon or end date drops that candidate
  entirely; it is never clipped back.

SEE ALSO:
  - dedupe.go: Filters candidates against materialized work orders
  - engine.go: Runs projection for every schedulable plan
*/
package planning

import "time"

// AdjustWorkday shifts a weekend date forward to the next Monday.
// Any other weekday is returned unchanged.
func AdjustWorkday(d Date) Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(2)
	case time.Sunday:
		return d.AddDays(1)
	default:
		return d
	}
}

// ProjectCandidates produces the ordered candidate sequence for one plan.
// It is a pure function of (plan, cursor, horizon): repeated calls with the
// same inputs yield the same sequence. Unschedulable plans and zero cursors
// yield nil.
func ProjectCandidates(plan MaintenancePlan, cursor ScheduleCursor, horizon Date) []Candidate {
	if !plan.Schedulable() {
		return nil
	}
	if cursor.NextScheduledDate.IsZero() || horizon.IsZero() {
		return nil
	}

	var candidates []Candidate
	raw := cursor.NextScheduledDate

	for raw.BeforeOrEqual(horizon) {
		if plan.EndDate != nil && raw.After(*plan.EndDate) {
			break
		}

		if plan.allowsRawDay(raw) {
			scheduled := AdjustWorkday(raw)
			if withinBounds(scheduled, plan.EndDate, horizon) {
				candidates = append(candidates, Candidate{Raw: raw, Scheduled: scheduled})
			}
		}

		raw = raw.AddDays(plan.FrequencyDays)
	}

	return candidates
}

// allowsRawDay applies the ScheduleDays whitelist. The constraint only
// applies to daily plans; for any other frequency the set is ignored, which
// matches the reference behavior.
func (p MaintenancePlan) allowsRawDay(d Date) bool {
	if p.FrequencyDays != 1 || p.ScheduleDays.IsEmpty() {
		return true
	}
	return p.ScheduleDays.Contains(d.Weekday())
}

// withinBounds re-checks an adjusted candidate against the plan end date and
// the horizon. A candidate pushed past either bound is dropped, not clipped.
func withinBounds(d Date, endDate *Date, horizon Date) bool {
	if d.After(horizon) {
		return false
	}
	if endDate != nil && d.After(*endDate) {
		return false
	}
	return true
}
