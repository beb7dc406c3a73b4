/*
cursor.go - Schedule-advance rules

PURPOSE:
  Computes the new cursor state when a virtual occurrence is materialized
  into a work order. Advance is the only cursor mutation the engine defines,
  and only caller-side persistence makes it stick: if the backend write
  fails, the stored cursor is left unchanged and the occurrence remains
  eligible for re-materialization.

ADVANCE RULE:
  LastGeneratedDate := materialized date
  NextScheduledDate := materialized date + frequency days

  The raw interval is advanced, not the next adjusted date, so weekday
  adjustment is reapplied on the next projection pass.
*/
package planning

// Advance returns the cursor state after materializing an occurrence on the
// given date. Pure function: calling it twice with the same inputs yields
// the same cursor both times.
func Advance(cursor ScheduleCursor, materialized Date, frequencyDays int) ScheduleCursor {
	return ScheduleCursor{
		PlanID:            cursor.PlanID,
		NextScheduledDate: materialized.AddDays(frequencyDays),
		LastGeneratedDate: materialized,
	}
}

// SeedCursor is the initial cursor for a newly created schedulable plan,
// anchored at the plan's start date.
func SeedCursor(plan MaintenancePlan) ScheduleCursor {
	return ScheduleCursor{
		PlanID:            plan.ID,
		NextScheduledDate: plan.StartDate,
	}
}
