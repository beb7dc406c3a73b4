/*
reports.go - Read/aggregate views over work orders

PURPOSE:
  Pure aggregation functions backing the dashboard endpoints: a status/type
  summary and the yearly downtime map (hours of recorded downtime per
  equipment per month). Inputs are already-fetched snapshots; no I/O here.
*/
package maintenance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/maintenance-engine/planning"
)

// =============================================================================
// STATUS SUMMARY
// =============================================================================

// Summary is the dashboard headline view.
type Summary struct {
	Total      int
	ByStatus   map[WorkOrderStatus]int
	ByType     map[planning.MaintenanceType]int
	ByPriority map[planning.Priority]int
	Overdue    int
	TotalCost  decimal.Decimal
}

// Summarize aggregates a work-order snapshot as of the given day.
func Summarize(orders []WorkOrder, today planning.Date) Summary {
	s := Summary{
		ByStatus:   make(map[WorkOrderStatus]int),
		ByType:     make(map[planning.MaintenanceType]int),
		ByPriority: make(map[planning.Priority]int),
		TotalCost:  decimal.Zero,
	}

	for _, o := range orders {
		s.Total++
		s.ByStatus[o.Status]++
		s.ByType[o.Type]++
		s.ByPriority[o.Priority]++
		if o.IsOverdueAt(today) {
			s.Overdue++
		}
		if o.Status == StatusCompleted {
			s.TotalCost = s.TotalCost.Add(o.Cost)
		}
	}
	return s
}

// =============================================================================
// YEARLY DOWNTIME MAP
// =============================================================================

// EquipmentDowntime is one row of the downtime map: recorded downtime hours
// per calendar month for a single asset.
type EquipmentDowntime struct {
	EquipmentID   planning.EquipmentID
	EquipmentName string
	Months        [12]decimal.Decimal // index 0 = January
	Total         decimal.Decimal
}

// DowntimeMap is the yearly downtime view across all equipment.
type DowntimeMap struct {
	Year int
	Rows []EquipmentDowntime
}

// BuildDowntimeMap buckets completed work orders of the given year by
// equipment and completion month. Equipment with no downtime still gets a
// zero row so the map renders every registered asset.
func BuildDowntimeMap(year int, orders []WorkOrder, equipment []Equipment) DowntimeMap {
	rows := make(map[planning.EquipmentID]*EquipmentDowntime, len(equipment))
	for _, e := range equipment {
		row := &EquipmentDowntime{EquipmentID: e.ID, EquipmentName: e.Name, Total: decimal.Zero}
		for m := range row.Months {
			row.Months[m] = decimal.Zero
		}
		rows[e.ID] = row
	}

	for _, o := range orders {
		if o.Status != StatusCompleted || o.CompletedDate == nil {
			continue
		}
		if o.CompletedDate.Year() != year {
			continue
		}
		row, ok := rows[o.EquipmentID]
		if !ok {
			// Orders referencing deleted equipment still count somewhere.
			row = &EquipmentDowntime{EquipmentID: o.EquipmentID, Total: decimal.Zero}
			for m := range row.Months {
				row.Months[m] = decimal.Zero
			}
			rows[o.EquipmentID] = row
		}
		month := int(o.CompletedDate.Month()) - int(time.January)
		row.Months[month] = row.Months[month].Add(o.DowntimeHours)
		row.Total = row.Total.Add(o.DowntimeHours)
	}

	out := DowntimeMap{Year: year, Rows: make([]EquipmentDowntime, 0, len(rows))}
	for _, row := range rows {
		out.Rows = append(out.Rows, *row)
	}
	sort.Slice(out.Rows, func(i, j int) bool {
		return out.Rows[i].EquipmentID < out.Rows[j].EquipmentID
	})
	return out
}
