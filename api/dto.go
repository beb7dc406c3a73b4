/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  All calendar dates cross the wire as ISO-8601 (YYYY-MM-DD) strings;
  record timestamps as RFC3339.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/maintenance-engine/maintenance"
	"github.com/warp/maintenance-engine/planning"
)

// =============================================================================
// EQUIPMENT
// =============================================================================

// EquipmentDTO represents an asset in API responses.
type EquipmentDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code,omitempty"`
	Location  string `json:"location,omitempty"`
	Category  string `json:"category,omitempty"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// SaveEquipmentRequest is the request to create or update an asset.
type SaveEquipmentRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Location string `json:"location,omitempty"`
	Category string `json:"category,omitempty"`
	Status   string `json:"status,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// =============================================================================
// MAINTENANCE PLANS
// =============================================================================

// PlanDTO represents a maintenance plan in API responses.
type PlanDTO struct {
	ID            string   `json:"id"`
	EquipmentID   string   `json:"equipment_id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Priority      string   `json:"priority"`
	Description   string   `json:"description,omitempty"`
	Tasks         []string `json:"tasks"`
	FrequencyDays int      `json:"frequency_days,omitempty"`
	StartDate     string   `json:"start_date,omitempty"`
	EndDate       *string  `json:"end_date,omitempty"`
	ScheduleDays  []string `json:"schedule_days_of_week,omitempty"`
	Active        bool     `json:"active"`
}

// SavePlanRequest is the request to create or update a plan.
type SavePlanRequest struct {
	ID            string   `json:"id,omitempty"`
	EquipmentID   string   `json:"equipment_id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Priority      string   `json:"priority"`
	Description   string   `json:"description,omitempty"`
	Tasks         []string `json:"tasks,omitempty"`
	FrequencyDays int      `json:"frequency_days,omitempty"`
	StartDate     string   `json:"start_date,omitempty"`
	EndDate       *string  `json:"end_date,omitempty"`
	ScheduleDays  []string `json:"schedule_days_of_week,omitempty"`
	Active        *bool    `json:"active,omitempty"`
}

// CursorDTO represents a plan's schedule cursor.
type CursorDTO struct {
	PlanID            string `json:"plan_id"`
	NextScheduledDate string `json:"next_scheduled_date"`
	LastGeneratedDate string `json:"last_generated_date,omitempty"`
}

// MaterializeRequest asks to turn a projected occurrence into a work order.
type MaterializeRequest struct {
	Date string `json:"date"`
}

// =============================================================================
// WORK ORDERS
// =============================================================================

// WorkOrderDTO represents a work order in API responses.
type WorkOrderDTO struct {
	ID            string   `json:"id"`
	PlanID        string   `json:"plan_id,omitempty"`
	EquipmentID   string   `json:"equipment_id"`
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	Priority      string   `json:"priority"`
	Status        string   `json:"status"`
	ScheduledDate string   `json:"scheduled_date"`
	CompletedDate *string  `json:"completed_date,omitempty"`
	Description   string   `json:"description,omitempty"`
	Tasks         []string `json:"tasks"`
	Cost          float64  `json:"cost"`
	DowntimeHours float64  `json:"downtime_hours"`
	Overdue       bool     `json:"overdue"`
	CreatedAt     string   `json:"created_at,omitempty"`
}

// CreateWorkOrderRequest creates a manual (plan-less) work order.
type CreateWorkOrderRequest struct {
	EquipmentID   string   `json:"equipment_id"`
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	Priority      string   `json:"priority"`
	ScheduledDate string   `json:"scheduled_date"`
	Description   string   `json:"description,omitempty"`
	Tasks         []string `json:"tasks,omitempty"`
}

// CompleteWorkOrderRequest closes out an order.
type CompleteWorkOrderRequest struct {
	CompletedDate string  `json:"completed_date,omitempty"` // defaults to today
	Cost          float64 `json:"cost,omitempty"`
	DowntimeHours float64 `json:"downtime_hours,omitempty"`
}

// =============================================================================
// CALENDAR
// =============================================================================

// OccurrenceDTO is a projected, not-yet-materialized maintenance event.
type OccurrenceDTO struct {
	PlanID        string `json:"plan_id"`
	PlanName      string `json:"plan_name"`
	EquipmentID   string `json:"equipment_id"`
	EquipmentName string `json:"equipment_name,omitempty"`
	Date          string `json:"date"`
	Type          string `json:"type"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
}

// CalendarDTO is the combined calendar view for a date range.
type CalendarDTO struct {
	From        string          `json:"from"`
	To          string          `json:"to"`
	WorkOrders  []WorkOrderDTO  `json:"work_orders"`
	Occurrences []OccurrenceDTO `json:"occurrences"`
}

// =============================================================================
// REPORTS
// =============================================================================

// SummaryDTO is the dashboard headline view.
type SummaryDTO struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByType     map[string]int `json:"by_type"`
	ByPriority map[string]int `json:"by_priority"`
	Overdue    int            `json:"overdue"`
	TotalCost  float64        `json:"total_cost"`
	AsOf       string         `json:"as_of"`
}

// DowntimeRowDTO is one equipment row of the yearly downtime map.
type DowntimeRowDTO struct {
	EquipmentID   string      `json:"equipment_id"`
	EquipmentName string      `json:"equipment_name,omitempty"`
	Months        [12]float64 `json:"months"`
	Total         float64     `json:"total"`
}

// DowntimeMapDTO is the yearly downtime map.
type DowntimeMapDTO struct {
	Year int              `json:"year"`
	Rows []DowntimeRowDTO `json:"rows"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEquipmentDTO(e maintenance.Equipment) EquipmentDTO {
	return EquipmentDTO{
		ID:        string(e.ID),
		Name:      e.Name,
		Code:      e.Code,
		Location:  e.Location,
		Category:  e.Category,
		Status:    string(e.Status),
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func toPlanDTO(p planning.MaintenancePlan) PlanDTO {
	dto := PlanDTO{
		ID:            string(p.ID),
		EquipmentID:   string(p.EquipmentID),
		Name:          p.Name,
		Type:          string(p.Type),
		Priority:      string(p.Priority),
		Description:   p.Description,
		Tasks:         p.Tasks,
		FrequencyDays: p.FrequencyDays,
		ScheduleDays:  p.ScheduleDays.Names(),
		Active:        p.Active,
	}
	if dto.Tasks == nil {
		dto.Tasks = []string{}
	}
	if !p.StartDate.IsZero() {
		dto.StartDate = p.StartDate.String()
	}
	if p.EndDate != nil {
		s := p.EndDate.String()
		dto.EndDate = &s
	}
	return dto
}

func toCursorDTO(c planning.ScheduleCursor) CursorDTO {
	dto := CursorDTO{
		PlanID:            string(c.PlanID),
		NextScheduledDate: c.NextScheduledDate.String(),
	}
	if !c.LastGeneratedDate.IsZero() {
		dto.LastGeneratedDate = c.LastGeneratedDate.String()
	}
	return dto
}

func toWorkOrderDTO(o maintenance.WorkOrder) WorkOrderDTO {
	cost, _ := o.Cost.Float64()
	downtime, _ := o.DowntimeHours.Float64()

	dto := WorkOrderDTO{
		ID:            string(o.ID),
		PlanID:        string(o.PlanID),
		EquipmentID:   string(o.EquipmentID),
		Title:         o.Title,
		Type:          string(o.Type),
		Priority:      string(o.Priority),
		Status:        string(o.Status),
		ScheduledDate: o.ScheduledDate.String(),
		Description:   o.Description,
		Tasks:         o.Tasks,
		Cost:          cost,
		DowntimeHours: downtime,
		Overdue:       o.Overdue,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
	if dto.Tasks == nil {
		dto.Tasks = []string{}
	}
	if o.CompletedDate != nil {
		s := o.CompletedDate.String()
		dto.CompletedDate = &s
	}
	return dto
}

func toWorkOrderDTOs(orders []maintenance.WorkOrder) []WorkOrderDTO {
	dtos := make([]WorkOrderDTO, len(orders))
	for i, o := range orders {
		dtos[i] = toWorkOrderDTO(o)
	}
	return dtos
}

func toOccurrenceDTOs(occs []planning.VirtualOccurrence) []OccurrenceDTO {
	dtos := make([]OccurrenceDTO, len(occs))
	for i, occ := range occs {
		dtos[i] = OccurrenceDTO{
			PlanID:        string(occ.PlanID),
			PlanName:      occ.PlanName,
			EquipmentID:   string(occ.EquipmentID),
			EquipmentName: occ.EquipmentName,
			Date:          occ.Date.String(),
			Type:          string(occ.Type),
			Priority:      string(occ.Priority),
			Status:        occ.Status,
		}
	}
	return dtos
}
