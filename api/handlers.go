/*
handlers.go - HTTP API handlers for the maintenance management system

PURPOSE:
  Exposes the equipment registry, maintenance plans, work-order lifecycle,
  calendar projection and reporting views via REST. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Equipment:
    GET    /api/equipment                  List assets
    POST   /api/equipment                  Create asset
    GET    /api/equipment/{id}             Get asset
    PUT    /api/equipment/{id}             Update asset
    DELETE /api/equipment/{id}             Delete asset

  Plans:
    GET    /api/plans                      List plans
    POST   /api/plans                      Create plan
    GET    /api/plans/{id}                 Get plan
    PUT    /api/plans/{id}                 Update plan
    DELETE /api/plans/{id}                 Delete plan
    GET    /api/plans/{id}/cursor          Schedule cursor
    POST   /api/plans/{id}/materialize     Occurrence -> work order

  Work orders:
    GET    /api/workorders                 List (filterable)
    POST   /api/workorders                 Create manual order
    GET    /api/workorders/{id}            Get order
    DELETE /api/workorders/{id}            Delete order
    POST   /api/workorders/{id}/start      open -> in_progress
    POST   /api/workorders/{id}/complete   -> completed
    POST   /api/workorders/{id}/cancel     -> cancelled

  Calendar & reports:
    GET    /api/calendar                   Orders + projected occurrences
    GET    /api/reports/summary            Status/type/priority counts
    GET    /api/reports/downtime           Yearly downtime map

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, bad transitions
  - 404: Resource not found
  - 500: Internal errors

SECURITY NOTE:
  No authentication middleware. Authentication is out of scope for this
  service and handled upstream.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/maintenance-engine/maintenance"
	"github.com/warp/maintenance-engine/planning"
	"github.com/warp/maintenance-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store        *sqlite.Store
	Engine       *planning.Engine
	Materializer *maintenance.Materializer
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:        store,
		Engine:       planning.NewEngine(store),
		Materializer: maintenance.NewMaterializer(store),
	}
}

// =============================================================================
// EQUIPMENT HANDLERS
// =============================================================================

// ListEquipment returns all assets.
func (h *Handler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.Store.ListEquipment(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list equipment", err)
		return
	}

	dtos := make([]EquipmentDTO, len(equipment))
	for i, e := range equipment {
		dtos[i] = toEquipmentDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEquipment returns a single asset.
func (h *Handler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	id := planning.EquipmentID(chi.URLParam(r, "id"))

	e, err := h.Store.GetEquipment(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get equipment", err)
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "Equipment not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toEquipmentDTO(*e))
}

// CreateEquipment creates a new asset.
func (h *Handler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var req SaveEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Equipment name is required", nil)
		return
	}

	e := equipmentFromRequest(req)
	if e.ID == "" {
		e.ID = planning.EquipmentID(uuid.NewString())
	}

	if err := h.Store.SaveEquipment(r.Context(), e); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create equipment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEquipmentDTO(e))
}

// UpdateEquipment updates an existing asset.
func (h *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	id := planning.EquipmentID(chi.URLParam(r, "id"))

	existing, err := h.Store.GetEquipment(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get equipment", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Equipment not found", nil)
		return
	}

	var req SaveEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	e := equipmentFromRequest(req)
	e.ID = id
	e.CreatedAt = existing.CreatedAt

	if err := h.Store.SaveEquipment(r.Context(), e); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update equipment", err)
		return
	}
	writeJSON(w, http.StatusOK, toEquipmentDTO(e))
}

// DeleteEquipment removes an asset.
func (h *Handler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	id := planning.EquipmentID(chi.URLParam(r, "id"))

	if err := h.Store.DeleteEquipment(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete equipment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func equipmentFromRequest(req SaveEquipmentRequest) maintenance.Equipment {
	status := maintenance.EquipmentStatus(req.Status)
	if status == "" {
		status = maintenance.EquipmentOperational
	}
	return maintenance.Equipment{
		ID:       planning.EquipmentID(req.ID),
		Name:     req.Name,
		Code:     req.Code,
		Location: req.Location,
		Category: req.Category,
		Status:   status,
		Notes:    req.Notes,
	}
}

// =============================================================================
// PLAN HANDLERS
// =============================================================================

// ListPlans returns all maintenance plans.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Store.ListPlans(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}

	dtos := make([]PlanDTO, len(plans))
	for i, p := range plans {
		dtos[i] = toPlanDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPlan returns a single plan.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id := planning.PlanID(chi.URLParam(r, "id"))

	p, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toPlanDTO(*p))
}

// CreatePlan creates a new maintenance plan. Schedulable plans get a cursor
// seeded at their start date.
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req SavePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p, err := planFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plan", err)
		return
	}
	if p.ID == "" {
		p.ID = planning.PlanID(uuid.NewString())
	}

	if err := h.Store.SavePlan(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlanDTO(p))
}

// UpdatePlan updates an existing plan.
func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id := planning.PlanID(chi.URLParam(r, "id"))

	existing, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}

	var req SavePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p, err := planFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plan", err)
		return
	}
	p.ID = id

	if err := h.Store.SavePlan(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update plan", err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanDTO(p))
}

// DeletePlan removes a plan and its cursor.
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id := planning.PlanID(chi.URLParam(r, "id"))

	if err := h.Store.DeletePlan(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete plan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCursor returns a plan's schedule cursor.
func (h *Handler) GetCursor(w http.ResponseWriter, r *http.Request) {
	id := planning.PlanID(chi.URLParam(r, "id"))

	c, err := h.Store.GetCursor(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get cursor", err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Schedule cursor not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toCursorDTO(*c))
}

// MaterializeOccurrence turns a projected occurrence into a work order and
// advances the plan's cursor.
func (h *Handler) MaterializeOccurrence(w http.ResponseWriter, r *http.Request) {
	id := planning.PlanID(chi.URLParam(r, "id"))

	var req MaterializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := planning.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	order, err := h.Materializer.Materialize(r.Context(), id, date)
	if err != nil {
		switch {
		case errors.Is(err, planning.ErrPlanNotFound):
			writeError(w, http.StatusNotFound, "Plan not found", nil)
		case errors.Is(err, planning.ErrNotSchedulable):
			writeError(w, http.StatusBadRequest, "Plan is not auto-schedulable", nil)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to materialize occurrence", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toWorkOrderDTO(*order))
}

func planFromRequest(req SavePlanRequest) (planning.MaintenancePlan, error) {
	p := planning.MaintenancePlan{
		ID:            planning.PlanID(req.ID),
		EquipmentID:   planning.EquipmentID(req.EquipmentID),
		Name:          req.Name,
		Type:          planning.MaintenanceType(req.Type),
		Priority:      planning.Priority(req.Priority),
		Description:   req.Description,
		Tasks:         req.Tasks,
		FrequencyDays: req.FrequencyDays,
		Active:        true,
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if req.StartDate != "" {
		d, err := planning.ParseDate(req.StartDate)
		if err != nil {
			return p, err
		}
		p.StartDate = d
	}
	if req.EndDate != nil && *req.EndDate != "" {
		d, err := planning.ParseDate(*req.EndDate)
		if err != nil {
			return p, err
		}
		p.EndDate = &d
	}

	set, err := planning.ParseWeekdaySet(req.ScheduleDays)
	if err != nil {
		return p, err
	}
	p.ScheduleDays = set

	return p, nil
}

// =============================================================================
// WORK ORDER HANDLERS
// =============================================================================

// ListWorkOrders returns orders, optionally filtered by status, equipment,
// plan and date range.
func (h *Handler) ListWorkOrders(w http.ResponseWriter, r *http.Request) {
	filter := sqlite.WorkOrderFilter{
		Status:      maintenance.WorkOrderStatus(r.URL.Query().Get("status")),
		EquipmentID: planning.EquipmentID(r.URL.Query().Get("equipment_id")),
		PlanID:      planning.PlanID(r.URL.Query().Get("plan_id")),
	}
	if from := r.URL.Query().Get("from"); from != "" {
		d, err := planning.ParseDate(from)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'from' date", err)
			return
		}
		filter.From = d
	}
	if to := r.URL.Query().Get("to"); to != "" {
		d, err := planning.ParseDate(to)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'to' date", err)
			return
		}
		filter.To = d
	}

	orders, err := h.Store.ListWorkOrders(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list work orders", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkOrderDTOs(orders))
}

// GetWorkOrder returns a single order.
func (h *Handler) GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	id := planning.WorkOrderID(chi.URLParam(r, "id"))

	o, err := h.Store.GetWorkOrder(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get work order", err)
		return
	}
	if o == nil {
		writeError(w, http.StatusNotFound, "Work order not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toWorkOrderDTO(*o))
}

// CreateWorkOrder creates a manual (plan-less) order.
func (h *Handler) CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EquipmentID == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "equipment_id and title are required", nil)
		return
	}

	scheduled, err := planning.ParseDate(req.ScheduledDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scheduled_date format (use YYYY-MM-DD)", err)
		return
	}

	orderType := planning.MaintenanceType(req.Type)
	if orderType == "" {
		orderType = planning.TypeCorrective
	}
	priority := planning.Priority(req.Priority)
	if priority == "" {
		priority = planning.PriorityMedium
	}

	now := time.Now().UTC()
	o := maintenance.WorkOrder{
		ID:            planning.WorkOrderID(uuid.NewString()),
		EquipmentID:   planning.EquipmentID(req.EquipmentID),
		Title:         req.Title,
		Type:          orderType,
		Priority:      priority,
		Status:        maintenance.StatusOpen,
		ScheduledDate: scheduled,
		Description:   req.Description,
		Tasks:         req.Tasks,
		Cost:          decimal.Zero,
		DowntimeHours: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.Store.CreateWorkOrder(r.Context(), o); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create work order", err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkOrderDTO(o))
}

// DeleteWorkOrder removes an order.
func (h *Handler) DeleteWorkOrder(w http.ResponseWriter, r *http.Request) {
	id := planning.WorkOrderID(chi.URLParam(r, "id"))

	if err := h.Store.DeleteWorkOrder(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete work order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartWorkOrder moves an order to in_progress.
func (h *Handler) StartWorkOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, maintenance.StatusInProgress, nil)
}

// CompleteWorkOrder closes out an order with completion date, cost and
// recorded downtime.
func (h *Handler) CompleteWorkOrder(w http.ResponseWriter, r *http.Request) {
	// Empty body is allowed; all fields default.
	var req CompleteWorkOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	completed := planning.Today()
	if req.CompletedDate != "" {
		d, err := planning.ParseDate(req.CompletedDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid completed_date format (use YYYY-MM-DD)", err)
			return
		}
		completed = d
	}

	h.transition(w, r, maintenance.StatusCompleted, func(o *maintenance.WorkOrder) {
		o.CompletedDate = &completed
		o.Cost = decimal.NewFromFloat(req.Cost)
		o.DowntimeHours = decimal.NewFromFloat(req.DowntimeHours)
		o.Overdue = false
	})
}

// CancelWorkOrder cancels an order.
func (h *Handler) CancelWorkOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, maintenance.StatusCancelled, func(o *maintenance.WorkOrder) {
		o.Overdue = false
	})
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, next maintenance.WorkOrderStatus, mutate func(*maintenance.WorkOrder)) {
	id := planning.WorkOrderID(chi.URLParam(r, "id"))

	o, err := h.Store.GetWorkOrder(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get work order", err)
		return
	}
	if o == nil {
		writeError(w, http.StatusNotFound, "Work order not found", nil)
		return
	}

	if !o.Status.CanTransitionTo(next) {
		writeError(w, http.StatusBadRequest, "Invalid status transition",
			&maintenance.InvalidTransitionError{From: o.Status, To: next})
		return
	}

	o.Status = next
	if mutate != nil {
		mutate(o)
	}

	if err := h.Store.UpdateWorkOrder(r.Context(), *o); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update work order", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkOrderDTO(*o))
}

// =============================================================================
// CALENDAR HANDLER
// =============================================================================

// GetCalendar returns the combined calendar view: real work orders plus
// projected virtual occurrences in the requested range. Defaults to today
// through today + 3 months.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	from := planning.Today()
	to := planning.DefaultHorizon()

	if v := r.URL.Query().Get("from"); v != "" {
		d, err := planning.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'from' date", err)
			return
		}
		from = d
	}
	if v := r.URL.Query().Get("to"); v != "" {
		d, err := planning.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'to' date", err)
			return
		}
		to = d
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "'to' must not precede 'from'", nil)
		return
	}

	ctx := r.Context()

	orders, err := h.Store.ListWorkOrders(ctx, sqlite.WorkOrderFilter{From: from, To: to})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list work orders", err)
		return
	}

	occurrences, err := h.Engine.ProjectAll(ctx, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to project occurrences", err)
		return
	}

	// Projection always starts at each plan's cursor; trim to the window.
	var inRange []planning.VirtualOccurrence
	for _, occ := range occurrences {
		if occ.Date.AfterOrEqual(from) {
			inRange = append(inRange, occ)
		}
	}

	writeJSON(w, http.StatusOK, CalendarDTO{
		From:        from.String(),
		To:          to.String(),
		WorkOrders:  toWorkOrderDTOs(orders),
		Occurrences: toOccurrenceDTOs(inRange),
	})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetSummary returns the dashboard status summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.ListWorkOrders(r.Context(), sqlite.WorkOrderFilter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list work orders", err)
		return
	}

	today := planning.Today()
	s := maintenance.Summarize(orders, today)
	totalCost, _ := s.TotalCost.Float64()

	dto := SummaryDTO{
		Total:      s.Total,
		ByStatus:   make(map[string]int, len(s.ByStatus)),
		ByType:     make(map[string]int, len(s.ByType)),
		ByPriority: make(map[string]int, len(s.ByPriority)),
		Overdue:    s.Overdue,
		TotalCost:  totalCost,
		AsOf:       today.String(),
	}
	for k, v := range s.ByStatus {
		dto.ByStatus[string(k)] = v
	}
	for k, v := range s.ByType {
		dto.ByType[string(k)] = v
	}
	for k, v := range s.ByPriority {
		dto.ByPriority[string(k)] = v
	}

	writeJSON(w, http.StatusOK, dto)
}

// GetDowntimeMap returns the yearly downtime map.
func (h *Handler) GetDowntimeMap(w http.ResponseWriter, r *http.Request) {
	year := planning.Today().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = y
	}

	ctx := r.Context()

	// The map buckets by completion date, which can fall in a different
	// year than the scheduled date, so no scheduled-date range here;
	// BuildDowntimeMap filters by completion year.
	orders, err := h.Store.ListWorkOrders(ctx, sqlite.WorkOrderFilter{
		Status: maintenance.StatusCompleted,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list work orders", err)
		return
	}

	equipment, err := h.Store.ListEquipment(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list equipment", err)
		return
	}

	dm := maintenance.BuildDowntimeMap(year, orders, equipment)
	dto := DowntimeMapDTO{Year: dm.Year, Rows: make([]DowntimeRowDTO, len(dm.Rows))}
	for i, row := range dm.Rows {
		r := DowntimeRowDTO{
			EquipmentID:   string(row.EquipmentID),
			EquipmentName: row.EquipmentName,
		}
		for m, hours := range row.Months {
			r.Months[m], _ = hours.Float64()
		}
		r.Total, _ = row.Total.Float64()
		dto.Rows[i] = r
	}

	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// DEV/TESTING HANDLERS
// =============================================================================

// ResetDatabase clears all data. Dev/testing only.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
