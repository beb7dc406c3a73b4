/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements all persistence the service needs using SQLite. In production,
  the same patterns apply to PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  planning.Repository:  Read-only snapshot for the projection engine
  maintenance.TxStore:  Plan/cursor/work-order writes for materialization

KEY TABLES:
  equipment:          Asset registry
  maintenance_plans:  Recurrence rules plus carried-through metadata
  schedule_cursors:   One projection cursor per plan
  work_orders:        Materialized and manually created orders

TASKS ENCODING:
  Plan and work-order task lists are ordered []string in domain code and are
  JSON-encoded only at this boundary. Nothing above this package ever sees
  the serialized form.

DEDUPLICATION:
  There is deliberately NO uniqueness constraint on
  work_orders(plan_id, scheduled_date). Duplicate suppression is client-side
  in planning.Dedupe; a concurrent double-materialization produces two valid
  rows, accepted as a rare harmless race.

WAL MODE:
  SQLite is opened with WAL for better concurrency: multiple readers don't
  block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/maintenance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - planning/engine.go: Repository interface definition
  - planning/store/memory.go: In-memory implementation for engine tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/maintenance-engine/maintenance"
	"github.com/warp/maintenance-engine/planning"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS equipment (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'operational',
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS maintenance_plans (
		id TEXT PRIMARY KEY,
		equipment_id TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		priority TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		tasks_json TEXT NOT NULL DEFAULT '[]',
		frequency_days INTEGER NOT NULL DEFAULT 0,
		start_date TEXT,
		end_date TEXT,
		schedule_days_json TEXT,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_plans_equipment
		ON maintenance_plans(equipment_id);
	CREATE INDEX IF NOT EXISTS idx_plans_active
		ON maintenance_plans(active);

	CREATE TABLE IF NOT EXISTS schedule_cursors (
		plan_id TEXT PRIMARY KEY,
		next_scheduled_date TEXT NOT NULL,
		last_generated_date TEXT,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS work_orders (
		id TEXT PRIMARY KEY,
		plan_id TEXT,
		equipment_id TEXT NOT NULL,
		title TEXT NOT NULL,
		type TEXT NOT NULL,
		priority TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		scheduled_date TEXT NOT NULL,
		completed_date TEXT,
		description TEXT NOT NULL DEFAULT '',
		tasks_json TEXT NOT NULL DEFAULT '[]',
		cost TEXT NOT NULL DEFAULT '0',
		downtime_hours TEXT NOT NULL DEFAULT '0',
		overdue BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Hot path for the deduplicator: all (plan, date) pairs up to the horizon.
	-- Deliberately not UNIQUE; duplicate suppression is client-side.
	CREATE INDEX IF NOT EXISTS idx_work_orders_plan_date
		ON work_orders(plan_id, scheduled_date) WHERE plan_id IS NOT NULL;
	CREATE INDEX IF NOT EXISTS idx_work_orders_status
		ON work_orders(status);
	CREATE INDEX IF NOT EXISTS idx_work_orders_equipment
		ON work_orders(equipment_id);
	CREATE INDEX IF NOT EXISTS idx_work_orders_scheduled
		ON work_orders(scheduled_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// EQUIPMENT
// =============================================================================

// SaveEquipment inserts or updates an asset.
func (s *Store) SaveEquipment(ctx context.Context, e maintenance.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO equipment (id, name, code, location, category, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			code = excluded.code,
			location = excluded.location,
			category = excluded.category,
			status = excluded.status,
			notes = excluded.notes
	`

	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.Name, e.Code, e.Location, e.Category, e.Status, e.Notes,
		createdAt.Format(time.RFC3339),
	)
	return err
}

// GetEquipment retrieves an asset by ID. Returns (nil, nil) when missing.
func (s *Store) GetEquipment(ctx context.Context, id planning.EquipmentID) (*maintenance.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e maintenance.Equipment
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, code, location, category, status, notes, created_at FROM equipment WHERE id = ?",
		id,
	).Scan(&e.ID, &e.Name, &e.Code, &e.Location, &e.Category, &e.Status, &e.Notes, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &e, nil
}

// ListEquipment returns all assets ordered by name.
func (s *Store) ListEquipment(ctx context.Context) ([]maintenance.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, code, location, category, status, notes, created_at FROM equipment ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []maintenance.Equipment
	for rows.Next() {
		var e maintenance.Equipment
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Name, &e.Code, &e.Location, &e.Category, &e.Status, &e.Notes, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		result = append(result, e)
	}
	return result, rows.Err()
}

// DeleteEquipment removes an asset.
func (s *Store) DeleteEquipment(ctx context.Context, id planning.EquipmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM equipment WHERE id = ?", id)
	return err
}

// ListEquipmentNames returns the display name per equipment id.
func (s *Store) ListEquipmentNames(ctx context.Context) (map[planning.EquipmentID]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM equipment")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[planning.EquipmentID]string)
	for rows.Next() {
		var id planning.EquipmentID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

// =============================================================================
// MAINTENANCE PLANS
// =============================================================================

const planColumns = `id, equipment_id, name, type, priority, description, tasks_json,
	frequency_days, start_date, end_date, schedule_days_json, active`

// SavePlan inserts or updates a plan. A schedulable plan that has no cursor
// yet gets one seeded at its start date, in the same lock scope.
func (s *Store) SavePlan(ctx context.Context, p planning.MaintenancePlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasksJSON, err := json.Marshal(p.Tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	scheduleDaysJSON, err := encodeScheduleDays(p.ScheduleDays)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO maintenance_plans
		(id, equipment_id, name, type, priority, description, tasks_json,
		 frequency_days, start_date, end_date, schedule_days_json, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			equipment_id = excluded.equipment_id,
			name = excluded.name,
			type = excluded.type,
			priority = excluded.priority,
			description = excluded.description,
			tasks_json = excluded.tasks_json,
			frequency_days = excluded.frequency_days,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			schedule_days_json = excluded.schedule_days_json,
			active = excluded.active,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, query,
		p.ID, p.EquipmentID, p.Name, p.Type, p.Priority, p.Description, string(tasksJSON),
		p.FrequencyDays, dateArg(p.StartDate), datePtrArg(p.EndDate), scheduleDaysJSON, p.Active,
		now, now,
	)
	if err != nil {
		return err
	}

	if p.Schedulable() && !p.StartDate.IsZero() {
		seed := planning.SeedCursor(p)
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO schedule_cursors (plan_id, next_scheduled_date, last_generated_date, updated_at)
			VALUES (?, ?, NULL, ?)
			ON CONFLICT(plan_id) DO NOTHING
		`, seed.PlanID, seed.NextScheduledDate.String(), now)
	}
	return err
}

// GetPlan retrieves a plan by ID. Returns (nil, nil) when missing.
func (s *Store) GetPlan(ctx context.Context, id planning.PlanID) (*planning.MaintenancePlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getPlan(ctx, s.db, id)
}

func getPlan(ctx context.Context, q queryer, id planning.PlanID) (*planning.MaintenancePlan, error) {
	row := q.QueryRowContext(ctx,
		"SELECT "+planColumns+" FROM maintenance_plans WHERE id = ?", id)

	p, err := scanPlanRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPlans returns all plans ordered by name.
func (s *Store) ListPlans(ctx context.Context) ([]planning.MaintenancePlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryPlans(ctx, "SELECT "+planColumns+" FROM maintenance_plans ORDER BY name")
}

// ListActivePlans returns all plans with Active = true.
func (s *Store) ListActivePlans(ctx context.Context) ([]planning.MaintenancePlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryPlans(ctx, "SELECT "+planColumns+" FROM maintenance_plans WHERE active = TRUE ORDER BY name")
}

func (s *Store) queryPlans(ctx context.Context, query string, args ...any) ([]planning.MaintenancePlan, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []planning.MaintenancePlan
	for rows.Next() {
		p, err := scanPlanRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

func scanPlanRow(scan func(dest ...any) error) (*planning.MaintenancePlan, error) {
	var (
		p            planning.MaintenancePlan
		tasksJSON    string
		startDate    sql.NullString
		endDate      sql.NullString
		scheduleDays sql.NullString
	)

	err := scan(&p.ID, &p.EquipmentID, &p.Name, &p.Type, &p.Priority, &p.Description,
		&tasksJSON, &p.FrequencyDays, &startDate, &endDate, &scheduleDays, &p.Active)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tasksJSON), &p.Tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks for plan %s: %w", p.ID, err)
	}
	p.StartDate = parseNullDate(startDate)
	if endDate.Valid {
		d := parseNullDate(endDate)
		if !d.IsZero() {
			p.EndDate = &d
		}
	}
	if scheduleDays.Valid && scheduleDays.String != "" {
		var names []string
		if err := json.Unmarshal([]byte(scheduleDays.String), &names); err != nil {
			return nil, fmt.Errorf("failed to decode schedule days for plan %s: %w", p.ID, err)
		}
		set, err := planning.ParseWeekdaySet(names)
		if err != nil {
			return nil, err
		}
		p.ScheduleDays = set
	}

	return &p, nil
}

// DeletePlan removes a plan and its cursor.
func (s *Store) DeletePlan(ctx context.Context, id planning.PlanID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM schedule_cursors WHERE plan_id = ?", id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM maintenance_plans WHERE id = ?", id)
	return err
}

// =============================================================================
// SCHEDULE CURSORS
// =============================================================================

// GetCursor returns the cursor for a plan, or (nil, nil) when missing.
func (s *Store) GetCursor(ctx context.Context, planID planning.PlanID) (*planning.ScheduleCursor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getCursor(ctx, s.db, planID)
}

func getCursor(ctx context.Context, q queryer, planID planning.PlanID) (*planning.ScheduleCursor, error) {
	var c planning.ScheduleCursor
	var next string
	var last sql.NullString

	err := q.QueryRowContext(ctx,
		"SELECT plan_id, next_scheduled_date, last_generated_date FROM schedule_cursors WHERE plan_id = ?",
		planID,
	).Scan(&c.PlanID, &next, &last)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if d, err := planning.ParseDate(next); err == nil {
		c.NextScheduledDate = d
	}
	c.LastGeneratedDate = parseNullDate(last)
	return &c, nil
}

// SaveCursor inserts or updates a plan's cursor.
func (s *Store) SaveCursor(ctx context.Context, c planning.ScheduleCursor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveCursor(ctx, s.db, c)
}

func saveCursor(ctx context.Context, db execer, c planning.ScheduleCursor) error {
	query := `
		INSERT INTO schedule_cursors (plan_id, next_scheduled_date, last_generated_date, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(plan_id) DO UPDATE SET
			next_scheduled_date = excluded.next_scheduled_date,
			last_generated_date = excluded.last_generated_date,
			updated_at = excluded.updated_at
	`

	_, err := db.ExecContext(ctx, query,
		c.PlanID, c.NextScheduledDate.String(), dateArg(c.LastGeneratedDate),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// =============================================================================
// WORK ORDERS
// =============================================================================

const workOrderColumns = `id, plan_id, equipment_id, title, type, priority, status,
	scheduled_date, completed_date, description, tasks_json, cost, downtime_hours,
	overdue, created_at, updated_at`

// CreateWorkOrder inserts a new order.
func (s *Store) CreateWorkOrder(ctx context.Context, o maintenance.WorkOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return insertWorkOrder(ctx, s.db, o)
}

func insertWorkOrder(ctx context.Context, db execer, o maintenance.WorkOrder) error {
	tasksJSON, err := json.Marshal(o.Tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	query := `
		INSERT INTO work_orders
		(id, plan_id, equipment_id, title, type, priority, status, scheduled_date,
		 completed_date, description, tasks_json, cost, downtime_hours, overdue,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = db.ExecContext(ctx, query,
		o.ID, nullPlanID(o.PlanID), o.EquipmentID, o.Title, o.Type, o.Priority, o.Status,
		o.ScheduledDate.String(), datePtrArg(o.CompletedDate), o.Description,
		string(tasksJSON), o.Cost.String(), o.DowntimeHours.String(), o.Overdue,
		o.CreatedAt.UTC().Format(time.RFC3339), o.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert work order: %w", err)
	}
	return nil
}

// UpdateWorkOrder rewrites an order's mutable fields.
func (s *Store) UpdateWorkOrder(ctx context.Context, o maintenance.WorkOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasksJSON, err := json.Marshal(o.Tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	query := `
		UPDATE work_orders SET
			title = ?, type = ?, priority = ?, status = ?, scheduled_date = ?,
			completed_date = ?, description = ?, tasks_json = ?, cost = ?,
			downtime_hours = ?, overdue = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		o.Title, o.Type, o.Priority, o.Status, o.ScheduledDate.String(),
		datePtrArg(o.CompletedDate), o.Description, string(tasksJSON),
		o.Cost.String(), o.DowntimeHours.String(), o.Overdue,
		time.Now().UTC().Format(time.RFC3339), o.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return maintenance.ErrWorkOrderNotFound
	}
	return nil
}

// GetWorkOrder retrieves an order by ID. Returns (nil, nil) when missing.
func (s *Store) GetWorkOrder(ctx context.Context, id planning.WorkOrderID) (*maintenance.WorkOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+workOrderColumns+" FROM work_orders WHERE id = ?", id)

	o, err := scanWorkOrderRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// WorkOrderFilter narrows ListWorkOrders. Zero values mean "no filter".
type WorkOrderFilter struct {
	Status      maintenance.WorkOrderStatus
	EquipmentID planning.EquipmentID
	PlanID      planning.PlanID
	From        planning.Date
	To          planning.Date
}

// ListWorkOrders returns orders matching the filter, ordered by scheduled date.
func (s *Store) ListWorkOrders(ctx context.Context, f WorkOrderFilter) ([]maintenance.WorkOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + workOrderColumns + " FROM work_orders WHERE 1=1"
	var args []any

	if f.Status != "" {
		query += " AND status = ?"
		args = append(args, f.Status)
	}
	if f.EquipmentID != "" {
		query += " AND equipment_id = ?"
		args = append(args, f.EquipmentID)
	}
	if f.PlanID != "" {
		query += " AND plan_id = ?"
		args = append(args, f.PlanID)
	}
	if !f.From.IsZero() {
		query += " AND scheduled_date >= ?"
		args = append(args, f.From.String())
	}
	if !f.To.IsZero() {
		query += " AND scheduled_date <= ?"
		args = append(args, f.To.String())
	}
	query += " ORDER BY scheduled_date ASC, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query work orders: %w", err)
	}
	defer rows.Close()

	var orders []maintenance.WorkOrder
	for rows.Next() {
		o, err := scanWorkOrderRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func scanWorkOrderRow(scan func(dest ...any) error) (*maintenance.WorkOrder, error) {
	var (
		o             maintenance.WorkOrder
		planID        sql.NullString
		scheduledDate string
		completedDate sql.NullString
		tasksJSON     string
		cost          string
		downtime      string
		createdAt     string
		updatedAt     string
	)

	err := scan(&o.ID, &planID, &o.EquipmentID, &o.Title, &o.Type, &o.Priority, &o.Status,
		&scheduledDate, &completedDate, &o.Description, &tasksJSON, &cost, &downtime,
		&o.Overdue, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	o.PlanID = planning.PlanID(planID.String)
	if d, err := planning.ParseDate(scheduledDate); err == nil {
		o.ScheduledDate = d
	}
	if completedDate.Valid {
		d := parseNullDate(completedDate)
		if !d.IsZero() {
			o.CompletedDate = &d
		}
	}
	if err := json.Unmarshal([]byte(tasksJSON), &o.Tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks for order %s: %w", o.ID, err)
	}
	o.Cost = parseDecimal(cost)
	o.DowntimeHours = parseDecimal(downtime)
	o.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	o.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &o, nil
}

// DeleteWorkOrder removes an order.
func (s *Store) DeleteWorkOrder(ctx context.Context, id planning.WorkOrderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM work_orders WHERE id = ?", id)
	return err
}

// ListMaterialized returns the (plan, date) pairs of all plan-linked orders
// scheduled on or before the given date.
func (s *Store) ListMaterialized(ctx context.Context, until planning.Date) ([]planning.MaterializedOccurrence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT plan_id, scheduled_date FROM work_orders
		WHERE plan_id IS NOT NULL AND scheduled_date <= ?
	`, until.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []planning.MaterializedOccurrence
	for rows.Next() {
		var occ planning.MaterializedOccurrence
		var date string
		if err := rows.Scan(&occ.PlanID, &date); err != nil {
			return nil, err
		}
		if d, err := planning.ParseDate(date); err == nil {
			occ.Date = d
		}
		result = append(result, occ)
	}
	return result, rows.Err()
}

// MarkOverdue flags open orders whose scheduled date has passed and returns
// how many rows changed.
func (s *Store) MarkOverdue(ctx context.Context, today planning.Date) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE work_orders SET overdue = TRUE, updated_at = ?
		WHERE overdue = FALSE
		  AND status IN ('open', 'in_progress')
		  AND scheduled_date < ?
	`, time.Now().UTC().Format(time.RFC3339), today.String())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// =============================================================================
// TRANSACTIONAL STORE (maintenance.TxStore interface)
// =============================================================================

// WithTx executes a function within a database transaction. Reads inside the
// closure see the transaction's own writes.
func (s *Store) WithTx(ctx context.Context, fn func(maintenance.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

// txStore is the transaction-scoped view handed to WithTx closures. It goes
// straight to the *sql.Tx and never touches the store mutex, which WithTx
// already holds.
type txStore struct {
	tx *sql.Tx
}

func (ts *txStore) GetPlan(ctx context.Context, id planning.PlanID) (*planning.MaintenancePlan, error) {
	return getPlan(ctx, ts.tx, id)
}

func (ts *txStore) GetCursor(ctx context.Context, planID planning.PlanID) (*planning.ScheduleCursor, error) {
	return getCursor(ctx, ts.tx, planID)
}

func (ts *txStore) SaveCursor(ctx context.Context, c planning.ScheduleCursor) error {
	return saveCursor(ctx, ts.tx, c)
}

func (ts *txStore) CreateWorkOrder(ctx context.Context, o maintenance.WorkOrder) error {
	return insertWorkOrder(ctx, ts.tx, o)
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"work_orders", "schedule_cursors", "maintenance_plans", "equipment"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

func dateArg(d planning.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func datePtrArg(d *planning.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.String()
}

func parseNullDate(s sql.NullString) planning.Date {
	if !s.Valid || s.String == "" {
		return planning.Date{}
	}
	d, err := planning.ParseDate(s.String)
	if err != nil {
		return planning.Date{}
	}
	return d
}

func nullPlanID(id planning.PlanID) any {
	if id == "" {
		return nil
	}
	return string(id)
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func encodeScheduleDays(set planning.WeekdaySet) (any, error) {
	if set.IsEmpty() {
		return nil, nil
	}
	b, err := json.Marshal(set.Names())
	if err != nil {
		return nil, fmt.Errorf("failed to encode schedule days: %w", err)
	}
	return string(b), nil
}
