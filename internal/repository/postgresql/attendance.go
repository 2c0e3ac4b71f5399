package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftledger/attendance-backend-go/internal/domain/attendance"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/database"
)

type recordRepository struct {
	db *database.DB
}

const recordColumns = `
	id, employee_id, work_site_id, work_day,
	check_in_time, check_out_time, status, notes,
	ip_address, user_agent,
	created_at, updated_at, deleted_at
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.WorkSiteID, &rec.WorkDay,
		&rec.CheckInTime, &rec.CheckOutTime, &rec.Status, &rec.Notes,
		&rec.IPAddress, &rec.UserAgent,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.DeletedAt,
	)
	return rec, err
}

// Create implements attendance.RecordRepository.
func (r *recordRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, work_site_id, work_day,
			check_in_time, check_out_time, status, notes,
			ip_address, user_agent
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.WorkSiteID,
		rec.WorkDay,
		rec.CheckInTime,
		rec.CheckOutTime,
		rec.Status,
		rec.Notes,
		rec.IPAddress,
		rec.UserAgent,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrDuplicateCheckIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// Update implements attendance.RecordRepository.
func (r *recordRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_out_time = $2, status = $3, notes = $4, updated_at = NOW()
		WHERE id = $1
		  AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, rec.ID, rec.CheckOutTime, rec.Status, rec.Notes)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// GetByID implements attendance.RecordRepository.
func (r *recordRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE id = $1
		  AND deleted_at IS NULL
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// HasCheckInOn implements attendance.RecordRepository.
func (r *recordRepository) HasCheckInOn(ctx context.Context, employeeID, workSiteID string, day time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendance_records
			WHERE employee_id = $1
			  AND work_site_id = $2
			  AND work_day = $3
			  AND deleted_at IS NULL
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, workSiteID, day).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing check-in: %w", err)
	}

	return exists, nil
}

// GetOpenRecord implements attendance.RecordRepository.
func (r *recordRepository) GetOpenRecord(ctx context.Context, employeeID string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND check_out_time IS NULL
		  AND work_site_id IS NOT NULL
		  AND deleted_at IS NULL
		ORDER BY check_in_time DESC
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrNoOpenCheckIn
		}
		return attendance.Record{}, fmt.Errorf("failed to get open attendance record: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDay implements attendance.RecordRepository.
func (r *recordRepository) GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND work_day = $2
		  AND deleted_at IS NULL
		ORDER BY check_in_time ASC
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record by day: %w", err)
	}

	return &rec, nil
}

// ListRange implements attendance.RecordRepository.
func (r *recordRepository) ListRange(ctx context.Context, employeeIDs []string, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			r.id, r.employee_id, r.work_site_id, r.work_day,
			r.check_in_time, r.check_out_time, r.status, r.notes,
			r.ip_address, r.user_agent,
			r.created_at, r.updated_at, r.deleted_at,
			e.last_name || ' ' || e.first_name AS employee_name,
			s.name AS work_site_name
		FROM attendance_records r
		JOIN employees e ON e.id = r.employee_id
		LEFT JOIN work_sites s ON s.id = r.work_site_id
		WHERE r.employee_id = ANY($1)
		  AND r.work_day BETWEEN $2 AND $3
		  AND r.deleted_at IS NULL
		ORDER BY r.work_day ASC, e.last_name ASC, e.first_name ASC
	`

	rows, err := q.Query(ctx, query, employeeIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.WorkSiteID, &rec.WorkDay,
			&rec.CheckInTime, &rec.CheckOutTime, &rec.Status, &rec.Notes,
			&rec.IPAddress, &rec.UserAgent,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.DeletedAt,
			&rec.EmployeeName, &rec.WorkSiteName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

// ListStaleOpen implements attendance.RecordRepository.
func (r *recordRepository) ListStaleOpen(ctx context.Context, olderThanDays int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE check_out_time IS NULL
		  AND work_site_id IS NOT NULL
		  AND work_day < CURRENT_DATE - $1::int
		  AND deleted_at IS NULL
		ORDER BY work_day ASC
	`

	rows, err := q.Query(ctx, query, olderThanDays)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale open records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stale open record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stale open records: %w", err)
	}

	return records, nil
}

// Delete implements attendance.RecordRepository.
func (r *recordRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1
		  AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

func NewRecordRepository(db *database.DB) attendance.RecordRepository {
	return &recordRepository{db: db}
}
