package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftledger/attendance-backend-go/internal/domain/employee"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, first_name, last_name, email, role, active, created_at, updated_at, deleted_at
		FROM employees
		WHERE id = $1
		  AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Role,
		&emp.Active, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// ListTracked implements employee.EmployeeRepository.
func (e *employeeRepository) ListTracked(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, first_name, last_name, email, role, active, created_at, updated_at, deleted_at
		FROM employees
		WHERE role = $1
		  AND active = TRUE
		  AND deleted_at IS NULL
		ORDER BY last_name ASC, first_name ASC
	`

	rows, err := q.Query(ctx, query, employee.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// ListByIDs implements employee.EmployeeRepository.
func (e *employeeRepository) ListByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, first_name, last_name, email, role, active, created_at, updated_at, deleted_at
		FROM employees
		WHERE id = ANY($1)
		  AND deleted_at IS NULL
		ORDER BY last_name ASC, first_name ASC
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by ids: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Role,
			&emp.Active, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
