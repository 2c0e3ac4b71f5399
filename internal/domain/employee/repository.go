package employee

import "context"

// EmployeeRepository is the read-side directory the core consumes. User and
// session management live with the surrounding application.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListTracked returns active employees with the tracked role, ordered by
	// last name then first name.
	ListTracked(ctx context.Context) ([]Employee, error)

	// ListByIDs returns the named employees in the same last-name/first-name
	// order. Unknown ids are silently dropped.
	ListByIDs(ctx context.Context, ids []string) ([]Employee, error)
}
