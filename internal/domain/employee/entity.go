package employee

import (
	"time"
)

type Role string

const (
	// RoleEmployee marks staff whose attendance is tracked and reported.
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

type Employee struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// FullName is last name first, matching directory ordering.
func (e Employee) FullName() string {
	return e.LastName + " " + e.FirstName
}
