package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
)

// Employee is an admin portal user. Role is always assigned server side.
type Employee struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Mobile        string    `json:"mobile" db:"mobile"`
	Gender        string    `json:"gender" db:"gender"`
	MaritalStatus string    `json:"marital_status" db:"marital_status"`
	Role          string    `json:"role" db:"role"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// EmployeeSummary is the subset returned alongside a login token.
type EmployeeSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (e *Employee) Summary() EmployeeSummary {
	return EmployeeSummary{ID: e.ID, Name: e.Name, Email: e.Email, Role: e.Role}
}
