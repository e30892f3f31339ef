package repositories

import (
	"context"
	"fmt"

	"adminportal/internal/models"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id int64) (*models.Employee, error)
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type employeeRepo struct {
	db Database
}

func NewEmployeeRepo(db Database) EmployeeRepository {
	return &employeeRepo{db: db}
}

const employeeColumns = `id, name, email, password_hash, mobile, gender, marital_status, role, is_active, created_at`

func (r *employeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	query := `
		INSERT INTO employee (name, email, password_hash, mobile, gender, marital_status, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		employee.Name, employee.Email, employee.PasswordHash, employee.Mobile,
		employee.Gender, employee.MaritalStatus, employee.Role, employee.IsActive,
	).Scan(&employee.ID, &employee.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert employee: %w", translate(err))
	}
	return nil
}

func (r *employeeRepo) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employee WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *employeeRepo) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employee WHERE email = $1`
	return r.scanOne(ctx, query, email)
}

func (r *employeeRepo) scanOne(ctx context.Context, query string, arg interface{}) (*models.Employee, error) {
	e := &models.Employee{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Mobile,
		&e.Gender, &e.MaritalStatus, &e.Role, &e.IsActive, &e.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func (r *employeeRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM employee WHERE email = $1)`
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check employee email: %w", err)
	}
	return exists, nil
}

// UpdatePassword overwrites the hash and invalidates any outstanding reset token.
func (r *employeeRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `
		UPDATE employee
		SET password_hash = $1, reset_token = NULL, reset_token_expiry = NULL
		WHERE id = $2
	`
	return requireAffected(r.db.Exec(ctx, query, passwordHash, id))
}

func (r *employeeRepo) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE employee SET is_active = $1 WHERE id = $2`
	return requireAffected(r.db.Exec(ctx, query, active, id))
}
