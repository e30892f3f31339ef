package services

import (
	"context"
	"errors"
	"log/slog"

	"adminportal/internal/common"
	"adminportal/internal/models"
	"adminportal/internal/repositories"
)

// AuthService manages the admin employee lifecycle: signup, login, password
// reset and activation.
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.Employee, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AdminLogin, error)
	ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error
	Me(ctx context.Context, id int64) (*models.Employee, error)
	SetActive(ctx context.Context, actorID, id int64, req *models.EmployeeStatusRequest) (*models.Employee, error)
	IsActive(ctx context.Context, id int64) (bool, error)
}

type authService struct {
	employees repositories.EmployeeRepository
	passwords PasswordService
	tokens    TokenService
	logger    *slog.Logger
}

func NewAuthService(employees repositories.EmployeeRepository, passwords PasswordService, tokens TokenService) AuthService {
	return &authService{
		employees: employees,
		passwords: passwords,
		tokens:    tokens,
		logger:    slog.Default().With("module", "auth"),
	}
}

func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Pre-check only; the unique index on email is authoritative.
	exists, err := s.employees.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, common.NewStoreError("check employee email", err)
	}
	if exists {
		return nil, common.ErrDuplicateEmail
	}

	hash, err := hashPassword(s.passwords, "password", req.Password)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  hash,
		Mobile:        req.Mobile,
		Gender:        req.Gender,
		MaritalStatus: req.MaritalStatus,
		Role:          models.RoleAdmin,
		IsActive:      true,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, common.NewStoreError("create employee", err)
	}

	s.logger.Info("signup", "employee_id", employee.ID, "email", employee.Email)
	return employee, nil
}

// Login checks, in order: existence, activation, then the password. A
// deactivated account is refused before its password is compared.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AdminLogin, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employee, err := s.employees.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.NewStoreError("find employee", err)
	}
	if !employee.IsActive {
		return nil, common.ErrAccountDeactivated
	}

	ok, err := verifyPassword(s.passwords, req.Password, employee.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrWrongCredentials
	}

	token, err := s.tokens.Issue(models.SessionClaims{
		ID:    employee.ID,
		Email: employee.Email,
		Role:  employee.Role,
	})
	if err != nil {
		return nil, common.NewStoreError("issue token", err)
	}

	s.logger.Info("login success", "employee_id", employee.ID)
	return &models.AdminLogin{Token: token.Token, Employee: employee.Summary()}, nil
}

// ForgotPassword overwrites the password of the account owning the email.
// No proof of ownership is required.
func (s *authService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	employee, err := s.employees.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.ErrEmailNotFound
		}
		return common.NewStoreError("find employee", err)
	}

	hash, err := hashPassword(s.passwords, "new_password", req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.employees.UpdatePassword(ctx, employee.ID, hash); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.ErrEmailNotFound
		}
		return common.NewStoreError("update employee password", err)
	}

	s.logger.Info("password reset", "employee_id", employee.ID)
	return nil
}

func (s *authService) Me(ctx context.Context, id int64) (*models.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, common.NewStoreError("find employee", err)
	}
	return employee, nil
}

func (s *authService) SetActive(ctx context.Context, actorID, id int64, req *models.EmployeeStatusRequest) (*models.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	active := *req.IsActive
	if actorID == id && !active {
		return nil, common.ErrCannotDeactivateSelf
	}

	if err := s.employees.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, common.NewStoreError("set employee status", err)
	}

	s.logger.Info("employee status changed", "employee_id", id, "is_active", active, "by", actorID)
	return s.Me(ctx, id)
}

// IsActive reports whether the employee still exists and is active.
func (s *authService) IsActive(ctx context.Context, id int64) (bool, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, common.NewStoreError("find employee", err)
	}
	return employee.IsActive, nil
}
