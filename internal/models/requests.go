package models

import "adminportal/internal/common"

// SignupRequest has no role field; every signup becomes an admin.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Mobile          string `json:"mobile"`
	Gender          string `json:"gender"`
	MaritalStatus   string `json:"marital_status"`
}

func (r *SignupRequest) Validate() error {
	v := common.NewValidator()
	v.Name(&r.Name, "name")
	v.Email(&r.Email, "email")
	v.Mobile(&r.Mobile, "mobile")
	v.OneOf(r.Gender, "gender", "Gender must be male or female", "male", "female")
	v.OneOf(r.MaritalStatus, "marital_status", "Marital status must be married or unmarried", "married", "unmarried")
	v.Password(r.Password, "password")
	v.Confirm(r.Password, r.ConfirmPassword, "confirm_password")
	return v.Err()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	v := common.NewValidator()
	v.Email(&r.Email, "email")
	v.Check(r.Password != "", "password", "Password is required")
	return v.Err()
}

type ForgotPasswordRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ForgotPasswordRequest) Validate() error {
	v := common.NewValidator()
	v.Email(&r.Email, "email")
	v.Password(r.NewPassword, "new_password")
	v.Confirm(r.NewPassword, r.ConfirmPassword, "confirm_password")
	return v.Err()
}

// SetPasswordRequest is used both by a trainer rotating a temporary password
// and by an admin setting a trainer's password.
type SetPasswordRequest struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *SetPasswordRequest) Validate() error {
	v := common.NewValidator()
	v.Password(r.NewPassword, "new_password")
	v.Confirm(r.NewPassword, r.ConfirmPassword, "confirm_password")
	return v.Err()
}

type EmployeeStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

func (r *EmployeeStatusRequest) Validate() error {
	v := common.NewValidator()
	v.Check(r.IsActive != nil, "is_active", "is_active must be a boolean")
	return v.Err()
}

// TrainerRequest creates or updates a trainer. Credentials are never part of it.
type TrainerRequest struct {
	Name     string  `json:"name"`
	Mobile   string  `json:"mobile"`
	Email    string  `json:"email"`
	CourseID *int64  `json:"course_id"`
	Bio      *string `json:"bio"`
}

func (r *TrainerRequest) Validate() error {
	v := common.NewValidator()
	v.Name(&r.Name, "name")
	v.Mobile(&r.Mobile, "mobile")
	v.Email(&r.Email, "email")
	v.OptionalID(r.CourseID, "course_id", "Valid course ID required")
	return v.Err()
}

type CourseRequest struct {
	CourseName     string   `json:"course_name"`
	CourseFees     *float64 `json:"course_fees"`
	CourseDuration string   `json:"course_duration"`
	TrainerID      *int64   `json:"trainer_id"`
}

func (r *CourseRequest) Validate() error {
	v := common.NewValidator()
	v.Required(&r.CourseName, "course_name", "Course name is required")
	v.Check(r.CourseFees != nil && *r.CourseFees >= 0, "course_fees", "Valid course fees required")
	v.Required(&r.CourseDuration, "course_duration", "Course duration is required")
	v.OptionalID(r.TrainerID, "trainer_id", "Valid trainer ID required")
	return v.Err()
}

// AdminLogin is the data payload of a successful admin login.
type AdminLogin struct {
	Token    string          `json:"token"`
	Employee EmployeeSummary `json:"employee"`
}

// TrainerLogin is the data payload of a successful trainer login.
type TrainerLogin struct {
	Token          string      `json:"token"`
	IsTempPassword bool        `json:"is_temp_password"`
	Trainer        TrainerView `json:"trainer"`
}
