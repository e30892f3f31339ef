package models

import "time"

type Trainer struct {
	ID              int64      `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Mobile          string     `json:"mobile" db:"mobile"`
	Email           string     `json:"email" db:"email"`
	Credential      Credential `json:"-"`
	CourseID        *int64     `json:"course_id" db:"course_id"`
	CourseName      *string    `json:"course_name,omitempty" db:"course_name"`
	Bio             *string    `json:"bio,omitempty" db:"bio"`
	ProfileImageURL *string    `json:"profile_image_url,omitempty" db:"profile_image_url"`
	PortalAccess    bool       `json:"portal_access" db:"portal_access"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// IsTempPassword reports whether the trainer still has to rotate an
// admin-issued temporary password.
func (t *Trainer) IsTempPassword() bool {
	_, ok := t.Credential.(TemporaryCredential)
	return ok
}

// PasswordHash returns the hash of the current credential, temporary or not.
func (t *Trainer) PasswordHash() string {
	if t.Credential == nil {
		return ""
	}
	return t.Credential.PasswordHash()
}

// TrainerView is the sanitized trainer representation sent to clients.
type TrainerView struct {
	*Trainer
	IsTempPassword bool `json:"is_temp_password"`
}

func (t *Trainer) View() TrainerView {
	return TrainerView{Trainer: t, IsTempPassword: t.IsTempPassword()}
}

// ProvisionedTrainer is returned exactly once, when an admin creates a trainer
// or re-issues a temporary password.
type ProvisionedTrainer struct {
	TrainerView
	TempPassword string `json:"temp_password"`
}
