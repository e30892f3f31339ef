package repositories

import (
	"context"
	"fmt"
	"time"

	"adminportal/internal/models"
)

type TrainerRepository interface {
	List(ctx context.Context) ([]*models.Trainer, error)
	GetByID(ctx context.Context, id int64) (*models.Trainer, error)
	GetByEmail(ctx context.Context, email string) (*models.Trainer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, trainer *models.Trainer) error
	Update(ctx context.Context, trainer *models.Trainer) error
	UpdateCredential(ctx context.Context, id int64, credential models.Credential) error
	TouchLastLogin(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetProfileImage(ctx context.Context, id int64, url string) error
	ListStaleTemporary(ctx context.Context, issuedBefore time.Time) ([]*models.Trainer, error)
}

type trainerRepo struct {
	db Database
}

func NewTrainerRepo(db Database) TrainerRepository {
	return &trainerRepo{db: db}
}

const trainerSelect = `
	SELECT t.id, t.name, t.mobile, t.email, t.password_hash, t.temp_password, t.is_temp_password,
	       t.temp_password_issued_at, t.course_id, c.course_name, t.bio, t.profile_image_url,
	       t.portal_access, t.is_active, t.last_login_at, t.created_at, t.updated_at
	FROM trainer t
	LEFT JOIN course c ON t.course_id = c.id
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrainer(row rowScanner) (*models.Trainer, error) {
	var (
		t            models.Trainer
		hash         string
		tempPassword *string
		isTemp       bool
		tempIssuedAt *time.Time
	)
	err := row.Scan(
		&t.ID, &t.Name, &t.Mobile, &t.Email, &hash, &tempPassword, &isTemp,
		&tempIssuedAt, &t.CourseID, &t.CourseName, &t.Bio, &t.ProfileImageURL,
		&t.PortalAccess, &t.IsActive, &t.LastLoginAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	issued := t.UpdatedAt
	if tempIssuedAt != nil {
		issued = *tempIssuedAt
	}
	t.Credential = models.CredentialFromColumns(hash, tempPassword, isTemp, issued)
	return &t, nil
}

func (r *trainerRepo) List(ctx context.Context) ([]*models.Trainer, error) {
	query := trainerSelect + `
	WHERE t.is_active = true
	ORDER BY t.created_at DESC
	`
	return r.queryTrainers(ctx, query)
}

func (r *trainerRepo) queryTrainers(ctx context.Context, query string, args ...interface{}) ([]*models.Trainer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trainers: %w", err)
	}
	defer rows.Close()

	trainers := []*models.Trainer{}
	for rows.Next() {
		t, err := scanTrainer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trainer: %w", err)
		}
		trainers = append(trainers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trainers, nil
}

func (r *trainerRepo) GetByID(ctx context.Context, id int64) (*models.Trainer, error) {
	t, err := scanTrainer(r.db.QueryRow(ctx, trainerSelect+`WHERE t.id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (r *trainerRepo) GetByEmail(ctx context.Context, email string) (*models.Trainer, error) {
	t, err := scanTrainer(r.db.QueryRow(ctx, trainerSelect+`WHERE t.email = $1`, email))
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (r *trainerRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM trainer WHERE email = $1)`
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check trainer email: %w", err)
	}
	return exists, nil
}

func (r *trainerRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM trainer WHERE id = $1)`
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check trainer: %w", err)
	}
	return exists, nil
}

// Create inserts the trainer with its credential columns and fills in the
// generated id and timestamps.
func (r *trainerRepo) Create(ctx context.Context, trainer *models.Trainer) error {
	hash, tempPassword, isTemp := models.CredentialColumns(trainer.Credential)
	query := `
		INSERT INTO trainer (name, mobile, email, password_hash, temp_password, is_temp_password,
		                     temp_password_issued_at, course_id, bio, portal_access, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		trainer.Name, trainer.Mobile, trainer.Email, hash, tempPassword, isTemp,
		issuedAt(trainer.Credential), trainer.CourseID, trainer.Bio, trainer.PortalAccess, trainer.IsActive,
	).Scan(&trainer.ID, &trainer.CreatedAt, &trainer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert trainer: %w", translate(err))
	}
	return nil
}

func (r *trainerRepo) Update(ctx context.Context, trainer *models.Trainer) error {
	query := `
		UPDATE trainer
		SET name = $1, mobile = $2, email = $3, course_id = $4, bio = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		trainer.Name, trainer.Mobile, trainer.Email, trainer.CourseID, trainer.Bio, trainer.ID,
	).Scan(&trainer.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

// UpdateCredential swaps the trainer's secret in a single statement so the
// hash, the plaintext mirror and the temporary flag always change together.
// Any outstanding reset token is cleared.
func (r *trainerRepo) UpdateCredential(ctx context.Context, id int64, credential models.Credential) error {
	hash, tempPassword, isTemp := models.CredentialColumns(credential)
	query := `
		UPDATE trainer
		SET password_hash = $1, temp_password = $2, is_temp_password = $3, temp_password_issued_at = $4,
		    reset_token = NULL, reset_token_expiry = NULL, updated_at = NOW()
		WHERE id = $5
	`
	return requireAffected(r.db.Exec(ctx, query, hash, tempPassword, isTemp, issuedAt(credential), id))
}

func (r *trainerRepo) TouchLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE trainer SET last_login_at = NOW() WHERE id = $1`
	return requireAffected(r.db.Exec(ctx, query, id))
}

func (r *trainerRepo) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE trainer SET is_active = $1, updated_at = NOW() WHERE id = $2`
	return requireAffected(r.db.Exec(ctx, query, active, id))
}

func (r *trainerRepo) SetProfileImage(ctx context.Context, id int64, url string) error {
	query := `UPDATE trainer SET profile_image_url = $1, updated_at = NOW() WHERE id = $2`
	return requireAffected(r.db.Exec(ctx, query, url, id))
}

// ListStaleTemporary returns active trainers whose temporary password was
// issued before the cutoff and never rotated.
func (r *trainerRepo) ListStaleTemporary(ctx context.Context, issuedBefore time.Time) ([]*models.Trainer, error) {
	query := trainerSelect + `
	WHERE t.is_active = true AND t.is_temp_password = true AND t.temp_password_issued_at < $1
	ORDER BY t.temp_password_issued_at
	`
	return r.queryTrainers(ctx, query, issuedBefore)
}

func issuedAt(c models.Credential) *time.Time {
	if tc, ok := c.(models.TemporaryCredential); ok {
		at := tc.IssuedAt
		return &at
	}
	return nil
}
