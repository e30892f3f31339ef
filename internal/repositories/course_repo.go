package repositories

import (
	"context"
	"fmt"

	"adminportal/internal/models"
)

type CourseRepository interface {
	List(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetActiveByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	SoftDelete(ctx context.Context, id int64) error
}

type courseRepo struct {
	db Database
}

func NewCourseRepo(db Database) CourseRepository {
	return &courseRepo{db: db}
}

const courseSelect = `
	SELECT c.id, c.course_name, c.course_fees, c.course_duration, c.trainer_id, t.name,
	       c.is_active, c.created_at, c.updated_at
	FROM course c
	LEFT JOIN trainer t ON c.trainer_id = t.id
`

func scanCourse(row rowScanner) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(
		&c.ID, &c.CourseName, &c.CourseFees, &c.CourseDuration, &c.TrainerID, &c.TrainerName,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *courseRepo) List(ctx context.Context) ([]*models.Course, error) {
	query := courseSelect + `
	WHERE c.is_active = true
	ORDER BY c.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	c, err := scanCourse(r.db.QueryRow(ctx, courseSelect+`WHERE c.id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// GetActiveByID is used when another record references the course.
func (r *courseRepo) GetActiveByID(ctx context.Context, id int64) (*models.Course, error) {
	c, err := scanCourse(r.db.QueryRow(ctx, courseSelect+`WHERE c.id = $1 AND c.is_active = true`, id))
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (r *courseRepo) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO course (course_name, course_fees, course_duration, trainer_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, NOW(), NOW())
		RETURNING id, is_active, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		course.CourseName, course.CourseFees, course.CourseDuration, course.TrainerID,
	).Scan(&course.ID, &course.IsActive, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (r *courseRepo) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE course
		SET course_name = $1, course_fees = $2, course_duration = $3, trainer_id = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING is_active, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		course.CourseName, course.CourseFees, course.CourseDuration, course.TrainerID, course.ID,
	).Scan(&course.IsActive, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

func (r *courseRepo) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE course SET is_active = false, updated_at = NOW() WHERE id = $1`
	return requireAffected(r.db.Exec(ctx, query, id))
}
