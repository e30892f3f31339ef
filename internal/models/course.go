package models

import "time"

type Course struct {
	ID             int64     `json:"id" db:"id"`
	CourseName     string    `json:"course_name" db:"course_name"`
	CourseFees     float64   `json:"course_fees" db:"course_fees"`
	CourseDuration string    `json:"course_duration" db:"course_duration"`
	TrainerID      *int64    `json:"trainer_id" db:"trainer_id"`
	TrainerName    *string   `json:"trainer_name,omitempty" db:"trainer_name"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
