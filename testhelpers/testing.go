package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"adminportal/internal/models"
	"adminportal/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for integration tests.
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func()
}

// SetupTestDB connects to TEST_DATABASE_URL, applies the embedded migrations
// and empties every table. The test is skipped when the variable is unset or
// when running with -short.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, database.PoolConfig{URL: connString, MaxConns: 4})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := database.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	truncate := func() {
		if _, err := pool.Exec(ctx, `TRUNCATE trainer, course, employee RESTART IDENTITY CASCADE`); err != nil {
			t.Fatalf("failed to truncate test database: %v", err)
		}
	}
	truncate()

	return &TestDB{
		Pool: pool,
		Cleanup: func() {
			truncate()
			pool.Close()
		},
	}
}

// SetupTestCourse inserts an active course and returns its id.
func SetupTestCourse(t *testing.T, db *TestDB, name string) int64 {
	t.Helper()

	var id int64
	err := db.Pool.QueryRow(context.Background(),
		`INSERT INTO course (course_name, course_fees, course_duration) VALUES ($1, $2, $3) RETURNING id`,
		name, 4999, "6 weeks",
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create test course: %v", err)
	}
	return id
}

// TemporaryTrainer builds an unsaved trainer on a temporary credential.
func TemporaryTrainer(email, hash, plaintext string) *models.Trainer {
	return &models.Trainer{
		Name:         "Test Trainer",
		Mobile:       "9876543210",
		Email:        email,
		Credential:   models.TemporaryCredential{Hash: hash, Plaintext: plaintext, IssuedAt: time.Now()},
		PortalAccess: true,
		IsActive:     true,
	}
}
