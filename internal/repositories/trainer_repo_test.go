package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"adminportal/internal/models"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TrainerRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    TrainerRepository
	context context.Context
	now     time.Time
}

func (suite *TrainerRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewTrainerRepo(mock)
	suite.context = context.Background()
	suite.now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (suite *TrainerRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestTrainerRepoTestSuite(t *testing.T) {
	suite.Run(t, new(TrainerRepoTestSuite))
}

func trainerRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "mobile", "email", "password_hash", "temp_password", "is_temp_password",
		"temp_password_issued_at", "course_id", "course_name", "bio", "profile_image_url",
		"portal_access", "is_active", "last_login_at", "created_at", "updated_at",
	})
}

func (suite *TrainerRepoTestSuite) TestGetByEmail_TemporaryCredential() {
	issued := suite.now.Add(-time.Hour)
	suite.mock.ExpectQuery(regexp.QuoteMeta(`WHERE t.email = $1`)).
		WithArgs("t@x.com").
		WillReturnRows(trainerRows().AddRow(
			int64(5), "Tara", "9876543210", "t@x.com", "temphash", stringPtr("482913"), true,
			&issued, int64Ptr(2), stringPtr("Go Basics"), nil, nil,
			true, true, nil, suite.now, suite.now,
		))

	trainer, err := suite.repo.GetByEmail(suite.context, "t@x.com")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), trainer.ID)
	assert.True(suite.T(), trainer.IsTempPassword())
	assert.Equal(suite.T(), "temphash", trainer.PasswordHash())
	assert.Equal(suite.T(), "Go Basics", *trainer.CourseName)
	assert.Nil(suite.T(), trainer.LastLoginAt)

	temp, ok := trainer.Credential.(models.TemporaryCredential)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "482913", temp.Plaintext)
	assert.Equal(suite.T(), issued, temp.IssuedAt)
}

func (suite *TrainerRepoTestSuite) TestGetByID_PermanentCredential() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`WHERE t.id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(trainerRows().AddRow(
			int64(5), "Tara", "9876543210", "t@x.com", "permhash", nil, false,
			nil, nil, nil, stringPtr("Loves Go"), nil,
			true, true, &suite.now, suite.now, suite.now,
		))

	trainer, err := suite.repo.GetByID(suite.context, 5)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), trainer.IsTempPassword())
	assert.Equal(suite.T(), models.PermanentCredential{Hash: "permhash"}, trainer.Credential)
	assert.Nil(suite.T(), trainer.CourseID)
	assert.Equal(suite.T(), suite.now, *trainer.LastLoginAt)
}

func (suite *TrainerRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`WHERE t.id = $1`)).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	trainer, err := suite.repo.GetByID(suite.context, 404)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
	assert.Nil(suite.T(), trainer)
}

func (suite *TrainerRepoTestSuite) TestList_ActiveOnly() {
	suite.mock.ExpectQuery(`WHERE t.is_active = true\s+ORDER BY t.created_at DESC`).
		WillReturnRows(trainerRows().
			AddRow(int64(2), "B", "9000000002", "b@x.com", "h2", nil, false, nil, nil, nil, nil, nil, true, true, nil, suite.now, suite.now).
			AddRow(int64(1), "A", "9000000001", "a@x.com", "h1", stringPtr("111111"), true, &suite.now, nil, nil, nil, nil, true, true, nil, suite.now, suite.now))

	trainers, err := suite.repo.List(suite.context)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), trainers, 2)
	assert.Equal(suite.T(), int64(2), trainers[0].ID)
	assert.False(suite.T(), trainers[0].IsTempPassword())
	assert.True(suite.T(), trainers[1].IsTempPassword())
}

func (suite *TrainerRepoTestSuite) TestList_DatabaseError() {
	suite.mock.ExpectQuery(`FROM trainer t`).WillReturnError(errConnRefused)

	trainers, err := suite.repo.List(suite.context)
	assert.ErrorIs(suite.T(), err, errConnRefused)
	assert.Nil(suite.T(), trainers)
}

func (suite *TrainerRepoTestSuite) TestCreate_WritesTemporaryCredentialColumns() {
	trainer := &models.Trainer{
		Name:         "Tara",
		Mobile:       "9876543210",
		Email:        "t@x.com",
		CourseID:     int64Ptr(2),
		PortalAccess: true,
		IsActive:     true,
		Credential:   models.TemporaryCredential{Hash: "temphash", Plaintext: "482913", IssuedAt: suite.now},
	}

	suite.mock.ExpectQuery(`INSERT INTO trainer`).
		WithArgs("Tara", "9876543210", "t@x.com", "temphash", stringPtr("482913"), true,
			&suite.now, int64Ptr(2), (*string)(nil), true, true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(9), suite.now, suite.now))

	err := suite.repo.Create(suite.context, trainer)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(9), trainer.ID)
}

func (suite *TrainerRepoTestSuite) TestCreate_DuplicateEmail() {
	trainer := &models.Trainer{
		Name:       "Tara",
		Email:      "t@x.com",
		Credential: models.PermanentCredential{Hash: "h"},
	}

	suite.mock.ExpectQuery(`INSERT INTO trainer`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(uniqueViolationErr())

	err := suite.repo.Create(suite.context, trainer)
	assert.ErrorIs(suite.T(), err, ErrDuplicateEmail)
}

func (suite *TrainerRepoTestSuite) TestUpdateCredential_PermanentClearsTemporaryColumns() {
	suite.mock.ExpectExec(`UPDATE trainer\s+SET password_hash = \$1, temp_password = \$2, is_temp_password = \$3, temp_password_issued_at = \$4,\s+reset_token = NULL, reset_token_expiry = NULL, updated_at = NOW\(\)\s+WHERE id = \$5`).
		WithArgs("newhash", (*string)(nil), false, (*time.Time)(nil), int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateCredential(suite.context, 5, models.PermanentCredential{Hash: "newhash"})
	assert.NoError(suite.T(), err)
}

func (suite *TrainerRepoTestSuite) TestUpdateCredential_NotFound() {
	suite.mock.ExpectExec(`UPDATE trainer`).
		WithArgs("newhash", (*string)(nil), false, (*time.Time)(nil), int64(77)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.UpdateCredential(suite.context, 77, models.PermanentCredential{Hash: "newhash"})
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *TrainerRepoTestSuite) TestUpdate_ReturnsUpdatedAt() {
	trainer := &models.Trainer{ID: 5, Name: "Tara K", Mobile: "9876543210", Email: "t@x.com"}

	suite.mock.ExpectQuery(`UPDATE trainer\s+SET name = \$1, mobile = \$2, email = \$3, course_id = \$4, bio = \$5, updated_at = NOW\(\)`).
		WithArgs("Tara K", "9876543210", "t@x.com", (*int64)(nil), (*string)(nil), int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(suite.now))

	err := suite.repo.Update(suite.context, trainer)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.now, trainer.UpdatedAt)
}

func (suite *TrainerRepoTestSuite) TestUpdate_NotFound() {
	trainer := &models.Trainer{ID: 404, Name: "X", Mobile: "9876543210", Email: "x@x.com"}

	suite.mock.ExpectQuery(`UPDATE trainer`).
		WithArgs("X", "9876543210", "x@x.com", (*int64)(nil), (*string)(nil), int64(404)).
		WillReturnError(pgx.ErrNoRows)

	err := suite.repo.Update(suite.context, trainer)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *TrainerRepoTestSuite) TestTouchLastLogin() {
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE trainer SET last_login_at = NOW() WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(suite.T(), suite.repo.TouchLastLogin(suite.context, 5))
}

func (suite *TrainerRepoTestSuite) TestSetActive() {
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE trainer SET is_active = $1, updated_at = NOW() WHERE id = $2`)).
		WithArgs(true, int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(suite.T(), suite.repo.SetActive(suite.context, 5, true))
}

func (suite *TrainerRepoTestSuite) TestSetProfileImage() {
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE trainer SET profile_image_url = $1`)).
		WithArgs("http://minio/trainers/5/a.png", int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(suite.T(), suite.repo.SetProfileImage(suite.context, 5, "http://minio/trainers/5/a.png"))
}

func (suite *TrainerRepoTestSuite) TestListStaleTemporary() {
	cutoff := suite.now.Add(-72 * time.Hour)
	issued := cutoff.Add(-time.Hour)

	suite.mock.ExpectQuery(regexp.QuoteMeta(`t.is_temp_password = true AND t.temp_password_issued_at < $1`)).
		WithArgs(cutoff).
		WillReturnRows(trainerRows().
			AddRow(int64(3), "C", "9000000003", "c@x.com", "h", stringPtr("222222"), true, &issued, nil, nil, nil, nil, true, true, nil, issued, issued))

	trainers, err := suite.repo.ListStaleTemporary(suite.context, cutoff)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), trainers, 1)
	assert.Equal(suite.T(), int64(3), trainers[0].ID)
}

func (suite *TrainerRepoTestSuite) TestExists() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM trainer WHERE id = $1)`)).
		WithArgs(int64(8)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := suite.repo.Exists(suite.context, 8)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), exists)
}
