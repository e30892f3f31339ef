package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"adminportal/internal/common"
	"adminportal/internal/models"
	"adminportal/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceTestSuite struct {
	suite.Suite
	employees *MockEmployeeRepository
	passwords PasswordService
	tokens    TokenService
	service   AuthService
	ctx       context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.employees = new(MockEmployeeRepository)

	passwords, err := NewPasswordService(bcrypt.MinCost)
	require.NoError(suite.T(), err)
	suite.passwords = passwords

	tokens, err := NewTokenService(TokenConfig{Secret: "test-secret", TTL: time.Hour, Leeway: DefaultLeeway})
	require.NoError(suite.T(), err)
	suite.tokens = tokens

	suite.service = NewAuthService(suite.employees, suite.passwords, suite.tokens)
	suite.ctx = context.Background()
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.employees.AssertExpectations(suite.T())
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) signupRequest() *models.SignupRequest {
	return &models.SignupRequest{
		Name:            "Asha",
		Email:           " A@X.com ",
		Password:        "Aa1!aaaa",
		ConfirmPassword: "Aa1!aaaa",
		Mobile:          "9876543210",
		Gender:          "female",
		MaritalStatus:   "unmarried",
	}
}

func (suite *AuthServiceTestSuite) storedEmployee(password string, active bool) *models.Employee {
	hash, err := suite.passwords.Hash(password)
	require.NoError(suite.T(), err)
	return &models.Employee{ID: 1, Name: "Asha", Email: "a@x.com", PasswordHash: hash, Role: models.RoleAdmin, IsActive: active}
}

func assertAppError(t *testing.T, err error, status int) *common.AppError {
	t.Helper()
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr), "expected *common.AppError, got %v", err)
	assert.Equal(t, status, appErr.Status)
	return appErr
}

func (suite *AuthServiceTestSuite) TestSignup_Success() {
	suite.employees.On("EmailExists", suite.ctx, "a@x.com").Return(false, nil).Once()
	suite.employees.On("Create", suite.ctx, mock.MatchedBy(func(e *models.Employee) bool {
		ok, _ := suite.passwords.Verify("Aa1!aaaa", e.PasswordHash)
		return e.Role == models.RoleAdmin && e.IsActive && e.PasswordHash != "Aa1!aaaa" && ok
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Employee).ID = 10
	}).Return(nil).Once()

	employee, err := suite.service.Signup(suite.ctx, suite.signupRequest())
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(10), employee.ID)
	assert.Equal(suite.T(), "a@x.com", employee.Email)
	assert.Equal(suite.T(), models.RoleAdmin, employee.Role)
}

func (suite *AuthServiceTestSuite) TestSignup_DuplicatePreCheck() {
	suite.employees.On("EmailExists", suite.ctx, "a@x.com").Return(true, nil).Once()

	_, err := suite.service.Signup(suite.ctx, suite.signupRequest())
	assert.ErrorIs(suite.T(), err, common.ErrDuplicateEmail)
	suite.employees.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestSignup_UniqueViolationAtInsert() {
	suite.employees.On("EmailExists", suite.ctx, "a@x.com").Return(false, nil).Once()
	suite.employees.On("Create", suite.ctx, mock.Anything).
		Return(repositories.ErrDuplicateEmail).Once()

	_, err := suite.service.Signup(suite.ctx, suite.signupRequest())
	assert.ErrorIs(suite.T(), err, common.ErrDuplicateEmail)
}

func (suite *AuthServiceTestSuite) TestSignup_WeakPasswordRejectedBeforeStore() {
	req := suite.signupRequest()
	req.Password = "abcdefgh"
	req.ConfirmPassword = "abcdefgh"

	_, err := suite.service.Signup(suite.ctx, req)
	appErr := assertAppError(suite.T(), err, http.StatusUnprocessableEntity)
	require.Len(suite.T(), appErr.Fields, 1)
	assert.Equal(suite.T(), "password", appErr.Fields[0].Field)
}

func (suite *AuthServiceTestSuite) TestSignup_StoreFailure() {
	suite.employees.On("EmailExists", suite.ctx, "a@x.com").Return(false, errors.New("pool exhausted")).Once()

	_, err := suite.service.Signup(suite.ctx, suite.signupRequest())
	assertAppError(suite.T(), err, http.StatusInternalServerError)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	stored := suite.storedEmployee("Aa1!aaaa", true)
	suite.employees.On("GetByEmail", suite.ctx, "a@x.com").Return(stored, nil).Twice()

	first, err := suite.service.Login(suite.ctx, &models.LoginRequest{Email: "a@x.com", Password: "Aa1!aaaa"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored.Summary(), first.Employee)

	claims, err := suite.tokens.Verify(first.Token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored.ID, claims.ID)
	assert.Equal(suite.T(), stored.Email, claims.Email)
	assert.Equal(suite.T(), stored.Role, claims.Role)

	second, err := suite.service.Login(suite.ctx, &models.LoginRequest{Email: "a@x.com", Password: "Aa1!aaaa"})
	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), first.Token, second.Token)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	suite.employees.On("GetByEmail", suite.ctx, "b@x.com").Return(nil, repositories.ErrNotFound).Once()

	_, err := suite.service.Login(suite.ctx, &models.LoginRequest{Email: "b@x.com", Password: "Aa1!aaaa"})
	assert.ErrorIs(suite.T(), err, common.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_DeactivatedWithCorrectPassword() {
	suite.employees.On("GetByEmail", suite.ctx, "a@x.com").Return(suite.storedEmployee("Aa1!aaaa", false), nil).Once()

	_, err := suite.service.Login(suite.ctx, &models.LoginRequest{Email: "a@x.com", Password: "Aa1!aaaa"})
	assert.ErrorIs(suite.T(), err, common.ErrAccountDeactivated)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	suite.employees.On("GetByEmail", suite.ctx, "a@x.com").Return(suite.storedEmployee("Aa1!aaaa", true), nil).Once()

	_, err := suite.service.Login(suite.ctx, &models.LoginRequest{Email: "a@x.com", Password: "Zz9!zzzz"})
	assert.ErrorIs(suite.T(), err, common.ErrWrongCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_CorruptHashIsInternal() {
	stored := &models.Employee{ID: 1, Email: "a@x.com", PasswordHash: "garbage", IsActive: true}
	suite.employees.On("GetByEmail", suite.ctx, "a@x.com").Return(stored, nil).Once()

	_, err := suite.service.Login(suite.ctx, &models.LoginRequest{Email: "a@x.com", Password: "Aa1!aaaa"})
	appErr := assertAppError(suite.T(), err, http.StatusInternalServerError)
	assert.ErrorIs(suite.T(), appErr, ErrCorruptHash)
}

func (suite *AuthServiceTestSuite) TestLogin_MissingPassword() {
	_, err := suite.service.Login(suite.ctx, &models.LoginRequest{Email: "a@x.com"})
	appErr := assertAppError(suite.T(), err, http.StatusUnprocessableEntity)
	assert.Equal(suite.T(), "Password is required", appErr.Fields[0].Message)
}

func (suite *AuthServiceTestSuite) TestForgotPassword_Success() {
	suite.employees.On("GetByEmail", suite.ctx, "a@x.com").Return(suite.storedEmployee("Aa1!aaaa", true), nil).Once()
	suite.employees.On("UpdatePassword", suite.ctx, int64(1), mock.MatchedBy(func(hash string) bool {
		ok, _ := suite.passwords.Verify("Bb2@bbbb", hash)
		return ok
	})).Return(nil).Once()

	err := suite.service.ForgotPassword(suite.ctx, &models.ForgotPasswordRequest{
		Email: "a@x.com", NewPassword: "Bb2@bbbb", ConfirmPassword: "Bb2@bbbb",
	})
	assert.NoError(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestForgotPassword_UnknownEmail() {
	suite.employees.On("GetByEmail", suite.ctx, "z@x.com").Return(nil, repositories.ErrNotFound).Once()

	err := suite.service.ForgotPassword(suite.ctx, &models.ForgotPasswordRequest{
		Email: "z@x.com", NewPassword: "Bb2@bbbb", ConfirmPassword: "Bb2@bbbb",
	})
	assert.ErrorIs(suite.T(), err, common.ErrEmailNotFound)
}

func (suite *AuthServiceTestSuite) TestForgotPassword_MismatchedConfirmation() {
	err := suite.service.ForgotPassword(suite.ctx, &models.ForgotPasswordRequest{
		Email: "a@x.com", NewPassword: "Bb2@bbbb", ConfirmPassword: "Bb2@bbbc",
	})
	appErr := assertAppError(suite.T(), err, http.StatusUnprocessableEntity)
	assert.Equal(suite.T(), "confirm_password", appErr.Fields[0].Field)
}

func (suite *AuthServiceTestSuite) TestMe_NotFound() {
	suite.employees.On("GetByID", suite.ctx, int64(5)).Return(nil, repositories.ErrNotFound).Once()

	_, err := suite.service.Me(suite.ctx, 5)
	assert.ErrorIs(suite.T(), err, common.ErrUserNotFound)
}

func (suite *AuthServiceTestSuite) TestSetActive_CannotDeactivateSelf() {
	inactive := false
	_, err := suite.service.SetActive(suite.ctx, 1, 1, &models.EmployeeStatusRequest{IsActive: &inactive})
	assert.ErrorIs(suite.T(), err, common.ErrCannotDeactivateSelf)
}

func (suite *AuthServiceTestSuite) TestSetActive_DeactivateOther() {
	inactive := false
	other := &models.Employee{ID: 2, IsActive: false}
	suite.employees.On("SetActive", suite.ctx, int64(2), false).Return(nil).Once()
	suite.employees.On("GetByID", suite.ctx, int64(2)).Return(other, nil).Once()

	employee, err := suite.service.SetActive(suite.ctx, 1, 2, &models.EmployeeStatusRequest{IsActive: &inactive})
	require.NoError(suite.T(), err)
	assert.False(suite.T(), employee.IsActive)
}

func (suite *AuthServiceTestSuite) TestSetActive_MissingFlag() {
	_, err := suite.service.SetActive(suite.ctx, 1, 2, &models.EmployeeStatusRequest{})
	assertAppError(suite.T(), err, http.StatusUnprocessableEntity)
}

func (suite *AuthServiceTestSuite) TestIsActive() {
	suite.employees.On("GetByID", suite.ctx, int64(1)).Return(&models.Employee{ID: 1, IsActive: true}, nil).Once()
	suite.employees.On("GetByID", suite.ctx, int64(2)).Return(nil, repositories.ErrNotFound).Once()

	active, err := suite.service.IsActive(suite.ctx, 1)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), active)

	active, err = suite.service.IsActive(suite.ctx, 2)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), active)
}
