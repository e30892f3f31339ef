package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"adminportal/internal/common"
	"adminportal/internal/models"
	"adminportal/internal/repositories"
)

// TrainerAuthService backs the trainer portal: login, forced rotation of the
// temporary password, self-service reset and profile.
type TrainerAuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.TrainerLogin, error)
	SetPassword(ctx context.Context, trainerID int64, req *models.SetPasswordRequest) (*models.Trainer, error)
	ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error
	Me(ctx context.Context, trainerID int64) (*models.Trainer, error)
	IsActive(ctx context.Context, trainerID int64) (bool, error)
}

type trainerAuthService struct {
	trainers  repositories.TrainerRepository
	passwords PasswordService
	tokens    TokenService
	logger    *slog.Logger
}

func NewTrainerAuthService(trainers repositories.TrainerRepository, passwords PasswordService, tokens TokenService) TrainerAuthService {
	return &trainerAuthService{
		trainers:  trainers,
		passwords: passwords,
		tokens:    tokens,
		logger:    slog.Default().With("module", "trainer_auth"),
	}
}

func (s *trainerAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.TrainerLogin, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	trainer, err := s.trainers.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.NewStoreError("find trainer", err)
	}
	if !trainer.IsActive {
		return nil, common.ErrAccountDeactivated
	}
	if !trainer.PortalAccess {
		return nil, common.ErrPortalAccessDisabled
	}

	ok, err := verifyPassword(s.passwords, req.Password, trainer.PasswordHash())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrWrongCredentials
	}

	if err := s.trainers.TouchLastLogin(ctx, trainer.ID); err != nil {
		return nil, common.NewStoreError("touch trainer last login", err)
	}
	now := time.Now()
	trainer.LastLoginAt = &now

	// A temporary password only buys a token scoped to setting a permanent one.
	scope := models.ScopeTrainerPortal
	if trainer.IsTempPassword() {
		scope = models.ScopeSetPassword
	}
	token, err := s.tokens.Issue(models.SessionClaims{
		ID:    trainer.ID,
		Email: trainer.Email,
		Role:  models.RoleTrainer,
		Scope: scope,
	})
	if err != nil {
		return nil, common.NewStoreError("issue token", err)
	}

	s.logger.Info("login success", "trainer_id", trainer.ID, "is_temp_password", trainer.IsTempPassword())
	return &models.TrainerLogin{
		Token:          token.Token,
		IsTempPassword: trainer.IsTempPassword(),
		Trainer:        trainer.View(),
	}, nil
}

// SetPassword swaps the trainer's credential for a permanent one. The old
// temporary secret stops authenticating as soon as this returns.
func (s *trainerAuthService) SetPassword(ctx context.Context, trainerID int64, req *models.SetPasswordRequest) (*models.Trainer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	trainer, err := s.activeTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(s.passwords, "new_password", req.NewPassword)
	if err != nil {
		return nil, err
	}

	credential := models.PermanentCredential{Hash: hash}
	if err := s.trainers.UpdateCredential(ctx, trainer.ID, credential); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ErrTrainerNotFound
		}
		return nil, common.NewStoreError("update trainer credential", err)
	}
	trainer.Credential = credential

	s.logger.Info("trainer set permanent password", "trainer_id", trainer.ID)
	return trainer, nil
}

// ForgotPassword also discards any pending temporary password.
func (s *trainerAuthService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	trainer, err := s.trainers.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.ErrEmailNotFound
		}
		return common.NewStoreError("find trainer", err)
	}

	hash, err := hashPassword(s.passwords, "new_password", req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.trainers.UpdateCredential(ctx, trainer.ID, models.PermanentCredential{Hash: hash}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.ErrEmailNotFound
		}
		return common.NewStoreError("update trainer credential", err)
	}

	s.logger.Info("password reset", "trainer_id", trainer.ID)
	return nil
}

func (s *trainerAuthService) Me(ctx context.Context, trainerID int64) (*models.Trainer, error) {
	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ErrTrainerNotFound
		}
		return nil, common.NewStoreError("find trainer", err)
	}
	return trainer, nil
}

func (s *trainerAuthService) IsActive(ctx context.Context, trainerID int64) (bool, error) {
	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, common.NewStoreError("find trainer", err)
	}
	return trainer.IsActive && trainer.PortalAccess, nil
}

func (s *trainerAuthService) activeTrainer(ctx context.Context, id int64) (*models.Trainer, error) {
	trainer, err := s.trainers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ErrTrainerNotFound
		}
		return nil, common.NewStoreError("find trainer", err)
	}
	if !trainer.IsActive {
		return nil, common.ErrTrainerNotFound
	}
	return trainer, nil
}
