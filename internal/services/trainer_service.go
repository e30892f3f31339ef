package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"adminportal/internal/caching"
	"adminportal/internal/common"
	"adminportal/internal/models"
	"adminportal/internal/repositories"
)

// TrainerService is the admin-facing trainer registry. It provisions trainers
// with a temporary password and manages their lifecycle afterwards.
type TrainerService interface {
	List(ctx context.Context) ([]models.TrainerView, error)
	Get(ctx context.Context, id int64) (*models.TrainerView, error)
	Provision(ctx context.Context, req *models.TrainerRequest) (*models.ProvisionedTrainer, error)
	Update(ctx context.Context, id int64, req *models.TrainerRequest) (*models.TrainerView, error)
	Deactivate(ctx context.Context, id int64) error
	Activate(ctx context.Context, id int64) (*models.TrainerView, error)
	SetPassword(ctx context.Context, id int64, req *models.SetPasswordRequest) (*models.TrainerView, error)
	ReissueTempPassword(ctx context.Context, id int64) (*models.ProvisionedTrainer, error)
	UploadProfileImage(ctx context.Context, id int64, contentType string, reader io.Reader, size int64) (*models.TrainerView, error)
	StaleTemporaryPasswords(ctx context.Context, maxAge time.Duration) ([]*models.Trainer, error)
}

type TrainerServiceDeps struct {
	Trainers     repositories.TrainerRepository
	Courses      repositories.CourseRepository
	Cache        caching.CacheService
	CacheTTL     time.Duration
	Passwords    PasswordService
	Images       ImageStorage
	TempPassword TempPasswordGenerator
}

type trainerService struct {
	trainers     repositories.TrainerRepository
	courses      *courseLookup
	passwords    PasswordService
	images       ImageStorage
	tempPassword TempPasswordGenerator
	now          func() time.Time
	logger       *slog.Logger
}

func NewTrainerService(deps TrainerServiceDeps) TrainerService {
	logger := slog.Default().With("module", "trainer")
	gen := deps.TempPassword
	if gen == nil {
		gen = GenerateTempPassword
	}
	return &trainerService{
		trainers:     deps.Trainers,
		courses:      newCourseLookup(deps.Courses, deps.Cache, deps.CacheTTL, logger),
		passwords:    deps.Passwords,
		images:       deps.Images,
		tempPassword: gen,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *trainerService) List(ctx context.Context) ([]models.TrainerView, error) {
	trainers, err := s.trainers.List(ctx)
	if err != nil {
		return nil, common.NewStoreError("list trainers", err)
	}
	views := make([]models.TrainerView, 0, len(trainers))
	for _, t := range trainers {
		views = append(views, t.View())
	}
	return views, nil
}

func (s *trainerService) Get(ctx context.Context, id int64) (*models.TrainerView, error) {
	trainer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	view := trainer.View()
	return &view, nil
}

// Provision creates a trainer on a freshly minted temporary password. The
// plaintext is part of the result and is not returned by any read.
func (s *trainerService) Provision(ctx context.Context, req *models.TrainerRequest) (*models.ProvisionedTrainer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.trainers.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, common.NewStoreError("check trainer email", err)
	}
	if exists {
		return nil, common.ErrTrainerEmailExists
	}

	courseName, err := s.resolveCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	credential, plaintext, err := s.mintTemporary()
	if err != nil {
		return nil, err
	}

	trainer := &models.Trainer{
		Name:         req.Name,
		Mobile:       req.Mobile,
		Email:        req.Email,
		Credential:   credential,
		CourseID:     req.CourseID,
		CourseName:   courseName,
		Bio:          req.Bio,
		PortalAccess: true,
		IsActive:     true,
	}
	if err := s.trainers.Create(ctx, trainer); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, common.ErrTrainerEmailExists
		}
		return nil, common.NewStoreError("create trainer", err)
	}

	s.logger.Info("trainer provisioned", "trainer_id", trainer.ID)
	return &models.ProvisionedTrainer{TrainerView: trainer.View(), TempPassword: plaintext}, nil
}

func (s *trainerService) Update(ctx context.Context, id int64, req *models.TrainerRequest) (*models.TrainerView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	trainer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	courseName, err := s.resolveCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	trainer.Name = req.Name
	trainer.Mobile = req.Mobile
	trainer.Email = req.Email
	trainer.CourseID = req.CourseID
	trainer.CourseName = courseName
	if req.Bio != nil {
		trainer.Bio = req.Bio
	}

	if err := s.trainers.Update(ctx, trainer); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, common.ErrTrainerNotFound
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return nil, common.ErrTrainerEmailExists
		}
		return nil, common.NewStoreError("update trainer", err)
	}

	view := trainer.View()
	return &view, nil
}

// Deactivate is a soft delete. The trainer keeps their credential and can be
// reactivated.
func (s *trainerService) Deactivate(ctx context.Context, id int64) error {
	if err := s.setActive(ctx, id, false); err != nil {
		return err
	}
	s.logger.Info("trainer deactivated", "trainer_id", id)
	return nil
}

func (s *trainerService) Activate(ctx context.Context, id int64) (*models.TrainerView, error) {
	if err := s.setActive(ctx, id, true); err != nil {
		return nil, err
	}
	s.logger.Info("trainer activated", "trainer_id", id)
	return s.Get(ctx, id)
}

// SetPassword lets an admin assign a permanent password directly.
func (s *trainerService) SetPassword(ctx context.Context, id int64, req *models.SetPasswordRequest) (*models.TrainerView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	trainer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(s.passwords, "new_password", req.NewPassword)
	if err != nil {
		return nil, err
	}

	credential := models.PermanentCredential{Hash: hash}
	if err := s.updateCredential(ctx, id, credential); err != nil {
		return nil, err
	}
	trainer.Credential = credential

	s.logger.Info("admin set trainer password", "trainer_id", id)
	view := trainer.View()
	return &view, nil
}

// ReissueTempPassword puts the trainer back on a new temporary password.
func (s *trainerService) ReissueTempPassword(ctx context.Context, id int64) (*models.ProvisionedTrainer, error) {
	trainer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	credential, plaintext, err := s.mintTemporary()
	if err != nil {
		return nil, err
	}
	if err := s.updateCredential(ctx, id, credential); err != nil {
		return nil, err
	}
	trainer.Credential = credential

	s.logger.Info("trainer temp password reissued", "trainer_id", id)
	return &models.ProvisionedTrainer{TrainerView: trainer.View(), TempPassword: plaintext}, nil
}

func (s *trainerService) UploadProfileImage(ctx context.Context, id int64, contentType string, reader io.Reader, size int64) (*models.TrainerView, error) {
	if s.images == nil {
		return nil, common.ErrStorageNotConfigured
	}

	v := common.NewValidator()
	objectName, ok := profileImageObject(id, contentType)
	v.Check(ok, "profile_image", "Only JPEG, PNG or WEBP images are allowed")
	v.Check(size > 0 && size <= MaxProfileImageBytes, "profile_image", "Image must be between 1 byte and 5 MB")
	if err := v.Err(); err != nil {
		return nil, err
	}

	trainer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.UploadImage(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, common.NewStoreError("upload profile image", err)
	}

	if err := s.trainers.SetProfileImage(ctx, id, url); err != nil {
		if delErr := s.images.DeleteImage(ctx, objectName); delErr != nil {
			s.logger.Warn("orphaned profile image", "object", objectName, "error", delErr)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ErrTrainerNotFound
		}
		return nil, common.NewStoreError("set profile image", err)
	}
	trainer.ProfileImageURL = &url

	view := trainer.View()
	return &view, nil
}

func (s *trainerService) StaleTemporaryPasswords(ctx context.Context, maxAge time.Duration) ([]*models.Trainer, error) {
	trainers, err := s.trainers.ListStaleTemporary(ctx, s.now().Add(-maxAge))
	if err != nil {
		return nil, common.NewStoreError("list stale temporary passwords", err)
	}
	return trainers, nil
}

func (s *trainerService) find(ctx context.Context, id int64) (*models.Trainer, error) {
	trainer, err := s.trainers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ErrTrainerNotFound
		}
		return nil, common.NewStoreError("find trainer", err)
	}
	return trainer, nil
}

func (s *trainerService) setActive(ctx context.Context, id int64, active bool) error {
	if err := s.trainers.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.ErrTrainerNotFound
		}
		return common.NewStoreError("set trainer status", err)
	}
	return nil
}

func (s *trainerService) updateCredential(ctx context.Context, id int64, credential models.Credential) error {
	if err := s.trainers.UpdateCredential(ctx, id, credential); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.ErrTrainerNotFound
		}
		return common.NewStoreError("update trainer credential", err)
	}
	return nil
}

// resolveCourse requires an optional course reference to point at an active
// course and returns its name.
func (s *trainerService) resolveCourse(ctx context.Context, courseID *int64) (*string, error) {
	if courseID == nil {
		return nil, nil
	}
	course, err := s.courses.active(ctx, *courseID)
	if err != nil {
		return nil, err
	}
	name := course.CourseName
	return &name, nil
}

func (s *trainerService) mintTemporary() (models.TemporaryCredential, string, error) {
	plaintext, err := s.tempPassword()
	if err != nil {
		return models.TemporaryCredential{}, "", common.NewStoreError("generate temp password", err)
	}
	hash, err := s.passwords.Hash(plaintext)
	if err != nil {
		return models.TemporaryCredential{}, "", common.NewStoreError("hash temp password", err)
	}
	return models.TemporaryCredential{Hash: hash, Plaintext: plaintext, IssuedAt: s.now()}, plaintext, nil
}
