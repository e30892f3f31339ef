package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"adminportal/internal/caching"
	"adminportal/internal/common"
	"adminportal/internal/models"
	"adminportal/internal/repositories"
)

const DefaultCourseCacheTTL = 5 * time.Minute

type CourseService interface {
	List(ctx context.Context) ([]*models.Course, error)
	Get(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, req *models.CourseRequest) (*models.Course, error)
	Update(ctx context.Context, id int64, req *models.CourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

type courseService struct {
	courses  repositories.CourseRepository
	trainers repositories.TrainerRepository
	lookup   *courseLookup
	logger   *slog.Logger
}

func NewCourseService(courses repositories.CourseRepository, trainers repositories.TrainerRepository, cache caching.CacheService, cacheTTL time.Duration) CourseService {
	logger := slog.Default().With("module", "course")
	return &courseService{
		courses:  courses,
		trainers: trainers,
		lookup:   newCourseLookup(courses, cache, cacheTTL, logger),
		logger:   logger,
	}
}

func (s *courseService) List(ctx context.Context) ([]*models.Course, error) {
	if cached := s.lookup.cachedList(ctx); cached != nil {
		return cached, nil
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, common.NewStoreError("list courses", err)
	}
	s.lookup.storeList(ctx, courses)
	return courses, nil
}

func (s *courseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	return s.lookup.byID(ctx, id)
}

func (s *courseService) Create(ctx context.Context, req *models.CourseRequest) (*models.Course, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureTrainer(ctx, req.TrainerID); err != nil {
		return nil, err
	}

	course := &models.Course{
		CourseName:     req.CourseName,
		CourseFees:     *req.CourseFees,
		CourseDuration: req.CourseDuration,
		TrainerID:      req.TrainerID,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, common.NewStoreError("create course", err)
	}
	s.lookup.invalidateList(ctx)

	s.logger.Info("course added", "course_id", course.ID)
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id int64, req *models.CourseRequest) (*models.Course, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureTrainer(ctx, req.TrainerID); err != nil {
		return nil, err
	}

	course := &models.Course{
		ID:             id,
		CourseName:     req.CourseName,
		CourseFees:     *req.CourseFees,
		CourseDuration: req.CourseDuration,
		TrainerID:      req.TrainerID,
	}
	if err := s.courses.Update(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ErrCourseNotFound
		}
		return nil, common.NewStoreError("update course", err)
	}
	s.lookup.invalidate(ctx, id)
	return course, nil
}

// Delete is a soft delete; the row stays for historical references.
func (s *courseService) Delete(ctx context.Context, id int64) error {
	if err := s.courses.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.ErrCourseNotFound
		}
		return common.NewStoreError("delete course", err)
	}
	s.lookup.invalidate(ctx, id)
	s.logger.Info("course deleted", "course_id", id)
	return nil
}

func (s *courseService) ensureTrainer(ctx context.Context, trainerID *int64) error {
	if trainerID == nil {
		return nil
	}
	exists, err := s.trainers.Exists(ctx, *trainerID)
	if err != nil {
		return common.NewStoreError("check trainer", err)
	}
	if !exists {
		return common.ErrTrainerNotFound
	}
	return nil
}

// courseLookup reads courses through the cache. Cache failures are logged
// and the database answers instead.
type courseLookup struct {
	courses repositories.CourseRepository
	cache   caching.CacheService
	ttl     time.Duration
	logger  *slog.Logger
}

func newCourseLookup(courses repositories.CourseRepository, cache caching.CacheService, ttl time.Duration, logger *slog.Logger) *courseLookup {
	if cache == nil {
		cache = caching.NewNoopCacheService()
	}
	if ttl <= 0 {
		ttl = DefaultCourseCacheTTL
	}
	return &courseLookup{courses: courses, cache: cache, ttl: ttl, logger: logger}
}

func (l *courseLookup) byID(ctx context.Context, id int64) (*models.Course, error) {
	cached, err := l.cache.GetCourse(ctx, id)
	if err != nil {
		l.logger.Warn("course cache read failed", "course_id", id, "error", err)
	} else if cached != nil {
		return cached, nil
	}

	course, err := l.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ErrCourseNotFound
		}
		return nil, common.NewStoreError("find course", err)
	}
	if err := l.cache.SetCourse(ctx, course, l.ttl); err != nil {
		l.logger.Warn("course cache write failed", "course_id", id, "error", err)
	}
	return course, nil
}

// active resolves a course another record wants to reference.
func (l *courseLookup) active(ctx context.Context, id int64) (*models.Course, error) {
	course, err := l.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.IsActive {
		return nil, common.ErrCourseNotFound
	}
	return course, nil
}

func (l *courseLookup) cachedList(ctx context.Context) []*models.Course {
	courses, err := l.cache.GetCourseList(ctx)
	if err != nil {
		l.logger.Warn("course list cache read failed", "error", err)
		return nil
	}
	return courses
}

func (l *courseLookup) storeList(ctx context.Context, courses []*models.Course) {
	if err := l.cache.SetCourseList(ctx, courses, l.ttl); err != nil {
		l.logger.Warn("course list cache write failed", "error", err)
	}
}

func (l *courseLookup) invalidateList(ctx context.Context) {
	if err := l.cache.InvalidateCourseList(ctx); err != nil {
		l.logger.Warn("course list cache invalidation failed", "error", err)
	}
}

func (l *courseLookup) invalidate(ctx context.Context, id int64) {
	if err := l.cache.DeleteCourse(ctx, id); err != nil {
		l.logger.Warn("course cache invalidation failed", "course_id", id, "error", err)
	}
}
