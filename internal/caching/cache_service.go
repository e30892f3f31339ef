package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"adminportal/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix      = "adminportal:"
	courseListKey  = keyPrefix + "courses:active"
	courseKeyShape = keyPrefix + "course:%d"
)

// CacheService caches course reads shared by the course and trainer
// services. Get methods return nil, nil on a miss.
type CacheService interface {
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	SetCourse(ctx context.Context, course *models.Course, ttl time.Duration) error
	DeleteCourse(ctx context.Context, id int64) error

	GetCourseList(ctx context.Context) ([]*models.Course, error)
	SetCourseList(ctx context.Context, courses []*models.Course, ttl time.Duration) error
	InvalidateCourseList(ctx context.Context) error

	Ping(ctx context.Context) error
	Close() error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as host:port
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		slog.Warn("redis ping failed on initialization", "addr", parsedAddr, "error", pingErr)
	} else {
		slog.Info("redis connection established", "addr", parsedAddr)
	}

	return &redisCacheService{client: client}
}

// NewRedisCacheServiceFromClient wraps an existing client.
func NewRedisCacheServiceFromClient(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func courseKey(id int64) string {
	return fmt.Sprintf(courseKeyShape, id)
}

func (r *redisCacheService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	data, err := r.client.Get(ctx, courseKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var course models.Course
	if err := json.Unmarshal(data, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *redisCacheService) SetCourse(ctx context.Context, course *models.Course, ttl time.Duration) error {
	data, err := json.Marshal(course)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, courseKey(course.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteCourse(ctx context.Context, id int64) error {
	return r.client.Del(ctx, courseKey(id), courseListKey).Err()
}

func (r *redisCacheService) GetCourseList(ctx context.Context) ([]*models.Course, error) {
	data, err := r.client.Get(ctx, courseListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var courses []*models.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *redisCacheService) SetCourseList(ctx context.Context, courses []*models.Course, ttl time.Duration) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, courseListKey, data, ttl).Err()
}

func (r *redisCacheService) InvalidateCourseList(ctx context.Context) error {
	return r.client.Del(ctx, courseListKey).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCacheService) Close() error {
	return r.client.Close()
}

type noopCacheService struct{}

// NewNoopCacheService is used when no Redis address is configured. Every
// read is a miss and every write succeeds.
func NewNoopCacheService() CacheService {
	return noopCacheService{}
}

func (noopCacheService) GetCourse(context.Context, int64) (*models.Course, error) { return nil, nil }
func (noopCacheService) SetCourse(context.Context, *models.Course, time.Duration) error {
	return nil
}
func (noopCacheService) DeleteCourse(context.Context, int64) error { return nil }
func (noopCacheService) GetCourseList(context.Context) ([]*models.Course, error) {
	return nil, nil
}
func (noopCacheService) SetCourseList(context.Context, []*models.Course, time.Duration) error {
	return nil
}
func (noopCacheService) InvalidateCourseList(context.Context) error { return nil }
func (noopCacheService) Ping(context.Context) error                 { return nil }
func (noopCacheService) Close() error                               { return nil }
