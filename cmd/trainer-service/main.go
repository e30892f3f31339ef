package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"adminportal/internal/bootstrap"
	"adminportal/internal/handlers"
	"adminportal/internal/jobs/background"
	"adminportal/internal/repositories"
	"adminportal/internal/services"
)

// Multipart uploads carry a profile image of up to 5 MB.
const uploadBodyLimit = "6M"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.New(ctx, "trainer-service", 4003)
	if err != nil {
		log.Fatalf("trainer-service: %v", err)
	}
	defer rt.Close()
	cfg := rt.Config

	var images services.ImageStorage
	if cfg.Minio.Endpoint != "" {
		storage, err := services.NewMinioService(services.MinioConfig{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
			Bucket:    cfg.Minio.Bucket,
		})
		if err != nil {
			log.Fatalf("trainer-service: minio: %v", err)
		}
		if err := storage.EnsureBucketExists(ctx); err != nil {
			rt.Logger.Warn("profile image bucket unavailable", "bucket", cfg.Minio.Bucket, "error", err)
		}
		images = storage
	} else {
		rt.Logger.Info("MINIO_ENDPOINT not set, profile image uploads disabled")
	}

	trainerService := services.NewTrainerService(services.TrainerServiceDeps{
		Trainers:  repositories.NewTrainerRepo(rt.DB),
		Courses:   repositories.NewCourseRepo(rt.DB),
		Cache:     rt.Cache,
		CacheTTL:  cfg.Redis.CourseCacheTTL,
		Passwords: rt.Passwords,
		Images:    images,
	})
	admins := services.NewAuthService(repositories.NewEmployeeRepo(rt.DB), rt.Passwords, rt.Tokens)

	scheduler, err := background.NewJobScheduler(trainerService, background.SchedulerConfig{
		ReportInterval:     cfg.Scheduler.TempPasswordReportInterval,
		TempPasswordMaxAge: cfg.Scheduler.TempPasswordMaxAge,
	})
	if err != nil {
		log.Fatalf("trainer-service: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			rt.Logger.Warn("scheduler stop failed", "error", err)
		}
	}()

	e := rt.Server(uploadBodyLimit)
	handlers.NewTrainerHandlers(trainerService).Register(e, rt.Authenticator(), rt.RBAC(admins))

	if err := rt.Serve(ctx, e); err != nil {
		rt.Logger.Error("http server stopped", "error", err)
	}
}
