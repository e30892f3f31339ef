package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"adminportal/internal/bootstrap"
	"adminportal/internal/handlers"
	"adminportal/internal/repositories"
	"adminportal/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.New(ctx, "course-service", 4002)
	if err != nil {
		log.Fatalf("course-service: %v", err)
	}
	defer rt.Close()

	courses := repositories.NewCourseRepo(rt.DB)
	trainers := repositories.NewTrainerRepo(rt.DB)
	courseService := services.NewCourseService(courses, trainers, rt.Cache, rt.Config.Redis.CourseCacheTTL)
	admins := services.NewAuthService(repositories.NewEmployeeRepo(rt.DB), rt.Passwords, rt.Tokens)

	e := rt.Server("")
	handlers.NewCourseHandlers(courseService).Register(e, rt.Authenticator(), rt.RBAC(admins))

	if err := rt.Serve(ctx, e); err != nil {
		rt.Logger.Error("http server stopped", "error", err)
	}
}
