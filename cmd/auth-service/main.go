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

	rt, err := bootstrap.New(ctx, "auth-service", 4001)
	if err != nil {
		log.Fatalf("auth-service: %v", err)
	}
	defer rt.Close()

	authService := services.NewAuthService(repositories.NewEmployeeRepo(rt.DB), rt.Passwords, rt.Tokens)

	e := rt.Server("")
	handlers.NewAuthHandlers(authService).Register(e, rt.Authenticator(), rt.RBAC(authService))

	if err := rt.Serve(ctx, e); err != nil {
		rt.Logger.Error("http server stopped", "error", err)
	}
}
