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

	rt, err := bootstrap.New(ctx, "trainer-portal-service", 4004)
	if err != nil {
		log.Fatalf("trainer-portal-service: %v", err)
	}
	defer rt.Close()

	trainerAuth := services.NewTrainerAuthService(repositories.NewTrainerRepo(rt.DB), rt.Passwords, rt.Tokens)

	e := rt.Server("")
	handlers.NewTrainerAuthHandlers(trainerAuth).Register(e, rt.Authenticator(), rt.RBAC(trainerAuth))

	if err := rt.Serve(ctx, e); err != nil {
		rt.Logger.Error("http server stopped", "error", err)
	}
}
