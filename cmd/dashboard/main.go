package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/leaddash/internal/dashboard/app"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	application, err := app.New(cfg, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = application.Run(ctx, os.Args[1:])
	stop()

	if errors.Is(err, app.ErrUsage) {
		log.Printf("%v", err)
		log.Fatalf("commands: forms, form, create-form, leads, lead, status, comment, whoami, logout, register, verify, forgot")
	}
	if err != nil {
		log.Fatalf("dashboard: %v", err)
	}
}
