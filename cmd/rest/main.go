package main

import (
	"context"
	"log"

	"clinical-notes-be/internal/bootstrap"
	"clinical-notes-be/internal/config"
	"clinical-notes-be/internal/server"
	"clinical-notes-be/internal/tracer"

	"github.com/fatih/color"
)

func main() {
	color.Cyan("Clinical Notes Backend")

	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	log.Fatal(srv.Run())
}
