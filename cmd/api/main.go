package main

import (
	"log"
	"time"

	"agriboost-backend/internal/bootstrap"
	"agriboost-backend/internal/shared/config"
	"agriboost-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	go func() {
		for range time.Tick(time.Hour) {
			app.Sessions.Sweep()
		}
	}()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
