package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/seatwave/auth-front/internal"
	"github.com/seatwave/auth-front/internal/config"
	"github.com/seatwave/auth-front/internal/log"
)

var BuildVersion = "dev"

func main() {
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(BuildVersion)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.LogError("Failed to load config: %v", err)
		os.Exit(1)
	}

	log.LogInfoWithFields("main", "Starting auth-front", map[string]any{
		"version":     BuildVersion,
		"addr":        cfg.Addr,
		"redirectURI": cfg.LinkedInRedirectURI,
		"frontendURL": cfg.FrontendURL,
		"clientID":    log.Redact(cfg.LinkedInClientID),
	})

	ctx := context.Background()
	app, err := internal.NewAuthFront(ctx, cfg)
	if err != nil {
		log.LogError("Failed to create application: %v", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		log.LogError("Failed to start server: %v", err)
		os.Exit(1)
	}
}
