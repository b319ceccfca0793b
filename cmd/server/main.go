package main

import (
	"context"
	"flag"
	"log"

	"github.com/AdityaPradhan01/Bloom/internal/analysis"
	"github.com/AdityaPradhan01/Bloom/internal/config"
	"github.com/AdityaPradhan01/Bloom/internal/server"
	"github.com/AdityaPradhan01/Bloom/internal/session"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", config.GetConfigPath(), "path to configuration file")
	flag.Parse()

	// Optional .env for credentials; absence is fine
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize session store
	store, err := session.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		log.Fatal("Failed to open session store:", err)
	}
	defer store.Close()

	// Initialize analysis gateway
	analyzer, err := analysis.New(cfg.Analyzer)
	if err != nil {
		log.Fatal("Failed to create analyzer:", err)
	}

	if err := analyzer.Load(context.Background()); err != nil {
		log.Fatal("Failed to load analyzer:", err)
	}

	// Initialize and start server
	srv := server.New(store, analyzer, cfg.Server.Debug)
	if err := srv.Start(cfg.Server.Port, cfg.Server.StaticDir); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
