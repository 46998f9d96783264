package main

import (
	"fmt"
	"log"

	"github.com/Giusk10/SpendyApp/internal/config"
	"github.com/Giusk10/SpendyApp/internal/database"
	"github.com/Giusk10/SpendyApp/internal/logger"
	"github.com/Giusk10/SpendyApp/internal/router"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog := logger.New(cfg.Log.Level)

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	r := router.SetupRouter(cfg, db, zlog)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	zlog.Info().Str("addr", addr).Msg("expense service listening")
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
