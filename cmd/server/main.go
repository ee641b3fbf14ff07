package main

import (
	"os"

	"github.com/Reinvik/nexus-lean-sub000/internal/app/server"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/config"
	"github.com/Reinvik/nexus-lean-sub000/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	if err := server.Run(cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
