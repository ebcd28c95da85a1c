package main

import (
	"os"

	"github.com/yigit/camnote/internal/pkg/logger"
	"github.com/yigit/camnote/internal/server"
)

// @title CamNote API
// @version 1.0
// @description Department notices, events, benefits and feedback for the CamNote campus portal.

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer access token issued by /auth/login

func main() {
	if err := run(); err != nil {
		logger.Error().Err(err).Msg("CamNote exited with error")
		os.Exit(1)
	}
	logger.Info().Msg("CamNote stopped")
}

func run() error {
	srv, err := server.NewServer()
	if err != nil {
		return err
	}
	return srv.Run()
}
