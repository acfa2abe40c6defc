package main

import (
	"log"

	_ "futuboard/docs"
	"futuboard/internal/config"
	"futuboard/internal/server"
)

// @title           Futuboard API
// @version         1.0
// @description     API for managing password-protected Kanban boards.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the board access token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
