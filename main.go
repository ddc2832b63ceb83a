package main

import (
	"appointease/core/logger"
	"appointease/core/server"
)

// @title AppointEase API
// @version 1.0
// @description Backend API for AppointEase - template-based appointment scheduling for service providers

// @contact.name API Support
// @contact.email support@appointease.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
