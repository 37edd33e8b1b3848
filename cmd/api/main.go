package main

import (
	"log"
	_ "order_management/docs"
	"order_management/internal/adapter/http/routes"
	"order_management/internal/infrastructure/config"
	"order_management/internal/logging"
	"os"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Order Management API
// @version         1.0
// @description     Orders, catalog and payment reconciliation backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "configs/config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Init(cfg.App.Name, cfg.App.LogFile)
	log.Printf("[main] starting app=%s addr=%s config=%s", cfg.App.Name, cfg.App.HTTPAddr, path)

	routes.Run(cfg)
}
