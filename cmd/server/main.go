package main

import (
	"log"
	"time"

	"invoice-management-backend/internal/config"
	"invoice-management-backend/internal/logging"
	"invoice-management-backend/internal/models"
	"invoice-management-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	logger := logging.New()
	defer logger.Sync()

	db := config.InitDB()

	db.AutoMigrate(
		&models.Invoice{},
		&models.InvoiceAuditLog{},
	)

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, logger)

	r.Run(":8080")
}
