package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tutorhub/tutoring-backend/config"
	"github.com/tutorhub/tutoring-backend/routes"
	"github.com/tutorhub/tutoring-backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Database init failed: ", err)
	}
	log.Println("PostgreSQL connected & migrated successfully!")

	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is not set")
	}
	summarizer, err := services.NewSummarizer(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal("Gemini init failed: ", err)
	}
	defer summarizer.Close()

	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		log.Fatal("SUPABASE_URL or SUPABASE_KEY is not set")
	}
	uploader := services.NewUploader(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r = routes.SetupRouter(r, db, cfg, summarizer, uploader)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Tutoring platform API is running"})
	})

	log.Println("Server running at Port:" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server stopped: ", err)
	}
}
