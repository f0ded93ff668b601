package main

import (
	"log"

	"github.com/boxflow/backend/internal/db"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db.Connect()
	db.AutoMigrate()

	log.Println("✅ Migration completed")
}
