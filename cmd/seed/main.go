package main

import (
	"context"
	"log"

	"microlend/internal/config"
	"microlend/internal/db"
	"microlend/internal/model"
	"microlend/internal/repository"
	"microlend/internal/service"
)

// Seeding is a deliberate, separately run step. The API never seeds as a
// side effect of listing borrowers.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Borrower{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	borrowerRepo := repository.NewBorrowerRepository(gormDB)
	borrowerService := service.NewBorrowerService(borrowerRepo, nil)

	inserted, err := borrowerService.Seed(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed borrowers: %v", err)
	}

	if inserted == 0 {
		log.Println("Seed skipped: table already holds enough borrowers")
		return
	}
	log.Printf("Seed completed successfully: %d borrowers inserted", inserted)
}
