package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"todoapp/internal/auth"
	"todoapp/internal/config"
	"todoapp/internal/db"
	"todoapp/internal/model"
	"todoapp/internal/repository"
)

// seedUser describes a demo account created by the seed script.
type seedUser struct {
	Name     string
	Email    string
	Password string
	Tasks    []string
}

var seedUsers = []seedUser{
	{
		Name:     "Alice Example",
		Email:    "alice@example.com",
		Password: "secret1",
		Tasks:    []string{"buy milk", "write report", "call the bank"},
	},
	{
		Name:     "Bob Example",
		Email:    "bob@example.com",
		Password: "secret2",
		Tasks:    []string{"water plants"},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	hasher := auth.NewBcryptHasher()

	created, skipped := 0, 0
	for _, su := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, su.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up %s: %v", su.Email, err)
		}
		if existing != nil {
			log.Printf("Skipping %s: already registered", su.Email)
			skipped++
			continue
		}

		hash, err := hasher.Hash(su.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.Email, err)
		}

		user := &model.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: hash,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Email, err)
		}

		for _, text := range su.Tasks {
			task := &model.Task{
				Task:   text,
				UserID: user.ID,
			}
			if err := taskRepo.Create(ctx, task); err != nil {
				log.Fatalf("Failed to create task for %s: %v", su.Email, err)
			}
		}
		log.Printf("Created %s with %d tasks", su.Email, len(su.Tasks))
		created++
	}

	log.Printf("Seed complete: %d users created, %d skipped", created, skipped)
}
