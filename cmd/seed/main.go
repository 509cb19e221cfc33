package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"groupchat/internal/config"
	"groupchat/internal/db"
	"groupchat/internal/model"
	"groupchat/internal/repository"
)

// Seeds the initial admin user. Login assumes users already exist, so a
// fresh deployment needs this once before anything else works.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	username := getEnv("SEED_ADMIN_USERNAME", "superadmin")
	password := getEnv("SEED_ADMIN_PASSWORD", "123456")

	ctx := context.Background()
	database, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	users := repository.NewUserRepository(database)

	existing, err := users.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		log.Printf("Admin user %q already exists, nothing to do", username)
		return
	}
	if err != nil && err != mongo.ErrNoDocuments {
		log.Fatalf("Failed to check admin user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		Username:     username,
		PasswordHash: string(hashed),
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Seed completed: admin user %q created (id %s)", username, user.ID.Hex())
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
