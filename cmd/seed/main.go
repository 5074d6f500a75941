package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"gymbook/internal/config"
	"gymbook/internal/db"
	"gymbook/internal/model"
	"gymbook/internal/repository"
	"gymbook/internal/seed"
)

func main() {
	count := flag.Int("count", 20, "number of demo users to create")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Ensure schema is up to date before inserting
	if err := gormDB.AutoMigrate(&model.User{}, &model.Membership{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	membershipRepo := repository.NewMembershipRepository(gormDB)
	ctx := context.Background()
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users, memberships := 0, 0
	for i := 0; i < *count; i++ {
		user := seed.User(r)
		user.State = model.UserStateActive
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		users++

		for j := 0; j < r.Intn(3); j++ {
			membership := seed.Membership(r, user.ID)
			membership.State = model.MembershipStateActive
			if err := membershipRepo.Create(ctx, membership); err != nil {
				log.Fatalf("Failed to create membership: %v", err)
			}
			memberships++
		}
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", users)
	log.Printf("  - Memberships created: %d", memberships)
}
