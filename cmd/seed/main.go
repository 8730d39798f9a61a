// Command main runs the database seeder for Loopcraft.
package main

import (
	"flag"
	"log"

	"loopcraft/internal/config"
	"loopcraft/internal/database"
	"loopcraft/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPatterns := flag.Int("patterns", 0, "Number of patterns to create (0 = derived from users)")
	numPosts := flag.Int("posts", 0, "Number of posts to create (0 = derived from users)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, clean=%v\n", *numUsers, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumPatterns: *numPatterns,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The database is populated with demo data.")
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
