package seed

import (
	"fmt"
	"log"

	"loopcraft/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPatterns int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with a connected crafting community: users,
// a follow mesh, patterns, posts (some linked to patterns), stash items and
// light engagement.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumPatterns <= 0 {
		opts.NumPatterns = opts.NumUsers * 2
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = opts.NumUsers * 4
	}

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clearing data: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	// Follow mesh: everyone follows roughly a third of the community.
	edges := 0
	for _, follower := range users {
		for _, following := range users {
			if follower.ID == following.ID {
				continue
			}
			if f.rng.Intn(3) != 0 {
				continue
			}
			if err := f.CreateFollow(follower, following); err != nil {
				return fmt.Errorf("creating follow: %w", err)
			}
			edges++
		}
	}
	log.Printf("Created %d follow edges", edges)

	patterns := make([]*models.Pattern, 0, opts.NumPatterns)
	for i := 0; i < opts.NumPatterns; i++ {
		creator := users[f.rng.Intn(len(users))]
		pattern, err := f.CreatePattern(creator)
		if err != nil {
			return fmt.Errorf("creating pattern: %w", err)
		}
		patterns = append(patterns, pattern)
	}
	log.Printf("Created %d patterns", len(patterns))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rng.Intn(len(users))]
		var pattern *models.Pattern
		// Roughly half the posts show off a pattern.
		if len(patterns) > 0 && f.rng.Intn(2) == 0 {
			pattern = patterns[f.rng.Intn(len(patterns))]
		}
		post, err := f.CreatePost(author, pattern)
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("Created %d posts", len(posts))

	items := 0
	for _, user := range users {
		n := f.rng.Intn(5)
		for i := 0; i < n; i++ {
			if _, err := f.CreateInventoryItem(user); err != nil {
				return fmt.Errorf("creating inventory item: %w", err)
			}
			items++
		}
	}
	log.Printf("Created %d inventory items", items)

	// Light engagement so feeds look lived-in.
	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID {
				continue
			}
			switch f.rng.Intn(10) {
			case 0:
				if err := f.CreateLike(user, post); err != nil {
					return fmt.Errorf("creating like: %w", err)
				}
			case 1:
				if err := f.CreateComment(user, post); err != nil {
					return fmt.Errorf("creating comment: %w", err)
				}
			}
		}
	}

	return nil
}

// clearData removes all seeded rows in dependency order.
func clearData(db *gorm.DB) error {
	tables := []any{
		&models.Like{},
		&models.Comment{},
		&models.SavedPost{},
		&models.SavedPattern{},
		&models.Follow{},
		&models.InventoryItem{},
		&models.Post{},
		&models.PatternImage{},
		&models.Pattern{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}
