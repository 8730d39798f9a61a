// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"loopcraft/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password every seeded user gets.
const DefaultPassword = "password123"

var craftAdjectives = []string{
	"chunky", "cozy", "lacy", "textured", "cabled", "ribbed", "granny",
	"tunisian", "brioche", "colorwork", "mosaic", "slip-stitch",
}

var craftObjects = []string{
	"cardigan", "beanie", "shawl", "blanket", "mittens", "socks", "cowl",
	"sweater", "scarf", "amigurumi bear", "market bag", "dishcloth",
	"baby bootees", "tea cozy",
}

var yarnNames = []string{
	"merino DK", "alpaca sport", "cotton worsted", "mohair lace",
	"superwash sock", "bulky wool", "bamboo blend", "tweed aran",
}

var hookNeedleNames = []string{
	"3.5mm crochet hook", "4mm bamboo needles", "5.5mm circular needles",
	"2.75mm steel hook", "8mm jumbo hook", "cable needle set",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	rng  *rand.Rand
	hash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())

	// Hash the shared password once; bcrypt per user is slow at seed scale.
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	return &Factory{
		db:   db,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		hash: string(hashed),
	}
}

// pastTime returns a timestamp up to maxDays in the past for a realistic
// created_at spread.
func (f *Factory) pastTime(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour +
		time.Duration(f.rng.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// CreateUser persists a user with fake profile data.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	user := &models.User{
		Name:     first + " " + last,
		Username: fmt.Sprintf("%s_%s%d", first, last, f.rng.Intn(10000)),
		Email:    fmt.Sprintf("%s.%s%d@%s", first, last, f.rng.Intn(10000), gofakeit.DomainName()),
		Password: f.hash,
		Bio:      gofakeit.Sentence(8),
		Link:     "https://" + gofakeit.DomainName(),
		IsActive: true,
	}
	for _, o := range overrides {
		o(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePattern persists a pattern for the given creator.
func (f *Factory) CreatePattern(creator *models.User, overrides ...func(*models.Pattern)) (*models.Pattern, error) {
	difficulties := models.Difficulties()
	pattern := &models.Pattern{
		CreatorID:   creator.ID,
		Name:        f.craftPhrase(),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		Difficulty:  difficulties[f.rng.Intn(len(difficulties))],
		CreatedAt:   f.pastTime(120),
	}
	for _, o := range overrides {
		o(pattern)
	}
	if err := f.db.Create(pattern).Error; err != nil {
		return nil, err
	}
	return pattern, nil
}

// CreatePost persists a post for the given user, optionally linked to a pattern.
func (f *Factory) CreatePost(user *models.User, pattern *models.Pattern, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:    user.ID,
		Caption:   "Just finished this " + f.craftPhrase() + "!",
		CreatedAt: f.pastTime(90),
	}
	if pattern != nil {
		post.PatternID = &pattern.ID
	}
	for _, o := range overrides {
		o(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateInventoryItem persists a stash item for the given user.
func (f *Factory) CreateInventoryItem(user *models.User, overrides ...func(*models.InventoryItem)) (*models.InventoryItem, error) {
	item := &models.InventoryItem{
		UserID:      user.ID,
		ItemType:    models.ItemTypeYarn,
		Name:        yarnNames[f.rng.Intn(len(yarnNames))],
		Description: gofakeit.Sentence(6),
	}
	if f.rng.Intn(3) == 0 {
		item.ItemType = models.ItemTypeHookNeedle
		item.Name = hookNeedleNames[f.rng.Intn(len(hookNeedleNames))]
	}
	for _, o := range overrides {
		o(item)
	}
	if err := f.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreateFollow persists a follow edge between two users.
func (f *Factory) CreateFollow(follower, following *models.User) error {
	return f.db.Create(&models.Follow{
		FollowerID:  follower.ID,
		FollowingID: following.ID,
	}).Error
}

// CreateLike persists a like on a post.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	return f.db.Create(&models.Like{
		UserID: user.ID,
		PostID: post.ID,
	}).Error
}

// CreateComment persists a comment on a post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) error {
	return f.db.Create(&models.Comment{
		UserID:  user.ID,
		PostID:  post.ID,
		Comment: gofakeit.Sentence(10),
	}).Error
}

func (f *Factory) craftPhrase() string {
	return craftAdjectives[f.rng.Intn(len(craftAdjectives))] + " " +
		craftObjects[f.rng.Intn(len(craftObjects))]
}
