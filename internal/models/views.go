package models

import (
	"time"

	"github.com/google/uuid"
)

// View structs enumerate exactly the fields each response shape exposes.
// Stored image paths are resolved to absolute URLs by the resolve func the
// caller supplies (empty path resolves to an empty string, never a broken link).

// UserInfo is the public profile shape embedded in list and detail responses.
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio"`
	Link      string    `json:"link"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// PostView is the list/detail shape for posts.
type PostView struct {
	ID        uint      `json:"id"`
	UserInfo  UserInfo  `json:"user_info"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	Caption   string    `json:"caption"`
	Pattern   *uint     `json:"pattern"`
}

// PatternView is the list/detail shape for patterns.
type PatternView struct {
	ID          uint       `json:"id"`
	CreatorInfo UserInfo   `json:"creator_info"`
	Difficulty  Difficulty `json:"difficulty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	ImageURL    string     `json:"image_url"`
	ImageURLs   []string   `json:"image_urls,omitempty"`
}

// InventoryView is the list shape for inventory items.
type InventoryView struct {
	ID          uint     `json:"id"`
	ImageURL    string   `json:"image_url"`
	Description string   `json:"description"`
	ItemType    ItemType `json:"item_type"`
	UserInfo    UserInfo `json:"user_info"`
	Name        string   `json:"name"`
}

// FollowEdgeView resolves a follow edge to the counterpart user's profile.
type FollowEdgeView struct {
	ID         uint     `json:"id"`
	FollowInfo UserInfo `json:"follow_info"`
}

// ProfileView is the full profile page shape: the user's details plus their
// content and social-graph counts relative to the viewer.
type ProfileView struct {
	UserInfo       UserInfo      `json:"user_info"`
	Posts          []PostView    `json:"posts"`
	Patterns       []PatternView `json:"patterns"`
	FollowersCount int64         `json:"followers_count"`
	FollowingCount int64         `json:"following_count"`
	IsFollowing    bool          `json:"is_following"`
}

// NewUserInfo builds the public profile view for u.
func NewUserInfo(u *User, resolve func(string) string) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Username:  u.Username,
		Bio:       u.Bio,
		Link:      u.Link,
		Avatar:    resolve(u.Avatar),
		CreatedAt: u.CreatedAt,
	}
}

// NewPostView builds the response view for p. The owning user must be preloaded.
func NewPostView(p *Post, resolve func(string) string) PostView {
	return PostView{
		ID:        p.ID,
		UserInfo:  NewUserInfo(&p.User, resolve),
		ImageURL:  resolve(p.Image),
		CreatedAt: p.CreatedAt,
		Caption:   p.Caption,
		Pattern:   p.PatternID,
	}
}

// NewPostViews builds views for a slice of posts, preserving order.
func NewPostViews(posts []Post, resolve func(string) string) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, NewPostView(&posts[i], resolve))
	}
	return views
}

// NewPatternView builds the response view for p. The creator must be preloaded.
func NewPatternView(p *Pattern, resolve func(string) string) PatternView {
	view := PatternView{
		ID:          p.ID,
		CreatorInfo: NewUserInfo(&p.Creator, resolve),
		Difficulty:  p.Difficulty,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		ImageURL:    resolve(p.Image),
	}
	for _, img := range p.Images {
		view.ImageURLs = append(view.ImageURLs, resolve(img.Image))
	}
	return view
}

// NewPatternViews builds views for a slice of patterns, preserving order.
func NewPatternViews(patterns []Pattern, resolve func(string) string) []PatternView {
	views := make([]PatternView, 0, len(patterns))
	for i := range patterns {
		views = append(views, NewPatternView(&patterns[i], resolve))
	}
	return views
}

// NewInventoryView builds the response view for item.
func NewInventoryView(item *InventoryItem, resolve func(string) string) InventoryView {
	return InventoryView{
		ID:          item.ID,
		ImageURL:    resolve(item.Image),
		Description: item.Description,
		ItemType:    item.ItemType,
		UserInfo:    NewUserInfo(&item.User, resolve),
		Name:        item.Name,
	}
}

// NewInventoryViews builds views for a slice of items, preserving order.
func NewInventoryViews(items []InventoryItem, resolve func(string) string) []InventoryView {
	views := make([]InventoryView, 0, len(items))
	for i := range items {
		views = append(views, NewInventoryView(&items[i], resolve))
	}
	return views
}

// NewFollowerViews resolves follower edges to the users doing the following.
// Each edge's Follower must be preloaded.
func NewFollowerViews(follows []Follow, resolve func(string) string) []FollowEdgeView {
	views := make([]FollowEdgeView, 0, len(follows))
	for i := range follows {
		views = append(views, FollowEdgeView{
			ID:         follows[i].ID,
			FollowInfo: NewUserInfo(&follows[i].Follower, resolve),
		})
	}
	return views
}

// NewFollowingViews resolves following edges to the users being followed.
// Each edge's Following must be preloaded.
func NewFollowingViews(follows []Follow, resolve func(string) string) []FollowEdgeView {
	views := make([]FollowEdgeView, 0, len(follows))
	for i := range follows {
		views = append(views, FollowEdgeView{
			ID:         follows[i].ID,
			FollowInfo: NewUserInfo(&follows[i].Following, resolve),
		})
	}
	return views
}
