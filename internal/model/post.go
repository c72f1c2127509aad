package model

import (
	"errors"
	"time"
)

// Post represents a citizen-filed urban issue report.
type Post struct {
	ID         int64     `db:"id" json:"id"`
	AuthorID   int64     `db:"author_id" json:"author_id"`
	CategoryID *int64    `db:"category_id" json:"category_id,omitempty"`
	Title      string    `db:"title" json:"title"`
	Content    string    `db:"content" json:"content"`
	ImageURL   *string   `db:"image_url" json:"-"` // legacy single-image column
	Progress   string    `db:"progress" json:"progress"`
	Latitude   *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude  *float64  `db:"longitude" json:"longitude,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`

	// Joined fields (not in posts table)
	Images []string `json:"images"`
}

// FeedAuthor is the denormalized author block on a feed item.
// Fields fall back to placeholders when the author record is incomplete.
type FeedAuthor struct {
	Name     string `json:"name"`
	Subtitle string `json:"subtitle"`
	Verified bool   `json:"verified"`
	Avatar   string `json:"avatar"`
}

// FeedStats carries the engagement counts computed from the ledgers at read time.
type FeedStats struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

// FeedItem is the viewer-facing representation of a post in the feed.
type FeedItem struct {
	ID          int64      `json:"id"`
	Author      FeedAuthor `json:"author"`
	Progress    string     `json:"progress"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Images      []string   `json:"images"`
	Stats       FeedStats  `json:"stats"`
	LikedByUser *bool      `json:"likedByUser,omitempty"` // nil when no viewer supplied
	CreatedAt   time.Time  `json:"created_at"`
}

// FeedPage is a page of feed items plus the totals the pagination UI needs.
type FeedPage struct {
	Items         []FeedItem
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// MapMarker is the map-pin view of a post with coordinates.
type MapMarker struct {
	ID            int64    `json:"id"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	Category      string   `json:"category"`
	CategoryColor string   `json:"categoryColor"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Status        string   `json:"status"`
	Images        []string `json:"images"`
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Images     []string `json:"images"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	CategoryID *int64   `json:"category_id"`
}

// PatchPostRequest carries the fields an owner may change after creation.
// Nil fields are left untouched; author and creation time are immutable.
type PatchPostRequest struct {
	Title      *string  `json:"title"`
	Content    *string  `json:"content"`
	Images     []string `json:"images"`
	Progress   *string  `json:"progress"`
	CategoryID *int64   `json:"category_id"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// Defaults shown to citizens when a post carries no explicit value.
const (
	DefaultProgress         = "Em Revisão"
	ResolvedProgress        = "Resolvido"
	DefaultCategoryName     = "Outros"
	DefaultCategoryColor    = "#6b7280"
	DefaultAuthorAvatarFmt  = "/avatars/user%d.jpg"
	FallbackAuthorAvatarURL = "/avatars/default.jpg"
)

// Post errors
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotPostOwner    = errors.New("not the owner of this post")
	ErrTitleRequired   = errors.New("post title is required")
	ErrContentRequired = errors.New("post content is required")
)
