package models

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a user's post stored in MongoDB
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"user_id" bson:"user_id"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=100"`
	Content string `json:"content" validate:"required,min=1,max=10000"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// Both fields are optional but at least one must be supplied.
type UpdatePostRequest struct {
	Title   string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Content string `json:"content,omitempty" validate:"omitempty,min=1,max=10000"`
}

// PostSummary is a post with its owning user resolved, as returned by listing
type PostSummary struct {
	Post
	User *User `json:"user,omitempty"`
}

// CommentDetail is a comment with its owner and likes resolved. The post is
// filled only when the comment is fetched on its own.
type CommentDetail struct {
	Comment
	User  *User  `json:"user,omitempty"`
	Post  *Post  `json:"post,omitempty"`
	Likes []Like `json:"likes"`
}

// PostDetail is a post with its owner, comments and likes eagerly resolved
type PostDetail struct {
	Post
	User     *User           `json:"user,omitempty"`
	Comments []CommentDetail `json:"comments"`
	Likes    []Like          `json:"likes"`
}

const (
	defaultPage  = 1
	defaultLimit = 5
)

// PostSearchQuery holds the normalized listing parameters for posts
type PostSearchQuery struct {
	Q         string
	SortBy    string
	Direction string
	Page      int64
	Limit     int64
}

// ParsePostSearchQuery builds a PostSearchQuery from raw query parameters.
// Non-positive or unparseable page/limit values fall back to the defaults.
func ParsePostSearchQuery(q, sortBy, direction, page, limit string) PostSearchQuery {
	sq := PostSearchQuery{
		Q:         q,
		SortBy:    sortBy,
		Direction: direction,
		Page:      defaultPage,
		Limit:     defaultLimit,
	}
	if p, err := strconv.ParseInt(page, 10, 64); err == nil && p > 0 {
		sq.Page = p
	}
	if l, err := strconv.ParseInt(limit, 10, 64); err == nil && l > 0 {
		sq.Limit = l
	}
	return sq
}

// Skip returns the number of matching posts before the requested page.
func (q PostSearchQuery) Skip() int64 {
	return (q.Page - 1) * q.Limit
}

// SortField maps the requested sort key onto a stored field. Anything other
// than "title" sorts by the last-updated timestamp.
func (q PostSearchQuery) SortField() string {
	if q.SortBy == "title" {
		return "title"
	}
	return "updated_at"
}

// SortAscending reports the sort direction; only "asc" sorts ascending.
func (q PostSearchQuery) SortAscending() bool {
	return q.Direction == "asc"
}

// PostPage is one page of matching posts plus the effective paging window
type PostPage struct {
	Posts      []PostSummary `json:"posts"`
	Page       int64         `json:"page"`
	Limit      int64         `json:"limit"`
	TotalCount int64         `json:"totalCount"`
}
