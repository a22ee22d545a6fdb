package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TargetKind identifies the kind of document a like is attached to.
type TargetKind string

const (
	TargetPost    TargetKind = "Post"
	TargetComment TargetKind = "Comment"
)

// Valid reports whether the kind is one of the two allowed values.
func (k TargetKind) Valid() bool {
	return k == TargetPost || k == TargetComment
}

// TargetRef addresses a likeable document by kind and raw identifier.
type TargetRef struct {
	Kind TargetKind
	ID   string
}

// Like represents a like on a post or comment, stored in MongoDB.
// At most one like may exist per (user, kind, document); the likes
// collection carries a unique index over those three fields.
type Like struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     uint               `json:"user_id" bson:"user_id"`
	ReceiverID uint               `json:"receiver_id" bson:"receiver_id"`
	OnModel    TargetKind         `json:"on_model" bson:"on_model"`
	OnDocument primitive.ObjectID `json:"on_document" bson:"on_document"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// LikedDocument is the resolved target returned by the like toggle: the
// post or comment itself, its owning user and its current likes.
type LikedDocument struct {
	Post    *Post    `json:"post,omitempty"`
	Comment *Comment `json:"comment,omitempty"`
	User    *User    `json:"user,omitempty"`
	Likes   []Like   `json:"likes"`
}
