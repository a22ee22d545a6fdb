package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jkask/blabber/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateLike is returned by CreateLike when the store's uniqueness
// constraint on (user, on_model, on_document) rejects the insert. The
// reaction toggle treats it as "already liked".
var ErrDuplicateLike = errors.New("like already exists")

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, id primitive.ObjectID) error
	FindLike(ctx context.Context, userID uint, kind models.TargetKind, document primitive.ObjectID, receiverID uint) (*models.Like, error)
	GetLikesByTarget(ctx context.Context, kind models.TargetKind, document primitive.ObjectID) ([]models.Like, error)
	DeleteLikesByTarget(ctx context.Context, kind models.TargetKind, document primitive.ObjectID) error
	DeleteLikesByUserID(ctx context.Context, userID uint) error
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection("likes")}
}

// CreateLike creates a new like in MongoDB. A concurrent insert of the same
// (user, kind, document) tuple surfaces as ErrDuplicateLike via the unique
// index instead of a second like.
func (r *MongoLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, like)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateLike
	}
	return err
}

// DeleteLike deletes a like by ID from MongoDB
func (r *MongoLikeRepository) DeleteLike(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// FindLike looks up the like identified by the full toggle tuple. It returns
// (nil, nil) when no such like exists.
func (r *MongoLikeRepository) FindLike(ctx context.Context, userID uint, kind models.TargetKind, document primitive.ObjectID, receiverID uint) (*models.Like, error) {
	var like models.Like
	err := r.collection.FindOne(ctx, bson.M{
		"user_id":     userID,
		"on_model":    kind,
		"on_document": document,
		"receiver_id": receiverID,
	}).Decode(&like)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

// GetLikesByTarget retrieves all likes attached to a post or comment
func (r *MongoLikeRepository) GetLikesByTarget(ctx context.Context, kind models.TargetKind, document primitive.ObjectID) ([]models.Like, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"on_model": kind, "on_document": document})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var likes []models.Like
	if err = cursor.All(ctx, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// DeleteLikesByTarget deletes every like attached to a post or comment
func (r *MongoLikeRepository) DeleteLikesByTarget(ctx context.Context, kind models.TargetKind, document primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"on_model": kind, "on_document": document})
	return err
}

// DeleteLikesByUserID deletes every like a user has given
func (r *MongoLikeRepository) DeleteLikesByUserID(ctx context.Context, userID uint) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
