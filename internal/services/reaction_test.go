package services

import (
	"context"
	"testing"

	"github.com/jkask/blabber/backend/internal/apperr"
	"github.com/jkask/blabber/backend/internal/models"
	"github.com/jkask/blabber/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHandleLikeToggleIsInvolution(t *testing.T) {
	env := newTestEnv()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	post := env.seedPost(t, alice, "title")
	ref := models.TargetRef{Kind: models.TargetPost, ID: post.ID.Hex()}
	ctx := context.Background()

	doc, created, err := env.reaction.HandleLike(ctx, ref, bob)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, doc.Post)
	require.Len(t, doc.Likes, 1)
	assert.Equal(t, bob.ID, doc.Likes[0].UserID)
	assert.Equal(t, alice.ID, doc.Likes[0].ReceiverID)
	require.NotNil(t, doc.User)
	assert.Equal(t, alice.ID, doc.User.ID)

	// second identical call returns to the original state
	doc, created, err = env.reaction.HandleLike(ctx, ref, bob)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, doc.Likes)

	likes, err := env.likes.GetLikesByTarget(ctx, models.TargetPost, post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestHandleLikeOnComment(t *testing.T) {
	env := newTestEnv()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	post := env.seedPost(t, alice, "title")
	comment := env.seedComment(t, bob, post, "nice")
	ref := models.TargetRef{Kind: models.TargetComment, ID: comment.ID.Hex()}

	doc, created, err := env.reaction.HandleLike(context.Background(), ref, alice)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, doc.Comment)
	assert.Nil(t, doc.Post)
	require.NotNil(t, doc.User)
	assert.Equal(t, bob.ID, doc.User.ID)
	require.Len(t, doc.Likes, 1)
	assert.Equal(t, bob.ID, doc.Likes[0].ReceiverID)
}

func TestHandleLikeRejectsBadTargets(t *testing.T) {
	env := newTestEnv()
	alice := env.seedUser(t, "alice")
	post := env.seedPost(t, alice, "title")
	ctx := context.Background()

	_, _, err := env.reaction.HandleLike(ctx, models.TargetRef{Kind: "User", ID: post.ID.Hex()}, alice)
	assert.ErrorIs(t, err, apperr.ErrInvalidTarget)

	_, _, err = env.reaction.HandleLike(ctx, models.TargetRef{Kind: models.TargetPost, ID: "garbage"}, alice)
	assert.ErrorIs(t, err, apperr.ErrInvalidTarget)

	_, _, err = env.reaction.HandleLike(ctx, models.TargetRef{Kind: models.TargetPost, ID: "ffffffffffffffffffffffff"}, alice)
	assert.ErrorIs(t, err, apperr.ErrInvalidTarget)

	_, _, err = env.reaction.HandleLike(ctx, models.TargetRef{Kind: models.TargetPost, ID: post.ID.Hex()}, nil)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

// racingLikeRepository simulates a concurrent toggle that inserts between
// this call's lookup and its insert: the first FindLike reports absence
// even though the like exists.
type racingLikeRepository struct {
	*repositories.MemoryLikeRepository
	raced bool
}

func (r *racingLikeRepository) FindLike(ctx context.Context, userID uint, kind models.TargetKind, document primitive.ObjectID, receiverID uint) (*models.Like, error) {
	if !r.raced {
		r.raced = true
		return nil, nil
	}
	return r.MemoryLikeRepository.FindLike(ctx, userID, kind, document, receiverID)
}

func TestHandleLikeDuplicateInsertTreatedAsUnlike(t *testing.T) {
	likes := &racingLikeRepository{MemoryLikeRepository: repositories.NewMemoryLikeRepository()}
	env := newTestEnvWithLikes(likes)
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	post := env.seedPost(t, alice, "title")
	ctx := context.Background()

	// the racing winner's like is already in the store
	require.NoError(t, likes.CreateLike(ctx, &models.Like{
		UserID:     bob.ID,
		ReceiverID: alice.ID,
		OnModel:    models.TargetPost,
		OnDocument: post.ID,
	}))

	doc, created, err := env.reaction.HandleLike(ctx, models.TargetRef{Kind: models.TargetPost, ID: post.ID.Hex()}, bob)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, doc.Likes)

	// the uniqueness invariant held: no like survived the pair of toggles
	remaining, err := likes.GetLikesByTarget(ctx, models.TargetPost, post.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
