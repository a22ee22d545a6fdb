package services

import (
	"context"
	"testing"

	"github.com/jkask/blabber/backend/internal/models"
	"github.com/jkask/blabber/backend/internal/repositories"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	users    *repositories.MemoryUserRepository
	posts    *repositories.MemoryPostRepository
	comments *repositories.MemoryCommentRepository
	likes    repositories.LikeRepository
	cascader *Cascader
	content  *ContentService
	reaction *ReactionService
}

func newTestEnv() *testEnv {
	return newTestEnvWithLikes(repositories.NewMemoryLikeRepository())
}

func newTestEnvWithLikes(likes repositories.LikeRepository) *testEnv {
	env := &testEnv{
		users:    repositories.NewMemoryUserRepository(),
		posts:    repositories.NewMemoryPostRepository(),
		comments: repositories.NewMemoryCommentRepository(),
		likes:    likes,
	}
	env.cascader = NewCascader(env.users, env.posts, env.comments, env.likes)
	env.content = NewContentService(env.posts, env.comments, env.likes, env.users, env.cascader)
	env.reaction = NewReactionService(env.posts, env.comments, env.likes, env.users)
	return env
}

func (e *testEnv) seedUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com", Password: "hashed"}
	require.NoError(t, e.users.CreateUser(user))
	return user
}

func (e *testEnv) seedPost(t *testing.T, owner *models.User, title string) *models.Post {
	t.Helper()
	post, err := e.content.CreatePost(context.Background(), title, "content of "+title, owner)
	require.NoError(t, err)
	return post
}

func (e *testEnv) seedComment(t *testing.T, owner *models.User, post *models.Post, content string) *models.Comment {
	t.Helper()
	comment, _, err := e.content.CreateComment(context.Background(), content, post.ID.Hex(), owner)
	require.NoError(t, err)
	return comment
}

func (e *testEnv) seedLike(t *testing.T, actor *models.User, ref models.TargetRef) {
	t.Helper()
	_, created, err := e.reaction.HandleLike(context.Background(), ref, actor)
	require.NoError(t, err)
	require.True(t, created)
}
