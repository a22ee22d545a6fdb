package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/jkask/blabber/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createPost drives the create handler and returns the created post's id.
func (env *handlerEnv) createPost(t *testing.T, acting *models.User, title, content string) string {
	t.Helper()
	c, rec := env.request(t, http.MethodPost, models.CreatePostRequest{Title: title, Content: content}, acting)
	require.NoError(t, env.post.CreatePost(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	post := body["post"].(map[string]interface{})
	return post["id"].(string)
}

func TestPostLifecycle(t *testing.T) {
	env := newHandlerEnv()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")

	// create as alice
	c, rec := env.request(t, http.MethodPost, models.CreatePostRequest{Title: "t", Content: "c"}, alice)
	require.NoError(t, env.post.CreatePost(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody(t, rec)["post"].(map[string]interface{})
	assert.Equal(t, float64(alice.ID), created["user_id"])
	postID := created["id"].(string)

	// update as bob is rejected before anything changes
	c, _ = env.request(t, http.MethodPatch, models.UpdatePostRequest{Title: "taken over"}, bob)
	c.SetParamNames("postId")
	c.SetParamValues(postID)
	err := env.post.UpdatePost(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))

	// and an unauthenticated update is rejected the same way
	c, _ = env.request(t, http.MethodPatch, models.UpdatePostRequest{Title: "taken over"}, nil)
	c.SetParamNames("postId")
	c.SetParamValues(postID)
	err = env.post.UpdatePost(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))

	// delete as alice
	c, rec = env.request(t, http.MethodDelete, nil, alice)
	c.SetParamNames("postId")
	c.SetParamValues(postID)
	require.NoError(t, env.post.DeletePost(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// the post is gone
	c, _ = env.request(t, http.MethodGet, nil, alice)
	c.SetParamNames("postId")
	c.SetParamValues(postID)
	err = env.post.GetPost(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestGetPostsPaginationWindow(t *testing.T) {
	env := newHandlerEnv()
	alice := env.seedUser(t, "alice")
	for _, title := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		env.createPost(t, alice, title, "content")
	}

	c, rec := env.request(t, http.MethodGet, nil, alice)
	c.QueryParams().Set("sortBy", "title")
	c.QueryParams().Set("direction", "asc")
	c.QueryParams().Set("page", "2")
	c.QueryParams().Set("limit", "3")
	require.NoError(t, env.post.GetPosts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(7), body["totalCount"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(3), body["limit"])
	posts := body["posts"].([]interface{})
	require.Len(t, posts, 3)
	assert.Equal(t, "d", posts[0].(map[string]interface{})["title"])
}

func TestGetPostsEmptyResultIsOK(t *testing.T) {
	env := newHandlerEnv()
	alice := env.seedUser(t, "alice")
	env.createPost(t, alice, "hello", "world")

	c, rec := env.request(t, http.MethodGet, nil, alice)
	c.QueryParams().Set("q", "no match")
	require.NoError(t, env.post.GetPosts(c))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(0), body["totalCount"])
}

func TestCommentLifecycle(t *testing.T) {
	env := newHandlerEnv()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	postID := env.createPost(t, alice, "t", "c")

	// bob comments on alice's post
	c, rec := env.request(t, http.MethodPost, models.CreateCommentRequest{Content: "hello"}, bob)
	c.SetParamNames("postId")
	c.SetParamValues(postID)
	require.NoError(t, env.comment.CreateComment(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	commentID := body["comment"].(map[string]interface{})["id"].(string)
	assert.Equal(t, postID, body["post"].(map[string]interface{})["id"])
	assert.Len(t, body["post"].(map[string]interface{})["comments"], 1)

	// alice cannot edit bob's comment
	c, _ = env.request(t, http.MethodPatch, models.UpdateCommentRequest{Content: "mine now"}, alice)
	c.SetParamNames("commentId")
	c.SetParamValues(commentID)
	err := env.comment.UpdateComment(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))

	// bob deletes his comment
	c, rec = env.request(t, http.MethodDelete, nil, bob)
	c.SetParamNames("commentId")
	c.SetParamValues(commentID)
	require.NoError(t, env.comment.DeleteComment(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLikeToggleStatusCodes(t *testing.T) {
	env := newHandlerEnv()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	postID := env.createPost(t, alice, "t", "c")

	c, rec := env.request(t, http.MethodPost, nil, bob)
	c.SetParamNames("postId")
	c.SetParamValues(postID)
	require.NoError(t, env.like.LikePost(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	c, rec = env.request(t, http.MethodPost, nil, bob)
	c.SetParamNames("postId")
	c.SetParamValues(postID)
	require.NoError(t, env.like.LikePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteMeCascades(t *testing.T) {
	env := newHandlerEnv()
	alice := env.seedUser(t, "alice")
	env.createPost(t, alice, "t", "c")

	c, rec := env.request(t, http.MethodDelete, nil, alice)
	require.NoError(t, env.user.DeleteMe(c))
	require.Equal(t, http.StatusOK, rec.Code)

	posts, err := env.posts.GetPostsByUserID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)
	_, err = env.users.GetUserByID(alice.ID)
	assert.Error(t, err)
}
