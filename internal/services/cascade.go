package services

import (
	"context"

	"github.com/jkask/blabber/backend/internal/models"
	"github.com/jkask/blabber/backend/internal/repositories"
)

// Cascader coordinates the dependent deletions that follow a user, post or
// comment deletion. Child deletions run before the parent is removed, so a
// committed parent deletion never leaves an orphaned comment or like behind.
// Any failure propagates; there is no partial-cascade swallowing.
type Cascader struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	likes    repositories.LikeRepository
}

// NewCascader creates a new Cascader
func NewCascader(users repositories.UserRepository, posts repositories.PostRepository, comments repositories.CommentRepository, likes repositories.LikeRepository) *Cascader {
	return &Cascader{users: users, posts: posts, comments: comments, likes: likes}
}

// DeleteComment removes a comment and every like attached to it.
func (c *Cascader) DeleteComment(ctx context.Context, comment *models.Comment) error {
	if err := c.likes.DeleteLikesByTarget(ctx, models.TargetComment, comment.ID); err != nil {
		return err
	}
	return c.comments.DeleteComment(ctx, comment.ID)
}

// DeleteComments removes each comment in turn, firing its like cascade.
func (c *Cascader) DeleteComments(ctx context.Context, comments []models.Comment) error {
	for i := range comments {
		if err := c.DeleteComment(ctx, &comments[i]); err != nil {
			return err
		}
	}
	return nil
}

// DeletePost removes a post, its comments (each with their likes) and the
// likes on the post itself.
func (c *Cascader) DeletePost(ctx context.Context, post *models.Post) error {
	comments, err := c.comments.GetCommentsByPostID(ctx, post.ID)
	if err != nil {
		return err
	}
	if err := c.DeleteComments(ctx, comments); err != nil {
		return err
	}
	if err := c.likes.DeleteLikesByTarget(ctx, models.TargetPost, post.ID); err != nil {
		return err
	}
	return c.posts.DeletePost(ctx, post.ID)
}

// DeletePosts removes each post in turn, firing the full post cascade.
func (c *Cascader) DeletePosts(ctx context.Context, posts []models.Post) error {
	for i := range posts {
		if err := c.DeletePost(ctx, &posts[i]); err != nil {
			return err
		}
	}
	return nil
}

// DeleteUser removes a user together with their posts (and those posts'
// comments and likes), their own comments (and those comments' likes) and
// every like they have given.
func (c *Cascader) DeleteUser(ctx context.Context, user *models.User) error {
	posts, err := c.posts.GetPostsByUserID(ctx, user.ID)
	if err != nil {
		return err
	}
	if err := c.DeletePosts(ctx, posts); err != nil {
		return err
	}
	comments, err := c.comments.GetCommentsByUserID(ctx, user.ID)
	if err != nil {
		return err
	}
	if err := c.DeleteComments(ctx, comments); err != nil {
		return err
	}
	if err := c.likes.DeleteLikesByUserID(ctx, user.ID); err != nil {
		return err
	}
	return c.users.DeleteUser(user.ID)
}

// DeleteUsers removes each user in turn, firing the full user cascade.
func (c *Cascader) DeleteUsers(ctx context.Context, users []models.User) error {
	for i := range users {
		if err := c.DeleteUser(ctx, &users[i]); err != nil {
			return err
		}
	}
	return nil
}
