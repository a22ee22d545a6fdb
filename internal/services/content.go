package services

import (
	"context"
	"unicode/utf8"

	"github.com/jkask/blabber/backend/internal/apperr"
	"github.com/jkask/blabber/backend/internal/models"
	"github.com/jkask/blabber/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxTitleLen   = 100
	maxContentLen = 10000
)

// ContentService owns the post and comment rules: field validation,
// ownership checks, eager resolution of derived relations and delegation
// to the cascade coordinator on delete.
type ContentService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	likes    repositories.LikeRepository
	users    repositories.UserRepository
	cascader *Cascader
}

// NewContentService creates a new ContentService
func NewContentService(posts repositories.PostRepository, comments repositories.CommentRepository, likes repositories.LikeRepository, users repositories.UserRepository, cascader *Cascader) *ContentService {
	return &ContentService{posts: posts, comments: comments, likes: likes, users: users, cascader: cascader}
}

func parsePostID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return oid, apperr.ErrInvalidPostID
	}
	return oid, nil
}

func parseCommentID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return oid, apperr.ErrInvalidCommentID
	}
	return oid, nil
}

// CreatePost validates and persists a new post owned by the acting user.
func (s *ContentService) CreatePost(ctx context.Context, title, content string, acting *models.User) (*models.Post, error) {
	if title == "" || content == "" {
		return nil, apperr.BadRequest("You must supply a title and some content to your post.")
	}
	if acting == nil {
		return nil, apperr.BadRequest("Post must belong to a user.")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return nil, apperr.BadRequest("Title can be maximum 100 characters long.")
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return nil, apperr.BadRequest("Post content can be maximum 10000 characters long.")
	}
	post := &models.Post{
		UserID:  acting.ID,
		Title:   title,
		Content: content,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies the supplied title and/or content to an owned post.
func (s *ContentService) UpdatePost(ctx context.Context, postID string, req models.UpdatePostRequest, acting *models.User) (*models.Post, error) {
	if req.Title == "" && req.Content == "" {
		return nil, apperr.ErrNothingToUpdate
	}
	if utf8.RuneCountInString(req.Title) > maxTitleLen {
		return nil, apperr.BadRequest("Title can be maximum 100 characters long.")
	}
	if utf8.RuneCountInString(req.Content) > maxContentLen {
		return nil, apperr.BadRequest("Post content can be maximum 10000 characters long.")
	}
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwner(acting, post.UserID); err != nil {
		return nil, err
	}
	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deletes an owned post, cascading to its comments and likes.
func (s *ContentService) DeletePost(ctx context.Context, postID string, acting *models.User) error {
	id, err := parsePostID(postID)
	if err != nil {
		return err
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeOwner(acting, post.UserID); err != nil {
		return err
	}
	return s.cascader.DeletePost(ctx, post)
}

// GetPost loads a post with its owner, comments (each with their owner and
// likes) and its own likes eagerly resolved.
func (s *ContentService) GetPost(ctx context.Context, postID string) (*models.PostDetail, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildPostDetail(ctx, post)
}

// buildPostDetail resolves a post's owner, comments (each with their owner
// and likes) and the post's own likes.
func (s *ContentService) buildPostDetail(ctx context.Context, post *models.Post) (*models.PostDetail, error) {
	detail := &models.PostDetail{Post: *post, Comments: []models.CommentDetail{}, Likes: []models.Like{}}
	if owner, err := s.users.GetUserByID(post.UserID); err == nil {
		detail.User = owner
	}

	comments, err := s.comments.GetCommentsByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		cd := models.CommentDetail{Comment: comments[i], Likes: []models.Like{}}
		if owner, err := s.users.GetUserByID(comments[i].UserID); err == nil {
			cd.User = owner
		}
		likes, err := s.likes.GetLikesByTarget(ctx, models.TargetComment, comments[i].ID)
		if err != nil {
			return nil, err
		}
		if likes != nil {
			cd.Likes = likes
		}
		detail.Comments = append(detail.Comments, cd)
	}

	likes, err := s.likes.GetLikesByTarget(ctx, models.TargetPost, post.ID)
	if err != nil {
		return nil, err
	}
	if likes != nil {
		detail.Likes = likes
	}
	return detail, nil
}

// SearchPosts returns one page of posts matching the query, owners resolved.
func (s *ContentService) SearchPosts(ctx context.Context, q models.PostSearchQuery) (*models.PostPage, error) {
	posts, total, err := s.posts.SearchPosts(ctx, q)
	if err != nil {
		return nil, err
	}
	page := &models.PostPage{
		Posts:      make([]models.PostSummary, 0, len(posts)),
		Page:       q.Page,
		Limit:      q.Limit,
		TotalCount: total,
	}
	for i := range posts {
		summary := models.PostSummary{Post: posts[i]}
		if owner, err := s.users.GetUserByID(posts[i].UserID); err == nil {
			summary.User = owner
		}
		page.Posts = append(page.Posts, summary)
	}
	return page, nil
}

// CreateComment validates and persists a new comment on an existing post.
// It returns the comment together with the fully resolved post it was made
// on, the new comment included.
func (s *ContentService) CreateComment(ctx context.Context, content, postID string, acting *models.User) (*models.Comment, *models.PostDetail, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, nil, apperr.ErrInvalidTarget
	}
	if content == "" {
		return nil, nil, apperr.BadRequest("You must add some content to your comment.")
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return nil, nil, apperr.BadRequest("Your comment content can not be longer than 10000 characters.")
	}
	if acting == nil {
		return nil, nil, apperr.ErrUnauthenticated
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	comment := &models.Comment{
		PostID:  post.ID,
		UserID:  acting.ID,
		Content: content,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, nil, err
	}
	detail, err := s.buildPostDetail(ctx, post)
	if err != nil {
		return nil, nil, err
	}
	return comment, detail, nil
}

// UpdateComment replaces the content of an owned comment.
func (s *ContentService) UpdateComment(ctx context.Context, content, commentID string, acting *models.User) (*models.Comment, error) {
	id, err := parseCommentID(commentID)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, apperr.BadRequest("You must add some content to update your comment.")
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return nil, apperr.BadRequest("Your comment content can not be longer than 10000 characters.")
	}
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwner(acting, comment.UserID); err != nil {
		return nil, err
	}
	comment.Content = content
	if err := s.comments.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment deletes an owned comment, cascading to its likes.
func (s *ContentService) DeleteComment(ctx context.Context, commentID string, acting *models.User) error {
	id, err := parseCommentID(commentID)
	if err != nil {
		return err
	}
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeOwner(acting, comment.UserID); err != nil {
		return err
	}
	return s.cascader.DeleteComment(ctx, comment)
}

// GetComment loads a comment with its owner and post resolved.
func (s *ContentService) GetComment(ctx context.Context, commentID string) (*models.CommentDetail, error) {
	id, err := parseCommentID(commentID)
	if err != nil {
		return nil, err
	}
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &models.CommentDetail{Comment: *comment, Likes: []models.Like{}}
	if owner, err := s.users.GetUserByID(comment.UserID); err == nil {
		detail.User = owner
	}
	likes, err := s.likes.GetLikesByTarget(ctx, models.TargetComment, id)
	if err != nil {
		return nil, err
	}
	if likes != nil {
		detail.Likes = likes
	}
	post, err := s.posts.GetPostByID(ctx, comment.PostID)
	if err != nil {
		return nil, err
	}
	detail.Post = post
	return detail, nil
}

// GetComments loads a post and its comments, a derived relation rather
// than a stored field. The post comes back fully resolved.
func (s *ContentService) GetComments(ctx context.Context, postID string) (*models.PostDetail, []models.Comment, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, nil, apperr.BadRequest("You must supply a correct post to fetch.")
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.comments.GetCommentsByPostID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	detail, err := s.buildPostDetail(ctx, post)
	if err != nil {
		return nil, nil, err
	}
	return detail, comments, nil
}
