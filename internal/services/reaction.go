package services

import (
	"context"

	"github.com/jkask/blabber/backend/internal/apperr"
	"github.com/jkask/blabber/backend/internal/models"
	"github.com/jkask/blabber/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReactionService implements the like toggle: one call creates the like if
// it is absent and removes it if it is present. Callers cannot force either
// branch.
type ReactionService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	likes    repositories.LikeRepository
	users    repositories.UserRepository
}

// NewReactionService creates a new ReactionService
func NewReactionService(posts repositories.PostRepository, comments repositories.CommentRepository, likes repositories.LikeRepository, users repositories.UserRepository) *ReactionService {
	return &ReactionService{posts: posts, comments: comments, likes: likes, users: users}
}

// resolveTarget loads the liked document and reports its id and owner.
func (s *ReactionService) resolveTarget(ctx context.Context, ref models.TargetRef) (doc *models.LikedDocument, id primitive.ObjectID, ownerID uint, err error) {
	id, err = primitive.ObjectIDFromHex(ref.ID)
	if err != nil {
		return nil, id, 0, apperr.ErrInvalidTarget
	}
	switch ref.Kind {
	case models.TargetPost:
		post, err := s.posts.GetPostByID(ctx, id)
		if err != nil {
			if err == apperr.ErrPostNotFound {
				err = apperr.ErrInvalidTarget
			}
			return nil, id, 0, err
		}
		return &models.LikedDocument{Post: post}, id, post.UserID, nil
	case models.TargetComment:
		comment, err := s.comments.GetCommentByID(ctx, id)
		if err != nil {
			if err == apperr.ErrCommentNotFound {
				err = apperr.ErrInvalidTarget
			}
			return nil, id, 0, err
		}
		return &models.LikedDocument{Comment: comment}, id, comment.UserID, nil
	default:
		return nil, id, 0, apperr.ErrInvalidTarget
	}
}

// HandleLike toggles the acting user's like on the referenced post or
// comment. It returns the target document with its likes and owner resolved
// and reports whether a like was created (true) or removed (false).
func (s *ReactionService) HandleLike(ctx context.Context, ref models.TargetRef, acting *models.User) (*models.LikedDocument, bool, error) {
	if acting == nil {
		return nil, false, apperr.ErrUnauthenticated
	}
	if !ref.Kind.Valid() {
		return nil, false, apperr.ErrInvalidTarget
	}

	doc, targetID, ownerID, err := s.resolveTarget(ctx, ref)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.likes.FindLike(ctx, acting.ID, ref.Kind, targetID, ownerID)
	if err != nil {
		return nil, false, err
	}

	created := false
	if existing == nil {
		like := &models.Like{
			UserID:     acting.ID,
			ReceiverID: ownerID,
			OnModel:    ref.Kind,
			OnDocument: targetID,
		}
		switch err := s.likes.CreateLike(ctx, like); err {
		case nil:
			created = true
		case repositories.ErrDuplicateLike:
			// Lost a race against an identical toggle; the like exists
			// now, so this call flips it back off.
			if existing, err = s.likes.FindLike(ctx, acting.ID, ref.Kind, targetID, ownerID); err != nil {
				return nil, false, err
			}
			if existing != nil {
				if err = s.likes.DeleteLike(ctx, existing.ID); err != nil {
					return nil, false, err
				}
			}
		default:
			return nil, false, err
		}
	} else {
		if err := s.likes.DeleteLike(ctx, existing.ID); err != nil {
			return nil, false, err
		}
	}

	if doc.Likes, err = s.likes.GetLikesByTarget(ctx, ref.Kind, targetID); err != nil {
		return nil, false, err
	}
	if doc.Likes == nil {
		doc.Likes = []models.Like{}
	}
	if owner, err := s.users.GetUserByID(ownerID); err == nil {
		doc.User = owner
	}
	return doc, created, nil
}
