package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jkask/blabber/backend/internal/apperr"
	"github.com/jkask/blabber/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// In-memory repository implementations. They back the service and handler
// tests and mirror the store semantics the Mongo/Postgres implementations
// rely on, including the unique constraint on the like tuple.

// MemoryUserRepository implements UserRepository in memory
type MemoryUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]models.User
}

// NewMemoryUserRepository creates an empty MemoryUserRepository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{nextID: 1, users: make(map[uint]models.User)}
}

func (r *MemoryUserRepository) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Name == user.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetUserByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryUserRepository) GetUserByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryUserRepository) GetUserByName(name string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Name == name {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryUserRepository) GetUsers() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *MemoryUserRepository) DeleteUser(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// MemoryPostRepository implements PostRepository in memory
type MemoryPostRepository struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]models.Post
}

// NewMemoryPostRepository creates an empty MemoryPostRepository
func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{posts: make(map[primitive.ObjectID]models.Post)}
}

func (r *MemoryPostRepository) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	r.posts[post.ID] = *post
	return nil
}

func (r *MemoryPostRepository) GetPostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		return &p, nil
	}
	return nil, apperr.ErrPostNotFound
}

func (r *MemoryPostRepository) GetPostsByUserID(_ context.Context, userID uint) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var posts []models.Post
	for _, p := range r.posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (r *MemoryPostRepository) SearchPosts(_ context.Context, q models.PostSearchQuery) ([]models.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(q.Q)
	var matches []models.Post
	for _, p := range r.posts {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Content), needle) {
			matches = append(matches, p)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !q.SortAscending() {
			a, b = b, a
		}
		if q.SortField() == "title" {
			return a.Title < b.Title
		}
		return a.UpdatedAt.Before(b.UpdatedAt)
	})
	total := int64(len(matches))
	start := q.Skip()
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matches[start:end], total, nil
}

func (r *MemoryPostRepository) UpdatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return apperr.ErrPostNotFound
	}
	post.UpdatedAt = time.Now()
	r.posts[post.ID] = *post
	return nil
}

func (r *MemoryPostRepository) DeletePost(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return apperr.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

// MemoryCommentRepository implements CommentRepository in memory
type MemoryCommentRepository struct {
	mu       sync.Mutex
	comments map[primitive.ObjectID]models.Comment
}

// NewMemoryCommentRepository creates an empty MemoryCommentRepository
func NewMemoryCommentRepository() *MemoryCommentRepository {
	return &MemoryCommentRepository{comments: make(map[primitive.ObjectID]models.Comment)}
}

func (r *MemoryCommentRepository) CreateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	r.comments[comment.ID] = *comment
	return nil
}

func (r *MemoryCommentRepository) GetCommentByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.comments[id]; ok {
		return &c, nil
	}
	return nil, apperr.ErrCommentNotFound
}

func (r *MemoryCommentRepository) GetCommentsByPostID(_ context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var comments []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (r *MemoryCommentRepository) GetCommentsByUserID(_ context.Context, userID uint) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var comments []models.Comment
	for _, c := range r.comments {
		if c.UserID == userID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (r *MemoryCommentRepository) UpdateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[comment.ID]; !ok {
		return apperr.ErrCommentNotFound
	}
	comment.UpdatedAt = time.Now()
	r.comments[comment.ID] = *comment
	return nil
}

func (r *MemoryCommentRepository) DeleteComment(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return apperr.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

// MemoryLikeRepository implements LikeRepository in memory, enforcing the
// same (user, kind, document) uniqueness the Mongo index provides.
type MemoryLikeRepository struct {
	mu    sync.Mutex
	likes map[primitive.ObjectID]models.Like
}

// NewMemoryLikeRepository creates an empty MemoryLikeRepository
func NewMemoryLikeRepository() *MemoryLikeRepository {
	return &MemoryLikeRepository{likes: make(map[primitive.ObjectID]models.Like)}
}

func (r *MemoryLikeRepository) CreateLike(_ context.Context, like *models.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.UserID == like.UserID && l.OnModel == like.OnModel && l.OnDocument == like.OnDocument {
			return ErrDuplicateLike
		}
	}
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	r.likes[like.ID] = *like
	return nil
}

func (r *MemoryLikeRepository) DeleteLike(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.likes, id)
	return nil
}

func (r *MemoryLikeRepository) FindLike(_ context.Context, userID uint, kind models.TargetKind, document primitive.ObjectID, receiverID uint) (*models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.UserID == userID && l.OnModel == kind && l.OnDocument == document && l.ReceiverID == receiverID {
			l := l
			return &l, nil
		}
	}
	return nil, nil
}

func (r *MemoryLikeRepository) GetLikesByTarget(_ context.Context, kind models.TargetKind, document primitive.ObjectID) ([]models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var likes []models.Like
	for _, l := range r.likes {
		if l.OnModel == kind && l.OnDocument == document {
			likes = append(likes, l)
		}
	}
	return likes, nil
}

func (r *MemoryLikeRepository) DeleteLikesByTarget(_ context.Context, kind models.TargetKind, document primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.likes {
		if l.OnModel == kind && l.OnDocument == document {
			delete(r.likes, id)
		}
	}
	return nil
}

func (r *MemoryLikeRepository) DeleteLikesByUserID(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.likes {
		if l.UserID == userID {
			delete(r.likes, id)
		}
	}
	return nil
}
