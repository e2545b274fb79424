package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/rogerio-castellano/blog-api/internal/models"
)

// InMemoryPostRepository is an in-memory implementation of PostRepository.
// Author usernames are resolved through the user repository it was built
// with, mirroring the SQL join.
type InMemoryPostRepository struct {
	mu     sync.RWMutex
	posts  []models.Post
	nextID int
	users  *InMemoryUserRepository
}

// NewInMemoryPostRepository creates a new instance of InMemoryPostRepository.
func NewInMemoryPostRepository(users *InMemoryUserRepository) *InMemoryPostRepository {
	return &InMemoryPostRepository{
		posts:  []models.Post{},
		nextID: 1,
		users:  users,
	}
}

func (r *InMemoryPostRepository) withAuthor(p models.Post) models.Post {
	if name, ok := r.users.usernameByID(p.AuthorID); ok {
		p.Author = name
	}
	return p
}

// GetAll returns every post, newest first.
func (r *InMemoryPostRepository) GetAll(_ context.Context) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]models.Post, len(r.posts))
	for i, p := range r.posts {
		posts[i] = r.withAuthor(p)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CreatedAt != posts[j].CreatedAt {
			return posts[i].CreatedAt > posts[j].CreatedAt
		}
		return posts[i].ID > posts[j].ID
	})
	return posts, nil
}

// GetByID retrieves a post by its ID.
func (r *InMemoryPostRepository) GetByID(_ context.Context, id int) (models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.posts {
		if p.ID == id {
			return r.withAuthor(p), nil
		}
	}
	return models.Post{}, ErrPostNotFound
}

// Create adds a new post to the repository.
func (r *InMemoryPostRepository) Create(_ context.Context, post models.Post) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = r.nextID
	r.nextID++
	r.posts = append(r.posts, post)
	return r.withAuthor(post), nil
}

// Update modifies the title, content and updated_at of an existing post.
func (r *InMemoryPostRepository) Update(_ context.Context, post models.Post) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.posts {
		if p.ID == post.ID {
			p.Title = post.Title
			p.Content = post.Content
			p.UpdatedAt = post.UpdatedAt
			r.posts[i] = p
			return r.withAuthor(p), nil
		}
	}
	return models.Post{}, ErrPostNotFound
}

// Delete removes a post from the repository by its ID.
func (r *InMemoryPostRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return ErrPostNotFound
}
