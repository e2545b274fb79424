package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/blog-api/internal/models"
)

// ErrPostNotFound is returned when no post has the requested id.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the persistence operations for posts. Every read
// returns posts joined with the author's username.
type PostRepository interface {
	// GetAll returns every post, newest first.
	GetAll(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id int) (models.Post, error)
	Create(ctx context.Context, post models.Post) (models.Post, error)
	// Update overwrites title, content and updated_at.
	Update(ctx context.Context, post models.Post) (models.Post, error)
	Delete(ctx context.Context, id int) error
}

const selectPostColumns = `
	SELECT posts.id, posts.title, posts.content, posts.author_id, posts.created_at, posts.updated_at, users.username
	FROM posts
	JOIN users ON posts.author_id = users.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt, &p.Author)
	return p, err
}
