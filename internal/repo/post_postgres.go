package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/blog-api/internal/db"
	"github.com/rogerio-castellano/blog-api/internal/models"
)

type PostgresPostRepository struct {
	db *sql.DB
}

func NewPostgresPostRepository(db *sql.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	query := selectPostColumns + ` ORDER BY posts.created_at DESC, posts.id DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

func (r *PostgresPostRepository) GetByID(ctx context.Context, id int) (models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return getPostgresPost(ctx, r.db, id)
}

func (r *PostgresPostRepository) Create(ctx context.Context, p models.Post) (models.Post, error) {
	query := `INSERT INTO posts (title, content, author_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var created models.Post
	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx db.DBTX) error {
		var id int
		if err := tx.QueryRowContext(ctx, query, p.Title, p.Content, p.AuthorID, p.CreatedAt, p.UpdatedAt).Scan(&id); err != nil {
			return err
		}
		var err error
		created, err = getPostgresPost(ctx, tx, id)
		return err
	})
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to create post: %w", err)
	}
	return created, nil
}

func (r *PostgresPostRepository) Update(ctx context.Context, p models.Post) (models.Post, error) {
	query := `UPDATE posts SET title = $1, content = $2, updated_at = $3 WHERE id = $4`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var updated models.Post
	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx db.DBTX) error {
		res, err := tx.ExecContext(ctx, query, p.Title, p.Content, p.UpdatedAt, p.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrPostNotFound
		}
		updated, err = getPostgresPost(ctx, tx, p.ID)
		return err
	})
	if errors.Is(err, ErrPostNotFound) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to update post %d: %w", p.ID, err)
	}
	return updated, nil
}

func (r *PostgresPostRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM posts WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func getPostgresPost(ctx context.Context, q db.DBTX, id int) (models.Post, error) {
	p, err := scanPost(q.QueryRowContext(ctx, selectPostColumns+` WHERE posts.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to get post %d: %w", id, err)
	}
	return p, nil
}
