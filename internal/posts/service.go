// Package posts holds the blog post use cases: validation, author
// resolution and the ownership policy for edits and deletes.
package posts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rogerio-castellano/blog-api/internal/apperr"
	"github.com/rogerio-castellano/blog-api/internal/models"
	"github.com/rogerio-castellano/blog-api/internal/repo"
)

type Service struct {
	posts repo.PostRepository
	users repo.UserRepository
	now   func() time.Time
}

func NewService(posts repo.PostRepository, users repo.UserRepository) *Service {
	return &Service{posts: posts, users: users, now: time.Now}
}

func (s *Service) timestamp() string {
	return models.Timestamp(s.now())
}

func (s *Service) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, repo.ErrPostNotFound) {
		return models.Post{}, apperr.NotFound("post not found")
	}
	return post, err
}

func (s *Service) Create(ctx context.Context, authorUsername, title, content string) (models.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return models.Post{}, apperr.Validation("title and content are required")
	}

	author, err := s.resolveUser(ctx, authorUsername)
	if err != nil {
		return models.Post{}, err
	}

	now := s.timestamp()
	return s.posts.Create(ctx, models.Post{
		Title:     title,
		Content:   content,
		AuthorID:  author.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Update applies a partial edit: nil fields keep their stored value.
func (s *Service) Update(ctx context.Context, id int, actingUsername string, title, content *string) (models.Post, error) {
	post, err := s.ownedPost(ctx, id, actingUsername, "you are not allowed to edit this post")
	if err != nil {
		return models.Post{}, err
	}

	if title != nil {
		post.Title = strings.TrimSpace(*title)
		if post.Title == "" {
			return models.Post{}, apperr.Validation("title must not be empty")
		}
	}
	if content != nil {
		post.Content = strings.TrimSpace(*content)
		if post.Content == "" {
			return models.Post{}, apperr.Validation("content must not be empty")
		}
	}
	post.UpdatedAt = models.NextTimestamp(s.now(), post.UpdatedAt)

	updated, err := s.posts.Update(ctx, post)
	if errors.Is(err, repo.ErrPostNotFound) {
		return models.Post{}, apperr.NotFound("post not found")
	}
	return updated, err
}

func (s *Service) Delete(ctx context.Context, id int, actingUsername string) error {
	if _, err := s.ownedPost(ctx, id, actingUsername, "you are not allowed to delete this post"); err != nil {
		return err
	}

	err := s.posts.Delete(ctx, id)
	if errors.Is(err, repo.ErrPostNotFound) {
		return apperr.NotFound("post not found")
	}
	return err
}

// ownedPost loads the post and checks that actingUsername authored it.
// Ownership compares user ids, not display names.
func (s *Service) ownedPost(ctx context.Context, id int, actingUsername, forbiddenMsg string) (models.Post, error) {
	actor, err := s.resolveUser(ctx, actingUsername)
	if err != nil {
		return models.Post{}, err
	}

	post, err := s.Get(ctx, id)
	if err != nil {
		return models.Post{}, err
	}

	if !post.IsOwnedBy(actor.ID) {
		return models.Post{}, apperr.Forbidden(forbiddenMsg)
	}
	return post, nil
}

func (s *Service) resolveUser(ctx context.Context, username string) (models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrUserNotFound) {
		return models.User{}, apperr.Auth("user no longer exists")
	}
	return user, err
}
