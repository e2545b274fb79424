package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rogerio-castellano/blog-api/internal/apperr"
	"github.com/rogerio-castellano/blog-api/internal/models"
	"github.com/rogerio-castellano/blog-api/internal/repo"
)

const minPasswordLength = 4

// Result is what register and login hand back to the client.
type Result struct {
	Token    string
	Username string
}

type Service struct {
	users      repo.UserRepository
	tokens     *TokenIssuer
	bcryptCost int
	now        func() time.Time
}

func NewService(users repo.UserRepository, tokens *TokenIssuer, bcryptCost int) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

func (s *Service) Register(ctx context.Context, username, password string) (Result, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return Result{}, apperr.Validation("username and password are required")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return Result{}, apperr.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	// Fast path only; the unique constraint below is the real guard.
	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return Result{}, apperr.Conflict("username already exists")
	case !errors.Is(err, repo.ErrUserNotFound):
		return Result{}, err
	}

	hashed, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		if isPasswordTooLong(err) {
			return Result{}, apperr.Validation("password must be at most 72 bytes")
		}
		return Result{}, fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.users.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: hashed,
		CreatedAt:    models.Timestamp(s.now()),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			return Result{}, apperr.Conflict("username already exists")
		}
		return Result{}, err
	}

	return s.issue(username)
}

func (s *Service) Login(ctx context.Context, username, password string) (Result, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return Result{}, apperr.Auth("invalid username or password")
		}
		return Result{}, err
	}

	if !CheckPassword(user.PasswordHash, password) {
		return Result{}, apperr.Auth("invalid username or password")
	}

	return s.issue(user.Username)
}

// Verify checks a bearer token and returns the username it was issued to.
func (s *Service) Verify(token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", apperr.Auth("missing authorization token")
	}
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return "", apperr.Auth("invalid or expired token")
	}
	return claims.Username, nil
}

func (s *Service) issue(username string) (Result, error) {
	token, err := s.tokens.GenerateToken(username)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return Result{Token: token, Username: username}, nil
}
