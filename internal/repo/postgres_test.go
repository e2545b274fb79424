package repo

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogerio-castellano/blog-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

var postColumns = []string{"id", "title", "content", "author_id", "created_at", "updated_at", "username"}

func TestPostgresUserRepository_GetByUsername(t *testing.T) {
	db, mock := newMock(t)
	r := NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password, created_at FROM users WHERE username = $1`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at"}).
			AddRow(1, "alice", "hash", "2026-10-15T10:00:00Z"))

	u, err := r.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: 1, Username: "alice", PasswordHash: "hash", CreatedAt: "2026-10-15T10:00:00Z"}, u)
}

func TestPostgresUserRepository_GetByUsername_NotFound(t *testing.T) {
	db, mock := newMock(t)
	r := NewPostgresUserRepository(db)

	mock.ExpectQuery(`SELECT id, username, password, created_at FROM users`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := r.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPostgresUserRepository_CreateUser(t *testing.T) {
	db, mock := newMock(t)
	r := NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username, password, created_at) VALUES ($1, $2, $3) RETURNING id`)).
		WithArgs("alice", "hash", "2026-10-15T10:00:00Z").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	u, err := r.CreateUser(context.Background(), models.User{Username: "alice", PasswordHash: "hash", CreatedAt: "2026-10-15T10:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, 7, u.ID)
}

func TestPostgresUserRepository_CreateUser_UniqueViolation(t *testing.T) {
	db, mock := newMock(t)
	r := NewPostgresUserRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := r.CreateUser(context.Background(), models.User{Username: "alice", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)
}

func TestPostgresPostRepository_GetAll(t *testing.T) {
	db, mock := newMock(t)
	r := NewPostgresPostRepository(db)

	mock.ExpectQuery(`ORDER BY posts.created_at DESC, posts.id DESC`).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(2, "Second", "b", 1, "2026-10-15T10:00:01Z", "2026-10-15T10:00:01Z", "alice").
			AddRow(1, "First", "a", 1, "2026-10-15T10:00:00Z", "2026-10-15T10:00:00Z", "alice"))

	posts, err := r.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Second", posts[0].Title)
	assert.Equal(t, "alice", posts[1].Author)
}

func TestPostgresPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	r := NewPostgresPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE posts.id = $1`)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(postColumns))

	_, err := r.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostgresPostRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	r := NewPostgresPostRepository(db)
	ts := "2026-10-15T10:00:00Z"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts (title, content, author_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`)).
		WithArgs("Hi", "World", 1, ts, ts).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE posts.id = $1`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(postColumns).AddRow(5, "Hi", "World", 1, ts, ts, "alice"))
	mock.ExpectCommit()

	p, err := r.Create(context.Background(), models.Post{Title: "Hi", Content: "World", AuthorID: 1, CreatedAt: ts, UpdatedAt: ts})
	require.NoError(t, err)
	assert.Equal(t, 5, p.ID)
	assert.Equal(t, "alice", p.Author)
}

func TestPostgresPostRepository_Update_NotFoundRollsBack(t *testing.T) {
	db, mock := newMock(t)
	r := NewPostgresPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE posts SET title = $1, content = $2, updated_at = $3 WHERE id = $4`)).
		WithArgs("t", "c", "2026-10-15T10:00:00Z", 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := r.Update(context.Background(), models.Post{ID: 3, Title: "t", Content: "c", UpdatedAt: "2026-10-15T10:00:00Z"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostgresPostRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	r := NewPostgresPostRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE id = $1`)).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE id = $1`)).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, r.Delete(context.Background(), 4))
	assert.ErrorIs(t, r.Delete(context.Background(), 4), ErrPostNotFound)
}
