package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avencillado/blognest/internal/platform/db"
)

var _ Repository = (*SQLRepository)(nil)

var ErrNotFound = errors.New("post repository: post not found")

// Repository is the interface for post persistence. Update and Delete are
// scoped to the author; a non-owner gets ErrNotFound rather than a
// permission error.
type Repository interface {
	Create(ctx context.Context, params CreatePostParams) (Post, error)
	FindByAuthor(ctx context.Context, authorID string) ([]Post, error)
	FindAll(ctx context.Context) ([]Post, error)
	Update(ctx context.Context, params UpdatePostParams) (Post, error)
	Delete(ctx context.Context, postID, authorID string) error
}

type SQLRepository struct {
	db db.Executor
}

func NewRepository(db db.Executor) *SQLRepository {
	return &SQLRepository{db: db}
}

type CreatePostParams struct {
	Title    string
	Content  string
	Image    *string
	AuthorID string
}

type UpdatePostParams struct {
	PostID   string
	AuthorID string
	Title    string
	Content  string
	Image    *string
}

const queryPostColumns = "id, title, content, image, likes, author_id, created_at, updated_at"

func scanPost(row *sql.Row) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Image, &p.Likes, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, ErrNotFound
		}
		return p, fmt.Errorf("scan post: %w", err)
	}
	return p, nil
}

func (r *SQLRepository) Create(ctx context.Context, params CreatePostParams) (Post, error) {
	const query = `
INSERT INTO posts (id, title, content, image, author_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + queryPostColumns

	row := r.db.QueryRowContext(ctx, query, uuid.NewString(), params.Title, params.Content, params.Image, params.AuthorID)
	p, err := scanPost(row)
	if err != nil {
		return p, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (r *SQLRepository) FindByAuthor(ctx context.Context, authorID string) ([]Post, error) {
	const query = "SELECT " + queryPostColumns + " FROM posts WHERE author_id = $1 ORDER BY created_at DESC"
	return r.queryPosts(ctx, query, authorID)
}

func (r *SQLRepository) FindAll(ctx context.Context) ([]Post, error) {
	const query = "SELECT " + queryPostColumns + " FROM posts ORDER BY created_at DESC"
	return r.queryPosts(ctx, query)
}

// Update rewrites the mutable fields of the author's own post. The author
// guard in the WHERE clause makes a foreign post indistinguishable from a
// missing one.
func (r *SQLRepository) Update(ctx context.Context, params UpdatePostParams) (Post, error) {
	const query = `
UPDATE posts
SET title = $3, content = $4, image = $5, updated_at = now()
WHERE id = $1 AND author_id = $2
RETURNING ` + queryPostColumns

	row := r.db.QueryRowContext(ctx, query, params.PostID, params.AuthorID, params.Title, params.Content, params.Image)
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return p, ErrNotFound
		}
		return p, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

func (r *SQLRepository) Delete(ctx context.Context, postID, authorID string) error {
	const query = "DELETE FROM posts WHERE id = $1 AND author_id = $2"

	res, err := r.db.ExecContext(ctx, query, postID, authorID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	numRows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if numRows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *SQLRepository) queryPosts(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Image, &p.Likes, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}
