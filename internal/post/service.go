package post

import (
	"context"
	"fmt"
)

var _ Service = (*service)(nil)

// Service exposes post operations. Every mutating operation carries the
// acting author's ID so ownership is enforced at the storage layer.
type Service interface {
	CreatePost(ctx context.Context, params CreatePostParams) (Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]Post, error)
	ListAll(ctx context.Context) ([]Post, error)
	UpdatePost(ctx context.Context, params UpdatePostParams) (Post, error)
	DeletePost(ctx context.Context, postID, authorID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreatePost(ctx context.Context, params CreatePostParams) (Post, error) {
	p, err := s.repo.Create(ctx, params)
	if err != nil {
		return p, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (s *service) ListByAuthor(ctx context.Context, authorID string) ([]Post, error) {
	posts, err := s.repo.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return posts, nil
}

func (s *service) ListAll(ctx context.Context) ([]Post, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all posts: %w", err)
	}
	return posts, nil
}

func (s *service) UpdatePost(ctx context.Context, params UpdatePostParams) (Post, error) {
	p, err := s.repo.Update(ctx, params)
	if err != nil {
		return p, err
	}
	return p, nil
}

func (s *service) DeletePost(ctx context.Context, postID, authorID string) error {
	return s.repo.Delete(ctx, postID, authorID)
}
