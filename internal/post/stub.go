package post

import (
	"context"
	"errors"
)

type StubService struct {
	CreatePostFunc   func(ctx context.Context, params CreatePostParams) (Post, error)
	ListByAuthorFunc func(ctx context.Context, authorID string) ([]Post, error)
	ListAllFunc      func(ctx context.Context) ([]Post, error)
	UpdatePostFunc   func(ctx context.Context, params UpdatePostParams) (Post, error)
	DeletePostFunc   func(ctx context.Context, postID, authorID string) error
}

var _ Service = (*StubService)(nil)

func (s *StubService) CreatePost(ctx context.Context, params CreatePostParams) (Post, error) {
	if s.CreatePostFunc == nil {
		return Post{}, errors.New("CreatePost not implemented by stub")
	}
	return s.CreatePostFunc(ctx, params)
}

func (s *StubService) ListByAuthor(ctx context.Context, authorID string) ([]Post, error) {
	if s.ListByAuthorFunc == nil {
		return nil, errors.New("ListByAuthor not implemented by stub")
	}
	return s.ListByAuthorFunc(ctx, authorID)
}

func (s *StubService) ListAll(ctx context.Context) ([]Post, error) {
	if s.ListAllFunc == nil {
		return nil, errors.New("ListAll not implemented by stub")
	}
	return s.ListAllFunc(ctx)
}

func (s *StubService) UpdatePost(ctx context.Context, params UpdatePostParams) (Post, error) {
	if s.UpdatePostFunc == nil {
		return Post{}, errors.New("UpdatePost not implemented by stub")
	}
	return s.UpdatePostFunc(ctx, params)
}

func (s *StubService) DeletePost(ctx context.Context, postID, authorID string) error {
	if s.DeletePostFunc == nil {
		return errors.New("DeletePost not implemented by stub")
	}
	return s.DeletePostFunc(ctx, postID, authorID)
}
