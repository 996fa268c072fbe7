package user

import (
	"context"
	"fmt"
)

// Service exposes account lookups and creation to other modules.
type Service interface {
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	FindUser(ctx context.Context, userID string) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
}

var _ Service = (*service)(nil)

type service struct {
	repo Repository
}

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (s *service) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	params.Email = NormalizeEmail(params.Email)
	u, err := s.repo.Create(ctx, params)
	if err != nil {
		return u, fmt.Errorf("create user %q: %w", params.Email, err)
	}
	return u, nil
}

func (s *service) FindUser(ctx context.Context, userID string) (*User, error) {
	u, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user with id %s: %w", userID, err)
	}
	return u, nil
}

func (s *service) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	email = NormalizeEmail(email)
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}
