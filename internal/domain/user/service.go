package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.FullName)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: full_name is required", ErrInvalidInput)
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     name,
		ProfilePhoto: input.ProfilePhoto,
		Department:   input.Department,
		Bio:          input.Bio,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProfile assembles the user with created/joined event counts and the
// accepted-friend count.
func (s *Service) GetProfile(ctx context.Context, id string) (*Profile, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CountEventsCreated(ctx, id)
	if err != nil {
		return nil, err
	}
	joined, err := s.repo.CountEventsJoined(ctx, id)
	if err != nil {
		return nil, err
	}
	friends, err := s.repo.CountFriends(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:          *user,
		EventsCreated: created,
		EventsJoined:  joined,
		Friends:       friends,
	}, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]User, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	filter.Search = strings.TrimSpace(filter.Search)

	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
		}
		user.Email = email
	}
	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, fmt.Errorf("%w: full_name is required", ErrInvalidInput)
		}
		user.FullName = name
	}
	if input.ProfilePhoto != nil {
		user.ProfilePhoto = input.ProfilePhoto
	}
	if input.Department != nil {
		user.Department = input.Department
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user. Created events, participations, friendships and
// moments go with it via schema cascades.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
