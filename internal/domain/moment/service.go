package moment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500

	unknownEventTitle = "Unknown event"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create appends a moment. The author must hold a participant row for the
// event, active or left; moments from non-participants are rejected.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Moment, error) {
	input.PhotoURL = strings.TrimSpace(input.PhotoURL)
	if input.PhotoURL == "" {
		return nil, fmt.Errorf("%w: photo_url is required", ErrInvalidInput)
	}

	exists, err := s.repo.UserExists(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	exists, err = s.repo.EventExists(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEventNotFound
	}

	participated, err := s.repo.HasParticipated(ctx, input.EventID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !participated {
		return nil, ErrNotParticipant
	}

	moment := Moment{
		ID:       uuid.NewString(),
		UserID:   input.UserID,
		EventID:  input.EventID,
		PhotoURL: input.PhotoURL,
		Caption:  input.Caption,
	}
	if err := s.repo.Create(ctx, &moment); err != nil {
		return nil, err
	}
	return &moment, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	moment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withEventContext(ctx, moment)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Detail, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	moments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	details := make([]Detail, 0, len(moments))
	for i := range moments {
		detail, err := s.withEventContext(ctx, &moments[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) withEventContext(ctx context.Context, moment *Moment) (*Detail, error) {
	detail := Detail{
		Moment:     *moment,
		EventTitle: unknownEventTitle,
	}

	info, err := s.repo.GetEventContext(ctx, moment.EventID)
	if err != nil {
		return nil, err
	}
	if info != nil {
		start := info.StartTime
		detail.EventTitle = info.Title
		detail.EventLocation = info.Location
		detail.EventStartTime = &start
	}

	return &detail, nil
}
