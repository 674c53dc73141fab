package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultListLimit    = 100
	maxListLimit        = 500
	defaultPreviewCount = 3

	// Matches the avatar fallback the web client expects for members without
	// a profile photo.
	fallbackPhotoPrefix = "https://api.dicebear.com/7.x/avataaars/svg?seed="

	unknownOrganizer = "Unknown"
)

type Service struct {
	repo         Repository
	categories   CategoriesCache
	categoryTTL  time.Duration
	previewCount int
}

func NewService(repo Repository, categories CategoriesCache, categoryTTL time.Duration, previewCount int) *Service {
	if categories == nil {
		categories = noopCategoriesCache{}
	}
	if categoryTTL <= 0 {
		categoryTTL = time.Minute
	}
	if previewCount <= 0 {
		previewCount = defaultPreviewCount
	}
	return &Service{
		repo:         repo,
		categories:   categories,
		categoryTTL:  categoryTTL,
		previewCount: previewCount,
	}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Event, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	input.Location = strings.TrimSpace(input.Location)
	switch {
	case input.Title == "":
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	case input.Category == "":
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	case input.Location == "":
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	case input.StartTime.IsZero():
		return nil, fmt.Errorf("%w: start_time is required", ErrInvalidInput)
	case input.MaxParticipants != nil && *input.MaxParticipants <= 0:
		return nil, fmt.Errorf("%w: max_participants must be positive", ErrInvalidInput)
	}

	exists, err := s.repo.UserExists(ctx, input.CreatorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	event := Event{
		ID:              uuid.NewString(),
		CreatorID:       input.CreatorID,
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		Location:        input.Location,
		ImageURL:        input.ImageURL,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		MaxParticipants: input.MaxParticipants,
		Status:          StatusActive,
	}
	if err := s.repo.Create(ctx, &event); err != nil {
		return nil, err
	}

	s.categories.Invalidate()
	return &event, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

// GetDetail assembles the full event view: every participant, the count and
// the organizer fields. A concurrently deleted organizer degrades to a
// placeholder instead of failing the read.
func (s *Service) GetDetail(ctx context.Context, id string) (*Detail, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, event, 0, "")
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
	filter.Search = strings.TrimSpace(filter.Search)

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	details := make([]Detail, 0, len(events))
	for i := range events {
		detail, err := s.buildDetail(ctx, &events[i], s.previewCount, filter.CurrentUserID)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	if cached, ok := s.categories.Get(); ok {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}

	s.categories.Set(categories, s.categoryTTL)
	return categories, nil
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		event.Title = title
	}
	if input.Description != nil {
		event.Description = input.Description
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
		}
		event.Category = category
	}
	if input.Location != nil {
		location := strings.TrimSpace(*input.Location)
		if location == "" {
			return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
		}
		event.Location = location
	}
	if input.ImageURL != nil {
		event.ImageURL = input.ImageURL
	}
	if input.StartTime != nil {
		event.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		event.EndTime = input.EndTime
	}
	if input.MaxParticipants != nil {
		if *input.MaxParticipants <= 0 {
			return nil, fmt.Errorf("%w: max_participants must be positive", ErrInvalidInput)
		}
		event.MaxParticipants = input.MaxParticipants
	}
	if input.Status != nil {
		switch *input.Status {
		case StatusActive, StatusCancelled, StatusCompleted:
			event.Status = *input.Status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *input.Status)
		}
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.categories.Invalidate()
	return event, nil
}

// Delete removes the event; participant and moment rows go with it via
// schema cascades.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.categories.Invalidate()
	return nil
}

// Join adds the user to the event. The whole check-then-insert sequence runs
// inside one transaction holding a row lock on the event, so concurrent joins
// on the same event serialize: the capacity count each caller sees is the
// committed truth, never a stale snapshot.
func (s *Service) Join(ctx context.Context, eventID, userID string) (*Participant, error) {
	var created Participant
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		event, err := tx.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if event.Status != StatusActive {
			return ErrNotActive
		}

		exists, err := tx.UserExists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUserNotFound
		}

		joined, err := tx.HasJoined(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if joined {
			return ErrAlreadyJoined
		}

		if event.MaxParticipants != nil {
			count, err := tx.CountParticipants(ctx, eventID)
			if err != nil {
				return err
			}
			if count >= int64(*event.MaxParticipants) {
				return ErrEventFull
			}
		}

		created = Participant{
			ID:       uuid.NewString(),
			EventID:  eventID,
			UserID:   userID,
			JoinedAt: time.Now().UTC(),
			Status:   ParticipantJoined,
		}
		return tx.CreateParticipant(ctx, &created)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Leave removes the membership row. A second call finds nothing and returns
// ErrNotJoined; leaving only ever decreases the count, so no event lock is
// needed.
func (s *Service) Leave(ctx context.Context, eventID, userID string) error {
	deleted, err := s.repo.DeleteParticipant(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotJoined
	}
	return nil
}

func (s *Service) ListParticipants(ctx context.Context, eventID string) ([]ParticipantInfo, error) {
	if _, err := s.repo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	participants, err := s.repo.ListParticipants(ctx, eventID, 0)
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []ParticipantInfo{}
	}
	return participants, nil
}

func (s *Service) buildDetail(ctx context.Context, event *Event, previewLimit int, currentUserID string) (*Detail, error) {
	count, err := s.repo.CountParticipants(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListParticipants(ctx, event.ID, previewLimit)
	if err != nil {
		return nil, err
	}
	previews := make([]ParticipantPreview, 0, len(rows))
	for _, row := range rows {
		previews = append(previews, ParticipantPreview{
			UserID: row.UserID,
			Name:   row.Name,
			Photo:  photoOrFallback(row.Photo, row.Name),
		})
	}

	detail := Detail{
		Event:            *event,
		ParticipantCount: count,
		Participants:     previews,
		OrganizerName:    unknownOrganizer,
	}

	organizer, err := s.repo.GetOrganizer(ctx, event.CreatorID)
	if err != nil {
		return nil, err
	}
	if organizer != nil {
		detail.OrganizerName = organizer.Name
		detail.OrganizerPhoto = organizer.Photo
		detail.OrganizerDepartment = organizer.Department
	}

	if currentUserID != "" {
		joined, err := s.repo.HasJoined(ctx, event.ID, currentUserID)
		if err != nil {
			return nil, err
		}
		detail.CurrentUserJoined = joined
	}

	return &detail, nil
}

func photoOrFallback(photo *string, name string) string {
	if photo != nil && *photo != "" {
		return *photo
	}
	return fallbackPhotoPrefix + name
}
