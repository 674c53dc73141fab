package moment

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeMomentRepo struct {
	moments map[string]*Moment
	users   map[string]struct{}
	events  map[string]*EventContext

	// participants holds "eventID/userID" keys for any participation,
	// past or present.
	participants map[string]struct{}
}

func newFakeMomentRepo() *fakeMomentRepo {
	return &fakeMomentRepo{
		moments:      make(map[string]*Moment),
		users:        make(map[string]struct{}),
		events:       make(map[string]*EventContext),
		participants: make(map[string]struct{}),
	}
}

func (r *fakeMomentRepo) Create(ctx context.Context, moment *Moment) error {
	copied := *moment
	r.moments[moment.ID] = &copied
	return nil
}

func (r *fakeMomentRepo) GetByID(ctx context.Context, id string) (*Moment, error) {
	moment, ok := r.moments[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *moment
	return &copied, nil
}

func (r *fakeMomentRepo) List(ctx context.Context, filter ListFilter) ([]Moment, error) {
	var moments []Moment
	for _, moment := range r.moments {
		if filter.UserID != "" && moment.UserID != filter.UserID {
			continue
		}
		if filter.EventID != "" && moment.EventID != filter.EventID {
			continue
		}
		moments = append(moments, *moment)
	}
	return moments, nil
}

func (r *fakeMomentRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.moments[id]; !ok {
		return false, nil
	}
	delete(r.moments, id)
	return true, nil
}

func (r *fakeMomentRepo) UserExists(ctx context.Context, userID string) (bool, error) {
	_, ok := r.users[userID]
	return ok, nil
}

func (r *fakeMomentRepo) EventExists(ctx context.Context, eventID string) (bool, error) {
	_, ok := r.events[eventID]
	return ok, nil
}

func (r *fakeMomentRepo) HasParticipated(ctx context.Context, eventID, userID string) (bool, error) {
	_, ok := r.participants[eventID+"/"+userID]
	return ok, nil
}

func (r *fakeMomentRepo) GetEventContext(ctx context.Context, eventID string) (*EventContext, error) {
	info, ok := r.events[eventID]
	if !ok {
		return nil, nil
	}
	copied := *info
	return &copied, nil
}

func (r *fakeMomentRepo) addEvent(id, title string) {
	r.events[id] = &EventContext{Title: title, Location: "Main campus", StartTime: time.Now()}
}

func TestCreateMomentRequiresParticipation(t *testing.T) {
	repo := newFakeMomentRepo()
	repo.users["alice"] = struct{}{}
	repo.addEvent("event-1", "Spring picnic")
	svc := NewService(repo)

	input := CreateInput{UserID: "alice", EventID: "event-1", PhotoURL: "https://cdn/p.jpg"}
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}

	repo.participants["event-1/alice"] = struct{}{}
	created, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" || created.PhotoURL != input.PhotoURL {
		t.Fatalf("unexpected moment: %+v", created)
	}
}

func TestCreateMomentValidation(t *testing.T) {
	repo := newFakeMomentRepo()
	repo.users["alice"] = struct{}{}
	repo.addEvent("event-1", "Spring picnic")
	repo.participants["event-1/alice"] = struct{}{}
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), CreateInput{UserID: "alice", EventID: "event-1", PhotoURL: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{UserID: "ghost", EventID: "event-1", PhotoURL: "x"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{UserID: "alice", EventID: "missing", PhotoURL: "x"}); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestGetMomentEventContext(t *testing.T) {
	repo := newFakeMomentRepo()
	repo.users["alice"] = struct{}{}
	repo.addEvent("event-1", "Spring picnic")
	repo.participants["event-1/alice"] = struct{}{}
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{UserID: "alice", EventID: "event-1", PhotoURL: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	detail, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if detail.EventTitle != "Spring picnic" || detail.EventStartTime == nil {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	// The moment survives the event only as a placeholder.
	delete(repo.events, "event-1")
	detail, err = svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if detail.EventTitle != "Unknown event" || detail.EventStartTime != nil {
		t.Fatalf("expected placeholder context, got %+v", detail)
	}
}

func TestListMomentsFilter(t *testing.T) {
	repo := newFakeMomentRepo()
	for _, id := range []string{"alice", "bob"} {
		repo.users[id] = struct{}{}
	}
	repo.addEvent("event-1", "Spring picnic")
	repo.addEvent("event-2", "Hackathon")
	for _, key := range []string{"event-1/alice", "event-1/bob", "event-2/alice"} {
		repo.participants[key] = struct{}{}
	}
	svc := NewService(repo)

	for _, pair := range [][2]string{{"alice", "event-1"}, {"bob", "event-1"}, {"alice", "event-2"}} {
		if _, err := svc.Create(context.Background(), CreateInput{UserID: pair[0], EventID: pair[1], PhotoURL: "x"}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	byEvent, err := svc.List(context.Background(), ListFilter{EventID: "event-1"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byEvent) != 2 {
		t.Fatalf("expected 2 moments for event-1, got %d", len(byEvent))
	}

	byUser, err := svc.List(context.Background(), ListFilter{UserID: "alice"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byUser) != 2 {
		t.Fatalf("expected 2 moments for alice, got %d", len(byUser))
	}
}

func TestDeleteMomentMissing(t *testing.T) {
	svc := NewService(newFakeMomentRepo())

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
