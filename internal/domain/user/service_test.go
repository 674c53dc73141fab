package user

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeUserRepo struct {
	users map[string]*User

	eventsCreated map[string]int64
	eventsJoined  map[string]int64
	friends       map[string]int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:         make(map[string]*User),
		eventsCreated: make(map[string]int64),
		eventsJoined:  make(map[string]int64),
		friends:       make(map[string]int64),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) List(ctx context.Context, filter ListFilter) ([]User, error) {
	var users []User
	for _, user := range r.users {
		if filter.Search != ""&& !strings.Contains(strings.ToLower(user.FullName), strings.ToLower(filter.Search)) {
			continue
		}
		users = append(users, *user)
	}
	return users, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *User) error {
	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountEventsCreated(ctx context.Context, userID string) (int64, error) {
	return r.eventsCreated[userID], nil
}

func (r *fakeUserRepo) CountEventsJoined(ctx context.Context, userID string) (int64, error) {
	return r.eventsJoined[userID], nil
}

func (r *fakeUserRepo) CountFriends(ctx context.Context, userID string) (int64, error) {
	return r.friends[userID], nil
}

func TestCreateUserNormalizesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		Email:    "  Alice@Campus.EDU ",
		FullName: "Alice",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Email != "alice@campus.edu" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	cases := []CreateInput{
		{Email: "", FullName: "Alice"},
		{Email: "not-an-email", FullName: "Alice"},
		{Email: "alice@campus.edu", FullName: "   "},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", input, err)
		}
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	if _, err := svc.Create(context.Background(), CreateInput{Email: "alice@campus.edu", FullName: "Alice"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{Email: "ALICE@campus.edu", FullName: "Other"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestGetProfileCounts(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{Email: "alice@campus.edu", FullName: "Alice"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	repo.eventsCreated[created.ID] = 2
	repo.eventsJoined[created.ID] = 5
	repo.friends[created.ID] = 3

	profile, err := svc.GetProfile(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if profile.EventsCreated != 2 || profile.EventsJoined != 5 || profile.Friends != 3 {
		t.Fatalf("unexpected counts: %+v", profile)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{Email: "alice@campus.edu", FullName: "Alice"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	bio := "CS, third year"
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{Bio: &bio})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Email != "alice@campus.edu" || updated.FullName != "Alice" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.Bio == nil || *updated.Bio != bio {
		t.Fatalf("bio not applied: %+v", updated.Bio)
	}

	bad := "no-at-sign"
	if _, err := svc.Update(context.Background(), created.ID, UpdateInput{Email: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetUserMissing(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
