package friendship

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeFriendshipRepo struct {
	mu          sync.Mutex
	friendships map[string]*Friendship
	users       map[string]struct{}
}

func newFakeFriendshipRepo(userIDs ...string) *fakeFriendshipRepo {
	repo := &fakeFriendshipRepo{
		friendships: make(map[string]*Friendship),
		users:       make(map[string]struct{}),
	}
	for _, id := range userIDs {
		repo.users[id] = struct{}{}
	}
	return repo
}

func (r *fakeFriendshipRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r)
}

// LockPair is a no-op: the fake serializes whole transactions, which is
// strictly stronger than the per-pair lock the real repository takes.
func (r *fakeFriendshipRepo) LockPair(ctx context.Context, key int64) error { return nil }

func (r *fakeFriendshipRepo) UserExists(ctx context.Context, userID string) (bool, error) {
	_, ok := r.users[userID]
	return ok, nil
}

func (r *fakeFriendshipRepo) GetByID(ctx context.Context, id string) (*Friendship, error) {
	friendship, ok := r.friendships[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *friendship
	return &copied, nil
}

func (r *fakeFriendshipRepo) GetByIDForUpdate(ctx context.Context, id string) (*Friendship, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeFriendshipRepo) FindActiveBetween(ctx context.Context, userID, friendID string) (*Friendship, error) {
	for _, friendship := range r.friendships {
		samePair := (friendship.UserID == userID && friendship.FriendID == friendID) ||
			(friendship.UserID == friendID && friendship.FriendID == userID)
		if samePair && friendship.Status != StatusRejected {
			copied := *friendship
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeFriendshipRepo) Create(ctx context.Context, friendship *Friendship) error {
	copied := *friendship
	r.friendships[friendship.ID] = &copied
	return nil
}

func (r *fakeFriendshipRepo) UpdateStatus(ctx context.Context, id, status string) error {
	friendship, ok := r.friendships[id]
	if !ok {
		return ErrNotFound
	}
	friendship.Status = status
	return nil
}

func (r *fakeFriendshipRepo) ListByUser(ctx context.Context, userID, status string) ([]Friendship, error) {
	var result []Friendship
	for _, friendship := range r.friendships {
		if friendship.UserID != userID && friendship.FriendID != userID {
			continue
		}
		if status != "" && friendship.Status != status {
			continue
		}
		result = append(result, *friendship)
	}
	return result, nil
}

func (r *fakeFriendshipRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.friendships[id]; !ok {
		return false, nil
	}
	delete(r.friendships, id)
	return true, nil
}

func TestCreateFriendshipSelf(t *testing.T) {
	svc := NewService(newFakeFriendshipRepo("alice"))

	if _, err := svc.Create(context.Background(), "alice", "alice"); !errors.Is(err, ErrSelfFriendship) {
		t.Fatalf("expected ErrSelfFriendship, got %v", err)
	}
}

func TestCreateFriendshipUnknownUser(t *testing.T) {
	svc := NewService(newFakeFriendshipRepo("alice"))

	if _, err := svc.Create(context.Background(), "alice", "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateFriendshipDuplicateEitherDirection(t *testing.T) {
	repo := newFakeFriendshipRepo("alice", "bob")
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "alice", "bob"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for repeat, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "bob", "alice"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for mirrored request, got %v", err)
	}
	if len(repo.friendships) != 1 {
		t.Fatalf("expected a single row, got %d", len(repo.friendships))
	}
}

func TestCreateFriendshipConcurrentDoubleSubmit(t *testing.T) {
	repo := newFakeFriendshipRepo("alice", "bob")
	svc := NewService(repo)

	var wg sync.WaitGroup
	results := make([]error, 2)
	pairs := [][2]string{{"alice", "bob"}, {"bob", "alice"}}
	for i, pair := range pairs {
		wg.Add(1)
		go func(i int, userID, friendID string) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), userID, friendID)
			results[i] = err
		}(i, pair[0], pair[1])
	}
	wg.Wait()

	succeeded := 0
	duplicates := 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrAlreadyExists):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || duplicates != 1 {
		t.Fatalf("expected one winner and one duplicate, got %d and %d", succeeded, duplicates)
	}
	if len(repo.friendships) != 1 {
		t.Fatalf("expected a single row, got %d", len(repo.friendships))
	}
}

func TestCreateFriendshipAfterRejection(t *testing.T) {
	repo := newFakeFriendshipRepo("alice", "bob")
	svc := NewService(repo)

	first, err := svc.Create(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Respond(context.Background(), first.ID, "bob", StatusRejected); err != nil {
		t.Fatalf("respond failed: %v", err)
	}

	second, err := svc.Create(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("expected a fresh request after rejection, got %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("expected a new row, got the old one")
	}
	if second.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", second.Status)
	}
}

func TestRespondFriendshipTerminal(t *testing.T) {
	repo := newFakeFriendshipRepo("alice", "bob")
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	accepted, err := svc.Respond(context.Background(), created.ID, "bob", StatusAccepted)
	if err != nil {
		t.Fatalf("respond failed: %v", err)
	}
	if accepted.Status != StatusAccepted {
		t.Fatalf("expected accepted status, got %q", accepted.Status)
	}

	if _, err := svc.Respond(context.Background(), created.ID, "bob", StatusRejected); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), created.ID)
	if stored.Status != StatusAccepted {
		t.Fatalf("terminal status must not change, got %q", stored.Status)
	}
}

func TestRespondFriendshipNotRecipient(t *testing.T) {
	repo := newFakeFriendshipRepo("alice", "bob")
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Respond(context.Background(), created.ID, "alice", StatusAccepted); !errors.Is(err, ErrNotRecipient) {
		t.Fatalf("expected ErrNotRecipient, got %v", err)
	}
}

func TestRespondFriendshipInvalidStatus(t *testing.T) {
	svc := NewService(newFakeFriendshipRepo("alice", "bob"))

	if _, err := svc.Respond(context.Background(), "any", "bob", StatusPending); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestDeleteFriendshipMissing(t *testing.T) {
	repo := newFakeFriendshipRepo("alice", "bob")
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListByUserStatusFilter(t *testing.T) {
	repo := newFakeFriendshipRepo("alice", "bob", "carol")
	svc := NewService(repo)

	toBob, err := svc.Create(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "carol", "alice"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Respond(context.Background(), toBob.ID, "bob", StatusAccepted); err != nil {
		t.Fatalf("respond failed: %v", err)
	}

	all, err := svc.ListByUser(context.Background(), "alice", "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(all))
	}

	accepted, err := svc.ListByUser(context.Background(), "alice", StatusAccepted)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(accepted) != 1 || accepted[0].ID != toBob.ID {
		t.Fatalf("expected only the accepted row, got %v", accepted)
	}

	if _, err := svc.ListByUser(context.Background(), "alice", "bogus"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestPairKeySymmetric(t *testing.T) {
	if PairKey("alice", "bob") != PairKey("bob", "alice") {
		t.Fatalf("pair key must not depend on argument order")
	}
	if PairKey("alice", "bob") == PairKey("alice", "carol") {
		t.Fatalf("distinct pairs should not share a key")
	}
}
