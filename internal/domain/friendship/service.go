package friendship

import (
	"context"
	"hash/fnv"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// PairKey maps an unordered user pair onto a 64-bit lock key. Both orderings
// of the same two ids hash identically, so (A,B) and (B,A) requests contend
// for the same lock.
func PairKey(a, b string) int64 {
	if b < a {
		a, b = b, a
	}
	h := fnv.New64a()
	h.Write([]byte(a))
	h.Write([]byte{0})
	h.Write([]byte(b))
	return int64(h.Sum64())
}

// Create inserts a pending request from userID to friendID. The pair lock
// makes the existence check and the insert atomic against a concurrent
// request from either side.
func (s *Service) Create(ctx context.Context, userID, friendID string) (*Friendship, error) {
	if userID == friendID {
		return nil, ErrSelfFriendship
	}

	var created Friendship
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.LockPair(ctx, PairKey(userID, friendID)); err != nil {
			return err
		}

		for _, id := range []string{userID, friendID} {
			exists, err := tx.UserExists(ctx, id)
			if err != nil {
				return err
			}
			if !exists {
				return ErrUserNotFound
			}
		}

		existing, err := tx.FindActiveBetween(ctx, userID, friendID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyExists
		}

		created = Friendship{
			ID:       uuid.NewString(),
			UserID:   userID,
			FriendID: friendID,
			Status:   StatusPending,
		}
		return tx.Create(ctx, &created)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Respond moves a pending request to accepted or rejected. Both outcomes are
// terminal: any later respond on the same row fails with
// ErrInvalidTransition. When actorID is supplied it must be the recipient.
func (s *Service) Respond(ctx context.Context, id, actorID, status string) (*Friendship, error) {
	if status != StatusAccepted && status != StatusRejected {
		return nil, ErrInvalidStatus
	}

	var updated Friendship
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if actorID != "" && actorID != current.FriendID {
			return ErrNotRecipient
		}
		if current.Status != StatusPending {
			return ErrInvalidTransition
		}

		if err := tx.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		updated = *current
		updated.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) ListByUser(ctx context.Context, userID, status string) ([]Friendship, error) {
	if status != "" && !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	friendships, err := s.repo.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	if friendships == nil {
		friendships = []Friendship{}
	}
	return friendships, nil
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
