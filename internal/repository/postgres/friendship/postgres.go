package friendship

import (
	"context"
	"errors"

	friendshipdomain "campus-events-go/internal/domain/friendship"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(friendshipdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

// LockPair takes pg_advisory_xact_lock on the pair key. Advisory rather than
// a row lock because the pair may have no friendship rows yet. The lock is
// released automatically at transaction end.
func (r *PostgresRepository) LockPair(ctx context.Context, key int64) error {
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", key).Error
}

func (r *PostgresRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*friendshipdomain.Friendship, error) {
	var friendship friendshipdomain.Friendship
	if err := r.db.WithContext(ctx).First(&friendship, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, friendshipdomain.ErrNotFound
		}
		return nil, err
	}
	return &friendship, nil
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id string) (*friendshipdomain.Friendship, error) {
	var friendship friendshipdomain.Friendship
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&friendship, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, friendshipdomain.ErrNotFound
		}
		return nil, err
	}
	return &friendship, nil
}

func (r *PostgresRepository) FindActiveBetween(ctx context.Context, userID, friendID string) (*friendshipdomain.Friendship, error) {
	var friendship friendshipdomain.Friendship
	err := r.db.WithContext(ctx).
		Where("((user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)) AND status IN ?",
			userID, friendID, friendID, userID,
			[]string{friendshipdomain.StatusPending, friendshipdomain.StatusAccepted}).
		First(&friendship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &friendship, nil
}

func (r *PostgresRepository) Create(ctx context.Context, friendship *friendshipdomain.Friendship) error {
	err := r.db.WithContext(ctx).Create(friendship).Error
	if isUniqueViolation(err) {
		// Partial unique index on the sorted pair; only reachable if a
		// caller bypasses the pair lock.
		return friendshipdomain.ErrAlreadyExists
	}
	return err
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&friendshipdomain.Friendship{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID, status string) ([]friendshipdomain.Friendship, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? OR friend_id = ?", userID, userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var friendships []friendshipdomain.Friendship
	if err := query.Order("created_at desc").Find(&friendships).Error; err != nil {
		return nil, err
	}
	return friendships, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&friendshipdomain.Friendship{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
