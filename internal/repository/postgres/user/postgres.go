package user

import (
	"context"
	"errors"

	userdomain "campus-events-go/internal/domain/user"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *userdomain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if isUniqueViolation(err) {
		return userdomain.ErrEmailTaken
	}
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	var user userdomain.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter userdomain.ListFilter) ([]userdomain.User, error) {
	query := r.db.WithContext(ctx).Model(&userdomain.User{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ? OR department ILIKE ?", pattern, pattern, pattern)
	}

	var users []userdomain.User
	if err := query.
		Order("created_at asc").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *userdomain.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	if isUniqueViolation(err) {
		return userdomain.ErrEmailTaken
	}
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&userdomain.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userdomain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CountEventsCreated(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("events").
		Where("creator_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) CountEventsJoined(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("event_participants").
		Where("user_id = ? AND status = ?", userID, "joined").
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) CountFriends(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("friendships").
		Where("(user_id = ? OR friend_id = ?) AND status = ?", userID, userID, "accepted").
		Count(&count).Error
	return count, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
