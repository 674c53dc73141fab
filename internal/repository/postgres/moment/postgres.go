package moment

import (
	"context"
	"errors"

	momentdomain "campus-events-go/internal/domain/moment"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, moment *momentdomain.Moment) error {
	return r.db.WithContext(ctx).Create(moment).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*momentdomain.Moment, error) {
	var moment momentdomain.Moment
	if err := r.db.WithContext(ctx).First(&moment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, momentdomain.ErrNotFound
		}
		return nil, err
	}
	return &moment, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter momentdomain.ListFilter) ([]momentdomain.Moment, error) {
	query := r.db.WithContext(ctx).Model(&momentdomain.Moment{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.EventID != "" {
		query = query.Where("event_id = ?", filter.EventID)
	}

	var moments []momentdomain.Moment
	if err := query.
		Order("created_at desc").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&moments).Error; err != nil {
		return nil, err
	}
	return moments, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&momentdomain.Moment{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) EventExists(ctx context.Context, eventID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("events").
		Where("id = ?", eventID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) HasParticipated(ctx context.Context, eventID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("event_participants").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) GetEventContext(ctx context.Context, eventID string) (*momentdomain.EventContext, error) {
	var info momentdomain.EventContext
	err := r.db.WithContext(ctx).
		Table("events").
		Select("title, location, start_time").
		Where("id = ?", eventID).
		Take(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}
