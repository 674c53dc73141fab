package event

import (
	"context"
	"errors"

	eventdomain "campus-events-go/internal/domain/event"
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

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(eventdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, event *eventdomain.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*eventdomain.Event, error) {
	var event eventdomain.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventdomain.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// GetByIDForUpdate issues SELECT ... FOR UPDATE on the event row. Inside a
// transaction this blocks every other FOR UPDATE reader of the same event
// until commit or rollback, which is what serializes concurrent joins.
func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id string) (*eventdomain.Event, error) {
	var event eventdomain.Event
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventdomain.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter eventdomain.ListFilter) ([]eventdomain.Event, error) {
	query := r.db.WithContext(ctx).Model(&eventdomain.Event{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.CreatorID != "" {
		query = query.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR location ILIKE ?", pattern, pattern, pattern)
	}

	var events []eventdomain.Event
	if err := query.
		Order("start_time asc").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&eventdomain.Event{}).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PostgresRepository) Update(ctx context.Context, event *eventdomain.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&eventdomain.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return eventdomain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) GetOrganizer(ctx context.Context, userID string) (*eventdomain.Organizer, error) {
	type organizerRow struct {
		FullName     string  `gorm:"column:full_name"`
		ProfilePhoto *string `gorm:"column:profile_photo"`
		Department   *string `gorm:"column:department"`
	}

	var row organizerRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("full_name, profile_photo, department").
		Where("id = ?", userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &eventdomain.Organizer{
		Name:       row.FullName,
		Photo:      row.ProfilePhoto,
		Department: row.Department,
	}, nil
}

func (r *PostgresRepository) CreateParticipant(ctx context.Context, participant *eventdomain.Participant) error {
	err := r.db.WithContext(ctx).Create(participant).Error
	if isUniqueViolation(err) {
		// Partial unique index on (event_id, user_id) WHERE status='joined';
		// only reachable if a caller bypasses the event lock.
		return eventdomain.ErrAlreadyJoined
	}
	return err
}

func (r *PostgresRepository) DeleteParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&eventdomain.Participant{}, "event_id = ? AND user_id = ?", eventID, userID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) HasJoined(ctx context.Context, eventID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&eventdomain.Participant{}).
		Where("event_id = ? AND user_id = ? AND status = ?", eventID, userID, eventdomain.ParticipantJoined).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) CountParticipants(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&eventdomain.Participant{}).
		Where("event_id = ? AND status = ?", eventID, eventdomain.ParticipantJoined).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) ListParticipants(ctx context.Context, eventID string, limit int) ([]eventdomain.ParticipantInfo, error) {
	type participantRow struct {
		eventdomain.Participant
		FullName     string  `gorm:"column:full_name"`
		ProfilePhoto *string `gorm:"column:profile_photo"`
	}

	query := r.db.WithContext(ctx).
		Table("event_participants").
		Select("event_participants.*, users.full_name, users.profile_photo").
		Joins("left join users on users.id = event_participants.user_id").
		Where("event_participants.event_id = ?", eventID).
		Order("event_participants.joined_at asc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []participantRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	participants := make([]eventdomain.ParticipantInfo, 0, len(rows))
	for _, row := range rows {
		participants = append(participants, eventdomain.ParticipantInfo{
			Participant: row.Participant,
			Name:        row.FullName,
			Photo:       row.ProfilePhoto,
		})
	}
	return participants, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
