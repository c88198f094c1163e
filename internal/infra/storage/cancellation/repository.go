package cancellation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingService/pkg/psqlbuilder"
)

const tableName = "session_cancellations"

// Repository журнал отмен и неявок. Записи только добавляются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отмен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись аудита
func (r *Repository) Create(ctx context.Context, c *domain.SessionCancellation) (*domain.SessionCancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"booking_id",
			"client_id",
			"trainer_id",
			"cancelled_by",
			"reason",
			"is_emergency",
			"notice_hours",
			"fee_applied",
			"fee_amount",
			"fee_waived",
			"waiver_reason",
			"policy_applied",
		).
		Values(
			c.BookingID,
			c.ClientID,
			c.TrainerID,
			c.CancelledBy,
			c.Reason,
			c.IsEmergency,
			c.NoticeHours,
			c.FeeApplied,
			c.FeeAmount,
			c.FeeWaived,
			c.WaiverReason,
			c.PolicyApplied,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	c.CreatedAt = createdAt.Time

	return c, nil
}

// GetByBookingID последняя запись об отмене или неявке сессии
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.SessionCancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"client_id",
		"trainer_id",
		"cancelled_by",
		"reason",
		"is_emergency",
		"notice_hours",
		"fee_applied",
		"fee_amount",
		"fee_waived",
		"waiver_reason",
		"policy_applied",
		"created_at",
	).
		From(tableName).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		c         domain.SessionCancellation
		createdAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.BookingID,
		&c.ClientID,
		&c.TrainerID,
		&c.CancelledBy,
		&c.Reason,
		&c.IsEmergency,
		&c.NoticeHours,
		&c.FeeApplied,
		&c.FeeAmount,
		&c.FeeWaived,
		&c.WaiverReason,
		&c.PolicyApplied,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCancellationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan cancellation: %w", ErrScanRow, err)
	}
	c.CreatedAt = createdAt.Time

	return &c, nil
}

// CountByClient количество прошлых отмен клиента, совершённых с ролью by
func (r *Repository) CountByClient(ctx context.Context, clientID int64, by domain.ActorRole) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"client_id": clientID, "cancelled_by": by}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByClient - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByClient - execute query: %w", ErrExecQuery, err)
	}
	return count, nil
}
