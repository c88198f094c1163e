package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingService/pkg/psqlbuilder"
)

const tableName = "trainer_availability"

var columns = []string{
	"id",
	"trainer_id",
	"day_of_week",
	"start_time",
	"end_time",
	"session_duration_minutes",
	"is_available",
	"specific_date",
	"is_recurring",
	"created_at",
	"updated_at",
}

// Repository репозиторий доступности тренеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет строку доступности (еженедельную или на конкретную дату)
func (r *Repository) Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"trainer_id",
			"day_of_week",
			"start_time",
			"end_time",
			"session_duration_minutes",
			"is_available",
			"specific_date",
			"is_recurring",
		).
		Values(
			slot.TrainerID,
			slot.DayOfWeek,
			slot.StartTime,
			slot.EndTime,
			slot.SessionDurationMinutes,
			slot.IsAvailable,
			slot.SpecificDate,
			slot.IsRecurring,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// ListByTrainer все строки доступности тренера
// Еженедельные идут первыми, затем переопределения по дате
func (r *Repository) ListByTrainer(ctx context.Context, trainerID int64) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"trainer_id": trainerID}).
		OrderBy("specific_date ASC NULLS FIRST", "day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTrainer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTrainer - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListForDate строки, которые могут действовать на дату:
// еженедельные на этот день недели и переопределения на саму дату
func (r *Repository) ListForDate(ctx context.Context, trainerID int64, date time.Time) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"trainer_id": trainerID}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"specific_date": nil},
				squirrel.Eq{"day_of_week": domain.DayOfWeek(date)},
			},
			squirrel.Eq{"specific_date": date.Format(domain.DateFormat)},
		}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// CountByTrainer количество строк доступности тренера
func (r *Repository) CountByTrainer(ctx context.Context, trainerID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"trainer_id": trainerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByTrainer - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByTrainer - execute query: %w", ErrExecQuery, err)
	}
	return count, nil
}

// Delete удаляет строку доступности тренера
func (r *Repository) Delete(ctx context.Context, trainerID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id, "trainer_id": trainerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

func scanSlots(rows *sql.Rows) ([]*domain.AvailabilitySlot, error) {
	slots := make([]*domain.AvailabilitySlot, 0)

	for rows.Next() {
		var (
			slot                 domain.AvailabilitySlot
			specificDate         sql.NullTime
			createdAt, updatedAt sql.NullTime
		)

		err := rows.Scan(
			&slot.ID,
			&slot.TrainerID,
			&slot.DayOfWeek,
			&slot.StartTime,
			&slot.EndTime,
			&slot.SessionDurationMinutes,
			&slot.IsAvailable,
			&specificDate,
			&slot.IsRecurring,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %w", ErrScanRow, err)
		}

		if specificDate.Valid {
			d := specificDate.Time
			slot.SpecificDate = &d
		}
		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}
