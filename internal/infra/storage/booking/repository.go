package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingService/pkg/psqlbuilder"
)

const tableName = "session_bookings"

// trainerLockNamespace первый ключ pg_advisory_xact_lock для сериализации по тренеру
const trainerLockNamespace = 1001

var columns = []string{
	"id",
	"client_id",
	"trainer_id",
	"session_type",
	"location",
	"scheduled_start",
	"scheduled_end",
	"duration_minutes",
	"status",
	"price",
	"notes",
	"original_session_id",
	"reschedule_reason",
	"rescheduled_by",
	"client_attended",
	"trainer_attended",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// chainDepthQuery количество предков сессии по original_session_id
const chainDepthQuery = `
WITH RECURSIVE chain AS (
	SELECT id, original_session_id, 0 AS depth FROM session_bookings WHERE id = $1
	UNION ALL
	SELECT b.id, b.original_session_id, c.depth + 1
	FROM session_bookings b
	JOIN chain c ON b.id = c.original_session_id
)
SELECT COALESCE(MAX(depth), 0) FROM chain`

// chainQuery вся цепочка переносов до корня, от старой к новой
const chainQuery = `
WITH RECURSIVE chain AS (
	SELECT s.*, 0 AS depth FROM session_bookings s WHERE s.id = $1
	UNION ALL
	SELECT b.*, c.depth + 1
	FROM session_bookings b
	JOIN chain c ON b.id = c.original_session_id
)
SELECT id, client_id, trainer_id, session_type, location, scheduled_start, scheduled_end,
	duration_minutes, status, price, notes, original_session_id, reschedule_reason,
	rescheduled_by, client_attended, trainer_attended, cancelled_at, created_at, updated_at
FROM chain
ORDER BY depth DESC`

// Repository репозиторий индивидуальных сессий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockTrainer берёт транзакционную advisory-блокировку на тренера
// Все операции, которые проверяют пересечения и затем пишут, должны вызывать её первой:
// FOR UPDATE не защищает от вставки новой строки в тот же интервал
func (r *Repository) LockTrainer(ctx context.Context, trainerID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1, $2)", trainerLockNamespace, trainerID); err != nil {
		return fmt.Errorf("%w: LockTrainer - trainer=%d: %w", ErrExecQuery, trainerID, err)
	}
	return nil
}

// Create создает новое бронирование
func (r *Repository) Create(ctx context.Context, b *domain.SessionBooking) (*domain.SessionBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"client_id",
			"trainer_id",
			"session_type",
			"location",
			"scheduled_start",
			"scheduled_end",
			"duration_minutes",
			"status",
			"price",
			"notes",
			"original_session_id",
		).
		Values(
			b.ClientID,
			b.TrainerID,
			b.SessionType,
			b.Location,
			b.ScheduledStart,
			b.ScheduledEnd,
			b.DurationMinutes,
			b.Status,
			b.Price,
			b.Notes,
			b.OriginalSessionID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SessionBooking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование с блокировкой строки (внутри транзакции)
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.SessionBooking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.SessionBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return b, nil
}

// GetByClientID получает бронирования клиента, опционально по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.SessionBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("scheduled_start DESC")
	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByTrainerWithFilter получает бронирования тренера с фильтрацией по периоду и статусу
func (r *Repository) GetByTrainerWithFilter(ctx context.Context, filter domain.TrainerBookingsFilter) ([]*domain.SessionBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"trainer_id": filter.TrainerID})

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"scheduled_start": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"scheduled_start": *filter.To})
	}

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		builder = builder.Where(squirrel.NotEq{"status": nonBlockingStatuses()})
	}

	query, args, err := builder.OrderBy("scheduled_start ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainerWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveInRange сессии тренера, занимающие время и пересекающие [from, to)
// Используется и для проверки конфликтов, и для генерации слотов
func (r *Repository) GetActiveInRange(ctx context.Context, trainerID int64, from, to time.Time) ([]*domain.SessionBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"trainer_id": trainerID}).
		Where(squirrel.NotEq{"status": nonBlockingStatuses()}).
		Where(squirrel.Lt{"scheduled_start": to}).
		Where(squirrel.Gt{"scheduled_end": from}).
		OrderBy("scheduled_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update сохраняет изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, b *domain.SessionBooking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("trainer_id", b.TrainerID).
		Set("session_type", b.SessionType).
		Set("location", b.Location).
		Set("scheduled_start", b.ScheduledStart).
		Set("scheduled_end", b.ScheduledEnd).
		Set("duration_minutes", b.DurationMinutes).
		Set("status", b.Status).
		Set("price", b.Price).
		Set("notes", b.Notes).
		Set("reschedule_reason", b.RescheduleReason).
		Set("rescheduled_by", b.RescheduledBy).
		Set("client_attended", b.ClientAttended).
		Set("trainer_attended", b.TrainerAttended).
		Set("cancelled_at", b.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// CountReschedules сколько раз уже переносилась логическая встреча, к которой относится сессия
// Считаются предки по original_session_id плюс прямые преемники самой сессии
func (r *Repository) CountReschedules(ctx context.Context, bookingID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var depth int
	if err := executor.QueryRowContext(ctx, chainDepthQuery, bookingID).Scan(&depth); err != nil {
		return 0, fmt.Errorf("%w: CountReschedules - chain depth: %w", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"original_session_id": bookingID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountReschedules - build count query: %v", ErrBuildQuery, err)
	}

	var children int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&children); err != nil {
		return 0, fmt.Errorf("%w: CountReschedules - count children: %w", ErrExecQuery, err)
	}

	return depth + children, nil
}

// GetRescheduleChain цепочка переносов от корня до указанной сессии
func (r *Repository) GetRescheduleChain(ctx context.Context, bookingID int64) ([]*domain.SessionBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, chainQuery, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRescheduleChain - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	chain, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, ErrBookingNotFound
	}
	return chain, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.SessionBooking, error) {
	var (
		b                    domain.SessionBooking
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.ClientID,
		&b.TrainerID,
		&b.SessionType,
		&b.Location,
		&b.ScheduledStart,
		&b.ScheduledEnd,
		&b.DurationMinutes,
		&b.Status,
		&b.Price,
		&b.Notes,
		&b.OriginalSessionID,
		&b.RescheduleReason,
		&b.RescheduledBy,
		&b.ClientAttended,
		&b.TrainerAttended,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.SessionBooking, error) {
	bookings := make([]*domain.SessionBooking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func nonBlockingStatuses() []string {
	out := make([]string, len(domain.NonBlockingStatuses))
	for i, s := range domain.NonBlockingStatuses {
		out[i] = string(s)
	}
	return out
}
