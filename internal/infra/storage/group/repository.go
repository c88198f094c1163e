package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TrainingService/pkg/txmanager"
)

const (
	sessionsTable     = "group_sessions"
	participantsTable = "group_session_participants"
)

var sessionColumns = []string{
	"id",
	"trainer_id",
	"title",
	"scheduled_date",
	"duration_minutes",
	"price",
	"max_participants",
	"min_participants",
	"current_participants",
	"total_revenue",
	"allow_waitlist",
	"booking_deadline_hours",
	"created_at",
	"updated_at",
}

var participantColumns = []string{
	"id",
	"group_session_id",
	"client_id",
	"booking_status",
	"waitlist_position",
	"amount_paid",
	"created_at",
	"updated_at",
}

// Repository репозиторий групповых сессий и их участников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория групповых сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateSession создает групповую сессию
func (r *Repository) CreateSession(ctx context.Context, s *domain.GroupSession) (*domain.GroupSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(sessionsTable).
		Columns(
			"trainer_id",
			"title",
			"scheduled_date",
			"duration_minutes",
			"price",
			"max_participants",
			"min_participants",
			"allow_waitlist",
			"booking_deadline_hours",
		).
		Values(
			s.TrainerID,
			s.Title,
			s.ScheduledDate,
			s.DurationMinutes,
			s.Price,
			s.MaxParticipants,
			s.MinParticipants,
			s.AllowWaitlist,
			s.BookingDeadlineHours,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSession - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateSession - execute insert: %w", ErrExecQuery, err)
	}

	s.CurrentParticipants = 0
	s.TotalRevenue = 0
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetSessionByID получает групповую сессию
func (r *Repository) GetSessionByID(ctx context.Context, id int64) (*domain.GroupSession, error) {
	return r.getSession(ctx, id, false)
}

// GetSessionForUpdate получает групповую сессию с блокировкой строки
// Все изменения участников сессии сериализуются через эту блокировку
func (r *Repository) GetSessionForUpdate(ctx context.Context, id int64) (*domain.GroupSession, error) {
	return r.getSession(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getSession(ctx context.Context, id int64, forUpdate bool) (*domain.GroupSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(sessionColumns...).
		From(sessionsTable).
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSession - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s                    domain.GroupSession
		createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.TrainerID,
		&s.Title,
		&s.ScheduledDate,
		&s.DurationMinutes,
		&s.Price,
		&s.MaxParticipants,
		&s.MinParticipants,
		&s.CurrentParticipants,
		&s.TotalRevenue,
		&s.AllowWaitlist,
		&s.BookingDeadlineHours,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSession - scan session: %w", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetActiveParticipant активная (confirmed или waitlisted) запись клиента на сессию
func (r *Repository) GetActiveParticipant(ctx context.Context, sessionID, clientID int64) (*domain.GroupSessionParticipant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(participantColumns...).
		From(participantsTable).
		Where(squirrel.Eq{
			"group_session_id": sessionID,
			"client_id":        clientID,
			"booking_status":   participantStatuses(domain.ActiveParticipantStatuses),
		})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveParticipant - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanParticipant(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveParticipant - scan participant: %w", ErrScanRow, err)
	}

	return p, nil
}

// CreateParticipant добавляет участника
// Частичный уникальный индекс по активным записям отвечает ErrDuplicateParticipant на дубль
func (r *Repository) CreateParticipant(ctx context.Context, p *domain.GroupSessionParticipant) (*domain.GroupSessionParticipant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(participantsTable).
		Columns(
			"group_session_id",
			"client_id",
			"booking_status",
			"waitlist_position",
			"amount_paid",
		).
		Values(
			p.GroupSessionID,
			p.ClientID,
			p.BookingStatus,
			p.WaitlistPosition,
			p.AmountPaid,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateParticipant - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if txmanager.IsUniqueViolation(err) {
		return nil, ErrDuplicateParticipant
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateParticipant - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// UpdateParticipant сохраняет статус, позицию в очереди и оплату участника
func (r *Repository) UpdateParticipant(ctx context.Context, p *domain.GroupSessionParticipant) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(participantsTable).
		Set("booking_status", p.BookingStatus).
		Set("waitlist_position", p.WaitlistPosition).
		Set("amount_paid", p.AmountPaid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateParticipant - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrParticipantNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateParticipant - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// NextWaitlistPosition следующая позиция в очереди ожидания
// MAX + 1, а не COUNT + 1: после отмен и продвижений в очереди остаются дыры
func (r *Repository) NextWaitlistPosition(ctx context.Context, sessionID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(waitlist_position), 0) + 1").
		From(participantsTable).
		Where(squirrel.Eq{
			"group_session_id": sessionID,
			"booking_status":   domain.ParticipantWaitlisted,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: NextWaitlistPosition - build select query: %v", ErrBuildQuery, err)
	}

	var position int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&position); err != nil {
		return 0, fmt.Errorf("%w: NextWaitlistPosition - execute query: %w", ErrExecQuery, err)
	}
	return position, nil
}

// NextWaitlisted первый в очереди ожидания участник (наименьшая позиция)
// Возвращает ErrParticipantNotFound, если очередь пуста
func (r *Repository) NextWaitlisted(ctx context.Context, sessionID int64) (*domain.GroupSessionParticipant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(participantColumns...).
		From(participantsTable).
		Where(squirrel.Eq{
			"group_session_id": sessionID,
			"booking_status":   domain.ParticipantWaitlisted,
		}).
		OrderBy("waitlist_position ASC", "created_at ASC", "id ASC").
		Limit(1)
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: NextWaitlisted - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanParticipant(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: NextWaitlisted - scan participant: %w", ErrScanRow, err)
	}

	return p, nil
}

// SyncCounters пересчитывает current_participants и total_revenue по строкам confirmed участников
// Счётчики никогда не инкрементируются вслепую
func (r *Repository) SyncCounters(ctx context.Context, sessionID int64) (domain.GroupCounters, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)", "COALESCE(SUM(amount_paid), 0)").
		From(participantsTable).
		Where(squirrel.Eq{
			"group_session_id": sessionID,
			"booking_status":   domain.ParticipantConfirmed,
		}).
		ToSql()
	if err != nil {
		return domain.GroupCounters{}, fmt.Errorf("%w: SyncCounters - build select query: %v", ErrBuildQuery, err)
	}

	var counters domain.GroupCounters
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&counters.Confirmed, &counters.TotalRevenue); err != nil {
		return domain.GroupCounters{}, fmt.Errorf("%w: SyncCounters - aggregate participants: %w", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Update(sessionsTable).
		Set("current_participants", counters.Confirmed).
		Set("total_revenue", counters.TotalRevenue).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": sessionID}).
		ToSql()
	if err != nil {
		return domain.GroupCounters{}, fmt.Errorf("%w: SyncCounters - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.GroupCounters{}, fmt.Errorf("%w: SyncCounters - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.GroupCounters{}, fmt.Errorf("%w: SyncCounters - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return domain.GroupCounters{}, ErrSessionNotFound
	}

	return counters, nil
}

// ListParticipants участники сессии: подтверждённые, затем очередь по позиции
func (r *Repository) ListParticipants(ctx context.Context, sessionID int64, includeInactive bool) ([]*domain.GroupSessionParticipant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(participantColumns...).
		From(participantsTable).
		Where(squirrel.Eq{"group_session_id": sessionID})
	if !includeInactive {
		builder = builder.Where(squirrel.Eq{"booking_status": participantStatuses(domain.ActiveParticipantStatuses)})
	}

	query, args, err := builder.
		OrderBy("waitlist_position ASC NULLS FIRST", "created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListParticipants - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListParticipants - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	participants := make([]*domain.GroupSessionParticipant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListParticipants - scan row: %w", ErrScanRow, err)
		}
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListParticipants - rows error: %w", ErrScanRow, err)
	}

	return participants, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanParticipant(row rowScanner) (*domain.GroupSessionParticipant, error) {
	var (
		p                    domain.GroupSessionParticipant
		position             sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&p.ID,
		&p.GroupSessionID,
		&p.ClientID,
		&p.BookingStatus,
		&position,
		&p.AmountPaid,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if position.Valid {
		v := int(position.Int64)
		p.WaitlistPosition = &v
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

func participantStatuses(statuses []domain.ParticipantStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
