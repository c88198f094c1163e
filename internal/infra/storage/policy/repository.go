package policy

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

const tableName = "cancellation_policies"

// upsertSuffix одна политика на тренера: повторное сохранение перезаписывает её
const upsertSuffix = `ON CONFLICT (trainer_id) DO UPDATE SET
	advance_notice_hours = EXCLUDED.advance_notice_hours,
	charge_cancellation_fee = EXCLUDED.charge_cancellation_fee,
	cancellation_fee_amount = EXCLUDED.cancellation_fee_amount,
	cancellation_fee_percentage = EXCLUDED.cancellation_fee_percentage,
	charge_no_show_fee = EXCLUDED.charge_no_show_fee,
	no_show_fee_amount = EXCLUDED.no_show_fee_amount,
	no_show_fee_percentage = EXCLUDED.no_show_fee_percentage,
	max_reschedules_per_session = EXCLUDED.max_reschedules_per_session,
	reschedule_advance_notice_hours = EXCLUDED.reschedule_advance_notice_hours,
	first_time_client_grace = EXCLUDED.first_time_client_grace,
	emergency_exceptions = EXCLUDED.emergency_exceptions,
	is_active = EXCLUDED.is_active,
	auto_apply_policies = EXCLUDED.auto_apply_policies,
	updated_at = NOW()
RETURNING created_at, updated_at`

// Repository репозиторий политик отмены
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTrainerID получает политику тренера
// Если тренер ничего не сохранял, возвращает ErrPolicyNotFound
func (r *Repository) GetByTrainerID(ctx context.Context, trainerID int64) (*domain.CancellationPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"trainer_id",
		"advance_notice_hours",
		"charge_cancellation_fee",
		"cancellation_fee_amount",
		"cancellation_fee_percentage",
		"charge_no_show_fee",
		"no_show_fee_amount",
		"no_show_fee_percentage",
		"max_reschedules_per_session",
		"reschedule_advance_notice_hours",
		"first_time_client_grace",
		"emergency_exceptions",
		"is_active",
		"auto_apply_policies",
		"created_at",
		"updated_at",
	).
		From(tableName).
		Where(squirrel.Eq{"trainer_id": trainerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainerID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		p                    domain.CancellationPolicy
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.TrainerID,
		&p.AdvanceNoticeHours,
		&p.ChargeCancellationFee,
		&p.CancellationFeeAmount,
		&p.CancellationFeePercentage,
		&p.ChargeNoShowFee,
		&p.NoShowFeeAmount,
		&p.NoShowFeePercentage,
		&p.MaxReschedulesPerSession,
		&p.RescheduleAdvanceNoticeHours,
		&p.FirstTimeClientGrace,
		&p.EmergencyExceptions,
		&p.IsActive,
		&p.AutoApplyPolicies,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainerID - scan policy: %w", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// Upsert создает или перезаписывает политику тренера
func (r *Repository) Upsert(ctx context.Context, p *domain.CancellationPolicy) (*domain.CancellationPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"trainer_id",
			"advance_notice_hours",
			"charge_cancellation_fee",
			"cancellation_fee_amount",
			"cancellation_fee_percentage",
			"charge_no_show_fee",
			"no_show_fee_amount",
			"no_show_fee_percentage",
			"max_reschedules_per_session",
			"reschedule_advance_notice_hours",
			"first_time_client_grace",
			"emergency_exceptions",
			"is_active",
			"auto_apply_policies",
		).
		Values(
			p.TrainerID,
			p.AdvanceNoticeHours,
			p.ChargeCancellationFee,
			p.CancellationFeeAmount,
			p.CancellationFeePercentage,
			p.ChargeNoShowFee,
			p.NoShowFeeAmount,
			p.NoShowFeePercentage,
			p.MaxReschedulesPerSession,
			p.RescheduleAdvanceNoticeHours,
			p.FirstTimeClientGrace,
			p.EmergencyExceptions,
			p.IsActive,
			p.AutoApplyPolicies,
		).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}
