package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/salon-nv/NV-BookingService/internal/domain"
	"github.com/salon-nv/NV-BookingService/pkg/dbmetrics"
	"github.com/salon-nv/NV-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с расписанием студии
// Конфигурация хранится одной строкой; заблокированные даты отдельной таблицей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает активную конфигурацию расписания
func (r *Repository) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"work_start",
		"work_end",
		"slot_minutes",
		"work_days",
		"min_notice_minutes",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("schedule_config").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.ScheduleConfig
	var workDays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.WorkStart,
		&config.WorkEnd,
		&config.SlotMinutes,
		&workDays,
		&config.MinNoticeMinutes,
		&config.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	config.WorkDays = toWeekdays(workDays)
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// Set сохраняет конфигурацию расписания
// Обновляет существующую строку; если конфигурации еще нет, создает её
func (r *Repository) Set(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	current, err := r.Get(ctx)
	if err != nil && err != ErrConfigNotFound {
		return nil, err
	}

	if current == nil {
		return r.insert(ctx, executor, config)
	}

	query, args, err := psqlbuilder.Update("schedule_config").
		Set("work_start", config.WorkStart).
		Set("work_end", config.WorkEnd).
		Set("slot_minutes", config.SlotMinutes).
		Set("work_days", fromWeekdays(config.WorkDays)).
		Set("min_notice_minutes", config.MinNoticeMinutes).
		Set("advance_booking_days", config.AdvanceBookingDays).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": current.ID}).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Set - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Set - execute update: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

func (r *Repository) insert(ctx context.Context, executor DBExecutor, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns(
			"work_start",
			"work_end",
			"slot_minutes",
			"work_days",
			"min_notice_minutes",
			"advance_booking_days",
		).
		Values(
			config.WorkStart,
			config.WorkEnd,
			config.SlotMinutes,
			fromWeekdays(config.WorkDays),
			config.MinNoticeMinutes,
			config.AdvanceBookingDays,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: insert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: insert - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// IsDateBlocked проверяет, заблокирована ли дата целиком
func (r *Repository) IsDateBlocked(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("blocked_dates").
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsDateBlocked - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsDateBlocked - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// ListBlockedDates получает заблокированные даты в периоде [from, to]
// Границы опциональны
func (r *Repository) ListBlockedDates(ctx context.Context, from, to *time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("date", "reason", "created_at").
		From("blocked_dates").
		OrderBy("date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *to})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var bd domain.BlockedDate
		var createdAt sql.NullTime
		if err := rows.Scan(&bd.Date, &bd.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDates - scan row: %v", ErrScanRow, err)
		}
		bd.CreatedAt = createdAt.Time
		dates = append(dates, &bd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// AddBlockedDate блокирует дату для бронирования
func (r *Repository) AddBlockedDate(ctx context.Context, blocked *domain.BlockedDate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("date", "reason").
		Values(blocked.Date, blocked.Reason).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDateAlreadyBlocked
		}
		return fmt.Errorf("%w: AddBlockedDate - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveBlockedDate снимает блокировку с даты
func (r *Repository) RemoveBlockedDate(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}

// toWeekdays конвертирует массив индексов дней недели из БД
func toWeekdays(values pq.Int64Array) []time.Weekday {
	days := make([]time.Weekday, 0, len(values))
	for _, v := range values {
		days = append(days, time.Weekday(v))
	}
	return days
}

// fromWeekdays конвертирует дни недели в массив для БД
func fromWeekdays(days []time.Weekday) pq.Int64Array {
	values := make(pq.Int64Array, 0, len(days))
	for _, d := range days {
		values = append(values, int64(d))
	}
	return values
}
