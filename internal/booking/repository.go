package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elvisburrniku/OrderTable-sub004/internal/availability"
	"github.com/elvisburrniku/OrderTable-sub004/internal/timeslot"
)

// Guard re-checks a write against the day's bookings as seen inside the write
// transaction, after the day lock is held. A non-nil error aborts the write.
type Guard func(day []availability.Booking) error

type Repository interface {
	GetByID(ctx context.Context, tenantID, restaurantID, id int64) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Snapshot returns the non-cancelled bookings of one restaurant day.
	Snapshot(ctx context.Context, tenantID, restaurantID int64, date string) ([]availability.Booking, error)

	// CreateGuarded and UpdateGuarded serialize writers per restaurant day and
	// run guard before writing. A nil guard skips the re-check.
	CreateGuarded(ctx context.Context, b *Booking, guard Guard) error
	UpdateGuarded(ctx context.Context, b *Booking, guard Guard) error
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var bookingColumns = []string{
	"id", "tenant_id", "restaurant_id", "table_id", "booking_date", "start_time", "end_time",
	"party_size", "status", "customer_name", "customer_email", "customer_phone", "notes",
	"created_at", "updated_at",
}

func parseDate(date string) (time.Time, error) {
	d, err := time.Parse(timeslot.DateLayout, date)
	if err != nil {
		return time.Time{}, availability.ErrInvalidDate.With(err)
	}
	return d, nil
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	var date time.Time
	dest := []any{
		&b.ID, &b.TenantID, &b.RestaurantID, &b.TableID, &date, &b.StartTime, &b.EndTime,
		&b.PartySize, &b.Status, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	b.Date = date.Format(timeslot.DateLayout)
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, tenantID, restaurantID, id int64) (*Booking, error) {
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID, "restaurant_id": restaurantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query := psql.Select(append(bookingColumns, "count(*) OVER() AS total_count")...).
		From("public.bookings").
		Where(squirrel.Eq{"tenant_id": filter.TenantID, "restaurant_id": filter.RestaurantID})

	if filter.Date != "" {
		d, err := parseDate(filter.Date)
		if err != nil {
			return nil, 0, err
		}
		query = query.Where(squirrel.Eq{"booking_date": d})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.TableID != nil {
		query = query.Where(squirrel.Eq{"table_id": *filter.TableID})
	}

	orderDir := "ASC"
	if filter.SortOrder == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy("booking_date "+orderDir, "start_time "+orderDir, "id "+orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Snapshot(ctx context.Context, tenantID, restaurantID int64, date string) ([]availability.Booking, error) {
	return snapshot(ctx, r.pool, tenantID, restaurantID, date)
}

func snapshot(ctx context.Context, q querier, tenantID, restaurantID int64, date string) ([]availability.Booking, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Select("id", "table_id", "start_time", "end_time", "party_size", "status", "customer_name").
		From("public.bookings").
		Where(squirrel.Eq{"tenant_id": tenantID, "restaurant_id": restaurantID, "booking_date": d}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		OrderBy("start_time", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build snapshot query failed: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load snapshot failed: %w", err)
	}
	defer rows.Close()

	day := []availability.Booking{}
	for rows.Next() {
		b := availability.Booking{Date: date}
		if err := rows.Scan(&b.ID, &b.TableID, &b.StartTime, &b.EndTime, &b.PartySize, &b.Status, &b.Customer); err != nil {
			return nil, fmt.Errorf("scan snapshot failed: %w", err)
		}
		day = append(day, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot failed: %w", err)
	}
	return day, nil
}

// lockDay takes a transaction-scoped advisory lock for one restaurant day.
func lockDay(ctx context.Context, tx pgx.Tx, restaurantID int64, date string) error {
	key := fmt.Sprintf("ordertable:%d:%s", restaurantID, date)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return fmt.Errorf("lock booking day failed: %w", err)
	}
	return nil
}

func guardDay(ctx context.Context, tx pgx.Tx, b *Booking, guard Guard) error {
	if err := lockDay(ctx, tx, b.RestaurantID, b.Date); err != nil {
		return err
	}
	if guard == nil {
		return nil
	}
	day, err := snapshot(ctx, tx, b.TenantID, b.RestaurantID, b.Date)
	if err != nil {
		return err
	}
	return guard(day)
}

func (r *pgxRepository) CreateGuarded(ctx context.Context, b *Booking, guard Guard) error {
	d, err := parseDate(b.Date)
	if err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := guardDay(ctx, tx, b, guard); err != nil {
			return err
		}

		query, args, err := psql.Insert("public.bookings").
			Columns("tenant_id", "restaurant_id", "table_id", "booking_date", "start_time", "end_time",
				"party_size", "status", "customer_name", "customer_email", "customer_phone", "notes").
			Values(b.TenantID, b.RestaurantID, b.TableID, d, b.StartTime, b.EndTime,
				b.PartySize, b.Status, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.Notes).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create booking query failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return fmt.Errorf("create booking failed: %w", err)
		}
		return nil
	})
}

func (r *pgxRepository) UpdateGuarded(ctx context.Context, b *Booking, guard Guard) error {
	d, err := parseDate(b.Date)
	if err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := guardDay(ctx, tx, b, guard); err != nil {
			return err
		}

		query, args, err := psql.Update("public.bookings").
			Set("table_id", b.TableID).
			Set("booking_date", d).
			Set("start_time", b.StartTime).
			Set("end_time", b.EndTime).
			Set("party_size", b.PartySize).
			Set("status", b.Status).
			Set("customer_name", b.CustomerName).
			Set("customer_email", b.CustomerEmail).
			Set("customer_phone", b.CustomerPhone).
			Set("notes", b.Notes).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": b.ID, "tenant_id": b.TenantID, "restaurant_id": b.RestaurantID}).
			Suffix("RETURNING updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build update booking query failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("update booking failed: %w", err)
		}
		return nil
	})
}
