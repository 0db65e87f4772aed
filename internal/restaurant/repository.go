package restaurant

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *Restaurant) error
	GetByID(ctx context.Context, tenantID, id int64) (*Restaurant, error)
	List(ctx context.Context, filter Filter) ([]*Restaurant, int, error)
	Update(ctx context.Context, r *Restaurant) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{
	"id", "tenant_id", "name", "opening_hours_start", "opening_hours_end",
	"turnover_buffer_minutes", "default_duration_minutes", "created_at", "updated_at",
}

func scan(row pgx.Row, extra ...any) (*Restaurant, error) {
	var r Restaurant
	dest := []any{
		&r.ID, &r.TenantID, &r.Name, &r.OpeningHoursStart, &r.OpeningHoursEnd,
		&r.TurnoverBufferMinutes, &r.DefaultDurationMinutes, &r.CreatedAt, &r.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &r, nil
}

func (repo *pgxRepository) Create(ctx context.Context, r *Restaurant) error {
	query, args, err := psql.Insert("public.restaurants").
		Columns("tenant_id", "name", "opening_hours_start", "opening_hours_end", "turnover_buffer_minutes", "default_duration_minutes").
		Values(r.TenantID, r.Name, r.OpeningHoursStart, r.OpeningHoursEnd, r.TurnoverBufferMinutes, r.DefaultDurationMinutes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create restaurant query failed: %w", err)
	}

	if err := repo.pool.QueryRow(ctx, query, args...).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return fmt.Errorf("create restaurant failed: %w", err)
	}
	return nil
}

func (repo *pgxRepository) GetByID(ctx context.Context, tenantID, id int64) (*Restaurant, error) {
	query, args, err := psql.Select(columns...).
		From("public.restaurants").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get restaurant query failed: %w", err)
	}

	r, err := scan(repo.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get restaurant failed: %w", err)
	}
	return r, nil
}

func (repo *pgxRepository) List(ctx context.Context, filter Filter) ([]*Restaurant, int, error) {
	query := psql.Select(append(columns, "count(*) OVER() AS total_count")...).
		From("public.restaurants").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.Keyword != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.Keyword + "%"})
	}

	orderDir := "ASC"
	if filter.SortOrder == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy("name "+orderDir, "id "+orderDir)

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
		return nil, 0, fmt.Errorf("build list restaurants query failed: %w", err)
	}

	rows, err := repo.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurants failed: %w", err)
	}
	defer rows.Close()

	var out []*Restaurant
	var total int
	for rows.Next() {
		r, err := scan(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan restaurant failed: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list restaurants failed: %w", err)
	}

	return out, total, nil
}

func (repo *pgxRepository) Update(ctx context.Context, r *Restaurant) error {
	query, args, err := psql.Update("public.restaurants").
		Set("name", r.Name).
		Set("opening_hours_start", r.OpeningHoursStart).
		Set("opening_hours_end", r.OpeningHoursEnd).
		Set("turnover_buffer_minutes", r.TurnoverBufferMinutes).
		Set("default_duration_minutes", r.DefaultDurationMinutes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": r.ID, "tenant_id": r.TenantID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update restaurant query failed: %w", err)
	}

	if err := repo.pool.QueryRow(ctx, query, args...).Scan(&r.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update restaurant failed: %w", err)
	}
	return nil
}
