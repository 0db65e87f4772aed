package table

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, t *Table) error
	GetByID(ctx context.Context, tenantID, restaurantID, id int64) (*Table, error)
	List(ctx context.Context, filter Filter) ([]*Table, int, error)
	// ListAll returns every table of a restaurant, active or not, unpaged.
	ListAll(ctx context.Context, tenantID, restaurantID int64) ([]*Table, error)
	Update(ctx context.Context, t *Table) error
	Delete(ctx context.Context, tenantID, restaurantID, id int64) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectTables(extra ...string) squirrel.SelectBuilder {
	cols := []string{"id", "tenant_id", "restaurant_id", "room_id", "label", "capacity", "active", "created_at", "updated_at"}
	return psql.Select(append(cols, extra...)...).From("public.dining_tables")
}

func scanTable(row pgx.Row, extra ...any) (*Table, error) {
	var t Table
	dest := []any{&t.ID, &t.TenantID, &t.RestaurantID, &t.RoomID, &t.Label, &t.Capacity, &t.Active, &t.CreatedAt, &t.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &t, nil
}

// mapWriteError translates constraint violations into domain errors.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrLabelTaken
		case pgerrcode.ForeignKeyViolation:
			return ErrRoomNotFound
		}
	}
	return err
}

func (r *pgxRepository) Create(ctx context.Context, t *Table) error {
	query, args, err := psql.Insert("public.dining_tables").
		Columns("tenant_id", "restaurant_id", "room_id", "label", "capacity", "active").
		Values(t.TenantID, t.RestaurantID, t.RoomID, t.Label, t.Capacity, t.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create table query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("create table failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, tenantID, restaurantID, id int64) (*Table, error) {
	query, args, err := selectTables().
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID, "restaurant_id": restaurantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get table query failed: %w", err)
	}

	t, err := scanTable(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get table failed: %w", err)
	}
	return t, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Table, int, error) {
	query := selectTables("count(*) OVER() AS total_count").
		Where(squirrel.Eq{"tenant_id": filter.TenantID, "restaurant_id": filter.RestaurantID})

	if filter.RoomID != nil {
		query = query.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.Active != nil {
		query = query.Where(squirrel.Eq{"active": *filter.Active})
	}

	orderDir := "ASC"
	if filter.SortOrder == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy("label "+orderDir, "id "+orderDir)

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
		return nil, 0, fmt.Errorf("build list tables query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tables failed: %w", err)
	}
	defer rows.Close()

	var tables []*Table
	var total int
	for rows.Next() {
		t, err := scanTable(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan table failed: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list tables failed: %w", err)
	}

	return tables, total, nil
}

func (r *pgxRepository) ListAll(ctx context.Context, tenantID, restaurantID int64) ([]*Table, error) {
	query, args, err := selectTables().
		Where(squirrel.Eq{"tenant_id": tenantID, "restaurant_id": restaurantID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build catalog query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load catalog failed: %w", err)
	}
	defer rows.Close()

	var tables []*Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan table failed: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog failed: %w", err)
	}
	return tables, nil
}

func (r *pgxRepository) Update(ctx context.Context, t *Table) error {
	query, args, err := psql.Update("public.dining_tables").
		Set("room_id", t.RoomID).
		Set("label", t.Label).
		Set("capacity", t.Capacity).
		Set("active", t.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID, "tenant_id": t.TenantID, "restaurant_id": t.RestaurantID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update table query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update table failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, tenantID, restaurantID, id int64) error {
	query, args, err := psql.Delete("public.dining_tables").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID, "restaurant_id": restaurantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete table query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete table failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
