package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mess-review/internal/data/entity"
	"mess-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OutletRepository interface {
	Create(ctx context.Context, outlet *entity.Outlet) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Outlet, error)
	// FindByIDForUpdate locks the outlet row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Outlet, error)
	FindAll(ctx context.Context, typeFilter *entity.OutletType) ([]*entity.Outlet, error)
	FindTopRated(ctx context.Context, limit int) ([]*entity.Outlet, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, outlet *entity.Outlet) error
	UpdateRating(ctx context.Context, id uuid.UUID, average float64, total int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type outletRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOutletRepository(db database.PgxIface, log *zap.Logger) OutletRepository {
	return &outletRepository{
		db:  db,
		log: log.With(zap.String("repository", "outlet")),
	}
}

const outletColumns = `id, name, type, description, average_rating, total_ratings, created_at, updated_at`

func scanOutlet(row pgx.Row) (*entity.Outlet, error) {
	var outlet entity.Outlet
	err := row.Scan(
		&outlet.ID,
		&outlet.Name,
		&outlet.Type,
		&outlet.Description,
		&outlet.AverageRating,
		&outlet.TotalRatings,
		&outlet.CreatedAt,
		&outlet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &outlet, nil
}

func (r *outletRepository) Create(ctx context.Context, outlet *entity.Outlet) error {
	query := `
		INSERT INTO outlets (id, name, type, description, average_rating, total_ratings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		outlet.ID,
		outlet.Name,
		outlet.Type,
		outlet.Description,
		outlet.AverageRating,
		outlet.TotalRatings,
		outlet.CreatedAt,
		outlet.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create outlet",
			zap.Error(err),
			zap.String("name", outlet.Name),
		)
		return fmt.Errorf("create outlet %s: %w", outlet.Name, err)
	}

	return nil
}

func (r *outletRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Outlet, error) {
	return r.findByID(ctx, id, false)
}

func (r *outletRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Outlet, error) {
	return r.findByID(ctx, id, true)
}

func (r *outletRepository) findByID(ctx context.Context, id uuid.UUID, lock bool) (*entity.Outlet, error) {
	query := `SELECT ` + outletColumns + ` FROM outlets WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	outlet, err := scanOutlet(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find outlet by ID",
			zap.Error(err),
			zap.String("outlet_id", id.String()),
			zap.Bool("lock", lock),
		)
		return nil, fmt.Errorf("find outlet by ID %s: %w", id.String(), err)
	}

	return outlet, nil
}

func (r *outletRepository) FindAll(ctx context.Context, typeFilter *entity.OutletType) ([]*entity.Outlet, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + outletColumns + ` FROM outlets`)

	args := []interface{}{}
	if typeFilter != nil && *typeFilter != "" {
		queryBuilder.WriteString(" WHERE type = $1")
		args = append(args, *typeFilter)
	}
	queryBuilder.WriteString(" ORDER BY name, id")

	return r.list(ctx, queryBuilder.String(), args...)
}

// FindTopRated orders by average rating, then by number of ratings.
func (r *outletRepository) FindTopRated(ctx context.Context, limit int) ([]*entity.Outlet, error) {
	query := `SELECT ` + outletColumns + `
		FROM outlets
		ORDER BY average_rating DESC, total_ratings DESC, name
		LIMIT $1
	`
	return r.list(ctx, query, limit)
}

func (r *outletRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Outlet, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list outlets", zap.Error(err))
		return nil, fmt.Errorf("list outlets: %w", err)
	}
	defer rows.Close()

	var outlets []*entity.Outlet
	for rows.Next() {
		outlet, err := scanOutlet(rows)
		if err != nil {
			r.log.Error("Failed to scan outlet row", zap.Error(err))
			return nil, fmt.Errorf("scan outlet row: %w", err)
		}
		outlets = append(outlets, outlet)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate outlet rows: %w", err)
	}

	return outlets, nil
}

func (r *outletRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM outlets`).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count outlets", zap.Error(err))
		return 0, fmt.Errorf("count all outlets: %w", err)
	}

	return total, nil
}

func (r *outletRepository) Update(ctx context.Context, outlet *entity.Outlet) error {
	query := `
		UPDATE outlets
		SET name = $2, type = $3, description = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		outlet.ID,
		outlet.Name,
		outlet.Type,
		outlet.Description,
		outlet.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update outlet",
			zap.Error(err),
			zap.String("outlet_id", outlet.ID.String()),
		)
		return fmt.Errorf("update outlet %s: %w", outlet.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update outlet %s: %w", outlet.ID.String(), ErrNotFound)
	}

	return nil
}

// UpdateRating overwrites the stored aggregate of an outlet.
func (r *outletRepository) UpdateRating(ctx context.Context, id uuid.UUID, average float64, total int) error {
	query := `
		UPDATE outlets
		SET average_rating = $2, total_ratings = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, average, total)
	if err != nil {
		r.log.Error("Failed to update outlet rating",
			zap.Error(err),
			zap.String("outlet_id", id.String()),
		)
		return fmt.Errorf("update outlet rating %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update outlet rating %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *outletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM outlets WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete outlet",
			zap.Error(err),
			zap.String("outlet_id", id.String()),
		)
		return fmt.Errorf("delete outlet %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete outlet %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Outlet deleted", zap.String("outlet_id", id.String()))
	return nil
}
