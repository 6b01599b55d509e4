package repository

import (
	"context"
	"errors"
	"fmt"

	"mess-review/internal/data/entity"
	"mess-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FoodItemRepository interface {
	Create(ctx context.Context, item *entity.FoodItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.FoodItem, error)
	// FindByIDForUpdate locks the food item row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.FoodItem, error)
	FindByOutletID(ctx context.Context, outletID uuid.UUID) ([]*entity.FoodItem, error)
	UpdateRating(ctx context.Context, id uuid.UUID, average float64, total int) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOutletID(ctx context.Context, outletID uuid.UUID) (int64, error)
}

type foodItemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFoodItemRepository(db database.PgxIface, log *zap.Logger) FoodItemRepository {
	return &foodItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "food_item")),
	}
}

const foodItemColumns = `id, outlet_id, name, description, average_rating, total_ratings, created_at, updated_at`

func scanFoodItem(row pgx.Row) (*entity.FoodItem, error) {
	var item entity.FoodItem
	err := row.Scan(
		&item.ID,
		&item.OutletID,
		&item.Name,
		&item.Description,
		&item.AverageRating,
		&item.TotalRatings,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *foodItemRepository) Create(ctx context.Context, item *entity.FoodItem) error {
	query := `
		INSERT INTO food_items (id, outlet_id, name, description, average_rating, total_ratings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		item.ID,
		item.OutletID,
		item.Name,
		item.Description,
		item.AverageRating,
		item.TotalRatings,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create food item",
			zap.Error(err),
			zap.String("outlet_id", item.OutletID.String()),
			zap.String("name", item.Name),
		)
		return fmt.Errorf("create food item %s: %w", item.Name, err)
	}

	return nil
}

func (r *foodItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.FoodItem, error) {
	return r.findByID(ctx, id, false)
}

func (r *foodItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.FoodItem, error) {
	return r.findByID(ctx, id, true)
}

func (r *foodItemRepository) findByID(ctx context.Context, id uuid.UUID, lock bool) (*entity.FoodItem, error) {
	query := `SELECT ` + foodItemColumns + ` FROM food_items WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	item, err := scanFoodItem(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find food item by ID",
			zap.Error(err),
			zap.String("food_item_id", id.String()),
			zap.Bool("lock", lock),
		)
		return nil, fmt.Errorf("find food item by ID %s: %w", id.String(), err)
	}

	return item, nil
}

func (r *foodItemRepository) FindByOutletID(ctx context.Context, outletID uuid.UUID) ([]*entity.FoodItem, error) {
	query := `SELECT ` + foodItemColumns + `
		FROM food_items
		WHERE outlet_id = $1
		ORDER BY name, id
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, outletID)
	if err != nil {
		r.log.Error("Failed to find food items by outlet",
			zap.Error(err),
			zap.String("outlet_id", outletID.String()),
		)
		return nil, fmt.Errorf("find food items by outlet %s: %w", outletID.String(), err)
	}
	defer rows.Close()

	var items []*entity.FoodItem
	for rows.Next() {
		item, err := scanFoodItem(rows)
		if err != nil {
			r.log.Error("Failed to scan food item row", zap.Error(err))
			return nil, fmt.Errorf("scan food item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate food item rows: %w", err)
	}

	return items, nil
}

// UpdateRating overwrites the stored aggregate of a food item.
func (r *foodItemRepository) UpdateRating(ctx context.Context, id uuid.UUID, average float64, total int) error {
	query := `
		UPDATE food_items
		SET average_rating = $2, total_ratings = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, average, total)
	if err != nil {
		r.log.Error("Failed to update food item rating",
			zap.Error(err),
			zap.String("food_item_id", id.String()),
		)
		return fmt.Errorf("update food item rating %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update food item rating %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *foodItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM food_items WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete food item",
			zap.Error(err),
			zap.String("food_item_id", id.String()),
		)
		return fmt.Errorf("delete food item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete food item %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Food item deleted", zap.String("food_item_id", id.String()))
	return nil
}

func (r *foodItemRepository) DeleteByOutletID(ctx context.Context, outletID uuid.UUID) (int64, error) {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM food_items WHERE outlet_id = $1`, outletID)
	if err != nil {
		r.log.Error("Failed to delete food items by outlet",
			zap.Error(err),
			zap.String("outlet_id", outletID.String()),
		)
		return 0, fmt.Errorf("delete food items by outlet %s: %w", outletID.String(), err)
	}

	return result.RowsAffected(), nil
}
