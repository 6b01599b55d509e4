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

// RatingRepository stores ratings. Ratings are never updated in place.
type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByTarget returns every rating of the target, newest first.
	FindByTarget(ctx context.Context, target entity.Target) ([]*entity.Rating, error)
	// FindPublicByTarget returns only named ratings with non-blank text, newest first.
	FindPublicByTarget(ctx context.Context, target entity.Target) ([]*entity.Rating, error)
	FindByAuthorAndTarget(ctx context.Context, userID uuid.UUID, target entity.Target) ([]*entity.Rating, error)

	DeleteByTarget(ctx context.Context, target entity.Target) (int64, error)
	// DeleteByOutletFoodItems removes ratings of every food item served by the outlet.
	DeleteByOutletFoodItems(ctx context.Context, outletID uuid.UUID) (int64, error)
}

type ratingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

const ratingSelect = `
	SELECT r.id, r.user_id, r.outlet_id, r.food_item_id, r.stars, r.review_text,
	       r.is_anonymous, r.created_at, r.updated_at, u.name, f.name
	FROM ratings r
	JOIN users u ON u.id = r.user_id
	LEFT JOIN food_items f ON f.id = r.food_item_id
`

const ratingOrder = ` ORDER BY r.created_at DESC, r.id DESC`

const publicReviewFilter = ` AND r.review_text IS NOT NULL AND BTRIM(r.review_text) <> '' AND NOT r.is_anonymous`

// targetColumn is the storage column that holds the target id.
func targetColumn(target entity.Target) (string, error) {
	switch target.Kind {
	case entity.TargetOutlet:
		return "outlet_id", nil
	case entity.TargetFoodItem:
		return "food_item_id", nil
	}
	return "", entity.ErrInvalidTarget
}

func scanRating(row pgx.Row) (*entity.Rating, error) {
	var (
		rating     entity.Rating
		outletID   *uuid.UUID
		foodItemID *uuid.UUID
	)
	err := row.Scan(
		&rating.ID,
		&rating.UserID,
		&outletID,
		&foodItemID,
		&rating.Stars,
		&rating.ReviewText,
		&rating.IsAnonymous,
		&rating.CreatedAt,
		&rating.UpdatedAt,
		&rating.AuthorName,
		&rating.FoodItemName,
	)
	if err != nil {
		return nil, err
	}

	rating.Target, err = entity.TargetFromColumns(outletID, foodItemID)
	if err != nil {
		return nil, fmt.Errorf("rating %s: %w", rating.ID, err)
	}
	return &rating, nil
}

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	if _, err := targetColumn(rating.Target); err != nil {
		return fmt.Errorf("create rating: %w", err)
	}
	outletID, foodItemID := rating.Target.Columns()

	query := `
		INSERT INTO ratings (id, user_id, outlet_id, food_item_id, stars, review_text,
		                     is_anonymous, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		rating.ID,
		rating.UserID,
		outletID,
		foodItemID,
		rating.Stars,
		rating.ReviewText,
		rating.IsAnonymous,
		rating.CreatedAt,
		rating.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create rating",
			zap.Error(err),
			zap.String("user_id", rating.UserID.String()),
			zap.String("target", rating.Target.String()),
		)
		return fmt.Errorf("create rating for %s by user %s: %w",
			rating.Target.String(), rating.UserID.String(), err)
	}

	return nil
}

func (r *ratingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	query := ratingSelect + ` WHERE r.id = $1`

	rating, err := scanRating(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating by ID",
			zap.Error(err),
			zap.String("rating_id", id.String()),
		)
		return nil, fmt.Errorf("find rating by ID %s: %w", id.String(), err)
	}

	return rating, nil
}

func (r *ratingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete rating",
			zap.Error(err),
			zap.String("rating_id", id.String()),
		)
		return fmt.Errorf("delete rating %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete rating %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Rating deleted", zap.String("rating_id", id.String()))
	return nil
}

func (r *ratingRepository) FindByTarget(ctx context.Context, target entity.Target) ([]*entity.Rating, error) {
	column, err := targetColumn(target)
	if err != nil {
		return nil, fmt.Errorf("find ratings: %w", err)
	}
	return r.list(ctx, ratingSelect+` WHERE r.`+column+` = $1`+ratingOrder, target.ID)
}

func (r *ratingRepository) FindPublicByTarget(ctx context.Context, target entity.Target) ([]*entity.Rating, error) {
	column, err := targetColumn(target)
	if err != nil {
		return nil, fmt.Errorf("find public ratings: %w", err)
	}
	return r.list(ctx, ratingSelect+` WHERE r.`+column+` = $1`+publicReviewFilter+ratingOrder, target.ID)
}

func (r *ratingRepository) FindByAuthorAndTarget(ctx context.Context, userID uuid.UUID, target entity.Target) ([]*entity.Rating, error) {
	column, err := targetColumn(target)
	if err != nil {
		return nil, fmt.Errorf("find author ratings: %w", err)
	}
	return r.list(ctx, ratingSelect+` WHERE r.user_id = $1 AND r.`+column+` = $2`+ratingOrder, userID, target.ID)
}

func (r *ratingRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Rating, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list ratings", zap.Error(err))
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	ratings := []*entity.Rating{}
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			r.log.Error("Failed to scan rating row", zap.Error(err))
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, nil
}

func (r *ratingRepository) DeleteByTarget(ctx context.Context, target entity.Target) (int64, error) {
	column, err := targetColumn(target)
	if err != nil {
		return 0, fmt.Errorf("delete ratings: %w", err)
	}

	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM ratings WHERE `+column+` = $1`, target.ID)
	if err != nil {
		r.log.Error("Failed to delete ratings by target",
			zap.Error(err),
			zap.String("target", target.String()),
		)
		return 0, fmt.Errorf("delete ratings for %s: %w", target.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *ratingRepository) DeleteByOutletFoodItems(ctx context.Context, outletID uuid.UUID) (int64, error) {
	query := `
		DELETE FROM ratings
		WHERE food_item_id IN (SELECT id FROM food_items WHERE outlet_id = $1)
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, outletID)
	if err != nil {
		r.log.Error("Failed to delete food item ratings of outlet",
			zap.Error(err),
			zap.String("outlet_id", outletID.String()),
		)
		return 0, fmt.Errorf("delete food item ratings of outlet %s: %w", outletID.String(), err)
	}

	return result.RowsAffected(), nil
}
