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

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *entity.Complaint) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error)
	FindAll(ctx context.Context) ([]*entity.Complaint, error)
	FindByOutletID(ctx context.Context, outletID uuid.UUID) ([]*entity.Complaint, error)
	MarkResolved(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOutletID(ctx context.Context, outletID uuid.UUID) (int64, error)
}

type complaintRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewComplaintRepository(db database.PgxIface, log *zap.Logger) ComplaintRepository {
	return &complaintRepository{
		db:  db,
		log: log.With(zap.String("repository", "complaint")),
	}
}

const complaintSelect = `
	SELECT c.id, c.user_id, c.outlet_id, c.complaint_text, c.is_anonymous, c.is_resolved,
	       c.created_at, c.updated_at, u.name, u.email, o.name
	FROM complaints c
	JOIN users u ON u.id = c.user_id
	JOIN outlets o ON o.id = c.outlet_id
`

func scanComplaint(row pgx.Row) (*entity.Complaint, error) {
	var complaint entity.Complaint
	err := row.Scan(
		&complaint.ID,
		&complaint.UserID,
		&complaint.OutletID,
		&complaint.ComplaintText,
		&complaint.IsAnonymous,
		&complaint.IsResolved,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
		&complaint.AuthorName,
		&complaint.AuthorEmail,
		&complaint.OutletName,
	)
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	query := `
		INSERT INTO complaints (id, user_id, outlet_id, complaint_text, is_anonymous,
		                        is_resolved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		complaint.ID,
		complaint.UserID,
		complaint.OutletID,
		complaint.ComplaintText,
		complaint.IsAnonymous,
		complaint.IsResolved,
		complaint.CreatedAt,
		complaint.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create complaint",
			zap.Error(err),
			zap.String("user_id", complaint.UserID.String()),
			zap.String("outlet_id", complaint.OutletID.String()),
		)
		return fmt.Errorf("create complaint for outlet %s: %w", complaint.OutletID.String(), err)
	}

	return nil
}

func (r *complaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error) {
	complaint, err := scanComplaint(database.Conn(ctx, r.db).QueryRow(ctx, complaintSelect+` WHERE c.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find complaint by ID",
			zap.Error(err),
			zap.String("complaint_id", id.String()),
		)
		return nil, fmt.Errorf("find complaint by ID %s: %w", id.String(), err)
	}

	return complaint, nil
}

func (r *complaintRepository) FindAll(ctx context.Context) ([]*entity.Complaint, error) {
	return r.list(ctx, complaintSelect+` ORDER BY c.created_at DESC, c.id DESC`)
}

func (r *complaintRepository) FindByOutletID(ctx context.Context, outletID uuid.UUID) ([]*entity.Complaint, error) {
	return r.list(ctx, complaintSelect+` WHERE c.outlet_id = $1 ORDER BY c.created_at DESC, c.id DESC`, outletID)
}

func (r *complaintRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Complaint, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list complaints", zap.Error(err))
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer rows.Close()

	complaints := []*entity.Complaint{}
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			r.log.Error("Failed to scan complaint row", zap.Error(err))
			return nil, fmt.Errorf("scan complaint row: %w", err)
		}
		complaints = append(complaints, complaint)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate complaint rows: %w", err)
	}

	return complaints, nil
}

func (r *complaintRepository) MarkResolved(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE complaints SET is_resolved = TRUE, updated_at = NOW() WHERE id = $1`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to resolve complaint",
			zap.Error(err),
			zap.String("complaint_id", id.String()),
		)
		return fmt.Errorf("resolve complaint %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("resolve complaint %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *complaintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM complaints WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete complaint",
			zap.Error(err),
			zap.String("complaint_id", id.String()),
		)
		return fmt.Errorf("delete complaint %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete complaint %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Complaint deleted", zap.String("complaint_id", id.String()))
	return nil
}

func (r *complaintRepository) DeleteByOutletID(ctx context.Context, outletID uuid.UUID) (int64, error) {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM complaints WHERE outlet_id = $1`, outletID)
	if err != nil {
		r.log.Error("Failed to delete complaints by outlet",
			zap.Error(err),
			zap.String("outlet_id", outletID.String()),
		)
		return 0, fmt.Errorf("delete complaints by outlet %s: %w", outletID.String(), err)
	}

	return result.RowsAffected(), nil
}
