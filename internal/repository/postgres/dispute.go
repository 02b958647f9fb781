package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/localtrades/contractor-directory/internal/apperrors"
	"github.com/localtrades/contractor-directory/internal/domain"
)

type DisputeRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewDisputeRepository(db *sqlx.DB, log *slog.Logger) *DisputeRepository {
	return &DisputeRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const disputeColumns = `id, review_id, contractor_id, reason, description, status,
	admin_notes, resolution, created_at, updated_at, resolved_at`

func (dr *DisputeRepository) Create(ctx context.Context, dispute *domain.ReviewDispute) error {
	const op = "internal.repository.postgres.CreateDispute"

	query, args, err := dr.sq.Insert("review_disputes").
		Columns("id", "review_id", "contractor_id", "reason", "description", "status").
		Values(dispute.ID, dispute.ReviewID, dispute.ContractorID, dispute.Reason,
			dispute.Description, dispute.Status).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := dr.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w: review or contractor does not exist", op, apperrors.ErrNotFound)
		}

		return &apperrors.StorageError{Op: op, Err: err}
	}

	dr.log.Info("dispute created", slog.String("op", op), slog.String("dispute_id", dispute.ID))

	return nil
}

func (dr *DisputeRepository) GetByID(ctx context.Context, id string) (*domain.ReviewDispute, error) {
	const op = "internal.repository.postgres.GetDisputeByID"

	query, args, err := dr.sq.Select(disputeColumns).
		From("review_disputes").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var dispute domain.ReviewDispute
	if err := dr.db.GetContext(ctx, &dispute, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: dispute with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, &apperrors.StorageError{Op: op, Err: err}
	}

	return &dispute, nil
}

func (dr *DisputeRepository) ListByContractor(ctx context.Context, contractorID string) ([]domain.ReviewDispute, error) {
	const op = "internal.repository.postgres.ListDisputesByContractor"

	query, args, err := dr.sq.Select(disputeColumns).
		From("review_disputes").
		Where(sq.Eq{"contractor_id": contractorID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var disputes []domain.ReviewDispute
	if err := dr.db.SelectContext(ctx, &disputes, query, args...); err != nil {
		return nil, &apperrors.StorageError{Op: op, Err: err}
	}

	return disputes, nil
}

func (dr *DisputeRepository) UpdateStatus(ctx context.Context, dispute *domain.ReviewDispute) error {
	const op = "internal.repository.postgres.UpdateDisputeStatus"

	query, args, err := dr.sq.Update("review_disputes").
		Set("status", dispute.Status).
		Set("admin_notes", dispute.AdminNotes).
		Set("resolution", dispute.Resolution).
		Set("resolved_at", dispute.ResolvedAt).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": dispute.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := dr.db.ExecContext(ctx, query, args...)
	if err != nil {
		return &apperrors.StorageError{Op: op, Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w: dispute with id '%s'", op, apperrors.ErrNotFound, dispute.ID)
	}

	return nil
}
