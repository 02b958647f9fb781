package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/localtrades/contractor-directory/internal/apperrors"
	"github.com/localtrades/contractor-directory/internal/domain"
)

type AdvertisementRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewAdvertisementRepository(db *sqlx.DB, log *slog.Logger) *AdvertisementRepository {
	return &AdvertisementRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const adColumns = `id, contractor_id, type, title, description, image_url, target_url,
	categories, locations, start_date, end_date, budget, impressions, clicks, active,
	created_at, updated_at`

type advertisementRow struct {
	ID           string                   `db:"id"`
	ContractorID string                   `db:"contractor_id"`
	Type         domain.AdvertisementType `db:"type"`
	Title        string                   `db:"title"`
	Description  *string                  `db:"description"`
	ImageURL     *string                  `db:"image_url"`
	TargetURL    *string                  `db:"target_url"`
	Categories   pq.StringArray           `db:"categories"`
	Locations    pq.StringArray           `db:"locations"`
	StartDate    time.Time                `db:"start_date"`
	EndDate      time.Time                `db:"end_date"`
	Budget       float64                  `db:"budget"`
	Impressions  int                      `db:"impressions"`
	Clicks       int                      `db:"clicks"`
	Active       bool                     `db:"active"`
	CreatedAt    time.Time                `db:"created_at"`
	UpdatedAt    time.Time                `db:"updated_at"`
}

func (r advertisementRow) toDomain() domain.Advertisement {
	return domain.Advertisement{
		ID:           r.ID,
		ContractorID: r.ContractorID,
		Type:         r.Type,
		Title:        r.Title,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		TargetURL:    r.TargetURL,
		Categories:   r.Categories,
		Locations:    r.Locations,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Budget:       r.Budget,
		Impressions:  r.Impressions,
		Clicks:       r.Clicks,
		Active:       r.Active,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (ar *AdvertisementRepository) Create(ctx context.Context, ad *domain.Advertisement) error {
	const op = "internal.repository.postgres.CreateAdvertisement"

	query, args, err := ar.sq.Insert("advertisements").
		Columns("id", "contractor_id", "type", "title", "description", "image_url", "target_url",
			"categories", "locations", "start_date", "end_date", "budget", "active").
		Values(ad.ID, ad.ContractorID, ad.Type, ad.Title, ad.Description, ad.ImageURL, ad.TargetURL,
			pq.StringArray(ad.Categories), pq.StringArray(ad.Locations), ad.StartDate, ad.EndDate,
			ad.Budget, ad.Active).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := ar.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w: contractor with id '%s'", op, apperrors.ErrNotFound, ad.ContractorID)
		}

		return &apperrors.StorageError{Op: op, Err: err}
	}

	ar.log.Info("advertisement created", slog.String("op", op), slog.String("ad_id", ad.ID))

	return nil
}

func (ar *AdvertisementRepository) GetByID(ctx context.Context, id string) (*domain.Advertisement, error) {
	const op = "internal.repository.postgres.GetAdvertisementByID"

	query, args, err := ar.sq.Select(adColumns).
		From("advertisements").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var row advertisementRow
	if err := ar.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: advertisement with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, &apperrors.StorageError{Op: op, Err: err}
	}

	ad := row.toDomain()

	return &ad, nil
}

func (ar *AdvertisementRepository) ListActive(ctx context.Context, adType domain.AdvertisementType, now time.Time) ([]domain.Advertisement, error) {
	const op = "internal.repository.postgres.ListActiveAdvertisements"

	query, args, err := ar.sq.Select(adColumns).
		From("advertisements").
		Where(sq.And{
			sq.Eq{"type": adType, "active": true},
			sq.LtOrEq{"start_date": now},
			sq.GtOrEq{"end_date": now},
		}).
		OrderBy("start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rows []advertisementRow
	if err := ar.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, &apperrors.StorageError{Op: op, Err: err}
	}

	ads := make([]domain.Advertisement, len(rows))
	for i, row := range rows {
		ads[i] = row.toDomain()
	}

	return ads, nil
}

func (ar *AdvertisementRepository) IncrementImpressions(ctx context.Context, id string) error {
	const op = "internal.repository.postgres.IncrementAdImpressions"

	return ar.increment(ctx, op, id, "impressions")
}

func (ar *AdvertisementRepository) IncrementClicks(ctx context.Context, id string) error {
	const op = "internal.repository.postgres.IncrementAdClicks"

	return ar.increment(ctx, op, id, "clicks")
}

func (ar *AdvertisementRepository) increment(ctx context.Context, op, id, column string) error {
	query, args, err := ar.sq.Update("advertisements").
		Set(column, sq.Expr(column+" + 1")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := ar.db.ExecContext(ctx, query, args...)
	if err != nil {
		return &apperrors.StorageError{Op: op, Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w: advertisement with id '%s'", op, apperrors.ErrNotFound, id)
	}

	return nil
}
