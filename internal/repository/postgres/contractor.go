package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/localtrades/contractor-directory/internal/apperrors"
	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/localtrades/contractor-directory/pkg/logger/sl"
)

type ContractorRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewContractorRepository(db *sqlx.DB, log *slog.Logger) *ContractorRepository {
	return &ContractorRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const contractorColumns = `id, business_name, owner_name, email, phone, website, description,
	years_in_business, license_number, insurance_info, service_radius, service_areas,
	verified, featured_until, average_rating, total_reviews, created_at, updated_at`

// contractorRow mirrors domain.Contractor with pq-scannable array fields.
type contractorRow struct {
	ID              string         `db:"id"`
	BusinessName    string         `db:"business_name"`
	OwnerName       string         `db:"owner_name"`
	Email           string         `db:"email"`
	Phone           string         `db:"phone"`
	Website         *string        `db:"website"`
	Description     *string        `db:"description"`
	YearsInBusiness int            `db:"years_in_business"`
	LicenseNumber   *string        `db:"license_number"`
	InsuranceInfo   *string        `db:"insurance_info"`
	ServiceRadius   int            `db:"service_radius"`
	ServiceAreas    pq.StringArray `db:"service_areas"`
	Verified        bool           `db:"verified"`
	FeaturedUntil   *time.Time     `db:"featured_until"`
	AverageRating   float64        `db:"average_rating"`
	TotalReviews    int            `db:"total_reviews"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (r contractorRow) toDomain() domain.Contractor {
	return domain.Contractor{
		ID:              r.ID,
		BusinessName:    r.BusinessName,
		OwnerName:       r.OwnerName,
		Email:           r.Email,
		Phone:           r.Phone,
		Website:         r.Website,
		Description:     r.Description,
		YearsInBusiness: r.YearsInBusiness,
		LicenseNumber:   r.LicenseNumber,
		InsuranceInfo:   r.InsuranceInfo,
		ServiceRadius:   r.ServiceRadius,
		ServiceAreas:    r.ServiceAreas,
		Verified:        r.Verified,
		FeaturedUntil:   r.FeaturedUntil,
		AverageRating:   r.AverageRating,
		TotalReviews:    r.TotalReviews,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// likeEscaper neutralizes LIKE metacharacters so user input always matches
// literally: a search for "100%" must not match every contractor.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPredicate composes the filter object into one AND-ed predicate.
// Filters absent from the input add no condition. Location, radius and
// featured are intentionally not wired in; see the SearchFilters doc.
func searchPredicate(f domain.SearchFilters) sq.And {
	pred := sq.And{}

	if f.Query != nil && *f.Query != "" {
		like := "%" + likeEscaper.Replace(*f.Query) + "%"
		pred = append(pred, sq.Or{
			sq.ILike{"business_name": like},
			sq.ILike{"description": like},
		})
	}

	if f.Category != nil && *f.Category != "" {
		pred = append(pred, sq.Expr(
			`EXISTS (
				SELECT 1 FROM contractor_categories cc
				JOIN categories cat ON cat.id = cc.category_id
				WHERE cc.contractor_id = contractors.id AND cat.slug = ?
			)`, *f.Category,
		))
	}

	if f.MinRating != nil {
		pred = append(pred, sq.GtOrEq{"average_rating": *f.MinRating})
	}

	if f.MinYearsInBusiness != nil {
		pred = append(pred, sq.GtOrEq{"years_in_business": *f.MinYearsInBusiness})
	}

	if f.Verified != nil {
		pred = append(pred, sq.Eq{"verified": *f.Verified})
	}

	return pred
}

// searchOrder is the fixed ranking: contractors featured at query time first,
// then average rating, then review count, all descending. The id tail makes
// the order total, which keeps page boundaries deterministic when several
// contractors tie on every ranking key.
var searchOrder = []string{
	"(featured_until IS NOT NULL AND featured_until > NOW()) DESC",
	"average_rating DESC",
	"total_reviews DESC",
	"id ASC",
}

func (cr *ContractorRepository) Search(ctx context.Context, filters domain.SearchFilters, page, limit int) (domain.Page[domain.Contractor], error) {
	const op = "internal.repository.postgres.Search"

	var zero domain.Page[domain.Contractor]

	pred := searchPredicate(filters)

	countBuilder := cr.sq.Select("COUNT(*)").From("contractors")
	selectBuilder := cr.sq.Select(contractorColumns).From("contractors")

	if len(pred) > 0 {
		countBuilder = countBuilder.Where(pred)
		selectBuilder = selectBuilder.Where(pred)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return zero, fmt.Errorf("%s: failed to build count query: %w", op, err)
	}

	var total int
	if err := cr.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return zero, &apperrors.StorageError{Op: op, Err: err}
	}

	offset := (page - 1) * limit

	query, args, err := selectBuilder.
		OrderBy(searchOrder...).
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("%s: failed to build select query: %w", op, err)
	}

	var rows []contractorRow
	if err := cr.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return zero, &apperrors.StorageError{Op: op, Err: err}
	}

	contractors := make([]domain.Contractor, len(rows))
	ids := make([]string, len(rows))

	for i, row := range rows {
		contractors[i] = row.toDomain()
		ids[i] = row.ID
	}

	if err := cr.attachCategories(ctx, contractors, ids); err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	return domain.NewPage(contractors, total, page, limit), nil
}

type membershipRow struct {
	ContractorID string  `db:"contractor_id"`
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Slug         string  `db:"slug"`
	Description  *string `db:"description"`
	ParentID     *string `db:"parent_id"`
}

func (cr *ContractorRepository) attachCategories(ctx context.Context, contractors []domain.Contractor, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := cr.sq.Select("cc.contractor_id", "cat.id", "cat.name", "cat.slug", "cat.description", "cat.parent_id").
		From("contractor_categories cc").
		Join("categories cat ON cat.id = cc.category_id").
		Where(sq.Eq{"cc.contractor_id": ids}).
		OrderBy("cat.name ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build memberships query: %w", err)
	}

	var rows []membershipRow
	if err := cr.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return &apperrors.StorageError{Op: "attachCategories", Err: err}
	}

	byContractor := make(map[string][]domain.Category, len(ids))
	for _, row := range rows {
		byContractor[row.ContractorID] = append(byContractor[row.ContractorID], domain.Category{
			ID:          row.ID,
			Name:        row.Name,
			Slug:        row.Slug,
			Description: row.Description,
			ParentID:    row.ParentID,
		})
	}

	for i := range contractors {
		contractors[i].Categories = byContractor[contractors[i].ID]
	}

	return nil
}

func (cr *ContractorRepository) GetByID(ctx context.Context, id string) (*domain.Contractor, error) {
	const op = "internal.repository.postgres.GetContractorByID"

	query, args, err := cr.sq.Select(contractorColumns).
		From("contractors").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var row contractorRow
	if err := cr.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: contractor with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, &apperrors.StorageError{Op: op, Err: err}
	}

	contractor := row.toDomain()

	contractors := []domain.Contractor{contractor}
	if err := cr.attachCategories(ctx, contractors, []string{id}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &contractors[0], nil
}

func (cr *ContractorRepository) GetByEmail(ctx context.Context, email string) (*domain.Contractor, error) {
	const op = "internal.repository.postgres.GetContractorByEmail"

	query, args, err := cr.sq.Select(contractorColumns).
		From("contractors").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var row contractorRow
	if err := cr.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: contractor with email '%s'", op, apperrors.ErrNotFound, email)
		}

		return nil, &apperrors.StorageError{Op: op, Err: err}
	}

	contractor := row.toDomain()

	return &contractor, nil
}

func (cr *ContractorRepository) Create(ctx context.Context, contractor *domain.Contractor, categoryIDs []string) error {
	const op = "internal.repository.postgres.CreateContractor"
	log := cr.log.With(slog.String("op", op), slog.String("contractor_id", contractor.ID))

	tx, err := cr.db.Beginx()
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Error("failed to rollback transaction", sl.Err(err))
		}
	}()

	query, args, err := cr.sq.Insert("contractors").
		Columns("id", "business_name", "owner_name", "email", "phone", "website", "description",
			"years_in_business", "license_number", "insurance_info", "service_radius", "service_areas",
			"verified", "featured_until").
		Values(contractor.ID, contractor.BusinessName, contractor.OwnerName, contractor.Email,
			contractor.Phone, contractor.Website, contractor.Description, contractor.YearsInBusiness,
			contractor.LicenseNumber, contractor.InsuranceInfo, contractor.ServiceRadius,
			pq.StringArray(contractor.ServiceAreas), contractor.Verified, contractor.FeaturedUntil).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &apperrors.ContractorAlreadyExistsError{Email: contractor.Email}
		}

		return &apperrors.StorageError{Op: op, Err: err}
	}

	if err := cr.insertMemberships(ctx, tx, contractor.ID, categoryIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	log.Info("contractor created successfully")

	return nil
}

func (cr *ContractorRepository) Update(ctx context.Context, contractor *domain.Contractor, categoryIDs []string) error {
	const op = "internal.repository.postgres.UpdateContractor"
	log := cr.log.With(slog.String("op", op), slog.String("contractor_id", contractor.ID))

	tx, err := cr.db.Beginx()
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Error("failed to rollback transaction", sl.Err(err))
		}
	}()

	query, args, err := cr.sq.Update("contractors").
		Set("business_name", contractor.BusinessName).
		Set("owner_name", contractor.OwnerName).
		Set("email", contractor.Email).
		Set("phone", contractor.Phone).
		Set("website", contractor.Website).
		Set("description", contractor.Description).
		Set("years_in_business", contractor.YearsInBusiness).
		Set("license_number", contractor.LicenseNumber).
		Set("insurance_info", contractor.InsuranceInfo).
		Set("service_radius", contractor.ServiceRadius).
		Set("service_areas", pq.StringArray(contractor.ServiceAreas)).
		Set("verified", contractor.Verified).
		Set("featured_until", contractor.FeaturedUntil).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": contractor.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &apperrors.ContractorAlreadyExistsError{Email: contractor.Email}
		}

		return &apperrors.StorageError{Op: op, Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w: contractor with id '%s'", op, apperrors.ErrNotFound, contractor.ID)
	}

	if categoryIDs != nil {
		deleteQuery, deleteArgs, err := cr.sq.Delete("contractor_categories").
			Where(sq.Eq{"contractor_id": contractor.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%s: failed to build delete query: %w", op, err)
		}

		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return &apperrors.StorageError{Op: op, Err: err}
		}

		if err := cr.insertMemberships(ctx, tx, contractor.ID, categoryIDs); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	log.Info("contractor updated successfully")

	return nil
}

func (cr *ContractorRepository) insertMemberships(ctx context.Context, tx *sqlx.Tx, contractorID string, categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	insertBuilder := cr.sq.Insert("contractor_categories").
		Columns("contractor_id", "category_id")

	for _, categoryID := range categoryIDs {
		insertBuilder = insertBuilder.Values(contractorID, categoryID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build memberships insert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%w: unknown category id", apperrors.ErrNotFound)
		}

		return &apperrors.StorageError{Op: "insertMemberships", Err: err}
	}

	return nil
}

func (cr *ContractorRepository) UpdateRatingSummary(ctx context.Context, ext sqlx.ExtContext, contractorID string, averageRating float64, totalReviews int) error {
	const op = "internal.repository.postgres.UpdateRatingSummary"

	query, args, err := cr.sq.Update("contractors").
		Set("average_rating", averageRating).
		Set("total_reviews", totalReviews).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": contractorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return &apperrors.StorageError{Op: op, Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w: contractor with id '%s'", op, apperrors.ErrNotFound, contractorID)
	}

	return nil
}
