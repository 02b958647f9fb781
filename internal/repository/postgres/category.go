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

type CategoryRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewCategoryRepository(db *sqlx.DB, log *slog.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (cr *CategoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	const op = "internal.repository.postgres.ListAllCategories"

	query, args, err := cr.sq.Select("id", "name", "slug", "description", "parent_id").
		From("categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var all []domain.Category
	if err := cr.db.SelectContext(ctx, &all, query, args...); err != nil {
		return nil, &apperrors.StorageError{Op: op, Err: err}
	}

	return buildCategoryTree(all), nil
}

// buildCategoryTree groups categories into a shallow tree: roots in name
// order, each carrying its direct children.
func buildCategoryTree(all []domain.Category) []domain.Category {
	childrenOf := make(map[string][]domain.Category)

	for _, c := range all {
		if c.ParentID != nil {
			childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
		}
	}

	var roots []domain.Category

	for _, c := range all {
		if c.ParentID != nil {
			continue
		}

		c.Children = childrenOf[c.ID]
		roots = append(roots, c)
	}

	return roots
}

func (cr *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	const op = "internal.repository.postgres.GetCategoryBySlug"

	query, args, err := cr.sq.Select("id", "name", "slug", "description", "parent_id").
		From("categories").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var category domain.Category
	if err := cr.db.GetContext(ctx, &category, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: category with slug '%s'", op, apperrors.ErrNotFound, slug)
		}

		return nil, &apperrors.StorageError{Op: op, Err: err}
	}

	childrenQuery, childrenArgs, err := cr.sq.Select("id", "name", "slug", "description", "parent_id").
		From("categories").
		Where(sq.Eq{"parent_id": category.ID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build children query: %w", op, err)
	}

	if err := cr.db.SelectContext(ctx, &category.Children, childrenQuery, childrenArgs...); err != nil {
		return nil, &apperrors.StorageError{Op: op, Err: err}
	}

	return &category, nil
}

func (cr *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const op = "internal.repository.postgres.CreateCategory"

	query, args, err := cr.sq.Insert("categories").
		Columns("id", "name", "slug", "description", "parent_id").
		Values(category.ID, category.Name, category.Slug, category.Description, category.ParentID).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := cr.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return &apperrors.CategoryAlreadyExistsError{Slug: category.Slug}
			}

			if pqErr.Code == "23503" {
				return fmt.Errorf("%s: %w: parent category does not exist", op, apperrors.ErrNotFound)
			}
		}

		return &apperrors.StorageError{Op: op, Err: err}
	}

	cr.log.Info("category created", slog.String("op", op), slog.String("slug", category.Slug))

	return nil
}
