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

type ReviewRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewReviewRepository(db *sqlx.DB, log *slog.Logger) *ReviewRepository {
	return &ReviewRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const reviewColumns = `id, user_id, contractor_id, overall_rating, quality_rating,
	timeliness_rating, communication_rating, pricing_rating, cleanliness_rating,
	title, content, work_city, work_date, project_cost, would_recommend, verified,
	helpful, not_helpful, created_at, updated_at`

func (rr *ReviewRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*domain.Review, error) {
	const op = "internal.repository.postgres.GetReviewByID"

	query, args, err := rr.sq.Select(reviewColumns).
		From("reviews").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var review domain.Review
	if err := sqlx.GetContext(ctx, ext, &review, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, &apperrors.StorageError{Op: op, Err: err}
	}

	if err := rr.attachFiles(ctx, ext, []*domain.Review{&review}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &review, nil
}

func (rr *ReviewRepository) ListByContractor(ctx context.Context, contractorID string, page, limit int) (domain.Page[domain.Review], error) {
	const op = "internal.repository.postgres.ListReviewsByContractor"

	var zero domain.Page[domain.Review]

	countQuery, countArgs, err := rr.sq.Select("COUNT(*)").
		From("reviews").
		Where(sq.Eq{"contractor_id": contractorID}).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("%s: failed to build count query: %w", op, err)
	}

	var total int
	if err := rr.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return zero, &apperrors.StorageError{Op: op, Err: err}
	}

	offset := (page - 1) * limit

	query, args, err := rr.sq.Select(reviewColumns).
		From("reviews").
		Where(sq.Eq{"contractor_id": contractorID}).
		OrderBy("created_at DESC", "id ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("%s: failed to build select query: %w", op, err)
	}

	var reviews []domain.Review
	if err := rr.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return zero, &apperrors.StorageError{Op: op, Err: err}
	}

	refs := make([]*domain.Review, len(reviews))
	for i := range reviews {
		refs[i] = &reviews[i]
	}

	if err := rr.attachFiles(ctx, rr.db, refs); err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	return domain.NewPage(reviews, total, page, limit), nil
}

func (rr *ReviewRepository) ListOverallRatings(ctx context.Context, ext sqlx.ExtContext, contractorID string) ([]float64, error) {
	const op = "internal.repository.postgres.ListOverallRatings"

	query, args, err := rr.sq.Select("overall_rating").
		From("reviews").
		Where(sq.Eq{"contractor_id": contractorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var ratings []float64
	if err := sqlx.SelectContext(ctx, ext, &ratings, query, args...); err != nil {
		return nil, &apperrors.StorageError{Op: op, Err: err}
	}

	return ratings, nil
}

func (rr *ReviewRepository) Create(ctx context.Context, tx *sqlx.Tx, review *domain.Review) error {
	const op = "internal.repository.postgres.CreateReview"

	query, args, err := rr.sq.Insert("reviews").
		Columns("id", "user_id", "contractor_id", "overall_rating", "quality_rating",
			"timeliness_rating", "communication_rating", "pricing_rating", "cleanliness_rating",
			"title", "content", "work_city", "work_date", "project_cost", "would_recommend").
		Values(review.ID, review.UserID, review.ContractorID, review.OverallRating,
			review.QualityRating, review.TimelinessRating, review.CommunicationRating,
			review.PricingRating, review.CleanlinessRating, review.Title, review.Content,
			review.WorkCity, review.WorkDate, review.ProjectCost, review.WouldRecommend).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w: contractor or user does not exist", op, apperrors.ErrNotFound)
		}

		return &apperrors.StorageError{Op: op, Err: err}
	}

	return nil
}

func (rr *ReviewRepository) Update(ctx context.Context, tx *sqlx.Tx, review *domain.Review) error {
	const op = "internal.repository.postgres.UpdateReview"

	query, args, err := rr.sq.Update("reviews").
		Set("overall_rating", review.OverallRating).
		Set("quality_rating", review.QualityRating).
		Set("timeliness_rating", review.TimelinessRating).
		Set("communication_rating", review.CommunicationRating).
		Set("pricing_rating", review.PricingRating).
		Set("cleanliness_rating", review.CleanlinessRating).
		Set("title", review.Title).
		Set("content", review.Content).
		Set("work_city", review.WorkCity).
		Set("work_date", review.WorkDate).
		Set("project_cost", review.ProjectCost).
		Set("would_recommend", review.WouldRecommend).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": review.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return &apperrors.StorageError{Op: op, Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, review.ID)
	}

	return nil
}

func (rr *ReviewRepository) Delete(ctx context.Context, tx *sqlx.Tx, id string) error {
	const op = "internal.repository.postgres.DeleteReview"

	query, args, err := rr.sq.Delete("reviews").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return &apperrors.StorageError{Op: op, Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, id)
	}

	return nil
}

func (rr *ReviewRepository) AddPhotos(ctx context.Context, reviewID string, photos []domain.ReviewPhoto) error {
	const op = "internal.repository.postgres.AddReviewPhotos"

	if len(photos) == 0 {
		return nil
	}

	insertBuilder := rr.sq.Insert("review_photos").
		Columns("id", "review_id", "url", "thumbnail_url", "caption", "sort_order")

	for _, photo := range photos {
		insertBuilder = insertBuilder.Values(photo.ID, reviewID, photo.URL, photo.ThumbnailURL, photo.Caption, photo.SortOrder)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := rr.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, reviewID)
		}

		return &apperrors.StorageError{Op: op, Err: err}
	}

	return nil
}

func (rr *ReviewRepository) AddDocument(ctx context.Context, reviewID string, doc domain.ReviewDocument) error {
	const op = "internal.repository.postgres.AddReviewDocument"

	query, args, err := rr.sq.Insert("review_documents").
		Columns("id", "review_id", "type", "url", "filename", "size").
		Values(doc.ID, reviewID, doc.Type, doc.URL, doc.Filename, doc.Size).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := rr.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, reviewID)
		}

		return &apperrors.StorageError{Op: op, Err: err}
	}

	return nil
}

func (rr *ReviewRepository) Vote(ctx context.Context, id string, helpful bool) error {
	const op = "internal.repository.postgres.VoteReview"

	column := "not_helpful"
	if helpful {
		column = "helpful"
	}

	query, args, err := rr.sq.Update("reviews").
		Set(column, sq.Expr(column+" + 1")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := rr.db.ExecContext(ctx, query, args...)
	if err != nil {
		return &apperrors.StorageError{Op: op, Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w: review with id '%s'", op, apperrors.ErrNotFound, id)
	}

	return nil
}

func (rr *ReviewRepository) attachFiles(ctx context.Context, ext sqlx.ExtContext, reviews []*domain.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	ids := make([]string, len(reviews))
	byID := make(map[string]*domain.Review, len(reviews))

	for i, review := range reviews {
		ids[i] = review.ID
		byID[review.ID] = reviews[i]
	}

	photosQuery, photosArgs, err := rr.sq.Select("id", "review_id", "url", "thumbnail_url", "caption", "sort_order").
		From("review_photos").
		Where(sq.Eq{"review_id": ids}).
		OrderBy("sort_order ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build photos query: %w", err)
	}

	var photos []domain.ReviewPhoto
	if err := sqlx.SelectContext(ctx, ext, &photos, photosQuery, photosArgs...); err != nil {
		return &apperrors.StorageError{Op: "attachFiles", Err: err}
	}

	for _, photo := range photos {
		review := byID[photo.ReviewID]
		review.Photos = append(review.Photos, photo)
	}

	docsQuery, docsArgs, err := rr.sq.Select("id", "review_id", "type", "url", "filename", "size").
		From("review_documents").
		Where(sq.Eq{"review_id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build documents query: %w", err)
	}

	var docs []domain.ReviewDocument
	if err := sqlx.SelectContext(ctx, ext, &docs, docsQuery, docsArgs...); err != nil {
		return &apperrors.StorageError{Op: "attachFiles", Err: err}
	}

	for _, doc := range docs {
		review := byID[doc.ReviewID]
		review.Documents = append(review.Documents, doc)
	}

	return nil
}
