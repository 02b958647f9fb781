package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/localtrades/contractor-directory/internal/apperrors"
	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/localtrades/contractor-directory/internal/repository"
	"github.com/localtrades/contractor-directory/internal/storage"
)

type ReviewService interface {
	GetReview(ctx context.Context, id string) (*domain.Review, error)
	ListByContractor(ctx context.Context, contractorID string, page, limit int) (domain.Page[domain.Review], error)

	// CreateReview inserts the review and recomputes the contractor's rating
	// summary in one transaction. The returned review carries the generated id.
	CreateReview(ctx context.Context, review domain.Review) (*domain.Review, error)

	// UpdateReview rewrites a review in place. The contractor's summary is
	// recomputed in the same transaction when the overall rating changed.
	UpdateReview(ctx context.Context, review domain.Review) (*domain.Review, error)

	// DeleteReview removes a review and recomputes the contractor's rating
	// summary in one transaction.
	DeleteReview(ctx context.Context, id string) error

	// RecomputeRating rebuilds a contractor's summary pair from its full
	// review set. Reconciliation hook for stale summaries.
	RecomputeRating(ctx context.Context, contractorID string) error

	VoteReview(ctx context.Context, id string, helpful bool) error

	AttachPhoto(ctx context.Context, reviewID, filename string, r io.Reader, caption *string, sortOrder int) (*domain.ReviewPhoto, error)
	AttachDocument(ctx context.Context, reviewID, filename string, r io.Reader, docType domain.DocumentType, size int64) (*domain.ReviewDocument, error)
}

type ReviewServiceImpl struct {
	BaseService
	ext         sqlx.ExtContext
	log         *slog.Logger
	reviews     repository.ReviewRepository
	contractors repository.ContractorRepository
	files       storage.ObjectStorage
}

func NewReviewService(
	db DB,
	log *slog.Logger,
	reviews repository.ReviewRepository,
	contractors repository.ContractorRepository,
	files storage.ObjectStorage,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		BaseService: NewBaseService(db, log),
		ext:         db,
		log:         log,
		reviews:     reviews,
		contractors: contractors,
		files:       files,
	}
}

func (s *ReviewServiceImpl) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, s.ext, id)
	if err != nil {
		return nil, fmt.Errorf("repo.GetByID failed: %w", err)
	}

	return review, nil
}

func (s *ReviewServiceImpl) ListByContractor(ctx context.Context, contractorID string, page, limit int) (domain.Page[domain.Review], error) {
	result, err := s.reviews.ListByContractor(ctx, contractorID, page, limit)
	if err != nil {
		return domain.Page[domain.Review]{}, fmt.Errorf("repo.ListByContractor failed: %w", err)
	}

	return result, nil
}

func (s *ReviewServiceImpl) CreateReview(ctx context.Context, review domain.Review) (*domain.Review, error) {
	const op = "internal.service.review.CreateReview"
	log := s.log.With(slog.String("op", op), slog.String("contractor_id", review.ContractorID))

	review.ID = uuid.NewString()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if err := s.reviews.Create(ctx, tx, &review); err != nil {
			return err
		}

		return s.recompute(ctx, tx, review.ContractorID)
	})
	if err != nil {
		return nil, err
	}

	log.Info("review created", slog.String("review_id", review.ID))

	return s.GetReview(ctx, review.ID)
}

func (s *ReviewServiceImpl) UpdateReview(ctx context.Context, review domain.Review) (*domain.Review, error) {
	const op = "internal.service.review.UpdateReview"
	log := s.log.With(slog.String("op", op), slog.String("review_id", review.ID))

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		existing, err := s.reviews.GetByID(ctx, tx, review.ID)
		if err != nil {
			return err
		}

		// Identity is immutable once created: a review cannot be moved to
		// another contractor or user.
		review.UserID = existing.UserID
		review.ContractorID = existing.ContractorID

		if err := s.reviews.Update(ctx, tx, &review); err != nil {
			return err
		}

		if review.OverallRating != existing.OverallRating {
			return s.recompute(ctx, tx, existing.ContractorID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("review updated")

	return s.GetReview(ctx, review.ID)
}

func (s *ReviewServiceImpl) DeleteReview(ctx context.Context, id string) error {
	const op = "internal.service.review.DeleteReview"
	log := s.log.With(slog.String("op", op), slog.String("review_id", id))

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		existing, err := s.reviews.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := s.reviews.Delete(ctx, tx, id); err != nil {
			return err
		}

		return s.recompute(ctx, tx, existing.ContractorID)
	})
	if err != nil {
		return err
	}

	log.Info("review deleted")

	return nil
}

func (s *ReviewServiceImpl) RecomputeRating(ctx context.Context, contractorID string) error {
	const op = "internal.service.review.RecomputeRating"

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		return s.recompute(ctx, tx, contractorID)
	})
	if err != nil {
		return err
	}

	s.log.Info("rating recomputed", slog.String("op", op), slog.String("contractor_id", contractorID))

	return nil
}

// recompute rebuilds the contractor's (average_rating, total_reviews) pair
// from the full review set rather than adjusting it incrementally, so a
// recompute always converges to the truth regardless of what state it found.
// The average is exactly 0 for an empty set.
func (s *ReviewServiceImpl) recompute(ctx context.Context, tx *sqlx.Tx, contractorID string) error {
	ratings, err := s.reviews.ListOverallRatings(ctx, tx, contractorID)
	if err != nil {
		return &apperrors.AggregationError{ContractorID: contractorID, Err: err}
	}

	var average float64

	if len(ratings) > 0 {
		var sum float64
		for _, rating := range ratings {
			sum += rating
		}

		average = sum / float64(len(ratings))
	}

	if err := s.contractors.UpdateRatingSummary(ctx, tx, contractorID, average, len(ratings)); err != nil {
		return &apperrors.AggregationError{ContractorID: contractorID, Err: err}
	}

	return nil
}

func (s *ReviewServiceImpl) VoteReview(ctx context.Context, id string, helpful bool) error {
	if err := s.reviews.Vote(ctx, id, helpful); err != nil {
		return fmt.Errorf("repo.Vote failed: %w", err)
	}

	return nil
}

func (s *ReviewServiceImpl) AttachPhoto(ctx context.Context, reviewID, filename string, r io.Reader, caption *string, sortOrder int) (*domain.ReviewPhoto, error) {
	const op = "internal.service.review.AttachPhoto"

	if _, err := s.reviews.GetByID(ctx, s.ext, reviewID); err != nil {
		return nil, fmt.Errorf("repo.GetByID failed: %w", err)
	}

	uploaded, err := s.files.Upload(ctx, filename, r, storage.PresetReviewPhoto)
	if err != nil {
		return nil, fmt.Errorf("%s: upload failed: %w", op, err)
	}

	photo := domain.ReviewPhoto{
		ID:           uuid.NewString(),
		ReviewID:     reviewID,
		URL:          uploaded.URL,
		ThumbnailURL: uploaded.ThumbnailURL,
		Caption:      caption,
		SortOrder:    sortOrder,
	}

	if err := s.reviews.AddPhotos(ctx, reviewID, []domain.ReviewPhoto{photo}); err != nil {
		// The photo record failed to persist; drop the orphaned upload.
		if delErr := s.files.Delete(ctx, uploaded.URL); delErr != nil {
			s.log.Error("failed to delete orphaned upload", slog.String("op", op), slog.String("url", uploaded.URL))
		}

		return nil, fmt.Errorf("repo.AddPhotos failed: %w", err)
	}

	return &photo, nil
}

func (s *ReviewServiceImpl) AttachDocument(ctx context.Context, reviewID, filename string, r io.Reader, docType domain.DocumentType, size int64) (*domain.ReviewDocument, error) {
	const op = "internal.service.review.AttachDocument"

	if _, err := s.reviews.GetByID(ctx, s.ext, reviewID); err != nil {
		return nil, fmt.Errorf("repo.GetByID failed: %w", err)
	}

	uploaded, err := s.files.Upload(ctx, filename, r, storage.PresetDocument)
	if err != nil {
		return nil, fmt.Errorf("%s: upload failed: %w", op, err)
	}

	doc := domain.ReviewDocument{
		ID:       uuid.NewString(),
		ReviewID: reviewID,
		Type:     docType,
		URL:      uploaded.URL,
		Filename: filename,
		Size:     size,
	}

	if err := s.reviews.AddDocument(ctx, reviewID, doc); err != nil {
		if delErr := s.files.Delete(ctx, uploaded.URL); delErr != nil {
			s.log.Error("failed to delete orphaned upload", slog.String("op", op), slog.String("url", uploaded.URL))
		}

		return nil, fmt.Errorf("repo.AddDocument failed: %w", err)
	}

	return &doc, nil
}
