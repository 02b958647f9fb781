// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the service layer.
package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/localtrades/contractor-directory/internal/domain"
)

// ContractorRepository defines the contract for contractor data operations.
type ContractorRepository interface {
	// Search translates the filter object into a query, applies the fixed
	// ranking (featured-and-unexpired first, then average rating, then review
	// count, then id) and returns one offset-based page. Total is counted
	// before pagination. Page and limit are assumed to be clamped upstream.
	Search(ctx context.Context, filters domain.SearchFilters, page, limit int) (domain.Page[domain.Contractor], error)

	// GetByID retrieves a contractor with its category memberships.
	// It returns apperrors.ErrNotFound if the contractor does not exist.
	GetByID(ctx context.Context, id string) (*domain.Contractor, error)

	// GetByEmail retrieves a contractor by its unique email.
	GetByEmail(ctx context.Context, email string) (*domain.Contractor, error)

	// Create inserts a contractor and its category memberships transactionally.
	// It returns apperrors.ErrAlreadyExists if the email is already taken.
	Create(ctx context.Context, contractor *domain.Contractor, categoryIDs []string) error

	// Update rewrites the contractor's profile fields and, when categoryIDs is
	// non-nil, replaces its category memberships.
	Update(ctx context.Context, contractor *domain.Contractor, categoryIDs []string) error

	// UpdateRatingSummary writes the derived (average_rating, total_reviews)
	// pair. Only the rating aggregator calls this; the ext argument lets it
	// run inside the transaction of the triggering review mutation.
	UpdateRatingSummary(ctx context.Context, ext sqlx.ExtContext, contractorID string, averageRating float64, totalReviews int) error
}

// ReviewRepository defines the contract for review data operations.
type ReviewRepository interface {
	// GetByID retrieves a review with its photos and documents.
	// The ext argument allows execution within a transaction (*sqlx.Tx)
	// or directly on a DB connection (*sqlx.DB).
	// It returns apperrors.ErrNotFound if the review does not exist.
	GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*domain.Review, error)

	// ListByContractor returns the contractor's reviews newest-first, paginated.
	ListByContractor(ctx context.Context, contractorID string, page, limit int) (domain.Page[domain.Review], error)

	// ListOverallRatings returns the overall rating of every review belonging
	// to the contractor. Used by the rating aggregator to recompute the
	// summary pair from the full review set.
	ListOverallRatings(ctx context.Context, ext sqlx.ExtContext, contractorID string) ([]float64, error)

	// Create inserts a review. It returns apperrors.ErrNotFound if the
	// referenced contractor or user does not exist.
	Create(ctx context.Context, tx *sqlx.Tx, review *domain.Review) error

	// Update rewrites the review's mutable fields in place.
	Update(ctx context.Context, tx *sqlx.Tx, review *domain.Review) error

	// Delete removes a review and its owned photo/document sub-records.
	Delete(ctx context.Context, tx *sqlx.Tx, id string) error

	// AddPhotos attaches uploaded photos to a review.
	AddPhotos(ctx context.Context, reviewID string, photos []domain.ReviewPhoto) error

	// AddDocument attaches an uploaded estimate or invoice to a review.
	AddDocument(ctx context.Context, reviewID string, doc domain.ReviewDocument) error

	// Vote increments the review's helpful or not-helpful counter.
	Vote(ctx context.Context, id string, helpful bool) error
}

// CategoryRepository defines the contract for category data operations.
type CategoryRepository interface {
	// ListAll returns all categories ordered by name, each root carrying its
	// direct children.
	ListAll(ctx context.Context) ([]domain.Category, error)

	// GetBySlug retrieves a category by its unique slug with its children.
	// It returns apperrors.ErrNotFound if the slug is unknown.
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// Create inserts a category. It returns apperrors.ErrAlreadyExists if the
	// slug is already taken.
	Create(ctx context.Context, category *domain.Category) error
}

// UserRepository defines the contract for user data operations.
// Provider subject identifiers live in separate per-provider columns, so a
// Facebook subject can never be confused with a Google one.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByFacebookID(ctx context.Context, facebookID string) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
}

// AdvertisementRepository defines the contract for advertisement data operations.
type AdvertisementRepository interface {
	Create(ctx context.Context, ad *domain.Advertisement) error
	GetByID(ctx context.Context, id string) (*domain.Advertisement, error)

	// ListActive returns ads of the given type whose date range contains now.
	ListActive(ctx context.Context, adType domain.AdvertisementType, now time.Time) ([]domain.Advertisement, error)

	IncrementImpressions(ctx context.Context, id string) error
	IncrementClicks(ctx context.Context, id string) error
}

// DisputeRepository defines the contract for review dispute data operations.
type DisputeRepository interface {
	Create(ctx context.Context, dispute *domain.ReviewDispute) error
	GetByID(ctx context.Context, id string) (*domain.ReviewDispute, error)
	ListByContractor(ctx context.Context, contractorID string) ([]domain.ReviewDispute, error)

	// UpdateStatus writes the dispute's status, admin notes, resolution and
	// resolved_at fields.
	UpdateStatus(ctx context.Context, dispute *domain.ReviewDispute) error
}
