package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/localtrades/contractor-directory/internal/repository"
	"github.com/stretchr/testify/mock"
)

type ContractorRepositoryMock struct {
	mock.Mock
}

var _ repository.ContractorRepository = (*ContractorRepositoryMock)(nil)

func (m *ContractorRepositoryMock) Search(ctx context.Context, filters domain.SearchFilters, page, limit int) (domain.Page[domain.Contractor], error) {
	args := m.Called(ctx, filters, page, limit)
	return args.Get(0).(domain.Page[domain.Contractor]), args.Error(1)
}

func (m *ContractorRepositoryMock) GetByID(ctx context.Context, id string) (*domain.Contractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Contractor), args.Error(1)
}

func (m *ContractorRepositoryMock) GetByEmail(ctx context.Context, email string) (*domain.Contractor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Contractor), args.Error(1)
}

func (m *ContractorRepositoryMock) Create(ctx context.Context, contractor *domain.Contractor, categoryIDs []string) error {
	args := m.Called(ctx, contractor, categoryIDs)
	return args.Error(0)
}

func (m *ContractorRepositoryMock) Update(ctx context.Context, contractor *domain.Contractor, categoryIDs []string) error {
	args := m.Called(ctx, contractor, categoryIDs)
	return args.Error(0)
}

func (m *ContractorRepositoryMock) UpdateRatingSummary(ctx context.Context, ext sqlx.ExtContext, contractorID string, averageRating float64, totalReviews int) error {
	args := m.Called(ctx, ext, contractorID, averageRating, totalReviews)
	return args.Error(0)
}

type ReviewRepositoryMock struct {
	mock.Mock
}

var _ repository.ReviewRepository = (*ReviewRepositoryMock)(nil)

func (m *ReviewRepositoryMock) GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*domain.Review, error) {
	args := m.Called(ctx, ext, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) ListByContractor(ctx context.Context, contractorID string, page, limit int) (domain.Page[domain.Review], error) {
	args := m.Called(ctx, contractorID, page, limit)
	return args.Get(0).(domain.Page[domain.Review]), args.Error(1)
}

func (m *ReviewRepositoryMock) ListOverallRatings(ctx context.Context, ext sqlx.ExtContext, contractorID string) ([]float64, error) {
	args := m.Called(ctx, ext, contractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]float64), args.Error(1)
}

func (m *ReviewRepositoryMock) Create(ctx context.Context, tx *sqlx.Tx, review *domain.Review) error {
	args := m.Called(ctx, tx, review)
	return args.Error(0)
}

func (m *ReviewRepositoryMock) Update(ctx context.Context, tx *sqlx.Tx, review *domain.Review) error {
	args := m.Called(ctx, tx, review)
	return args.Error(0)
}

func (m *ReviewRepositoryMock) Delete(ctx context.Context, tx *sqlx.Tx, id string) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *ReviewRepositoryMock) AddPhotos(ctx context.Context, reviewID string, photos []domain.ReviewPhoto) error {
	args := m.Called(ctx, reviewID, photos)
	return args.Error(0)
}

func (m *ReviewRepositoryMock) AddDocument(ctx context.Context, reviewID string, doc domain.ReviewDocument) error {
	args := m.Called(ctx, reviewID, doc)
	return args.Error(0)
}

func (m *ReviewRepositoryMock) Vote(ctx context.Context, id string, helpful bool) error {
	args := m.Called(ctx, id, helpful)
	return args.Error(0)
}

type CategoryRepositoryMock struct {
	mock.Mock
}

var _ repository.CategoryRepository = (*CategoryRepositoryMock)(nil)

func (m *CategoryRepositoryMock) ListAll(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *CategoryRepositoryMock) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *CategoryRepositoryMock) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) GetByFacebookID(ctx context.Context, facebookID string) (*domain.User, error) {
	args := m.Called(ctx, facebookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type AdvertisementRepositoryMock struct {
	mock.Mock
}

var _ repository.AdvertisementRepository = (*AdvertisementRepositoryMock)(nil)

func (m *AdvertisementRepositoryMock) Create(ctx context.Context, ad *domain.Advertisement) error {
	args := m.Called(ctx, ad)
	return args.Error(0)
}

func (m *AdvertisementRepositoryMock) GetByID(ctx context.Context, id string) (*domain.Advertisement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Advertisement), args.Error(1)
}

func (m *AdvertisementRepositoryMock) ListActive(ctx context.Context, adType domain.AdvertisementType, now time.Time) ([]domain.Advertisement, error) {
	args := m.Called(ctx, adType, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Advertisement), args.Error(1)
}

func (m *AdvertisementRepositoryMock) IncrementImpressions(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AdvertisementRepositoryMock) IncrementClicks(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type DisputeRepositoryMock struct {
	mock.Mock
}

var _ repository.DisputeRepository = (*DisputeRepositoryMock)(nil)

func (m *DisputeRepositoryMock) Create(ctx context.Context, dispute *domain.ReviewDispute) error {
	args := m.Called(ctx, dispute)
	return args.Error(0)
}

func (m *DisputeRepositoryMock) GetByID(ctx context.Context, id string) (*domain.ReviewDispute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ReviewDispute), args.Error(1)
}

func (m *DisputeRepositoryMock) ListByContractor(ctx context.Context, contractorID string) ([]domain.ReviewDispute, error) {
	args := m.Called(ctx, contractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ReviewDispute), args.Error(1)
}

func (m *DisputeRepositoryMock) UpdateStatus(ctx context.Context, dispute *domain.ReviewDispute) error {
	args := m.Called(ctx, dispute)
	return args.Error(0)
}

// DBMock satisfies the service DB interface: the embedded sqlx.ExtContext is
// never exercised because repository mocks intercept all calls receiving it.
type DBMock struct {
	mock.Mock
	sqlx.ExtContext
}

var _ DB = (*DBMock)(nil)

func (m *DBMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}
