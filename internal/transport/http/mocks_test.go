package http

import (
	"context"
	"io"

	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/localtrades/contractor-directory/internal/identity"
	"github.com/localtrades/contractor-directory/internal/service"
	"github.com/stretchr/testify/mock"
)

type ContractorServiceMock struct {
	mock.Mock
}

var _ service.ContractorService = (*ContractorServiceMock)(nil)

func (m *ContractorServiceMock) Search(ctx context.Context, filters domain.SearchFilters, page, limit int) (domain.Page[domain.Contractor], error) {
	args := m.Called(ctx, filters, page, limit)
	return args.Get(0).(domain.Page[domain.Contractor]), args.Error(1)
}

func (m *ContractorServiceMock) GetContractor(ctx context.Context, id string) (*domain.Contractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Contractor), args.Error(1)
}

func (m *ContractorServiceMock) CreateContractor(ctx context.Context, contractor domain.Contractor, categoryIDs []string) (*domain.Contractor, error) {
	args := m.Called(ctx, contractor, categoryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Contractor), args.Error(1)
}

func (m *ContractorServiceMock) UpdateContractor(ctx context.Context, contractor domain.Contractor, categoryIDs []string) (*domain.Contractor, error) {
	args := m.Called(ctx, contractor, categoryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Contractor), args.Error(1)
}

type ReviewServiceMock struct {
	mock.Mock
}

var _ service.ReviewService = (*ReviewServiceMock)(nil)

func (m *ReviewServiceMock) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewServiceMock) ListByContractor(ctx context.Context, contractorID string, page, limit int) (domain.Page[domain.Review], error) {
	args := m.Called(ctx, contractorID, page, limit)
	return args.Get(0).(domain.Page[domain.Review]), args.Error(1)
}

func (m *ReviewServiceMock) CreateReview(ctx context.Context, review domain.Review) (*domain.Review, error) {
	args := m.Called(ctx, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewServiceMock) UpdateReview(ctx context.Context, review domain.Review) (*domain.Review, error) {
	args := m.Called(ctx, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewServiceMock) DeleteReview(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ReviewServiceMock) RecomputeRating(ctx context.Context, contractorID string) error {
	args := m.Called(ctx, contractorID)
	return args.Error(0)
}

func (m *ReviewServiceMock) VoteReview(ctx context.Context, id string, helpful bool) error {
	args := m.Called(ctx, id, helpful)
	return args.Error(0)
}

func (m *ReviewServiceMock) AttachPhoto(ctx context.Context, reviewID, filename string, r io.Reader, caption *string, sortOrder int) (*domain.ReviewPhoto, error) {
	args := m.Called(ctx, reviewID, filename, r, caption, sortOrder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ReviewPhoto), args.Error(1)
}

func (m *ReviewServiceMock) AttachDocument(ctx context.Context, reviewID, filename string, r io.Reader, docType domain.DocumentType, size int64) (*domain.ReviewDocument, error) {
	args := m.Called(ctx, reviewID, filename, r, docType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ReviewDocument), args.Error(1)
}

type CategoryServiceMock struct {
	mock.Mock
}

var _ service.CategoryService = (*CategoryServiceMock)(nil)

func (m *CategoryServiceMock) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *CategoryServiceMock) GetCategory(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *CategoryServiceMock) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Category), args.Error(1)
}

type UserServiceMock struct {
	mock.Mock
}

var _ service.UserService = (*UserServiceMock)(nil)

func (m *UserServiceMock) GetUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) FindOrCreateFromProfile(ctx context.Context, profile identity.Profile) (*domain.User, *identity.Session, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).(*domain.User), args.Get(1).(*identity.Session), args.Error(2)
}

type AdvertisementServiceMock struct {
	mock.Mock
}

var _ service.AdvertisementService = (*AdvertisementServiceMock)(nil)

func (m *AdvertisementServiceMock) CreateAdvertisement(ctx context.Context, ad domain.Advertisement) (*domain.Advertisement, error) {
	args := m.Called(ctx, ad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Advertisement), args.Error(1)
}

func (m *AdvertisementServiceMock) GetAdvertisement(ctx context.Context, id string) (*domain.Advertisement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Advertisement), args.Error(1)
}

func (m *AdvertisementServiceMock) ListActive(ctx context.Context, adType domain.AdvertisementType) ([]domain.Advertisement, error) {
	args := m.Called(ctx, adType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Advertisement), args.Error(1)
}

func (m *AdvertisementServiceMock) TrackImpression(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AdvertisementServiceMock) TrackClick(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type DisputeServiceMock struct {
	mock.Mock
}

var _ service.DisputeService = (*DisputeServiceMock)(nil)

func (m *DisputeServiceMock) FileDispute(ctx context.Context, dispute domain.ReviewDispute) (*domain.ReviewDispute, error) {
	args := m.Called(ctx, dispute)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ReviewDispute), args.Error(1)
}

func (m *DisputeServiceMock) GetDispute(ctx context.Context, id string) (*domain.ReviewDispute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ReviewDispute), args.Error(1)
}

func (m *DisputeServiceMock) ListByContractor(ctx context.Context, contractorID string) ([]domain.ReviewDispute, error) {
	args := m.Called(ctx, contractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ReviewDispute), args.Error(1)
}

func (m *DisputeServiceMock) UpdateStatus(ctx context.Context, id string, status domain.DisputeStatus, adminNotes, resolution *string) (*domain.ReviewDispute, error) {
	args := m.Called(ctx, id, status, adminNotes, resolution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ReviewDispute), args.Error(1)
}
