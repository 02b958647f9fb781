package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/localtrades/contractor-directory/internal/repository"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type ContractorService interface {
	// Search returns one ranked page of contractors matching the filters.
	// Page and limit must already be clamped by the transport's validation.
	Search(ctx context.Context, filters domain.SearchFilters, page, limit int) (domain.Page[domain.Contractor], error)

	GetContractor(ctx context.Context, id string) (*domain.Contractor, error)
	CreateContractor(ctx context.Context, contractor domain.Contractor, categoryIDs []string) (*domain.Contractor, error)
	UpdateContractor(ctx context.Context, contractor domain.Contractor, categoryIDs []string) (*domain.Contractor, error)
}

type ContractorServiceImpl struct {
	log  *slog.Logger
	repo repository.ContractorRepository
}

func NewContractorService(repo repository.ContractorRepository, log *slog.Logger) *ContractorServiceImpl {
	return &ContractorServiceImpl{
		log:  log,
		repo: repo,
	}
}

func (s *ContractorServiceImpl) Search(ctx context.Context, filters domain.SearchFilters, page, limit int) (domain.Page[domain.Contractor], error) {
	const op = "internal.service.contractor.Search"

	result, err := s.repo.Search(ctx, filters, page, limit)
	if err != nil {
		return domain.Page[domain.Contractor]{}, fmt.Errorf("repo.Search failed: %w", err)
	}

	s.log.Debug("contractor search completed",
		slog.String("op", op),
		slog.Int("total", result.Total),
		slog.Int("page", result.Page),
	)

	return result, nil
}

func (s *ContractorServiceImpl) GetContractor(ctx context.Context, id string) (*domain.Contractor, error) {
	contractor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("repo.GetByID failed: %w", err)
	}

	return contractor, nil
}

func (s *ContractorServiceImpl) CreateContractor(ctx context.Context, contractor domain.Contractor, categoryIDs []string) (*domain.Contractor, error) {
	const op = "internal.service.contractor.CreateContractor"
	log := s.log.With(slog.String("op", op), slog.String("business_name", contractor.BusinessName))

	contractor.ID = uuid.NewString()

	// The summary pair starts at its empty-set value and is owned by the
	// rating aggregator from here on.
	contractor.AverageRating = 0
	contractor.TotalReviews = 0

	if err := s.repo.Create(ctx, &contractor, categoryIDs); err != nil {
		return nil, fmt.Errorf("repo.Create failed: %w", err)
	}

	log.Info("contractor created", slog.String("contractor_id", contractor.ID))

	return s.GetContractor(ctx, contractor.ID)
}

func (s *ContractorServiceImpl) UpdateContractor(ctx context.Context, contractor domain.Contractor, categoryIDs []string) (*domain.Contractor, error) {
	const op = "internal.service.contractor.UpdateContractor"

	if err := s.repo.Update(ctx, &contractor, categoryIDs); err != nil {
		return nil, fmt.Errorf("repo.Update failed: %w", err)
	}

	s.log.Info("contractor updated", slog.String("op", op), slog.String("contractor_id", contractor.ID))

	return s.GetContractor(ctx, contractor.ID)
}
