package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/localtrades/contractor-directory/internal/repository"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, slug string) (*domain.Category, error)
	CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
}

type CategoryServiceImpl struct {
	log  *slog.Logger
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository, log *slog.Logger) *CategoryServiceImpl {
	return &CategoryServiceImpl{
		log:  log,
		repo: repo,
	}
}

func (s *CategoryServiceImpl) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListAll failed: %w", err)
	}

	return categories, nil
}

func (s *CategoryServiceImpl) GetCategory(ctx context.Context, slug string) (*domain.Category, error) {
	category, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("repo.GetBySlug failed: %w", err)
	}

	return category, nil
}

func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	const op = "internal.service.category.CreateCategory"

	category.ID = uuid.NewString()

	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, fmt.Errorf("repo.Create failed: %w", err)
	}

	s.log.Info("category created", slog.String("op", op), slog.String("slug", category.Slug))

	return &category, nil
}
