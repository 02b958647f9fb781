package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/localtrades/contractor-directory/internal/repository"
)

type AdvertisementService interface {
	CreateAdvertisement(ctx context.Context, ad domain.Advertisement) (*domain.Advertisement, error)
	GetAdvertisement(ctx context.Context, id string) (*domain.Advertisement, error)

	// ListActive returns the currently running advertisements of a given type.
	ListActive(ctx context.Context, adType domain.AdvertisementType) ([]domain.Advertisement, error)

	// TrackImpression and TrackClick bump the ad's delivery counters. Both are
	// fire-and-forget from the caller's point of view; a missing ad is still
	// reported so dead placements get noticed.
	TrackImpression(ctx context.Context, id string) error
	TrackClick(ctx context.Context, id string) error
}

type AdvertisementServiceImpl struct {
	log  *slog.Logger
	repo repository.AdvertisementRepository
	now  func() time.Time
}

func NewAdvertisementService(repo repository.AdvertisementRepository, log *slog.Logger) *AdvertisementServiceImpl {
	return &AdvertisementServiceImpl{
		log:  log,
		repo: repo,
		now:  time.Now,
	}
}

func (s *AdvertisementServiceImpl) CreateAdvertisement(ctx context.Context, ad domain.Advertisement) (*domain.Advertisement, error) {
	const op = "internal.service.advertisement.CreateAdvertisement"

	ad.ID = uuid.NewString()
	ad.Impressions = 0
	ad.Clicks = 0
	ad.Active = true

	if err := s.repo.Create(ctx, &ad); err != nil {
		return nil, fmt.Errorf("repo.Create failed: %w", err)
	}

	s.log.Info("advertisement created",
		slog.String("op", op),
		slog.String("ad_id", ad.ID),
		slog.String("type", string(ad.Type)),
	)

	return s.GetAdvertisement(ctx, ad.ID)
}

func (s *AdvertisementServiceImpl) GetAdvertisement(ctx context.Context, id string) (*domain.Advertisement, error) {
	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("repo.GetByID failed: %w", err)
	}

	return ad, nil
}

func (s *AdvertisementServiceImpl) ListActive(ctx context.Context, adType domain.AdvertisementType) ([]domain.Advertisement, error) {
	ads, err := s.repo.ListActive(ctx, adType, s.now())
	if err != nil {
		return nil, fmt.Errorf("repo.ListActive failed: %w", err)
	}

	return ads, nil
}

func (s *AdvertisementServiceImpl) TrackImpression(ctx context.Context, id string) error {
	if err := s.repo.IncrementImpressions(ctx, id); err != nil {
		return fmt.Errorf("repo.IncrementImpressions failed: %w", err)
	}

	return nil
}

func (s *AdvertisementServiceImpl) TrackClick(ctx context.Context, id string) error {
	if err := s.repo.IncrementClicks(ctx, id); err != nil {
		return fmt.Errorf("repo.IncrementClicks failed: %w", err)
	}

	return nil
}
