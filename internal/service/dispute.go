package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/localtrades/contractor-directory/internal/apperrors"
	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/localtrades/contractor-directory/internal/repository"
)

type DisputeService interface {
	// FileDispute opens a pending dispute against a review on behalf of the
	// disputed contractor.
	FileDispute(ctx context.Context, dispute domain.ReviewDispute) (*domain.ReviewDispute, error)

	GetDispute(ctx context.Context, id string) (*domain.ReviewDispute, error)
	ListByContractor(ctx context.Context, contractorID string) ([]domain.ReviewDispute, error)

	// UpdateStatus moves a dispute through its workflow. Terminal disputes
	// (resolved or rejected) cannot be updated again.
	UpdateStatus(ctx context.Context, id string, status domain.DisputeStatus, adminNotes, resolution *string) (*domain.ReviewDispute, error)
}

type DisputeServiceImpl struct {
	log  *slog.Logger
	repo repository.DisputeRepository
	now  func() time.Time
}

func NewDisputeService(repo repository.DisputeRepository, log *slog.Logger) *DisputeServiceImpl {
	return &DisputeServiceImpl{
		log:  log,
		repo: repo,
		now:  time.Now,
	}
}

func (s *DisputeServiceImpl) FileDispute(ctx context.Context, dispute domain.ReviewDispute) (*domain.ReviewDispute, error) {
	const op = "internal.service.dispute.FileDispute"

	dispute.ID = uuid.NewString()
	dispute.Status = domain.DisputeStatusPending
	dispute.AdminNotes = nil
	dispute.Resolution = nil
	dispute.ResolvedAt = nil

	if err := s.repo.Create(ctx, &dispute); err != nil {
		return nil, fmt.Errorf("repo.Create failed: %w", err)
	}

	s.log.Info("dispute filed",
		slog.String("op", op),
		slog.String("dispute_id", dispute.ID),
		slog.String("review_id", dispute.ReviewID),
	)

	return s.GetDispute(ctx, dispute.ID)
}

func (s *DisputeServiceImpl) GetDispute(ctx context.Context, id string) (*domain.ReviewDispute, error) {
	dispute, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("repo.GetByID failed: %w", err)
	}

	return dispute, nil
}

func (s *DisputeServiceImpl) ListByContractor(ctx context.Context, contractorID string) ([]domain.ReviewDispute, error) {
	disputes, err := s.repo.ListByContractor(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("repo.ListByContractor failed: %w", err)
	}

	return disputes, nil
}

func (s *DisputeServiceImpl) UpdateStatus(ctx context.Context, id string, status domain.DisputeStatus, adminNotes, resolution *string) (*domain.ReviewDispute, error) {
	const op = "internal.service.dispute.UpdateStatus"

	dispute, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("repo.GetByID failed: %w", err)
	}

	if dispute.Status == domain.DisputeStatusResolved || dispute.Status == domain.DisputeStatusRejected {
		return nil, apperrors.ErrDisputeResolved
	}

	dispute.Status = status
	if adminNotes != nil {
		dispute.AdminNotes = adminNotes
	}
	if resolution != nil {
		dispute.Resolution = resolution
	}

	if status == domain.DisputeStatusResolved || status == domain.DisputeStatusRejected {
		resolvedAt := s.now()
		dispute.ResolvedAt = &resolvedAt
	}

	if err := s.repo.UpdateStatus(ctx, dispute); err != nil {
		return nil, fmt.Errorf("repo.UpdateStatus failed: %w", err)
	}

	s.log.Info("dispute status updated",
		slog.String("op", op),
		slog.String("dispute_id", id),
		slog.String("status", string(status)),
	)

	return s.GetDispute(ctx, id)
}
