package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/localtrades/contractor-directory/internal/apperrors"
	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDisputeService(repoMock *DisputeRepositoryMock) *DisputeServiceImpl {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	service := NewDisputeService(repoMock, logger)
	service.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	return service
}

func TestDisputeServiceImpl_FileDispute(t *testing.T) {
	ctx := context.Background()

	repoMock := new(DisputeRepositoryMock)
	repoMock.On("Create", ctx, mock.MatchedBy(func(d *domain.ReviewDispute) bool {
		// A fresh dispute always starts pending with clean admin fields.
		return d.ID != "" &&
			d.Status == domain.DisputeStatusPending &&
			d.AdminNotes == nil && d.Resolution == nil && d.ResolvedAt == nil
	})).Return(nil).Once()
	repoMock.On("GetByID", ctx, mock.AnythingOfType("string")).Return(&domain.ReviewDispute{
		Status: domain.DisputeStatusPending,
	}, nil).Once()

	service := newDisputeService(repoMock)

	created, err := service.FileDispute(ctx, domain.ReviewDispute{
		ReviewID:     "review-1",
		ContractorID: "contractor-1",
		Reason:       "factually wrong",
		Description:  "the work described never took place at this address",
		// Caller-supplied workflow fields must be ignored.
		Status: domain.DisputeStatusResolved,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeStatusPending, created.Status)

	repoMock.AssertExpectations(t)
}

func TestDisputeServiceImpl_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	notes := "reviewed the evidence"
	resolution := "review stays up"

	testCases := []struct {
		name          string
		current       domain.DisputeStatus
		newStatus     domain.DisputeStatus
		expectWrite   bool
		expectedError error
		checkResolved bool
	}{
		{
			name:        "pending to under_review",
			current:     domain.DisputeStatusPending,
			newStatus:   domain.DisputeStatusUnderReview,
			expectWrite: true,
		},
		{
			name:          "under_review to resolved stamps resolved_at",
			current:       domain.DisputeStatusUnderReview,
			newStatus:     domain.DisputeStatusResolved,
			expectWrite:   true,
			checkResolved: true,
		},
		{
			name:          "pending to rejected stamps resolved_at",
			current:       domain.DisputeStatusPending,
			newStatus:     domain.DisputeStatusRejected,
			expectWrite:   true,
			checkResolved: true,
		},
		{
			name:          "resolved dispute cannot change again",
			current:       domain.DisputeStatusResolved,
			newStatus:     domain.DisputeStatusUnderReview,
			expectedError: apperrors.ErrDisputeResolved,
		},
		{
			name:          "rejected dispute cannot change again",
			current:       domain.DisputeStatusRejected,
			newStatus:     domain.DisputeStatusResolved,
			expectedError: apperrors.ErrDisputeResolved,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repoMock := new(DisputeRepositoryMock)
			repoMock.On("GetByID", ctx, "dispute-1").Return(&domain.ReviewDispute{
				ID:     "dispute-1",
				Status: tc.current,
			}, nil).Once()

			if tc.expectWrite {
				repoMock.On("UpdateStatus", ctx, mock.MatchedBy(func(d *domain.ReviewDispute) bool {
					if d.Status != tc.newStatus {
						return false
					}
					if tc.checkResolved {
						return d.ResolvedAt != nil
					}

					return d.ResolvedAt == nil
				})).Return(nil).Once()
				repoMock.On("GetByID", ctx, "dispute-1").Return(&domain.ReviewDispute{
					ID:     "dispute-1",
					Status: tc.newStatus,
				}, nil).Once()
			}

			service := newDisputeService(repoMock)

			updated, err := service.UpdateStatus(ctx, "dispute-1", tc.newStatus, &notes, &resolution)

			if tc.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.newStatus, updated.Status)
			}

			repoMock.AssertExpectations(t)
		})
	}
}
