//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/localtrades/contractor-directory/internal/apperrors"
	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/localtrades/contractor-directory/internal/service"
	"github.com/localtrades/contractor-directory/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewForContractor(userID, contractorID string, overall float64) domain.Review {
	return domain.Review{
		UserID:              userID,
		ContractorID:        contractorID,
		OverallRating:       overall,
		QualityRating:       overall,
		TimelinessRating:    overall,
		CommunicationRating: overall,
		PricingRating:       overall,
		CleanlinessRating:   overall,
		Title:               "A review long enough",
		Content:             "The crew was punctual, the work site was left clean, and the final invoice matched the estimate.",
		WorkCity:            "Austin",
	}
}

func fetchSummary(t *testing.T, contractorID string) (float64, int) {
	t.Helper()

	var summary struct {
		AverageRating float64 `db:"average_rating"`
		TotalReviews  int     `db:"total_reviews"`
	}
	err := testDB.Get(&summary, "SELECT average_rating, total_reviews FROM contractors WHERE id = $1", contractorID)
	require.NoError(t, err)

	return summary.AverageRating, summary.TotalReviews
}

func TestReviewService_AggregationFollowsMutations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	ctx := context.Background()

	reviewRepo := NewReviewRepository(testDB, logger)
	contractorRepo := NewContractorRepository(testDB, logger)
	files := storage.NewMemoryStorage("http://files.test")
	svc := service.NewReviewService(testDB, logger, reviewRepo, contractorRepo, files)

	contractorID := seedContractor(t, testDB, seedContractorOpts{})
	userA := seedUser(t, testDB)
	userB := seedUser(t, testDB)

	// Create: summary follows each mutation.
	first, err := svc.CreateReview(ctx, newReviewForContractor(userA, contractorID, 5))
	require.NoError(t, err)

	avg, total := fetchSummary(t, contractorID)
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, 1, total)

	second, err := svc.CreateReview(ctx, newReviewForContractor(userB, contractorID, 2))
	require.NoError(t, err)

	avg, total = fetchSummary(t, contractorID)
	assert.Equal(t, 3.5, avg)
	assert.Equal(t, 2, total)

	// Update that changes the overall rating recomputes the summary.
	updated := *second
	updated.OverallRating = 4
	_, err = svc.UpdateReview(ctx, updated)
	require.NoError(t, err)

	avg, total = fetchSummary(t, contractorID)
	assert.Equal(t, 4.5, avg)
	assert.Equal(t, 2, total)

	// Delete down to the empty set resets the summary pair.
	require.NoError(t, svc.DeleteReview(ctx, first.ID))
	require.NoError(t, svc.DeleteReview(ctx, second.ID))

	avg, total = fetchSummary(t, contractorID)
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0, total)
}

func TestReviewService_RecomputeRepairsStaleSummary(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	ctx := context.Background()

	reviewRepo := NewReviewRepository(testDB, logger)
	contractorRepo := NewContractorRepository(testDB, logger)
	files := storage.NewMemoryStorage("http://files.test")
	svc := service.NewReviewService(testDB, logger, reviewRepo, contractorRepo, files)

	contractorID := seedContractor(t, testDB, seedContractorOpts{})
	userID := seedUser(t, testDB)

	_, err := svc.CreateReview(ctx, newReviewForContractor(userID, contractorID, 4))
	require.NoError(t, err)

	// Corrupt the summary out of band; a recompute must converge it back.
	_, err = testDB.Exec("UPDATE contractors SET average_rating = 1.0, total_reviews = 99 WHERE id = $1", contractorID)
	require.NoError(t, err)

	require.NoError(t, svc.RecomputeRating(ctx, contractorID))

	avg, total := fetchSummary(t, contractorID)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 1, total)

	// Recompute is idempotent.
	require.NoError(t, svc.RecomputeRating(ctx, contractorID))

	avg, total = fetchSummary(t, contractorID)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 1, total)
}

func TestReviewService_ConcurrentCreatesConverge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	ctx := context.Background()

	reviewRepo := NewReviewRepository(testDB, logger)
	contractorRepo := NewContractorRepository(testDB, logger)
	files := storage.NewMemoryStorage("http://files.test")
	svc := service.NewReviewService(testDB, logger, reviewRepo, contractorRepo, files)

	contractorID := seedContractor(t, testDB, seedContractorOpts{})

	const writers = 8
	ratings := []float64{5, 4, 3, 2, 5, 4, 3, 2}

	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		userID := seedUser(t, testDB)
		rating := ratings[i]

		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateReview(ctx, newReviewForContractor(userID, contractorID, rating))
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// Interleaved recomputes may each have seen a partial review set; a final
	// recompute always converges on the committed set.
	require.NoError(t, svc.RecomputeRating(ctx, contractorID))

	avg, total := fetchSummary(t, contractorID)
	assert.Equal(t, 3.5, avg)
	assert.Equal(t, writers, total)
}

func TestReviewRepository_CRUDAndFiles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	ctx := context.Background()

	repo := NewReviewRepository(testDB, logger)
	contractorID := seedContractor(t, testDB, seedContractorOpts{})
	userID := seedUser(t, testDB)

	review := newReviewForContractor(userID, contractorID, 4)
	review.ID = uuid.NewString()

	tx, err := testDB.Beginx()
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tx, &review))
	require.NoError(t, tx.Commit())

	caption := "before"
	require.NoError(t, repo.AddPhotos(ctx, review.ID, []domain.ReviewPhoto{{
		ID:           uuid.NewString(),
		ReviewID:     review.ID,
		URL:          "http://files.test/p1.jpg",
		ThumbnailURL: "http://files.test/thumb/p1.jpg",
		Caption:      &caption,
		SortOrder:    1,
	}}))
	require.NoError(t, repo.AddDocument(ctx, review.ID, domain.ReviewDocument{
		ID:       uuid.NewString(),
		ReviewID: review.ID,
		Type:     domain.DocumentTypeInvoice,
		URL:      "http://files.test/d1.pdf",
		Filename: "invoice.pdf",
		Size:     2048,
	}))

	fetched, err := repo.GetByID(ctx, testDB, review.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Photos, 1)
	assert.Equal(t, "before", *fetched.Photos[0].Caption)
	require.Len(t, fetched.Documents, 1)
	assert.Equal(t, domain.DocumentTypeInvoice, fetched.Documents[0].Type)

	require.NoError(t, repo.Vote(ctx, review.ID, true))
	require.NoError(t, repo.Vote(ctx, review.ID, true))
	require.NoError(t, repo.Vote(ctx, review.ID, false))

	fetched, err = repo.GetByID(ctx, testDB, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.Helpful)
	assert.Equal(t, 1, fetched.NotHelpful)

	page, err := repo.ListByContractor(ctx, contractorID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Data, 1)
	require.Len(t, page.Data[0].Photos, 1)

	// Deleting the review cascades to its files.
	tx, err = testDB.Beginx()
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, tx, review.ID))
	require.NoError(t, tx.Commit())

	var photoCount int
	require.NoError(t, testDB.Get(&photoCount, "SELECT COUNT(*) FROM review_photos"))
	assert.Zero(t, photoCount)

	_, err = repo.GetByID(ctx, testDB, review.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReviewRepository_Create_UnknownContractor(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	ctx := context.Background()

	repo := NewReviewRepository(testDB, logger)
	userID := seedUser(t, testDB)

	review := newReviewForContractor(userID, uuid.NewString(), 4)
	review.ID = uuid.NewString()

	tx, err := testDB.Beginx()
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.Create(ctx, tx, &review)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
