package postgres

import (
	"testing"

	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string    { return &s }
func intPtr(i int) *int          { return &i }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool       { return &b }

func TestSearchPredicate(t *testing.T) {
	t.Run("empty filters add no conditions", func(t *testing.T) {
		pred := searchPredicate(domain.SearchFilters{})
		assert.Empty(t, pred)
	})

	t.Run("query matches business name or description", func(t *testing.T) {
		pred := searchPredicate(domain.SearchFilters{Query: strPtr("plumb")})
		require.Len(t, pred, 1)

		sql, args, err := pred.ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "business_name ILIKE ?")
		assert.Contains(t, sql, "description ILIKE ?")
		assert.Contains(t, sql, " OR ")
		assert.Equal(t, []interface{}{"%plumb%", "%plumb%"}, args)
	})

	t.Run("category filter uses a membership subquery", func(t *testing.T) {
		pred := searchPredicate(domain.SearchFilters{Category: strPtr("plumbing")})
		require.Len(t, pred, 1)

		sql, args, err := pred.ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "EXISTS")
		assert.Contains(t, sql, "contractor_categories")
		assert.Contains(t, sql, "cat.slug = ?")
		assert.Equal(t, []interface{}{"plumbing"}, args)
	})

	t.Run("like metacharacters in the query match literally", func(t *testing.T) {
		pred := searchPredicate(domain.SearchFilters{Query: strPtr(`100% done_right\`)})
		require.Len(t, pred, 1)

		_, args, err := pred.ToSql()
		require.NoError(t, err)
		assert.Equal(t, []interface{}{`%100\% done\_right\\%`, `%100\% done\_right\\%`}, args)
	})

	t.Run("all filters are conjoined", func(t *testing.T) {
		pred := searchPredicate(domain.SearchFilters{
			Query:              strPtr("roof"),
			Category:           strPtr("roofing"),
			MinRating:          floatPtr(4),
			MinYearsInBusiness: intPtr(5),
			Verified:           boolPtr(true),
		})
		require.Len(t, pred, 5)

		sql, args, err := pred.ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "average_rating >= ?")
		assert.Contains(t, sql, "years_in_business >= ?")
		assert.Contains(t, sql, "verified = ?")
		assert.Len(t, args, 5)
	})

	t.Run("location radius and featured impose no predicate", func(t *testing.T) {
		pred := searchPredicate(domain.SearchFilters{
			Location: strPtr("Austin"),
			Radius:   intPtr(50),
			Featured: boolPtr(true),
		})
		assert.Empty(t, pred)
	})

	t.Run("empty query string adds no condition", func(t *testing.T) {
		pred := searchPredicate(domain.SearchFilters{Query: strPtr("")})
		assert.Empty(t, pred)
	})
}

func TestSearchOrder(t *testing.T) {
	// The ranking is featured first, then rating, then review count, with the
	// id tail keeping the order total so page boundaries are deterministic.
	require.Len(t, searchOrder, 4)
	assert.Contains(t, searchOrder[0], "featured_until")
	assert.Contains(t, searchOrder[1], "average_rating DESC")
	assert.Contains(t, searchOrder[2], "total_reviews DESC")
	assert.Equal(t, "id ASC", searchOrder[3])
}
