package domain

import (
	"time"
)

type User struct {
	ID         string    `db:"id" json:"id"`
	Email      string    `db:"email" json:"email"`
	Name       string    `db:"name" json:"name"`
	FacebookID *string   `db:"facebook_id" json:"-"`
	GoogleID   *string   `db:"google_id" json:"-"`
	Avatar     *string   `db:"avatar" json:"avatar,omitempty"`
	Verified   bool      `db:"verified" json:"verified"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type Contractor struct {
	ID              string     `db:"id" json:"id"`
	BusinessName    string     `db:"business_name" json:"business_name"`
	OwnerName       string     `db:"owner_name" json:"owner_name"`
	Email           string     `db:"email" json:"email"`
	Phone           string     `db:"phone" json:"phone"`
	Website         *string    `db:"website" json:"website,omitempty"`
	Description     *string    `db:"description" json:"description,omitempty"`
	YearsInBusiness int        `db:"years_in_business" json:"years_in_business"`
	LicenseNumber   *string    `db:"license_number" json:"license_number,omitempty"`
	InsuranceInfo   *string    `db:"insurance_info" json:"insurance_info,omitempty"`
	ServiceRadius   int        `db:"service_radius" json:"service_radius"`
	ServiceAreas    []string   `db:"service_areas" json:"service_areas"`
	Verified        bool       `db:"verified" json:"verified"`
	FeaturedUntil   *time.Time `db:"featured_until" json:"featured_until,omitempty"`

	// AverageRating and TotalReviews are derived from the contractor's review
	// set and written only by the rating aggregator.
	AverageRating float64 `db:"average_rating" json:"average_rating"`
	TotalReviews  int     `db:"total_reviews" json:"total_reviews"`

	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
	Categories []Category `json:"categories,omitempty"`
}

type Category struct {
	ID          string     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Slug        string     `db:"slug" json:"slug"`
	Description *string    `db:"description" json:"description,omitempty"`
	ParentID    *string    `db:"parent_id" json:"parent_id,omitempty"`
	Children    []Category `json:"children,omitempty"`
}

type Review struct {
	ID                  string     `db:"id" json:"id"`
	UserID              string     `db:"user_id" json:"user_id"`
	ContractorID        string     `db:"contractor_id" json:"contractor_id"`
	OverallRating       float64    `db:"overall_rating" json:"overall_rating"`
	QualityRating       float64    `db:"quality_rating" json:"quality_rating"`
	TimelinessRating    float64    `db:"timeliness_rating" json:"timeliness_rating"`
	CommunicationRating float64    `db:"communication_rating" json:"communication_rating"`
	PricingRating       float64    `db:"pricing_rating" json:"pricing_rating"`
	CleanlinessRating   float64    `db:"cleanliness_rating" json:"cleanliness_rating"`
	Title               string     `db:"title" json:"title"`
	Content             string     `db:"content" json:"content"`
	WorkCity            string     `db:"work_city" json:"work_city"`
	WorkDate            *time.Time `db:"work_date" json:"work_date,omitempty"`
	ProjectCost         *float64   `db:"project_cost" json:"project_cost,omitempty"`
	WouldRecommend      bool       `db:"would_recommend" json:"would_recommend"`
	Verified            bool       `db:"verified" json:"verified"`
	Helpful             int        `db:"helpful" json:"helpful"`
	NotHelpful          int        `db:"not_helpful" json:"not_helpful"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
	Photos              []ReviewPhoto    `json:"photos,omitempty"`
	Documents           []ReviewDocument `json:"documents,omitempty"`
}

type ReviewPhoto struct {
	ID           string  `db:"id" json:"id"`
	ReviewID     string  `db:"review_id" json:"review_id"`
	URL          string  `db:"url" json:"url"`
	ThumbnailURL string  `db:"thumbnail_url" json:"thumbnail_url"`
	Caption      *string `db:"caption" json:"caption,omitempty"`
	SortOrder    int     `db:"sort_order" json:"sort_order"`
}

type DocumentType string

const (
	DocumentTypeEstimate DocumentType = "estimate"
	DocumentTypeInvoice  DocumentType = "invoice"
)

type ReviewDocument struct {
	ID       string       `db:"id" json:"id"`
	ReviewID string       `db:"review_id" json:"review_id"`
	Type     DocumentType `db:"type" json:"type"`
	URL      string       `db:"url" json:"url"`
	Filename string       `db:"filename" json:"filename"`
	Size     int64        `db:"size" json:"size"`
}

type AdvertisementType string

const (
	AdTypeFeaturedListing AdvertisementType = "featured_listing"
	AdTypeBanner          AdvertisementType = "banner"
)

type Advertisement struct {
	ID           string            `db:"id" json:"id"`
	ContractorID string            `db:"contractor_id" json:"contractor_id"`
	Type         AdvertisementType `db:"type" json:"type"`
	Title        string            `db:"title" json:"title"`
	Description  *string           `db:"description" json:"description,omitempty"`
	ImageURL     *string           `db:"image_url" json:"image_url,omitempty"`
	TargetURL    *string           `db:"target_url" json:"target_url,omitempty"`
	Categories   []string          `db:"categories" json:"categories"`
	Locations    []string          `db:"locations" json:"locations"`
	StartDate    time.Time         `db:"start_date" json:"start_date"`
	EndDate      time.Time         `db:"end_date" json:"end_date"`
	Budget       float64           `db:"budget" json:"budget"`
	Impressions  int               `db:"impressions" json:"impressions"`
	Clicks       int               `db:"clicks" json:"clicks"`
	Active       bool              `db:"active" json:"active"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
}

type DisputeStatus string

const (
	DisputeStatusPending     DisputeStatus = "pending"
	DisputeStatusUnderReview DisputeStatus = "under_review"
	DisputeStatusResolved    DisputeStatus = "resolved"
	DisputeStatusRejected    DisputeStatus = "rejected"
)

type ReviewDispute struct {
	ID           string        `db:"id" json:"id"`
	ReviewID     string        `db:"review_id" json:"review_id"`
	ContractorID string        `db:"contractor_id" json:"contractor_id"`
	Reason       string        `db:"reason" json:"reason"`
	Description  string        `db:"description" json:"description"`
	Status       DisputeStatus `db:"status" json:"status"`
	AdminNotes   *string       `db:"admin_notes" json:"admin_notes,omitempty"`
	Resolution   *string       `db:"resolution" json:"resolution,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
	ResolvedAt   *time.Time    `db:"resolved_at" json:"resolved_at,omitempty"`
}

// SearchFilters is a transient value object built once per request and
// consumed by the contractor search. Absent fields impose no constraint.
// Location, Radius and Featured are accepted into the filter shape but are
// not translated into predicates yet (the data model stores service areas as
// a list of area codes, not a queryable geometry).
type SearchFilters struct {
	Query              *string
	Category           *string
	Location           *string
	Radius             *int
	MinRating          *float64
	MinYearsInBusiness *int
	Verified           *bool
	Featured           *bool
}

// Page is an offset-paginated result. Total counts all rows matching the
// filter before pagination; TotalPages = ceil(Total/Limit).
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

func NewPage[T any](data []T, total, page, limit int) Page[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
