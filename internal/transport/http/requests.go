package http

import (
	"time"
)

type createContractorRequest struct {
	BusinessName    string   `json:"business_name" validate:"required,min=2,max=100"`
	OwnerName       string   `json:"owner_name" validate:"required,min=2,max=100"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone" validate:"required,us_phone"`
	Website         *string  `json:"website" validate:"omitempty,url"`
	Description     *string  `json:"description" validate:"omitempty,max=2000"`
	YearsInBusiness int      `json:"years_in_business" validate:"min=0,max=100"`
	LicenseNumber   *string  `json:"license_number" validate:"omitempty,max=50"`
	InsuranceInfo   *string  `json:"insurance_info" validate:"omitempty,max=500"`
	ServiceRadius   int      `json:"service_radius" validate:"omitempty,min=1,max=100"`
	ServiceAreas    []string `json:"service_areas" validate:"required,min=1,dive,min=1"`
	CategoryIDs     []string `json:"category_ids" validate:"required,min=1,dive,uuid"`
}

type updateContractorRequest struct {
	BusinessName    string   `json:"business_name" validate:"required,min=2,max=100"`
	OwnerName       string   `json:"owner_name" validate:"required,min=2,max=100"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone" validate:"required,us_phone"`
	Website         *string  `json:"website" validate:"omitempty,url"`
	Description     *string  `json:"description" validate:"omitempty,max=2000"`
	YearsInBusiness int      `json:"years_in_business" validate:"min=0,max=100"`
	LicenseNumber   *string  `json:"license_number" validate:"omitempty,max=50"`
	InsuranceInfo   *string  `json:"insurance_info" validate:"omitempty,max=500"`
	ServiceRadius   int      `json:"service_radius" validate:"omitempty,min=1,max=100"`
	ServiceAreas    []string `json:"service_areas" validate:"required,min=1,dive,min=1"`
	CategoryIDs     []string `json:"category_ids" validate:"omitempty,dive,uuid"`
}

type createReviewRequest struct {
	UserID              string     `json:"user_id" validate:"required,uuid"`
	ContractorID        string     `json:"contractor_id" validate:"required,uuid"`
	OverallRating       float64    `json:"overall_rating" validate:"required,min=1,max=5"`
	QualityRating       float64    `json:"quality_rating" validate:"required,min=1,max=5"`
	TimelinessRating    float64    `json:"timeliness_rating" validate:"required,min=1,max=5"`
	CommunicationRating float64    `json:"communication_rating" validate:"required,min=1,max=5"`
	PricingRating       float64    `json:"pricing_rating" validate:"required,min=1,max=5"`
	CleanlinessRating   float64    `json:"cleanliness_rating" validate:"required,min=1,max=5"`
	Title               string     `json:"title" validate:"required,min=10,max=100"`
	Content             string     `json:"content" validate:"required,min=50,max=2000"`
	WorkCity            string     `json:"work_city" validate:"required,min=2,max=100"`
	WorkDate            *time.Time `json:"work_date"`
	ProjectCost         *float64   `json:"project_cost" validate:"omitempty,gt=0"`
	WouldRecommend      bool       `json:"would_recommend"`
}

type updateReviewRequest struct {
	OverallRating       float64    `json:"overall_rating" validate:"required,min=1,max=5"`
	QualityRating       float64    `json:"quality_rating" validate:"required,min=1,max=5"`
	TimelinessRating    float64    `json:"timeliness_rating" validate:"required,min=1,max=5"`
	CommunicationRating float64    `json:"communication_rating" validate:"required,min=1,max=5"`
	PricingRating       float64    `json:"pricing_rating" validate:"required,min=1,max=5"`
	CleanlinessRating   float64    `json:"cleanliness_rating" validate:"required,min=1,max=5"`
	Title               string     `json:"title" validate:"required,min=10,max=100"`
	Content             string     `json:"content" validate:"required,min=50,max=2000"`
	WorkCity            string     `json:"work_city" validate:"required,min=2,max=100"`
	WorkDate            *time.Time `json:"work_date"`
	ProjectCost         *float64   `json:"project_cost" validate:"omitempty,gt=0"`
	WouldRecommend      bool       `json:"would_recommend"`
}

type voteReviewRequest struct {
	Helpful bool `json:"helpful"`
}

type createCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Slug        string  `json:"slug" validate:"required,slug,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
}

type createAdvertisementRequest struct {
	ContractorID string    `json:"contractor_id" validate:"required,uuid"`
	Type         string    `json:"type" validate:"required,oneof=featured_listing banner"`
	Title        string    `json:"title" validate:"required,min=5,max=100"`
	Description  *string   `json:"description" validate:"omitempty,max=500"`
	ImageURL     *string   `json:"image_url" validate:"omitempty,url"`
	TargetURL    *string   `json:"target_url" validate:"omitempty,url"`
	Categories   []string  `json:"categories" validate:"omitempty,dive,min=1"`
	Locations    []string  `json:"locations" validate:"omitempty,dive,min=1"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	Budget       float64   `json:"budget" validate:"required,gt=0"`
}

type fileDisputeRequest struct {
	ReviewID     string `json:"review_id" validate:"required,uuid"`
	ContractorID string `json:"contractor_id" validate:"required,uuid"`
	Reason       string `json:"reason" validate:"required,min=5,max=100"`
	Description  string `json:"description" validate:"required,min=20,max=1000"`
}

type updateDisputeStatusRequest struct {
	Status     string  `json:"status" validate:"required,oneof=under_review resolved rejected"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=1000"`
	Resolution *string `json:"resolution" validate:"omitempty,max=1000"`
}

// searchParams carries the decoded query string of the contractor search.
// Defaults are applied before validation, so a zero page or limit never
// reaches the service.
type searchParams struct {
	Query              *string  `validate:"omitempty,min=1,max=100"`
	Category           *string  `validate:"omitempty,slug"`
	Location           *string  `validate:"omitempty,min=1,max=100"`
	Radius             *int     `validate:"omitempty,min=1,max=100"`
	MinRating          *float64 `validate:"omitempty,min=1,max=5"`
	MinYearsInBusiness *int     `validate:"omitempty,min=0,max=100"`
	Verified           *bool
	Featured           *bool
	Page               int `validate:"min=1"`
	Limit              int `validate:"min=1,max=100"`
}
