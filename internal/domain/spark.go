// internal/domain/spark.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// SparkStatus defines the lifecycle state of a fundraising campaign.
// ACTIVE is the initial state; COMPLETED and CANCELLED are terminal.
type SparkStatus string

const (
	SparkStatusActive    SparkStatus = "ACTIVE"
	SparkStatusCompleted SparkStatus = "COMPLETED"
	SparkStatusCancelled SparkStatus = "CANCELLED"
)

// SparkCategory classifies a campaign.
type SparkCategory string

const (
	SparkCategoryEducation SparkCategory = "EDUCATION"
	SparkCategoryMedical   SparkCategory = "MEDICAL"
	SparkCategoryCharity   SparkCategory = "CHARITY"
	SparkCategorySport     SparkCategory = "SPORT"
	SparkCategoryAnimals   SparkCategory = "ANIMALS"
	SparkCategoryOther     SparkCategory = "OTHER"
)

// Spark is a fundraising campaign. CurrentAmount only grows while the spark
// is ACTIVE (donations) and is reset to zero on cancellation. The goal amount
// stays mutable while the spark is ACTIVE.
type Spark struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	CreatorID        uuid.UUID       `db:"creator_id" json:"creator_id"`
	Title            string          `db:"title" json:"title"`
	Description      string          `db:"description" json:"description"`
	GoalAmount       decimal.Decimal `db:"goal_amount" json:"goal_amount"`       // Positive
	CurrentAmount    decimal.Decimal `db:"current_amount" json:"current_amount"` // NUMERIC(20, 2) in DB
	Category         SparkCategory   `db:"category" json:"category"`
	Status           SparkStatus     `db:"status" json:"status"`
	FirstPictureURL  string          `db:"first_picture_url" json:"first_picture_url"`
	SecondPictureURL *string         `db:"second_picture_url" json:"second_picture_url"`
	ThirdPictureURL  *string         `db:"third_picture_url" json:"third_picture_url"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// NewSpark creates a new ACTIVE Spark. A nil initial amount starts at zero.
func NewSpark(creatorID uuid.UUID, title, description string, goalAmount decimal.Decimal, initialAmount *decimal.Decimal, category SparkCategory) *Spark {
	now := time.Now().UTC()
	current := decimal.Zero
	if initialAmount != nil {
		current = *initialAmount
	}
	return &Spark{
		ID:            uuid.New(),
		CreatorID:     creatorID,
		Title:         title,
		Description:   description,
		GoalAmount:    goalAmount,
		CurrentAmount: current,
		Category:      category,
		Status:        SparkStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
