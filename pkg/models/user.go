package models

import (
	"time"

	"github.com/google/uuid"
)

// CookAbility is a self-reported skill level.
type CookAbility string

const (
	AbilityBeginner CookAbility = "Beginner"
	AbilityHomeCook CookAbility = "Home Cook"
	AbilityChef     CookAbility = "Chef"
)

func (a CookAbility) Valid() bool {
	switch a {
	case AbilityBeginner, AbilityHomeCook, AbilityChef:
		return true
	}
	return false
}

// Coefficient bounds enforced after every preference update.
const (
	CoefficientFloor = 0.1
	CoefficientCeil  = 1.0
)

// Coefficients are the five per-user weights the value formula consumes.
// Each starts at 1.0 and stays within [CoefficientFloor, CoefficientCeil].
type Coefficients struct {
	Taste     float64 `json:"c_taste" db:"c_taste"`
	Risk      float64 `json:"c_risk" db:"c_risk"`
	Time      float64 `json:"c_time" db:"c_time"`
	Effort    float64 `json:"c_effort" db:"c_effort"`
	Sacrifice float64 `json:"c_sacrifice" db:"c_sacrifice"`
}

// DefaultCoefficients is the profile starting point: every weight at 1.0.
func DefaultCoefficients() Coefficients {
	return Coefficients{Taste: 1.0, Risk: 1.0, Time: 1.0, Effort: 1.0, Sacrifice: 1.0}
}

// UserProfile is one person's preferences. Coefficients are mutated in place
// only by the preference learner and explicit profile edits.
type UserProfile struct {
	UserID       uuid.UUID    `json:"user_id" db:"user_id"`
	CookAbility  CookAbility  `json:"cook_ability" db:"cook_ability"`
	Coefficients Coefficients `json:"coefficients"`
	Allergies    []string     `json:"allergies" db:"allergies"`
	Dislikes     []string     `json:"dislikes" db:"dislikes"`
	// Novelty and Nostalgia are carried for future formula extensions and are
	// not consumed by the current value calculation.
	Novelty   float64   `json:"novelty" db:"novelty"`
	Nostalgia float64   `json:"nostalgia" db:"nostalgia"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewUserProfile creates a profile with default preferences.
func NewUserProfile(userID uuid.UUID) *UserProfile {
	now := time.Now()
	return &UserProfile{
		UserID:       userID,
		CookAbility:  AbilityHomeCook,
		Coefficients: DefaultCoefficients(),
		Allergies:    []string{},
		Dislikes:     []string{},
		Novelty:      0.5,
		Nostalgia:    0.5,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

type ProfileUpdateRequest struct {
	CookAbility string   `json:"cook_ability" validate:"required,oneof=Beginner 'Home Cook' Chef"`
	Allergies   []string `json:"allergies"`
	Dislikes    []string `json:"dislikes"`
	Novelty     float64  `json:"novelty" validate:"min=0,max=1"`
	Nostalgia   float64  `json:"nostalgia" validate:"min=0,max=1"`
}
