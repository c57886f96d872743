package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/temcen/cravequest/pkg/models"
)

// ProfileService owns user profile persistence. Profiles are created lazily
// with defaults on first use and only ever replaced wholesale or adjusted by
// the preference learner.
type ProfileService struct {
	db     DatabaseQuerier
	logger *logrus.Logger
}

func NewProfileService(db DatabaseQuerier, logger *logrus.Logger) *ProfileService {
	return &ProfileService{db: db, logger: logger}
}

// GetOrCreate returns the stored profile, creating a default one on first use.
func (s *ProfileService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT user_id, cook_ability, c_taste, c_risk, c_time, c_effort, c_sacrifice,
			allergies, dislikes, novelty, nostalgia, created_at, updated_at
		FROM user_profiles WHERE user_id = $1`, userID)

	profile, err := scanProfile(row)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	profile = models.NewUserProfile(userID)
	if err := s.insert(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", userID).Info("Created default user profile")
	return profile, nil
}

// Update replaces the editable profile fields wholesale. Coefficients are not
// touched here: they belong to the preference learner.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req models.ProfileUpdateRequest) (*models.UserProfile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.CookAbility = models.CookAbility(req.CookAbility)
	profile.Allergies = normalizeTerms(req.Allergies)
	profile.Dislikes = normalizeTerms(req.Dislikes)
	profile.Novelty = req.Novelty
	profile.Nostalgia = req.Nostalgia
	profile.UpdatedAt = time.Now()

	_, err = s.db.Exec(ctx, `
		UPDATE user_profiles SET cook_ability = $2, allergies = $3, dislikes = $4,
			novelty = $5, nostalgia = $6, updated_at = $7
		WHERE user_id = $1`,
		profile.UserID, profile.CookAbility, profile.Allergies, profile.Dislikes,
		profile.Novelty, profile.Nostalgia, profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}

// SaveCoefficients persists learner adjustments.
func (s *ProfileService) SaveCoefficients(ctx context.Context, profile *models.UserProfile) error {
	profile.UpdatedAt = time.Now()
	c := profile.Coefficients

	_, err := s.db.Exec(ctx, `
		UPDATE user_profiles SET c_taste = $2, c_risk = $3, c_time = $4,
			c_effort = $5, c_sacrifice = $6, updated_at = $7
		WHERE user_id = $1`,
		profile.UserID, c.Taste, c.Risk, c.Time, c.Effort, c.Sacrifice, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save coefficients: %w", err)
	}
	return nil
}

func (s *ProfileService) insert(ctx context.Context, p *models.UserProfile) error {
	c := p.Coefficients
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_profiles (user_id, cook_ability, c_taste, c_risk, c_time, c_effort,
			c_sacrifice, allergies, dislikes, novelty, nostalgia, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.UserID, p.CookAbility, c.Taste, c.Risk, c.Time, c.Effort, c.Sacrifice,
		p.Allergies, p.Dislikes, p.Novelty, p.Nostalgia, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func scanProfile(row pgx.Row) (*models.UserProfile, error) {
	var p models.UserProfile
	c := &p.Coefficients
	err := row.Scan(&p.UserID, &p.CookAbility, &c.Taste, &c.Risk, &c.Time, &c.Effort,
		&c.Sacrifice, &p.Allergies, &p.Dislikes, &p.Novelty, &p.Nostalgia,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if cleaned := cleanLine(t); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
