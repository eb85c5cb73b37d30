package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/waste3d/learnpath-api/internal/domain"

	"github.com/google/uuid"
)

// NewAnonymousID issues an identity for visitors who have not signed in.
func (uc *ProgressUseCase) NewAnonymousID() string {
	return domain.AnonymousIDPrefix + uuid.NewString()
}

// ResolveTier picks the progress table: an explicit choice first, then the onboarding
// answer, then the configured default.
func (uc *ProgressUseCase) ResolveTier(ctx context.Context, userID, requested string) (domain.Tier, error) {
	if requested != "" {
		return domain.ParseTier(requested)
	}

	o, err := uc.onboardingRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			log.Printf("onboarding lookup for %s failed: %v", userID, err)
		}
		return uc.defaultTier, nil
	}
	if t, err := domain.ParseTier(o.TimeCommitment); err == nil {
		return t, nil
	}
	return uc.defaultTier, nil
}

func (uc *ProgressUseCase) learningGoal(ctx context.Context, userID string) string {
	o, err := uc.onboardingRepo.Get(ctx, userID)
	if err != nil || o.LearningGoal == "" {
		return domain.DefaultLearningGoal
	}
	return o.LearningGoal
}

// GetOnboarding returns the stored answers, or defaults when the user has none yet.
// The boolean reports whether a stored record was found.
func (uc *ProgressUseCase) GetOnboarding(ctx context.Context, userID string, defaults domain.Onboarding) (*domain.Onboarding, bool, error) {
	o, err := uc.onboardingRepo.Get(ctx, userID)
	if err == nil {
		return o, true, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	defaults.UserID = userID
	if defaults.LearningGoal == "" {
		defaults.LearningGoal = domain.DefaultLearningGoal
	}
	if defaults.TimeCommitment == "" {
		defaults.TimeCommitment = string(uc.defaultTier)
	}
	return &defaults, false, nil
}

// SaveOnboarding stores the answers and reports whether an existing record changed.
func (uc *ProgressUseCase) SaveOnboarding(ctx context.Context, o *domain.Onboarding) (bool, error) {
	if _, err := domain.ParseTier(o.TimeCommitment); err != nil {
		return false, err
	}
	if o.LearningGoal == "" {
		o.LearningGoal = domain.DefaultLearningGoal
	}
	return uc.onboardingRepo.Save(ctx, o)
}

// SyncUser records the login credentials of a signed-in user the first time they show up.
// The boolean reports whether a row was created.
func (uc *ProgressUseCase) SyncUser(ctx context.Context, c *domain.LoginCredential) (*domain.LoginCredential, bool, error) {
	existing, err := uc.loginRepo.GetByID(ctx, c.UserID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	if c.Username == "" {
		c.Username = domain.DefaultUsername(c.EmailAddress)
	}
	if err := uc.loginRepo.Create(ctx, c); err != nil {
		return nil, false, err
	}
	return c, true, nil
}
