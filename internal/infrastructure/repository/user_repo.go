package repository

import (
	"context"
	"errors"
	"time"

	"github.com/waste3d/learnpath-api/internal/domain"

	"gorm.io/gorm"
)

type OnboardingRepository struct {
	db *gorm.DB
}

func NewOnboardingRepository(db *gorm.DB) *OnboardingRepository {
	return &OnboardingRepository{db: db}
}

func (r *OnboardingRepository) Get(ctx context.Context, userID string) (*domain.Onboarding, error) {
	var o domain.Onboarding
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Save inserts the answers or overwrites them when they changed.
// It reports whether an existing record had to be updated.
func (r *OnboardingRepository) Save(ctx context.Context, o *domain.Onboarding) (bool, error) {
	existing, err := r.Get(ctx, o.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, r.db.WithContext(ctx).Create(o).Error
	}
	if err != nil {
		return false, err
	}

	if existing.LearningGoal == o.LearningGoal &&
		existing.TimeCommitment == o.TimeCommitment &&
		existing.ExperienceLevel == o.ExperienceLevel {
		*o = *existing
		return false, nil
	}

	err = r.db.WithContext(ctx).Model(existing).Updates(map[string]interface{}{
		"learning_goal":    o.LearningGoal,
		"time_commitment":  o.TimeCommitment,
		"experience_level": o.ExperienceLevel,
		"updated_at":       time.Now(),
	}).Error
	return true, err
}

type LoginRepository struct {
	db *gorm.DB
}

func NewLoginRepository(db *gorm.DB) *LoginRepository {
	return &LoginRepository{db: db}
}

func (r *LoginRepository) GetByID(ctx context.Context, userID string) (*domain.LoginCredential, error) {
	var c domain.LoginCredential
	err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *LoginRepository) Create(ctx context.Context, c *domain.LoginCredential) error {
	result := r.db.WithContext(ctx).Create(c)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return result.Error
	}
	return nil
}
