package domain

import (
	"strings"
	"time"
)

const (
	DefaultLearningGoal = "General Learning"

	// AnonymousIDPrefix marks user ids issued to visitors without an account.
	AnonymousIDPrefix = "anon_"
)

type Onboarding struct {
	UserID          string    `gorm:"primaryKey;size:128" json:"user_id"`
	LearningGoal    string    `json:"learning_goal"`
	TimeCommitment  string    `json:"time_commitment"`
	ExperienceLevel string    `json:"experience_level"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Onboarding) TableName() string {
	return "onboarding_data"
}

type LoginCredential struct {
	UserID       string    `gorm:"primaryKey;size:128" json:"user_id"`
	EmailAddress string    `gorm:"uniqueIndex;not null" json:"email_address"`
	Fullname     string    `json:"fullname"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"created_at"`
}

func (LoginCredential) TableName() string {
	return "user_login_credentials"
}

// DefaultUsername is the local part of the email address.
func DefaultUsername(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
