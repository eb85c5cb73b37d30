package domain

import (
	"sort"
	"time"

	"gorm.io/datatypes"
)

// Tier is the pacing level picked during onboarding. Each tier has its own progress table.
type Tier string

const (
	TierMinimal     Tier = "minimal"
	TierModerate    Tier = "moderate"
	TierSignificant Tier = "significant"
	TierIntensive   Tier = "intensive"
)

var Tiers = []Tier{TierMinimal, TierModerate, TierSignificant, TierIntensive}

func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if string(t) == s {
			return t, nil
		}
	}
	return "", ErrInvalidTier
}

func (t Tier) Table() string {
	return string(t) + "_user_progress"
}

// ProgressRecord is the same shape in every tier table.
type ProgressRecord struct {
	UserID          string                   `gorm:"primaryKey;size:128" json:"user_id"`
	CourseID        string                   `gorm:"primaryKey;size:128" json:"course_id"`
	ModuleID        int                      `gorm:"primaryKey;autoIncrement:false" json:"module_id"`
	CourseTitle     string                   `json:"course_title"`
	ModuleTitle     string                   `json:"module_title"`
	LearningGoal    string                   `json:"learning_goal"`
	TotalModules    int                      `json:"total_modules"`
	IsCompleted     bool                     `gorm:"default:false" json:"is_completed"`
	CompletedVideos datatypes.JSONSlice[int] `gorm:"not null" json:"completed_videos"`
	CurrentVideo    string                   `json:"current_video"`
	Version         int                      `gorm:"default:1" json:"version"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

type ProgressKey struct {
	UserID   string
	CourseID string
	ModuleID int
}

func (r *ProgressRecord) Key() ProgressKey {
	return ProgressKey{UserID: r.UserID, CourseID: r.CourseID, ModuleID: r.ModuleID}
}

// ProgressFilter matches records on every field at once.
type ProgressFilter struct {
	UserID      string
	ModuleID    int
	CourseTitle string
	ModuleTitle string
}

type VideoToggle struct {
	Ordinal      int
	Label        string
	ModuleVideos int
}

// ToggleOrdinal adds the ordinal when absent and removes it when present.
// The result is sorted and free of duplicates and non-positive values.
func ToggleOrdinal(ordinals []int, ordinal int) []int {
	seen := make(map[int]struct{}, len(ordinals)+1)
	for _, o := range ordinals {
		if o > 0 {
			seen[o] = struct{}{}
		}
	}
	if _, ok := seen[ordinal]; ok {
		delete(seen, ordinal)
	} else {
		seen[ordinal] = struct{}{}
	}

	out := make([]int, 0, len(seen))
	for o := range seen {
		out = append(out, o)
	}
	sort.Ints(out)
	return out
}
