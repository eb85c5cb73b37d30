package domain

import "time"

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
)

type Enrollment struct {
	UserID          string    `gorm:"primaryKey;size:128" json:"user_id"`
	CourseID        string    `gorm:"primaryKey;size:128" json:"course_id"`
	CourseTitle     string    `json:"course_title"`
	LearningGoal    string    `json:"learning_goal"`
	CurrentPath     string    `json:"current_path"`
	TotalModules    int       `json:"total_modules"`
	ProgressPercent int       `gorm:"default:0" json:"progress_percent"`
	Status          string    `gorm:"default:'active'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Enrollment) TableName() string {
	return "user_course_enrollments"
}
