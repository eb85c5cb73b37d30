package repository

import (
	"context"
	"time"

	"github.com/waste3d/learnpath-api/internal/domain"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Enroll creates the enrollment or refreshes goal and path when it already exists.
func (r *EnrollmentRepository) Enroll(ctx context.Context, e *domain.Enrollment) error {
	var existing domain.Enrollment
	err := r.db.WithContext(ctx).
		Where(domain.Enrollment{UserID: e.UserID, CourseID: e.CourseID}).
		Attrs(domain.Enrollment{
			CourseTitle:  e.CourseTitle,
			LearningGoal: e.LearningGoal,
			CurrentPath:  e.CurrentPath,
			TotalModules: e.TotalModules,
			Status:       domain.EnrollmentActive,
		}).
		FirstOrCreate(&existing).Error
	if err != nil {
		return err
	}

	if existing.LearningGoal == e.LearningGoal && existing.CurrentPath == e.CurrentPath {
		*e = existing
		return nil
	}

	err = r.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
		"learning_goal": e.LearningGoal,
		"current_path":  e.CurrentPath,
		"updated_at":    time.Now(),
	}).Error
	if err != nil {
		return err
	}
	existing.LearningGoal = e.LearningGoal
	existing.CurrentPath = e.CurrentPath
	*e = existing
	return nil
}

func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// UpdateProgress stores the recomputed percentage. Users who are not enrolled are skipped.
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, userID, courseID string, percent int) error {
	status := domain.EnrollmentActive
	if percent >= 100 {
		status = domain.EnrollmentCompleted
		percent = 100
	}

	return r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(map[string]interface{}{
			"progress_percent": percent,
			"status":           status,
			"updated_at":       time.Now(),
		}).Error
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	var enrollments []domain.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&enrollments).Error
	return enrollments, err
}
