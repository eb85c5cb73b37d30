package usecase

import (
	"context"
	"log"

	"github.com/waste3d/learnpath-api/internal/catalog"
	"github.com/waste3d/learnpath-api/internal/domain"
)

func (uc *ProgressUseCase) ListCourses() []domain.Course {
	return uc.catalog.List()
}

// CourseDetail returns the course, with its curriculum only for enrolled users, and
// remembers it as the user's last visited course. Module playlists follow the tier.
func (uc *ProgressUseCase) CourseDetail(ctx context.Context, userID, courseID string, tier domain.Tier) (*domain.Course, bool, error) {
	course, err := uc.catalog.Course(courseID)
	if err != nil {
		return nil, false, err
	}

	enrolled, err := uc.enrollmentRepo.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return nil, false, err
	}

	if err := uc.snapshots.SaveLastCourse(ctx, userID, courseID); err != nil {
		log.Printf("last course for %s not saved: %v", userID, err)
	}

	if !enrolled {
		summary := course.Summary()
		return &summary, false, nil
	}
	detail := course.ForTier(tier)
	return &detail, true, nil
}

// LastCourse returns the course the user looked at most recently.
func (uc *ProgressUseCase) LastCourse(ctx context.Context, userID string) (*domain.Course, error) {
	id, err := uc.snapshots.LastCourse(ctx, userID)
	if err != nil {
		log.Printf("last course for %s unavailable: %v", userID, err)
		id = catalog.DefaultCourseID
	}

	course, err := uc.catalog.Course(id)
	if err != nil {
		course, err = uc.catalog.Course(catalog.DefaultCourseID)
		if err != nil {
			return nil, err
		}
	}
	summary := course.Summary()
	return &summary, nil
}

func (uc *ProgressUseCase) Enroll(ctx context.Context, userID, courseID string, tier domain.Tier) (*domain.Enrollment, error) {
	course, err := uc.catalog.Course(courseID)
	if err != nil {
		return nil, err
	}

	e := &domain.Enrollment{
		UserID:       userID,
		CourseID:     course.ID,
		CourseTitle:  course.Title,
		LearningGoal: uc.learningGoal(ctx, userID),
		CurrentPath:  string(tier),
		TotalModules: len(course.Modules),
	}
	if err := uc.enrollmentRepo.Enroll(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (uc *ProgressUseCase) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	if _, err := uc.catalog.Course(courseID); err != nil {
		return false, err
	}
	return uc.enrollmentRepo.IsEnrolled(ctx, userID, courseID)
}

func (uc *ProgressUseCase) Enrollments(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	return uc.enrollmentRepo.ListByUser(ctx, userID)
}
