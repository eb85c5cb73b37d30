package usecase

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/waste3d/learnpath-api/internal/catalog"
	"github.com/waste3d/learnpath-api/internal/domain"
	"github.com/waste3d/learnpath-api/internal/infrastructure/cache"
	"github.com/waste3d/learnpath-api/internal/infrastructure/repository"
	"github.com/waste3d/learnpath-api/internal/progress"
)

const (
	SourceRemote   = "remote"
	SourceSnapshot = "snapshot"
	SourceEmpty    = "empty"
)

// CompletionState is what the learner sees for one course.
type CompletionState struct {
	CourseID         string      `json:"course_id"`
	Tier             domain.Tier `json:"tier"`
	CompletedModules []int       `json:"completed_modules"`
	CompletedVideos  []string    `json:"completed_videos"`
	Percent          int         `json:"percent"`
	Source           string      `json:"source"`
}

type ModuleRequest struct {
	UserID   string
	CourseID string
	ModuleID int
	Tier     domain.Tier
}

type VideoRequest struct {
	UserID   string
	CourseID string
	VideoID  string
	Tier     domain.Tier
}

type ProgressUseCase struct {
	catalog        *catalog.Catalog
	progressRepo   *repository.ProgressRepository
	enrollmentRepo *repository.EnrollmentRepository
	onboardingRepo *repository.OnboardingRepository
	loginRepo      *repository.LoginRepository
	snapshots      *cache.SnapshotCache
	defaultTier    domain.Tier
}

func NewProgressUseCase(
	c *catalog.Catalog,
	pr *repository.ProgressRepository,
	er *repository.EnrollmentRepository,
	or *repository.OnboardingRepository,
	lr *repository.LoginRepository,
	sc *cache.SnapshotCache,
	defaultTier domain.Tier,
) *ProgressUseCase {
	return &ProgressUseCase{
		catalog:        c,
		progressRepo:   pr,
		enrollmentRepo: er,
		onboardingRepo: or,
		loginRepo:      lr,
		snapshots:      sc,
		defaultTier:    defaultTier,
	}
}

// LoadProgress prefers the stored records and falls back to the last snapshot when the
// store has nothing for the course.
func (uc *ProgressUseCase) LoadProgress(ctx context.Context, userID, courseID string, tier domain.Tier) (*CompletionState, error) {
	course, err := uc.catalog.Course(courseID)
	if err != nil {
		return nil, err
	}

	// 1. Remote records
	var records []domain.ProgressRecord
	for _, rec := range uc.progressRepo.Check(ctx, tier, userID) {
		if rec.CourseID == courseID {
			records = append(records, rec)
		}
	}
	if len(records) > 0 {
		state := uc.stateFromRecords(course, tier, records)
		uc.saveSnapshot(ctx, userID, state)
		return state, nil
	}

	// 2. Snapshot
	snap, found, err := uc.snapshots.Load(ctx, userID, courseID)
	if err != nil {
		log.Printf("snapshot load for %s/%s failed: %v", userID, courseID, err)
	}
	if found {
		modules := progress.NewModuleSet(snap.CompletedModules...)
		videos := progress.NewVideoSet(snap.CompletedVideos...)
		return uc.newState(course, tier, modules, videos, SourceSnapshot), nil
	}

	// 3. Nothing yet
	return uc.newState(course, tier, progress.ModuleSet{}, progress.VideoSet{}, SourceEmpty), nil
}

// StartModule creates the module's record if the user has none yet.
func (uc *ProgressUseCase) StartModule(ctx context.Context, req ModuleRequest) (*CompletionState, error) {
	course, module, err := uc.module(req.CourseID, req.ModuleID)
	if err != nil {
		return nil, err
	}

	rec := uc.newRecord(ctx, req.UserID, course, module)
	if _, err := uc.progressRepo.Ensure(ctx, req.Tier, rec); err != nil {
		return nil, err
	}
	return uc.afterMutation(ctx, req.UserID, course, req.Tier)
}

// ToggleModule marks the module complete, or forgets it entirely when it already was.
func (uc *ProgressUseCase) ToggleModule(ctx context.Context, req ModuleRequest) (*CompletionState, error) {
	course, module, err := uc.module(req.CourseID, req.ModuleID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.progressRepo.Get(ctx, req.Tier, domain.ProgressKey{UserID: req.UserID, CourseID: course.ID, ModuleID: module.ID})
	if err != nil && !errors.Is(err, domain.ErrProgressNotFound) {
		return nil, err
	}

	if existing != nil && existing.IsCompleted {
		err = uc.progressRepo.Delete(ctx, req.Tier, domain.ProgressFilter{
			UserID:      req.UserID,
			ModuleID:    module.ID,
			CourseTitle: existing.CourseTitle,
			ModuleTitle: existing.ModuleTitle,
		})
	} else {
		rec := uc.newRecord(ctx, req.UserID, course, module)
		rec.IsCompleted = true
		_, err = uc.progressRepo.Insert(ctx, req.Tier, rec)
	}
	if err != nil {
		return nil, err
	}

	return uc.afterMutation(ctx, req.UserID, course, req.Tier)
}

// ToggleVideo flips one video and starts its module first if needed.
func (uc *ProgressUseCase) ToggleVideo(ctx context.Context, req VideoRequest) (*CompletionState, error) {
	course, err := uc.catalog.Course(req.CourseID)
	if err != nil {
		return nil, err
	}
	module, video, err := course.FindVideo(req.VideoID)
	if err != nil {
		return nil, err
	}

	rec, err := uc.progressRepo.Ensure(ctx, req.Tier, uc.newRecord(ctx, req.UserID, course, module))
	if err != nil {
		return nil, err
	}

	_, err = uc.progressRepo.ToggleVideo(ctx, req.Tier, rec.Key(), domain.VideoToggle{
		Ordinal:      video.Ordinal,
		Label:        video.Title,
		ModuleVideos: len(module.Videos),
	})
	if err != nil {
		return nil, err
	}

	return uc.afterMutation(ctx, req.UserID, course, req.Tier)
}

func (uc *ProgressUseCase) ComputeProgress(course *domain.Course, modules progress.ModuleSet, videos progress.VideoSet) int {
	return progress.Compute(course, modules, videos)
}

// Check lists every record the user has in the tier.
func (uc *ProgressUseCase) Check(ctx context.Context, userID string, tier domain.Tier) []domain.ProgressRecord {
	return uc.progressRepo.Check(ctx, tier, userID)
}

func (uc *ProgressUseCase) ClearSnapshot(ctx context.Context, userID, courseID string) error {
	if _, err := uc.catalog.Course(courseID); err != nil {
		return err
	}
	return uc.snapshots.Clear(ctx, userID, courseID)
}

// afterMutation rereads the course records and propagates the new state to the snapshot
// and the enrollment.
func (uc *ProgressUseCase) afterMutation(ctx context.Context, userID string, course *domain.Course, tier domain.Tier) (*CompletionState, error) {
	records, err := uc.progressRepo.ListByCourse(ctx, tier, userID, course.ID)
	if err != nil {
		return nil, err
	}

	state := uc.stateFromRecords(course, tier, records)
	uc.saveSnapshot(ctx, userID, state)

	if err := uc.enrollmentRepo.UpdateProgress(ctx, userID, course.ID, state.Percent); err != nil {
		log.Printf("enrollment progress for %s/%s not updated: %v", userID, course.ID, err)
	}
	return state, nil
}

func (uc *ProgressUseCase) saveSnapshot(ctx context.Context, userID string, state *CompletionState) {
	err := uc.snapshots.Save(ctx, userID, cache.Snapshot{
		CourseID:         state.CourseID,
		CompletedModules: state.CompletedModules,
		CompletedVideos:  state.CompletedVideos,
	})
	if err != nil {
		log.Printf("snapshot save for %s/%s failed: %v", userID, state.CourseID, err)
	}
}

func (uc *ProgressUseCase) stateFromRecords(course *domain.Course, tier domain.Tier, records []domain.ProgressRecord) *CompletionState {
	modules := progress.ModuleSet{}
	videos := progress.VideoSet{}

	for _, rec := range records {
		if rec.CourseID != course.ID {
			continue
		}
		m, err := course.Module(rec.ModuleID)
		if err != nil {
			continue
		}
		if rec.IsCompleted {
			modules[m.ID] = struct{}{}
		}
		for _, ordinal := range rec.CompletedVideos {
			if v, ok := m.VideoByOrdinal(ordinal); ok {
				videos[v.ID] = struct{}{}
			}
		}
	}

	source := SourceRemote
	if len(records) == 0 {
		source = SourceEmpty
	}
	return uc.newState(course, tier, modules, videos, source)
}

func (uc *ProgressUseCase) newState(course *domain.Course, tier domain.Tier, modules progress.ModuleSet, videos progress.VideoSet, source string) *CompletionState {
	state := &CompletionState{
		CourseID:         course.ID,
		Tier:             tier,
		CompletedModules: make([]int, 0, len(modules)),
		CompletedVideos:  make([]string, 0, len(videos)),
		Percent:          uc.ComputeProgress(course, modules, videos),
		Source:           source,
	}
	for id := range modules {
		state.CompletedModules = append(state.CompletedModules, id)
	}
	for id := range videos {
		state.CompletedVideos = append(state.CompletedVideos, id)
	}
	sort.Ints(state.CompletedModules)
	sort.Strings(state.CompletedVideos)
	return state
}

func (uc *ProgressUseCase) module(courseID string, moduleID int) (*domain.Course, *domain.Module, error) {
	course, err := uc.catalog.Course(courseID)
	if err != nil {
		return nil, nil, err
	}
	module, err := course.Module(moduleID)
	if err != nil {
		return nil, nil, err
	}
	return course, module, nil
}

func (uc *ProgressUseCase) newRecord(ctx context.Context, userID string, course *domain.Course, module *domain.Module) *domain.ProgressRecord {
	return &domain.ProgressRecord{
		UserID:       userID,
		CourseID:     course.ID,
		CourseTitle:  course.Title,
		ModuleID:     module.ID,
		ModuleTitle:  module.Title,
		LearningGoal: uc.learningGoal(ctx, userID),
		TotalModules: len(course.Modules),
	}
}
