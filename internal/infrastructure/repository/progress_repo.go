package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/waste3d/learnpath-api/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository stores progress records. Every tier uses its own table with the
// same schema, so the tier is the only thing that varies between calls.
type ProgressRepository struct {
	db     *gorm.DB
	tables map[domain.Tier]string
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	tables := make(map[domain.Tier]string, len(domain.Tiers))
	for _, t := range domain.Tiers {
		tables[t] = t.Table()
	}
	return &ProgressRepository{db: db, tables: tables}
}

func (r *ProgressRepository) table(ctx context.Context, tier domain.Tier) (*gorm.DB, error) {
	name, ok := r.tables[tier]
	if !ok {
		return nil, domain.ErrInvalidTier
	}
	return r.db.WithContext(ctx).Table(name), nil
}

func (r *ProgressRepository) Migrate(ctx context.Context) error {
	for _, t := range domain.Tiers {
		q, _ := r.table(ctx, t)
		if err := q.AutoMigrate(&domain.ProgressRecord{}); err != nil {
			return fmt.Errorf("migrate %s: %w", t.Table(), err)
		}
	}
	return nil
}

// Check lists every record the user has in the tier. It is best effort: failures are
// logged and reported as no records so callers fall back to the snapshot.
func (r *ProgressRepository) Check(ctx context.Context, tier domain.Tier, userID string) []domain.ProgressRecord {
	q, err := r.table(ctx, tier)
	if err != nil {
		log.Printf("progress check: %v", err)
		return []domain.ProgressRecord{}
	}

	var records []domain.ProgressRecord
	if err := q.Where("user_id = ?", userID).Order("module_id asc").Find(&records).Error; err != nil {
		log.Printf("progress check for %s in %s failed: %v", userID, tier.Table(), err)
		return []domain.ProgressRecord{}
	}
	if records == nil {
		records = []domain.ProgressRecord{}
	}
	return records
}

// ListByCourse returns the user's records for one course, ordered by module id.
func (r *ProgressRepository) ListByCourse(ctx context.Context, tier domain.Tier, userID, courseID string) ([]domain.ProgressRecord, error) {
	q, err := r.table(ctx, tier)
	if err != nil {
		return nil, err
	}

	records := []domain.ProgressRecord{}
	err = q.Where("user_id = ? AND course_id = ?", userID, courseID).Order("module_id asc").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return records, nil
}

func (r *ProgressRepository) Get(ctx context.Context, tier domain.Tier, key domain.ProgressKey) (*domain.ProgressRecord, error) {
	q, err := r.table(ctx, tier)
	if err != nil {
		return nil, err
	}

	var rec domain.ProgressRecord
	err = q.Where("user_id = ? AND course_id = ? AND module_id = ?", key.UserID, key.CourseID, key.ModuleID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Insert writes the record, or refreshes the existing one for the same user and module.
// The completed video list of an existing record is kept.
func (r *ProgressRepository) Insert(ctx context.Context, tier domain.Tier, rec *domain.ProgressRecord) (*domain.ProgressRecord, error) {
	q, err := r.table(ctx, tier)
	if err != nil {
		return nil, err
	}

	row := *rec
	row.Version = 1
	if row.CompletedVideos == nil {
		row.CompletedVideos = datatypes.JSONSlice[int]{}
	}

	err = q.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "module_id"}},
		DoUpdates: append(
			clause.AssignmentColumns([]string{"course_title", "module_title", "learning_goal", "total_modules", "is_completed", "updated_at"}),
			// postgres sees both the table and excluded here, so the column must be qualified
			clause.Assignment{Column: clause.Column{Name: "version"}, Value: clause.Expr{
				SQL:  "? + 1",
				Vars: []interface{}{clause.Column{Table: clause.CurrentTable, Name: "version"}},
			}},
		),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("insert progress: %w", err)
	}

	return r.Get(ctx, tier, rec.Key())
}

// Ensure creates the record only when the user has none for the module yet.
func (r *ProgressRepository) Ensure(ctx context.Context, tier domain.Tier, rec *domain.ProgressRecord) (*domain.ProgressRecord, error) {
	q, err := r.table(ctx, tier)
	if err != nil {
		return nil, err
	}

	row := *rec
	row.Version = 1
	if row.CompletedVideos == nil {
		row.CompletedVideos = datatypes.JSONSlice[int]{}
	}

	if err := q.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("ensure progress: %w", err)
	}
	return r.Get(ctx, tier, rec.Key())
}

// Delete removes the records matching every field of the filter.
func (r *ProgressRepository) Delete(ctx context.Context, tier domain.Tier, f domain.ProgressFilter) error {
	q, err := r.table(ctx, tier)
	if err != nil {
		return err
	}

	return q.Where("module_id = ? AND user_id = ? AND course_title = ? AND module_title = ?",
		f.ModuleID, f.UserID, f.CourseTitle, f.ModuleTitle).
		Delete(&domain.ProgressRecord{}).Error
}

// ToggleVideo flips one video ordinal of the record and recomputes its completion flag.
// The write only lands if nobody else changed the record since it was read.
func (r *ProgressRepository) ToggleVideo(ctx context.Context, tier domain.Tier, key domain.ProgressKey, t domain.VideoToggle) (*domain.ProgressRecord, error) {
	rec, err := r.Get(ctx, tier, key)
	if err != nil {
		return nil, err
	}
	return r.applyToggle(ctx, tier, rec, t)
}

func (r *ProgressRepository) applyToggle(ctx context.Context, tier domain.Tier, rec *domain.ProgressRecord, t domain.VideoToggle) (*domain.ProgressRecord, error) {
	q, err := r.table(ctx, tier)
	if err != nil {
		return nil, err
	}

	videos := domain.ToggleOrdinal(rec.CompletedVideos, t.Ordinal)
	completed := t.ModuleVideos > 0 && len(videos) >= t.ModuleVideos

	result := q.Model(&domain.ProgressRecord{}).
		Where("user_id = ? AND course_id = ? AND module_id = ? AND version = ?",
			rec.UserID, rec.CourseID, rec.ModuleID, rec.Version).
		Updates(map[string]interface{}{
			"completed_videos": datatypes.JSONSlice[int](videos),
			"current_video":    t.Label,
			"is_completed":     completed,
			"version":          rec.Version + 1,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("toggle video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrProgressConflict
	}

	updated := *rec
	updated.CompletedVideos = videos
	updated.CurrentVideo = t.Label
	updated.IsCompleted = completed
	updated.Version++
	return &updated, nil
}
