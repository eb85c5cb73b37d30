package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	snapshotVersion = 1

	DefaultLastCourse = "html-css-mastery"
)

// Snapshot is the last known completion state of a user in one course.
type Snapshot struct {
	CourseID         string    `json:"course_id"`
	CompletedModules []int     `json:"completed_modules"`
	CompletedVideos  []string  `json:"completed_videos"`
	SavedAt          time.Time `json:"saved_at"`
}

type envelope struct {
	Version int             `json:"version"`
	Payload json.RawMessage `json:"payload"`
}

type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

func snapshotKey(userID, courseID string) string {
	return "progress_snapshot:" + userID + ":" + courseID
}

func lastCourseKey(userID string) string {
	return "last_course:" + userID
}

func (c *SnapshotCache) Save(ctx context.Context, userID string, s Snapshot) error {
	if s.CompletedModules == nil {
		s.CompletedModules = []int{}
	}
	if s.CompletedVideos == nil {
		s.CompletedVideos = []string{}
	}
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	data, err := json.Marshal(envelope{Version: snapshotVersion, Payload: payload})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, snapshotKey(userID, s.CourseID), data, c.ttl).Err()
}

// Load returns the stored snapshot. Unreadable data counts as no snapshot; a snapshot
// written with another envelope version is dropped.
func (c *SnapshotCache) Load(ctx context.Context, userID, courseID string) (*Snapshot, bool, error) {
	key := snapshotKey(userID, courseID)

	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var env envelope
	if err := json.Unmarshal(val, &env); err != nil {
		log.Printf("snapshot %s is malformed: %v", key, err)
		return nil, false, nil
	}
	if env.Version != snapshotVersion {
		log.Printf("snapshot %s has version %d, dropping", key, env.Version)
		if err := c.drop(ctx, key); err != nil {
			log.Printf("snapshot %s not dropped: %v", key, err)
		}
		return nil, false, nil
	}

	var s Snapshot
	if err := json.Unmarshal(env.Payload, &s); err != nil {
		log.Printf("snapshot %s payload is malformed: %v", key, err)
		return nil, false, nil
	}
	s.CourseID = courseID
	return &s, true, nil
}

func (c *SnapshotCache) drop(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *SnapshotCache) Clear(ctx context.Context, userID, courseID string) error {
	return c.drop(ctx, snapshotKey(userID, courseID))
}

func (c *SnapshotCache) SaveLastCourse(ctx context.Context, userID, courseID string) error {
	return c.client.Set(ctx, lastCourseKey(userID), courseID, c.ttl).Err()
}

func (c *SnapshotCache) LastCourse(ctx context.Context, userID string) (string, error) {
	val, err := c.client.Get(ctx, lastCourseKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return DefaultLastCourse, nil
		}
		return "", err
	}
	return val, nil
}
