package cache

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*SnapshotCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSnapshotCache(client, time.Hour), mr
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	_, found, err := c.Load(ctx, "u1", "html-css-mastery")
	require.NoError(t, err)
	assert.False(t, found)

	err = c.Save(ctx, "u1", Snapshot{
		CourseID:         "html-css-mastery",
		CompletedModules: []int{1, 3},
		CompletedVideos:  []string{"css-2-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL("progress_snapshot:u1:html-css-mastery"))

	s, found, err := c.Load(ctx, "u1", "html-css-mastery")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []int{1, 3}, s.CompletedModules)
	assert.Equal(t, []string{"css-2-1"}, s.CompletedVideos)
	assert.False(t, s.SavedAt.IsZero())

	// snapshots are per user and per course
	_, found, err = c.Load(ctx, "u2", "html-css-mastery")
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = c.Load(ctx, "u1", "javascript-essentials")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSnapshotUnreadableIsNoData(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	tests := []struct {
		name    string
		raw     string
		dropped bool
	}{
		{name: "not json", raw: "{{{"},
		{name: "bad payload", raw: `{"version":1,"payload":"oops"}`},
		{name: "old version", raw: `{"version":0,"payload":{"completed_modules":[1]}}`, dropped: true},
		{name: "bare legacy set", raw: `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "progress_snapshot:u1:c"
			require.NoError(t, mr.Set(key, tt.raw))

			s, found, err := c.Load(ctx, "u1", "c")
			require.NoError(t, err)
			assert.False(t, found)
			assert.Nil(t, s)
			assert.Equal(t, !tt.dropped, mr.Exists(key))
			mr.Del(key)
		})
	}
}

func TestSnapshotClear(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	require.NoError(t, c.Save(ctx, "u1", Snapshot{CourseID: "c", CompletedModules: []int{2}}))
	require.NoError(t, c.Clear(ctx, "u1", "c"))

	_, found, err := c.Load(ctx, "u1", "c")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLastCourse(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	id, err := c.LastCourse(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, DefaultLastCourse, id)

	require.NoError(t, c.SaveLastCourse(ctx, "u1", "react-complete-guide"))
	id, err = c.LastCourse(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "react-complete-guide", id)
}

func TestLoadFailsWhenRedisIsDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, _, err := c.Load(context.Background(), "u1", "c")
	assert.Error(t, err)
}

// refuseDel fails every DEL and lets other commands through.
type refuseDel struct{}

func (refuseDel) DialHook(next redis.DialHook) redis.DialHook { return next }

func (refuseDel) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == "del" {
			err := errors.New("del refused")
			cmd.SetErr(err)
			return err
		}
		return next(ctx, cmd)
	}
}

func (refuseDel) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestStaleSnapshotDropFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	client.AddHook(refuseDel{})
	c := NewSnapshotCache(client, time.Hour)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	key := "progress_snapshot:u1:c"
	require.NoError(t, mr.Set(key, `{"version":0,"payload":{}}`))

	_, found, err := c.Load(ctx, "u1", "c")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Contains(t, buf.String(), "not dropped")
	assert.True(t, mr.Exists(key))
}
