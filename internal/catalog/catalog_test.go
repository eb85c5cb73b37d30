package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waste3d/learnpath-api/internal/domain"
)

func TestLoadBundled(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	course, err := c.Course(DefaultCourseID)
	require.NoError(t, err)
	assert.Equal(t, "HTML & CSS Mastery", course.Title)
	assert.Len(t, course.Modules, 8)

	m, err := course.Module(1)
	require.NoError(t, err)
	assert.Len(t, m.Videos, 6)

	owner, v, err := course.FindVideo("css-2-3")
	require.NoError(t, err)
	assert.Equal(t, 2, owner.ID)
	assert.Equal(t, 3, v.Ordinal)

	for _, s := range c.List() {
		assert.Empty(t, s.Modules, s.ID)
	}
	assert.Len(t, c.List(), 5)
}

func TestCourseNotFound(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	_, err = c.Course("cobol-for-cats")
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestParseRejectsBrokenCatalogs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "duplicate course",
			yaml: "courses:\n  - id: a\n  - id: a\n",
			want: "duplicate course id",
		},
		{
			name: "duplicate module",
			yaml: "courses:\n  - id: a\n    modules:\n      - id: 1\n      - id: 1\n",
			want: "duplicate module id",
		},
		{
			name: "missing ordinal",
			yaml: "courses:\n  - id: a\n    modules:\n      - id: 1\n        videos:\n          - id: v\n",
			want: "positive ordinal",
		},
		{
			name: "repeated ordinal",
			yaml: "courses:\n  - id: a\n    modules:\n      - id: 1\n        videos:\n          - id: v1\n            ordinal: 1\n          - id: v2\n            ordinal: 1\n",
			want: "repeats ordinal",
		},
		{
			name: "playlist for unknown tier",
			yaml: "courses:\n  - id: a\n    modules:\n      - id: 1\n        playlists:\n          weekly: https://example.com/p\n",
			want: "unknown tier",
		},
		{
			name: "video without id",
			yaml: "courses:\n  - id: a\n    modules:\n      - id: 1\n        videos:\n          - ordinal: 1\n",
			want: "video without id",
		},
		{
			name: "shared video id",
			yaml: "courses:\n  - id: a\n    modules:\n      - id: 1\n        videos:\n          - id: v\n            ordinal: 1\n  - id: b\n    modules:\n      - id: 1\n        videos:\n          - id: v\n            ordinal: 1\n",
			want: "video id \"v\"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestForTierOverridesPlaylists(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	course, err := c.Course(DefaultCourseID)
	require.NoError(t, err)

	base, err := course.Module(2)
	require.NoError(t, err)
	defaultURL := base.PlaylistURL

	intensive := course.ForTier(domain.TierIntensive)
	m, err := intensive.Module(2)
	require.NoError(t, err)
	assert.NotEqual(t, defaultURL, m.PlaylistURL)
	assert.Contains(t, m.PlaylistURL, "pace=intensive")

	minimal := course.ForTier(domain.TierMinimal)
	m, err = minimal.Module(2)
	require.NoError(t, err)
	assert.Equal(t, defaultURL, m.PlaylistURL)

	fresh, err := c.Course(DefaultCourseID)
	require.NoError(t, err)
	m, err = fresh.Module(2)
	require.NoError(t, err)
	assert.Equal(t, defaultURL, m.PlaylistURL)
}
