package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/waste3d/learnpath-api/internal/domain"
)

func videos(prefix string, n int) []domain.Video {
	out := make([]domain.Video, n)
	for i := range out {
		out[i] = domain.Video{ID: prefix + "-" + string(rune('a'+i)), Ordinal: i + 1}
	}
	return out
}

func mixedCourse() *domain.Course {
	return &domain.Course{
		ID: "mixed",
		Modules: []domain.Module{
			{ID: 1, Videos: []domain.Video{{ID: "v1", Ordinal: 1}, {ID: "v2", Ordinal: 2}}},
			{ID: 2},
		},
	}
}

func TestCompute(t *testing.T) {
	plain := &domain.Course{Modules: []domain.Module{{ID: 1}, {ID: 2}, {ID: 3}}}
	allVideos := &domain.Course{Modules: []domain.Module{
		{ID: 1, Videos: videos("a", 3)},
		{ID: 2, Videos: videos("b", 2)},
	}}

	tests := []struct {
		name    string
		course  *domain.Course
		modules ModuleSet
		videos  VideoSet
		want    int
	}{
		{name: "nil course", course: nil, want: 0},
		{name: "no modules", course: &domain.Course{ID: "empty"}, modules: NewModuleSet(1), want: 0},
		{name: "plain nothing done", course: plain, want: 0},
		{name: "plain one of three", course: plain, modules: NewModuleSet(1), want: 33},
		{name: "plain two of three", course: plain, modules: NewModuleSet(1, 3), want: 67},
		{name: "plain all done", course: plain, modules: NewModuleSet(1, 2, 3), want: 100},
		{name: "plain ignores foreign modules", course: plain, modules: NewModuleSet(1, 2, 3, 42), want: 100},
		{
			name:   "every video done",
			course: allVideos,
			videos: NewVideoSet("a-a", "a-b", "a-c", "b-a", "b-b"),
			want:   100,
		},
		{
			name:    "module flags do not count for video-bearing modules",
			course:  allVideos,
			modules: NewModuleSet(1, 2),
			want:    0,
		},
		{
			name:    "weighted blend",
			course:  mixedCourse(),
			modules: NewModuleSet(2),
			videos:  NewVideoSet("v1"),
			want:    67,
		},
		{name: "only the plain module", course: mixedCourse(), modules: NewModuleSet(2), want: 33},
		{name: "only videos", course: mixedCourse(), videos: NewVideoSet("v1", "v2"), want: 67},
		{name: "unknown video ignored", course: mixedCourse(), videos: NewVideoSet("nope"), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.course, tt.modules, tt.videos))
		})
	}
}

func TestComputeIsMonotonic(t *testing.T) {
	course := &domain.Course{Modules: []domain.Module{
		{ID: 1, Videos: videos("x", 4)},
		{ID: 2},
		{ID: 3, Videos: videos("y", 3)},
		{ID: 4},
		{ID: 5},
	}}

	var items []func(ModuleSet, VideoSet)
	for _, m := range course.Modules {
		id := m.ID
		items = append(items, func(ms ModuleSet, _ VideoSet) { ms[id] = struct{}{} })
		for _, v := range m.Videos {
			vid := v.ID
			items = append(items, func(_ ModuleSet, vs VideoSet) { vs[vid] = struct{}{} })
		}
	}

	modules, vids := NewModuleSet(), NewVideoSet()
	prev := Compute(course, modules, vids)
	assert.Equal(t, 0, prev)
	for _, add := range items {
		add(modules, vids)
		got := Compute(course, modules, vids)
		assert.GreaterOrEqual(t, got, prev)
		assert.LessOrEqual(t, got, 100)
		prev = got
	}
	assert.Equal(t, 100, prev)
}
