// Package progress turns completion sets into a single course percentage.
package progress

import (
	"math"

	"github.com/waste3d/learnpath-api/internal/domain"
)

type ModuleSet map[int]struct{}

type VideoSet map[string]struct{}

func NewModuleSet(ids ...int) ModuleSet {
	s := make(ModuleSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func NewVideoSet(ids ...string) VideoSet {
	s := make(VideoSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s ModuleSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s VideoSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Compute returns the completion percentage of course in [0, 100].
//
// Videos of video-bearing modules are counted individually across the whole course,
// video-less modules count as one unit each, and the two ratios are blended with
// weights proportional to how many units each side has. Ids that do not belong to
// the course are ignored.
func Compute(course *domain.Course, modules ModuleSet, videos VideoSet) int {
	if course == nil || len(course.Modules) == 0 {
		return 0
	}

	var totalVideos, doneVideos int
	var totalPlain, donePlain int
	var doneModules int

	for _, m := range course.Modules {
		if modules.Has(m.ID) {
			doneModules++
		}
		if len(m.Videos) == 0 {
			totalPlain++
			if modules.Has(m.ID) {
				donePlain++
			}
			continue
		}
		for _, v := range m.Videos {
			totalVideos++
			if videos.Has(v.ID) {
				doneVideos++
			}
		}
	}

	if totalVideos == 0 {
		return percent(float64(doneModules) / float64(len(course.Modules)))
	}

	videoRatio := float64(doneVideos) / float64(totalVideos)
	var moduleRatio float64
	if totalPlain > 0 {
		moduleRatio = float64(donePlain) / float64(totalPlain)
	}

	videoWeight := float64(totalVideos) / float64(totalVideos+totalPlain)
	moduleWeight := 1 - videoWeight

	return percent(videoRatio*videoWeight + moduleRatio*moduleWeight)
}

func percent(ratio float64) int {
	p := int(math.Round(ratio * 100))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
