package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/spf13/viper"
	"github.com/waste3d/learnpath-api/internal/domain"
)

//go:embed courses.yaml
var bundled []byte

// DefaultCourseID is where users land when they have no last visited course.
const DefaultCourseID = "html-css-mastery"

type Catalog struct {
	courses []domain.Course
	byID    map[string]int
}

// Load parses the catalog bundled into the binary.
func Load() (*Catalog, error) {
	return Parse(bytes.NewReader(bundled))
}

func Parse(r io.Reader) (*Catalog, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var courses []domain.Course
	if err := v.UnmarshalKey("courses", &courses); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{courses: courses, byID: make(map[string]int, len(courses))}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	videoIDs := make(map[string]string)
	for i, course := range c.courses {
		if course.ID == "" {
			return fmt.Errorf("catalog: course #%d has no id", i)
		}
		if _, dup := c.byID[course.ID]; dup {
			return fmt.Errorf("catalog: duplicate course id %q", course.ID)
		}
		c.byID[course.ID] = i

		moduleIDs := make(map[int]struct{}, len(course.Modules))
		for _, m := range course.Modules {
			if _, dup := moduleIDs[m.ID]; dup {
				return fmt.Errorf("catalog: course %q has duplicate module id %d", course.ID, m.ID)
			}
			moduleIDs[m.ID] = struct{}{}

			for tier := range m.Playlists {
				if _, err := domain.ParseTier(tier); err != nil {
					return fmt.Errorf("catalog: module %d of %q has a playlist for unknown tier %q", m.ID, course.ID, tier)
				}
			}

			ordinals := make(map[int]struct{}, len(m.Videos))
			for _, vid := range m.Videos {
				if vid.ID == "" {
					return fmt.Errorf("catalog: module %d of %q has a video without id", m.ID, course.ID)
				}
				if owner, dup := videoIDs[vid.ID]; dup {
					return fmt.Errorf("catalog: video id %q used by %s and %s", vid.ID, owner, course.ID)
				}
				videoIDs[vid.ID] = course.ID

				if vid.Ordinal <= 0 {
					return fmt.Errorf("catalog: video %q needs a positive ordinal", vid.ID)
				}
				if _, dup := ordinals[vid.Ordinal]; dup {
					return fmt.Errorf("catalog: module %d of %q repeats ordinal %d", m.ID, course.ID, vid.Ordinal)
				}
				ordinals[vid.Ordinal] = struct{}{}
			}
		}
	}
	return nil
}

func (c *Catalog) Course(id string) (*domain.Course, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	course := c.courses[i]
	return &course, nil
}

// List returns every course without its curriculum.
func (c *Catalog) List() []domain.Course {
	out := make([]domain.Course, 0, len(c.courses))
	for _, course := range c.courses {
		out = append(out, course.Summary())
	}
	return out
}
