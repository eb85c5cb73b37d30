package domain

// Course is a static catalog entry. Courses are never created or mutated at runtime.
type Course struct {
	ID          string   `mapstructure:"id" json:"id"`
	Title       string   `mapstructure:"title" json:"title"`
	Description string   `mapstructure:"description" json:"description"`
	Duration    string   `mapstructure:"duration" json:"duration"`
	Level       string   `mapstructure:"level" json:"level"`
	Modules     []Module `mapstructure:"modules" json:"modules,omitempty"`
}

// Module.Playlists overrides PlaylistURL per tier.
type Module struct {
	ID          int               `mapstructure:"id" json:"id"`
	Title       string            `mapstructure:"title" json:"title"`
	Description string            `mapstructure:"description" json:"description"`
	Duration    string            `mapstructure:"duration" json:"duration"`
	Topics      []string          `mapstructure:"topics" json:"topics"`
	PlaylistURL string            `mapstructure:"playlist_url" json:"playlist_url,omitempty"`
	Playlists   map[string]string `mapstructure:"playlists" json:"-"`
	Videos      []Video           `mapstructure:"videos" json:"videos,omitempty"`
}

// Video.Ordinal is assigned by the catalog author and is what progress records store.
type Video struct {
	ID       string `mapstructure:"id" json:"id"`
	Ordinal  int    `mapstructure:"ordinal" json:"ordinal"`
	Title    string `mapstructure:"title" json:"title"`
	Duration string `mapstructure:"duration" json:"duration"`
	URL      string `mapstructure:"url" json:"url"`
}

func (c *Course) Module(id int) (*Module, error) {
	for i := range c.Modules {
		if c.Modules[i].ID == id {
			return &c.Modules[i], nil
		}
	}
	return nil, ErrModuleNotFound
}

// FindVideo returns the video with the given id together with the module that owns it.
func (c *Course) FindVideo(videoID string) (*Module, *Video, error) {
	for i := range c.Modules {
		m := &c.Modules[i]
		for j := range m.Videos {
			if m.Videos[j].ID == videoID {
				return m, &m.Videos[j], nil
			}
		}
	}
	return nil, nil, ErrVideoNotFound
}

func (m *Module) VideoByOrdinal(ordinal int) (*Video, bool) {
	for i := range m.Videos {
		if m.Videos[i].Ordinal == ordinal {
			return &m.Videos[i], true
		}
	}
	return nil, false
}

// Summary drops the curriculum, used when the caller is not enrolled.
func (c Course) Summary() Course {
	c.Modules = nil
	return c
}

// ForTier returns a copy whose module playlists follow the tier's overrides.
func (c Course) ForTier(t Tier) Course {
	modules := make([]Module, len(c.Modules))
	copy(modules, c.Modules)
	for i := range modules {
		if url := modules[i].Playlists[string(t)]; url != "" {
			modules[i].PlaylistURL = url
		}
	}
	c.Modules = modules
	return c
}
