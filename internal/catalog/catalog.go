package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// ErrNotFound is returned when a specialization has no catalog entry.
var ErrNotFound = errors.New("specialization not found")

// Catalog is the read-only set of tracks offered by the platform.
type Catalog struct {
	tracks []Info
	byID   map[Specialization]int
}

type catalogFile struct {
	DefaultRoadmap []Level `yaml:"default_roadmap"`
	Tracks         []Info  `yaml:"tracks"`
}

// Load parses the embedded catalog definition.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse builds a catalog from YAML. Tracks without a roadmap inherit
// the file's default_roadmap.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i := range f.Tracks {
		if len(f.Tracks[i].Roadmap) == 0 {
			f.Tracks[i].Roadmap = copyLevels(f.DefaultRoadmap)
		}
	}
	if err := validateTracks(f.Tracks); err != nil {
		return nil, err
	}

	c := &Catalog{
		tracks: f.Tracks,
		byID:   make(map[Specialization]int, len(f.Tracks)),
	}
	for i, t := range f.Tracks {
		c.byID[t.ID] = i
	}
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the process-wide catalog loaded from the embedded file.
// It panics if the embedded file is invalid.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load()
		if err != nil {
			panic("catalog: " + err.Error())
		}
		defaultCat = c
	})
	return defaultCat
}

// Lookup returns the catalog entry for id.
func (c *Catalog) Lookup(id Specialization) (Info, error) {
	i, ok := c.byID[id]
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.tracks[i].clone(), nil
}

// Has reports whether id has a catalog entry.
func (c *Catalog) Has(id Specialization) bool {
	_, ok := c.byID[id]
	return ok
}

// ModulesFor returns the module names of the given roadmap level. The
// result is empty when the id is unknown or the level is outside 1..3.
func (c *Catalog) ModulesFor(id Specialization, level int) []string {
	info, err := c.Lookup(id)
	if err != nil || level < 1 || level > RoadmapLevels {
		return []string{}
	}
	mods := info.Roadmap[level-1].Modules
	out := make([]string, len(mods))
	copy(out, mods)
	return out
}

// All returns every track in display order.
func (c *Catalog) All() []Info {
	out := make([]Info, len(c.tracks))
	for i, info := range c.tracks {
		out[i] = info.clone()
	}
	return out
}

// clone copies the slices of info so callers cannot change the catalog.
func (info Info) clone() Info {
	info.CareerPath = TextList{
		AR: slices.Clone(info.CareerPath.AR),
		EN: slices.Clone(info.CareerPath.EN),
	}
	info.Skills = slices.Clone(info.Skills)
	info.Roadmap = copyLevels(info.Roadmap)
	return info
}

func copyLevels(levels []Level) []Level {
	out := make([]Level, len(levels))
	for i, l := range levels {
		out[i] = Level{ID: l.ID, Title: l.Title, Modules: append([]string(nil), l.Modules...)}
	}
	return out
}
