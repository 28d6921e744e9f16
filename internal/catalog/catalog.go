package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Script is one tracked script: where its baseline and live versions live
type Script struct {
	Name     string `yaml:"name" json:"name"`
	Baseline string `yaml:"baseline" json:"baseline"`
	Live     string `yaml:"live" json:"live"`

	// Watch is an optional owner/repo:path whose pushes trigger a re-check
	Watch string `yaml:"watch,omitempty" json:"watch,omitempty"`

	// Notify sends the report to the configured recipient after every check
	Notify bool `yaml:"notify,omitempty" json:"notify"`
}

// Catalog is an ordered set of scripts with unique names
type Catalog struct {
	scripts []Script
	byName  map[string]int
}

type file struct {
	Scripts []Script `yaml:"scripts"`
}

// New builds a catalog and validates it
func New(scripts []Script) (*Catalog, error) {
	c := &Catalog{
		scripts: make([]Script, 0, len(scripts)),
		byName:  make(map[string]int, len(scripts)),
	}

	for i, s := range scripts {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			return nil, fmt.Errorf("script %d: name is required", i)
		}
		if _, dup := c.byName[s.Name]; dup {
			return nil, fmt.Errorf("duplicate script name %q", s.Name)
		}
		if s.Baseline == "" || s.Live == "" {
			return nil, fmt.Errorf("script %q: baseline and live locators are required", s.Name)
		}
		if s.Watch != "" && !strings.Contains(s.Watch, ":") {
			return nil, fmt.Errorf("script %q: watch must be owner/repo:path", s.Name)
		}

		c.byName[s.Name] = len(c.scripts)
		c.scripts = append(c.scripts, s)
	}

	return c, nil
}

// Load reads a YAML catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(f.Scripts) == 0 {
		return nil, fmt.Errorf("catalog has no scripts")
	}
	return New(f.Scripts)
}

// Lookup finds a script by name
func (c *Catalog) Lookup(name string) (Script, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Script{}, false
	}
	return c.scripts[i], true
}

// Names returns the script names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.scripts))
	for i, s := range c.scripts {
		names[i] = s.Name
	}
	return names
}

// Scripts returns a copy of every script in catalog order
func (c *Catalog) Scripts() []Script {
	out := make([]Script, len(c.scripts))
	copy(out, c.scripts)
	return out
}

// Watching returns the scripts whose watch target is path in repo.
// Repository names compare case-insensitively, paths exactly.
func (c *Catalog) Watching(repo, path string) []Script {
	var out []Script
	for _, s := range c.scripts {
		watchRepo, watchPath, ok := strings.Cut(s.Watch, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(watchRepo, repo) && watchPath == path {
			out = append(out, s)
		}
	}
	return out
}
