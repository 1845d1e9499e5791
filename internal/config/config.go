// Package config loads the mininext.json project file the runtime hands to
// the core at startup: where the pages directory lives, how big the SSR
// cache should be, and how the watcher should behave. The load/save shape —
// a struct decoded with encoding/json, defaults applied after decode, a
// configPath remembered for Save — follows vango's own internal/config
// (Load/LoadFile/Save/SaveTo/LoadFromWorkingDir) exactly; this core never
// reaches for viper or yaml even though other repos in the pack do.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mininext-go/mininext/internal/errors"
)

// ConfigFileName is the name of the project configuration file.
const ConfigFileName = "mininext.json"

// Defaults mirror the constants spec §4 assigns each component when the
// host runtime doesn't override them.
const (
	DefaultPagesDir      = "pages"
	DefaultCacheCapacity = 256
	DefaultPollInterval  = "500ms"
	DefaultDebounce      = "100ms"
)

// Config is the complete mininext.json schema.
type Config struct {
	// Name is the project name, purely informational.
	Name string `json:"name,omitempty"`

	// PagesDir is the directory ScanFilesystem walks to build the route
	// table, relative to the config file's directory.
	PagesDir string `json:"pagesDir,omitempty"`

	// Cache configures the SSR render cache (C2).
	Cache CacheConfig `json:"cache,omitempty"`

	// Watch configures the filesystem watcher (C7).
	Watch WatchConfig `json:"watch,omitempty"`

	configPath string
}

// CacheConfig configures the rendered-page LRU.
type CacheConfig struct {
	// Capacity is the maximum number of rendered pages to keep. Zero
	// (including an absent field) becomes DefaultCacheCapacity on load; a
	// negative value is raised to 1 by cache.New.
	Capacity int `json:"capacity,omitempty"`
}

// WatchConfig configures the background filesystem watcher.
type WatchConfig struct {
	// PollInterval is the polling fallback's scan cadence, as a
	// time.ParseDuration string (e.g. "500ms").
	PollInterval string `json:"pollInterval,omitempty"`

	// Debounce is the coalescing window applied to native-watch events,
	// as a time.ParseDuration string.
	Debounce string `json:"debounce,omitempty"`

	// Ignore lists glob patterns for noise paths. It is stored and saved
	// only: neither pkg/watch nor bridge.NewFromConfig applies it, so the
	// watcher still reports changes under ignored paths.
	Ignore []string `json:"ignore,omitempty"`
}

// DefaultIgnore contains the patterns a freshly-defaulted Config ignores,
// matching the noise vango's own dev watcher filters out.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	"*.tmp",
	"*.swp",
	"*~",
}

// New returns a Config populated with default values.
func New() *Config {
	return &Config{
		PagesDir: DefaultPagesDir,
		Cache:    CacheConfig{Capacity: DefaultCacheCapacity},
		Watch: WatchConfig{
			PollInterval: DefaultPollInterval,
			Debounce:     DefaultDebounce,
			Ignore:       append([]string(nil), DefaultIgnore...),
		},
	}
}

// applyDefaults fills in zero-valued fields left empty by the JSON the
// caller loaded, the same merge-over-defaults step vango's Load performs
// after json.Unmarshal.
func (c *Config) applyDefaults() {
	if c.PagesDir == "" {
		c.PagesDir = DefaultPagesDir
	}
	if c.Cache.Capacity == 0 {
		c.Cache.Capacity = DefaultCacheCapacity
	}
	if c.Watch.PollInterval == "" {
		c.Watch.PollInterval = DefaultPollInterval
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = DefaultDebounce
	}
	if c.Watch.Ignore == nil {
		c.Watch.Ignore = append([]string(nil), DefaultIgnore...)
	}
}

// Load reads mininext.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.InvalidArgument, "no "+ConfigFileName+" found in "+filepath.Dir(path), err)
		}
		return nil, errors.Wrap(errors.InvalidArgument, "failed to read "+path, err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.InvalidArgument, "failed to parse "+path, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration back to the path it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New(errors.InvalidArgument, "no config path set; use SaveTo")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path as indented JSON.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(errors.InvalidArgument, "failed to marshal config", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.InvalidArgument, "failed to write "+path, err)
	}
	c.configPath = path
	return nil
}

// Path returns the file path the config was loaded from or last saved to.
func (c *Config) Path() string {
	return c.configPath
}

// Exists reports whether dir contains a mininext.json file.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir looking for a directory containing
// mininext.json, the same upward search vango's FindProjectRoot performs
// for vango.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.InvalidArgument, "no "+ConfigFileName+" found in "+startDir+" or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration starting from the process's
// current working directory, searching upward for mininext.json.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return Load(root)
}
