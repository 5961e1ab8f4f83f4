// Package config persists user preferences between runs.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vidgrab/vidgrab/internal/fileutil"
)

// Config holds the on-disk user preferences.
type Config struct {
	DownloadDirectory string `yaml:"download_directory"`

	path string
}

// DefaultPath is ~/.vidgrab/config.yaml, or a local fallback when the
// home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".vidgrab", "config.yaml")
	}
	return filepath.Join(home, ".vidgrab", "config.yaml")
}

// Load reads the config at path. A missing, unreadable, or corrupt file
// silently falls back to defaults so a bad config never blocks a
// download.
func Load(path string) *Config {
	cfg := &Config{
		DownloadDirectory: fileutil.DefaultDownloadDir(),
		path:              path,
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	var onDisk Config
	if err := yaml.Unmarshal(data, &onDisk); err != nil {
		return cfg
	}
	if onDisk.DownloadDirectory != "" {
		cfg.DownloadDirectory = onDisk.DownloadDirectory
	}
	return cfg
}

// LoadDefault loads the config from the default location.
func LoadDefault() *Config {
	return Load(DefaultPath())
}

// SetDownloadDirectory updates the preference in memory; call Save to
// persist it.
func (c *Config) SetDownloadDirectory(dir string) {
	c.DownloadDirectory = dir
}

// Save writes the config back to its file, creating parent directories
// as needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0644)
}
