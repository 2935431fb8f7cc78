// internal/config/config.go
//
// This package handles configuration and the .feedback directory structure.
// Every project that runs the feedback form gets a .feedback/ folder created
// in its root holding config.yaml and the logs.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/feedback/internal/feedback"
)

const (
	// WorkspaceDir is the name of the directory we create in each project
	WorkspaceDir = ".feedback"

	defaultPrompt      = "How would you rate your service with us?"
	defaultPlaceholder = "Write a review"
)

const defaultProjectConfigYAML = `# feedback form configuration
version: 1

form:
  prompt: How would you rate your service with us?
  placeholder: Write a review
  # Trimmed characters required before Send is enabled.
  min_length: 10
  default_rating: 10
  max_rating: 10
  # true keeps the strict "longer than min_length" submit guard.
  legacy_guard: false

# Items loaded into the in-memory list at startup. Nothing is written back.
seed: []
# Example:
# seed:
#   - text: Friendly staff and quick turnaround.
#     rating: 9
`

// FormConfig controls the form's text and validation gate.
type FormConfig struct {
	Prompt        string `yaml:"prompt"`
	Placeholder   string `yaml:"placeholder"`
	MinLength     int    `yaml:"min_length"`
	DefaultRating int    `yaml:"default_rating"`
	MaxRating     int    `yaml:"max_rating"`
	LegacyGuard   bool   `yaml:"legacy_guard"`
}

// SeedItem is one feedback entry preloaded into the list.
type SeedItem struct {
	Text   string `yaml:"text"`
	Rating int    `yaml:"rating"`
}

// ProjectConfig models .feedback/config.yaml.
type ProjectConfig struct {
	Version int        `yaml:"version"`
	Form    FormConfig `yaml:"form"`
	Seed    []SeedItem `yaml:"seed"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory the form was launched for
	ProjectDir string

	// WorkspaceDir is ProjectDir/.feedback
	WorkspaceDir string

	Project ProjectConfig
}

// InitDir creates the .feedback directory structure in the given project
// directory and writes a default config.yaml when none exists.
//
// Structure created:
// .feedback/
// ├── config.yaml
// └── logs/      <- feedback.log (structured) and activity.log (journal)
func InitDir(projectDir string) error {
	dir := filepath.Join(projectDir, WorkspaceDir)
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", dir, err)
	}
	return ensureProjectConfig(filepath.Join(dir, "config.yaml"))
}

// NewConfig creates a new Config populated from .feedback/config.yaml.
// A missing file yields the defaults.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:   projectDir,
		WorkspaceDir: filepath.Join(projectDir, WorkspaceDir),
		Project:      defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.WorkspaceDir, "logs")
}

// LogPath returns the structured log file path.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "feedback.log")
}

// ActivityLogPath returns the human-readable activity journal path.
func (c *Config) ActivityLogPath() string {
	return filepath.Join(c.LogsDir(), "activity.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.WorkspaceDir, "config.yaml")
}

// Rules converts the form section into validation rules.
func (c *Config) Rules() feedback.Rules {
	f := c.Project.Form
	return feedback.Rules{
		MinLength:     f.MinLength,
		DefaultRating: f.DefaultRating,
		MaxRating:     f.MaxRating,
		LegacyGuard:   f.LegacyGuard,
	}
}

// SeedDrafts returns the configured seed items as drafts.
func (c *Config) SeedDrafts() []feedback.Draft {
	if len(c.Project.Seed) == 0 {
		return nil
	}
	drafts := make([]feedback.Draft, 0, len(c.Project.Seed))
	for _, item := range c.Project.Seed {
		drafts = append(drafts, feedback.Draft{Text: item.Text, Rating: item.Rating})
	}
	return drafts
}

// SetLegacyGuard toggles the strict submit guard and persists the value back
// to .feedback/config.yaml.
func (c *Config) SetLegacyGuard(enabled bool) error {
	c.Project.Form.LegacyGuard = enabled
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Form: FormConfig{
			Prompt:        defaultPrompt,
			Placeholder:   defaultPlaceholder,
			MinLength:     feedback.DefaultMinLength,
			DefaultRating: feedback.DefaultRating,
			MaxRating:     feedback.DefaultMaxRating,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Form.MinLength == 0 {
		pc.Form.MinLength = feedback.DefaultMinLength
	}
	if pc.Form.MaxRating == 0 {
		pc.Form.MaxRating = feedback.DefaultMaxRating
	}
	if pc.Form.DefaultRating == 0 {
		pc.Form.DefaultRating = pc.Form.MaxRating
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Form.Prompt = strings.TrimSpace(pc.Form.Prompt)
	if pc.Form.Prompt == "" {
		pc.Form.Prompt = defaultPrompt
	}
	pc.Form.Placeholder = strings.TrimSpace(pc.Form.Placeholder)
	if pc.Form.Placeholder == "" {
		pc.Form.Placeholder = defaultPlaceholder
	}
	for i := range pc.Seed {
		pc.Seed[i].Text = strings.TrimSpace(pc.Seed[i].Text)
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Form.MinLength < 1 {
		return fmt.Errorf("form.min_length must be >= 1")
	}
	if pc.Form.MaxRating < 1 {
		return fmt.Errorf("form.max_rating must be >= 1")
	}
	if pc.Form.DefaultRating < 1 || pc.Form.DefaultRating > pc.Form.MaxRating {
		return fmt.Errorf("form.default_rating must be between 1 and %d", pc.Form.MaxRating)
	}
	for i, item := range pc.Seed {
		if item.Text == "" {
			return fmt.Errorf("seed[%d]: text is required", i)
		}
		if item.Rating < 1 || item.Rating > pc.Form.MaxRating {
			return fmt.Errorf("seed[%d]: rating must be between 1 and %d", i, pc.Form.MaxRating)
		}
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.WorkspaceDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure workspace dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	path := c.ProjectConfigPath()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
