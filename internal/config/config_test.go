package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingrea/feedback/internal/feedback"
)

func TestInitDirWritesDefaultConfig(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("InitDir returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(projectDir, WorkspaceDir, "logs")); err != nil {
		t.Fatalf("expected logs dir: %v", err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Form.MinLength != feedback.DefaultMinLength {
		t.Fatalf("min length = %d, want %d", c.Project.Form.MinLength, feedback.DefaultMinLength)
	}
	if c.Project.Form.Placeholder != "Write a review" {
		t.Fatalf("placeholder = %q", c.Project.Form.Placeholder)
	}
	if len(c.SeedDrafts()) != 0 {
		t.Fatalf("default config should not seed feedback")
	}
}

func TestInitDirKeepsExistingConfig(t *testing.T) {
	projectDir := t.TempDir()
	dir := filepath.Join(projectDir, WorkspaceDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	custom := "version: 1\nform:\n  min_length: 4\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("InitDir returned error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != custom {
		t.Fatalf("existing config was overwritten: %q", data)
	}
}

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	rules := c.Rules()
	if rules != feedback.DefaultRules() {
		t.Fatalf("rules = %+v, want defaults", rules)
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	dir := filepath.Join(projectDir, WorkspaceDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
form:
  prompt: "  Tell us how we did  "
  min_length: 12
  max_rating: 5
  legacy_guard: true
seed:
  - text: "  Friendly staff and quick turnaround.  "
    rating: 4
  - text: Could be faster at weekends.
    rating: 3
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Form.Prompt != "Tell us how we did" {
		t.Fatalf("prompt not trimmed: %q", c.Project.Form.Prompt)
	}
	rules := c.Rules()
	if rules.MinLength != 12 || rules.MaxRating != 5 || rules.DefaultRating != 5 || !rules.LegacyGuard {
		t.Fatalf("unexpected rules %+v", rules)
	}
	seeds := c.SeedDrafts()
	if len(seeds) != 2 {
		t.Fatalf("expected 2 seed items, got %d", len(seeds))
	}
	if seeds[0].Text != "Friendly staff and quick turnaround." || seeds[0].Rating != 4 {
		t.Fatalf("unexpected first seed %+v", seeds[0])
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	cases := map[string]string{
		"rating above max":   "version: 1\nform:\n  max_rating: 5\n  default_rating: 7\n",
		"seed without text":  "version: 1\nseed:\n  - rating: 3\n",
		"seed out of range":  "version: 1\nseed:\n  - text: fine words here\n    rating: 11\n",
		"negative minlength": "version: 1\nform:\n  min_length: -2\n",
		"not yaml":           "version: [1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			projectDir := t.TempDir()
			dir := filepath.Join(projectDir, WorkspaceDir)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := NewConfig(projectDir); err == nil {
				t.Fatalf("expected validation error but got none")
			}
		})
	}
}

func TestSetLegacyGuardPersists(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetLegacyGuard(true); err != nil {
		t.Fatalf("SetLegacyGuard: %v", err)
	}
	reloaded, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Rules().LegacyGuard {
		t.Fatalf("legacy guard was not persisted")
	}
}
