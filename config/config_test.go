package config

import (
	"os"
	"path/filepath"
	"testing"

	"jocks/interpreter"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()

	if c.MaxCallDepth != 1024 || c.Color != "auto" || c.DiagnosticsFormat != "text" || c.Verbosity != -4 {
		t.Errorf("Default() = %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		depth   int
		color   string
	}{
		{
			name: "toml",
			file: "jocks.toml",
			content: `max-call-depth = 64
color = "never"
`,
			depth: 64,
			color: "never",
		},
		{
			name: "yaml",
			file: "jocks.yaml",
			content: `max-call-depth: 32
diagnostics-format: yaml
`,
			depth: 32,
			color: "auto",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(t, dir, tt.file, tt.content)

			c, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if c.MaxCallDepth != tt.depth || c.Color != tt.color {
				t.Errorf("Load() = %+v", c)
			}
			if c.Path != path {
				t.Errorf("Path = %q, want %q", c.Path, path)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown extension", "jocks.json", `{}`},
		{"bad toml", "bad.toml", `max-call-depth = `},
		{"invalid value", "neg.toml", `max-call-depth = -1`},
		{"depth over the limit", "deep.yaml", `max-call-depth: 100000000`},
		{"invalid color", "color.yml", `color: purple`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(write(t, dir, tt.file, tt.content)); err == nil {
				t.Error("Load succeeded")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	c, err := Discover(dir)
	if err != nil || c.Path != "" {
		t.Fatalf("Discover in an empty dir = %+v, %v", c, err)
	}

	write(t, dir, "jocks.yml", "verbosity: 2\n")
	c, err = Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if c.Verbosity != 2 || filepath.Base(c.Path) != "jocks.yml" {
		t.Errorf("Discover() = %+v", c)
	}
}

func TestDepthLimitAccepted(t *testing.T) {
	c := Default()
	c.MaxCallDepth = interpreter.MaxCallDepthLimit

	if err := c.Validate(); err != nil {
		t.Errorf("the limit itself is rejected: %v", err)
	}

	c.MaxCallDepth++
	if err := c.Validate(); err == nil {
		t.Error("a depth over the limit validates")
	}
}
