package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProjectConfig(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, projectConfigName)
	data := `# project defaults
[parse]
input = "conf/main.sdl"
format = "tree"
max_depth = 64

[output]
color = "off"
max_diagnostics = 5

[cache]
enabled = true
dir = ".cache"

[trace]
level = "phase"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Parse.Format != "tree" || cfg.Parse.MaxDepth != 64 || cfg.Output.MaxDiagnostics != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.defined("cache", "enabled") || cfg.defined("parse", "jobs") {
		t.Fatal("IsDefined bookkeeping broken")
	}
	if got := cfg.resolve(cfg.Cache.Dir); got != filepath.Join(root, ".cache") {
		t.Fatalf("resolve = %q", got)
	}
	if got := resolveInput(nil, cfg); got != filepath.Join(root, "conf", "main.sdl") {
		t.Fatalf("resolveInput = %q", got)
	}
	if got := resolveInput([]string{"x.sdl"}, cfg); got != "x.sdl" {
		t.Fatalf("argument must win, got %q", got)
	}
}

func TestLoadProjectConfigRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"unknown key", "[parse]\nfromat = \"json\"\n", "unknown keys: parse.fromat"},
		{"bad format", "[parse]\nformat = \"xml\"\n", "[parse].format"},
		{"bad color", "[output]\ncolor = \"always\"\n", "[output].color"},
		{"negative depth", "[parse]\nmax_depth = -1\n", "must not be negative"},
		{"bad level", "[trace]\nlevel = \"loud\"\n", "[trace].level"},
		{"syntax", "[parse\n", "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), projectConfigName)
			if err := os.WriteFile(path, []byte(tc.data), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := loadProjectConfig(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want substring %q", err, tc.want)
			}
		})
	}
}

func TestFindProjectConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, projectConfigName)
	if err := os.WriteFile(want, []byte(""), 0o600); err != nil {
		t.Fatal(err)
	}
	got, ok, err := findProjectConfig(nested)
	if err != nil || !ok || got != want {
		t.Fatalf("findProjectConfig = %q, %v, %v", got, ok, err)
	}
}

func TestResolveInputDefault(t *testing.T) {
	if got := resolveInput(nil, nil); got != defaultInput {
		t.Fatalf("resolveInput = %q", got)
	}
}
