package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lunar/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "")
	src := filepath.Join(root, "src", "deep", "main.lr")
	writeFile(t, src, "funct main() ret int { return 0; }")

	path, ok, err := FindManifest(src)
	if err != nil || !ok {
		t.Fatalf("expected manifest, ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(root, ManifestName) {
		t.Fatalf("unexpected manifest path %s", path)
	}
	dir, ok, err := FindProjectRoot(filepath.Dir(src))
	if err != nil || !ok || dir != root {
		t.Fatalf("unexpected root %q ok=%v err=%v", dir, ok, err)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	m, ok, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Skipf("found unrelated manifest at %s", m.Path)
	}
	if m != nil {
		t.Fatalf("expected nil manifest")
	}
}

func TestDecodeManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, `
[toolchain]
lunar = ">= 0.1.0"

[diagnostics]
max = 7
color = "off"

[parser]
max_depth = 32
`)
	m, err := DecodeManifest(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Config.Diagnostics.Max != 7 || m.Config.Diagnostics.Color != "off" {
		t.Fatalf("unexpected diagnostics config: %+v", m.Config.Diagnostics)
	}
	if m.Config.Parser.MaxDepth != 32 {
		t.Fatalf("unexpected max_depth %d", m.Config.Parser.MaxDepth)
	}
	if !m.Has("parser", "max_depth") || m.Has("parser", "max_nodes") {
		t.Fatalf("Has reports wrong keys")
	}
	if m.Root != dir {
		t.Fatalf("unexpected root %s", m.Root)
	}
}

func TestDecodeManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[parser\n", "failed to parse TOML"},
		{"unknown key", "[parser]\nmax_dept = 3\n", "unknown keys: parser.max_dept"},
		{"bad color", "[diagnostics]\ncolor = \"always\"\n", "color must be"},
		{"negative max", "[diagnostics]\nmax = -1\n", "max must be >= 0"},
		{"zero depth", "[parser]\nmax_depth = 0\n", "max_depth must be > 0"},
		{"bad constraint", "[toolchain]\nlunar = \"not a version\"\n", "invalid [toolchain].lunar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := DecodeManifest(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			var merr *ManifestError
			if !errors.As(err, &merr) || merr.Code != diag.ProjBadManifest {
				t.Fatalf("expected ProjBadManifest, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCheckToolchain(t *testing.T) {
	m := &Manifest{Path: "lunar.toml", Config: Config{Toolchain: ToolchainConfig{Lunar: ">= 0.2.0, < 1.0.0"}}}
	if err := m.CheckToolchain("0.3.1"); err != nil {
		t.Fatalf("0.3.1 should satisfy: %v", err)
	}
	err := m.CheckToolchain("0.1.0")
	if !errors.Is(err, ErrToolchainMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	var merr *ManifestError
	if !errors.As(err, &merr) || merr.Code != diag.ProjToolchainMismatch {
		t.Fatalf("expected ProjToolchainMismatch code, got %v", err)
	}
	if err := (&Manifest{}).CheckToolchain("garbage"); err != nil {
		t.Fatalf("empty constraint must accept anything: %v", err)
	}
}
