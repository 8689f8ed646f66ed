package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"lunar/internal/diag"
)

// Config mirrors lunar.toml. Zero values mean "not set"; the CLI only
// applies fields whose keys were present (see Manifest.Has).
type Config struct {
	Toolchain   ToolchainConfig   `toml:"toolchain"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Parser      ParserConfig      `toml:"parser"`
}

type ToolchainConfig struct {
	Lunar string `toml:"lunar"` // semver constraint, e.g. ">= 0.1.0"
}

type DiagnosticsConfig struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"`
}

type ParserConfig struct {
	MaxDepth int    `toml:"max_depth"`
	MaxNodes uint32 `toml:"max_nodes"`
}

// Manifest is a decoded lunar.toml together with the keys it defined.
type Manifest struct {
	Path   string
	Root   string
	Config Config

	meta toml.MetaData
}

// Has reports whether the dotted key (e.g. "parser", "max_depth") was set in the file.
func (m *Manifest) Has(key ...string) bool {
	if m == nil {
		return false
	}
	return m.meta.IsDefined(key...)
}

// ManifestError: ошибка конфигурации с кодом диагностики.
type ManifestError struct {
	Path string
	Code diag.Code
	Msg  string
	Err  error
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Path, e.Code.ID(), e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Code.ID(), e.Msg)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// ErrToolchainMismatch matches (errors.Is) a failed [toolchain].lunar check.
var ErrToolchainMismatch = errors.New("toolchain version mismatch")

// LoadManifest finds lunar.toml above start and decodes it.
// ok is false when no manifest exists; that is not an error.
func LoadManifest(start string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(start)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := DecodeManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// DecodeManifest reads and validates one lunar.toml.
func DecodeManifest(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, &ManifestError{Path: path, Code: diag.ProjBadManifest, Msg: "failed to parse TOML", Err: err}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, &ManifestError{Path: path, Code: diag.ProjBadManifest, Msg: "unknown keys: " + strings.Join(keys, ", ")}
	}
	if meta.IsDefined("diagnostics", "max") && cfg.Diagnostics.Max < 0 {
		return nil, &ManifestError{Path: path, Code: diag.ProjBadManifest, Msg: "[diagnostics].max must be >= 0"}
	}
	if meta.IsDefined("diagnostics", "color") {
		switch cfg.Diagnostics.Color {
		case "auto", "on", "off":
		default:
			return nil, &ManifestError{Path: path, Code: diag.ProjBadManifest, Msg: fmt.Sprintf("[diagnostics].color must be auto, on or off, got %q", cfg.Diagnostics.Color)}
		}
	}
	if meta.IsDefined("parser", "max_depth") && cfg.Parser.MaxDepth <= 0 {
		return nil, &ManifestError{Path: path, Code: diag.ProjBadManifest, Msg: "[parser].max_depth must be > 0"}
	}
	if meta.IsDefined("toolchain", "lunar") {
		if _, err := semver.NewConstraint(cfg.Toolchain.Lunar); err != nil {
			return nil, &ManifestError{Path: path, Code: diag.ProjBadManifest, Msg: "invalid [toolchain].lunar constraint", Err: err}
		}
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
		meta:   meta,
	}, nil
}

// CheckToolchain verifies the running CLI version against [toolchain].lunar.
func (m *Manifest) CheckToolchain(current string) error {
	if m == nil || strings.TrimSpace(m.Config.Toolchain.Lunar) == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(m.Config.Toolchain.Lunar)
	if err != nil {
		return &ManifestError{Path: m.Path, Code: diag.ProjBadManifest, Msg: "invalid [toolchain].lunar constraint", Err: err}
	}
	v, err := semver.NewVersion(current)
	if err != nil {
		return &ManifestError{Path: m.Path, Code: diag.ProjToolchainMismatch, Msg: fmt.Sprintf("cannot parse toolchain version %q", current), Err: err}
	}
	if !constraint.Check(v) {
		return &ManifestError{
			Path: m.Path,
			Code: diag.ProjToolchainMismatch,
			Msg:  fmt.Sprintf("lunar %s does not satisfy %q", v, m.Config.Toolchain.Lunar),
			Err:  ErrToolchainMismatch,
		}
	}
	return nil
}
