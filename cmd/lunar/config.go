package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lunar/internal/diagfmt"
	"lunar/internal/driver"
	"lunar/internal/project"
	"lunar/internal/version"
)

// cliConfig - итоговые настройки команды, флаги поверх lunar.toml.
type cliConfig struct {
	driver     driver.Options
	color      bool
	diagFormat string
	quiet      bool
	timings    bool
	manifest   *project.Manifest
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

// loadCLIConfig reads global flags and, when target sits inside a project,
// lunar.toml. Flags the user set explicitly always win over file values.
func loadCLIConfig(cmd *cobra.Command, target string) (*cliConfig, error) {
	pf := cmd.Root().PersistentFlags()

	maxDiagnostics, err := pf.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	maxDepth, err := pf.GetInt("max-depth")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	maxNodes, err := pf.GetUint32("max-nodes")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-nodes flag: %w", err)
	}
	colorFlag, err := pf.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	diagFormat, err := pf.GetString("diag-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	quiet, err := pf.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := pf.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfg := &cliConfig{
		diagFormat: strings.ToLower(diagFormat),
		quiet:      quiet,
		timings:    timings,
	}

	if target != "" {
		manifest, ok, err := project.LoadManifest(target)
		if err != nil {
			return nil, failure(err)
		}
		if ok {
			if err := manifest.CheckToolchain(version.Version); err != nil {
				return nil, failure(err)
			}
			cfg.manifest = manifest
			file := manifest.Config
			if manifest.Has("diagnostics", "max") && !pf.Changed("max-diagnostics") {
				maxDiagnostics = file.Diagnostics.Max
			}
			if manifest.Has("diagnostics", "color") && !pf.Changed("color") {
				colorFlag = file.Diagnostics.Color
			}
			if manifest.Has("parser", "max_depth") && !pf.Changed("max-depth") {
				maxDepth = file.Parser.MaxDepth
			}
			if manifest.Has("parser", "max_nodes") && !pf.Changed("max-nodes") {
				maxNodes = file.Parser.MaxNodes
			}
		}
	}

	if maxDiagnostics < 0 {
		return nil, usageErrorf("--max-diagnostics must be >= 0")
	}
	if maxDepth < 0 {
		return nil, usageErrorf("--max-depth must be >= 0")
	}
	switch cfg.diagFormat {
	case "pretty", "classic", "short", "json":
	default:
		return nil, usageErrorf("unknown diagnostics format %q (pretty|classic|short|json)", diagFormat)
	}
	useColor, err := resolveColor(colorFlag, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	cfg.color = useColor
	color.NoColor = !useColor

	cfg.driver = driver.Options{
		MaxDiagnostics: maxDiagnostics,
		MaxDepth:       maxDepth,
		MaxNodes:       maxNodes,
	}
	return cfg, nil
}

// resolveColor turns auto|on|off into a decision for the given stream.
// NO_COLOR disables auto colouring.
func resolveColor(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		return isTerminal(w), nil
	default:
		return false, usageErrorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

func (c *cliConfig) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     c.color,
		Context:   2,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	}
}
