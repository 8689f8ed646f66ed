package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lunar/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show lunar build metadata",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	// version не зависит от lunar.toml, но цвет решается так же, как везде
	if _, err := loadCLIConfig(cmd, ""); err != nil {
		return err
	}

	info := version.Get()
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "pretty":
		_, err := fmt.Fprint(cmd.OutOrStdout(), info.Pretty(version.Banner()))
		return err
	default:
		return usageErrorf("unsupported format %q (must be pretty or json)", format)
	}
}
