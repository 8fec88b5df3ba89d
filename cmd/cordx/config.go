package main

import (
	"fmt"

	"github.com/matsen/cordx/internal/config"
	"github.com/spf13/cobra"
)

var configInit bool

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write the effective configuration to the config file")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after defaults, the config file,
the ` + config.DataPathEnv + ` environment variable (also read from .env) and --data.

The config file lives at $XDG_CONFIG_HOME/cordx/config.yml
(~/.config/cordx/config.yml by default). Use --init to create it.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Path   string         `json:"path"`
	Config *config.Config `json:"config"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	path := config.GlobalConfigPath()

	if configInit {
		if path == "" {
			exitWithError(ExitConfigError, "cannot determine config directory")
		}
		if err := cfg.Save(path); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
	}

	if !humanOutput {
		return outputJSON(ConfigResponse{Path: path, Config: cfg})
	}

	fmt.Printf("config file:     %s\n", path)
	fmt.Printf("data_path:       %s\n", cfg.DataPath)
	fmt.Printf("db_path:         %s\n", cfg.ResolvedDBPath())
	fmt.Printf("years:           %d:%d\n", cfg.YearMin, cfg.YearMax)
	fmt.Printf("top_n:           %d\n", cfg.TopN)
	fmt.Printf("preview_rows:    %d\n", cfg.PreviewRows)
	fmt.Printf("include_unknown: %t\n", cfg.IncludeUnknown)
	fmt.Printf("listen_addr:     %s\n", cfg.ListenAddr)
	fmt.Printf("rate_limit:      %g/s (burst %d)\n", cfg.RateLimit, cfg.RateBurst)
	w := cfg.WordCloud
	fmt.Printf("wordcloud:       %dx%d %s, %q, %d words\n", w.Width, w.Height, w.Background, w.Font, w.MaxWords)
	return nil
}
