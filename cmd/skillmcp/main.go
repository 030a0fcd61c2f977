// Package main is the entry point for the skillmcp CLI.
//
// skillmcp serves a directory tree of markdown skill files as MCP resources
// over stdio. Directory and file names carry routing syntax: "(group)"
// directories are dropped from resource URIs and "[param]" names become URI
// parameters. The CLI also offers local inspection commands (list, show,
// browse) and git-based corpus syncing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skillmcp/internal/config"
	"skillmcp/internal/logging"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "skillmcp",
		Short: "Serve markdown skill files as MCP resources",
		Long: `skillmcp turns a directory tree of markdown skill files into MCP
resources, deriving a URI per file from its path. Directories named
"(group)" organize files without affecting URIs, and "[param]" names
become URI parameters that match any value.

Run "skillmcp init" once to configure the skills directory, then point
your MCP client at "skillmcp serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		initCmd(),
		serveCmd(),
		listCmd(),
		showCmd(),
		browseCmd(),
		syncCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the user configuration, applying the --skills-dir
// override when set. A missing config file is fine when the flag supplies
// the skills directory; a config file that exists but fails to load is an
// error regardless, so the flag never masks a corrupt config.
func loadConfig(skillsDirFlag string, logger *logging.AppLogger) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		if !config.IsFirstRun() {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		if skillsDirFlag == "" {
			return nil, fmt.Errorf("no configuration found - run 'skillmcp init' or pass --skills-dir: %w", err)
		}
		defaults := config.DefaultConfig()
		cfg = &defaults
	}
	if skillsDirFlag != "" {
		cfg.SkillsDir = skillsDirFlag
	}
	if cfg.SkillsDir == "" {
		return nil, fmt.Errorf("no skills directory configured - run 'skillmcp init' or pass --skills-dir")
	}
	logger.Debug("Configuration resolved", "skillsDir", cfg.SkillsDir)
	return cfg, nil
}
