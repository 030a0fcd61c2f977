package main

import (
	"github.com/spf13/cobra"

	"skillmcp/internal/logging"
	"skillmcp/internal/mcp"
)

func serveCmd() *cobra.Command {
	var skillsDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the skill corpus over MCP stdio",
		Long: `Scan the skills directory, build the resource routing table, and serve
MCP over stdio until the client disconnects. All diagnostics go to the
log file and stderr; stdout belongs to the MCP transport.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewAppLogger()

			cfg, err := loadConfig(skillsDir, logger)
			if err != nil {
				return err
			}

			return mcp.NewServer(cfg, logger).Start()
		},
	}

	cmd.Flags().StringVar(&skillsDir, "skills-dir", "", "Override the configured skills directory")

	return cmd
}
