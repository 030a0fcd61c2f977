package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"skillmcp/internal/logging"
	"skillmcp/internal/mcp"
)

func listCmd() *cobra.Command {
	var skillsDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered skill URIs",
		Long:  `Scan the skills directory and print every registered resource URI template with its name and description.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewAppLogger()

			cfg, err := loadConfig(skillsDir, logger)
			if err != nil {
				return err
			}

			srv := mcp.NewServer(cfg, logger)
			if err := srv.Initialize(); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "URI\tNAME\tDESCRIPTION")
			for _, entry := range srv.Catalog() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Template, entry.Name, entry.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&skillsDir, "skills-dir", "", "Override the configured skills directory")

	return cmd
}
