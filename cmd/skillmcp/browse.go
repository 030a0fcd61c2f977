package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"skillmcp/internal/logging"
	"skillmcp/internal/mcp"
	"skillmcp/internal/tui/browse"
	"skillmcp/internal/tui/helpers"
)

func browseCmd() *cobra.Command {
	var skillsDir string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the skill corpus interactively",
		Long:  `Open a terminal UI listing every registered skill with a rendered markdown preview.`,
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

			items := make([]browse.SkillItem, 0, len(srv.Catalog()))
			for _, entry := range srv.Catalog() {
				items = append(items, browse.SkillItem{
					Template: entry.Template,
					Name:     entry.Name,
					Desc:     entry.Description,
					MIMEType: entry.MIMEType,
					Content:  entry.Content,
				})
			}

			ctx := helpers.NewUIContext(0, 0, cfg, logger)
			model := browse.NewModel(items, ctx)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("browser failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&skillsDir, "skills-dir", "", "Override the configured skills directory")

	return cmd
}
