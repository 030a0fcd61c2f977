package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"skillmcp/internal/logging"
	"skillmcp/internal/mcp"
)

func showCmd() *cobra.Command {
	var (
		skillsDir string
		raw       bool
	)

	cmd := &cobra.Command{
		Use:   "show <uri>",
		Short: "Show a skill by resource URI",
		Long: `Route a resource URI through the registry and print the matched skill.
Parameterized templates match any value, e.g.:

  skillmcp show users://42/profile`,
		Args: cobra.ExactArgs(1),
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

			match, err := srv.Table().Match(args[0])
			if err != nil {
				return err
			}

			content, err := match.Definition.Handler.Read(cmd.Context(), match)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", match.Definition.Template)
			for _, p := range match.Params {
				fmt.Fprintf(out, "  %s = %s\n", p.Name, p.Value)
			}
			fmt.Fprintln(out)

			if raw {
				fmt.Fprintln(out, content.Text)
				return nil
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				fmt.Fprintln(out, content.Text)
				return nil
			}
			rendered, err := renderer.Render(content.Text)
			if err != nil {
				fmt.Fprintln(out, content.Text)
				return nil
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}

	cmd.Flags().StringVar(&skillsDir, "skills-dir", "", "Override the configured skills directory")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the raw markdown without formatting")

	return cmd
}
