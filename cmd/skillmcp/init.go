package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillmcp/internal/config"
)

func initCmd() *cobra.Command {
	var (
		skillsDir string
		remoteURL string
		branch    string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the skillmcp configuration",
		Long: `Create the configuration file and the skills directory. Without
--skills-dir the platform data directory is used. Set --remote to sync
the corpus from a git repository with 'skillmcp sync'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := skillsDir
			if dir == "" {
				dir = config.DefaultSkillsDir()
			}

			cfg, err := config.Init(dir)
			if err != nil {
				return err
			}

			if remoteURL != "" || branch != "" {
				cfg.RemoteURL = remoteURL
				cfg.Branch = branch
				if err := cfg.Save(); err != nil {
					return err
				}
			}

			path, err := config.ConfigPath()
			if err != nil {
				return err
			}

			fmt.Printf("Configuration written to %s\n", path)
			fmt.Printf("Skills directory: %s\n", cfg.SkillsDir)
			if cfg.RemoteURL != "" {
				fmt.Printf("Remote corpus: %s\n", cfg.RemoteURL)
				fmt.Println("Run 'skillmcp sync' to fetch it.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&skillsDir, "skills-dir", "", "Directory for skill markdown files")
	cmd.Flags().StringVar(&remoteURL, "remote", "", "Git repository URL to sync the corpus from")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch to sync (default: remote HEAD)")

	return cmd
}
