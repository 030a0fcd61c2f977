package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillmcp/internal/logging"
	"skillmcp/internal/repository"
)

func syncCmd() *cobra.Command {
	var (
		token       string
		deleteToken bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync the skill corpus from its git remote",
		Long: `Clone or update the configured git repository into the skills
directory. Private repositories authenticate with a Personal Access
Token stored in the OS credential store:

  skillmcp sync --token ghp_xxx   # store the token, then sync
  skillmcp sync --delete-token    # remove the stored token`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewAppLogger()

			credMgr := repository.NewCredentialManager()
			if deleteToken {
				if err := credMgr.DeleteToken(); err != nil {
					return err
				}
				fmt.Println("Stored token removed.")
				return nil
			}
			if token != "" {
				if err := credMgr.StoreToken(token); err != nil {
					return err
				}
				fmt.Println("Token stored in the OS credential store.")
			}

			cfg, err := loadConfig("", logger)
			if err != nil {
				return err
			}
			if cfg.RemoteURL == "" {
				return fmt.Errorf("no remote configured - run 'skillmcp init --remote <url>'")
			}

			source := repository.NewGitSource(cfg.RemoteURL, cfg.Branch, cfg.SkillsDir)
			path, err := source.Prepare(logger)
			if err != nil {
				return err
			}

			fmt.Printf("Corpus synced from %s\n", source.Describe())
			fmt.Printf("Skills directory: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Store a Personal Access Token before syncing")
	cmd.Flags().BoolVar(&deleteToken, "delete-token", false, "Remove the stored Personal Access Token")

	return cmd
}
