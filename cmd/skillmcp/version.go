package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"skillmcp/internal/mcp"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Println(mcp.Version)
				return
			}
			fmt.Printf("skillmcp %s (%s, %s/%s)\n", mcp.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")

	return cmd
}
