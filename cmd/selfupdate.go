package cmd

import (
	"context"
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const githubRepoSlug = "mirrorctl/mirrorctl"

func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update mirrorctl to the latest version",
		Long: `Checks for the latest release on GitHub and, if a newer version is
available, downloads it and replaces the current binary in place.`,
		RunE: runSelfUpdate,
	}
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	version := rootCmd.Version
	if version == "" || version == "dev" {
		return fmt.Errorf("cannot self-update a development version; install a released build first")
	}

	fmt.Printf("Checking for updates (current version: %s)...\n", version)

	latest, err := selfupdate.UpdateSelf(context.Background(), version, selfupdate.ParseSlug(githubRepoSlug))
	if err != nil {
		return fmt.Errorf("self-update failed: %w", err)
	}

	if latest.LessOrEqual(version) {
		fmt.Printf("Current version %s is the latest.\n", version)
		return nil
	}

	fmt.Printf("Successfully updated to version %s\n", latest.Version())
	return nil
}
