package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var populateForce string

func newPopulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Create fragments for installed modules",
		Long: `Create a fragment for every installed module that does not have one,
trying the master record, the module's README, and a shipped sample file
in that order. Existing fragments are never touched, so manual edits
survive; use --force to rebuild a single module's fragment from scratch.`,
		Args: cobra.NoArgs,
		RunE: runPopulate,
	}
	cmd.Flags().StringVar(&populateForce, "force", "", "Rebuild the fragment for the given module, overwriting it")
	return cmd
}

func runPopulate(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if populateForce != "" {
		if err := app.populator.Refresh(populateForce); err != nil {
			return err
		}
		fmt.Printf("Fragment for %s rebuilt.\n", populateForce)
		return nil
	}

	installed, err := app.installedModules()
	if err != nil {
		return err
	}
	return app.populator.Run(installed)
}
