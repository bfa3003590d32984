package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed modules",
		Long: `List the modules installed under the modules directory, marking for
each one whether it is declared in the master record and whether a
fragment has been persisted for it. Fragments left behind by removed
modules are reported separately.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	installed, err := app.installedModules()
	if err != nil {
		return err
	}
	masterMods, err := app.masterModules()
	if err != nil {
		return err
	}

	fragments, err := app.store.List()
	if err != nil {
		return err
	}

	if len(installed) == 0 {
		fmt.Println("No modules installed.")
	} else {
		fmt.Printf("%-32s %-8s %-8s\n", "MODULE", "MASTER", "FRAGMENT")
		for _, m := range installed {
			inMaster := "-"
			if contains(masterMods, m) {
				inMaster = "yes"
			}
			hasFragment := "-"
			if contains(fragments, m) {
				hasFragment = "yes"
			}
			fmt.Printf("%-32s %-8s %-8s\n", m, inMaster, hasFragment)
		}
	}

	if orphans := orphanedFragments(fragments, installed); len(orphans) > 0 {
		fmt.Printf("\nFragments without an installed module: %s\n", strings.Join(orphans, ", "))
	}
	return nil
}
