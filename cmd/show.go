package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"mirrorctl/internal/assemble"
)

var (
	showModules []string
	showPages   string
	showCopy    bool
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print an assembled candidate config",
		Long: `Assemble a candidate configuration without touching the active config or
the master record, and print it to stdout. By default the master record's
module list is used; --modules overrides it, --pages adds the pages
section with the given module substituted, and --copy sends the result to
the clipboard instead of stdout.`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}
	cmd.Flags().StringSliceVar(&showModules, "modules", nil, "Comma-separated module list (default: master record's list)")
	cmd.Flags().StringVar(&showPages, "pages", "", "Activate the pages section, substituting the given module")
	cmd.Flags().BoolVar(&showCopy, "copy", false, "Copy the assembled config to the clipboard")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	modules := showModules
	if modules == nil {
		modules, err = app.masterModules()
		if err != nil {
			return err
		}
	}

	out, err := app.assembler.Assemble(assemble.Plan{
		Modules:     modules,
		UsePages:    showPages != "",
		PagesModule: showPages,
	})
	if err != nil {
		return err
	}

	if showCopy {
		if err := clipboard.WriteAll(string(out)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Println("Assembled config copied to clipboard.")
		return nil
	}

	fmt.Print(string(out))
	return nil
}
