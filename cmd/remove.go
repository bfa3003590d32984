package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mirrorctl/internal/assemble"
	"mirrorctl/internal/picker"
	"mirrorctl/internal/transaction"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [module]",
		Short: "Remove a module from the configuration",
		Long: `Rebuild the configuration from the master record's module list with the
given module removed, verify the rebuilt config against the running
mirror, and offer to make the removal durable. The module's fragment is
kept so it can be re-added later.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	installed, err := app.installedModules()
	if err != nil {
		return err
	}
	if err := app.populator.Run(installed); err != nil {
		return err
	}

	masterMods, err := app.masterModules()
	if err != nil {
		return err
	}

	var module string
	if len(args) == 1 {
		module = args[0]
	} else {
		module, err = picker.Choose("Select module to remove", masterMods)
		if err != nil {
			return err
		}
	}
	if !contains(masterMods, module) {
		return fmt.Errorf("module %s is not declared in the master record", module)
	}

	proceed, err := confirm(fmt.Sprintf("Remove %s from config?", module))
	if err != nil {
		return err
	}
	if !proceed {
		return nil
	}

	var remaining []string
	for _, m := range masterMods {
		if m != module {
			remaining = append(remaining, m)
		}
	}

	state, err := app.txn.Run(cmd.Context(), transaction.Request{
		Assemble: app.assembleFunc(assemble.Plan{Modules: remaining}),
		Verify:   app.verifier.Verify,
		Confirm:  func() (bool, error) { return confirm("Update Master?") },
	})
	if err != nil {
		return err
	}
	if state == transaction.StateAccepted {
		fmt.Println("Master updated.")
	} else {
		fmt.Println("Removal discarded, previous configuration restored.")
	}
	return nil
}
