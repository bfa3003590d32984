package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mirrorctl/internal/assemble"
	"mirrorctl/internal/picker"
	"mirrorctl/internal/transaction"
)

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test [module]",
		Short: "Test a module against the running mirror",
		Long: `Test a module in stages, each one a full backup/apply/verify/rollback
transaction against the running mirror:

  1. the module alone
  2. optionally side by side with a baseline module on two pages
  3. optionally the full master set with the module added

Only the last stage offers to update the master record, and only after the
mirror came back up with the candidate configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTest,
	}
}

func runTest(cmd *cobra.Command, args []string) error {
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

	var module string
	if len(args) == 1 {
		module = args[0]
	} else {
		module, err = picker.Choose("Select module to test", installed)
		if err != nil {
			return err
		}
	}

	masterMods, err := app.masterModules()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	// Stage 1: the module alone.
	fmt.Println("=== Testing module alone ===")
	if _, err := app.txn.Run(ctx, transaction.Request{
		Assemble: app.assembleFunc(assemble.Plan{Modules: []string{module}}),
		Verify:   app.verifier.Verify,
	}); err != nil {
		return err
	}

	// Stage 2: side by side on two pages, when the master uses pages.
	if contains(masterMods, app.cfg.Assembly.PagesModule) {
		withPages, err := confirm("Test with 2 pages?")
		if err != nil {
			return err
		}
		if withPages {
			fmt.Println("=== Testing module with pages ===")
			if _, err := app.txn.Run(ctx, transaction.Request{
				Assemble: app.assembleFunc(assemble.Plan{
					Modules:     []string{app.cfg.Assembly.BaselineModule, module},
					UsePages:    true,
					PagesModule: module,
				}),
				Verify: app.verifier.Verify,
			}); err != nil {
				return err
			}
		}
	}

	// Stage 3: the full master set with the candidate added.
	full, err := confirm("Test with full master?")
	if err != nil {
		return err
	}
	if !full {
		fmt.Println("Testing cancelled.")
		return nil
	}

	fmt.Println("=== Testing with full master config ===")
	finalModules := append([]string{}, masterMods...)
	if !contains(finalModules, module) {
		fmt.Printf("Adding %s to master config...\n", module)
		finalModules = append(finalModules, module)
	} else {
		fmt.Printf("%s already in master config\n", module)
	}

	// The pages module, if used, is already part of the master set; the
	// pages template is only for the side-by-side stage.
	state, err := app.txn.Run(ctx, transaction.Request{
		Assemble: app.assembleFunc(assemble.Plan{Modules: finalModules}),
		Verify:   app.verifier.Verify,
		Confirm:  func() (bool, error) { return confirm("Update Master?") },
	})
	if err != nil {
		return err
	}
	if state == transaction.StateAccepted {
		fmt.Println("Master updated.")
	} else {
		fmt.Println("Change discarded, previous configuration restored.")
	}
	return nil
}
