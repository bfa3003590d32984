package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"mirrorctl/internal/assemble"
	"mirrorctl/internal/config"
	"mirrorctl/internal/discover"
	"mirrorctl/internal/extract"
	"mirrorctl/internal/fragment"
	"mirrorctl/internal/populate"
	"mirrorctl/internal/process"
	"mirrorctl/internal/transaction"
)

// app wires the components every command needs. Construction fails fast
// when the MagicMirror installation cannot be found; nothing has been
// mutated at that point.
type app struct {
	cfg       config.ManagerConfig
	layout    config.Layout
	store     *fragment.Store
	populator *populate.Populator
	assembler *assemble.Assembler
	txn       *transaction.Manager
	verifier  process.Verifier
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	layout, err := config.ResolveLayout()
	if err != nil {
		return nil, err
	}
	if err := layout.Init(); err != nil {
		return nil, err
	}

	store := fragment.NewStore(layout.TemplatesDir)

	return &app{
		cfg:    cfg,
		layout: layout,
		store:  store,
		populator: &populate.Populator{
			Store:      store,
			MasterPath: layout.Master,
			ModulesDir: layout.ModulesDir,
		},
		assembler: &assemble.Assembler{
			Store:       store,
			HeadPath:    layout.HeadPath,
			TailPath:    layout.TailPath,
			PagesPath:   layout.PagesPath,
			Indent:      cfg.Assembly.Indent,
			Placeholder: cfg.Assembly.Placeholder,
		},
		txn:      transaction.NewManager(layout),
		verifier: process.NewPM2(cfg.Process),
	}, nil
}

// installedModules lists the modules present in the modules directory.
func (a *app) installedModules() ([]string, error) {
	return discover.Modules(a.layout.ModulesDir)
}

// masterModules lists the modules declared in the master record, in
// document order.
func (a *app) masterModules() ([]string, error) {
	data, err := os.ReadFile(a.layout.Master)
	if err != nil {
		return nil, fmt.Errorf("failed to read master record %s: %w", a.layout.Master, err)
	}
	return extract.DeclaredModules(string(data)), nil
}

// assembleFunc adapts a plan into the transaction manager's callback shape.
func (a *app) assembleFunc(plan assemble.Plan) func() ([]byte, error) {
	return func() ([]byte, error) {
		return a.assembler.Assemble(plan)
	}
}

// confirm asks a yes/no question on stdin; only an explicit "y" is a yes.
func confirm(prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}

// orphanedFragments returns the persisted fragments that no longer have
// a matching installed module, preserving store order.
func orphanedFragments(fragments, installed []string) []string {
	var orphans []string
	for _, f := range fragments {
		if !contains(installed, f) {
			orphans = append(orphans, f)
		}
	}
	return orphans
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
