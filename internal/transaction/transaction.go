// Package transaction wraps every config mutation in a
// backup/apply/verify/rollback cycle. A transaction moves through
// Idle → BackedUp → Applied and terminates in Accepted or RolledBack;
// the master record is only ever mutated by the Accepted transition.
package transaction

import (
	"context"
	"fmt"
	"os"
	"sync"

	"mirrorctl/internal/config"
	"mirrorctl/pkg/logging"
)

const subsystem = "transaction"

// State is the transaction state machine position.
type State int

const (
	StateIdle State = iota
	StateBackedUp
	StateApplied
	StateAccepted
	StateRolledBack
)

// String makes State satisfy the fmt.Stringer interface.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateBackedUp:
		return "BackedUp"
	case StateApplied:
		return "Applied"
	case StateAccepted:
		return "Accepted"
	case StateRolledBack:
		return "RolledBack"
	default:
		return "Unknown"
	}
}

// Request describes one transaction.
type Request struct {
	// Assemble produces the candidate output document.
	Assemble func() ([]byte, error)
	// Verify triggers the running process to reload the applied document
	// and reports whether it came up. Nil skips verification.
	Verify func(ctx context.Context) error
	// Confirm is consulted after a successful apply and verify. Returning
	// true makes the change durable (the master record is overwritten with
	// the applied output). Nil or false rolls back.
	Confirm func() (bool, error)
}

// Manager owns the single snapshot slot. The slot is shared, last-writer-
// wins state, so the mutex keeps two transactions from interleaving their
// snapshot and restore operations.
type Manager struct {
	mu sync.Mutex

	master    string
	masterBak string
	active    string
	activeBak string
}

// NewManager returns a manager operating on the given layout's master
// record, active output, and their backup slots.
func NewManager(layout config.Layout) *Manager {
	return &Manager{
		master:    layout.Master,
		masterBak: layout.MasterBackup,
		active:    layout.ActiveConfig,
		activeBak: layout.ActiveBackup,
	}
}

// Run executes one full transaction and returns the terminal state. A nil
// error with StateRolledBack means the caller declined acceptance; a
// non-nil error names the assembly, apply, or verification failure that
// forced the rollback. Failure before any mutation returns StateIdle.
func (m *Manager) Run(ctx context.Context, req Request) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.backup(); err != nil {
		// Nothing has been mutated yet; safe to abort outright.
		return StateIdle, fmt.Errorf("failed to snapshot current state: %w", err)
	}
	logging.Debug(subsystem, "Snapshot taken")

	out, err := req.Assemble()
	if err != nil {
		m.rollback()
		return StateRolledBack, err
	}

	if err := writeFileAtomic(m.active, out); err != nil {
		m.rollback()
		return StateRolledBack, fmt.Errorf("failed to apply output document: %w", err)
	}
	logging.Debug(subsystem, "Applied %d bytes to %s", len(out), m.active)

	if req.Verify != nil {
		if err := req.Verify(ctx); err != nil {
			m.rollback()
			return StateRolledBack, fmt.Errorf("verification failed: %w", err)
		}
	}

	if req.Confirm != nil {
		accepted, err := req.Confirm()
		if err != nil {
			m.rollback()
			return StateRolledBack, err
		}
		if accepted {
			if err := m.accept(); err != nil {
				m.rollback()
				return StateRolledBack, err
			}
			logging.Info(subsystem, "Master record updated")
			return StateAccepted, nil
		}
	}

	m.rollback()
	return StateRolledBack, nil
}

// backup snapshots the master record and the active output into the
// single backup slot, overwriting the previous snapshot.
func (m *Manager) backup() error {
	if err := copyIfExists(m.master, m.masterBak); err != nil {
		return err
	}
	return copyIfExists(m.active, m.activeBak)
}

// rollback restores both snapshot files. Missing snapshots are skipped so
// a first-run rollback cannot itself fail the transaction.
func (m *Manager) rollback() {
	logging.Info(subsystem, "Rolling back")
	if err := copyIfExists(m.masterBak, m.master); err != nil {
		logging.Error(subsystem, err, "Failed to restore master record")
	}
	if err := copyIfExists(m.activeBak, m.active); err != nil {
		logging.Error(subsystem, err, "Failed to restore active output")
	}
}

// accept makes the applied output durable by overwriting the master record
// with its contents.
func (m *Manager) accept() error {
	data, err := os.ReadFile(m.active)
	if err != nil {
		return fmt.Errorf("failed to read applied output: %w", err)
	}
	if err := writeFileAtomic(m.master, data); err != nil {
		return fmt.Errorf("failed to update master record: %w", err)
	}
	return nil
}
