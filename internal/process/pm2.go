// Package process integrates with the pm2 process manager: it resolves
// which pm2 process runs the mirror and restarts it to verify an applied
// config. Resolution is a best-effort heuristic; both pieces are behind
// interfaces so tests and alternative process managers can replace them.
package process

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"mirrorctl/internal/config"
	"mirrorctl/pkg/logging"
)

const subsystem = "process"

// Resolver maps the running environment to a pm2 process name.
type Resolver interface {
	Resolve(ctx context.Context) string
}

// Verifier triggers the running process to reload the applied config and
// reports whether the reload was triggered successfully.
type Verifier interface {
	Verify(ctx context.Context) error
}

// CommandRunner abstracts external command execution for tests.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if err := cmd.Run(); err != nil {
		// Include the command's stderr in the error for better diagnostics.
		return stdoutBuf.Bytes(), fmt.Errorf("failed to execute '%s %s': %w. Stderr: %s",
			name, strings.Join(args, " "), err, stderrBuf.String())
	}
	return stdoutBuf.Bytes(), nil
}

// pm2Process is the subset of `pm2 jlist` output we inspect.
type pm2Process struct {
	Name   string `json:"name"`
	PM2Env struct {
		ExecPath string `json:"pm_exec_path"`
	} `json:"pm2_env"`
}

// HeuristicResolver detects the pm2 process name for the mirror. It
// queries `pm2 jlist` and matches either the execution path against the
// configured hint or the process name against the known-name set.
// Detection never fails hard: any miss falls back to the configured
// default.
type HeuristicResolver struct {
	Runner   CommandRunner
	Settings config.ProcessSettings
}

// Resolve implements the Resolver interface.
func (r *HeuristicResolver) Resolve(ctx context.Context) string {
	out, err := r.Runner.Run(ctx, "pm2", "jlist")
	if err != nil {
		logging.Warn(subsystem, "Could not query pm2, using '%s'", r.Settings.Fallback)
		return r.Settings.Fallback
	}

	var procs []pm2Process
	if err := json.Unmarshal(out, &procs); err != nil {
		logging.Warn(subsystem, "Could not parse pm2 process list, using '%s'", r.Settings.Fallback)
		return r.Settings.Fallback
	}

	hint := strings.ToLower(r.Settings.PathHint)
	for _, proc := range procs {
		if hint != "" && strings.Contains(strings.ToLower(proc.PM2Env.ExecPath), hint) {
			logging.Info(subsystem, "Detected pm2 process: %s", proc.Name)
			return proc.Name
		}
		for _, known := range r.Settings.KnownNames {
			if strings.EqualFold(proc.Name, known) {
				logging.Info(subsystem, "Detected pm2 process: %s", proc.Name)
				return proc.Name
			}
		}
	}

	logging.Warn(subsystem, "Could not detect pm2 process, using '%s'", r.Settings.Fallback)
	return r.Settings.Fallback
}

// PM2 restarts the mirror process via the pm2 CLI. The Resolver maps the
// environment to a process name and can be swapped out without touching
// the verification logic.
type PM2 struct {
	Runner   CommandRunner
	Resolver Resolver
	Settings config.ProcessSettings
}

// NewPM2 returns a PM2 integration using the real pm2 binary and the
// jlist detection heuristic.
func NewPM2(settings config.ProcessSettings) *PM2 {
	runner := execRunner{}
	return &PM2{
		Runner:   runner,
		Resolver: &HeuristicResolver{Runner: runner, Settings: settings},
		Settings: settings,
	}
}

// Verify restarts the resolved process under the configured timeout. A
// timeout counts as a verification failure, which makes the transaction
// manager roll back rather than stall indefinitely.
func (p *PM2) Verify(ctx context.Context) error {
	if p.Settings.VerifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Settings.VerifyTimeout)
		defer cancel()
	}

	name := p.Resolver.Resolve(ctx)
	logging.Info(subsystem, "Restarting %s", name)

	if _, err := p.Runner.Run(ctx, "pm2", "restart", name); err != nil {
		return fmt.Errorf("failed to restart %s: %w", name, err)
	}
	return nil
}
