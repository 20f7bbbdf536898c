package tool

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// ShellService runs caller-supplied command lines through a shell.
// There is no allow-listing and no timeout of its own; cancellation, if any,
// arrives through the request context.
type ShellService struct {
	shell string
}

// NewShellService returns a ShellService running commands as `shell -c <cmd>`.
// An empty shell falls back to "sh".
func NewShellService(shell string) *ShellService {
	if strings.TrimSpace(shell) == "" {
		shell = "sh"
	}
	return &ShellService{shell: shell}
}

// Run executes cmdline and returns its captured standard output on a zero
// exit status. A command that cannot be launched at all is an invalid_input
// failure; a non-zero exit is an upstream failure carrying the captured
// standard error text.
func (s *ShellService) Run(ctx context.Context, cmdline string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, s.shell, "-c", cmdline)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", Errorf(KindInvalidInput, "invalid invoke cmd %q: %w", cmdline, err)
	}
	if err := cmd.Wait(); err != nil {
		return "", Errorf(KindUpstream, "error executing cmd %q: %s: %w", cmdline, stderr.String(), err)
	}
	return stdout.String(), nil
}
