// Package gpg implements the Signer port by invoking the gpg binary.
// Key management, passphrase entry and agent interaction are left
// entirely to gpg; relcut only drives the detached-signature call.
package gpg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
	"github.com/meridian-labs/relcut-cli/internal/core/ports/driven"
	"github.com/meridian-labs/relcut-cli/internal/logger"
)

// Ensure Signer implements the interface.
var _ driven.Signer = (*Signer)(nil)

// runFunc executes an external command and returns its combined output.
// Swappable for tests.
type runFunc func(ctx context.Context, name string, args ...string) (string, error)

// Signer produces detached armored signatures with gpg.
type Signer struct {
	run runFunc
}

// NewSigner creates a gpg-backed signer.
func NewSigner() *Signer {
	return &Signer{run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%w: %s %s: %v: %s",
			domain.ErrToolFailed, name, strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}

// Sign writes a detached armored signature for the file at path and
// returns the signature path. An existing signature is overwritten so
// a re-run after a failed publish does not trip over leftovers.
func (s *Signer) Sign(ctx context.Context, path, keyID string) (string, error) {
	sigPath := path + ".asc"

	args := []string{"--armor", "--detach-sign", "--yes", "--output", sigPath}
	if keyID != "" {
		args = append(args, "--local-user", keyID)
	}
	args = append(args, path)

	logger.Debug("gpg %s", strings.Join(args, " "))
	if _, err := s.run(ctx, "gpg", args...); err != nil {
		return "", err
	}
	return sigPath, nil
}
