// Package svncli implements the DistStore port against an SVN
// distribution repository, the store where candidate artifacts are
// staged for the release vote. svn is driven as an external command;
// only a shallow, metadata-only checkout of the target directory is
// ever created locally.
package svncli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
	"github.com/meridian-labs/relcut-cli/internal/core/ports/driven"
	"github.com/meridian-labs/relcut-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.DistStore = (*Store)(nil)

// runFunc executes an external command in dir and returns its combined
// output. Swappable for tests.
type runFunc func(ctx context.Context, dir, name string, args ...string) (string, error)

// Store publishes artifacts to an SVN repository.
type Store struct {
	baseURL string
	run     runFunc
}

// NewStore creates a dist store rooted at the given repository URL.
func NewStore(baseURL string) *Store {
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		run:     runCommand,
	}
}

func runCommand(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%w: %s %s: %v: %s",
			domain.ErrToolFailed, name, strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}

// Publish creates directory name under the store root, copies the
// given local files into a shallow checkout and commits them.
func (s *Store) Publish(ctx context.Context, name string, files []string, message string) error {
	target := s.baseURL + "/" + name

	logger.Info("creating %s", target)
	if _, err := s.run(ctx, "", "svn", "mkdir", "--parents", "-m", message, target); err != nil {
		return err
	}

	workdir, err := os.MkdirTemp("", "relcut-dist-")
	if err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(workdir)

	checkout := filepath.Join(workdir, name)
	if _, err := s.run(ctx, "", "svn", "checkout", "--depth", "empty", target, checkout); err != nil {
		return err
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		base := filepath.Base(f)
		if err := copyFile(f, filepath.Join(checkout, base)); err != nil {
			return err
		}
		names = append(names, base)
	}

	addArgs := append([]string{"add"}, names...)
	if _, err := s.run(ctx, checkout, "svn", addArgs...); err != nil {
		return err
	}

	if _, err := s.run(ctx, checkout, "svn", "commit", "-m", message); err != nil {
		return err
	}

	logger.Info("published %d files to %s", len(files), target)
	return nil
}

// copyFile copies src to dst, truncating any existing file.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
