// Package gitcli implements the Git port by shelling out to the git
// binary. Every operation runs synchronously in the repository root
// and treats a non-zero exit as fatal for the calling workflow.
package gitcli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
	"github.com/meridian-labs/relcut-cli/internal/core/ports/driven"
	"github.com/meridian-labs/relcut-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Git = (*Client)(nil)

// Client runs git commands against a single working copy.
type Client struct {
	repoRoot string
}

// NewClient creates a git client rooted at the given working copy.
func NewClient(repoRoot string) *Client {
	return &Client{repoRoot: repoRoot}
}

// run executes a git command in the repo directory and returns its
// combined output. Errors carry the output so failures are actionable.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	logger.Debug("git %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.repoRoot

	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%w: git %s: %v: %s",
			domain.ErrToolFailed, strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}

// Fetch refreshes refs from the named remote.
func (c *Client) Fetch(ctx context.Context, remote string) error {
	_, err := c.run(ctx, "fetch", remote)
	return err
}

// IsClean reports whether the working tree has no uncommitted changes.
func (c *Client) IsClean(ctx context.Context) (bool, error) {
	output, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(output) == "", nil
}

// CurrentBranch returns the checked-out branch name.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// Head returns the full commit hash of HEAD.
func (c *Client) Head(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// TagExists reports whether a local tag with the given name exists.
func (c *Client) TagExists(ctx context.Context, tag string) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "show-ref", "--verify", "--quiet", "refs/tags/"+tag)
	cmd.Dir = c.repoRoot

	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*exec.ExitError); ok {
		// show-ref exits 1 when the ref is missing.
		return false, nil
	}
	return false, fmt.Errorf("%w: git show-ref: %v", domain.ErrToolFailed, err)
}

// Log returns one-line subjects for commits reachable from HEAD but
// not from ref.
func (c *Client) Log(ctx context.Context, ref string) ([]string, error) {
	args := []string{"log", "--no-merges", "--pretty=format:%s"}
	if ref != "" {
		args = append(args, ref+"..HEAD")
	}

	output, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// LatestTag returns the most recent reachable tag, or empty string if
// the repository has none.
func (c *Client) LatestTag(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "describe", "--tags", "--abbrev=0")
	cmd.Dir = c.repoRoot

	output, err := cmd.CombinedOutput()
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// No tags yet; the changelog covers the full history.
			return "", nil
		}
		return "", fmt.Errorf("%w: git describe: %v", domain.ErrToolFailed, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Add stages the given paths.
func (c *Client) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	_, err := c.run(ctx, args...)
	return err
}

// Commit records staged changes with the given message.
func (c *Client) Commit(ctx context.Context, message string) error {
	_, err := c.run(ctx, "commit", "-m", message)
	return err
}

// CreateBranch creates the named branch at HEAD and switches to it.
func (c *Client) CreateBranch(ctx context.Context, name string) error {
	_, err := c.run(ctx, "checkout", "-b", name)
	return err
}

// Checkout switches to an existing branch.
func (c *Client) Checkout(ctx context.Context, branch string) error {
	_, err := c.run(ctx, "checkout", branch)
	return err
}

// Archive writes a gzip-compressed tarball of the tree at ref to
// outPath, with every entry under prefix/.
func (c *Client) Archive(ctx context.Context, ref, prefix, outPath string) error {
	_, err := c.run(ctx, "archive",
		"--format=tar.gz",
		"--prefix="+prefix+"/",
		"--output="+outPath,
		ref)
	return err
}

// SignedTag creates a cryptographically signed annotated tag at ref.
func (c *Client) SignedTag(ctx context.Context, tag, ref, message string) error {
	_, err := c.run(ctx, "tag", "-s", tag, "-m", message, ref)
	return err
}

// Push pushes the given refspec to the named remote.
func (c *Client) Push(ctx context.Context, remote, refspec string) error {
	_, err := c.run(ctx, "push", remote, refspec)
	return err
}
