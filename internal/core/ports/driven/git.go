package driven

import "context"

// Git defines the version-control operations the release workflow
// needs. Implementations shell out to the git binary; every method is
// synchronous and returns an explicit error instead of relying on
// implicit fail-fast chaining.
type Git interface {
	// Fetch refreshes refs from the named remote.
	Fetch(ctx context.Context, remote string) error

	// IsClean reports whether the working tree has no uncommitted
	// changes (staged, modified or untracked).
	IsClean(ctx context.Context) (bool, error)

	// CurrentBranch returns the checked-out branch name.
	CurrentBranch(ctx context.Context) (string, error)

	// Head returns the full commit hash of HEAD.
	Head(ctx context.Context) (string, error)

	// TagExists reports whether a local tag with the given name exists.
	TagExists(ctx context.Context, tag string) (bool, error)

	// Log returns one-line subjects for commits reachable from HEAD
	// but not from ref. An empty ref means the full history.
	Log(ctx context.Context, ref string) ([]string, error)

	// LatestTag returns the most recent reachable tag, or empty string
	// if the repository has none.
	LatestTag(ctx context.Context) (string, error)

	// Add stages the given paths.
	Add(ctx context.Context, paths ...string) error

	// Commit records staged changes with the given message.
	Commit(ctx context.Context, message string) error

	// CreateBranch creates the named branch at HEAD and switches to it.
	CreateBranch(ctx context.Context, name string) error

	// Checkout switches to an existing branch.
	Checkout(ctx context.Context, branch string) error

	// Archive writes a gzip-compressed tarball of the tree at ref to
	// outPath, with every entry under prefix/.
	Archive(ctx context.Context, ref, prefix, outPath string) error

	// SignedTag creates a cryptographically signed annotated tag at
	// ref with the given message.
	SignedTag(ctx context.Context, tag, ref, message string) error

	// Push pushes the given refspec to the named remote.
	Push(ctx context.Context, remote, refspec string) error
}
