package domain

import (
	"fmt"
	"time"
)

// CutRequest describes one invocation of the cut workflow.
type CutRequest struct {
	// Level selects which version component increments.
	Level Level

	// RC is the release-candidate sequence number.
	RC int

	// OverrideVersion, when non-empty, replaces the marker file
	// content as the version being released.
	OverrideVersion string

	// Publish enables remote mutation (dist store upload, signed tag
	// push). When false the run is a dry run.
	Publish bool

	// OutputDir is where the artifact and its sidecars are written.
	// Empty means the configured default.
	OutputDir string
}

// ReleasePlan holds every name derived from the marker version for one
// run. It is computed once, before any mutation.
type ReleasePlan struct {
	// Current is the version being released, without suffix.
	Current Version

	// NextSnapshot is the next development version, suffix re-applied.
	NextSnapshot Version

	// RC is the candidate sequence number.
	RC int

	// RCVersion is "<version>-rc<N>", also the staging branch name
	// and the dist store directory name.
	RCVersion string

	// ReleaseTag is "<prefix>-<version>"; it names the artifact.
	ReleaseTag string

	// RCTag is "<prefix>-<rc version>"; it is the tag signed and
	// pushed at publish time.
	RCTag string
}

// StagingBranch is the short-lived branch holding the release-version
// commit the candidate artifact is built from.
func (p ReleasePlan) StagingBranch() string {
	return p.RCVersion
}

// NewReleasePlan derives all names for releasing marker version v at
// the given level and rc number. tagPrefix is typically the project
// name. v must denote a snapshot.
func NewReleasePlan(v Version, level Level, rc int, tagPrefix string) (ReleasePlan, error) {
	if !v.Snapshot {
		return ReleasePlan{}, fmt.Errorf("%w: %s", ErrNotSnapshot, v)
	}
	if rc < 0 {
		return ReleasePlan{}, fmt.Errorf("%w: rc number %d is negative", ErrInvalidInput, rc)
	}

	current := v.Release()
	next := v.Bump(level).AsSnapshot()

	return ReleasePlan{
		Current:      current,
		NextSnapshot: next,
		RC:           rc,
		RCVersion:    current.RC(rc),
		ReleaseTag:   fmt.Sprintf("%s-%s", tagPrefix, current),
		RCTag:        fmt.Sprintf("%s-%s", tagPrefix, current.RC(rc)),
	}, nil
}

// Artifact groups the filesystem outputs of one candidate build.
type Artifact struct {
	// Archive is the absolute path of the source tarball.
	Archive string

	// Signature is the detached armored signature sidecar.
	Signature string

	// Checksums are the digest sidecars (.md5, .sha1, .sha256, .sha512).
	Checksums []string
}

// Files returns the archive and every sidecar, in publish order.
func (a Artifact) Files() []string {
	files := []string{a.Archive, a.Signature}
	return append(files, a.Checksums...)
}

// RollbackAdvice is the manual recovery guidance printed when a run
// fails after repository mutation began.
type RollbackAdvice struct {
	// MainBranch is the designated main line.
	MainBranch string

	// StartCommit is the main-line head before any mutation.
	StartCommit string

	// RCTag is the local candidate tag to delete, if created.
	RCTag string

	// StagingBranch is the local staging branch to delete.
	StagingBranch string

	// Tagged reports whether the local rc tag was actually created.
	Tagged bool
}

// Outcome classifies how a recorded run ended.
type Outcome string

const (
	// OutcomeDryRun means the run completed without remote mutation.
	OutcomeDryRun Outcome = "dry-run"

	// OutcomePublished means the candidate was published.
	OutcomePublished Outcome = "published"

	// OutcomeFailed means the run aborted with an error.
	OutcomeFailed Outcome = "failed"
)

// ReleaseRecord is one row of the local release history.
type ReleaseRecord struct {
	// ID is a generated unique identifier for the run.
	ID string

	// Project is the configured project name.
	Project string

	// Version is the release version that was cut.
	Version string

	// NextSnapshot is the development version left on the main line.
	NextSnapshot string

	// RC is the candidate sequence number.
	RC int

	// RCTag is the derived candidate tag name.
	RCTag string

	// Commit is the staging branch head the artifact was built from.
	// Empty if the run failed before the staging commit.
	Commit string

	// Published reports whether remote mutation was performed.
	Published bool

	// Outcome classifies the run result.
	Outcome Outcome

	// Failure holds the error message for failed runs.
	Failure string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run ended, success or failure.
	FinishedAt time.Time
}

// ReleaseResult is returned by a successful cut.
type ReleaseResult struct {
	Plan ReleasePlan

	// StartCommit is the main-line head before mutation began.
	StartCommit string

	// StagingHead is the commit the artifact was built from.
	StagingHead string

	// Artifact is the built tarball and its sidecars.
	Artifact Artifact

	// Published reports whether remote mutation was performed.
	Published bool

	// Notice is the rendered vote-notice message.
	Notice string
}
