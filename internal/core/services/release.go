package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
	"github.com/meridian-labs/relcut-cli/internal/core/ports/driven"
	"github.com/meridian-labs/relcut-cli/internal/core/ports/driving"
	"github.com/meridian-labs/relcut-cli/internal/logger"
)

// Ensure ReleaseService implements the interface.
var _ driving.ReleaseOrchestrator = (*ReleaseService)(nil)

// ReleaseService orchestrates the candidate-cutting workflow.
// Execution is strictly sequential: every external operation blocks
// and the first failure aborts the run.
type ReleaseService struct {
	cfg      Settings
	git      driven.Git
	signer   driven.Signer
	checksum driven.Checksummer
	dist     driven.DistStore
	history  driven.HistoryStore

	// now is swappable for tests.
	now func() time.Time
}

// NewReleaseService creates a release orchestrator. dist may be nil
// when only dry runs are needed; history may be nil to disable run
// recording.
func NewReleaseService(
	cfg Settings,
	git driven.Git,
	signer driven.Signer,
	checksum driven.Checksummer,
	dist driven.DistStore,
	history driven.HistoryStore,
) *ReleaseService {
	return &ReleaseService{
		cfg:      cfg,
		git:      git,
		signer:   signer,
		checksum: checksum,
		dist:     dist,
		history:  history,
		now:      time.Now,
	}
}

// Cut executes one release-candidate run.
func (s *ReleaseService) Cut(ctx context.Context, req domain.CutRequest) (result *domain.ReleaseResult, err error) {
	if s.git == nil || s.signer == nil || s.checksum == nil {
		return nil, domain.ErrNotImplemented
	}
	if req.Publish && s.dist == nil {
		return nil, fmt.Errorf("%w: distribution store not configured", domain.ErrInvalidInput)
	}
	if req.Publish {
		if verr := s.cfg.ValidateForPublish(); verr != nil {
			return nil, verr
		}
	}

	rec := domain.ReleaseRecord{
		ID:        uuid.NewString(),
		Project:   s.cfg.ProjectName,
		RC:        req.RC,
		StartedAt: s.now(),
	}
	defer func() {
		s.record(ctx, rec, result, err)
	}()

	logger.Section("preflight")
	marker, err := s.preflight(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := s.plan(ctx, marker, req)
	if err != nil {
		return nil, err
	}
	rec.Version = plan.Current.String()
	rec.NextSnapshot = plan.NextSnapshot.String()
	rec.RCTag = plan.RCTag
	logger.Info("releasing %s as %s (next snapshot %s)", plan.Current, plan.RCVersion, plan.NextSnapshot)

	startCommit, err := s.git.Head(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading main line head: %w", err)
	}

	// Everything below mutates the clone. Arm the rollback advice.
	advice := domain.RollbackAdvice{
		MainBranch:    s.cfg.MainBranch,
		StartCommit:   startCommit,
		RCTag:         plan.RCTag,
		StagingBranch: plan.StagingBranch(),
	}
	abort := func(cause error) (*domain.ReleaseResult, error) {
		return nil, &domain.MutationError{Advice: advice, Err: cause}
	}

	logger.Section("repository mutation")
	stagingHead, err := s.mutate(ctx, plan)
	if err != nil {
		return abort(err)
	}
	rec.Commit = stagingHead

	logger.Section("artifact build")
	artifact, err := s.buildArtifact(ctx, plan, stagingHead, req.OutputDir)
	if err != nil {
		return abort(err)
	}

	if req.Publish {
		logger.Section("publish")
		if perr := s.publish(ctx, plan, stagingHead, artifact); perr != nil {
			advice.Tagged = true
			return abort(perr)
		}
	}

	// Leave the operator back on the main line in every mode.
	if cerr := s.git.Checkout(ctx, s.cfg.MainBranch); cerr != nil {
		return abort(fmt.Errorf("returning to %s: %w", s.cfg.MainBranch, cerr))
	}

	notice, err := s.notice(plan, stagingHead, artifact)
	if err != nil {
		return abort(err)
	}

	rec.Published = req.Publish
	result = &domain.ReleaseResult{
		Plan:        plan,
		StartCommit: startCommit,
		StagingHead: stagingHead,
		Artifact:    artifact,
		Published:   req.Publish,
		Notice:      notice,
	}
	return result, nil
}

// Plan runs the preflight checks and computes the release plan without
// mutating anything. The cut command uses it to preview a run before
// asking for confirmation.
func (s *ReleaseService) Plan(ctx context.Context, req domain.CutRequest) (domain.ReleasePlan, error) {
	if s.git == nil {
		return domain.ReleasePlan{}, domain.ErrNotImplemented
	}

	marker, err := s.preflight(ctx)
	if err != nil {
		return domain.ReleasePlan{}, err
	}
	return s.plan(ctx, marker, req)
}

// preflight checks the clone is in a releasable state and returns the
// marker file content. No step here mutates anything.
func (s *ReleaseService) preflight(ctx context.Context) (string, error) {
	if err := s.git.Fetch(ctx, s.cfg.Remote); err != nil {
		return "", fmt.Errorf("%w: fetching %s: %v", domain.ErrPrecondition, s.cfg.Remote, err)
	}

	clean, err := s.git.IsClean(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: checking working tree: %v", domain.ErrPrecondition, err)
	}
	if !clean {
		return "", fmt.Errorf("%w: working tree has uncommitted changes", domain.ErrPrecondition)
	}

	branch, err := s.git.CurrentBranch(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: reading current branch: %v", domain.ErrPrecondition, err)
	}
	if branch != s.cfg.MainBranch {
		return "", fmt.Errorf("%w: on branch %q, releases are cut from %q", domain.ErrPrecondition, branch, s.cfg.MainBranch)
	}

	markerPath := filepath.Join(s.cfg.RepoRoot, s.cfg.MarkerFile)
	raw, err := os.ReadFile(markerPath)
	if err != nil {
		return "", fmt.Errorf("%w: reading marker file %s: %v", domain.ErrPrecondition, s.cfg.MarkerFile, err)
	}

	marker := strings.TrimSpace(string(raw))
	if !strings.Contains(strings.ToLower(marker), strings.ToLower(domain.SnapshotSuffix)) {
		return "", fmt.Errorf("%w: marker file holds %q", domain.ErrNotSnapshot, marker)
	}

	return marker, nil
}

// plan computes every derived name and verifies neither tag exists.
func (s *ReleaseService) plan(ctx context.Context, marker string, req domain.CutRequest) (domain.ReleasePlan, error) {
	source := marker
	if req.OverrideVersion != "" {
		source = req.OverrideVersion
	}

	version, err := domain.ParseVersion(source)
	if err != nil {
		return domain.ReleasePlan{}, err
	}

	plan, err := domain.NewReleasePlan(version, req.Level, req.RC, s.cfg.TagPrefix)
	if err != nil {
		return domain.ReleasePlan{}, err
	}

	for _, tag := range []string{plan.ReleaseTag, plan.RCTag} {
		exists, terr := s.git.TagExists(ctx, tag)
		if terr != nil {
			return domain.ReleasePlan{}, fmt.Errorf("checking tag %s: %w", tag, terr)
		}
		if exists {
			return domain.ReleasePlan{}, fmt.Errorf("%w: %s", domain.ErrTagExists, tag)
		}
	}

	return plan, nil
}

// mutate performs the four commit steps and returns the staging head.
// The snapshot bump lands on the main line before the artifact exists;
// that ordering is part of the workflow contract.
func (s *ReleaseService) mutate(ctx context.Context, plan domain.ReleasePlan) (string, error) {
	if err := s.writeChangelog(ctx, plan); err != nil {
		return "", err
	}
	if err := s.git.Add(ctx, s.cfg.ChangelogFile); err != nil {
		return "", fmt.Errorf("staging changelog: %w", err)
	}
	if err := s.git.Commit(ctx, fmt.Sprintf("Update %s for %s release", s.cfg.ChangelogFile, plan.Current)); err != nil {
		return "", fmt.Errorf("committing changelog: %w", err)
	}

	if err := s.writeMarker(plan.NextSnapshot); err != nil {
		return "", err
	}
	if err := s.git.Add(ctx, s.cfg.MarkerFile); err != nil {
		return "", fmt.Errorf("staging marker file: %w", err)
	}
	if err := s.git.Commit(ctx, fmt.Sprintf("Bump development version to %s", plan.NextSnapshot)); err != nil {
		return "", fmt.Errorf("committing snapshot bump: %w", err)
	}
	logger.Info("main line advanced to %s", plan.NextSnapshot)

	if err := s.git.CreateBranch(ctx, plan.StagingBranch()); err != nil {
		return "", fmt.Errorf("creating staging branch %s: %w", plan.StagingBranch(), err)
	}

	if err := s.writeMarker(plan.Current); err != nil {
		return "", err
	}
	if err := s.git.Add(ctx, s.cfg.MarkerFile); err != nil {
		return "", fmt.Errorf("staging marker file: %w", err)
	}
	if err := s.git.Commit(ctx, fmt.Sprintf("Set version to %s for %s", plan.Current, plan.RCTag)); err != nil {
		return "", fmt.Errorf("committing release version: %w", err)
	}

	head, err := s.git.Head(ctx)
	if err != nil {
		return "", fmt.Errorf("reading staging head: %w", err)
	}
	logger.Info("staging branch %s at %s", plan.StagingBranch(), head)
	return head, nil
}

// writeChangelog generates the changelog section covering history
// since the previous release tag and prepends it to the changelog file.
func (s *ReleaseService) writeChangelog(ctx context.Context, plan domain.ReleasePlan) error {
	lastTag, err := s.git.LatestTag(ctx)
	if err != nil {
		return fmt.Errorf("finding previous tag: %w", err)
	}

	subjects, err := s.git.Log(ctx, lastTag)
	if err != nil {
		return fmt.Errorf("collecting changelog entries: %w", err)
	}

	section := BuildChangelog(plan.Current, s.now(), subjects)

	path := filepath.Join(s.cfg.RepoRoot, s.cfg.ChangelogFile)
	previous, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", s.cfg.ChangelogFile, err)
	}

	content := section
	if len(previous) > 0 {
		content = section + "\n" + string(previous)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", s.cfg.ChangelogFile, err)
	}
	return nil
}

// writeMarker writes a version string to the marker file with a
// trailing newline.
func (s *ReleaseService) writeMarker(v domain.Version) error {
	path := filepath.Join(s.cfg.RepoRoot, s.cfg.MarkerFile)
	if err := os.WriteFile(path, []byte(v.String()+"\n"), 0644); err != nil {
		return fmt.Errorf("writing marker file: %w", err)
	}
	return nil
}

// buildArtifact archives the staging head, signs the tarball and
// writes checksum sidecars. All paths are absolute; nothing changes
// the process working directory.
func (s *ReleaseService) buildArtifact(ctx context.Context, plan domain.ReleasePlan, stagingHead, outputDir string) (domain.Artifact, error) {
	dir := outputDir
	if dir == "" {
		dir = s.cfg.OutputDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.cfg.RepoRoot, dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.Artifact{}, fmt.Errorf("creating output directory: %w", err)
	}

	archive := filepath.Join(dir, plan.ReleaseTag+".tar.gz")
	if err := s.git.Archive(ctx, stagingHead, plan.ReleaseTag, archive); err != nil {
		return domain.Artifact{}, fmt.Errorf("building archive: %w", err)
	}
	logger.Info("archive written to %s", archive)

	signature, err := s.signer.Sign(ctx, archive, s.cfg.SigningKey)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("signing archive: %w", err)
	}

	checksums, err := s.checksum.WriteSidecars(archive)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("writing checksums: %w", err)
	}

	return domain.Artifact{
		Archive:   archive,
		Signature: signature,
		Checksums: checksums,
	}, nil
}

// publish uploads the artifact to the distribution store, then signs
// and pushes the candidate tag. The main line is pushed to a uniquely
// named ref so a concurrent push to the shared branch cannot race us.
func (s *ReleaseService) publish(ctx context.Context, plan domain.ReleasePlan, stagingHead string, artifact domain.Artifact) error {
	message := fmt.Sprintf("Adding %s candidate artifacts", plan.RCTag)
	if err := s.dist.Publish(ctx, plan.RCVersion, artifact.Files(), message); err != nil {
		return fmt.Errorf("publishing to distribution store: %w", err)
	}

	tagMessage := fmt.Sprintf("Tagging %s candidate %s", s.cfg.ProjectName, plan.RCVersion)
	if err := s.git.SignedTag(ctx, plan.RCTag, stagingHead, tagMessage); err != nil {
		return fmt.Errorf("creating signed tag %s: %w", plan.RCTag, err)
	}
	if err := s.git.Push(ctx, s.cfg.Remote, plan.RCTag); err != nil {
		return fmt.Errorf("pushing tag %s: %w", plan.RCTag, err)
	}

	if err := s.git.Checkout(ctx, s.cfg.MainBranch); err != nil {
		return fmt.Errorf("switching to %s: %w", s.cfg.MainBranch, err)
	}
	refspec := fmt.Sprintf("%s:%s-after-%s", s.cfg.MainBranch, s.cfg.MainBranch, plan.RCTag)
	if err := s.git.Push(ctx, s.cfg.Remote, refspec); err != nil {
		return fmt.Errorf("pushing %s: %w", refspec, err)
	}

	logger.Info("published %s", plan.RCTag)
	return nil
}

// notice renders the vote message for this run.
func (s *ReleaseService) notice(plan domain.ReleasePlan, stagingHead string, artifact domain.Artifact) (string, error) {
	data := buildNoticeData(s.cfg, plan, stagingHead, filepath.Base(artifact.Archive), s.now())
	return RenderNotice(data)
}

// record persists the run outcome. Recording is best effort; a
// history failure never masks the run result.
func (s *ReleaseService) record(ctx context.Context, rec domain.ReleaseRecord, result *domain.ReleaseResult, runErr error) {
	if s.history == nil {
		return
	}

	rec.FinishedAt = s.now()
	switch {
	case runErr != nil:
		rec.Outcome = domain.OutcomeFailed
		rec.Failure = runErr.Error()
	case result != nil && result.Published:
		rec.Outcome = domain.OutcomePublished
		rec.Published = true
	default:
		rec.Outcome = domain.OutcomeDryRun
	}

	if err := s.history.Save(ctx, rec); err != nil {
		logger.Warn("recording run in history: %v", err)
	}
}
