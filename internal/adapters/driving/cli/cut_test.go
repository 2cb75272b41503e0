package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
)

// mockOrchestrator implements driving.ReleaseOrchestrator for testing.
type mockOrchestrator struct {
	lastReq domain.CutRequest
	result  *domain.ReleaseResult
	cutErr  error
	planErr error
}

func (m *mockOrchestrator) Cut(_ context.Context, req domain.CutRequest) (*domain.ReleaseResult, error) {
	m.lastReq = req
	if m.cutErr != nil {
		return nil, m.cutErr
	}
	return m.result, nil
}

func (m *mockOrchestrator) Plan(_ context.Context, req domain.CutRequest) (domain.ReleasePlan, error) {
	m.lastReq = req
	if m.planErr != nil {
		return domain.ReleasePlan{}, m.planErr
	}
	return samplePlan(), nil
}

func samplePlan() domain.ReleasePlan {
	plan, err := domain.NewReleasePlan(
		domain.Version{Major: 1, Minor: 2, Patch: 3, Snapshot: true},
		domain.LevelPatch, 0, "widget",
	)
	if err != nil {
		panic(err)
	}
	return plan
}

func sampleResult(published bool) *domain.ReleaseResult {
	return &domain.ReleaseResult{
		Plan:        samplePlan(),
		StartCommit: "aaa111",
		StagingHead: "bbb222",
		Artifact: domain.Artifact{
			Archive:   "/tmp/out/widget-1.2.3.tar.gz",
			Signature: "/tmp/out/widget-1.2.3.tar.gz.asc",
			Checksums: []string{"/tmp/out/widget-1.2.3.tar.gz.sha256"},
		},
		Published: published,
		Notice:    "To: dev@widget.example.org\nSubject: [VOTE] Release widget 1.2.3 (rc0)\n",
	}
}

func setupCutTest(mock *mockOrchestrator) func() {
	old := releaseOrchestrator
	releaseOrchestrator = mock

	cutLevel = "p"
	cutRC = 0
	cutSetVersion = ""
	cutPublish = false
	cutOutputDir = ""
	cutYes = false

	return func() {
		releaseOrchestrator = old
	}
}

func executeCut(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"cut"}, args...))
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCutCmd_Use(t *testing.T) {
	assert.Equal(t, "cut [publish]", cutCmd.Use)
}

func TestCutCmd_Short(t *testing.T) {
	assert.Equal(t, "Cut a release candidate", cutCmd.Short)
}

func TestCutCmd_DryRun(t *testing.T) {
	mock := &mockOrchestrator{result: sampleResult(false)}
	cleanup := setupCutTest(mock)
	defer cleanup()

	out, err := executeCut(t)

	require.NoError(t, err)
	assert.False(t, mock.lastReq.Publish)
	assert.Contains(t, out, "widget-1.2.3-rc0")
	assert.Contains(t, out, "dry run, nothing published")
	assert.Contains(t, out, "Next snapshot:  1.2.4-SNAPSHOT")
	assert.Contains(t, out, "[VOTE] Release widget 1.2.3 (rc0)")
	assert.Contains(t, out, "Re-run with --publish")
}

func TestCutCmd_FlagsReachRequest(t *testing.T) {
	mock := &mockOrchestrator{result: sampleResult(false)}
	cleanup := setupCutTest(mock)
	defer cleanup()

	_, err := executeCut(t, "-l", "minor", "-r", "2", "--set-version", "2.0.0-SNAPSHOT", "-o", "/tmp/art")

	require.NoError(t, err)
	assert.Equal(t, domain.LevelMinor, mock.lastReq.Level)
	assert.Equal(t, 2, mock.lastReq.RC)
	assert.Equal(t, "2.0.0-SNAPSHOT", mock.lastReq.OverrideVersion)
	assert.Equal(t, "/tmp/art", mock.lastReq.OutputDir)
}

func TestCutCmd_MajorShortForm(t *testing.T) {
	mock := &mockOrchestrator{result: sampleResult(false)}
	cleanup := setupCutTest(mock)
	defer cleanup()

	_, err := executeCut(t, "-l", "M")

	require.NoError(t, err)
	assert.Equal(t, domain.LevelMajor, mock.lastReq.Level)
}

func TestCutCmd_InvalidLevel(t *testing.T) {
	cleanup := setupCutTest(&mockOrchestrator{})
	defer cleanup()

	_, err := executeCut(t, "-l", "huge")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCutCmd_ServiceNotConfigured(t *testing.T) {
	old := releaseOrchestrator
	releaseOrchestrator = nil
	defer func() {
		releaseOrchestrator = old
	}()

	_, err := executeCut(t)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "release service not configured")
}

func TestCutCmd_PublishWithYes(t *testing.T) {
	mock := &mockOrchestrator{result: sampleResult(true)}
	cleanup := setupCutTest(mock)
	defer cleanup()

	out, err := executeCut(t, "--publish", "--yes")

	require.NoError(t, err)
	assert.True(t, mock.lastReq.Publish)
	assert.Contains(t, out, "(published)")
	assert.NotContains(t, out, "Re-run with --publish")
}

func TestCutCmd_PublishPositionalAlias(t *testing.T) {
	mock := &mockOrchestrator{result: sampleResult(true)}
	cleanup := setupCutTest(mock)
	defer cleanup()

	_, err := executeCut(t, "publish", "--yes")

	require.NoError(t, err)
	assert.True(t, mock.lastReq.Publish)
}

func TestCutCmd_UnknownArgument(t *testing.T) {
	cleanup := setupCutTest(&mockOrchestrator{})
	defer cleanup()

	_, err := executeCut(t, "ship")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCutCmd_PublishWithoutTerminal(t *testing.T) {
	// Without --yes and without a terminal the publish is refused
	// before the orchestrator runs the cut.
	mock := &mockOrchestrator{result: sampleResult(true)}
	cleanup := setupCutTest(mock)
	defer cleanup()

	_, err := executeCut(t, "--publish")

	assert.ErrorIs(t, err, domain.ErrPublishDeclined)
}

func TestCutCmd_PublishPlanFailure(t *testing.T) {
	mock := &mockOrchestrator{planErr: domain.ErrNotSnapshot}
	cleanup := setupCutTest(mock)
	defer cleanup()

	_, err := executeCut(t, "--publish")

	assert.ErrorIs(t, err, domain.ErrNotSnapshot)
}

func TestCutCmd_MutationFailurePrintsAdvice(t *testing.T) {
	mock := &mockOrchestrator{cutErr: &domain.MutationError{
		Advice: domain.RollbackAdvice{
			MainBranch:    "main",
			StartCommit:   "aaa111",
			StagingBranch: "1.2.3-rc0",
			RCTag:         "widget-1.2.3-rc0",
			Tagged:        true,
		},
		Err: domain.ErrToolFailed,
	}}
	cleanup := setupCutTest(mock)
	defer cleanup()

	out, err := executeCut(t)

	assert.ErrorIs(t, err, domain.ErrToolFailed)
	assert.Contains(t, out, "git reset --hard aaa111")
	assert.Contains(t, out, "git branch -D 1.2.3-rc0")
	assert.Contains(t, out, "git tag -d widget-1.2.3-rc0")
}

func TestCutCmd_PreconditionFailureHasNoAdvice(t *testing.T) {
	mock := &mockOrchestrator{cutErr: domain.ErrPrecondition}
	cleanup := setupCutTest(mock)
	defer cleanup()

	out, err := executeCut(t)

	assert.ErrorIs(t, err, domain.ErrPrecondition)
	assert.NotContains(t, out, "git reset --hard")
}
