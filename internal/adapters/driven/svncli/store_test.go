package svncli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
)

// call is one recorded external command invocation.
type call struct {
	dir  string
	name string
	args []string
}

// scriptedRun records svn invocations and optionally fails a step.
type scriptedRun struct {
	calls  []call
	failOn string // subcommand to fail, e.g. "commit"
}

func (s *scriptedRun) run(_ context.Context, dir, name string, args ...string) (string, error) {
	s.calls = append(s.calls, call{dir: dir, name: name, args: args})
	if s.failOn != "" && len(args) > 0 && args[0] == s.failOn {
		return "", domain.ErrToolFailed
	}
	if len(args) > 0 && args[0] == "checkout" {
		// A real svn checkout creates the working copy directory.
		return "", os.MkdirAll(args[len(args)-1], 0755)
	}
	return "", nil
}

func newTestStore(run runFunc) *Store {
	s := NewStore("https://dist.example.org/repos/widget/")
	s.run = run
	return s
}

func makeArtifacts(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"widget-1.2.3.tar.gz", "widget-1.2.3.tar.gz.asc", "widget-1.2.3.tar.gz.sha256"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0644))
		files = append(files, p)
	}
	return files
}

func TestStore_Publish(t *testing.T) {
	script := &scriptedRun{}
	store := newTestStore(script.run)
	files := makeArtifacts(t)

	err := store.Publish(context.Background(), "1.2.3-rc0", files, "Adding widget-1.2.3-rc0 candidate artifacts")

	require.NoError(t, err)
	require.Len(t, script.calls, 4)

	mkdir := script.calls[0]
	assert.Equal(t, "svn", mkdir.name)
	assert.Equal(t, []string{"mkdir", "--parents", "-m", "Adding widget-1.2.3-rc0 candidate artifacts",
		"https://dist.example.org/repos/widget/1.2.3-rc0"}, mkdir.args)

	checkout := script.calls[1]
	assert.Equal(t, "checkout", checkout.args[0])
	assert.Contains(t, checkout.args, "--depth")
	assert.Contains(t, checkout.args, "empty")

	add := script.calls[2]
	assert.Equal(t, "add", add.args[0])
	assert.Contains(t, add.args, "widget-1.2.3.tar.gz")
	assert.Contains(t, add.args, "widget-1.2.3.tar.gz.asc")
	assert.True(t, strings.HasSuffix(add.dir, "1.2.3-rc0"), "add runs inside the checkout")

	commit := script.calls[3]
	assert.Equal(t, "commit", commit.args[0])
}

func TestStore_Publish_CopiesIntoCheckout(t *testing.T) {
	var checkoutDir string
	store := newTestStore(func(_ context.Context, dir, _ string, args ...string) (string, error) {
		if args[0] == "checkout" {
			// The adapter expects the checkout directory to exist afterwards.
			checkoutDir = args[len(args)-1]
			return "", os.MkdirAll(checkoutDir, 0755)
		}
		return "", nil
	})
	files := makeArtifacts(t)

	err := store.Publish(context.Background(), "1.2.3-rc0", files, "msg")

	require.NoError(t, err)
	for _, f := range files {
		copied := filepath.Join(checkoutDir, filepath.Base(f))
		_, statErr := os.Stat(copied)
		assert.NoError(t, statErr, copied)
	}
}

func TestStore_Publish_CommitFailure(t *testing.T) {
	script := &scriptedRun{failOn: "commit"}
	store := newTestStore(script.run)
	files := makeArtifacts(t)

	err := store.Publish(context.Background(), "1.2.3-rc0", files, "msg")

	assert.ErrorIs(t, err, domain.ErrToolFailed)
}

func TestStore_Publish_MissingLocalFile(t *testing.T) {
	script := &scriptedRun{}
	store := newTestStore(script.run)

	err := store.Publish(context.Background(), "1.2.3-rc0", []string{"/does/not/exist.tar.gz"}, "msg")

	assert.Error(t, err)
}
