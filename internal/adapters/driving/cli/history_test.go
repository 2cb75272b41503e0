package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
)

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	records   []domain.ReleaseRecord
	err       error
	lastLimit int
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.ReleaseRecord, error) {
	m.lastLimit = limit
	return m.records, m.err
}

func executeHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"history"}, args...))
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history", historyCmd.Use)
}

func TestHistoryCmd_ListsRuns(t *testing.T) {
	old := historyService
	mock := &mockHistoryService{records: []domain.ReleaseRecord{
		{
			RCTag:     "widget-1.2.3-rc0",
			Commit:    "bbb222",
			Outcome:   domain.OutcomePublished,
			StartedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			RCTag:     "widget-1.2.2-rc1",
			Outcome:   domain.OutcomeFailed,
			Failure:   "committing changelog: exit status 1",
			StartedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
	}}
	historyService = mock
	defer func() {
		historyService = old
	}()

	out, err := executeHistory(t)

	require.NoError(t, err)
	assert.Contains(t, out, "widget-1.2.3-rc0")
	assert.Contains(t, out, "published")
	assert.Contains(t, out, "bbb222")
	assert.Contains(t, out, "committing changelog: exit status 1")
}

func TestHistoryCmd_LimitFlag(t *testing.T) {
	old := historyService
	mock := &mockHistoryService{}
	historyService = mock
	defer func() {
		historyService = old
	}()

	_, err := executeHistory(t, "-n", "5")

	require.NoError(t, err)
	assert.Equal(t, 5, mock.lastLimit)
}

func TestHistoryCmd_Empty(t *testing.T) {
	old := historyService
	historyService = &mockHistoryService{}
	defer func() {
		historyService = old
	}()

	out, err := executeHistory(t)

	require.NoError(t, err)
	assert.Contains(t, out, "No release runs recorded yet.")
}

func TestHistoryCmd_ServiceError(t *testing.T) {
	old := historyService
	historyService = &mockHistoryService{err: errors.New("database locked")}
	defer func() {
		historyService = old
	}()

	_, err := executeHistory(t)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "listing release history")
}

func TestHistoryCmd_ServiceNotConfigured(t *testing.T) {
	old := historyService
	historyService = nil
	defer func() {
		historyService = old
	}()

	_, err := executeHistory(t)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "history service not configured")
}
