package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
)

func TestBuildChangelog(t *testing.T) {
	date := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	version := domain.Version{Major: 1, Minor: 2, Patch: 3, Snapshot: true}

	got := BuildChangelog(version, date, []string{"Add feature", "Fix crash"})

	lines := strings.Split(got, "\n")
	assert.Equal(t, "Release 1.2.3 (2024-06-01)", lines[0])
	assert.Equal(t, strings.Repeat("-", len(lines[0])), lines[1])
	assert.Equal(t, "  * Add feature", lines[2])
	assert.Equal(t, "  * Fix crash", lines[3])
}

func TestBuildChangelog_NoSubjects(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	got := BuildChangelog(domain.Version{Major: 2}, date, nil)

	assert.Contains(t, got, "Release 2.0.0 (2024-06-01)")
	assert.Contains(t, got, "(no changes recorded)")
}

func TestBuildChangelog_SkipsBlankSubjects(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	got := BuildChangelog(domain.Version{Major: 1}, date, []string{"  ", "Real change", ""})

	assert.Equal(t, 1, strings.Count(got, "  * "))
	assert.Contains(t, got, "  * Real change")
}
