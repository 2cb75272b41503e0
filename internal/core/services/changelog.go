package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
)

// BuildChangelog renders the changelog section for one release from
// one-line commit subjects. Pure formatting; the caller decides where
// the text is written.
func BuildChangelog(version domain.Version, date time.Time, subjects []string) string {
	var b strings.Builder

	header := fmt.Sprintf("Release %s (%s)", version.Release(), date.UTC().Format("2006-01-02"))
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(header)))
	b.WriteString("\n")

	if len(subjects) == 0 {
		b.WriteString("  (no changes recorded)\n")
		return b.String()
	}

	for _, s := range subjects {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		b.WriteString("  * ")
		b.WriteString(s)
		b.WriteString("\n")
	}

	return b.String()
}
