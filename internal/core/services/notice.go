package services

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
)

// votePeriod is how long the candidate vote stays open.
const votePeriod = 72 * time.Hour

// NoticeData carries everything the vote notice template embeds.
type NoticeData struct {
	MailingList  string
	Project      string
	Version      string
	RC           int
	RCTag        string
	Commit       string
	ChangelogURL string
	TagURL       string
	ArchiveURL   string
	SignatureURL string
	ChecksumURL  string
	VoteClose    string
}

var noticeTemplate = template.Must(template.New("notice").Parse(`To: {{.MailingList}}
Subject: [VOTE] Release {{.Project}} {{.Version}} (rc{{.RC}})

Hi all,

Please vote on releasing the following candidate as {{.Project}} {{.Version}}.

{{.Version}} includes the following changes:
{{.ChangelogURL}}

The candidate for {{.Project}} {{.Version}} release is available at:
{{.ArchiveURL}}

The tag to be voted on is {{.RCTag}} (commit {{.Commit}}):
{{.TagURL}}

The signature of the tarball can be found at:
{{.SignatureURL}}

The SHA-256 checksum of the tarball can be found at:
{{.ChecksumURL}}

The vote is open until {{.VoteClose}} and passes if a majority of
binding +1 votes are cast.

[ ] +1 Release this package as {{.Project}} {{.Version}}
[ ] -1 Do not release this package because ...

Thanks,
The {{.Project}} team
`))

// buildNoticeData assembles the notice fields for a completed run.
// now is the message generation time; the vote closes 3 days later.
func buildNoticeData(cfg Settings, plan domain.ReleasePlan, commit, archiveName string, now time.Time) NoticeData {
	distDir := joinURL(cfg.DistBaseURL, plan.RCVersion)
	archiveURL := joinURL(distDir, archiveName)

	return NoticeData{
		MailingList:  cfg.MailingList,
		Project:      cfg.ProjectName,
		Version:      plan.Current.String(),
		RC:           plan.RC,
		RCTag:        plan.RCTag,
		Commit:       commit,
		ChangelogURL: joinURL(cfg.BrowseURL, "blob", plan.RCVersion, cfg.ChangelogFile),
		TagURL:       joinURL(cfg.BrowseURL, "tree", plan.RCTag),
		ArchiveURL:   archiveURL,
		SignatureURL: archiveURL + ".asc",
		ChecksumURL:  archiveURL + ".sha256",
		VoteClose:    now.Add(votePeriod).UTC().Format("Mon Jan 2 15:04:05 MST 2006"),
	}
}

// RenderNotice renders the vote notice message. Pure formatting with
// no side effects; it is produced in dry runs as well.
func RenderNotice(data NoticeData) (string, error) {
	var b strings.Builder
	if err := noticeTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering notice: %w", err)
	}
	return b.String(), nil
}

// joinURL joins URL path segments without doubling separators.
// Empty base yields a relative path, which keeps the notice usable
// when no browse/dist URLs are configured.
func joinURL(base string, parts ...string) string {
	segments := make([]string, 0, len(parts)+1)
	if base != "" {
		segments = append(segments, strings.TrimRight(base, "/"))
	}
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			segments = append(segments, p)
		}
	}
	return strings.Join(segments, "/")
}
