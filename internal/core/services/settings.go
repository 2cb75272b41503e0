package services

import (
	"fmt"
	"strings"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
	"github.com/meridian-labs/relcut-cli/internal/core/ports/driven"
)

// Configuration keys understood by relcut. Anything else in the config
// file is ignored.
const (
	KeyProjectName   = "project.name"
	KeyMainBranch    = "git.main_branch"
	KeyRemote        = "git.remote"
	KeyBrowseURL     = "git.browse_url"
	KeyMarkerFile    = "release.marker_file"
	KeyChangelogFile = "release.changelog_file"
	KeyTagPrefix     = "release.tag_prefix"
	KeyOutputDir     = "release.output_dir"
	KeySigningKey    = "sign.key_id"
	KeyDistURL       = "dist.url"
	KeyDistBaseURL   = "dist.base_url"
	KeyMailingList   = "notice.mailing_list"
)

// Settings is the resolved application configuration for one run.
type Settings struct {
	// ProjectName names the project in commit messages and the notice.
	ProjectName string

	// RepoRoot is the working copy the workflow operates on.
	RepoRoot string

	// MainBranch is the designated main line.
	MainBranch string

	// Remote is the git remote used for fetch and push.
	Remote string

	// BrowseURL is the web URL of the repository, used for notice links.
	BrowseURL string

	// MarkerFile is the version marker path relative to the repo root.
	MarkerFile string

	// ChangelogFile is the changelog path relative to the repo root.
	ChangelogFile string

	// TagPrefix prefixes derived tag names; defaults to ProjectName.
	TagPrefix string

	// OutputDir is where artifacts are written.
	OutputDir string

	// SigningKey selects the GPG identity; empty uses the default key.
	SigningKey string

	// DistURL is the distribution store location (svn URL).
	DistURL string

	// DistBaseURL is the public download URL of the store, for links.
	DistBaseURL string

	// MailingList is the vote notice recipient.
	MailingList string
}

// LoadSettings resolves Settings from a config store, applying
// defaults for anything unset. repoRoot is the working copy path.
func LoadSettings(store driven.ConfigStore, repoRoot string) Settings {
	s := Settings{
		ProjectName:   "project",
		RepoRoot:      repoRoot,
		MainBranch:    "main",
		Remote:        "origin",
		MarkerFile:    "version.txt",
		ChangelogFile: "CHANGELOG",
		OutputDir:     "dist",
	}

	if store == nil {
		s.TagPrefix = s.ProjectName
		return s
	}

	assign := func(dst *string, key string) {
		if v := strings.TrimSpace(store.GetString(key)); v != "" {
			*dst = v
		}
	}

	assign(&s.ProjectName, KeyProjectName)
	assign(&s.MainBranch, KeyMainBranch)
	assign(&s.Remote, KeyRemote)
	assign(&s.BrowseURL, KeyBrowseURL)
	assign(&s.MarkerFile, KeyMarkerFile)
	assign(&s.ChangelogFile, KeyChangelogFile)
	assign(&s.OutputDir, KeyOutputDir)
	assign(&s.SigningKey, KeySigningKey)
	assign(&s.DistURL, KeyDistURL)
	assign(&s.DistBaseURL, KeyDistBaseURL)
	assign(&s.MailingList, KeyMailingList)

	s.TagPrefix = s.ProjectName
	assign(&s.TagPrefix, KeyTagPrefix)

	return s
}

// ValidateForPublish checks the settings a publish run depends on.
// Dry runs work without a distribution store.
func (s Settings) ValidateForPublish() error {
	if s.DistURL == "" {
		return fmt.Errorf("%w: %s is not configured", domain.ErrInvalidInput, KeyDistURL)
	}
	return nil
}
