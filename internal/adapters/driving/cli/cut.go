package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
)

var (
	cutLevel      string
	cutRC         int
	cutSetVersion string
	cutPublish    bool
	cutOutputDir  string
	cutYes        bool
)

var cutCmd = &cobra.Command{
	Use:   "cut [publish]",
	Short: "Cut a release candidate",
	Long: `Cut a release candidate from the current working copy.

The working copy must be clean, on the main branch, and its version
marker file must hold a -SNAPSHOT version. The run commits the
changelog, bumps the development version, builds a signed source
tarball with checksums, and renders the vote notice.

Without --publish nothing leaves the machine: no push, no upload.
The word "publish" as an argument is equivalent to --publish.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCut,
}

func init() {
	cutCmd.Flags().StringVarP(&cutLevel, "level", "l", "p",
		"version component to bump afterwards: p/patch, m/minor or M/major")
	cutCmd.Flags().IntVarP(&cutRC, "rc", "r", 0, "release candidate number")
	cutCmd.Flags().StringVar(&cutSetVersion, "set-version", "",
		"release this version instead of the marker file content")
	cutCmd.Flags().BoolVarP(&cutPublish, "publish", "p", false,
		"publish the candidate: upload artifacts, push the signed tag")
	cutCmd.Flags().StringVarP(&cutOutputDir, "output", "o", "",
		"directory for the tarball and sidecars")
	cutCmd.Flags().BoolVar(&cutYes, "yes", false, "skip the publish confirmation prompt")
	rootCmd.AddCommand(cutCmd)
}

func runCut(cmd *cobra.Command, args []string) error {
	if releaseOrchestrator == nil {
		return errors.New("release service not configured")
	}

	if len(args) == 1 {
		if args[0] != "publish" {
			return fmt.Errorf("%w: unknown argument %q", domain.ErrInvalidInput, args[0])
		}
		cutPublish = true
	}

	level, err := domain.ParseLevel(cutLevel)
	if err != nil {
		return err
	}

	req := domain.CutRequest{
		Level:           level,
		RC:              cutRC,
		OverrideVersion: cutSetVersion,
		Publish:         cutPublish,
		OutputDir:       cutOutputDir,
	}

	ctx := cmd.Context()

	if req.Publish && !cutYes {
		plan, perr := releaseOrchestrator.Plan(ctx, req)
		if perr != nil {
			return perr
		}
		ok, cerr := confirmPublish(cmd, plan)
		if cerr != nil {
			return cerr
		}
		if !ok {
			return domain.ErrPublishDeclined
		}
	}

	result, err := releaseOrchestrator.Cut(ctx, req)
	if err != nil {
		var mutErr *domain.MutationError
		if errors.As(err, &mutErr) {
			printRollbackAdvice(cmd, mutErr.Advice)
		}
		return err
	}

	printResult(cmd, result)
	return nil
}

func printResult(cmd *cobra.Command, result *domain.ReleaseResult) {
	plan := result.Plan

	mode := "dry run, nothing published"
	if result.Published {
		mode = "published"
	}

	cmd.Println(titleStyle.Render(fmt.Sprintf("Release candidate %s (%s)", plan.RCTag, mode)))
	cmd.Println()
	cmd.Printf("  Version:        %s\n", plan.Current)
	cmd.Printf("  Next snapshot:  %s\n", plan.NextSnapshot)
	cmd.Printf("  Staging commit: %s\n", result.StagingHead)
	cmd.Printf("  Archive:        %s\n", result.Artifact.Archive)
	cmd.Printf("  Signature:      %s\n", result.Artifact.Signature)
	for _, p := range result.Artifact.Checksums {
		cmd.Printf("  Checksum:       %s\n", p)
	}
	cmd.Println()

	cmd.Println(titleStyle.Render("Vote notice"))
	cmd.Println()
	cmd.Println(result.Notice)

	if !result.Published {
		cmd.Println("Re-run with --publish to upload the artifacts and push the signed tag.")
	}
}

// printRollbackAdvice explains how to restore the clone after a failure
// that happened mid-mutation. Recovery is deliberately manual.
func printRollbackAdvice(cmd *cobra.Command, advice domain.RollbackAdvice) {
	out := cmd.ErrOrStderr()

	fmt.Fprintln(out, warnStyle.Render("The run failed after the repository was modified."))
	fmt.Fprintln(out, "To restore the working copy, inspect the repository and run:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  git checkout %s\n", advice.MainBranch)
	fmt.Fprintf(out, "  git reset --hard %s\n", advice.StartCommit)
	fmt.Fprintf(out, "  git branch -D %s\n", advice.StagingBranch)
	if advice.Tagged {
		fmt.Fprintf(out, "  git tag -d %s\n", advice.RCTag)
	}
	fmt.Fprintln(out)
}
