package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cajal/microns-kit/internal/adapters/driven/storage/sqlite"
	"github.com/cajal/microns-kit/internal/connectors/github"
	"github.com/cajal/microns-kit/internal/core/domain"
	"github.com/cajal/microns-kit/internal/core/ports/driven"
	"github.com/cajal/microns-kit/internal/core/services"
)

var (
	checkOwner       string
	checkRepo        string
	checkBranch      string
	checkSource      string
	checkVersionFile string
	checkSearchPath  []string
	checkNoCache     bool
)

var checkCmd = &cobra.Command{
	Use:   "check [package]",
	Short: "Check an installed package version against GitHub",
	Long: `Resolves the locally installed version of a package and the latest
version published on GitHub, and warns when an upgrade is available.

The latest version can come from the most recent tag, the latest release, or
a version file at the tip of a branch.

Examples:
  micronskit check microns-utils --owner cajal --repo microns-utils --source tag
  micronskit check microns-utils --owner cajal --repo microns-utils \
    --source commit --branch main --version-file microns_utils/version.py`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkOwner, "owner", "", "repository owner")
	checkCmd.Flags().StringVar(&checkRepo, "repo", "", "repository name (defaults to the package name)")
	checkCmd.Flags().StringVar(&checkBranch, "branch", "main", "branch to read from (commit source)")
	checkCmd.Flags().StringVar(&checkSource, "source", "tag", "latest version source: commit, tag, or release")
	checkCmd.Flags().StringVar(&checkVersionFile, "version-file", "", "path to the version file in the repository (commit source)")
	checkCmd.Flags().StringSliceVar(&checkSearchPath, "search-path", nil, "directories to search for a local version file")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "skip the local lookup cache")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	pkg := args[0]

	cfg, err := openConfig()
	if err != nil {
		return err
	}

	kind, err := domain.ParseVersionSourceKind(checkSource)
	if err != nil {
		return err
	}

	repo := checkRepo
	if repo == "" {
		repo = pkg
	}
	src := domain.VersionSource{
		Owner:       checkOwner,
		Repo:        repo,
		Branch:      checkBranch,
		Source:      kind,
		VersionFile: checkVersionFile,
	}
	if err := src.Validate(); err != nil {
		return err
	}

	var cache driven.VersionCache
	if !checkNoCache {
		store, err := sqlite.NewStore("")
		if err != nil {
			return err
		}
		defer store.Close()
		cache = store
	}

	token := cfg.GetString("github.token")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	client := github.NewClient(cmd.Context(), token)

	svc := services.NewVersionService(client, cache)
	report, err := svc.Check(cmd.Context(), pkg, checkSearchPath, src)
	if err != nil {
		return err
	}

	printVersion := func(label, v string) {
		if v == "" {
			v = "unknown"
		}
		cmd.Printf("%s: %s\n", label, v)
	}
	printVersion("installed", report.Installed)
	printVersion("latest", report.Latest)
	if report.Outdated {
		cmd.Printf("%s is outdated, upgrade to %s\n", pkg, report.Latest)
	}
	return nil
}
