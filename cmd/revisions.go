package cmd

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/speakeasy-api/textmerge/internal/config"
	"github.com/speakeasy-api/textmerge/internal/fs"
	"github.com/speakeasy-api/textmerge/internal/git"
	"github.com/speakeasy-api/textmerge/internal/github"
	"github.com/speakeasy-api/textmerge/internal/log"
	"github.com/speakeasy-api/textmerge/internal/merging"
	"github.com/speakeasy-api/textmerge/internal/model"
	"github.com/speakeasy-api/textmerge/internal/model/flag"
	"go.uber.org/zap"
)

type RevisionsFlags struct {
	Remote          string   `json:"remote"`
	Local           string   `json:"local"`
	Base            string   `json:"base"`
	Paths           []string `json:"paths"`
	OutDir          string   `json:"out-dir"`
	RecordConflicts bool     `json:"record-conflicts"`
	NoMarkers       bool     `json:"no-markers"`
	Differ          string   `json:"differ"`
	Format          string   `json:"format"`
	Concurrency     int      `json:"concurrency"`
	DryRun          bool     `json:"dry-run"`
}

var revisionsCmd = &model.ExecutableCommand[RevisionsFlags]{
	Usage: "revisions",
	Short: "Merge files as they exist at two git revisions",
	Long: `Merge files of the current git repository as they exist at the remote and local revisions,
using their merge base as the common ancestor unless --base is given.

Only files changed between base and remote are merged unless --paths lists them explicitly.
Merged files are written into the worktree, or under --out-dir. With --record-conflicts, conflicted
files are also recorded as unmerged index entries so git status and git mergetool pick them up.`,
	Run: revisionsExec,
	Flags: []flag.Flag{
		flag.StringFlag{
			Name:        "remote",
			Shorthand:   "r",
			Description: "revision holding the remote (theirs) changes",
			Required:    true,
		},
		flag.StringFlag{
			Name:        "local",
			Shorthand:   "l",
			Description: "revision holding the local (ours) changes, defaults to HEAD",
		},
		flag.StringFlag{
			Name:        "base",
			Shorthand:   "b",
			Description: "common ancestor revision, defaults to the merge base of remote and local",
		},
		flag.StringSliceFlag{
			Name:        "paths",
			Shorthand:   "p",
			Description: "repository paths to merge, defaults to every file changed between base and remote",
		},
		flag.StringFlag{
			Name:        "out-dir",
			Shorthand:   "o",
			Description: "directory to write merged files to, defaults to the repository worktree",
		},
		flag.BooleanFlag{
			Name:        "record-conflicts",
			Description: "record conflicted files as unmerged index entries",
		},
		noMarkersFlag,
		differFlag,
		formatFlag,
		concurrencyFlag,
		dryRunFlag,
	},
}

var concurrencyFlag = flag.IntFlag{
	Name:        "concurrency",
	Shorthand:   "c",
	Description: "maximum number of files merged at once, defaults to the configured concurrency (0 is unlimited)",
}

var dryRunFlag = flag.BooleanFlag{
	Name:        "dry-run",
	Description: "merge and report without writing any files",
}

func revisionsExec(ctx context.Context, flags RevisionsFlags) error {
	logger := log.From(ctx)

	format, err := reportFormat(flags.Format)
	if err != nil {
		return err
	}

	m, err := newMerger(flags.Differ)
	if err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	repo, err := git.NewLocalRepository(wd)
	if err != nil {
		return err
	}

	remote, err := repo.ResolveRevision(flags.Remote)
	if err != nil {
		return err
	}
	var local string
	if flags.Local == "" {
		local, err = repo.HeadHash()
	} else {
		local, err = repo.ResolveRevision(flags.Local)
	}
	if err != nil {
		return err
	}

	base := flags.Base
	if base == "" {
		if base, err = repo.MergeBase(remote, local); err != nil {
			return err
		}
		logger.Info("using merge base", zap.String("base", base))
	} else if base, err = repo.ResolveRevision(base); err != nil {
		return err
	}

	paths := flags.Paths
	if len(paths) == 0 {
		if paths, err = repo.ChangedFiles(base, remote); err != nil {
			return err
		}
	}
	if len(paths) == 0 {
		logger.Successf("Nothing to merge: %s has no changes since %s", flags.Remote, shortHash(base))
		return nil
	}

	sets := make([]merging.FileSet, 0, len(paths))
	for _, p := range paths {
		sets = append(sets, merging.FileSet{
			Path:   p,
			Base:   merging.GitRef(base, p),
			Remote: merging.GitRef(remote, p),
			Local:  merging.GitRef(local, p),
			Output: p,
		})
	}

	outDir := flags.OutDir
	if outDir == "" {
		outDir = repo.Root()
	}
	fsys := fs.NewFileSystem(outDir)
	source := merging.NewGitSource(repo)

	concurrency := flags.Concurrency
	if concurrency == 0 {
		concurrency = config.GetConcurrency()
	}

	engine := merging.NewEngine(
		source,
		merging.NewTextMerger(m, config.GetMarkers() && !flags.NoMarkers),
		fsys,
		merging.WithConcurrency(concurrency),
		merging.WithDryRun(flags.DryRun),
	)

	results, mergeErr := engine.ProcessBatch(ctx, sets)

	if flags.RecordConflicts && !flags.DryRun {
		if err := recordConflicts(repo, source, fsys, sets, results); err != nil {
			return err
		}
	}

	if err := writeReport(os.Stdout, format, results); err != nil {
		return err
	}
	github.GenerateMergeSummary(ctx, results)

	if mergeErr != nil {
		return mergeErr
	}
	return conflictsErr(results)
}

// recordConflicts writes the three versions of every conflicted file into the index.
func recordConflicts(repo *git.Repository, source merging.Source, fsys *fs.FileSystem, sets []merging.FileSet, results []merging.MergeResult) error {
	for i, res := range results {
		if res.Status != merging.MergeStatusConflict {
			continue
		}

		set := sets[i]
		base, err := source.Read(set.Base)
		if err != nil {
			return err
		}
		local, err := source.Read(set.Local)
		if err != nil {
			return err
		}
		remote, err := source.Read(set.Remote)
		if err != nil {
			return err
		}

		mode, err := fsys.Mode(set.Output)
		if err != nil {
			return err
		}

		if err := repo.SetConflictState(set.Path, base, local, remote, mode&0o111 != 0); err != nil {
			return errors.Wrapf(err, "failed to record conflict for %s", set.Path)
		}
	}

	return nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
