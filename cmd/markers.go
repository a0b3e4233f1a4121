package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/speakeasy-api/textmerge/internal/fs"
	"github.com/speakeasy-api/textmerge/internal/git"
	"github.com/speakeasy-api/textmerge/internal/log"
	"github.com/speakeasy-api/textmerge/internal/markers"
	"github.com/speakeasy-api/textmerge/internal/merge"
	"github.com/speakeasy-api/textmerge/internal/merging"
	"github.com/speakeasy-api/textmerge/internal/model"
	"github.com/speakeasy-api/textmerge/internal/model/flag"
)

type MarkersFlags struct {
	File   string `json:"file"`
	Base   string `json:"base"`
	Format string `json:"format"`
}

var conflictsCmd = model.CommandGroup{
	Usage:          "conflicts",
	Short:          "Inspect and resolve conflict markers left by a merge",
	InteractiveMsg: "What do you want to do with the conflicts?",
	Commands:       []model.Command{markersCmd, resolveCmd},
}

var markersCmd = &model.ExecutableCommand[MarkersFlags]{
	Usage: "show",
	Short: "Report the conflict markers left in a file",
	Long: `Parse the diff3-style conflict markers in a merged file and report each conflict with its
local, base and remote lines. Pass the common ancestor with --base to place conflicts at their base
lines; without it the ancestor git recorded for an unmerged file is used when there is one. The command exits with status 1 when the file still holds conflicts.`,
	Run: markersExec,
	Flags: []flag.Flag{
		flag.StringFlag{
			Name:        "file",
			Shorthand:   "f",
			Description: "path to the merged file",
			Required:    true,
		},
		flag.StringFlag{
			Name:        "base",
			Shorthand:   "b",
			Description: "path to the common ancestor version",
		},
		formatFlag,
	},
}

func markersExec(ctx context.Context, flags MarkersFlags) error {
	format, err := reportFormat(flags.Format)
	if err != nil {
		return err
	}

	outcome, content, err := parseMarkedFile(flags.File, flags.Base)
	if err != nil {
		return err
	}

	res := merging.MergeResult{
		Path:      flags.File,
		Output:    flags.File,
		Status:    merging.MergeStatusClean,
		Content:   content,
		Conflicts: outcome.Conflicts,
		Regions:   markers.Regions(string(content)),
	}
	if outcome.HasConflicts() {
		res.Status = merging.MergeStatusConflict
	}

	results := []merging.MergeResult{res}
	if err := writeReport(os.Stdout, format, results); err != nil {
		return err
	}

	if !outcome.HasConflicts() {
		log.From(ctx).Successf("No conflict markers in %s", flags.File)
	}

	return conflictsErr(results)
}

// parseMarkedFile reads a marked-up file and, when given, its common ancestor.
func parseMarkedFile(file, base string) (merge.Outcome, []byte, error) {
	fsys := fs.NewFileSystem("")

	content, err := fsys.ReadFile(file)
	if err != nil {
		return merge.Outcome{}, nil, errors.Wrapf(err, "failed to read %s", file)
	}

	var baseContent []byte
	if base != "" {
		if baseContent, err = fsys.ReadFile(base); err != nil {
			return merge.Outcome{}, nil, errors.Wrapf(err, "failed to read base")
		}
	} else {
		baseContent = recordedBase(file)
	}

	outcome, err := markers.Parse(string(content), string(baseContent))
	if err != nil {
		return merge.Outcome{}, nil, errors.Wrapf(err, "failed to parse %s", file)
	}

	return outcome, content, nil
}

// recordedBase returns the common ancestor git holds for an unmerged file, if any.
func recordedBase(file string) []byte {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil
	}

	repo, err := git.NewLocalRepository(filepath.Dir(abs))
	if err != nil {
		return nil
	}

	rel, err := filepath.Rel(repo.Root(), abs)
	if err != nil {
		return nil
	}

	base, err := repo.ConflictBase(filepath.ToSlash(rel))
	if err != nil {
		return nil
	}
	return base
}
