package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/speakeasy-api/textmerge/internal/config"
	"github.com/speakeasy-api/textmerge/internal/diff"
	"github.com/speakeasy-api/textmerge/internal/fs"
	"github.com/speakeasy-api/textmerge/internal/log"
	"github.com/speakeasy-api/textmerge/internal/merging"
	"github.com/speakeasy-api/textmerge/internal/model"
	"github.com/speakeasy-api/textmerge/internal/model/flag"
	"github.com/speakeasy-api/textmerge/internal/reports"
	"github.com/speakeasy-api/textmerge/internal/utils"
)

type MergeFlags struct {
	Base      string `json:"base"`
	Remote    string `json:"remote"`
	Local     string `json:"local"`
	Out       string `json:"out"`
	NoMarkers bool   `json:"no-markers"`
	Differ    string `json:"differ"`
	Format    string `json:"format"`
}

var differFlag = flag.EnumFlag{
	Name:          "differ",
	Description:   "line differ used to compare each side against base, defaults to the configured differ",
	AllowedValues: diff.Names,
}

var formatFlag = flag.EnumFlag{
	Name:          "format",
	Description:   "report format, defaults to the configured format",
	AllowedValues: reports.Formats,
}

var noMarkersFlag = flag.BooleanFlag{
	Name:        "no-markers",
	Description: "resolve conflicts in favor of remote instead of writing conflict markers",
}

var mergeCmd = &model.ExecutableCommand[MergeFlags]{
	Usage: "merge",
	Short: "Merge two versions of a file against their common ancestor",
	Long: `Merge the changes made in remote and local since base into a single file.

Changes to different lines are combined. Overlapping changes become diff3-style conflict markers
holding the local, base and remote lines, unless --no-markers is set, in which case remote wins.
A missing base is treated as an empty file. The merged text is printed to stdout unless --out is given.
The command exits with status 1 when conflicts remain.`,
	Run: mergeExec,
	Flags: []flag.Flag{
		flag.StringFlag{
			Name:        "base",
			Shorthand:   "b",
			Description: "path to the common ancestor version",
		},
		flag.StringFlag{
			Name:        "remote",
			Shorthand:   "r",
			Description: "path to the remote (theirs) version",
			Required:    true,
		},
		flag.StringFlag{
			Name:        "local",
			Shorthand:   "l",
			Description: "path to the local (ours) version",
			Required:    true,
		},
		flag.StringFlag{
			Name:        "out",
			Shorthand:   "o",
			Description: "path to write the merged file to",
		},
		noMarkersFlag,
		differFlag,
		formatFlag,
	},
}

func mergeExec(ctx context.Context, flags MergeFlags) error {
	format, err := reportFormat(flags.Format)
	if err != nil {
		return err
	}

	m, err := newMerger(flags.Differ)
	if err != nil {
		return err
	}

	if flags.Base != "" && !utils.FileExists(flags.Base) {
		return fmt.Errorf("base file %s not found, omit --base to merge against an empty ancestor", flags.Base)
	}

	toStdout := flags.Out == ""
	fsys := fs.NewFileSystem("")
	engine := merging.NewEngine(
		merging.NewFileSource(fsys),
		merging.NewTextMerger(m, config.GetMarkers() && !flags.NoMarkers),
		fsys,
		merging.WithDryRun(toStdout),
	)

	res := engine.ProcessSingle(ctx, merging.FileSet{
		Path:   flags.Local,
		Base:   flags.Base,
		Remote: flags.Remote,
		Local:  flags.Local,
		Output: flags.Out,
	})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "failed to merge %s", flags.Local)
	}

	var reportOut io.Writer = os.Stdout
	if toStdout {
		if res.Status == merging.MergeStatusSkipped || res.Status == merging.MergeStatusDeleted {
			log.From(ctx).Warnf("nothing to print: %s", res.Status)
		} else if _, err := os.Stdout.Write(res.Content); err != nil {
			return errors.Wrapf(err, "failed to write merged file")
		}
		reportOut = os.Stderr
	}

	results := []merging.MergeResult{res}
	if format != reports.FormatText || !toStdout {
		if err := writeReport(reportOut, format, results); err != nil {
			return err
		}
	}

	if err := conflictsErr(results); err != nil {
		return err
	}

	if !toStdout {
		log.From(ctx).Successf("Merged %s into %s (%s, %s)", flags.Remote, flags.Out, res.Status, lineCount(res.Content))
	}

	return nil
}
