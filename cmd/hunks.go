package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/speakeasy-api/textmerge/internal/fs"
	"github.com/speakeasy-api/textmerge/internal/log"
	"github.com/speakeasy-api/textmerge/internal/merge"
	"github.com/speakeasy-api/textmerge/internal/model"
	"github.com/speakeasy-api/textmerge/internal/model/flag"
)

type HunksFlags struct {
	Base    string `json:"base"`
	Variant string `json:"variant"`
	Differ  string `json:"differ"`
	JSON    bool   `json:"json"`
}

var hunksCmd = &model.ExecutableCommand[HunksFlags]{
	Usage: "hunks",
	Short: "Show the hunks that turn one file into another",
	Long: `Diff a variant against its base and print the resulting hunks: the runs of added, removed
and replaced lines the merge works with. Base line indices are 0-based; an added hunk is anchored
at the base line its content follows (-1 for the start of the file).`,
	Run: hunksExec,
	Flags: []flag.Flag{
		flag.StringFlag{
			Name:        "base",
			Shorthand:   "b",
			Description: "path to the base version",
			Required:    true,
		},
		flag.StringFlag{
			Name:        "variant",
			Shorthand:   "v",
			Description: "path to the changed version",
			Required:    true,
		},
		differFlag,
		flag.BooleanFlag{
			Name:        "json",
			Description: "print the hunks as JSON",
		},
	},
}

type hunkView struct {
	Kind    string   `json:"kind"`
	Start   int      `json:"start"`
	End     int      `json:"end"`
	Removed []string `json:"removed"`
	Added   []string `json:"added"`
}

func hunksExec(ctx context.Context, flags HunksFlags) error {
	m, err := newMerger(flags.Differ)
	if err != nil {
		return err
	}

	fsys := fs.NewFileSystem("")
	base, err := fsys.ReadFile(flags.Base)
	if err != nil {
		return errors.Wrapf(err, "failed to read base")
	}
	variant, err := fsys.ReadFile(flags.Variant)
	if err != nil {
		return errors.Wrapf(err, "failed to read variant")
	}

	hunks, err := m.Hunks(string(base), string(variant))
	if err != nil {
		return err
	}

	log.PrintArray(ctx, viewHunks(hunks), flags.JSON, nil)

	return nil
}

func viewHunks(hunks []merge.Hunk) []hunkView {
	views := make([]hunkView, 0, len(hunks))
	for _, h := range hunks {
		v := hunkView{Kind: h.Kind.String(), Start: h.Start, End: h.End, Removed: []string{}, Added: []string{}}
		for _, l := range h.RemovedLines() {
			v.Removed = append(v.Removed, l.Content)
		}
		v.Added = append(v.Added, h.AddedContents()...)
		views = append(views, v)
	}
	return views
}
