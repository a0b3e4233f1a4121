package cmd

import (
	"context"
	"os"

	"github.com/speakeasy-api/textmerge/internal/config"
	"github.com/speakeasy-api/textmerge/internal/fs"
	"github.com/speakeasy-api/textmerge/internal/github"
	"github.com/speakeasy-api/textmerge/internal/log"
	"github.com/speakeasy-api/textmerge/internal/merging"
	"github.com/speakeasy-api/textmerge/internal/model"
	"github.com/speakeasy-api/textmerge/internal/model/flag"
	"github.com/speakeasy-api/textmerge/internal/reports"
	"github.com/speakeasy-api/textmerge/internal/utils"
	"go.uber.org/zap"
)

type BatchFlags struct {
	Manifest    string `json:"manifest"`
	DryRun      bool   `json:"dry-run"`
	Concurrency int    `json:"concurrency"`
	Format      string `json:"format"`
	SaveReport  string `json:"save-report"`
}

var batchCmd = &model.ExecutableCommand[BatchFlags]{
	Usage: "batch",
	Short: "Merge many files in parallel from a manifest",
	Long: `Merge every file set listed in a YAML manifest. Paths are relative to the manifest's directory.

  differ: myers        # optional, overrides the configured differ
  markers: true        # optional, overrides the configured marker setting
  concurrency: 4       # optional, overrides the configured concurrency
  files:
    - path: README.md
      base: base/README.md
      remote: remote/README.md
      local: README.md
      output: README.md  # optional, defaults to local

Files are merged concurrently. A file that cannot be read or written is reported and does not stop the others.`,
	Run: batchExec,
	Flags: []flag.Flag{
		flag.StringFlag{
			Name:         "manifest",
			Shorthand:    "m",
			Description:  "path to the merge manifest",
			DefaultValue: "merge.yaml",
		},
		dryRunFlag,
		concurrencyFlag,
		formatFlag,
		flag.StringFlag{
			Name:        "save-report",
			Description: "directory to save a copy of the report to",
		},
	},
}

func batchExec(ctx context.Context, flags BatchFlags) error {
	logger := log.From(ctx)

	format, err := reportFormat(flags.Format)
	if err != nil {
		return err
	}

	manifest, err := merging.LoadManifest(utils.SanitizeFilePath(flags.Manifest))
	if err != nil {
		return err
	}

	m, err := newMerger(manifest.Differ)
	if err != nil {
		return err
	}

	withMarkers := config.GetMarkers()
	if manifest.Markers != nil {
		withMarkers = *manifest.Markers
	}

	concurrency := flags.Concurrency
	if concurrency == 0 {
		concurrency = manifest.Concurrency
	}
	if concurrency == 0 {
		concurrency = config.GetConcurrency()
	}

	fsys := fs.NewFileSystem(manifest.Dir)
	engine := merging.NewEngine(
		merging.NewFileSource(fsys),
		merging.NewTextMerger(m, withMarkers),
		fsys,
		merging.WithConcurrency(concurrency),
		merging.WithDryRun(flags.DryRun),
	)

	logger.Info("merging files", zap.Int("files", len(manifest.Files)), zap.Int("concurrency", concurrency))

	results, mergeErr := engine.ProcessBatch(ctx, manifest.Files)

	if err := writeReport(os.Stdout, format, results); err != nil {
		return err
	}

	if flags.SaveReport != "" {
		saved, err := reports.Save(utils.SanitizeFilePath(flags.SaveReport), format, reports.New(results))
		if err != nil {
			return err
		}
		logger.Info(saved.Message)
	}

	github.GenerateMergeSummary(ctx, results)

	if mergeErr != nil {
		return mergeErr
	}
	return conflictsErr(results)
}
