package cmd

import (
	"context"
	"runtime"

	"github.com/speakeasy-api/textmerge/internal/log"
	"github.com/speakeasy-api/textmerge/internal/model"
)

type VersionFlags struct{}

func versionCmd(version string) model.Command {
	return &model.ExecutableCommand[VersionFlags]{
		Usage: "version",
		Short: "Print the textmerge version",
		Run: func(ctx context.Context, flags VersionFlags) error {
			log.From(ctx).Printf("textmerge %s (%s/%s, %s)", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
			return nil
		},
	}
}
