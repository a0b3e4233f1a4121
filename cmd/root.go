package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/speakeasy-api/textmerge/internal/charm/styles"
	"github.com/speakeasy-api/textmerge/internal/config"
	"github.com/speakeasy-api/textmerge/internal/interactivity"
	"github.com/speakeasy-api/textmerge/internal/log"
	"github.com/speakeasy-api/textmerge/internal/model"
	"github.com/speakeasy-api/textmerge/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrConflicts is returned once merged output has been written but conflicts remain.
var ErrConflicts = errors.New("merge finished with conflicts")

var rootCmd = &cobra.Command{
	Use:   "textmerge",
	Short: "Three-way line merges for text files",
	Long: `textmerge merges two variants of a text file against their common ancestor:
	- Merge a single file triple, writing the result or diff3-style conflict markers
	- Merge a file as it exists at three git revisions
	- Merge many files in parallel from a YAML manifest
	- Inspect, report on and resolve conflict markers
`,
	RunE: rootExec,
}

var l = log.New().WithLevel(log.LevelInfo)

func init() {
	// We want our commands to be sorted in defined order, not alphabetically
	cobra.EnableCommandSorting = false
	if err := config.Load(); err != nil {
		l.Error("", zap.Error(err))
		os.Exit(1)
	}
}

func Init(version string) {
	rootCmd.PersistentFlags().String("logLevel", string(log.LevelInfo), fmt.Sprintf("the log level (available options: [%s])", strings.Join(log.Levels, ", ")))

	addCommand(rootCmd, mergeCmd)
	addCommand(rootCmd, revisionsCmd)
	addCommand(rootCmd, batchCmd)
	addCommand(rootCmd, hunksCmd)
	addCommand(rootCmd, conflictsCmd)
	addCommand(rootCmd, versionCmd(version))
}

func addCommand(cmd *cobra.Command, command model.Command) {
	c, err := command.Init()
	if err != nil {
		l.Error("", zap.Error(err))
		os.Exit(1)
	}
	cmd.AddCommand(c)
}

func CmdForTest(version string) *cobra.Command {
	setupRootCmd(version)

	return rootCmd
}

func Execute(version string) {
	setupRootCmd(version)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, ErrConflicts) {
			if utils.IsInteractive() {
				l.PrintlnUnstyled(styles.RenderWarningMessage(err.Error(),
					"Inspect them with `textmerge conflicts show --file <path>`",
					"Resolve them with `textmerge conflicts resolve --file <path>`"))
			} else {
				l.Warn(err.Error())
			}
			os.Exit(1)
		}
		l.Error("", zap.Error(err))
		l.WithInteractiveOnly().PrintfStyled(styles.DimmedItalic, "Run '%s --help' for usage.\n", rootCmd.CommandPath())
		os.Exit(2)
	}
}

func setupRootCmd(version string) {
	rootCmd.Version = version
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setLogLevel(cmd)
	}

	Init(version)
}

func GetRootCommand() *cobra.Command {
	return rootCmd
}

func setLogLevel(cmd *cobra.Command) error {
	logLevel, err := cmd.Flags().GetString("logLevel")
	if err != nil {
		return err
	}
	if !slices.Contains(log.Levels, logLevel) {
		return fmt.Errorf("log level must be one of: %s", strings.Join(log.Levels, ", "))
	}

	l = l.WithLevel(log.Level(logLevel))
	ctx := log.With(cmd.Context(), l)
	cmd.SetContext(ctx)

	return nil
}

func rootExec(cmd *cobra.Command, args []string) error {
	if !utils.IsInteractive() {
		return cmd.Help()
	}

	l := log.From(cmd.Context()).WithInteractiveOnly()
	l.PrintfStyled(styles.HeavilyEmphasized, "Welcome to textmerge!\n")
	l.PrintfStyled(styles.DimmedItalic, "This is interactive mode. For usage, run textmerge -h instead.\n")

	return interactivity.InteractiveExec(cmd, args, "Select a command to run")
}
