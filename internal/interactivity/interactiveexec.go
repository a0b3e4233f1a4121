package interactivity

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/speakeasy-api/textmerge/internal/charm"
	"github.com/speakeasy-api/textmerge/internal/charm/styles"
	"github.com/speakeasy-api/textmerge/internal/log"
	"github.com/speakeasy-api/textmerge/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type RunE = func(cmd *cobra.Command, args []string) error

// InteractiveRunFn runs a command group: in a terminal the user picks a subcommand, elsewhere help is printed.
func InteractiveRunFn(label string) RunE {
	return func(cmd *cobra.Command, args []string) error {
		return InteractiveExec(cmd, args, label)
	}
}

func InteractiveExec(cmd *cobra.Command, args []string, label string) error {
	if !utils.IsInteractive() {
		return cmd.Help()
	}

	selected, err := SelectCommand(label, cmd)
	if err != nil || selected == nil {
		return err
	}

	selected.SetContext(cmd.Context())

	if err := GetMissingFlags(selected); err != nil {
		return err
	}

	if selected.PreRunE != nil {
		if err := selected.PreRunE(selected, args); err != nil {
			return err
		}
	}

	if selected.RunE != nil {
		return selected.RunE(selected, args)
	} else if selected.Run != nil {
		selected.Run(selected, args)
	}

	return nil
}

func SelectCommand(label string, cmd *cobra.Command) (*cobra.Command, error) {
	subcommands := visibleSubcommands(cmd)
	if len(subcommands) == 0 {
		return cmd, nil
	}

	names := make([]string, len(subcommands))
	for i, c := range subcommands {
		names[i] = c.Name()
	}

	var choice string
	if err := huh.NewForm(charm.NewSelectPrompt(label, cmd.Short, names, &choice)).
		WithTheme(charm.FormTheme()).
		Run(); err != nil {
		return nil, err
	}

	i := slices.Index(names, choice)
	if i < 0 {
		return nil, nil
	}

	return SelectCommand(label, subcommands[i])
}

func GetMissingFlagsPreRun(cmd *cobra.Command, args []string) error {
	if !utils.IsInteractive() {
		return nil
	}
	return GetMissingFlags(cmd)
}

// GetMissingFlags prompts for every required flag the user did not set.
func GetMissingFlags(cmd *cobra.Command) error {
	missing := MissingRequiredFlags(cmd.Flags())
	if len(missing) == 0 {
		return nil
	}

	values := make([]string, len(missing))
	groups := make([]*huh.Group, len(missing))
	for i, f := range missing {
		groups[i] = charm.NewInput(f.Name, f.Usage, &values[i])
	}

	if err := huh.NewForm(groups...).WithTheme(charm.FormTheme()).Run(); err != nil {
		return err
	}

	for i, f := range missing {
		if err := setFlagValue(f, values[i]); err != nil {
			return fmt.Errorf("invalid value for --%s: %w", f.Name, err)
		}
	}

	flagString := ""
	for _, f := range missing {
		flagString += fmt.Sprintf(" --%s=%s", f.Name, f.Value)
	}

	running := styles.DimmedItalic.Render("Running command")
	command := styles.Info.Render(utils.GetFullCommandString(cmd) + flagString)
	log.From(cmd.Context()).Printf("\n%s %s\n", running, command)

	return nil
}

func MissingRequiredFlags(flags *pflag.FlagSet) []*pflag.Flag {
	var missing []*pflag.Flag
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Hidden || slices.Contains(utils.FlagsToIgnore, f.Name) {
			return
		}
		if a, ok := f.Annotations[cobra.BashCompOneRequiredFlag]; ok && len(a) > 0 && a[0] == "true" {
			missing = append(missing, f)
		}
	})
	return missing
}

func setFlagValue(f *pflag.Flag, v string) error {
	if v == "" {
		return nil
	}

	if sliceVal, ok := f.Value.(pflag.SliceValue); ok {
		if err := sliceVal.Replace(strings.Split(v, ",")); err != nil {
			return err
		}
	} else if err := f.Value.Set(v); err != nil {
		return err
	}

	f.Changed = true
	return nil
}

func visibleSubcommands(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if !isHidden(c) {
			out = append(out, c)
		}
	}
	return out
}

func isHidden(cmd *cobra.Command) bool {
	_, hasHiddenAnnotation := cmd.Annotations["hide"]
	return cmd.Hidden || hasHiddenAnnotation || cmd.Name() == "completion" || cmd.Name() == "help"
}
