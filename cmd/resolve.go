package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/speakeasy-api/textmerge/internal/charm"
	"github.com/speakeasy-api/textmerge/internal/charm/styles"
	"github.com/speakeasy-api/textmerge/internal/fs"
	"github.com/speakeasy-api/textmerge/internal/log"
	"github.com/speakeasy-api/textmerge/internal/merge"
	"github.com/speakeasy-api/textmerge/internal/model"
	"github.com/speakeasy-api/textmerge/internal/model/flag"
	"github.com/speakeasy-api/textmerge/internal/resolve"
)

type ResolveFlags struct {
	File   string `json:"file"`
	Base   string `json:"base"`
	Choice string `json:"choice"`
	Out    string `json:"out"`
}

var choiceNames = lo.Map(resolve.Choices, func(c resolve.Choice, _ int) string { return string(c) })

var resolveCmd = &model.ExecutableCommand[ResolveFlags]{
	Usage: "resolve",
	Short: "Resolve the conflict markers in a file",
	Long: `Replace every conflict block in a merged file with the lines of one side: remote, local, base,
or both (local followed by remote). In a terminal each conflict is shown and the side picked for it;
otherwise --choice applies to every conflict. The file is rewritten in place unless --out is given.`,
	Run:            resolveExec,
	RunInteractive: resolveInteractive,
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
		flag.EnumFlag{
			Name:          "choice",
			Description:   "side to keep for every conflict",
			AllowedValues: choiceNames,
		},
		flag.StringFlag{
			Name:        "out",
			Shorthand:   "o",
			Description: "path to write the resolved file to, defaults to --file",
		},
	},
}

func resolveExec(ctx context.Context, flags ResolveFlags) error {
	if flags.Choice == "" {
		return fmt.Errorf("--choice is required when not running in a terminal")
	}
	choice, err := resolve.ParseChoice(flags.Choice)
	if err != nil {
		return err
	}

	outcome, _, err := parseMarkedFile(flags.File, flags.Base)
	if err != nil {
		return err
	}
	if !outcome.HasConflicts() {
		log.From(ctx).Successf("No conflict markers in %s", flags.File)
		return nil
	}

	return writeResolved(ctx, flags, len(outcome.Conflicts), resolve.All(outcome, choice))
}

func resolveInteractive(ctx context.Context, flags ResolveFlags) error {
	if flags.Choice != "" {
		return resolveExec(ctx, flags)
	}

	outcome, _, err := parseMarkedFile(flags.File, flags.Base)
	if err != nil {
		return err
	}
	if !outcome.HasConflicts() {
		log.From(ctx).Successf("No conflict markers in %s", flags.File)
		return nil
	}

	l := log.From(ctx)
	choices := make([]resolve.Choice, len(outcome.Conflicts))

	for i, c := range outcome.Conflicts {
		l.PrintlnUnstyled(renderConflict(i+1, len(outcome.Conflicts), c))

		selected := string(resolve.ChoiceRemote)
		title := fmt.Sprintf("Conflict %d of %d", i+1, len(outcome.Conflicts))
		if err := huh.NewForm(charm.NewSelectPrompt(title, "Which lines should be kept?", choiceNames, &selected)).
			WithTheme(charm.FormTheme()).
			Run(); err != nil {
			return err
		}

		if choices[i], err = resolve.ParseChoice(selected); err != nil {
			return err
		}
	}

	resolved, err := resolve.Apply(outcome, choices)
	if err != nil {
		return err
	}

	if err := writeResolved(ctx, flags, len(choices), resolved); err != nil {
		return err
	}

	l.PrintlnUnstyled(styles.RenderSuccessMessage("all conflicts resolved", "Review the result before committing it"))
	return nil
}

func writeResolved(ctx context.Context, flags ResolveFlags, conflicts int, resolved string) error {
	out := flags.Out
	if out == "" {
		out = flags.File
	}

	fsys := fs.NewFileSystem("")
	mode, err := fsys.Mode(out)
	if err != nil {
		return err
	}
	if err := fsys.WriteFile(out, []byte(resolved), mode); err != nil {
		return errors.Wrapf(err, "failed to write %s", out)
	}

	log.From(ctx).Successf("Resolved %s in %s (%s)", pluralConflicts(conflicts), out, lineCount([]byte(resolved)))
	return nil
}

func renderConflict(n, total int, c merge.MergeConflict) string {
	section := func(name string, lines []string) string {
		body := strings.TrimSuffix(strings.Join(lines, ""), "\n")
		if body == "" {
			body = styles.DimmedItalic.Render("(no lines)")
		}
		return styles.Emphasized.Render(name) + "\n" + body
	}

	heading := styles.HeavilyEmphasized.Render(fmt.Sprintf("Conflict %d/%d at base line %d", n, total, c.BaseLine+1))
	body := strings.Join([]string{
		section("local", c.Local),
		section("base", c.Base),
		section("remote", c.Remote),
	}, "\n\n")

	return heading + "\n" + styles.LeftBorder(styles.Colors.Yellow).Render(body)
}
