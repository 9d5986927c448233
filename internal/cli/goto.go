package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/project-glean/internal/navigator"
	"github.com/mvp-joe/project-glean/internal/rules"
)

// gotoCmd represents the goto command
var gotoCmd = &cobra.Command{
	Use:   "goto LABEL DESCRIPTION",
	Short: "Resolve a TODO item to its source location",
	Long: `Goto rescans the workspace for TODOs and resolves the item identified by
LABEL ("<relative path>:<line>") and DESCRIPTION (the TODO line text, as
listed by "glean todos").

On success it prints the location as "path:line:col", which most editors
accept directly. If the item no longer exists or its text changed, goto
fails and prints nothing to stdout.

Example:
  $EDITOR "$(glean goto 'src/app.js:12' '// TODO: refactor')"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := withInterrupt(cmd.Context(), cmd.ErrOrStderr())
		defer cancel()
		sel := navigator.Selection{Label: args[0], Description: args[1]}
		return runGoto(ctx, currentOptions(), sel, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(gotoCmd)
}

// runGoto resolves sel against a fresh TODO scan and writes the location.
func runGoto(ctx context.Context, opts options, sel navigator.Selection, stdout, stderr io.Writer) error {
	opts.quiet = true
	report, cfg, err := scanWorkspace(ctx, opts, rules.Todo, stderr)
	if err != nil {
		return err
	}

	loc, err := navigator.Navigate(sel, report.Set(rules.Todo))
	if err != nil {
		return err
	}

	return newRenderer(stdout, cfg.Output.Format, cfg.Output.Color).Location(loc)
}
