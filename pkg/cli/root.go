// Package cli provides the quest command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/stefanpenner/quest/pkg/app"
	"github.com/stefanpenner/quest/pkg/tui"
)

// globalOptions are flags shared by every command.
type globalOptions struct {
	Dir  string
	Save string
	JSON bool
}

func (o *globalOptions) open() (*app.App, error) {
	return app.Open(app.Options{DataDir: o.Dir, Save: o.Save})
}

// openEmpty opens a session without reading the active save. Commands that
// replace the state or never touch it use it so a corrupt save cannot block them.
func (o *globalOptions) openEmpty() (*app.App, error) {
	return app.Open(app.Options{DataDir: o.Dir, Save: o.Save, SkipLoad: true})
}

// launchTUIFunc starts the interactive UI; tests replace it.
var launchTUIFunc = func(a *app.App) error {
	return tui.Run(a)
}

// NewRootCommand creates the quest root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "quest",
		Short: "Track goals, earn points and badges",
		Long: `quest tracks simple, eternal and checklist goals.

Recording progress on a goal awards points. Every 1000 points is a level,
and finishing a checklist goal earns a badge. With no command, quest opens
the interactive UI.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.Close()
			return launchTUIFunc(a)
		},
	}

	root.PersistentFlags().StringVar(&opts.Dir, "dir", "", "data directory (default $QUEST_DIR or the platform data dir)")
	root.PersistentFlags().StringVar(&opts.Save, "save", "", "save file to use instead of the configured one")
	root.PersistentFlags().BoolVar(&opts.JSON, "json", false, "print JSON output")

	root.AddCommand(
		newAddCommand(opts),
		newListCommand(opts),
		newRecordCommand(opts),
		newScoreCommand(opts),
		newSaveCommand(opts),
		newLoadCommand(opts),
		newSavesCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
		newResetCommand(opts),
		newHistoryCommand(opts),
		newInitCommand(opts),
		newSyncCommand(opts),
	)
	return root
}
