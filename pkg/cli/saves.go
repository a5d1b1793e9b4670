package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/quest/pkg/codec"
	"github.com/stefanpenner/quest/pkg/config"
	"github.com/stefanpenner/quest/pkg/store"
)

func newSaveCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save [name]",
		Short: "Write the active goals to a named save",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open()
			if err != nil {
				return err
			}
			defer a.Close()

			name := a.SaveName
			if len(args) == 1 {
				name = store.Slug(args[0])
			}
			if err := a.SaveAs(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", a.Store.SavePath(name))
			return nil
		},
	}
}

func newLoadCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>",
		Short: "Make a save the active one",
		Long: `Make a save the active one. Later commands use it until another is loaded.

The save is parsed first; a corrupt save is rejected and the active save stays as it was.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.openEmpty()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.LoadFrom(args[0]); err != nil {
				return err
			}
			a.Config.Save = a.SaveName
			if err := config.Save(a.DataDir, a.Config); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s: %d goals, score %d\n", a.SaveName, a.Engine.Len(), a.Engine.Score())
			return nil
		},
	}
}

func newSavesCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "saves",
		Short: "List save files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.openEmpty()
			if err != nil {
				return err
			}
			defer a.Close()

			saves, err := a.Store.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if g.JSON {
				var result []map[string]interface{}
				for _, s := range saves {
					result = append(result, map[string]interface{}{
						"name":     s.Name,
						"path":     s.Path,
						"size":     s.Size,
						"modified": s.Modified.UTC().Format(timeFormat),
						"active":   s.Name == a.SaveName,
					})
				}
				return outputJSON(out, result)
			}
			if len(saves) == 0 {
				fmt.Fprintln(out, "No saves yet.")
				return nil
			}
			for _, s := range saves {
				marker := " "
				if s.Name == a.SaveName {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s (%s)\n", marker, s.Name, s.Modified.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newExportCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the active save in the save file format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.open()
			if err != nil {
				return err
			}
			defer a.Close()
			return codec.Encode(cmd.OutOrStdout(), a.Engine.Snapshot())
		},
	}
}

func newImportCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the active save with a file in the save format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			st, err := codec.Decode(in)
			if err != nil {
				return err
			}

			a, err := g.openEmpty()
			if err != nil {
				return err
			}
			defer a.Close()

			a.Engine.Restore(st)
			if err := a.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d goals into %s\n", len(st.Goals), a.SaveName)
			return nil
		},
	}
}

func newHistoryCommand(g *globalOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently recorded events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.openEmpty()
			if err != nil {
				return err
			}
			defer a.Close()

			events, err := a.History(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if g.JSON {
				return outputJSON(out, events)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No events recorded yet.")
				return nil
			}
			for _, ev := range events {
				line := fmt.Sprintf("%s  +%d  %s (score %d)", ev.CreatedAt.Format("2006-01-02 15:04"), ev.Awarded, ev.Goal, ev.Score)
				if ev.Badge != "" {
					line += "  badge: " + ev.Badge
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of events to show")
	return cmd
}
