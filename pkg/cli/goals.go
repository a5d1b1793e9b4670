package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/quest/pkg/goal"
)

func newAddCommand(g *globalOptions) *cobra.Command {
	var opts struct {
		Description string
		Points      int
		Required    int
		Bonus       int
	}

	cmd := &cobra.Command{
		Use:   "add <simple|eternal|checklist> <title>",
		Short: "Create a goal",
		Long: `Create a goal.

Examples:
  # A one-time goal
  quest add simple "Run Marathon" -d "Finish a marathon" -p 1000

  # A goal that never completes
  quest add eternal "Read Scriptures" -p 100

  # A goal completed after 3 events, with a 200 point bonus
  quest add checklist "Attend Temple" -p 50 -n 3 -b 200`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := goal.ParseKind(args[0])
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")

			a, err := g.open()
			if err != nil {
				return err
			}
			defer a.Close()

			idx, err := a.AddGoal(kind, title, opts.Description, opts.Points, goal.Options{
				Required: opts.Required,
				Bonus:    opts.Bonus,
			})
			if err != nil {
				return err
			}
			if err := a.Save(); err != nil {
				return err
			}

			entry := a.Engine.Goals()[idx]
			if g.JSON {
				return outputJSON(cmd.OutOrStdout(), entryToMap(entry))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d. %s %s\n", idx+1, entry.Status.Mark(), entry.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "goal description")
	cmd.Flags().IntVarP(&opts.Points, "points", "p", 0, "points awarded per event")
	cmd.Flags().IntVarP(&opts.Required, "required", "n", 0, "events needed to complete a checklist goal")
	cmd.Flags().IntVarP(&opts.Bonus, "bonus", "b", 0, "bonus points when a checklist goal completes")
	return cmd
}

func newListCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.open()
			if err != nil {
				return err
			}
			defer a.Close()

			entries := a.Engine.Goals()
			if g.JSON {
				return outputJSON(cmd.OutOrStdout(), entriesToMap(entries))
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No goals found.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s %s - %s\n", e.Index+1, e.Status.Mark(), e.Title, e.Description)
			}
			return nil
		},
	}
}

func newRecordCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "record <number>",
		Short: "Record an event on a goal",
		Long: `Record an event on a goal, using the number shown by "quest list".

Recording a goal that is already complete awards nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid goal number %q", args[0])
			}

			a, err := g.open()
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Record(n - 1)
			if err != nil {
				return err
			}
			if res.Awarded > 0 {
				if err := a.Save(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if g.JSON {
				return outputJSON(out, resultToMap(res))
			}
			if res.Awarded == 0 {
				fmt.Fprintln(out, "This goal was already complete or no points awarded.")
				return nil
			}
			fmt.Fprintf(out, "You gained %d points! Total score: %d\n", res.Awarded, res.Score)
			if res.Badge != "" {
				fmt.Fprintf(out, "Badge earned: %s\n", res.Badge)
			}
			if res.Level > 0 {
				fmt.Fprintf(out, "You are level %d! Keep going!\n", res.Level)
			}
			return nil
		},
	}
}

func newScoreCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Show score, level and badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.open()
			if err != nil {
				return err
			}
			defer a.Close()

			score, level, badges := a.Engine.Score(), a.Engine.Level(), a.Engine.Badges()
			out := cmd.OutOrStdout()
			if g.JSON {
				if badges == nil {
					badges = []string{}
				}
				return outputJSON(out, map[string]interface{}{
					"score":  score,
					"level":  level,
					"badges": badges,
				})
			}

			fmt.Fprintf(out, "Your score: %d (level %d)\n", score, level)
			if len(badges) == 0 {
				fmt.Fprintln(out, "No badges yet.")
				return nil
			}
			fmt.Fprintln(out, "Badges earned:")
			for _, b := range badges {
				fmt.Fprintf(out, " - %s\n", b)
			}
			return nil
		},
	}
}

func newResetCommand(g *globalOptions) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all goals, badges and score in the active save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.openEmpty()
			if err != nil {
				return err
			}
			defer a.Close()

			a.Engine.Reset()
			if seed {
				a.Engine.Seed()
			}
			if err := a.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", a.SaveName)
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "add the example goals after clearing")
	return cmd
}
