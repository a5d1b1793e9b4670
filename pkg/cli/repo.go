package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/quest/pkg/config"
	gsync "github.com/stefanpenner/quest/pkg/sync"
)

func newInitCommand(g *globalOptions) *cobra.Command {
	var remote string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Version the data directory with git",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.openEmpty()
			if err != nil {
				return err
			}
			defer a.Close()

			if remote == "" {
				remote = a.Config.Remote
			}
			if err := gsync.InitRepo(a.DataDir, remote); err != nil {
				return err
			}
			if remote != "" && remote != a.Config.Remote {
				a.Config.Remote = remote
				if err := config.Save(a.DataDir, a.Config); err != nil {
					return err
				}
			}
			if _, err := gsync.Commit(a.DataDir, "initialize quest data"); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Initialized git repository in %s\n", a.DataDir)
			if remote != "" {
				fmt.Fprintf(out, "Remote set to: %s\n", remote)
			} else {
				fmt.Fprintln(out, "No remote specified. Use --remote <url> to set one.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "git remote URL for sync")
	return cmd
}

func newSyncCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Commit, pull and push the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.openEmpty()
			if err != nil {
				return err
			}
			defer a.Close()
			return gsync.SyncRepo(a.DataDir, cmd.OutOrStdout())
		},
	}
}
