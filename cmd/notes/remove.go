package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes"
)

func newRemoveCmd(g *globalFlags) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:     "remove",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a note",
		Long:    `Remove deletes the note with the given title. If a hand-edited store holds several notes with that title, all of them are removed.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := g.service(cmd)
			if err != nil {
				return err
			}
			defer closeRepository(svc)

			removed, err := svc.Remove(cmd.Context(), title)
			if errors.Is(err, notes.ErrNotFound) {
				return report(cmd.ErrOrStderr(), ExitNotFound, "No note found!")
			}
			if err != nil {
				return err
			}

			if removed > 1 {
				slog.Warn("removed several notes sharing one title", "title", title, "count", removed)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Note removed!")
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
	cmd.MarkFlagRequired("title")
	return cmd
}
