package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes"
)

func newAddCmd(g *globalFlags) *cobra.Command {
	var title, body string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new note",
		Long:  `Add appends a note to the store. The title must not already be in use.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := g.service(cmd)
			if err != nil {
				return err
			}
			defer closeRepository(svc)

			err = svc.Add(cmd.Context(), title, body)
			if errors.Is(err, notes.ErrDuplicateTitle) {
				return report(cmd.ErrOrStderr(), ExitDuplicate, "Note title taken!")
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "New note added!")
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "Note body")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("body")
	return cmd
}
