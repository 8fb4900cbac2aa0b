package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes"
)

func newReadCmd(g *globalFlags) *cobra.Command {
	var (
		title    string
		readJSON bool
	)

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read a note",
		Long:  `Read prints the title and body of a note. Use --json for a JSON object.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := g.service(cmd)
			if err != nil {
				return err
			}
			defer closeRepository(svc)

			note, err := svc.Read(cmd.Context(), title)
			if errors.Is(err, notes.ErrNotFound) {
				return report(cmd.ErrOrStderr(), ExitNotFound, "Note not found!")
			}
			if err != nil {
				return err
			}

			if readJSON {
				return outputJSON(cmd.OutOrStdout(), note)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, note.Title)
			fmt.Fprintln(out, note.Body)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
	cmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
	cmd.MarkFlagRequired("title")
	return cmd
}
