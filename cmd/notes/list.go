package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/notes"
)

func newListCmd(g *globalFlags) *cobra.Command {
	var (
		listJSON bool
		match    string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all note titles",
		Long: `List prints every note title in the order the notes were added.
--match keeps only titles matching a glob (e.g. "Shop*", "{todo,idea}-*").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if match != "" && !doublestar.ValidatePattern(match) {
				return fmt.Errorf("invalid --match pattern %q", match)
			}

			svc, _, err := g.service(cmd)
			if err != nil {
				return err
			}
			defer closeRepository(svc)

			all, err := svc.Notes(cmd.Context())
			if err != nil {
				return err
			}

			filtered := notes.Collection{}
			for _, n := range all {
				if match != "" {
					ok, err := doublestar.Match(match, n.Title)
					if err != nil {
						return fmt.Errorf("matching %q: %w", match, err)
					}
					if !ok {
						continue
					}
				}
				filtered = append(filtered, n)
			}

			if listJSON {
				return outputJSON(cmd.OutOrStdout(), filtered)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Your Notes")
			for _, title := range filtered.Titles() {
				fmt.Fprintln(out, title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output notes (with bodies) in JSON format")
	cmd.Flags().StringVar(&match, "match", "", "Only list titles matching this glob")
	return cmd
}
