package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/pkg/adapters/lifecycle"
	"github.com/aretw0/notes/pkg/core"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	var types []string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print changes to the store as they happen",
		Long: `Watch prints one line per change to the store file (CREATE, MODIFY or DELETE)
until interrupted. Changes made by other processes are reported too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var only []core.EventType
			for _, t := range types {
				et := core.EventType(strings.ToUpper(t))
				switch et {
				case core.EventCreate, core.EventModify, core.EventDelete:
					only = append(only, et)
				default:
					return fmt.Errorf("unknown event type %q (want create, modify or delete)", t)
				}
			}

			svc, _, err := g.service(cmd)
			if err != nil {
				return err
			}
			defer closeRepository(svc)

			ctx := cmd.Context()
			events, err := svc.Watch(ctx)
			if err != nil {
				return err
			}

			return printEvents(ctx, cmd.OutOrStdout(), events, only)
		},
	}

	cmd.Flags().StringSliceVar(&types, "type", nil, "Only report these event types (create, modify, delete)")
	return cmd
}

// printEvents writes one "TYPE path" line per event until events closes or
// ctx is done. An empty only reports every type.
func printEvents(ctx context.Context, w io.Writer, events <-chan core.Event, only []core.EventType) error {
	src := lifecycle.NewSource(events, only...)
	if err := src.Start(ctx); err != nil {
		return err
	}
	for e := range src.Events() {
		if ev, ok := e.(core.Event); ok {
			fmt.Fprintln(w, ev)
		}
	}
	return nil
}
