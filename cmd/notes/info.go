package main

import (
	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

// infoResponse is the JSON document printed by `notes info`.
type infoResponse struct {
	Config     string `json:"config,omitempty"`
	Store      string `json:"store"`
	Adapter    string `json:"adapter"`
	Service    any    `json:"service"`
	Repository any    `json:"repository,omitempty"`
}

func newInfoCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the resolved store configuration and state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := g.service(cmd)
			if err != nil {
				return err
			}
			defer closeRepository(svc)

			// Load once so the state reflects what is on disk.
			if _, err := svc.List(cmd.Context()); err != nil {
				return err
			}

			resp := infoResponse{
				Config:  cfg.Source,
				Store:   cfg.StorePath(),
				Adapter: "unknown",
				Service: svc.State(),
			}
			repo := svc.Repository()
			if comp, ok := repo.(introspection.Component); ok {
				resp.Adapter = comp.ComponentType()
			}
			if in, ok := repo.(introspection.Introspectable); ok {
				resp.Repository = in.State()
			}
			return outputJSON(cmd.OutOrStdout(), resp)
		},
	}
}
