package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olivierh59500/nexus-particles/internal/observability"
	"github.com/olivierh59500/nexus-particles/internal/render/term"
)

func newTermCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "term",
		Short: "Animate the field in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := term.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to open terminal: %w", err)
			}
			defer screen.Fini()
			return term.Run(cmd.Context(), screen, a.cfg.Terminal, a.cfg.Seed, observability.GetLogger(), a.animatorOptions()...)
		},
	}
}
