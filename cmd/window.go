package cmd

import (
	"github.com/spf13/cobra"

	"github.com/olivierh59500/nexus-particles/internal/observability"
	"github.com/olivierh59500/nexus-particles/internal/render/window"
)

func newWindowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Animate the field in a desktop window (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return window.Run(a.cfg.Window, a.cfg.Seed, observability.GetLogger(), a.animatorOptions()...)
		},
	}
}
