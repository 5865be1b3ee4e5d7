// Package cmd wires the command line: configuration, logging and the hosts.
package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/olivierh59500/nexus-particles/internal/animator"
	"github.com/olivierh59500/nexus-particles/internal/config"
	"github.com/olivierh59500/nexus-particles/internal/observability"
)

// app carries state shared by subcommands after PersistentPreRunE
type app struct {
	cfgFile string
	seed    int64
	cfg     *config.Config
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "nexus-particles",
		Short:         "Ambient particle field with pointer-reactive links.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().Int64Var(&a.seed, "seed", 0, "random seed (0 picks one from the clock)")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	win := newWindowCmd(a)
	root.RunE = win.RunE
	root.AddCommand(win, newTermCmd(a), newRenderCmd(a), newVersionCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if observability.Initialized() {
			observability.GetLogger().Error("command failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		observability.Sync()
		os.Exit(1)
	}
	observability.Sync()
}

func (a *app) initialize(cmd *cobra.Command) error {
	v := config.NewViper(a.cfgFile)
	if err := v.BindPFlag("seed", cmd.Flags().Lookup("seed")); err != nil {
		return fmt.Errorf("failed to bind seed flag: %w", err)
	}

	cfg, err := config.Load(v)
	if err != nil {
		observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "nexus-particles"})
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	a.cfg = cfg

	observability.InitializeLogger(cfg.Logger)
	observability.GetLogger().Debug("configuration loaded",
		zap.String("version", Version),
		zap.Int64("seed", cfg.Seed),
		zap.Int("particles", cfg.Field.Count))
	return nil
}

// animatorOptions returns the options every host passes to its animator
func (a *app) animatorOptions() []animator.Option {
	return []animator.Option{
		animator.WithConfig(a.cfg.Field),
		animator.WithRand(rand.New(rand.NewSource(a.cfg.Seed))),
	}
}
