package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inkframe/inkframe/config"
	"github.com/inkframe/inkframe/internal/refresh"
	"github.com/inkframe/inkframe/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the refresh loop and serve frames over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (YAML or TOML)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")

	return cmd
}

// refreshOptions converts the refresh section into orchestrator options.
func refreshOptions(cfg *config.Config) refresh.Options {
	return refresh.Options{
		Interval: cfg.Refresh.Interval.Std(),
		Layout:   cfg.Layout.Current,
		Rotation: refresh.Rotation{
			Enabled:  cfg.Refresh.Rotation.Enabled,
			Interval: cfg.Refresh.Rotation.Interval.Std(),
			Layouts:  cfg.Refresh.Rotation.Layouts,
		},
	}
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config) error {
	e, err := cfg.Engine()
	if err != nil {
		return err
	}
	plugins := cfg.PluginManager()
	rm := refresh.New(plugins, e, refreshOptions(cfg))
	srv := server.New(rm, plugins, e)

	c.Logger.Info("Starting inkframe",
		"addr", cfg.Server.Addr,
		"size", [2]int{e.Width(), e.Height()},
		"backend", e.Backend(),
		"plugins", plugins.Names(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := rm.Run(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return srv.ListenAndServe(gctx, cfg.Server.Addr)
	})
	return g.Wait()
}
