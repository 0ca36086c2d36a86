package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkframe/inkframe/plugin"
	"github.com/inkframe/inkframe/recording/backends/vector"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	config  string // configuration file
	data    string // combined data document; plugins from config when empty
	layout  string // layout name; config layout when empty
	backend string // drawing backend override
	format  string // image format override
	depth   int    // color depth override
	output  string // image path, "-" for stdout
	svg     string // optional SVG output path
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame to an image file",
		Long: `Render one frame of a layout. Plugin data comes from a combined data document
(--data, JSON or YAML mapping plugin names to results) or, without one, from the
plugin files named in the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "configuration file (YAML or TOML)")
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "data document (JSON or YAML)")
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", "", "layout to render")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "drawing backend: raster, vector")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "image format: png, bmp")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "color depth: 1 or 4")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "screen.png", `output image, "-" for stdout`)
	cmd.Flags().StringVar(&opts.svg, "svg", "", "also write an SVG rendition")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, stdout io.Writer, opts renderOpts) error {
	start := time.Now()

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.backend != "" {
		cfg.Device.Backend = opts.backend
	}
	if opts.format != "" {
		cfg.Device.Format = opts.format
	}
	if opts.depth != 0 {
		cfg.Device.ColorDepth = opts.depth
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	e, err := cfg.Engine()
	if err != nil {
		return err
	}

	var data map[string]*plugin.Result
	if opts.data != "" {
		data, err = plugin.LoadDocument(opts.data)
	} else {
		data, err = cfg.PluginManager().FetchAll(ctx)
	}
	if err != nil {
		return err
	}

	name := opts.layout
	if name == "" {
		name = e.CurrentLayout()
	}
	if !e.Registry().Has(name) {
		c.Logger.Warn("Unknown layout, rendering dashboard", "layout", name)
	}

	img, err := e.Render(data, name)
	if err != nil {
		return err
	}
	if opts.output == "-" {
		if _, err := stdout.Write(img); err != nil {
			return err
		}
	} else if err := os.WriteFile(opts.output, img, 0o644); err != nil { //nolint:gosec // output is world-readable by intent
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	if opts.svg != "" {
		if err := vector.SaveSVG(opts.svg, e.Compose(data, name), e.BackendOptions()); err != nil {
			return fmt.Errorf("write %s: %w", opts.svg, err)
		}
		c.Logger.Debug("Wrote SVG", "path", opts.svg)
	}

	c.Logger.Infof("Rendered %s (%d×%d, %d bytes) to %s (%s)",
		name, e.Width(), e.Height(), len(img), opts.output, time.Since(start).Round(time.Millisecond))
	return nil
}
