package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/choropleth/internal/config"
	"github.com/sells-group/choropleth/internal/render"
)

var (
	renderOut     string
	renderSources sourceOverrides
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch both datasets and write the HTML choropleth",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, err := initPipeline(cfg, renderSources)
		if err != nil {
			return err
		}

		res, err := p.Run(ctx)
		if err != nil {
			return err
		}

		out := renderOut
		if out == "" {
			out = cfg.Render.Output
		}

		r := render.New(renderOptions(cfg.Render, cfg.Scale))
		if err := writeFile(out, func(f *os.File) error {
			return r.Render(f, render.Map{Regions: res.Regions, States: res.States, Scale: res.Scale})
		}); err != nil {
			return err
		}

		zap.L().Info("map written",
			zap.String("path", out),
			zap.Int("counties", len(res.Regions)),
		)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output HTML path (default from config)")
	renderCmd.Flags().StringVar(&renderSources.topologyURL, "topology-url", "", "override sources.topology_url")
	renderCmd.Flags().StringVar(&renderSources.educationURL, "education-url", "", "override sources.education_url")
	rootCmd.AddCommand(renderCmd)
}

func renderOptions(rc config.RenderConfig, sc config.ScaleConfig) render.Options {
	opts := render.DefaultOptions()
	opts.Width = rc.Width
	opts.Height = rc.Height
	opts.Title = rc.Title
	opts.Description = rc.Description
	opts.Caption = rc.Caption
	opts.LegendX0 = rc.LegendX0
	opts.LegendX1 = rc.LegendX1
	opts.LegendY = rc.LegendY
	opts.StateColor = rc.StateColor
	opts.DomainMin = sc.Min
	opts.DomainMax = sc.Max
	return opts
}

// writeFile writes through a temp file in the target directory and renames
// it into place.
func writeFile(path string, write func(f *os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "create output dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return eris.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "rename to %s", path)
	}
	return nil
}
