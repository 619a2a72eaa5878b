package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/choropleth/internal/export"
)

var (
	classifyFormat  string
	classifyOut     string
	classifySources sourceOverrides
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Fetch, join and classify counties, then export the result",
	Long:  "Writes one record per county with its FIPS code, resolved education value, color bucket and swatch. Formats: geojson, json, yaml, xlsx, shp (shp needs --out).",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		name := classifyFormat
		if name == "" {
			name = cfg.Export.Format
		}
		format, err := export.ParseFormat(name)
		if err != nil {
			return err
		}

		p, err := initPipeline(cfg, classifySources)
		if err != nil {
			return err
		}

		res, err := p.Run(ctx)
		if err != nil {
			return err
		}

		out := classifyOut
		if out == "" {
			out = cfg.Export.Output
		}

		switch {
		case !format.Streamable():
			if out == "-" {
				return eris.Errorf("classify: format %s needs --out", format)
			}
			if err := export.WriteShapefile(out, res.Regions); err != nil {
				return err
			}
		case out == "-":
			return export.Write(cmd.OutOrStdout(), format, res.Regions)
		default:
			if err := writeFile(out, func(f *os.File) error {
				return export.Write(f, format, res.Regions)
			}); err != nil {
				return err
			}
		}

		zap.L().Info("export written",
			zap.String("path", out),
			zap.String("format", string(format)),
			zap.Int("counties", len(res.Regions)),
		)
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyFormat, "format", "f", "", "geojson, json, yaml, xlsx or shp (default from config)")
	classifyCmd.Flags().StringVarP(&classifyOut, "out", "o", "", "output path, - for stdout (default from config)")
	classifyCmd.Flags().StringVar(&classifySources.topologyURL, "topology-url", "", "override sources.topology_url")
	classifyCmd.Flags().StringVar(&classifySources.educationURL, "education-url", "", "override sources.education_url")
	rootCmd.AddCommand(classifyCmd)
}
