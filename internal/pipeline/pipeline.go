// Package pipeline wires loading, joining and classification into a single
// run that produces the data the map is drawn from.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/choropleth/internal/classify"
	"github.com/sells-group/choropleth/internal/fetcher"
	"github.com/sells-group/choropleth/internal/loader"
	"github.com/sells-group/choropleth/internal/model"
	"github.com/sells-group/choropleth/internal/scale"
	"github.com/sells-group/choropleth/internal/topology"
)

// Options configures a Pipeline.
type Options struct {
	Sources        loader.Sources
	CountiesObject string
	StatesObject   string
	// Timeout bounds the load phase; zero means no deadline.
	Timeout time.Duration
}

// Pipeline loads both datasets, then joins and classifies them.
type Pipeline struct {
	fetcher    fetcher.Fetcher
	classifier *classify.Classifier
	opts       Options
}

// Result is the output of a successful Run.
type Result struct {
	Regions []model.ClassifiedRegion
	States  *geom.MultiLineString
	Scale   *scale.Threshold
	Stats   classify.Stats
}

// New creates a Pipeline.
func New(f fetcher.Fetcher, c *classify.Classifier, opts Options) *Pipeline {
	if opts.CountiesObject == "" {
		opts.CountiesObject = "counties"
	}
	if opts.StatesObject == "" {
		opts.StatesObject = "states"
	}
	return &Pipeline{fetcher: f, classifier: c, opts: opts}
}

// Run loads, joins and classifies. Classification only starts after both
// datasets are resident.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	log := zap.L().With(zap.String("component", "pipeline"))

	loadCtx := ctx
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	ds, err := loader.Load(loadCtx, p.fetcher, p.opts.Sources)
	if err != nil {
		return nil, err
	}
	log.Info("datasets loaded",
		zap.Int("education_records", len(ds.Education)),
		zap.Duration("elapsed", time.Since(start)),
	)

	regions, err := ds.Topology.Feature(p.opts.CountiesObject)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: extract regions")
	}

	var states *geom.MultiLineString
	if _, ok := ds.Topology.Objects[p.opts.StatesObject]; ok {
		states, err = ds.Topology.Mesh(p.opts.StatesObject, topology.Interior)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: state mesh")
		}
	} else {
		log.Warn("topology has no state object, drawing without borders",
			zap.String("object", p.opts.StatesObject))
	}

	idx := classify.NewIndex(ds.Education)
	classified, stats := p.classifier.ClassifyWithStats(regions, idx)

	log.Info("regions classified",
		zap.Int("regions", stats.Regions),
		zap.Int("matched", stats.Matched),
		zap.Int("unmatched", stats.Unmatched),
		zap.Int("duplicates", stats.Duplicates),
		zap.Ints("buckets", stats.Buckets),
	)

	return &Result{
		Regions: classified,
		States:  states,
		Scale:   p.classifier.Scale(),
		Stats:   stats,
	}, nil
}
