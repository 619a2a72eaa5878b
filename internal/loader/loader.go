// Package loader retrieves the county topology and education datasets.
package loader

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/choropleth/internal/fetcher"
	"github.com/sells-group/choropleth/internal/model"
	"github.com/sells-group/choropleth/internal/topology"
)

// Sources names the two datasets to retrieve.
type Sources struct {
	TopologyURL  string
	EducationURL string
}

// Dataset is the result of a successful Load.
type Dataset struct {
	Topology  *topology.Topology
	Education []model.Education
}

// Load fetches both datasets concurrently. It succeeds only if both
// retrievals succeed; on failure the other retrieval is cancelled and no
// partial result is returned.
func Load(ctx context.Context, f fetcher.Fetcher, src Sources) (*Dataset, error) {
	log := zap.L().With(zap.String("component", "loader"))

	var (
		topo *topology.Topology
		edu  []model.Education
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := fetchTopology(gctx, f, src.TopologyURL)
		if err != nil {
			return eris.Wrapf(err, "loader: fetch topology %s", src.TopologyURL)
		}
		topo = t
		log.Debug("topology loaded",
			zap.Int("arcs", len(t.Arcs)),
			zap.Strings("objects", t.ObjectNames()),
		)
		return nil
	})

	g.Go(func() error {
		records, err := fetchEducation(gctx, f, src.EducationURL)
		if err != nil {
			return eris.Wrapf(err, "loader: fetch education %s", src.EducationURL)
		}
		edu = records
		log.Debug("education loaded", zap.Int("records", len(records)))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dataset{Topology: topo, Education: edu}, nil
}

func fetchTopology(ctx context.Context, f fetcher.Fetcher, url string) (*topology.Topology, error) {
	body, err := f.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	topo, err := fetcher.DecodeJSONObject[topology.Topology](body)
	if err != nil {
		return nil, err
	}
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	return topo, nil
}

func fetchEducation(ctx context.Context, f fetcher.Fetcher, url string) ([]model.Education, error) {
	body, err := f.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	return fetcher.CollectJSONArray[model.Education](ctx, body)
}
