package main

import (
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/sells-group/choropleth/internal/classify"
	"github.com/sells-group/choropleth/internal/config"
	"github.com/sells-group/choropleth/internal/fetcher"
	"github.com/sells-group/choropleth/internal/loader"
	"github.com/sells-group/choropleth/internal/pipeline"
	"github.com/sells-group/choropleth/internal/scale"
)

// sourceOverrides holds the --topology-url / --education-url flag values
// shared by render and classify.
type sourceOverrides struct {
	topologyURL  string
	educationURL string
}

func (o sourceOverrides) apply(src config.SourcesConfig) loader.Sources {
	out := loader.Sources{TopologyURL: src.TopologyURL, EducationURL: src.EducationURL}
	if o.topologyURL != "" {
		out.TopologyURL = o.topologyURL
	}
	if o.educationURL != "" {
		out.EducationURL = o.educationURL
	}
	return out
}

// initPipeline builds the fetcher, classifier and pipeline from config.
func initPipeline(c *config.Config, o sourceOverrides) (*pipeline.Pipeline, error) {
	s, err := scale.NewEducation(c.Scale.Min, c.Scale.Max, c.Scale.Steps, c.Scale.Scheme)
	if err != nil {
		return nil, err
	}

	sources := o.apply(c.Sources)

	return pipeline.New(
		fetcher.NewHTTPFetcher(fetcherOptions(c.Fetch, sources)),
		classify.NewClassifier(s),
		pipeline.Options{
			Sources:        sources,
			CountiesObject: c.Sources.CountiesObject,
			StatesObject:   c.Sources.StatesObject,
			Timeout:        time.Duration(c.Fetch.TimeoutSecs) * time.Second,
		},
	), nil
}

// fetcherOptions rate limits every source host, plus the known dataset
// hosts, at fetch.rate_per_sec.
func fetcherOptions(fc config.FetchConfig, sources loader.Sources) fetcher.HTTPOptions {
	opts := fetcher.HTTPOptions{
		UserAgent:   fc.UserAgent,
		Timeout:     time.Duration(fc.TimeoutSecs) * time.Second,
		MaxAttempts: fc.MaxAttempts,
	}
	if fc.RatePerSec <= 0 {
		return opts
	}

	limit := rate.Limit(fc.RatePerSec)
	burst := max(1, int(fc.RatePerSec))

	opts.RateLimiters = fetcher.DefaultRateLimiters()
	for host := range opts.RateLimiters {
		opts.RateLimiters[host] = rate.NewLimiter(limit, burst)
	}
	for _, raw := range []string{sources.TopologyURL, sources.EducationURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			continue
		}
		if _, ok := opts.RateLimiters[u.Host]; !ok {
			opts.RateLimiters[u.Host] = rate.NewLimiter(limit, burst)
		}
	}
	return opts
}
