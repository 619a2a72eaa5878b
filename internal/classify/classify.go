package classify

import (
	"go.uber.org/zap"

	"github.com/sells-group/choropleth/internal/model"
	"github.com/sells-group/choropleth/internal/scale"
)

// Classifier resolves each region's education value and bucket.
type Classifier struct {
	scale *scale.Threshold
}

// Stats summarizes a Classify call.
type Stats struct {
	Regions    int
	Matched    int
	Unmatched  int
	Duplicates int
	// Buckets counts regions per swatch index.
	Buckets []int
}

// NewClassifier creates a Classifier using the given threshold scale.
func NewClassifier(s *scale.Threshold) *Classifier {
	return &Classifier{scale: s}
}

// Scale returns the classifier's threshold scale.
func (c *Classifier) Scale() *scale.Threshold {
	return c.scale
}

// Classify produces exactly one ClassifiedRegion per region, in order.
// Regions without an education record resolve to 0; that is logged and is
// not an error.
func (c *Classifier) Classify(regions []model.Region, idx *Index) []model.ClassifiedRegion {
	out, _ := c.ClassifyWithStats(regions, idx)
	return out
}

// ClassifyWithStats is Classify plus a summary of matches and bucket sizes.
func (c *Classifier) ClassifyWithStats(regions []model.Region, idx *Index) ([]model.ClassifiedRegion, Stats) {
	log := zap.L().With(zap.String("component", "classify"))

	stats := Stats{
		Regions:    len(regions),
		Duplicates: len(idx.duplicates),
		Buckets:    make([]int, c.scale.Len()),
	}
	if stats.Duplicates > 0 {
		log.Warn("duplicate fips codes in education data, first record wins",
			zap.Int("duplicates", stats.Duplicates),
			zap.Ints("fips", idx.Duplicates()),
		)
	}

	out := make([]model.ClassifiedRegion, len(regions))
	for i, r := range regions {
		cr := model.ClassifiedRegion{Region: r}
		if rec, ok := idx.Lookup(r.ID); ok {
			cr.Value = rec.BachelorsOrHigher
			cr.Record = rec
			cr.Matched = true
			stats.Matched++
		} else {
			log.Warn("could not find education data for county", zap.Int("fips", r.ID))
			stats.Unmatched++
		}
		cr.Bucket = c.scale.Bucket(cr.Value)
		cr.Color = c.scale.Color(cr.Value)
		stats.Buckets[cr.Bucket]++
		out[i] = cr
	}
	return out, stats
}
