// Package classify joins county regions with education records and assigns
// each region a color bucket.
package classify

import (
	"github.com/sells-group/choropleth/internal/model"
)

// Index maps a FIPS code to its education record. When the source lists a
// code more than once the first record wins and later ones are counted as
// duplicates.
type Index struct {
	byFIPS     map[int]*model.Education
	duplicates []int
}

// NewIndex builds an Index from records in source order.
func NewIndex(records []model.Education) *Index {
	idx := &Index{byFIPS: make(map[int]*model.Education, len(records))}
	for i := range records {
		rec := &records[i]
		if _, ok := idx.byFIPS[rec.FIPS]; ok {
			idx.duplicates = append(idx.duplicates, rec.FIPS)
			continue
		}
		idx.byFIPS[rec.FIPS] = rec
	}
	return idx
}

// Lookup returns the first record listed for fips.
func (idx *Index) Lookup(fips int) (*model.Education, bool) {
	rec, ok := idx.byFIPS[fips]
	return rec, ok
}

// Len is the number of distinct codes.
func (idx *Index) Len() int {
	return len(idx.byFIPS)
}

// Duplicates returns the codes of ignored records, one entry per ignored
// record, in source order.
func (idx *Index) Duplicates() []int {
	return append([]int(nil), idx.duplicates...)
}
