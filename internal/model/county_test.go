package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifiedRegionLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		region ClassifiedRegion
		want   string
	}{
		{
			name: "matched",
			region: ClassifiedRegion{
				Region:  Region{ID: 1001},
				Value:   24.4,
				Matched: true,
				Record:  &Education{FIPS: 1001, BachelorsOrHigher: 24.4, AreaName: "Autauga County", State: "AL"},
			},
			want: "Autauga County, AL: 24.4%",
		},
		{
			name: "whole number",
			region: ClassifiedRegion{
				Record: &Education{FIPS: 1003, BachelorsOrHigher: 40, AreaName: "Baldwin County", State: "AL"},
			},
			want: "Baldwin County, AL: 40%",
		},
		{
			name:   "unmatched",
			region: ClassifiedRegion{Region: Region{ID: 2013}},
			want:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.region.Label())
		})
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", FormatValue(0))
	assert.Equal(t, "12.5", FormatValue(12.5))
	assert.Equal(t, "40", FormatValue(40))
}
