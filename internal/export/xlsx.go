package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/choropleth/internal/model"
)

var xlsxHeader = []string{"fips", "education", "bucket", "color", "matched", "area_name", "state"}

func writeXLSX(w io.Writer, regions []model.ClassifiedRegion) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("counties")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range xlsxHeader {
		header.AddCell().SetString(h)
	}

	for _, row := range Rows(regions) {
		r := sheet.AddRow()
		r.AddCell().SetInt(row.FIPS)
		r.AddCell().SetFloat(row.Education)
		r.AddCell().SetInt(row.Bucket)
		r.AddCell().SetString(row.Color)
		r.AddCell().SetBool(row.Matched)
		r.AddCell().SetString(row.AreaName)
		r.AddCell().SetString(row.State)
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write workbook")
	}
	return nil
}
