// Package export renders volume reports as CSV for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// Header is the fixed CSV header row
var Header = []string{"Keyword", "Search Volume", "Competition", "CPC", "Location"}

// WriteCSV renders a volume report as UTF-8 CSV with a header row.
// Exporting an empty report is ErrNoResults.
func WriteCSV(w io.Writer, report *models.VolumeReport) error {
	if report == nil || report.Empty() {
		return models.ErrNoResults
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, rec := range report.Results {
		row := []string{
			rec.Keyword,
			strconv.Itoa(rec.SearchVolume),
			rec.Competition,
			rec.CPC,
			rec.LocationName,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
