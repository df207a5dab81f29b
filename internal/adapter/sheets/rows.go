package sheets

import (
	"strconv"
	"strings"

	"github.com/gulfwatch/red-tide-etl/internal/domain"
)

// StatusHeaders is the beach_status tab header row, in column order.
// Downstream consumers address columns by these names, so order changes
// are breaking.
var StatusHeaders = []string{
	"location_name",
	"location_type",
	"date",
	"current_status",
	"peak_count",
	"avg_count",
	"confidence_score",
	"sample_date",
	"last_updated",
	"region",
	"city",
	"slug",
	"beach_count",
	"city_count",
	"beaches_safe",
	"beaches_caution",
	"beaches_avoid",
}

// statusRows converts sink records into sheet values, header row first.
func statusRows(records []domain.StatusRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records)+1)

	header := make([]interface{}, len(StatusHeaders))
	for i, h := range StatusHeaders {
		header[i] = h
	}
	rows = append(rows, header)

	for _, r := range records {
		rows = append(rows, []interface{}{
			r.LocationName,
			r.LocationType,
			r.Date,
			string(r.CurrentStatus),
			r.PeakCount,
			r.AvgCount,
			r.ConfidenceScore,
			r.SampleDate,
			r.LastUpdated,
			r.Region,
			r.City,
			r.Slug,
			r.BeachCount,
			r.CityCount,
			r.BeachesSafe,
			r.BeachesCaution,
			r.BeachesAvoid,
		})
	}
	return rows
}

// parseStatusRecord reads one beach_status data row back into a record.
// Numeric cells round-trip as strings when read with unformatted values,
// so each is parsed leniently with a zero fallback.
func parseStatusRecord(row []interface{}) domain.StatusRecord {
	return domain.StatusRecord{
		LocationName:    cellString(row, 0),
		LocationType:    cellString(row, 1),
		Date:            cellString(row, 2),
		CurrentStatus:   domain.Status(cellString(row, 3)),
		PeakCount:       cellInt(row, 4),
		AvgCount:        cellInt(row, 5),
		ConfidenceScore: cellInt(row, 6),
		SampleDate:      cellString(row, 7),
		LastUpdated:     cellString(row, 8),
		Region:          cellString(row, 9),
		City:            cellString(row, 10),
		Slug:            cellString(row, 11),
		BeachCount:      cellInt(row, 12),
		CityCount:       cellInt(row, 13),
		BeachesSafe:     cellInt(row, 14),
		BeachesCaution:  cellInt(row, 15),
		BeachesAvoid:    cellInt(row, 16),
	}
}

// parseLocation reads one locations data row. Columns: beach, region,
// city, latitude, longitude, address, zip.
func parseLocation(row []interface{}) domain.LocationInfo {
	return domain.LocationInfo{
		Beach:     cellString(row, 0),
		Region:    cellString(row, 1),
		City:      cellString(row, 2),
		Latitude:  cellString(row, 3),
		Longitude: cellString(row, 4),
		Address:   cellString(row, 5),
		Zip:       cellString(row, 6),
	}
}

// parseSiteMapping reads one sample_mapping data row. Columns: beach,
// sample_site_id, sample_location, sample_distance. Missing or
// unparseable distances fall back to the far default.
func parseSiteMapping(row []interface{}) domain.SamplingSite {
	return domain.SamplingSite{
		Beach:          cellString(row, 0),
		SiteID:         cellString(row, 1),
		SampleLocation: cellString(row, 2),
		DistanceMiles:  cellFloat(row, 3, domain.DefaultSiteDistance),
	}
}

func cellString(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	s, ok := row[i].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func cellInt(row []interface{}, i int) int {
	s := cellString(row, i)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func cellFloat(row []interface{}, i int, fallback float64) float64 {
	s := cellString(row, i)
	if s == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}
