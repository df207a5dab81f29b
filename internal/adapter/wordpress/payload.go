package wordpress

import (
	"fmt"
	"strings"

	"github.com/gulfwatch/red-tide-etl/internal/domain"
)

// StatusColor maps a status to the hex code rendered on the site.
var StatusColor = map[domain.Status]string{
	domain.StatusSafe:    "#28a745",
	domain.StatusCaution: "#ffc107",
	domain.StatusAvoid:   "#dc3545",
	domain.StatusNoData:  "#6c757d",
}

func statusColor(s domain.Status) string {
	if c, ok := StatusColor[s]; ok {
		return c
	}
	return StatusColor[domain.StatusNoData]
}

// postPayload is the wp/v2 create/update request body.
type postPayload struct {
	Title  string                 `json:"title"`
	Slug   string                 `json:"slug"`
	Status string                 `json:"status"`
	ACF    map[string]interface{} `json:"acf"`
	Meta   map[string]string      `json:"meta"`
}

// buildPayload assembles the post body for one status record. loc carries
// the optional locations-table row for beach posts; the zero value is
// fine for cities and regions. lastUpdated is the local-time stamp
// written into the ACF fields.
func buildPayload(rec domain.StatusRecord, loc domain.LocationInfo, lastUpdated string) postPayload {
	title, metaDesc := titleAndMeta(rec)

	acf := map[string]interface{}{
		"current_status":    string(rec.CurrentStatus),
		"status_color":      statusColor(rec.CurrentStatus),
		"last_updated":      lastUpdated,
		"url_slug":          rec.Slug,
		"region":            rec.Region,
		"state":             "FL",
		"featured_location": false,
	}

	switch rec.LocationType {
	case "beach":
		acf["city"] = rec.City
		acf["coordinates"] = coordinates(loc)
		acf["full_address"] = loc.Address
		acf["zip_code"] = loc.Zip
		acf["peak_count"] = rec.PeakCount
		acf["confidence_score"] = rec.ConfidenceScore
		acf["sample_date"] = rec.SampleDate
	case "city", "region":
		acf["peak_count"] = rec.PeakCount
		acf["avg_count"] = rec.AvgCount
		acf["confidence_score"] = rec.ConfidenceScore
		acf["sample_date"] = rec.SampleDate
		acf["beach_count"] = rec.BeachCount
		acf["beaches_safe"] = rec.BeachesSafe
		acf["beaches_caution"] = rec.BeachesCaution
		acf["beaches_avoid"] = rec.BeachesAvoid
		if rec.LocationType == "region" {
			acf["city_count"] = rec.CityCount
		}
	}

	return postPayload{
		Title:  title,
		Slug:   rec.Slug,
		Status: "publish",
		ACF:    acf,
		Meta: map[string]string{
			"_yoast_wpseo_metadesc": metaDesc,
		},
	}
}

func titleAndMeta(rec domain.StatusRecord) (title, metaDesc string) {
	name := rec.LocationName
	switch rec.LocationType {
	case "beach":
		title = fmt.Sprintf("%s Red Tide Status - Current Conditions & Updates", name)
		metaDesc = fmt.Sprintf("Current red tide conditions at %s. Real-time HAB monitoring data, safety information, and beach status updates.", name)
	case "city":
		title = fmt.Sprintf("%s Red Tide Status - All Beaches Current Conditions", name)
		metaDesc = fmt.Sprintf("Red tide conditions for all beaches in %s, FL. Current status, safety advisories, and detailed monitoring data.", name)
	default:
		title = fmt.Sprintf("%s Red Tide Status - Regional Overview & Beach Conditions", name)
		metaDesc = fmt.Sprintf("Comprehensive red tide monitoring for %s. Track conditions across all beaches and cities in the region.", name)
	}
	return title, metaDesc
}

// coordinates joins latitude and longitude as "lat, lon", dropping
// whichever side is missing.
func coordinates(loc domain.LocationInfo) string {
	return strings.Trim(loc.Latitude+", "+loc.Longitude, ", ")
}
