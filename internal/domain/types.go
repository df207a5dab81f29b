package domain

import "time"

// Status is the normalized safety status derived from sample abundance.
type Status string

const (
	StatusSafe    Status = "safe"
	StatusCaution Status = "caution"
	StatusAvoid   Status = "avoid"
	StatusNoData  Status = "no_data"
)

// Score maps a status to its numeric severity used in weighted averaging.
// no_data scores zero so unmatched categories dilute rather than alarm.
func (s Status) Score() int {
	switch s {
	case StatusCaution:
		return 1
	case StatusAvoid:
		return 2
	default:
		return 0
	}
}

// DefaultSiteDistance is assumed when a mapping row has no usable
// sample_distance value. Effectively "far": the lowest distance weight.
const DefaultSiteDistance = 99

// SamplingSite is one monitored FWC coordinate tied to one beach, loaded from
// the sample_mapping configuration table. Immutable during a run.
type SamplingSite struct {
	Beach          string  // beach name, foreign key into the locations table
	SiteID         string  // FWC HAB_ID; not guaranteed unique across providers
	SampleLocation string  // free-text label, fallback match key
	DistanceMiles  float64 // site to beach representative point, straight line
}

// RawSample is one reading delivered by the FWC feed. Read-only per run.
type RawSample struct {
	SiteID     string
	Location   string
	Abundance  string
	SampleTime time.Time // zero when the feed omitted the timestamp
}

// SiteReading is the chosen sample for one site after classification and
// weighting.
type SiteReading struct {
	CellCount  int
	Status     Status
	Weight     float64 // distance weight × age weight
	SampleTime time.Time
}

// LocationInfo is one row of the locations configuration table.
type LocationInfo struct {
	Beach     string
	Region    string
	City      string
	Latitude  string
	Longitude string
	Address   string
	Zip       string
}

// BeachStatus is the derived per-beach result.
type BeachStatus struct {
	LocationName    string `json:"location_name"`
	LocationType    string `json:"location_type"` // always "beach"
	CurrentStatus   Status `json:"current_status"`
	PeakCount       int    `json:"peak_count"`
	ConfidenceScore int    `json:"confidence_score"` // 0-100
	SampleDate      string `json:"sample_date"`      // YYYY-MM-DD, "" when no data
	Region          string `json:"region"`
	City            string `json:"city"`
	Slug            string `json:"slug"`
}

// CityStatus aggregates the beaches of one city.
type CityStatus struct {
	LocationName    string `json:"location_name"`
	LocationType    string `json:"location_type"` // always "city"
	CurrentStatus   Status `json:"current_status"`
	PeakCount       int    `json:"peak_count"`
	AvgCount        int    `json:"avg_count"`
	ConfidenceScore int    `json:"confidence_score"`
	SampleDate      string `json:"sample_date"`
	BeachCount      int    `json:"beach_count"`
	BeachesSafe     int    `json:"beaches_safe"`
	BeachesCaution  int    `json:"beaches_caution"`
	BeachesAvoid    int    `json:"beaches_avoid"`
	Region          string `json:"region"`
	Slug            string `json:"slug"`
}

// RegionStatus aggregates the beaches of one region.
type RegionStatus struct {
	LocationName    string `json:"location_name"`
	LocationType    string `json:"location_type"` // always "region"
	CurrentStatus   Status `json:"current_status"`
	PeakCount       int    `json:"peak_count"`
	AvgCount        int    `json:"avg_count"`
	ConfidenceScore int    `json:"confidence_score"`
	SampleDate      string `json:"sample_date"`
	BeachCount      int    `json:"beach_count"`
	CityCount       int    `json:"city_count"` // distinct cities among the beaches
	BeachesSafe     int    `json:"beaches_safe"`
	BeachesCaution  int    `json:"beaches_caution"`
	BeachesAvoid    int    `json:"beaches_avoid"`
	Slug            string `json:"slug"`
}

// RunResults is the complete output of one derivation run, in publish order.
type RunResults struct {
	RunID       string
	RunTime     time.Time
	SampleCount int // raw samples fetched for this run
	Beaches     []BeachStatus
	Cities      []CityStatus
	Regions     []RegionStatus
}

// StatusRecord is the flat record shape handed to sinks: one row of the
// beach_status sheet, one Kafka message, one CMS post. City/region aggregate
// fields are zero-valued on beach rows and vice versa.
type StatusRecord struct {
	LocationName    string `json:"location_name"`
	LocationType    string `json:"location_type"`
	Date            string `json:"date"` // run date, YYYY-MM-DD
	CurrentStatus   Status `json:"current_status"`
	PeakCount       int    `json:"peak_count"`
	AvgCount        int    `json:"avg_count"`
	ConfidenceScore int    `json:"confidence_score"`
	SampleDate      string `json:"sample_date"`
	LastUpdated     string `json:"last_updated"`
	Region          string `json:"region"`
	City            string `json:"city"`
	BeachCount      int    `json:"beach_count"`
	BeachesSafe     int    `json:"beaches_safe"`
	BeachesCaution  int    `json:"beaches_caution"`
	BeachesAvoid    int    `json:"beaches_avoid"`
	CityCount       int    `json:"city_count"`
	Slug            string `json:"slug"`
}

// Flatten converts the three result lists into sink records in hierarchical
// order (beaches, cities, regions). lastUpdated is the caller-formatted wall
// clock stamp recorded on every row.
func (r RunResults) Flatten(lastUpdated string) []StatusRecord {
	date := r.RunTime.Format("2006-01-02")
	records := make([]StatusRecord, 0, len(r.Beaches)+len(r.Cities)+len(r.Regions))

	for _, b := range r.Beaches {
		records = append(records, StatusRecord{
			LocationName:    b.LocationName,
			LocationType:    b.LocationType,
			Date:            date,
			CurrentStatus:   b.CurrentStatus,
			PeakCount:       b.PeakCount,
			ConfidenceScore: b.ConfidenceScore,
			SampleDate:      b.SampleDate,
			LastUpdated:     lastUpdated,
			Region:          b.Region,
			City:            b.City,
			Slug:            b.Slug,
		})
	}
	for _, c := range r.Cities {
		records = append(records, StatusRecord{
			LocationName:    c.LocationName,
			LocationType:    c.LocationType,
			Date:            date,
			CurrentStatus:   c.CurrentStatus,
			PeakCount:       c.PeakCount,
			AvgCount:        c.AvgCount,
			ConfidenceScore: c.ConfidenceScore,
			SampleDate:      c.SampleDate,
			LastUpdated:     lastUpdated,
			Region:          c.Region,
			BeachCount:      c.BeachCount,
			BeachesSafe:     c.BeachesSafe,
			BeachesCaution:  c.BeachesCaution,
			BeachesAvoid:    c.BeachesAvoid,
			Slug:            c.Slug,
		})
	}
	for _, g := range r.Regions {
		records = append(records, StatusRecord{
			LocationName:    g.LocationName,
			LocationType:    g.LocationType,
			Date:            date,
			CurrentStatus:   g.CurrentStatus,
			PeakCount:       g.PeakCount,
			AvgCount:        g.AvgCount,
			ConfidenceScore: g.ConfidenceScore,
			SampleDate:      g.SampleDate,
			LastUpdated:     lastUpdated,
			BeachCount:      g.BeachCount,
			BeachesSafe:     g.BeachesSafe,
			BeachesCaution:  g.BeachesCaution,
			BeachesAvoid:    g.BeachesAvoid,
			CityCount:       g.CityCount,
			Slug:            g.Slug,
		})
	}
	return records
}
