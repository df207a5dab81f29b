package domain

import (
	"sort"
	"time"
)

// DeriveStatuses runs the complete derivation for one sample snapshot:
// per-beach weighted status, then city and region rollups. It is pure and
// deterministic: the same sites, locations, samples, and run time always
// produce identical output lists.
//
// A beach is processed if it appears in either configuration table. Mapped
// beaches come first, in mapping order; beaches known only to the locations
// table follow in name order and derive as no_data.
func DeriveStatuses(sites []SamplingSite, locations map[string]LocationInfo, samples []RawSample, now time.Time) ([]BeachStatus, []CityStatus, []RegionStatus) {
	var order []string
	byBeach := make(map[string][]SamplingSite)
	for _, site := range sites {
		if _, seen := byBeach[site.Beach]; !seen {
			order = append(order, site.Beach)
		}
		byBeach[site.Beach] = append(byBeach[site.Beach], site)
	}

	var unmapped []string
	for beach := range locations {
		if _, seen := byBeach[beach]; !seen {
			unmapped = append(unmapped, beach)
		}
	}
	sort.Strings(unmapped)
	order = append(order, unmapped...)

	beaches := make([]BeachStatus, 0, len(order))
	for _, beach := range order {
		beaches = append(beaches, CalculateBeachStatus(beach, byBeach[beach], samples, locations[beach], now))
	}

	return beaches, AggregateCities(beaches), AggregateRegions(beaches)
}
