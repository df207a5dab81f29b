package domain

// statusCounts tallies child beach statuses for one group.
type statusCounts struct {
	safe, caution, avoid int
}

func (c statusCounts) worst() Status {
	switch {
	case c.avoid > 0:
		return StatusAvoid
	case c.caution > 0:
		return StatusCaution
	case c.safe > 0:
		return StatusSafe
	default:
		return StatusNoData
	}
}

// WorstStatus reports the worst-case status across beach results. Used
// for run-level summaries.
func WorstStatus(beaches []BeachStatus) Status {
	var counts statusCounts
	for _, b := range beaches {
		switch b.CurrentStatus {
		case StatusSafe:
			counts.safe++
		case StatusCaution:
			counts.caution++
		case StatusAvoid:
			counts.avoid++
		}
	}
	return counts.worst()
}

// groupAggregates holds the numeric rollups shared by city and region rows.
// Zero-valued children are excluded from the means so an unmonitored beach
// does not drag a group toward zero.
type groupAggregates struct {
	counts     statusCounts
	peakCount  int
	avgCount   int
	confidence int
	sampleDate string
}

func aggregateGroup(beaches []BeachStatus) groupAggregates {
	var agg groupAggregates
	var peakSum, peakN, confSum, confN int

	for _, b := range beaches {
		switch b.CurrentStatus {
		case StatusSafe:
			agg.counts.safe++
		case StatusCaution:
			agg.counts.caution++
		case StatusAvoid:
			agg.counts.avoid++
		}

		if b.PeakCount > 0 {
			peakSum += b.PeakCount
			peakN++
			if b.PeakCount > agg.peakCount {
				agg.peakCount = b.PeakCount
			}
		}
		if b.ConfidenceScore > 0 {
			confSum += b.ConfidenceScore
			confN++
		}
		// Lexicographic max is a valid "latest" only because every date is a
		// zero-padded YYYY-MM-DD string.
		if b.SampleDate > agg.sampleDate {
			agg.sampleDate = b.SampleDate
		}
	}

	if peakN > 0 {
		agg.avgCount = peakSum / peakN
	}
	if confN > 0 {
		agg.confidence = confSum / confN
	}
	return agg
}

// AggregateCities rolls beach results up into one CityStatus per distinct
// non-empty city, in order of first appearance. City status is strict
// worst-case over child beaches, unlike the weighted beach level.
func AggregateCities(beaches []BeachStatus) []CityStatus {
	var order []string
	groups := make(map[string][]BeachStatus)
	for _, b := range beaches {
		if b.City == "" {
			continue
		}
		if _, seen := groups[b.City]; !seen {
			order = append(order, b.City)
		}
		groups[b.City] = append(groups[b.City], b)
	}

	cities := make([]CityStatus, 0, len(order))
	for _, city := range order {
		members := groups[city]
		agg := aggregateGroup(members)
		cities = append(cities, CityStatus{
			LocationName:    city,
			LocationType:    "city",
			CurrentStatus:   agg.counts.worst(),
			PeakCount:       agg.peakCount,
			AvgCount:        agg.avgCount,
			ConfidenceScore: agg.confidence,
			SampleDate:      agg.sampleDate,
			BeachCount:      len(members),
			BeachesSafe:     agg.counts.safe,
			BeachesCaution:  agg.counts.caution,
			BeachesAvoid:    agg.counts.avoid,
			Region:          members[0].Region, // beaches of a city share a region
			Slug:            LocationSlug(city),
		})
	}
	return cities
}

// AggregateRegions mirrors AggregateCities but groups by region and counts
// the distinct cities seen among each region's beaches.
func AggregateRegions(beaches []BeachStatus) []RegionStatus {
	var order []string
	groups := make(map[string][]BeachStatus)
	for _, b := range beaches {
		if b.Region == "" {
			continue
		}
		if _, seen := groups[b.Region]; !seen {
			order = append(order, b.Region)
		}
		groups[b.Region] = append(groups[b.Region], b)
	}

	regions := make([]RegionStatus, 0, len(order))
	for _, region := range order {
		members := groups[region]
		agg := aggregateGroup(members)

		cities := make(map[string]struct{})
		for _, b := range members {
			if b.City != "" {
				cities[b.City] = struct{}{}
			}
		}

		regions = append(regions, RegionStatus{
			LocationName:    region,
			LocationType:    "region",
			CurrentStatus:   agg.counts.worst(),
			PeakCount:       agg.peakCount,
			AvgCount:        agg.avgCount,
			ConfidenceScore: agg.confidence,
			SampleDate:      agg.sampleDate,
			BeachCount:      len(members),
			CityCount:       len(cities),
			BeachesSafe:     agg.counts.safe,
			BeachesCaution:  agg.counts.caution,
			BeachesAvoid:    agg.counts.avoid,
			Slug:            LocationSlug(region),
		})
	}
	return regions
}
