package domain

import "time"

// Weighted-average thresholds for the beach-level status decision.
const (
	avoidThreshold   = 1.5
	cautionThreshold = 0.5
)

// DistanceWeight discounts a reading by how far its site sits from the
// beach's representative point.
func DistanceWeight(miles float64) float64 {
	switch {
	case miles <= 1.0:
		return 1.0
	case miles <= 3.0:
		return 0.7
	case miles <= 10.0:
		return 0.4
	default:
		return 0.2
	}
}

// AgeWeight discounts a reading by sample age. Fresh samples (≤7 days) carry
// full weight; beyond that the weight decays linearly and clamps at 0.1.
func AgeWeight(ageDays int) float64 {
	if ageDays <= 7 {
		return 1.0
	}
	w := 1.0 - float64(ageDays)/7.0
	if w < 0.1 {
		return 0.1
	}
	return w
}

// CalculateBeachStatus combines all matched site readings for one beach into
// a single weighted status, confidence score, and peak cell count. loc may be
// the zero value when the beach is absent from the locations table; region
// and city then stay empty rather than failing the run.
//
// Unlike the city/region rollups this is a weighted average, not worst-case:
// a single avoid reading among several safe or unmatched sites can still
// average out to safe.
func CalculateBeachStatus(beachName string, sites []SamplingSite, samples []RawSample, loc LocationInfo, now time.Time) BeachStatus {
	result := BeachStatus{
		LocationName:  beachName,
		LocationType:  "beach",
		CurrentStatus: StatusNoData,
		Region:        loc.Region,
		City:          loc.City,
		Slug:          LocationSlug(beachName),
	}

	var (
		readings       []SiteReading
		weightedScores []float64
		latestSample   time.Time
	)

	for _, site := range sites {
		sample, ok := MatchSample(samples, site.SiteID, site.SampleLocation, now)
		if !ok {
			continue
		}

		cellCount, status := ClassifyAbundance(sample.Abundance)
		if sample.SampleTime.After(latestSample) {
			latestSample = sample.SampleTime
		}

		weight := DistanceWeight(site.DistanceMiles) * AgeWeight(AgeDays(now, sample.SampleTime))
		weightedScores = append(weightedScores, float64(status.Score())*weight)
		readings = append(readings, SiteReading{
			CellCount:  cellCount,
			Status:     status,
			Weight:     weight,
			SampleTime: sample.SampleTime,
		})
	}

	if len(readings) == 0 {
		return result
	}

	var scoreSum, weightSum float64
	peak := 0
	for i, r := range readings {
		scoreSum += weightedScores[i]
		weightSum += r.Weight
		if r.CellCount > peak {
			peak = r.CellCount
		}
	}

	avg := scoreSum / float64(len(readings))
	switch {
	case avg >= avoidThreshold:
		result.CurrentStatus = StatusAvoid
	case avg >= cautionThreshold:
		result.CurrentStatus = StatusCaution
	default:
		result.CurrentStatus = StatusSafe
	}

	result.ConfidenceScore = confidenceScore(weightSum, len(readings))
	result.PeakCount = peak
	if !latestSample.IsZero() {
		result.SampleDate = latestSample.Format("2006-01-02")
	}
	return result
}

// confidenceScore rewards both per-reading weight and reading count,
// saturating at 100.
func confidenceScore(weightSum float64, readings int) int {
	score := int(weightSum*40) + readings*15
	if score > 100 {
		return 100
	}
	return score
}
