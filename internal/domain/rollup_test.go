package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func beach(name, city, region string, status Status, peak, confidence int, sampleDate string) BeachStatus {
	return BeachStatus{
		LocationName:    name,
		LocationType:    "beach",
		CurrentStatus:   status,
		PeakCount:       peak,
		ConfidenceScore: confidence,
		SampleDate:      sampleDate,
		Region:          region,
		City:            city,
		Slug:            LocationSlug(name),
	}
}

func TestAggregateCities(t *testing.T) {
	beaches := []BeachStatus{
		beach("Lido Key", "Sarasota", "Southwest Florida", StatusSafe, 500, 70, "2025-03-08"),
		beach("Siesta Key", "Sarasota", "Southwest Florida", StatusAvoid, 500000, 90, "2025-03-09"),
		beach("Clearwater Beach", "Clearwater", "Tampa Bay", StatusCaution, 7500, 55, "2025-03-07"),
		beach("No City Beach", "", "Tampa Bay", StatusSafe, 100, 40, "2025-03-01"),
	}

	cities := AggregateCities(beaches)
	require.Len(t, cities, 2, "beaches without a city are skipped")

	sarasota := cities[0]
	assert.Equal(t, "Sarasota", sarasota.LocationName)
	assert.Equal(t, "city", sarasota.LocationType)
	assert.Equal(t, StatusAvoid, sarasota.CurrentStatus, "one avoid child forces avoid")
	assert.Equal(t, 2, sarasota.BeachCount)
	assert.Equal(t, 1, sarasota.BeachesSafe)
	assert.Equal(t, 0, sarasota.BeachesCaution)
	assert.Equal(t, 1, sarasota.BeachesAvoid)
	assert.Equal(t, 500000, sarasota.PeakCount)
	assert.Equal(t, (500+500000)/2, sarasota.AvgCount)
	assert.Equal(t, (70+90)/2, sarasota.ConfidenceScore)
	assert.Equal(t, "2025-03-09", sarasota.SampleDate)
	assert.Equal(t, "Southwest Florida", sarasota.Region)
	assert.Equal(t, "sarasota-red-tide", sarasota.Slug)

	clearwater := cities[1]
	assert.Equal(t, "Clearwater", clearwater.LocationName)
	assert.Equal(t, StatusCaution, clearwater.CurrentStatus)
	assert.Equal(t, 1, clearwater.BeachCount)
}

func TestAggregateCities_ZeroValuedChildrenExcludedFromMeans(t *testing.T) {
	beaches := []BeachStatus{
		beach("Monitored", "Naples", "Southwest Florida", StatusCaution, 7500, 60, "2025-03-09"),
		beach("Dark", "Naples", "Southwest Florida", StatusNoData, 0, 0, ""),
	}

	cities := AggregateCities(beaches)
	require.Len(t, cities, 1)

	naples := cities[0]
	assert.Equal(t, 7500, naples.AvgCount, "zero peak counts excluded from the mean")
	assert.Equal(t, 60, naples.ConfidenceScore, "zero confidence excluded from the mean")
	assert.Equal(t, "2025-03-09", naples.SampleDate, "empty dates ignored")
	assert.Equal(t, 2, naples.BeachCount)
}

func TestAggregateCities_AllNoData(t *testing.T) {
	beaches := []BeachStatus{
		beach("One", "Destin", "Panhandle", StatusNoData, 0, 0, ""),
		beach("Two", "Destin", "Panhandle", StatusNoData, 0, 0, ""),
	}

	cities := AggregateCities(beaches)
	require.Len(t, cities, 1)
	assert.Equal(t, StatusNoData, cities[0].CurrentStatus)
	assert.Zero(t, cities[0].PeakCount)
	assert.Zero(t, cities[0].AvgCount)
	assert.Zero(t, cities[0].ConfidenceScore)
	assert.Empty(t, cities[0].SampleDate)
}

func TestAggregateRegions(t *testing.T) {
	beaches := []BeachStatus{
		beach("A", "Sarasota", "Southwest Florida", StatusSafe, 500, 70, "2025-03-08"),
		beach("B", "Naples", "Southwest Florida", StatusCaution, 7500, 50, "2025-03-09"),
		beach("C", "Sarasota", "Southwest Florida", StatusNoData, 0, 0, ""),
		beach("D", "Clearwater", "Tampa Bay", StatusSafe, 200, 30, "2025-03-05"),
	}

	regions := AggregateRegions(beaches)
	require.Len(t, regions, 2)

	southwest := regions[0]
	assert.Equal(t, "Southwest Florida", southwest.LocationName)
	assert.Equal(t, "region", southwest.LocationType)
	assert.Equal(t, StatusCaution, southwest.CurrentStatus, "worst of [safe caution no_data]")
	assert.Equal(t, 3, southwest.BeachCount)
	assert.Equal(t, 2, southwest.CityCount)
	assert.Equal(t, 1, southwest.BeachesSafe)
	assert.Equal(t, 1, southwest.BeachesCaution)
	assert.Equal(t, 0, southwest.BeachesAvoid)
	assert.Equal(t, 7500, southwest.PeakCount)
	assert.Equal(t, "southwest-florida-red-tide", southwest.Slug)

	tampa := regions[1]
	assert.Equal(t, "Tampa Bay", tampa.LocationName)
	assert.Equal(t, 1, tampa.CityCount)
}

func TestAggregateRegions_AvoidOnlyWhenChildAvoids(t *testing.T) {
	safeOnly := AggregateRegions([]BeachStatus{
		beach("A", "X", "Gulf", StatusSafe, 1, 1, "2025-01-01"),
		beach("B", "X", "Gulf", StatusCaution, 2, 1, "2025-01-01"),
	})
	require.Len(t, safeOnly, 1)
	assert.NotEqual(t, StatusAvoid, safeOnly[0].CurrentStatus)

	withAvoid := AggregateRegions([]BeachStatus{
		beach("A", "X", "Gulf", StatusSafe, 1, 1, "2025-01-01"),
		beach("B", "X", "Gulf", StatusAvoid, 2, 1, "2025-01-01"),
	})
	require.Len(t, withAvoid, 1)
	assert.Equal(t, StatusAvoid, withAvoid[0].CurrentStatus)
}

func TestWorstStatus(t *testing.T) {
	tests := []struct {
		name     string
		counts   statusCounts
		expected Status
	}{
		{"avoid dominates", statusCounts{safe: 5, caution: 3, avoid: 1}, StatusAvoid},
		{"caution over safe", statusCounts{safe: 5, caution: 1}, StatusCaution},
		{"safe alone", statusCounts{safe: 1}, StatusSafe},
		{"nothing counted", statusCounts{}, StatusNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.counts.worst())
		})
	}
}

func TestWorstStatus_OverBeaches(t *testing.T) {
	beaches := []BeachStatus{
		{CurrentStatus: StatusSafe},
		{CurrentStatus: StatusNoData},
		{CurrentStatus: StatusCaution},
	}
	assert.Equal(t, StatusCaution, WorstStatus(beaches))
	assert.Equal(t, StatusNoData, WorstStatus(nil))
}
