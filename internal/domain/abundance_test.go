package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAbundance(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		expectedCount int
		expected      Status
	}{
		{"not present", "Not Present", 500, StatusSafe},
		{"not present with detail", "Not Present (0 cells/L)", 500, StatusSafe},
		{"background", "Background levels detected", 500, StatusSafe},
		{"very low", "Very Low", 2500, StatusSafe},
		{"very low with range", "Very Low (1,000-10,000 cells/L)", 2500, StatusSafe},
		{"low with range", "Low (5,000-10,000 cells/L)", 7500, StatusCaution},
		{"low without range", "Low", 5000, StatusCaution},
		{"low with single number", "Low (10,000 cells/L)", 5000, StatusCaution},
		{"medium with range", "Medium (100,000-1,000,000 cells/L)", 550000, StatusAvoid},
		{"medium without range", "Medium", 50000, StatusAvoid},
		{"high without range", "High", 500000, StatusAvoid},
		{"high with range", "High (1,000,000-2,000,000 cells/L)", 1500000, StatusAvoid},
		{"case insensitive", "NOT PRESENT", 500, StatusSafe},
		{"empty string", "", 0, StatusNoData},
		{"whitespace only", "   ", 0, StatusNoData},
		{"unrecognized text", "sample pending", 0, StatusNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, status := ClassifyAbundance(tt.text)
			assert.Equal(t, tt.expectedCount, count)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestClassifyAbundance_MidpointIsIntegerDivision(t *testing.T) {
	count, status := ClassifyAbundance("Low (3-4 cells/L)")
	assert.Equal(t, 3, count)
	assert.Equal(t, StatusCaution, status)
}

func TestExtractCounts(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []int
	}{
		{"comma separated thousands", "Low (5,000-10,000 cells/L)", []int{5000, 10000}},
		{"plain digits", "between 100 and 200", []int{100, 200}},
		{"no numbers", "Not Present", nil},
		{"stray comma dropped", "counts, pending", nil},
		{"more than two numbers", "1 2 3", []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := extractCounts(tt.text)
			if tt.expected == nil {
				assert.Empty(t, counts)
				return
			}
			assert.Equal(t, tt.expected, counts)
		})
	}
}
