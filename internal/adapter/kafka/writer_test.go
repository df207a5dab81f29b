package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulfwatch/red-tide-etl/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	rec := domain.StatusRecord{
		LocationName:    "Lido Key Beach",
		LocationType:    "beach",
		Date:            "2025-08-21",
		CurrentStatus:   domain.StatusCaution,
		PeakCount:       7500,
		ConfidenceScore: 71,
		SampleDate:      "2025-08-20",
		Region:          "Southwest",
		City:            "Sarasota",
		Slug:            "lido-key-beach-red-tide",
	}

	msg, err := serializeToMessage(rec, "run-123")
	require.NoError(t, err)

	assert.Equal(t, []byte("lido-key-beach-red-tide"), msg.Key)
	assert.Contains(t, string(msg.Value), `"current_status":"caution"`)
	assert.Contains(t, string(msg.Value), `"peak_count":7500`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "location_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("beach"), msg.Headers[0].Value)
	assert.Equal(t, "run_id", msg.Headers[1].Key)
	assert.Equal(t, []byte("run-123"), msg.Headers[1].Value)
}
