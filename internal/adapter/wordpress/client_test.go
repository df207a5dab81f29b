package wordpress

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulfwatch/red-tide-etl/internal/config"
	"github.com/gulfwatch/red-tide-etl/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(siteURL string) *Client {
	c := NewClient(&config.Config{
		WordPressSiteURL:      siteURL,
		WordPressUsername:     "editor",
		WordPressAppPassword:  "app-pass",
		WordPressTimeout:      5 * time.Second,
		WordPressRateInterval: time.Millisecond,
	}, testLogger())
	return c
}

func beachRecord() domain.StatusRecord {
	return domain.StatusRecord{
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
}

func TestVerifyAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/users/me", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "editor", user)
		assert.Equal(t, "app-pass", pass)
		json.NewEncoder(w).Encode(map[string]string{"name": "Site Editor"})
	}))
	defer srv.Close()

	name, err := newTestClient(srv.URL).VerifyAuth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Site Editor", name)
}

func TestVerifyAuth_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).VerifyAuth(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestSyncRecord_CreatesWhenSlugMissing(t *testing.T) {
	var createBody postPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/wp-json/wp/v2/beach":
			assert.Equal(t, "lido-key-beach-red-tide", r.URL.Query().Get("slug"))
			w.Write([]byte(`[]`))
		case r.Method == http.MethodPost && r.URL.Path == "/wp-json/wp/v2/beach":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&createBody))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]int{"id": 42})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	loc := domain.LocationInfo{Latitude: "27.3", Longitude: "-82.57", Address: "123 Ocean Blvd", Zip: "34236"}
	id, outcome, err := newTestClient(srv.URL).SyncRecord(context.Background(), beachRecord(), loc, "2025-08-21 06:00:00")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.Equal(t, OutcomeCreated, outcome)

	assert.Equal(t, "Lido Key Beach Red Tide Status - Current Conditions & Updates", createBody.Title)
	assert.Equal(t, "lido-key-beach-red-tide", createBody.Slug)
	assert.Equal(t, "publish", createBody.Status)
	assert.Equal(t, "caution", createBody.ACF["current_status"])
	assert.Equal(t, "#ffc107", createBody.ACF["status_color"])
	assert.Equal(t, "27.3, -82.57", createBody.ACF["coordinates"])
	assert.Equal(t, "34236", createBody.ACF["zip_code"])
	assert.Equal(t, float64(7500), createBody.ACF["peak_count"])
	assert.Contains(t, createBody.Meta["_yoast_wpseo_metadesc"], "Lido Key Beach")
}

func TestSyncRecord_UpdatesExistingPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/wp-json/wp/v2/city":
			w.Write([]byte(`[{"id": 7}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/wp-json/wp/v2/city/7":
			json.NewEncoder(w).Encode(map[string]int{"id": 7})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	rec := domain.StatusRecord{
		LocationName:  "Sarasota",
		LocationType:  "city",
		CurrentStatus: domain.StatusSafe,
		Slug:          "sarasota-red-tide",
	}
	id, outcome, err := newTestClient(srv.URL).SyncRecord(context.Background(), rec, domain.LocationInfo{}, "2025-08-21 06:00:00")
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.Equal(t, OutcomeUpdated, outcome)
}

func TestSyncRecord_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`[]`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).SyncRecord(context.Background(), beachRecord(), domain.LocationInfo{}, "2025-08-21 06:00:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestBuildPayload_RegionFields(t *testing.T) {
	rec := domain.StatusRecord{
		LocationName:   "Southwest",
		LocationType:   "region",
		CurrentStatus:  domain.StatusAvoid,
		PeakCount:      550000,
		AvgCount:       275000,
		BeachCount:     5,
		BeachesSafe:    2,
		BeachesCaution: 2,
		BeachesAvoid:   1,
		CityCount:      3,
		Slug:           "southwest-red-tide",
	}

	p := buildPayload(rec, domain.LocationInfo{}, "2025-08-21 06:00:00")
	assert.Equal(t, "#dc3545", p.ACF["status_color"])
	assert.Equal(t, 5, p.ACF["beach_count"])
	assert.Equal(t, 3, p.ACF["city_count"])
	assert.Equal(t, "FL", p.ACF["state"])
	assert.NotContains(t, p.ACF, "coordinates")
}

func TestStatusColor_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, "#6c757d", statusColor(domain.Status("weird")))
}

func TestCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon, want string
	}{
		{"27.3", "-82.57", "27.3, -82.57"},
		{"27.3", "", "27.3"},
		{"", "-82.57", "-82.57"},
		{"", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, coordinates(domain.LocationInfo{Latitude: tt.lat, Longitude: tt.lon}))
	}
}
