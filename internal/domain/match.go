package domain

import (
	"math"
	"strings"
	"time"
)

// MatchSample finds the most relevant raw sample for one monitored site.
//
// Pass 1: the first sample whose HAB_ID equals siteID wins outright,
// regardless of recency. An empty siteID never ID-matches.
//
// Pass 2 (only when pass 1 finds nothing): case-insensitive substring match
// in either direction between locationText and each sample's location label.
// Matches are scored max(0, 10-ageDays); the highest score wins, ties kept
// first-seen. A score must strictly exceed zero, so fallback matches older
// than ten days are discarded.
//
// Returns false when neither pass matches; the site then contributes nothing
// to its beach.
func MatchSample(samples []RawSample, siteID, locationText string, now time.Time) (RawSample, bool) {
	if siteID != "" {
		for _, s := range samples {
			if s.SiteID == siteID {
				return s, true
			}
		}
	}

	loc := strings.ToLower(locationText)
	if loc == "" {
		return RawSample{}, false
	}

	bestScore := 0
	var best RawSample
	found := false
	for _, s := range samples {
		sampleLoc := strings.ToLower(s.Location)
		if !strings.Contains(sampleLoc, loc) && !strings.Contains(loc, sampleLoc) {
			continue
		}
		score := 10 - AgeDays(now, s.SampleTime)
		if score > bestScore {
			bestScore = score
			best = s
			found = true
		}
	}
	return best, found
}

// AgeDays returns the whole-day age of a sample at the given run time,
// rounded down. Future-dated samples yield negative ages.
func AgeDays(now, sampleTime time.Time) int {
	return int(math.Floor(now.Sub(sampleTime).Hours() / 24))
}
