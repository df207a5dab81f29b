// Package sheets stores derived status results in a Google spreadsheet
// and loads the location and site-mapping configuration tables from it.
package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/gulfwatch/red-tide-etl/internal/config"
	"github.com/gulfwatch/red-tide-etl/internal/domain"
)

// Client reads configuration tabs and writes the beach_status tab of a
// single spreadsheet.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	locationsTab  string
	mappingTab    string
	statusTab     string
	logger        *slog.Logger
}

// NewClient authenticates with the service-account credentials from the
// config and binds to the configured spreadsheet.
func NewClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.GoogleServiceAccount)),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.GoogleSheetID,
		locationsTab:  cfg.LocationsTab,
		mappingTab:    cfg.MappingTab,
		statusTab:     cfg.StatusTab,
		logger:        logger,
	}, nil
}

// Locations loads the locations tab keyed by beach name. Rows with an
// empty beach cell are skipped.
func (c *Client) Locations(ctx context.Context) (map[string]domain.LocationInfo, error) {
	rows, err := c.readTab(ctx, c.locationsTab)
	if err != nil {
		return nil, err
	}

	locations := make(map[string]domain.LocationInfo, len(rows))
	for _, row := range rows {
		loc := parseLocation(row)
		if loc.Beach == "" {
			continue
		}
		locations[loc.Beach] = loc
	}

	c.logger.Debug("locations loaded", "count", len(locations))
	return locations, nil
}

// SiteMappings loads the sample_mapping tab in sheet order. Rows with an
// empty beach cell are skipped.
func (c *Client) SiteMappings(ctx context.Context) ([]domain.SamplingSite, error) {
	rows, err := c.readTab(ctx, c.mappingTab)
	if err != nil {
		return nil, err
	}

	sites := make([]domain.SamplingSite, 0, len(rows))
	for _, row := range rows {
		site := parseSiteMapping(row)
		if site.Beach == "" {
			continue
		}
		sites = append(sites, site)
	}

	c.logger.Debug("site mappings loaded", "count", len(sites))
	return sites, nil
}

// StatusRecords reads the beach_status tab back as sink records, most
// recently written run. Used by the CMS sync command.
func (c *Client) StatusRecords(ctx context.Context) ([]domain.StatusRecord, error) {
	rows, err := c.readTab(ctx, c.statusTab)
	if err != nil {
		return nil, err
	}

	records := make([]domain.StatusRecord, 0, len(rows))
	for _, row := range rows {
		rec := parseStatusRecord(row)
		if rec.LocationName == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// StatusHeaderRow returns the current header row of the beach_status tab.
func (c *Client) StatusHeaderRow(ctx context.Context) ([]string, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, c.statusTab+"!1:1").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", c.statusTab, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	header := make([]string, 0, len(resp.Values[0]))
	for i := range resp.Values[0] {
		header = append(header, cellString(resp.Values[0], i))
	}
	return header, nil
}

// StoreResults replaces the beach_status tab with the given records:
// clear, then one RAW update carrying the header and every row. Partial
// states are limited to the window between the two calls.
func (c *Client) StoreResults(ctx context.Context, records []domain.StatusRecord) error {
	if _, err := c.svc.Spreadsheets.Values.
		Clear(c.spreadsheetID, c.statusTab, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("clear %s: %w", c.statusTab, err)
	}

	vr := &sheetsapi.ValueRange{Values: statusRows(records)}
	if _, err := c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, c.statusTab+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("update %s: %w", c.statusTab, err)
	}

	c.logger.Info("status results stored", "rows", len(records))
	return nil
}

// readTab returns the data rows of a tab, skipping the header row.
func (c *Client) readTab(ctx context.Context, tab string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, tab).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", tab, err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}
	return resp.Values[1:], nil
}
