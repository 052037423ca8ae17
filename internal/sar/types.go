// Package sar defines the record shapes shared across the pipeline, the raw
// row variants produced by the page parser, and the portal endpoints.
package sar

import "time"

// System is one of the portal's reservoir-monitoring networks
// (SIN, Nordeste e Semiárido, Cantareira).
type System struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Reservoir is a single monitored storage site belonging to one System.
type Reservoir struct {
	StationCode string `json:"station_code"`
	Name        string `json:"name"`
	SystemID    string `json:"system_id"`
}

// Observation is one dated measurement for a Reservoir. Slice order follows
// the published chronological order.
type Observation struct {
	ReservoirCode string    `json:"reservoir_code"`
	Date          time.Time `json:"date"`
	Value         float64   `json:"value"`
	Quality       string    `json:"quality,omitempty"`
}

// DirectoryRow is a raw entry scraped from the system directory page.
// Fields are untrimmed page text; the normalizer converts them to a System.
type DirectoryRow struct {
	Name string
	Href string
}

// ListingRow is a raw entry scraped from a system's reservoir listing page.
type ListingRow struct {
	Code string
	Name string
}

// SeriesRow is a raw entry scraped from a reservoir's time-series page.
// Quality is empty when the page carries no status column.
type SeriesRow struct {
	Date    string
	Value   string
	Quality string
}
