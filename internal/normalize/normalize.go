// Package normalize converts raw parse rows into the uniform record shapes,
// coercing the portal's pt-BR date and number formats.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gcouto/sarwrangler/internal/sar"
)

// dateLayout matches the portal's dd/mm/yyyy measurement dates.
const dateLayout = "02/01/2006"

// hrefSystemPrefix precedes the system identifier in directory links,
// e.g. /sar0/MedicaoSin.
const hrefSystemPrefix = "Medicao"

// CoercionError reports a field value that could not be converted. The caller
// drops the offending record and continues.
type CoercionError struct {
	Field string
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot coerce %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("cannot coerce %s %q", e.Field, e.Value)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// SystemFromDirectory builds a System from a directory link. The identifier
// is the href's trailing path segment with the Medicao prefix stripped,
// uppercased (MedicaoSin -> SIN).
func SystemFromDirectory(row sar.DirectoryRow) (sar.System, error) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return sar.System{}, &CoercionError{Field: "system name", Value: row.Name}
	}
	segment := strings.TrimSpace(strings.TrimSuffix(row.Href, "/"))
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	if !strings.HasPrefix(segment, hrefSystemPrefix) || segment == hrefSystemPrefix {
		return sar.System{}, &CoercionError{Field: "system href", Value: row.Href}
	}
	id := strings.ToUpper(strings.TrimPrefix(segment, hrefSystemPrefix))
	return sar.System{ID: id, Name: name}, nil
}

// ReservoirFromListing builds a Reservoir belonging to systemID.
func ReservoirFromListing(systemID string, row sar.ListingRow) (sar.Reservoir, error) {
	code := strings.TrimSpace(row.Code)
	if code == "" {
		return sar.Reservoir{}, &CoercionError{Field: "station code", Value: row.Code}
	}
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return sar.Reservoir{}, &CoercionError{Field: "reservoir name", Value: row.Name}
	}
	return sar.Reservoir{StationCode: code, Name: name, SystemID: systemID}, nil
}

// ObservationFromSeries builds an Observation for reservoirCode from one
// series row.
func ObservationFromSeries(reservoirCode string, row sar.SeriesRow) (sar.Observation, error) {
	date, err := time.Parse(dateLayout, strings.TrimSpace(row.Date))
	if err != nil {
		return sar.Observation{}, &CoercionError{Field: "date", Value: row.Date, Err: err}
	}
	value, err := parseDecimal(row.Value)
	if err != nil {
		return sar.Observation{}, &CoercionError{Field: "value", Value: row.Value, Err: err}
	}
	return sar.Observation{
		ReservoirCode: reservoirCode,
		Date:          date,
		Value:         value,
		Quality:       strings.TrimSpace(row.Quality),
	}, nil
}

// parseDecimal handles the portal's pt-BR numerals: comma decimal separator
// with optional dot thousands separators (1.234,56). Plain float strings
// still parse so fixtures and future layout tweaks don't break.
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}
