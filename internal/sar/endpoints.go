package sar

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoints holds the portal addresses the pipeline visits. The defaults are
// baked in; tests point them at local fixture servers.
type Endpoints struct {
	// Directory is the system directory page listing the monitoring networks.
	Directory string
	// Base resolves relative listing hrefs and builds time-series URLs.
	Base string
}

// DefaultEndpoints returns the production SAR portal addresses.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Directory: "https://www.ana.gov.br/sar0/Home",
		Base:      "https://www.ana.gov.br/sar0",
	}
}

// Listing resolves a system href from the directory page against Base.
func (e Endpoints) Listing(href string) (string, error) {
	base, err := url.Parse(e.Base)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", e.Base, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parse listing href %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// Series builds the time-series page URL for one reservoir station.
func (e Endpoints) Series(stationCode string) string {
	return fmt.Sprintf("%s/MedicaoSerieHistorica?codigoRes=%s",
		strings.TrimSuffix(e.Base, "/"), url.QueryEscape(stationCode))
}

// Slug lowercases an entity identifier into a filesystem-safe base filename.
// Runs of characters outside [a-z0-9] collapse into a single dash.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}
