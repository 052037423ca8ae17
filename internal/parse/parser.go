// Package parse extracts typed rows from SAR portal pages.
//
// Extraction is structural pattern matching against the portal's current
// markup, anchored on fixed table identifiers. It is brittle by construction:
// when an anchor disappears the parser reports a *StructureError, which is
// the signal that the remote layout changed and the selectors need updating.
package parse

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gcouto/sarwrangler/internal/sar"
)

// Structural anchors for each page kind.
const (
	directoryAnchor = "table.sar-sistemas"
	listingAnchor   = "table#gvwListaReservatorios"
	seriesAnchor    = "table#gvwMedicoes"
)

// StructureError reports that a page is missing its expected anchor.
type StructureError struct {
	Page   string
	Anchor string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s page is missing anchor %q; portal layout may have changed", e.Page, e.Anchor)
}

// SystemDirectory extracts one DirectoryRow per monitoring network linked
// from the portal's directory page.
func SystemDirectory(html []byte) ([]sar.DirectoryRow, error) {
	doc, err := document("system-directory", html)
	if err != nil {
		return nil, err
	}
	table := doc.Find(directoryAnchor)
	if table.Length() == 0 {
		return nil, &StructureError{Page: "system-directory", Anchor: directoryAnchor}
	}

	var rows []sar.DirectoryRow
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		link := tr.Find("td a").First()
		if link.Length() == 0 {
			return // header or spacer row
		}
		href, ok := link.Attr("href")
		name := strings.TrimSpace(link.Text())
		if !ok || name == "" {
			return
		}
		rows = append(rows, sar.DirectoryRow{Name: name, Href: strings.TrimSpace(href)})
	})
	return rows, nil
}

// ReservoirListing extracts one ListingRow per station on a system's
// reservoir listing page.
func ReservoirListing(html []byte) ([]sar.ListingRow, error) {
	doc, err := document("reservoir-listing", html)
	if err != nil {
		return nil, err
	}
	table := doc.Find(listingAnchor)
	if table.Length() == 0 {
		return nil, &StructureError{Page: "reservoir-listing", Anchor: listingAnchor}
	}

	var rows []sar.ListingRow
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 2 {
			return
		}
		rows = append(rows, sar.ListingRow{
			Code: strings.TrimSpace(cells.Eq(0).Text()),
			Name: strings.TrimSpace(cells.Eq(1).Text()),
		})
	})
	return rows, nil
}

// Series extracts one SeriesRow per measurement on a reservoir's time-series
// page, in document order. The third column, when present, is the portal's
// consolidation status and becomes the quality flag.
func Series(html []byte) ([]sar.SeriesRow, error) {
	doc, err := document("time-series", html)
	if err != nil {
		return nil, err
	}
	table := doc.Find(seriesAnchor)
	if table.Length() == 0 {
		return nil, &StructureError{Page: "time-series", Anchor: seriesAnchor}
	}

	var rows []sar.SeriesRow
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 2 {
			return
		}
		row := sar.SeriesRow{
			Date:  strings.TrimSpace(cells.Eq(0).Text()),
			Value: strings.TrimSpace(cells.Eq(1).Text()),
		}
		if cells.Length() > 2 {
			row.Quality = strings.TrimSpace(cells.Eq(2).Text())
		}
		rows = append(rows, row)
	})
	return rows, nil
}

func document(page string, html []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse %s html: %w", page, err)
	}
	return doc, nil
}
