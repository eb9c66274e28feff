// Package dhv imports flying sites from the XML export of the German hang
// gliding association (DHV) site database.
package dhv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/UnknownOlympus/aeolus/internal/direction"
	"github.com/UnknownOlympus/aeolus/internal/models"
	"github.com/UnknownOlympus/aeolus/internal/site"
)

const launchLocationType = 1

type export struct {
	Sites []flyingSite `xml:"FlyingSites>FlyingSite"`
}

type flyingSite struct {
	ID        string     `xml:"SiteID"`
	Name      string     `xml:"SiteName"      validate:"required"`
	Country   string     `xml:"SiteCountry"`
	Locations []location `xml:"Location"`
}

type location struct {
	Name           string  `xml:"LocationName"   validate:"required"`
	Coordinates    string  `xml:"Coordinates"    validate:"required"`
	LocationType   int     `xml:"LocationType"`
	Altitude       float64 `xml:"Altitude"       validate:"gte=0"`
	DirectionsText string  `xml:"DirectionsText"`
	TowingLength   float64 `xml:"TowingLength"`
}

func (l location) isLaunch() bool {
	return l.LocationType == launchLocationType
}

func (l location) siteType() models.SiteType {
	if l.TowingLength > 0 {
		return models.SiteTypeWinch
	}
	return models.SiteTypeHang
}

// Importer converts DHV exports into sites.
type Importer struct {
	log *slog.Logger
}

// NewImporter creates an importer that logs skipped records to log.
func NewImporter(log *slog.Logger) *Importer {
	return &Importer{log: log}
}

// LoadFile imports the sites of the DHV export at path.
func (im *Importer) LoadFile(ctx context.Context, path string) ([]site.Site, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DHV export: %w", err)
	}
	defer file.Close()

	return im.Parse(ctx, file)
}

// Parse decodes a DHV export. A launch location yields one launch per
// direction range in its DirectionsText; every other location becomes a
// landing. Records that fail validation are skipped and logged, so one bad
// entry never rejects the whole export.
func (im *Importer) Parse(ctx context.Context, r io.Reader) ([]site.Site, error) {
	var doc export
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode DHV export: %w", err)
	}

	sites := make([]site.Site, 0, len(doc.Sites))
	for _, fs := range doc.Sites {
		if err := models.Validate(fs); err != nil {
			im.log.WarnContext(ctx, "Skipping invalid DHV site", "site_id", fs.ID, "error", err)
			continue
		}
		sites = append(sites, im.convert(ctx, fs))
	}

	im.log.InfoContext(ctx, "DHV export parsed", "sites", len(sites), "records", len(doc.Sites))

	return sites, nil
}

func (im *Importer) convert(ctx context.Context, fs flyingSite) site.Site {
	s := site.New(fs.Name, fs.Country)

	for _, loc := range fs.Locations {
		if err := models.Validate(loc); err != nil {
			im.log.WarnContext(ctx, "Skipping invalid DHV location", "site", fs.Name, "location", loc.Name, "error", err)
			continue
		}

		coords, err := models.ParseLonLat(loc.Coordinates)
		if err != nil {
			im.log.WarnContext(ctx, "Skipping DHV location with bad coordinates",
				"site", fs.Name, "location", loc.Name, "error", err)
			continue
		}

		place := models.Location{Coordinates: coords, Name: loc.Name, Country: fs.Country}
		elevation := models.Elevation(loc.Altitude)

		if !loc.isLaunch() {
			s, _ = s.AddLanding(models.Landing{Location: place, Elevation: elevation})
			continue
		}

		ranges, err := direction.ParseRanges(loc.DirectionsText)
		if err != nil {
			im.log.WarnContext(ctx, "Ignoring unparsable launch directions",
				"site", fs.Name, "location", loc.Name, "text", loc.DirectionsText, "error", err)
		}
		if len(ranges) == 0 {
			im.log.DebugContext(ctx, "Launch has no usable directions", "site", fs.Name, "location", loc.Name)
		}

		for _, r := range ranges {
			s, _ = s.AddLaunch(models.Launch{
				Location:  place,
				Elevation: elevation,
				Direction: r,
				SiteType:  loc.siteType(),
			})
		}
	}

	return s
}
