package dhv_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/aeolus/internal/dhv"
	"github.com/UnknownOlympus/aeolus/internal/direction"
	"github.com/UnknownOlympus/aeolus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<DhvXml>
  <FlyingSites>
    <FlyingSite>
      <SiteID>1001</SiteID>
      <SiteName>Tegelberg</SiteName>
      <SiteCountry>DE</SiteCountry>
      <Location>
        <LocationName>Startplatz West</LocationName>
        <Coordinates>10.7734,47.5612</Coordinates>
        <LocationType>1</LocationType>
        <Altitude>1707</Altitude>
        <DirectionsText>SW-W, NO</DirectionsText>
      </Location>
      <Location>
        <LocationName>Landeplatz Talstation</LocationName>
        <Coordinates>10.7512,47.5775</Coordinates>
        <LocationType>2</LocationType>
        <Altitude>820</Altitude>
      </Location>
    </FlyingSite>
    <FlyingSite>
      <SiteID>1002</SiteID>
      <SiteName>Schleppgelände Ried</SiteName>
      <SiteCountry>DE</SiteCountry>
      <Location>
        <LocationName>Winde</LocationName>
        <Coordinates>11.1,48.2</Coordinates>
        <LocationType>1</LocationType>
        <Altitude>500</Altitude>
        <DirectionsText>W</DirectionsText>
        <TowingLength>900</TowingLength>
      </Location>
      <Location>
        <LocationName>Kaputt</LocationName>
        <Coordinates>abc</Coordinates>
        <LocationType>2</LocationType>
      </Location>
    </FlyingSite>
    <FlyingSite>
      <SiteID>1003</SiteID>
      <SiteName></SiteName>
    </FlyingSite>
  </FlyingSites>
</DhvXml>`

func TestImporter_Parse(t *testing.T) {
	importer := dhv.NewImporter(slog.Default())

	sites, err := importer.Parse(t.Context(), strings.NewReader(sampleExport))

	require.NoError(t, err)
	require.Len(t, sites, 2, "the nameless site is skipped")

	t.Run("launch per direction range", func(t *testing.T) {
		tegelberg := sites[0]
		assert.Equal(t, "Tegelberg", tegelberg.Name)
		assert.Equal(t, "DE", tegelberg.Country)

		launches := tegelberg.Launches()
		require.Len(t, launches, 2)
		assert.Equal(t, direction.Range{Start: 225, Stop: 270}, launches[0].Direction)
		assert.Equal(t, direction.Range{Start: 33.75, Stop: 56.25}, launches[1].Direction)
		assert.Equal(t, models.SiteTypeHang, launches[0].SiteType)
		assert.InDelta(t, 47.5612, launches[0].Location.Latitude, 1e-9)
		assert.InDelta(t, 10.7734, launches[0].Location.Longitude, 1e-9)
		assert.InDelta(t, 1707.0, float64(launches[0].Elevation), 1e-9)
		assert.Equal(t, "Startplatz West", launches[0].Location.Name)

		landings := tegelberg.Landings()
		require.Len(t, landings, 1)
		assert.Equal(t, "Landeplatz Talstation", landings[0].Location.Name)
	})

	t.Run("towing length marks a winch launch", func(t *testing.T) {
		ried := sites[1]
		require.Equal(t, 1, ried.LaunchCount())
		assert.Equal(t, models.SiteTypeWinch, ried.Launches()[0].SiteType)
		assert.Equal(t, direction.Range{Start: 258.75, Stop: 281.25}, ried.Launches()[0].Direction)
		assert.Zero(t, ried.LandingCount(), "location with broken coordinates is skipped")
	})
}

func TestImporter_ParseInvalidXML(t *testing.T) {
	importer := dhv.NewImporter(slog.Default())

	_, err := importer.Parse(t.Context(), strings.NewReader("<DhvXml><FlyingSites>"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode DHV export")
}

func TestImporter_LoadFile(t *testing.T) {
	defer filet.CleanUp(t)

	importer := dhv.NewImporter(slog.Default())

	t.Run("reads export from disk", func(t *testing.T) {
		file := filet.TmpFile(t, "", sampleExport)

		sites, err := importer.LoadFile(t.Context(), file.Name())

		require.NoError(t, err)
		assert.Len(t, sites, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := importer.LoadFile(t.Context(), "/nonexistent/dhv.xml")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open DHV export")
	})
}
