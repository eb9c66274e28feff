package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/aeolus/internal/direction"
	"github.com/UnknownOlympus/aeolus/internal/models"
	"github.com/UnknownOlympus/aeolus/internal/site"
	"github.com/jackc/pgx/v5"
)

// ErrSiteNotFound is returned when updating a site that is not stored.
var ErrSiteNotFound = errors.New("site not found")

const (
	selectSitesQuery = `
		SELECT site_id, name, country
		FROM sites
		ORDER BY site_id;
	`
	selectLaunchesQuery = `
		SELECT site_id, launch_key, name, country, latitude, longitude, elevation,
			direction_start, direction_stop, site_type
		FROM launches
		ORDER BY site_id, position;
	`
	selectLandingsQuery = `
		SELECT site_id, landing_key, name, country, latitude, longitude, elevation
		FROM landings
		ORDER BY site_id, position;
	`
	insertSiteQuery = `
		INSERT INTO sites (name, country)
		VALUES ($1, $2)
		RETURNING site_id;
	`
	updateSiteQuery = `
		UPDATE sites
		SET name = $1, country = $2, updated_at = now()
		WHERE site_id = $3;
	`
	deleteLaunchesQuery = `DELETE FROM launches WHERE site_id = $1;`
	deleteLandingsQuery = `DELETE FROM landings WHERE site_id = $1;`
	insertLaunchQuery   = `
		INSERT INTO launches (launch_key, site_id, position, name, country, latitude, longitude,
			elevation, direction_start, direction_stop, site_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	insertLandingQuery = `
		INSERT INTO landings (landing_key, site_id, position, name, country, latitude, longitude, elevation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
)

// FetchSites loads every stored site with its launches and landings in
// display order. Stored keys are restored, so keys handed out before a
// restart keep addressing the same records.
func (r *Repository) FetchSites(ctx context.Context) ([]site.Site, error) {
	rows, err := r.db.Query(ctx, selectSitesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}

	var (
		ids  []int64
		byID = make(map[int64]site.Site)
		id   int64
	)
	for rows.Next() {
		var name, country string
		if errScan := rows.Scan(&id, &name, &country); errScan != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan site: %w", errScan)
		}
		s := site.New(name, country)
		s.ID = id
		byID[id] = s
		ids = append(ids, id)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	if err = r.fetchLaunches(ctx, byID); err != nil {
		return nil, err
	}
	if err = r.fetchLandings(ctx, byID); err != nil {
		return nil, err
	}

	sites := make([]site.Site, 0, len(ids))
	for _, id := range ids {
		sites = append(sites, byID[id])
	}

	r.log.DebugContext(ctx, "Sites loaded", "count", len(sites))

	return sites, nil
}

func (r *Repository) fetchLaunches(ctx context.Context, byID map[int64]site.Site) error {
	rows, err := r.db.Query(ctx, selectLaunchesQuery)
	if err != nil {
		return fmt.Errorf("failed to query launches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			siteID                       int64
			key, name, country, siteType string
			lat, lon, elevation          float64
			start, stop                  float64
		)
		if errScan := rows.Scan(&siteID, &key, &name, &country, &lat, &lon, &elevation,
			&start, &stop, &siteType); errScan != nil {
			return fmt.Errorf("failed to scan launch: %w", errScan)
		}

		s, ok := byID[siteID]
		if !ok {
			continue
		}
		s, err = s.AddLaunchWithKey(site.Key(key), models.Launch{
			Location:  location(name, country, lat, lon),
			Elevation: models.Elevation(elevation),
			Direction: direction.Range{Start: start, Stop: stop},
			SiteType:  models.SiteType(siteType),
		})
		if err != nil {
			return fmt.Errorf("failed to restore launch %s: %w", key, err)
		}
		byID[siteID] = s
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("failed to read row: %w", err)
	}

	return nil
}

func (r *Repository) fetchLandings(ctx context.Context, byID map[int64]site.Site) error {
	rows, err := r.db.Query(ctx, selectLandingsQuery)
	if err != nil {
		return fmt.Errorf("failed to query landings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			siteID              int64
			key, name, country  string
			lat, lon, elevation float64
		)
		if errScan := rows.Scan(&siteID, &key, &name, &country, &lat, &lon, &elevation); errScan != nil {
			return fmt.Errorf("failed to scan landing: %w", errScan)
		}

		s, ok := byID[siteID]
		if !ok {
			continue
		}
		s, err = s.AddLandingWithKey(site.Key(key), models.Landing{
			Location:  location(name, country, lat, lon),
			Elevation: models.Elevation(elevation),
		})
		if err != nil {
			return fmt.Errorf("failed to restore landing %s: %w", key, err)
		}
		byID[siteID] = s
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("failed to read row: %w", err)
	}

	return nil
}

func location(name, country string, lat, lon float64) models.Location {
	return models.Location{
		Coordinates: models.Coordinates{Latitude: lat, Longitude: lon},
		Name:        name,
		Country:     country,
	}
}

// SaveSite stores s in a single transaction, replacing its launches and
// landings. A site with a zero ID is inserted and returned with its new ID.
func (r *Repository) SaveSite(ctx context.Context, s site.Site) (site.Site, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return s, fmt.Errorf("failed to begin transaction: %w", err)
	}

	saved, err := r.saveSite(ctx, tx, s)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.ErrorContext(ctx, "Failed to roll back site transaction", "site", s.Name, "error", rbErr)
		}
		return s, err
	}

	if err = tx.Commit(ctx); err != nil {
		return s, fmt.Errorf("failed to commit site: %w", err)
	}

	r.log.DebugContext(ctx, "Site saved", "id", saved.ID, "name", saved.Name,
		"launches", saved.LaunchCount(), "landings", saved.LandingCount())

	return saved, nil
}

func (r *Repository) saveSite(ctx context.Context, tx pgx.Tx, s site.Site) (site.Site, error) {
	if s.ID == 0 {
		if err := tx.QueryRow(ctx, insertSiteQuery, s.Name, s.Country).Scan(&s.ID); err != nil {
			return s, fmt.Errorf("failed to insert site: %w", err)
		}
	} else {
		tag, err := tx.Exec(ctx, updateSiteQuery, s.Name, s.Country, s.ID)
		if err != nil {
			return s, fmt.Errorf("failed to update site: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return s, fmt.Errorf("%w: %d", ErrSiteNotFound, s.ID)
		}
	}

	if _, err := tx.Exec(ctx, deleteLaunchesQuery, s.ID); err != nil {
		return s, fmt.Errorf("failed to clear launches: %w", err)
	}
	if _, err := tx.Exec(ctx, deleteLandingsQuery, s.ID); err != nil {
		return s, fmt.Errorf("failed to clear landings: %w", err)
	}

	keys := s.LaunchKeys()
	for i, l := range s.Launches() {
		_, err := tx.Exec(ctx, insertLaunchQuery,
			string(keys[i]), s.ID, i, l.Location.Name, l.Location.Country,
			l.Location.Latitude, l.Location.Longitude, float64(l.Elevation),
			l.Direction.Start, l.Direction.Stop, string(l.SiteType),
		)
		if err != nil {
			return s, fmt.Errorf("failed to insert launch: %w", err)
		}
	}

	keys = s.LandingKeys()
	for i, l := range s.Landings() {
		_, err := tx.Exec(ctx, insertLandingQuery,
			string(keys[i]), s.ID, i, l.Location.Name, l.Location.Country,
			l.Location.Latitude, l.Location.Longitude, float64(l.Elevation),
		)
		if err != nil {
			return s, fmt.Errorf("failed to insert landing: %w", err)
		}
	}

	return s, nil
}
