// Package site holds the topology of a flying site: its launches and landings
// and the relationships between them.
//
// Site is a value. Every edit returns a new Site and leaves the original
// unchanged, so independent copies can be worked on concurrently without
// locking. Records can be addressed by position, as an editing surface shows
// them, or by a stable Key that survives other edits.
package site

import (
	"errors"
	"fmt"

	"github.com/UnknownOlympus/aeolus/internal/models"
)

// Errors returned by positional and keyed edits.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownKey      = errors.New("unknown key")
	ErrDuplicateKey    = errors.New("duplicate key")
)

const (
	kindLaunch  = "launch"
	kindLanding = "landing"
)

// Site is a named flying area made of launches and landings. A site without
// launches is valid but cannot be evaluated.
type Site struct {
	ID      int64  // ID is the persistence identifier, zero until saved.
	Name    string // Name is the human-readable site name.
	Country string // Country is an optional ISO code.

	launches collection[models.Launch]
	landings collection[models.Landing]
}

// New creates an empty site.
func New(name, country string) Site {
	return Site{Name: name, Country: country}
}

// Launches returns the launches in display order.
func (s Site) Launches() []models.Launch { return s.launches.values() }

// Landings returns the landings in display order.
func (s Site) Landings() []models.Landing { return s.landings.values() }

// LaunchKeys returns launch keys in display order.
func (s Site) LaunchKeys() []Key { return s.launches.keys() }

// LandingKeys returns landing keys in display order.
func (s Site) LandingKeys() []Key { return s.landings.keys() }

// LaunchCount returns the number of launches.
func (s Site) LaunchCount() int { return s.launches.len() }

// LandingCount returns the number of landings.
func (s Site) LandingCount() int { return s.landings.len() }

// Launch looks a launch up by key.
func (s Site) Launch(key Key) (models.Launch, bool) {
	l, ok := s.launches.items[key]
	return l, ok
}

// Landing looks a landing up by key.
func (s Site) Landing(key Key) (models.Landing, bool) {
	l, ok := s.landings.items[key]
	return l, ok
}

// AddLaunch appends a launch and returns the new site with the key assigned to it.
func (s Site) AddLaunch(l models.Launch) (Site, Key) {
	key := NewKey()
	s.launches = s.launches.add(key, l)

	return s, key
}

// AddLaunchWithKey appends a launch under a known key, e.g. when restoring a
// site from storage.
func (s Site) AddLaunchWithKey(key Key, l models.Launch) (Site, error) {
	if s.launches.has(key) {
		return s, fmt.Errorf("%w: launch %s", ErrDuplicateKey, key)
	}
	s.launches = s.launches.add(key, l)

	return s, nil
}

// LaunchKey returns the key of the launch at index.
func (s Site) LaunchKey(index int) (Key, error) {
	return s.launches.keyAt(kindLaunch, index)
}

// RemoveLaunch removes the launch at index; later launches shift down by one.
func (s Site) RemoveLaunch(index int) (Site, error) {
	key, err := s.LaunchKey(index)
	if err != nil {
		return s, err
	}

	return s.RemoveLaunchByKey(key)
}

// RemoveLaunchByKey removes the launch with the given key.
func (s Site) RemoveLaunchByKey(key Key) (Site, error) {
	if !s.launches.has(key) {
		return s, fmt.Errorf("%w: launch %s", ErrUnknownKey, key)
	}
	s.launches = s.launches.remove(key)

	return s, nil
}

// UpdateLaunch replaces the launch at index wholesale.
func (s Site) UpdateLaunch(index int, l models.Launch) (Site, error) {
	key, err := s.LaunchKey(index)
	if err != nil {
		return s, err
	}

	return s.UpdateLaunchByKey(key, l)
}

// UpdateLaunchByKey replaces the launch with the given key wholesale.
func (s Site) UpdateLaunchByKey(key Key, l models.Launch) (Site, error) {
	if !s.launches.has(key) {
		return s, fmt.Errorf("%w: launch %s", ErrUnknownKey, key)
	}
	s.launches = s.launches.update(key, l)

	return s, nil
}

// AddLanding appends a landing and returns the new site with the key assigned to it.
func (s Site) AddLanding(l models.Landing) (Site, Key) {
	key := NewKey()
	s.landings = s.landings.add(key, l)

	return s, key
}

// AddLandingWithKey appends a landing under a known key.
func (s Site) AddLandingWithKey(key Key, l models.Landing) (Site, error) {
	if s.landings.has(key) {
		return s, fmt.Errorf("%w: landing %s", ErrDuplicateKey, key)
	}
	s.landings = s.landings.add(key, l)

	return s, nil
}

// LandingKey returns the key of the landing at index.
func (s Site) LandingKey(index int) (Key, error) {
	return s.landings.keyAt(kindLanding, index)
}

// RemoveLanding removes the landing at index; later landings shift down by one.
func (s Site) RemoveLanding(index int) (Site, error) {
	key, err := s.LandingKey(index)
	if err != nil {
		return s, err
	}

	return s.RemoveLandingByKey(key)
}

// RemoveLandingByKey removes the landing with the given key.
func (s Site) RemoveLandingByKey(key Key) (Site, error) {
	if !s.landings.has(key) {
		return s, fmt.Errorf("%w: landing %s", ErrUnknownKey, key)
	}
	s.landings = s.landings.remove(key)

	return s, nil
}

// UpdateLanding replaces the landing at index wholesale.
func (s Site) UpdateLanding(index int, l models.Landing) (Site, error) {
	key, err := s.LandingKey(index)
	if err != nil {
		return s, err
	}

	return s.UpdateLandingByKey(key, l)
}

// UpdateLandingByKey replaces the landing with the given key wholesale.
func (s Site) UpdateLandingByKey(key Key, l models.Landing) (Site, error) {
	if !s.landings.has(key) {
		return s, fmt.Errorf("%w: landing %s", ErrUnknownKey, key)
	}
	s.landings = s.landings.update(key, l)

	return s, nil
}

// SameTopology reports whether two sites have the same name, country and
// the same launches and landings in the same order. Keys and IDs are ignored.
func (s Site) SameTopology(other Site) bool {
	return s.Name == other.Name &&
		s.Country == other.Country &&
		s.launches.equal(other.launches) &&
		s.landings.equal(other.landings)
}

// Position is a representative coordinate for the whole site: the first
// launch, or the first landing when there are no launches.
func (s Site) Position() (models.Coordinates, bool) {
	if launches := s.Launches(); len(launches) > 0 {
		return launches[0].Location.Coordinates, true
	}
	if landings := s.Landings(); len(landings) > 0 {
		return landings[0].Location.Coordinates, true
	}

	return models.Coordinates{}, false
}
