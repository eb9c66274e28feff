package models

import "time"

// WindObservation is a wind reading reported by a weather source for one place.
type WindObservation struct {
	Bearing    float64   `json:"bearing"`    // Direction the wind blows from, degrees clockwise from north.
	Speed      float64   `json:"speed"`      // Mean wind speed in m/s.
	Gust       float64   `json:"gust"`       // Gust speed in m/s, zero when unknown.
	ObservedAt time.Time `json:"observedAt"` // Time of the reading, UTC.
}
