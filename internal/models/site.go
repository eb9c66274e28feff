package models

import (
	"sync"

	"github.com/UnknownOlympus/aeolus/internal/direction"
	"github.com/go-playground/validator/v10"
)

// SiteType describes how pilots get airborne from a launch. It does not
// affect any direction arithmetic.
type SiteType string

const (
	// SiteTypeHang is a foot launch from a slope.
	SiteTypeHang SiteType = "hang"
	// SiteTypeWinch is a tow launch on flat ground.
	SiteTypeWinch SiteType = "winch"
)

// Elevation is a height above sea level in meters.
type Elevation float64

// Location is a named place. Country is an optional ISO code; empty means unknown.
type Location struct {
	Coordinates

	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// Launch is a point pilots take off from, with the arc of wind directions it accepts.
type Launch struct {
	Location  Location        `json:"location"`
	Elevation Elevation       `json:"elevation" validate:"gte=0"`
	Direction direction.Range `json:"direction"`
	SiteType  SiteType        `json:"siteType"  validate:"required"`
}

// Landing is a point pilots land at. Landings have no direction constraint.
type Landing struct {
	Location  Location  `json:"location"`
	Elevation Elevation `json:"elevation" validate:"gte=0"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks struct tags of models (and any other tagged struct).
func Validate(v any) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	return validate.Struct(v)
}
