package models

import (
	"fmt"
	"math"
)

// GeoPoint is a GeoJSON point. Coordinates are stored as [longitude, latitude]
// so the field can carry a 2dsphere index.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a point from a latitude and longitude pair
func NewGeoPoint(lat, lon float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

// Lat returns the latitude of the point
func (p GeoPoint) Lat() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Lon returns the longitude of the point
func (p GeoPoint) Lon() float64 {
	if len(p.Coordinates) < 1 {
		return 0
	}
	return p.Coordinates[0]
}

// Validate checks that the point has two coordinates within range
func (p GeoPoint) Validate() error {
	if len(p.Coordinates) != 2 {
		return NewValidationError("coordinates must be [longitude, latitude]", nil)
	}
	return ValidateLatLon(p.Lat(), p.Lon())
}

// ValidateLatLon rejects latitudes outside [-90, 90] and longitudes outside [-180, 180].
// NaN is never in range.
func ValidateLatLon(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return NewValidationError("Latitude must be between -90 and 90, Longitude between -180 and 180",
			fmt.Errorf("got lat=%v lon=%v", lat, lon))
	}
	return nil
}
