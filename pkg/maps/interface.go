package maps

import "context"

// Geocoder is the slice of mapping functionality the platform uses: turning
// incident coordinates into a human-readable place name, and vice versa.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResult, error)
}

type GeocodeResult struct {
	PlaceID   string  `json:"place_id"`
	Address   string  `json:"formatted_address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
