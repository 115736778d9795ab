package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

type GoogleMapsGeocoder struct {
	client *maps.Client
}

func NewGoogleMapsGeocoder(apiKey string) (*GoogleMapsGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	return &GoogleMapsGeocoder{client: client}, nil
}

func (g *GoogleMapsGeocoder) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	req := &maps.GeocodingRequest{
		Address: address,
	}

	results, err := g.client.Geocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no geocoding results for %q", address)
	}

	first := results[0]
	return &GeocodeResult{
		PlaceID:   first.PlaceID,
		Address:   first.FormattedAddress,
		Latitude:  first.Geometry.Location.Lat,
		Longitude: first.Geometry.Location.Lng,
	}, nil
}

func (g *GoogleMapsGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResult, error) {
	req := &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	}

	results, err := g.client.ReverseGeocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("reverse geocoding failed: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no reverse geocoding results for (%v, %v)", lat, lng)
	}

	first := results[0]
	return &GeocodeResult{
		PlaceID:   first.PlaceID,
		Address:   first.FormattedAddress,
		Latitude:  first.Geometry.Location.Lat,
		Longitude: first.Geometry.Location.Lng,
	}, nil
}
