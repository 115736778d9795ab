package services

import (
	"context"
	"errors"

	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/repositories/interfaces"
	"firewatch/internal/utils"
	"firewatch/pkg/logger"
	"firewatch/pkg/maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StationService interface {
	CreateStation(ctx context.Context, station *models.Station) (*models.Station, error)
	GetStation(ctx context.Context, id primitive.ObjectID) (*models.Station, error)
	UpdateStation(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Station, error)
	DeleteStation(ctx context.Context, id primitive.ObjectID) error
	ListStations(ctx context.Context, params *utils.PaginationParams) ([]*models.Station, int64, error)
}

type stationService struct {
	stationRepo interfaces.StationRepository
	geocoder    maps.Geocoder
	logger      *logger.Logger
}

// NewStationService builds the station CRUD layer. geocoder may be nil;
// place id backfill is then skipped.
func NewStationService(stationRepo interfaces.StationRepository, geocoder maps.Geocoder, logger *logger.Logger) StationService {
	return &stationService{
		stationRepo: stationRepo,
		geocoder:    geocoder,
		logger:      logger,
	}
}

func (s *stationService) CreateStation(ctx context.Context, station *models.Station) (*models.Station, error) {
	if station.Name == "" {
		return nil, errs.Validationf("station name is required")
	}
	if station.Latitude != nil && station.Longitude != nil {
		if !utils.IsValidCoordinates(*station.Latitude, *station.Longitude) {
			return nil, errs.Validationf("coordinates out of range")
		}
	}

	if station.CallSign != "" {
		if _, err := s.stationRepo.GetByCallSign(ctx, station.CallSign); err == nil {
			return nil, errs.Wrap(errs.ErrConflict, "call sign already in use")
		} else if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
	}

	s.backfillPlaceID(ctx, station)

	if err := s.stationRepo.Create(ctx, station); err != nil {
		return nil, err
	}

	s.logger.WithField("station_id", station.ID.Hex()).Info("Station created")
	return station, nil
}

func (s *stationService) GetStation(ctx context.Context, id primitive.ObjectID) (*models.Station, error) {
	return s.stationRepo.GetByID(ctx, id)
}

func (s *stationService) UpdateStation(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Station, error) {
	if len(updates) == 0 {
		return nil, errs.Validationf("no updatable fields supplied")
	}

	if callSign, ok := updates["call_sign"].(string); ok && callSign != "" {
		existing, err := s.stationRepo.GetByCallSign(ctx, callSign)
		if err == nil && existing.ID != id {
			return nil, errs.Wrap(errs.ErrConflict, "call sign already in use")
		}
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
	}

	if err := s.stationRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.stationRepo.GetByID(ctx, id)
}

func (s *stationService) DeleteStation(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.stationRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.stationRepo.Delete(ctx, id)
}

func (s *stationService) ListStations(ctx context.Context, params *utils.PaginationParams) ([]*models.Station, int64, error) {
	return s.stationRepo.List(ctx, params)
}

// backfillPlaceID resolves a place id from coordinates so descriptor-based
// report lookups can match the station later. Best effort only.
func (s *stationService) backfillPlaceID(ctx context.Context, station *models.Station) {
	if s.geocoder == nil || station.PlaceID != "" || station.Latitude == nil || station.Longitude == nil {
		return
	}

	result, err := s.geocoder.ReverseGeocode(ctx, *station.Latitude, *station.Longitude)
	if err != nil {
		s.logger.WithError(err).Debug("Place id backfill failed")
		return
	}
	station.PlaceID = result.PlaceID
}
