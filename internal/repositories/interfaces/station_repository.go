package interfaces

import (
	"context"

	"firewatch/internal/models"
	"firewatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StationRepository interface {
	Create(ctx context.Context, station *models.Station) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Station, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Station, int64, error)

	// Descriptor resolution probes, tried in priority order by the report
	// resolver. Each returns errs.ErrNotFound on a miss.
	GetByPlaceID(ctx context.Context, placeID string) (*models.Station, error)
	GetByCoordinates(ctx context.Context, lat, lng float64) (*models.Station, error)
	GetByNameLike(ctx context.Context, name string) (*models.Station, error)

	GetByCallSign(ctx context.Context, callSign string) (*models.Station, error)
}
