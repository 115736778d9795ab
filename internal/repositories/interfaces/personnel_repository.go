package interfaces

import (
	"context"

	"firewatch/internal/models"
	"firewatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PersonnelRepository interface {
	Create(ctx context.Context, personnel *models.FirePersonnel) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FirePersonnel, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.FirePersonnel, error)
	GetByStation(ctx context.Context, stationID primitive.ObjectID) ([]*models.FirePersonnel, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.FirePersonnel, int64, error)
}
