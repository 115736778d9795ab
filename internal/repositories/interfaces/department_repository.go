package interfaces

import (
	"context"

	"firewatch/internal/models"
	"firewatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error)
	GetByName(ctx context.Context, name string) (*models.Department, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Department, int64, error)
}
