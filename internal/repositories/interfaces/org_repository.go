package interfaces

import (
	"context"

	"firewatch/internal/models"
	"firewatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RankRepository interface {
	Create(ctx context.Context, rank *models.Rank) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rank, error)
	GetByName(ctx context.Context, name string) (*models.Rank, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Rank, int64, error)
}

type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Role, int64, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error)
	GetByName(ctx context.Context, name string) (*models.Group, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Group, int64, error)
}
