package interfaces

import (
	"context"
	"time"

	"firewatch/internal/models"
	"firewatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UnitRepository interface {
	Create(ctx context.Context, unit *models.Unit) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Unit, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Unit, int64, error)

	// Duty roster queries
	GetByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]*models.Unit, error)
	GetActiveInDepartment(ctx context.Context, departmentID, excludeUnitID primitive.ObjectID) (*models.Unit, error)
	GetActiveUnits(ctx context.Context) ([]*models.Unit, error)

	// SetActivation writes both duty fields in one update. Implementations
	// must surface a unique-index violation as errs.ErrConflict.
	SetActivation(ctx context.Context, id primitive.ObjectID, isActive bool, activatedAt *time.Time) error
}
