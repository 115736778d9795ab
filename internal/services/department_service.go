package services

import (
	"context"
	"errors"

	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/repositories/interfaces"
	"firewatch/internal/utils"
	"firewatch/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DepartmentService interface {
	CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error)
	GetDepartment(ctx context.Context, id primitive.ObjectID) (*models.Department, error)
	UpdateDepartment(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id primitive.ObjectID) error
	ListDepartments(ctx context.Context, params *utils.PaginationParams) ([]*models.Department, int64, error)
}

type departmentService struct {
	departmentRepo interfaces.DepartmentRepository
	unitRepo       interfaces.UnitRepository
	logger         *logger.Logger
}

func NewDepartmentService(
	departmentRepo interfaces.DepartmentRepository,
	unitRepo interfaces.UnitRepository,
	logger *logger.Logger,
) DepartmentService {
	return &departmentService{
		departmentRepo: departmentRepo,
		unitRepo:       unitRepo,
		logger:         logger,
	}
}

func (s *departmentService) CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error) {
	if err := utils.ValidateStruct(department); err != nil {
		return nil, errs.Validationf("invalid department: %v", err)
	}

	if _, err := s.departmentRepo.GetByName(ctx, department.Name); err == nil {
		return nil, errs.Wrap(errs.ErrConflict, "department name already in use")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *departmentService) GetDepartment(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

func (s *departmentService) UpdateDepartment(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Department, error) {
	if len(updates) == 0 {
		return nil, errs.Validationf("no updatable fields supplied")
	}

	if name, ok := updates["name"].(string); ok {
		existing, err := s.departmentRepo.GetByName(ctx, name)
		if err == nil && existing.ID != id {
			return nil, errs.Wrap(errs.ErrConflict, "department name already in use")
		}
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
	}

	if err := s.departmentRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.departmentRepo.GetByID(ctx, id)
}

func (s *departmentService) DeleteDepartment(ctx context.Context, id primitive.ObjectID) error {
	units, err := s.unitRepo.GetByDepartment(ctx, id)
	if err != nil {
		return err
	}
	if len(units) > 0 {
		return errs.Wrap(errs.ErrConflict, "department still has units")
	}
	return s.departmentRepo.Delete(ctx, id)
}

func (s *departmentService) ListDepartments(ctx context.Context, params *utils.PaginationParams) ([]*models.Department, int64, error) {
	return s.departmentRepo.List(ctx, params)
}
