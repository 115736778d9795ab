package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/repositories/interfaces"
	"firewatch/internal/utils"
	"firewatch/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UnitService interface {
	CreateUnit(ctx context.Context, unit *models.Unit) (*models.Unit, error)
	GetUnit(ctx context.Context, id primitive.ObjectID) (*models.Unit, error)
	UpdateUnit(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Unit, error)
	DeleteUnit(ctx context.Context, id primitive.ObjectID) error
	ListUnits(ctx context.Context, params *utils.PaginationParams) ([]*models.Unit, int64, error)
	GetUnitsByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]*models.Unit, error)

	// Duty roster transitions
	Activate(ctx context.Context, unitID primitive.ObjectID) (*models.Unit, error)
	Deactivate(ctx context.Context, unitID primitive.ObjectID) (*models.Unit, error)
	AutoDeactivateSweep(ctx context.Context) (*models.SweepResult, error)
}

type unitService struct {
	unitRepo       interfaces.UnitRepository
	departmentRepo interfaces.DepartmentRepository
	logger         *logger.Logger
	now            func() time.Time
}

func NewUnitService(
	unitRepo interfaces.UnitRepository,
	departmentRepo interfaces.DepartmentRepository,
	logger *logger.Logger,
) UnitService {
	return &unitService{
		unitRepo:       unitRepo,
		departmentRepo: departmentRepo,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *unitService) CreateUnit(ctx context.Context, unit *models.Unit) (*models.Unit, error) {
	if err := utils.ValidateStruct(unit); err != nil {
		return nil, errs.Validationf("invalid unit: %v", err)
	}

	department, err := s.departmentRepo.GetByID(ctx, unit.DepartmentID)
	if err != nil {
		return nil, errs.NotFoundf("department %s", unit.DepartmentID.Hex())
	}

	if isOperationsDepartment(department) && unit.Shift == nil {
		return nil, errs.Validationf("shift is required for units in the %s department", models.OperationsDepartmentName)
	}

	// Units are always created off duty.
	unit.IsActive = false
	unit.ActivatedAt = nil

	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	s.logger.WithUnitID(unit.ID).Info("Unit created")
	return unit, nil
}

func (s *unitService) GetUnit(ctx context.Context, id primitive.ObjectID) (*models.Unit, error) {
	return s.unitRepo.GetByID(ctx, id)
}

func (s *unitService) UpdateUnit(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Unit, error) {
	// Duty fields move only through the activate/deactivate transitions.
	delete(updates, "is_active")
	delete(updates, "activated_at")

	if len(updates) == 0 {
		return nil, errs.Validationf("no updatable fields supplied")
	}

	if shift, ok := updates["shift"].(string); ok && shift == "" {
		unit, err := s.unitRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		department, err := s.departmentRepo.GetByID(ctx, unit.DepartmentID)
		if err != nil {
			return nil, err
		}
		if isOperationsDepartment(department) {
			return nil, errs.Validationf("shift is required for units in the %s department", models.OperationsDepartmentName)
		}
	}

	if err := s.unitRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.unitRepo.GetByID(ctx, id)
}

func (s *unitService) DeleteUnit(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.unitRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.unitRepo.Delete(ctx, id)
}

func (s *unitService) ListUnits(ctx context.Context, params *utils.PaginationParams) ([]*models.Unit, int64, error) {
	return s.unitRepo.List(ctx, params)
}

func (s *unitService) GetUnitsByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]*models.Unit, error) {
	return s.unitRepo.GetByDepartment(ctx, departmentID)
}

// Activate places a unit on duty. Only units belonging to the operations
// department run duty cycles, and a department holds at most one active unit
// at a time. Re-activating the unit that already holds the slot is allowed
// and refreshes its activation timestamp.
func (s *unitService) Activate(ctx context.Context, unitID primitive.ObjectID) (*models.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	department, err := s.departmentRepo.GetByID(ctx, unit.DepartmentID)
	if err != nil {
		return nil, errs.Wrap(err, "loading unit department")
	}
	if !isOperationsDepartment(department) {
		return nil, errs.Wrap(errs.ErrInvalidState,
			"only units in the "+models.OperationsDepartmentName+" department can be activated")
	}

	// The conflict probe excludes the unit itself, so re-activation of the
	// current holder passes straight through.
	blocking, err := s.unitRepo.GetActiveInDepartment(ctx, unit.DepartmentID, unit.ID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if blocking != nil {
		return nil, &errs.ActiveUnitConflictError{UnitID: blocking.ID, UnitName: blocking.Name}
	}

	activatedAt := s.now()
	if err := s.unitRepo.SetActivation(ctx, unit.ID, true, &activatedAt); err != nil {
		// A concurrent activation can slip between the probe and the write;
		// the unique index turns that into a conflict. Re-read so the error
		// still names the unit that won.
		if errors.Is(err, errs.ErrConflict) {
			if winner, probeErr := s.unitRepo.GetActiveInDepartment(ctx, unit.DepartmentID, unit.ID); probeErr == nil && winner != nil {
				return nil, &errs.ActiveUnitConflictError{UnitID: winner.ID, UnitName: winner.Name}
			}
		}
		return nil, err
	}

	unit.IsActive = true
	unit.ActivatedAt = &activatedAt

	s.logger.WithUnitID(unit.ID).WithField("activated_at", activatedAt).Info("Unit activated")
	return unit, nil
}

// Deactivate takes a unit off duty. A unit with no activation timestamp comes
// off immediately; otherwise the transition is refused until 07:00 on the
// calendar day after activation.
func (s *unitService) Deactivate(ctx context.Context, unitID primitive.ObjectID) (*models.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	if unit.ActivatedAt != nil {
		cutoff := utils.ManualDeactivationCutoff(*unit.ActivatedAt)
		if s.now().Before(cutoff) {
			return nil, &errs.TooEarlyError{Cutoff: cutoff}
		}
	}

	if err := s.unitRepo.SetActivation(ctx, unit.ID, false, nil); err != nil {
		return nil, err
	}

	unit.IsActive = false
	unit.ActivatedAt = nil

	s.logger.WithUnitID(unit.ID).Info("Unit deactivated")
	return unit, nil
}

// AutoDeactivateSweep force-deactivates every unit still on duty at or past
// 08:00 the day after its activation. A single failed update is logged and
// counted but never aborts the sweep.
func (s *unitService) AutoDeactivateSweep(ctx context.Context) (*models.SweepResult, error) {
	active, err := s.unitRepo.GetActiveUnits(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "listing active units")
	}

	now := s.now()
	result := &models.SweepResult{
		DeactivatedUnits: []models.SweptUnit{},
		SweptAt:          now,
	}

	for _, unit := range active {
		if unit.ActivatedAt == nil {
			continue
		}
		if now.Before(utils.SweepDeactivationCutoff(*unit.ActivatedAt)) {
			continue
		}

		if err := s.unitRepo.SetActivation(ctx, unit.ID, false, nil); err != nil {
			result.FailedCount++
			s.logger.WithUnitID(unit.ID).WithError(err).Error("Sweep failed to deactivate unit")
			continue
		}

		result.DeactivatedCount++
		result.DeactivatedUnits = append(result.DeactivatedUnits, models.SweptUnit{
			UnitID:      unit.ID,
			Name:        unit.Name,
			ActivatedAt: *unit.ActivatedAt,
		})
	}

	s.logger.WithFields(map[string]interface{}{
		"deactivated": result.DeactivatedCount,
		"failed":      result.FailedCount,
	}).Info("Duty sweep finished")

	return result, nil
}

func isOperationsDepartment(department *models.Department) bool {
	return strings.EqualFold(department.Name, models.OperationsDepartmentName)
}
