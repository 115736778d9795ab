package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/utils"
	"firewatch/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUnitRepo struct {
	units         map[primitive.ObjectID]*models.Unit
	setActivation error
	probeMisses   int // initial GetActiveInDepartment calls that report no active unit
}

func newFakeUnitRepo(units ...*models.Unit) *fakeUnitRepo {
	repo := &fakeUnitRepo{units: map[primitive.ObjectID]*models.Unit{}}
	for _, u := range units {
		repo.units[u.ID] = u
	}
	return repo
}

func (r *fakeUnitRepo) Create(ctx context.Context, unit *models.Unit) error {
	unit.ID = primitive.NewObjectID()
	r.units[unit.ID] = unit
	return nil
}

func (r *fakeUnitRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Unit, error) {
	unit, ok := r.units[id]
	if !ok {
		return nil, errs.NotFoundf("unit %s", id.Hex())
	}
	copied := *unit
	return &copied, nil
}

func (r *fakeUnitRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if _, ok := r.units[id]; !ok {
		return errs.NotFoundf("unit %s", id.Hex())
	}
	if name, ok := updates["name"].(string); ok {
		r.units[id].Name = name
	}
	return nil
}

func (r *fakeUnitRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.units, id)
	return nil
}

func (r *fakeUnitRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Unit, int64, error) {
	var out []*models.Unit
	for _, u := range r.units {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUnitRepo) GetByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]*models.Unit, error) {
	var out []*models.Unit
	for _, u := range r.units {
		if u.DepartmentID == departmentID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUnitRepo) GetActiveInDepartment(ctx context.Context, departmentID, excludeUnitID primitive.ObjectID) (*models.Unit, error) {
	if r.probeMisses > 0 {
		r.probeMisses--
		return nil, errs.NotFoundf("active unit in department %s", departmentID.Hex())
	}
	for _, u := range r.units {
		if u.DepartmentID == departmentID && u.IsActive && u.ID != excludeUnitID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errs.NotFoundf("active unit in department %s", departmentID.Hex())
}

func (r *fakeUnitRepo) GetActiveUnits(ctx context.Context) ([]*models.Unit, error) {
	var out []*models.Unit
	for _, u := range r.units {
		if u.IsActive && u.ActivatedAt != nil {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeUnitRepo) SetActivation(ctx context.Context, id primitive.ObjectID, isActive bool, activatedAt *time.Time) error {
	if r.setActivation != nil {
		return r.setActivation
	}
	unit, ok := r.units[id]
	if !ok {
		return errs.NotFoundf("unit %s", id.Hex())
	}
	unit.IsActive = isActive
	unit.ActivatedAt = activatedAt
	return nil
}

type fakeDepartmentRepo struct {
	departments map[primitive.ObjectID]*models.Department
}

func newFakeDepartmentRepo(departments ...*models.Department) *fakeDepartmentRepo {
	repo := &fakeDepartmentRepo{departments: map[primitive.ObjectID]*models.Department{}}
	for _, d := range departments {
		repo.departments[d.ID] = d
	}
	return repo
}

func (r *fakeDepartmentRepo) Create(ctx context.Context, department *models.Department) error {
	department.ID = primitive.NewObjectID()
	r.departments[department.ID] = department
	return nil
}

func (r *fakeDepartmentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	department, ok := r.departments[id]
	if !ok {
		return nil, errs.NotFoundf("department %s", id.Hex())
	}
	return department, nil
}

func (r *fakeDepartmentRepo) GetByName(ctx context.Context, name string) (*models.Department, error) {
	for _, d := range r.departments {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, errs.NotFoundf("department %q", name)
}

func (r *fakeDepartmentRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeDepartmentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.departments, id)
	return nil
}

func (r *fakeDepartmentRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Department, int64, error) {
	var out []*models.Department
	for _, d := range r.departments {
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	require.NoError(t, err)
	return log
}

func newTestUnitService(t *testing.T, unitRepo *fakeUnitRepo, departmentRepo *fakeDepartmentRepo, now time.Time) *unitService {
	t.Helper()
	svc := NewUnitService(unitRepo, departmentRepo, testLogger(t)).(*unitService)
	svc.now = func() time.Time { return now }
	return svc
}

func operationsFixture() (*models.Department, *models.Unit) {
	department := &models.Department{ID: primitive.NewObjectID(), Name: "Operations"}
	shift := "day"
	unit := &models.Unit{
		ID:           primitive.NewObjectID(),
		Name:         "Alpha",
		DepartmentID: department.ID,
		Shift:        &shift,
	}
	return department, unit
}

func TestActivateSetsDutyFields(t *testing.T) {
	department, unit := operationsFixture()
	repo := newFakeUnitRepo(unit)
	now := time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC)
	svc := newTestUnitService(t, repo, newFakeDepartmentRepo(department), now)

	activated, err := svc.Activate(context.Background(), unit.ID)
	require.NoError(t, err)

	assert.True(t, activated.IsActive)
	require.NotNil(t, activated.ActivatedAt)
	assert.Equal(t, now, *activated.ActivatedAt)
	assert.True(t, repo.units[unit.ID].IsActive)
}

func TestActivateRejectsWrongDepartment(t *testing.T) {
	department := &models.Department{ID: primitive.NewObjectID(), Name: "logistics"}
	unit := &models.Unit{ID: primitive.NewObjectID(), Name: "Bravo", DepartmentID: department.ID}
	repo := newFakeUnitRepo(unit)
	svc := newTestUnitService(t, repo, newFakeDepartmentRepo(department), time.Now())

	_, err := svc.Activate(context.Background(), unit.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	assert.False(t, repo.units[unit.ID].IsActive)
}

func TestActivateConflictNamesBlockingUnit(t *testing.T) {
	department, unit := operationsFixture()
	activatedAt := time.Now()
	blocking := &models.Unit{
		ID:           primitive.NewObjectID(),
		Name:         "Bravo",
		DepartmentID: department.ID,
		IsActive:     true,
		ActivatedAt:  &activatedAt,
	}
	repo := newFakeUnitRepo(unit, blocking)
	svc := newTestUnitService(t, repo, newFakeDepartmentRepo(department), time.Now())

	_, err := svc.Activate(context.Background(), unit.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)

	var conflict *errs.ActiveUnitConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, blocking.ID, conflict.UnitID)
	assert.Equal(t, "Bravo", conflict.UnitName)
}

func TestActivateSameUnitIsIdempotent(t *testing.T) {
	department, unit := operationsFixture()
	earlier := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	unit.IsActive = true
	unit.ActivatedAt = &earlier
	repo := newFakeUnitRepo(unit)
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestUnitService(t, repo, newFakeDepartmentRepo(department), now)

	activated, err := svc.Activate(context.Background(), unit.ID)
	require.NoError(t, err)

	assert.True(t, activated.IsActive)
	assert.Equal(t, now, *activated.ActivatedAt, "re-activation refreshes the timestamp")
}

func TestActivateLostRaceReportsWinner(t *testing.T) {
	department, unit := operationsFixture()

	// A concurrent activation slips in between the conflict probe and the
	// write: the probe misses once, the unique index rejects the write, and
	// the re-probe finds the winner.
	activatedAt := time.Now()
	winner := &models.Unit{
		ID:           primitive.NewObjectID(),
		Name:         "Charlie",
		DepartmentID: department.ID,
		IsActive:     true,
		ActivatedAt:  &activatedAt,
	}
	repo := newFakeUnitRepo(unit, winner)
	repo.probeMisses = 1
	repo.setActivation = errs.Wrap(errs.ErrConflict, "duplicate key")
	svc := newTestUnitService(t, repo, newFakeDepartmentRepo(department), time.Now())

	_, err := svc.Activate(context.Background(), unit.ID)
	require.Error(t, err)

	var conflict *errs.ActiveUnitConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, winner.ID, conflict.UnitID)
	assert.Equal(t, "Charlie", conflict.UnitName)
}

func TestDeactivateBeforeCutoffIsTooEarly(t *testing.T) {
	department, unit := operationsFixture()
	activatedAt := time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC)
	unit.IsActive = true
	unit.ActivatedAt = &activatedAt
	repo := newFakeUnitRepo(unit)
	now := time.Date(2024, 1, 11, 6, 59, 59, 0, time.UTC)
	svc := newTestUnitService(t, repo, newFakeDepartmentRepo(department), now)

	_, err := svc.Deactivate(context.Background(), unit.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTooEarly)

	var tooEarly *errs.TooEarlyError
	require.ErrorAs(t, err, &tooEarly)
	assert.Equal(t, time.Date(2024, 1, 11, 7, 0, 0, 0, time.UTC), tooEarly.Cutoff)
	assert.True(t, repo.units[unit.ID].IsActive, "unit stays on duty")
}

func TestDeactivateAtCutoffSucceeds(t *testing.T) {
	department, unit := operationsFixture()
	activatedAt := time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC)
	unit.IsActive = true
	unit.ActivatedAt = &activatedAt
	repo := newFakeUnitRepo(unit)
	now := time.Date(2024, 1, 11, 7, 0, 0, 0, time.UTC)
	svc := newTestUnitService(t, repo, newFakeDepartmentRepo(department), now)

	deactivated, err := svc.Deactivate(context.Background(), unit.ID)
	require.NoError(t, err)

	assert.False(t, deactivated.IsActive)
	assert.Nil(t, deactivated.ActivatedAt)
	assert.False(t, repo.units[unit.ID].IsActive)
}

func TestDeactivateWithoutTimestampIsImmediate(t *testing.T) {
	department, unit := operationsFixture()
	unit.IsActive = true
	unit.ActivatedAt = nil
	repo := newFakeUnitRepo(unit)
	svc := newTestUnitService(t, repo, newFakeDepartmentRepo(department), time.Now())

	deactivated, err := svc.Deactivate(context.Background(), unit.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
}

func TestSweepDeactivatesOnlyOverdueUnits(t *testing.T) {
	department, _ := operationsFixture()

	overdueAt := time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC)
	overdue := &models.Unit{
		ID: primitive.NewObjectID(), Name: "Alpha", DepartmentID: department.ID,
		IsActive: true, ActivatedAt: &overdueAt,
	}

	freshAt := time.Date(2024, 1, 11, 6, 0, 0, 0, time.UTC)
	fresh := &models.Unit{
		ID: primitive.NewObjectID(), Name: "Bravo", DepartmentID: primitive.NewObjectID(),
		IsActive: true, ActivatedAt: &freshAt,
	}

	repo := newFakeUnitRepo(overdue, fresh)
	now := time.Date(2024, 1, 11, 8, 0, 1, 0, time.UTC)
	svc := newTestUnitService(t, repo, newFakeDepartmentRepo(department), now)

	result, err := svc.AutoDeactivateSweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.DeactivatedCount)
	require.Len(t, result.DeactivatedUnits, 1)
	assert.Equal(t, overdue.ID, result.DeactivatedUnits[0].UnitID)
	assert.Equal(t, overdueAt, result.DeactivatedUnits[0].ActivatedAt)
	assert.Equal(t, 0, result.FailedCount)

	assert.False(t, repo.units[overdue.ID].IsActive)
	assert.True(t, repo.units[fresh.ID].IsActive, "unit activated this morning is left alone")
}

func TestSweepJustBeforeCutoffDoesNothing(t *testing.T) {
	department, unit := operationsFixture()
	activatedAt := time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC)
	unit.IsActive = true
	unit.ActivatedAt = &activatedAt
	repo := newFakeUnitRepo(unit)
	now := time.Date(2024, 1, 11, 7, 59, 59, 0, time.UTC)
	svc := newTestUnitService(t, repo, newFakeDepartmentRepo(department), now)

	result, err := svc.AutoDeactivateSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.DeactivatedCount)
	assert.True(t, repo.units[unit.ID].IsActive)
}

func TestSweepToleratesPartialFailure(t *testing.T) {
	department, unit := operationsFixture()
	activatedAt := time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC)
	unit.IsActive = true
	unit.ActivatedAt = &activatedAt
	repo := newFakeUnitRepo(unit)
	repo.setActivation = errors.New("write failed")
	now := time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC)
	svc := newTestUnitService(t, repo, newFakeDepartmentRepo(department), now)

	result, err := svc.AutoDeactivateSweep(context.Background())
	require.NoError(t, err, "sweep never raises for a single unit failure")
	assert.Equal(t, 0, result.DeactivatedCount)
	assert.Equal(t, 1, result.FailedCount)
}

func TestCreateUnitRequiresShiftInOperations(t *testing.T) {
	department, _ := operationsFixture()
	repo := newFakeUnitRepo()
	svc := newTestUnitService(t, repo, newFakeDepartmentRepo(department), time.Now())

	_, err := svc.CreateUnit(context.Background(), &models.Unit{
		Name:         "Delta",
		DepartmentID: department.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpdateUnitIgnoresDutyFields(t *testing.T) {
	department, unit := operationsFixture()
	repo := newFakeUnitRepo(unit)
	svc := newTestUnitService(t, repo, newFakeDepartmentRepo(department), time.Now())

	_, err := svc.UpdateUnit(context.Background(), unit.ID, map[string]interface{}{
		"is_active":    true,
		"activated_at": time.Now(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.False(t, repo.units[unit.ID].IsActive)
}
