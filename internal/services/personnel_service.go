package services

import (
	"context"

	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/repositories/interfaces"
	"firewatch/internal/utils"
	"firewatch/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PersonnelService interface {
	CreatePersonnel(ctx context.Context, personnel *models.FirePersonnel) (*models.FirePersonnel, error)
	GetPersonnel(ctx context.Context, id primitive.ObjectID) (*models.FirePersonnel, error)
	UpdatePersonnel(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.FirePersonnel, error)
	DeletePersonnel(ctx context.Context, id primitive.ObjectID) error
	ListPersonnel(ctx context.Context, params *utils.PaginationParams) ([]*models.FirePersonnel, int64, error)
	GetStationPersonnel(ctx context.Context, stationID primitive.ObjectID) ([]*models.FirePersonnel, error)
}

type personnelService struct {
	personnelRepo interfaces.PersonnelRepository
	stationRepo   interfaces.StationRepository
	rankRepo      interfaces.RankRepository
	roleRepo      interfaces.RoleRepository
	groupRepo     interfaces.GroupRepository
	unitRepo      interfaces.UnitRepository
	logger        *logger.Logger
}

func NewPersonnelService(
	personnelRepo interfaces.PersonnelRepository,
	stationRepo interfaces.StationRepository,
	rankRepo interfaces.RankRepository,
	roleRepo interfaces.RoleRepository,
	groupRepo interfaces.GroupRepository,
	unitRepo interfaces.UnitRepository,
	logger *logger.Logger,
) PersonnelService {
	return &personnelService{
		personnelRepo: personnelRepo,
		stationRepo:   stationRepo,
		rankRepo:      rankRepo,
		roleRepo:      roleRepo,
		groupRepo:     groupRepo,
		unitRepo:      unitRepo,
		logger:        logger,
	}
}

func (s *personnelService) CreatePersonnel(ctx context.Context, personnel *models.FirePersonnel) (*models.FirePersonnel, error) {
	if err := utils.ValidateStruct(personnel); err != nil {
		return nil, errs.Validationf("invalid personnel: %v", err)
	}

	phone := utils.NormalizePhone(personnel.Phone)
	if !utils.IsValidPhone(phone) {
		return nil, errs.Validationf("invalid phone number %q", personnel.Phone)
	}
	personnel.Phone = phone

	if err := s.checkReferences(ctx, personnel.RankID, personnel.RoleID, personnel.GroupID, personnel.StationID, personnel.UnitID); err != nil {
		return nil, err
	}

	if err := s.personnelRepo.Create(ctx, personnel); err != nil {
		return nil, err
	}

	s.logger.WithField("personnel_id", personnel.ID.Hex()).Info("Personnel created")
	return personnel, nil
}

func (s *personnelService) GetPersonnel(ctx context.Context, id primitive.ObjectID) (*models.FirePersonnel, error) {
	return s.personnelRepo.GetByID(ctx, id)
}

func (s *personnelService) UpdatePersonnel(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.FirePersonnel, error) {
	if len(updates) == 0 {
		return nil, errs.Validationf("no updatable fields supplied")
	}

	if phone, ok := updates["phone"].(string); ok {
		normalized := utils.NormalizePhone(phone)
		if !utils.IsValidPhone(normalized) {
			return nil, errs.Validationf("invalid phone number %q", phone)
		}
		updates["phone"] = normalized
	}

	if err := s.personnelRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.personnelRepo.GetByID(ctx, id)
}

func (s *personnelService) DeletePersonnel(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.personnelRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.personnelRepo.Delete(ctx, id)
}

func (s *personnelService) ListPersonnel(ctx context.Context, params *utils.PaginationParams) ([]*models.FirePersonnel, int64, error) {
	return s.personnelRepo.List(ctx, params)
}

func (s *personnelService) GetStationPersonnel(ctx context.Context, stationID primitive.ObjectID) ([]*models.FirePersonnel, error) {
	if _, err := s.stationRepo.GetByID(ctx, stationID); err != nil {
		return nil, err
	}
	return s.personnelRepo.GetByStation(ctx, stationID)
}

// checkReferences verifies every supplied organizational reference before a
// personnel record is written.
func (s *personnelService) checkReferences(ctx context.Context, rankID, roleID, groupID, stationID, unitID *primitive.ObjectID) error {
	if rankID != nil {
		if _, err := s.rankRepo.GetByID(ctx, *rankID); err != nil {
			return err
		}
	}
	if roleID != nil {
		if _, err := s.roleRepo.GetByID(ctx, *roleID); err != nil {
			return err
		}
	}
	if groupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *groupID); err != nil {
			return err
		}
	}
	if stationID != nil {
		if _, err := s.stationRepo.GetByID(ctx, *stationID); err != nil {
			return err
		}
	}
	if unitID != nil {
		if _, err := s.unitRepo.GetByID(ctx, *unitID); err != nil {
			return err
		}
	}
	return nil
}
