package services

import (
	"context"
	"errors"

	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/repositories/interfaces"
	"firewatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rank, role and group services are uniform name-unique CRUD wrappers.

type RankService interface {
	CreateRank(ctx context.Context, rank *models.Rank) (*models.Rank, error)
	GetRank(ctx context.Context, id primitive.ObjectID) (*models.Rank, error)
	UpdateRank(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Rank, error)
	DeleteRank(ctx context.Context, id primitive.ObjectID) error
	ListRanks(ctx context.Context, params *utils.PaginationParams) ([]*models.Rank, int64, error)
}

type RoleService interface {
	CreateRole(ctx context.Context, role *models.Role) (*models.Role, error)
	GetRole(ctx context.Context, id primitive.ObjectID) (*models.Role, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Role, error)
	DeleteRole(ctx context.Context, id primitive.ObjectID) error
	ListRoles(ctx context.Context, params *utils.PaginationParams) ([]*models.Role, int64, error)
}

type GroupService interface {
	CreateGroup(ctx context.Context, group *models.Group) (*models.Group, error)
	GetGroup(ctx context.Context, id primitive.ObjectID) (*models.Group, error)
	UpdateGroup(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Group, error)
	DeleteGroup(ctx context.Context, id primitive.ObjectID) error
	ListGroups(ctx context.Context, params *utils.PaginationParams) ([]*models.Group, int64, error)
}

type rankService struct {
	rankRepo interfaces.RankRepository
}

func NewRankService(rankRepo interfaces.RankRepository) RankService {
	return &rankService{rankRepo: rankRepo}
}

func (s *rankService) CreateRank(ctx context.Context, rank *models.Rank) (*models.Rank, error) {
	if err := utils.ValidateStruct(rank); err != nil {
		return nil, errs.Validationf("invalid rank: %v", err)
	}
	if err := checkNameFree(ctx, rank.Name, primitive.NilObjectID, func(ctx context.Context, name string) (primitive.ObjectID, error) {
		existing, err := s.rankRepo.GetByName(ctx, name)
		if err != nil {
			return primitive.NilObjectID, err
		}
		return existing.ID, nil
	}); err != nil {
		return nil, err
	}
	if err := s.rankRepo.Create(ctx, rank); err != nil {
		return nil, err
	}
	return rank, nil
}

func (s *rankService) GetRank(ctx context.Context, id primitive.ObjectID) (*models.Rank, error) {
	return s.rankRepo.GetByID(ctx, id)
}

func (s *rankService) UpdateRank(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Rank, error) {
	if len(updates) == 0 {
		return nil, errs.Validationf("no updatable fields supplied")
	}
	if name, ok := updates["name"].(string); ok {
		if err := checkNameFree(ctx, name, id, func(ctx context.Context, name string) (primitive.ObjectID, error) {
			existing, err := s.rankRepo.GetByName(ctx, name)
			if err != nil {
				return primitive.NilObjectID, err
			}
			return existing.ID, nil
		}); err != nil {
			return nil, err
		}
	}
	if err := s.rankRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.rankRepo.GetByID(ctx, id)
}

func (s *rankService) DeleteRank(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.rankRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.rankRepo.Delete(ctx, id)
}

func (s *rankService) ListRanks(ctx context.Context, params *utils.PaginationParams) ([]*models.Rank, int64, error) {
	return s.rankRepo.List(ctx, params)
}

type roleService struct {
	roleRepo interfaces.RoleRepository
}

func NewRoleService(roleRepo interfaces.RoleRepository) RoleService {
	return &roleService{roleRepo: roleRepo}
}

func (s *roleService) CreateRole(ctx context.Context, role *models.Role) (*models.Role, error) {
	if err := utils.ValidateStruct(role); err != nil {
		return nil, errs.Validationf("invalid role: %v", err)
	}
	if err := checkNameFree(ctx, role.Name, primitive.NilObjectID, func(ctx context.Context, name string) (primitive.ObjectID, error) {
		existing, err := s.roleRepo.GetByName(ctx, name)
		if err != nil {
			return primitive.NilObjectID, err
		}
		return existing.ID, nil
	}); err != nil {
		return nil, err
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *roleService) GetRole(ctx context.Context, id primitive.ObjectID) (*models.Role, error) {
	return s.roleRepo.GetByID(ctx, id)
}

func (s *roleService) UpdateRole(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Role, error) {
	if len(updates) == 0 {
		return nil, errs.Validationf("no updatable fields supplied")
	}
	if name, ok := updates["name"].(string); ok {
		if err := checkNameFree(ctx, name, id, func(ctx context.Context, name string) (primitive.ObjectID, error) {
			existing, err := s.roleRepo.GetByName(ctx, name)
			if err != nil {
				return primitive.NilObjectID, err
			}
			return existing.ID, nil
		}); err != nil {
			return nil, err
		}
	}
	if err := s.roleRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.roleRepo.GetByID(ctx, id)
}

func (s *roleService) DeleteRole(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.roleRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.roleRepo.Delete(ctx, id)
}

func (s *roleService) ListRoles(ctx context.Context, params *utils.PaginationParams) ([]*models.Role, int64, error) {
	return s.roleRepo.List(ctx, params)
}

type groupService struct {
	groupRepo interfaces.GroupRepository
}

func NewGroupService(groupRepo interfaces.GroupRepository) GroupService {
	return &groupService{groupRepo: groupRepo}
}

func (s *groupService) CreateGroup(ctx context.Context, group *models.Group) (*models.Group, error) {
	if err := utils.ValidateStruct(group); err != nil {
		return nil, errs.Validationf("invalid group: %v", err)
	}
	if err := checkNameFree(ctx, group.Name, primitive.NilObjectID, func(ctx context.Context, name string) (primitive.ObjectID, error) {
		existing, err := s.groupRepo.GetByName(ctx, name)
		if err != nil {
			return primitive.NilObjectID, err
		}
		return existing.ID, nil
	}); err != nil {
		return nil, err
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) GetGroup(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	return s.groupRepo.GetByID(ctx, id)
}

func (s *groupService) UpdateGroup(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Group, error) {
	if len(updates) == 0 {
		return nil, errs.Validationf("no updatable fields supplied")
	}
	if name, ok := updates["name"].(string); ok {
		if err := checkNameFree(ctx, name, id, func(ctx context.Context, name string) (primitive.ObjectID, error) {
			existing, err := s.groupRepo.GetByName(ctx, name)
			if err != nil {
				return primitive.NilObjectID, err
			}
			return existing.ID, nil
		}); err != nil {
			return nil, err
		}
	}
	if err := s.groupRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.groupRepo.GetByID(ctx, id)
}

func (s *groupService) DeleteGroup(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.groupRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, id)
}

func (s *groupService) ListGroups(ctx context.Context, params *utils.PaginationParams) ([]*models.Group, int64, error) {
	return s.groupRepo.List(ctx, params)
}

// checkNameFree rejects a name already held by a different record. The
// lookup returns the holder's id, or errs.ErrNotFound when the name is free.
func checkNameFree(ctx context.Context, name string, self primitive.ObjectID, lookup func(context.Context, string) (primitive.ObjectID, error)) error {
	holder, err := lookup(ctx, name)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		return err
	}
	if holder != self {
		return errs.Wrap(errs.ErrConflict, "name already in use")
	}
	return nil
}
