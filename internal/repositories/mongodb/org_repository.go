package mongodb

import (
	"context"
	"fmt"
	"time"

	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/repositories/interfaces"
	"firewatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Rank, Role and Group stores are structurally identical flat lookups; each
// gets its own thin repository over a shared helper.

type rankRepository struct{ collection *mongo.Collection }
type roleRepository struct{ collection *mongo.Collection }
type groupRepository struct{ collection *mongo.Collection }

func NewRankRepository(db *mongo.Database) interfaces.RankRepository {
	return &rankRepository{collection: db.Collection("ranks")}
}

func NewRoleRepository(db *mongo.Database) interfaces.RoleRepository {
	return &roleRepository{collection: db.Collection("roles")}
}

func NewGroupRepository(db *mongo.Database) interfaces.GroupRepository {
	return &groupRepository{collection: db.Collection("groups")}
}

func insertNamed(ctx context.Context, coll *mongo.Collection, doc interface{}, kind string) error {
	_, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Wrap(errs.ErrConflict, kind+" name already exists")
		}
		return fmt.Errorf("failed to create %s: %w", kind, err)
	}
	return nil
}

func updateByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, updates map[string]interface{}, kind string) error {
	updates["updated_at"] = time.Now()

	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Wrap(errs.ErrConflict, kind+" name already exists")
		}
		return fmt.Errorf("failed to update %s: %w", kind, err)
	}
	if result.MatchedCount == 0 {
		return errs.NotFoundf("%s %s", kind, id.Hex())
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, kind string) error {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	if result.DeletedCount == 0 {
		return errs.NotFoundf("%s %s", kind, id.Hex())
	}
	return nil
}

// Rank

func (r *rankRepository) Create(ctx context.Context, rank *models.Rank) error {
	rank.ID = primitive.NewObjectID()
	rank.CreatedAt = time.Now()
	rank.UpdatedAt = time.Now()
	return insertNamed(ctx, r.collection, rank, "rank")
}

func (r *rankRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rank, error) {
	var rank models.Rank
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rank)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("rank %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get rank: %w", err)
	}
	return &rank, nil
}

func (r *rankRepository) GetByName(ctx context.Context, name string) (*models.Rank, error) {
	var rank models.Rank
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&rank)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("rank %q", name)
		}
		return nil, fmt.Errorf("failed to get rank by name: %w", err)
	}
	return &rank, nil
}

func (r *rankRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return updateByID(ctx, r.collection, id, updates, "rank")
}

func (r *rankRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id, "rank")
}

func (r *rankRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Rank, int64, error) {
	filter := params.GetSearchFilter([]string{"name"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count ranks: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ranks: %w", err)
	}
	defer cursor.Close(ctx)

	var ranks []*models.Rank
	for cursor.Next(ctx) {
		var rank models.Rank
		if err := cursor.Decode(&rank); err != nil {
			return nil, 0, fmt.Errorf("failed to decode rank: %w", err)
		}
		ranks = append(ranks, &rank)
	}

	return ranks, total, nil
}

// Role

func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	role.ID = primitive.NewObjectID()
	role.CreatedAt = time.Now()
	role.UpdatedAt = time.Now()
	return insertNamed(ctx, r.collection, role, "role")
}

func (r *roleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Role, error) {
	var role models.Role
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&role)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("role %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return &role, nil
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&role)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("role %q", name)
		}
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}
	return &role, nil
}

func (r *roleRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return updateByID(ctx, r.collection, id, updates, "role")
}

func (r *roleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id, "role")
}

func (r *roleRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Role, int64, error) {
	filter := params.GetSearchFilter([]string{"name"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count roles: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list roles: %w", err)
	}
	defer cursor.Close(ctx)

	var roles []*models.Role
	for cursor.Next(ctx) {
		var role models.Role
		if err := cursor.Decode(&role); err != nil {
			return nil, 0, fmt.Errorf("failed to decode role: %w", err)
		}
		roles = append(roles, &role)
	}

	return roles, total, nil
}

// Group

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	group.ID = primitive.NewObjectID()
	group.CreatedAt = time.Now()
	group.UpdatedAt = time.Now()
	return insertNamed(ctx, r.collection, group, "group")
}

func (r *groupRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var group models.Group
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("group %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

func (r *groupRepository) GetByName(ctx context.Context, name string) (*models.Group, error) {
	var group models.Group
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("group %q", name)
		}
		return nil, fmt.Errorf("failed to get group by name: %w", err)
	}
	return &group, nil
}

func (r *groupRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return updateByID(ctx, r.collection, id, updates, "group")
}

func (r *groupRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id, "group")
}

func (r *groupRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Group, int64, error) {
	filter := params.GetSearchFilter([]string{"name"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []*models.Group
	for cursor.Next(ctx) {
		var group models.Group
		if err := cursor.Decode(&group); err != nil {
			return nil, 0, fmt.Errorf("failed to decode group: %w", err)
		}
		groups = append(groups, &group)
	}

	return groups, total, nil
}
