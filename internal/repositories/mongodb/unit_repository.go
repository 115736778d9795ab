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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type unitRepository struct {
	collection *mongo.Collection
}

func NewUnitRepository(db *mongo.Database) interfaces.UnitRepository {
	return &unitRepository{
		collection: db.Collection("units"),
	}
}

func (r *unitRepository) Create(ctx context.Context, unit *models.Unit) error {
	unit.ID = primitive.NewObjectID()
	unit.CreatedAt = time.Now()
	unit.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, unit)
	if err != nil {
		return fmt.Errorf("failed to create unit: %w", err)
	}

	return nil
}

func (r *unitRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Unit, error) {
	var unit models.Unit
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&unit)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("unit %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}

	return &unit, nil
}

func (r *unitRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update unit: %w", err)
	}
	if result.MatchedCount == 0 {
		return errs.NotFoundf("unit %s", id.Hex())
	}

	return nil
}

func (r *unitRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	if result.DeletedCount == 0 {
		return errs.NotFoundf("unit %s", id.Hex())
	}

	return nil
}

func (r *unitRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Unit, int64, error) {
	filter := params.GetSearchFilter([]string{"name"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count units: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list units: %w", err)
	}
	defer cursor.Close(ctx)

	var units []*models.Unit
	for cursor.Next(ctx) {
		var unit models.Unit
		if err := cursor.Decode(&unit); err != nil {
			return nil, 0, fmt.Errorf("failed to decode unit: %w", err)
		}
		units = append(units, &unit)
	}

	return units, total, nil
}

func (r *unitRepository) GetByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]*models.Unit, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{"department_id": departmentID},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find units by department: %w", err)
	}
	defer cursor.Close(ctx)

	var units []*models.Unit
	for cursor.Next(ctx) {
		var unit models.Unit
		if err := cursor.Decode(&unit); err != nil {
			return nil, fmt.Errorf("failed to decode unit: %w", err)
		}
		units = append(units, &unit)
	}

	return units, nil
}

// GetActiveInDepartment finds the active unit of a department, excluding the
// given unit id so that re-activating the holder itself is not a conflict.
func (r *unitRepository) GetActiveInDepartment(ctx context.Context, departmentID, excludeUnitID primitive.ObjectID) (*models.Unit, error) {
	filter := bson.M{
		"department_id": departmentID,
		"is_active":     true,
		"_id":           bson.M{"$ne": excludeUnitID},
	}

	var unit models.Unit
	err := r.collection.FindOne(ctx, filter).Decode(&unit)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("active unit in department %s", departmentID.Hex())
		}
		return nil, fmt.Errorf("failed to find active unit: %w", err)
	}

	return &unit, nil
}

func (r *unitRepository) GetActiveUnits(ctx context.Context) ([]*models.Unit, error) {
	filter := bson.M{
		"is_active":    true,
		"activated_at": bson.M{"$ne": nil},
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "activated_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find active units: %w", err)
	}
	defer cursor.Close(ctx)

	var units []*models.Unit
	for cursor.Next(ctx) {
		var unit models.Unit
		if err := cursor.Decode(&unit); err != nil {
			return nil, fmt.Errorf("failed to decode unit: %w", err)
		}
		units = append(units, &unit)
	}

	return units, nil
}

func (r *unitRepository) SetActivation(ctx context.Context, id primitive.ObjectID, isActive bool, activatedAt *time.Time) error {
	updates := bson.M{
		"is_active":    isActive,
		"activated_at": activatedAt,
		"updated_at":   time.Now(),
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		// The partial unique index on (department_id, is_active:true) closes
		// the read-then-write race between two concurrent activations.
		if mongo.IsDuplicateKeyError(err) {
			return errs.Wrap(errs.ErrConflict, "another unit is already active in this department")
		}
		return fmt.Errorf("failed to set unit activation: %w", err)
	}
	if result.MatchedCount == 0 {
		return errs.NotFoundf("unit %s", id.Hex())
	}

	return nil
}
