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

type departmentRepository struct {
	collection *mongo.Collection
}

func NewDepartmentRepository(db *mongo.Database) interfaces.DepartmentRepository {
	return &departmentRepository{
		collection: db.Collection("departments"),
	}
}

func (r *departmentRepository) Create(ctx context.Context, department *models.Department) error {
	department.ID = primitive.NewObjectID()
	department.CreatedAt = time.Now()
	department.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, department)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Wrap(errs.ErrConflict, fmt.Sprintf("department %q already exists", department.Name))
		}
		return fmt.Errorf("failed to create department: %w", err)
	}

	return nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	var department models.Department
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&department)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("department %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	return &department, nil
}

func (r *departmentRepository) GetByName(ctx context.Context, name string) (*models.Department, error) {
	filter := bson.M{"name": bson.M{"$regex": "^" + utils.EscapeRegex(name) + "$", "$options": "i"}}

	var department models.Department
	err := r.collection.FindOne(ctx, filter).Decode(&department)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("department %q", name)
		}
		return nil, fmt.Errorf("failed to get department by name: %w", err)
	}

	return &department, nil
}

func (r *departmentRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Wrap(errs.ErrConflict, "department name already in use")
		}
		return fmt.Errorf("failed to update department: %w", err)
	}
	if result.MatchedCount == 0 {
		return errs.NotFoundf("department %s", id.Hex())
	}

	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if result.DeletedCount == 0 {
		return errs.NotFoundf("department %s", id.Hex())
	}

	return nil
}

func (r *departmentRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Department, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "description"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list departments: %w", err)
	}
	defer cursor.Close(ctx)

	var departments []*models.Department
	for cursor.Next(ctx) {
		var department models.Department
		if err := cursor.Decode(&department); err != nil {
			return nil, 0, fmt.Errorf("failed to decode department: %w", err)
		}
		departments = append(departments, &department)
	}

	return departments, total, nil
}
