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

type personnelRepository struct {
	collection *mongo.Collection
}

func NewPersonnelRepository(db *mongo.Database) interfaces.PersonnelRepository {
	return &personnelRepository{
		collection: db.Collection("fire_personnel"),
	}
}

func (r *personnelRepository) Create(ctx context.Context, personnel *models.FirePersonnel) error {
	personnel.ID = primitive.NewObjectID()
	personnel.CreatedAt = time.Now()
	personnel.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, personnel)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Wrap(errs.ErrConflict, "badge number already in use")
		}
		return fmt.Errorf("failed to create personnel: %w", err)
	}

	return nil
}

func (r *personnelRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FirePersonnel, error) {
	var personnel models.FirePersonnel
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&personnel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("personnel %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get personnel: %w", err)
	}

	return &personnel, nil
}

func (r *personnelRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.FirePersonnel, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find personnel by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var people []*models.FirePersonnel
	for cursor.Next(ctx) {
		var personnel models.FirePersonnel
		if err := cursor.Decode(&personnel); err != nil {
			return nil, fmt.Errorf("failed to decode personnel: %w", err)
		}
		people = append(people, &personnel)
	}

	return people, nil
}

func (r *personnelRepository) GetByStation(ctx context.Context, stationID primitive.ObjectID) ([]*models.FirePersonnel, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{"station_id": stationID},
		options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find personnel by station: %w", err)
	}
	defer cursor.Close(ctx)

	var people []*models.FirePersonnel
	for cursor.Next(ctx) {
		var personnel models.FirePersonnel
		if err := cursor.Decode(&personnel); err != nil {
			return nil, fmt.Errorf("failed to decode personnel: %w", err)
		}
		people = append(people, &personnel)
	}

	return people, nil
}

func (r *personnelRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update personnel: %w", err)
	}
	if result.MatchedCount == 0 {
		return errs.NotFoundf("personnel %s", id.Hex())
	}

	return nil
}

func (r *personnelRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete personnel: %w", err)
	}
	if result.DeletedCount == 0 {
		return errs.NotFoundf("personnel %s", id.Hex())
	}

	return nil
}

func (r *personnelRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.FirePersonnel, int64, error) {
	filter := params.GetSearchFilter([]string{"first_name", "last_name", "badge_number"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count personnel: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list personnel: %w", err)
	}
	defer cursor.Close(ctx)

	var people []*models.FirePersonnel
	for cursor.Next(ctx) {
		var personnel models.FirePersonnel
		if err := cursor.Decode(&personnel); err != nil {
			return nil, 0, fmt.Errorf("failed to decode personnel: %w", err)
		}
		people = append(people, &personnel)
	}

	return people, total, nil
}
