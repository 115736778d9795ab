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

type stationRepository struct {
	collection *mongo.Collection
}

func NewStationRepository(db *mongo.Database) interfaces.StationRepository {
	return &stationRepository{
		collection: db.Collection("stations"),
	}
}

func (r *stationRepository) Create(ctx context.Context, station *models.Station) error {
	station.ID = primitive.NewObjectID()
	station.CreatedAt = time.Now()
	station.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, station)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Wrap(errs.ErrConflict, "station call sign or place id already in use")
		}
		return fmt.Errorf("failed to create station: %w", err)
	}

	return nil
}

func (r *stationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Station, error) {
	var station models.Station
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&station)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("station %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get station: %w", err)
	}

	return &station, nil
}

func (r *stationRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Wrap(errs.ErrConflict, "station call sign or place id already in use")
		}
		return fmt.Errorf("failed to update station: %w", err)
	}
	if result.MatchedCount == 0 {
		return errs.NotFoundf("station %s", id.Hex())
	}

	return nil
}

func (r *stationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete station: %w", err)
	}
	if result.DeletedCount == 0 {
		return errs.NotFoundf("station %s", id.Hex())
	}

	return nil
}

func (r *stationRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Station, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "call_sign"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count stations: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stations: %w", err)
	}
	defer cursor.Close(ctx)

	var stations []*models.Station
	for cursor.Next(ctx) {
		var station models.Station
		if err := cursor.Decode(&station); err != nil {
			return nil, 0, fmt.Errorf("failed to decode station: %w", err)
		}
		stations = append(stations, &station)
	}

	return stations, total, nil
}

func (r *stationRepository) GetByPlaceID(ctx context.Context, placeID string) (*models.Station, error) {
	return r.findOne(ctx, bson.M{"place_id": placeID}, fmt.Sprintf("station with place id %q", placeID))
}

func (r *stationRepository) GetByCoordinates(ctx context.Context, lat, lng float64) (*models.Station, error) {
	filter := bson.M{"latitude": lat, "longitude": lng}
	return r.findOne(ctx, filter, fmt.Sprintf("station at (%v, %v)", lat, lng))
}

// GetByNameLike matches a case-insensitive substring of the station name.
func (r *stationRepository) GetByNameLike(ctx context.Context, name string) (*models.Station, error) {
	filter := bson.M{"name": bson.M{"$regex": utils.EscapeRegex(name), "$options": "i"}}
	return r.findOne(ctx, filter, fmt.Sprintf("station named like %q", name))
}

func (r *stationRepository) GetByCallSign(ctx context.Context, callSign string) (*models.Station, error) {
	return r.findOne(ctx, bson.M{"call_sign": callSign}, fmt.Sprintf("station with call sign %q", callSign))
}

func (r *stationRepository) findOne(ctx context.Context, filter bson.M, what string) (*models.Station, error) {
	var station models.Station
	err := r.collection.FindOne(ctx, filter).Decode(&station)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("%s", what)
		}
		return nil, fmt.Errorf("failed to find station: %w", err)
	}

	return &station, nil
}
