package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the application relies on. Safe to run
// on every startup; mongo treats identical index specs as a no-op.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	specs := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"departments": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"ranks": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"roles": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"groups": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"stations": {
			{
				Keys: bson.D{{Key: "call_sign", Value: 1}},
				Options: options.Index().SetUnique(true).SetPartialFilterExpression(
					bson.M{"call_sign": bson.M{"$exists": true, "$type": "string"}},
				),
			},
			{
				Keys: bson.D{{Key: "place_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetPartialFilterExpression(
					bson.M{"place_id": bson.M{"$exists": true, "$type": "string"}},
				),
			},
			{Keys: bson.D{{Key: "latitude", Value: 1}, {Key: "longitude", Value: 1}}},
		},
		"units": {
			// One active unit per department. The partial filter makes the
			// uniqueness apply only to active units, so any number of
			// inactive units can share a department.
			{
				Keys: bson.D{{Key: "department_id", Value: 1}},
				Options: options.Index().
					SetName("one_active_unit_per_department").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"is_active": true}),
			},
		},
		"fire_reports": {
			{Keys: bson.D{{Key: "station_id", Value: 1}, {Key: "reported_at", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		"chat_messages": {
			{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
	}

	for collection, models := range specs {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
	}

	return nil
}
