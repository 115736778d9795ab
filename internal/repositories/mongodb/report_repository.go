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

type fireReportRepository struct {
	collection *mongo.Collection
}

func NewFireReportRepository(db *mongo.Database) interfaces.FireReportRepository {
	return &fireReportRepository{
		collection: db.Collection("fire_reports"),
	}
}

func (r *fireReportRepository) Create(ctx context.Context, report *models.FireReport) error {
	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now()
	report.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to create fire report: %w", err)
	}

	return nil
}

func (r *fireReportRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FireReport, error) {
	var report models.FireReport
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFoundf("fire report %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get fire report: %w", err)
	}

	return &report, nil
}

func (r *fireReportRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update fire report: %w", err)
	}
	if result.MatchedCount == 0 {
		return errs.NotFoundf("fire report %s", id.Hex())
	}

	return nil
}

func (r *fireReportRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete fire report: %w", err)
	}
	if result.DeletedCount == 0 {
		return errs.NotFoundf("fire report %s", id.Hex())
	}

	return nil
}

func (r *fireReportRepository) List(ctx context.Context, filter *interfaces.ReportFilter, params *utils.PaginationParams) ([]*models.FireReport, int64, error) {
	query := bson.M{}
	if filter != nil {
		if filter.Status != nil {
			query["status"] = *filter.Status
		}
		if filter.Priority != nil {
			query["priority"] = *filter.Priority
		}
		if filter.StationID != nil {
			query["station_id"] = *filter.StationID
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count fire reports: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fire reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []*models.FireReport
	for cursor.Next(ctx) {
		var report models.FireReport
		if err := cursor.Decode(&report); err != nil {
			return nil, 0, fmt.Errorf("failed to decode fire report: %w", err)
		}
		reports = append(reports, &report)
	}

	return reports, total, nil
}

// CountBuckets runs a single faceted aggregation over the matching reports.
// The result always carries every bucket; buckets the data never hit stay 0.
func (r *fireReportRepository) CountBuckets(ctx context.Context, filter *models.ReportStatsFilter) (*models.ReportStats, error) {
	match := bson.M{}
	if filter != nil {
		if filter.StationID != nil {
			match["station_id"] = *filter.StationID
		}
		reported := bson.M{}
		if filter.From != nil {
			reported["$gte"] = *filter.From
		}
		if filter.To != nil {
			reported["$lte"] = *filter.To
		}
		if len(reported) > 0 {
			match["reported_at"] = reported
		}
	}

	groupBy := func(field string) bson.A {
		return bson.A{
			bson.M{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}},
		}
	}

	pipeline := bson.A{
		bson.M{"$match": match},
		bson.M{"$facet": bson.M{
			"total":       bson.A{bson.M{"$count": "count"}},
			"by_status":   groupBy("status"),
			"by_priority": groupBy("priority"),
			"by_type":     groupBy("incident_type"),
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate fire report stats: %w", err)
	}
	defer cursor.Close(ctx)

	var raw []struct {
		Total []struct {
			Count int64 `bson:"count"`
		} `bson:"total"`
		ByStatus []struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		} `bson:"by_status"`
		ByPriority []struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		} `bson:"by_priority"`
		ByType []struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		} `bson:"by_type"`
	}
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode fire report stats: %w", err)
	}

	stats := models.NewReportStats()
	if len(raw) == 0 {
		return stats, nil
	}

	if len(raw[0].Total) > 0 {
		stats.Total = raw[0].Total[0].Count
	}
	for _, bucket := range raw[0].ByStatus {
		if status := models.ReportStatus(bucket.ID); status.Valid() {
			stats.ByStatus[status] = bucket.Count
		}
	}
	for _, bucket := range raw[0].ByPriority {
		if priority := models.ReportPriority(bucket.ID); priority.Valid() {
			stats.ByPriority[priority] = bucket.Count
		}
	}
	for _, bucket := range raw[0].ByType {
		if incidentType := models.IncidentType(bucket.ID); incidentType.Valid() {
			stats.ByType[incidentType] = bucket.Count
		}
	}

	return stats, nil
}
