package interfaces

import (
	"context"

	"firewatch/internal/models"
	"firewatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportFilter struct {
	Status    *models.ReportStatus
	Priority  *models.ReportPriority
	StationID *primitive.ObjectID
}

type FireReportRepository interface {
	Create(ctx context.Context, report *models.FireReport) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FireReport, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter *ReportFilter, params *utils.PaginationParams) ([]*models.FireReport, int64, error)

	// CountBuckets aggregates matching reports into status, priority and
	// incident-type buckets. Buckets absent from the data come back as zero.
	CountBuckets(ctx context.Context, filter *models.ReportStatsFilter) (*models.ReportStats, error)
}
