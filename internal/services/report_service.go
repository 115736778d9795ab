package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/repositories/interfaces"
	"firewatch/internal/utils"
	"firewatch/pkg/cache"
	"firewatch/pkg/logger"
	"firewatch/pkg/maps"
	"firewatch/pkg/sms"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportService interface {
	CreateReport(ctx context.Context, request *models.CreateReportRequest) (*models.ExpandedReport, error)
	GetReport(ctx context.Context, id primitive.ObjectID) (*models.ExpandedReport, error)
	UpdateReport(ctx context.Context, id primitive.ObjectID, patch *models.UpdateReportRequest) (*models.FireReport, error)
	DeleteReport(ctx context.Context, id primitive.ObjectID) error
	ListReports(ctx context.Context, filter *interfaces.ReportFilter, params *utils.PaginationParams) ([]*models.FireReport, int64, error)
	ComputeStats(ctx context.Context, filter *models.ReportStatsFilter) (*models.ReportStats, error)
}

type reportService struct {
	reportRepo    interfaces.FireReportRepository
	stationRepo   interfaces.StationRepository
	userRepo      interfaces.UserRepository
	personnelRepo interfaces.PersonnelRepository
	cache         *cache.RedisCache
	geocoder      maps.Geocoder
	smsProvider   sms.Provider
	logger        *logger.Logger
	now           func() time.Time
}

// NewReportService wires the incident report resolver. geocoder and
// smsProvider may be nil; enrichment and alerting degrade to no-ops.
func NewReportService(
	reportRepo interfaces.FireReportRepository,
	stationRepo interfaces.StationRepository,
	userRepo interfaces.UserRepository,
	personnelRepo interfaces.PersonnelRepository,
	redisCache *cache.RedisCache,
	geocoder maps.Geocoder,
	smsProvider sms.Provider,
	logger *logger.Logger,
) ReportService {
	return &reportService{
		reportRepo:    reportRepo,
		stationRepo:   stationRepo,
		userRepo:      userRepo,
		personnelRepo: personnelRepo,
		cache:         redisCache,
		geocoder:      geocoder,
		smsProvider:   smsProvider,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *reportService) CreateReport(ctx context.Context, request *models.CreateReportRequest) (*models.ExpandedReport, error) {
	if err := validateCreateReport(request); err != nil {
		return nil, err
	}

	reporter, reporterUser, reporterPersonnel, err := s.resolveReporter(ctx, request.UserID)
	if err != nil {
		return nil, err
	}

	station, err := s.resolveStation(ctx, request.Station)
	if err != nil {
		return nil, err
	}

	report := &models.FireReport{
		IncidentType:      models.IncidentType(request.IncidentType),
		IncidentName:      request.IncidentName,
		Location:          *request.Location,
		StationID:         station.ID,
		Reporter:          *reporter,
		ReportedAt:        s.now(),
		Status:            models.ReportStatusPending,
		Priority:          models.ReportPriorityHigh,
		Description:       request.Description,
		EstimatedDamage:   models.DamageModerate,
		AssignedPersonnel: []primitive.ObjectID{},
		Notes:             request.Notes,
	}

	if request.Priority != "" {
		report.Priority = models.ReportPriority(request.Priority)
	}
	if request.EstimatedDamage != "" {
		report.EstimatedDamage = models.DamageEstimate(request.EstimatedDamage)
	}
	if request.EstimatedCasualties != nil {
		report.EstimatedCasualties = *request.EstimatedCasualties
	}

	assigned, err := parseObjectIDs(request.AssignedPersonnel)
	if err != nil {
		return nil, err
	}
	report.AssignedPersonnel = assigned

	s.enrichLocation(ctx, &report.Location)

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, errs.Wrap(err, "persisting report")
	}

	s.logger.WithReportID(report.ID).WithFields(map[string]interface{}{
		"incident_type": report.IncidentType,
		"station_id":    report.StationID.Hex(),
		"reporter_kind": report.Reporter.Kind,
	}).Info("Fire report created")

	expanded := &models.ExpandedReport{
		FireReport:        *report,
		Station:           station,
		ReporterUser:      reporterUser,
		ReporterPersonnel: reporterPersonnel,
	}
	if len(report.AssignedPersonnel) > 0 {
		personnel, err := s.personnelRepo.GetByIDs(ctx, report.AssignedPersonnel)
		if err != nil {
			s.logger.WithReportID(report.ID).WithError(err).Warn("Failed to expand assigned personnel")
		} else {
			expanded.Personnel = personnel
		}
	}

	s.alertStationPersonnel(ctx, report, station)

	return expanded, nil
}

func (s *reportService) GetReport(ctx context.Context, id primitive.ObjectID) (*models.ExpandedReport, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	expanded := &models.ExpandedReport{FireReport: *report}

	if station, err := s.stationRepo.GetByID(ctx, report.StationID); err == nil {
		expanded.Station = station
	}
	switch report.Reporter.Kind {
	case models.ReporterTypeUser:
		if user, err := s.userRepo.GetByID(ctx, report.Reporter.ID); err == nil {
			expanded.ReporterUser = user
		}
	case models.ReporterTypePersonnel:
		if personnel, err := s.personnelRepo.GetByID(ctx, report.Reporter.ID); err == nil {
			expanded.ReporterPersonnel = personnel
		}
	}
	if len(report.AssignedPersonnel) > 0 {
		if personnel, err := s.personnelRepo.GetByIDs(ctx, report.AssignedPersonnel); err == nil {
			expanded.Personnel = personnel
		}
	}

	return expanded, nil
}

func (s *reportService) UpdateReport(ctx context.Context, id primitive.ObjectID, patch *models.UpdateReportRequest) (*models.FireReport, error) {
	existing, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if patch.Status != nil {
		status := models.ReportStatus(*patch.Status)
		if !status.Valid() {
			return nil, errs.Validationf("invalid status %q", *patch.Status)
		}
		updates["status"] = status

		// resolved_at is stamped the first time a report reaches resolved,
		// unless the caller supplies an explicit timestamp.
		if status == models.ReportStatusResolved && patch.ResolvedAt == nil && existing.ResolvedAt == nil {
			updates["resolved_at"] = s.now()
		}
	}
	if patch.ResolvedAt != nil {
		updates["resolved_at"] = *patch.ResolvedAt
	}
	if patch.Priority != nil {
		priority := models.ReportPriority(*patch.Priority)
		if !priority.Valid() {
			return nil, errs.Validationf("invalid priority %q", *patch.Priority)
		}
		updates["priority"] = priority
	}
	if patch.EstimatedDamage != nil {
		damage := models.DamageEstimate(*patch.EstimatedDamage)
		if !damage.Valid() {
			return nil, errs.Validationf("invalid estimated damage %q", *patch.EstimatedDamage)
		}
		updates["estimated_damage"] = damage
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if patch.EstimatedCasualties != nil {
		if *patch.EstimatedCasualties < 0 {
			return nil, errs.Validationf("estimated casualties must not be negative")
		}
		updates["estimated_casualties"] = *patch.EstimatedCasualties
	}
	if patch.ResponseTimeMinutes != nil {
		if *patch.ResponseTimeMinutes < 0 {
			return nil, errs.Validationf("response time must not be negative")
		}
		updates["response_time_minutes"] = *patch.ResponseTimeMinutes
	}
	if patch.AssignedPersonnel != nil {
		assigned, err := parseObjectIDs(patch.AssignedPersonnel)
		if err != nil {
			return nil, err
		}
		updates["assigned_personnel"] = assigned
	}

	if len(updates) == 0 {
		return nil, errs.Validationf("no updatable fields supplied")
	}

	if err := s.reportRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.reportRepo.GetByID(ctx, id)
}

func (s *reportService) DeleteReport(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.reportRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.reportRepo.Delete(ctx, id)
}

func (s *reportService) ListReports(ctx context.Context, filter *interfaces.ReportFilter, params *utils.PaginationParams) ([]*models.FireReport, int64, error) {
	return s.reportRepo.List(ctx, filter, params)
}

// ComputeStats aggregates matching reports into fixed status, priority and
// incident-type buckets. Results are cached briefly; staleness is bounded by
// the TTL, so writes never invalidate.
func (s *reportService) ComputeStats(ctx context.Context, filter *models.ReportStatsFilter) (*models.ReportStats, error) {
	key := statsCacheKey(filter)

	if s.cache != nil {
		var cached models.ReportStats
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !cache.IsMiss(err) {
			s.logger.WithError(err).Warn("Stats cache read failed")
		}
	}

	stats, err := s.reportRepo.CountBuckets(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "aggregating report stats")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats, utils.StatsCacheTTL); err != nil {
			s.logger.WithError(err).Warn("Stats cache write failed")
		}
	}

	return stats, nil
}

// validateCreateReport enforces the documented order: required fields first,
// then coordinate ranges, then identifier syntax.
func validateCreateReport(request *models.CreateReportRequest) error {
	switch {
	case request.IncidentType == "":
		return errs.Validationf("incident_type is required")
	case request.IncidentName == "":
		return errs.Validationf("incident_name is required")
	case request.Location == nil:
		return errs.Validationf("location is required")
	case request.Station.IsZero():
		return errs.Validationf("station is required")
	case request.UserID == "":
		return errs.Validationf("user_id is required")
	}

	coords := request.Location.Coordinates
	if !utils.IsValidCoordinates(coords.Latitude, coords.Longitude) {
		return errs.Validationf("coordinates out of range: latitude %v, longitude %v", coords.Latitude, coords.Longitude)
	}

	if !utils.IsValidObjectID(request.UserID) {
		return errs.Validationf("user_id %q is not a valid identifier", request.UserID)
	}

	if !models.IncidentType(request.IncidentType).Valid() {
		return errs.Validationf("invalid incident type %q", request.IncidentType)
	}
	if request.Priority != "" && !models.ReportPriority(request.Priority).Valid() {
		return errs.Validationf("invalid priority %q", request.Priority)
	}
	if request.EstimatedDamage != "" && !models.DamageEstimate(request.EstimatedDamage).Valid() {
		return errs.Validationf("invalid estimated damage %q", request.EstimatedDamage)
	}
	if request.EstimatedCasualties != nil && *request.EstimatedCasualties < 0 {
		return errs.Validationf("estimated casualties must not be negative")
	}

	return nil
}

// resolveReporter discriminates the overloaded user_id by probing the user
// collection first, then fire personnel.
func (s *reportService) resolveReporter(ctx context.Context, userID string) (*models.Reporter, *models.User, *models.FirePersonnel, error) {
	id, _ := primitive.ObjectIDFromHex(userID)

	user, err := s.userRepo.GetByID(ctx, id)
	if err == nil {
		return &models.Reporter{Kind: models.ReporterTypeUser, ID: user.ID}, user, nil, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, nil, nil, errs.Wrap(err, "probing user collection")
	}

	personnel, err := s.personnelRepo.GetByID(ctx, id)
	if err == nil {
		return &models.Reporter{Kind: models.ReporterTypePersonnel, ID: personnel.ID}, nil, personnel, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, nil, nil, errs.Wrap(err, "probing personnel collection")
	}

	return nil, nil, nil, errs.NotFoundf("reporter %s not found in either identity collection", userID)
}

// resolveStation maps a station reference onto an existing station. A
// descriptor is matched by place id, then exact coordinates, then name
// substring; the first hit wins. Reports never create stations.
func (s *reportService) resolveStation(ctx context.Context, ref models.StationRef) (*models.Station, error) {
	if ref.ID != "" {
		id, err := primitive.ObjectIDFromHex(ref.ID)
		if err != nil {
			return nil, errs.Validationf("station id %q is not a valid identifier", ref.ID)
		}
		station, err := s.stationRepo.GetByID(ctx, id)
		if err != nil {
			return nil, errs.NotFoundf("station %s", ref.ID)
		}
		return station, nil
	}

	desc := ref.Descriptor

	if desc.PlaceID != "" {
		station, err := s.stationRepo.GetByPlaceID(ctx, desc.PlaceID)
		if err == nil {
			return station, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
	}

	if desc.Latitude != nil && desc.Longitude != nil {
		station, err := s.stationRepo.GetByCoordinates(ctx, *desc.Latitude, *desc.Longitude)
		if err == nil {
			return station, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
	}

	if desc.Name != "" {
		station, err := s.stationRepo.GetByNameLike(ctx, desc.Name)
		if err == nil {
			return station, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
	}

	return nil, errs.NotFoundf("station not found; it must already exist in the system")
}

// enrichLocation fills in a human-readable location name via reverse
// geocoding when the caller left it blank. Failures are logged and ignored.
func (s *reportService) enrichLocation(ctx context.Context, location *models.IncidentLocation) {
	if s.geocoder == nil || location.LocationName != "" {
		return
	}

	result, err := s.geocoder.ReverseGeocode(ctx, location.Coordinates.Latitude, location.Coordinates.Longitude)
	if err != nil {
		s.logger.WithError(err).Debug("Reverse geocoding failed")
		return
	}
	location.LocationName = result.Address
}

// alertStationPersonnel notifies the resolved station's crew about a new
// report. Alerting is best effort and never fails the create.
func (s *reportService) alertStationPersonnel(ctx context.Context, report *models.FireReport, station *models.Station) {
	if s.smsProvider == nil {
		return
	}

	personnel, err := s.personnelRepo.GetByStation(ctx, station.ID)
	if err != nil {
		s.logger.WithReportID(report.ID).WithError(err).Warn("Failed to load station personnel for alerting")
		return
	}

	var requests []*sms.Request
	for _, p := range personnel {
		if p.Phone == "" {
			continue
		}
		requests = append(requests, &sms.Request{
			To: p.Phone,
			Message: fmt.Sprintf("New %s incident %q reported near %s. Priority: %s.",
				report.IncidentType, report.IncidentName, station.Name, report.Priority),
			Type: "alert",
		})
	}
	if len(requests) == 0 {
		return
	}

	if _, err := s.smsProvider.SendBulkSMS(ctx, requests); err != nil {
		s.logger.WithReportID(report.ID).WithError(err).Warn("Failed to send personnel alerts")
	}
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, hex := range hexes {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, errs.Validationf("invalid personnel id %q", hex)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func statsCacheKey(filter *models.ReportStatsFilter) string {
	station, from, to := "all", "min", "max"
	if filter != nil {
		if filter.StationID != nil {
			station = filter.StationID.Hex()
		}
		if filter.From != nil {
			from = filter.From.UTC().Format(time.RFC3339)
		}
		if filter.To != nil {
			to = filter.To.UTC().Format(time.RFC3339)
		}
	}
	return fmt.Sprintf("reports:stats:%s:%s:%s", station, from, to)
}
