package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/repositories/interfaces"
	"firewatch/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeReportRepo struct {
	reports map[primitive.ObjectID]*models.FireReport
	stats   *models.ReportStats
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[primitive.ObjectID]*models.FireReport{}}
}

func (r *fakeReportRepo) Create(ctx context.Context, report *models.FireReport) error {
	report.ID = primitive.NewObjectID()
	copied := *report
	r.reports[report.ID] = &copied
	return nil
}

func (r *fakeReportRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FireReport, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, errs.NotFoundf("fire report %s", id.Hex())
	}
	copied := *report
	return &copied, nil
}

func (r *fakeReportRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	report, ok := r.reports[id]
	if !ok {
		return errs.NotFoundf("fire report %s", id.Hex())
	}
	if status, ok := updates["status"].(models.ReportStatus); ok {
		report.Status = status
	}
	if resolvedAt, ok := updates["resolved_at"].(time.Time); ok {
		report.ResolvedAt = &resolvedAt
	}
	if priority, ok := updates["priority"].(models.ReportPriority); ok {
		report.Priority = priority
	}
	return nil
}

func (r *fakeReportRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.reports, id)
	return nil
}

func (r *fakeReportRepo) List(ctx context.Context, filter *interfaces.ReportFilter, params *utils.PaginationParams) ([]*models.FireReport, int64, error) {
	var out []*models.FireReport
	for _, report := range r.reports {
		out = append(out, report)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReportRepo) CountBuckets(ctx context.Context, filter *models.ReportStatsFilter) (*models.ReportStats, error) {
	if r.stats != nil {
		return r.stats, nil
	}
	return models.NewReportStats(), nil
}

type fakeStationRepo struct {
	stations []*models.Station
}

func (r *fakeStationRepo) Create(ctx context.Context, station *models.Station) error {
	station.ID = primitive.NewObjectID()
	r.stations = append(r.stations, station)
	return nil
}

func (r *fakeStationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Station, error) {
	for _, s := range r.stations {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errs.NotFoundf("station %s", id.Hex())
}

func (r *fakeStationRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeStationRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (r *fakeStationRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Station, int64, error) {
	return r.stations, int64(len(r.stations)), nil
}

func (r *fakeStationRepo) GetByPlaceID(ctx context.Context, placeID string) (*models.Station, error) {
	for _, s := range r.stations {
		if s.PlaceID != "" && s.PlaceID == placeID {
			return s, nil
		}
	}
	return nil, errs.NotFoundf("station with place id %q", placeID)
}

func (r *fakeStationRepo) GetByCoordinates(ctx context.Context, lat, lng float64) (*models.Station, error) {
	for _, s := range r.stations {
		if s.Latitude != nil && s.Longitude != nil && *s.Latitude == lat && *s.Longitude == lng {
			return s, nil
		}
	}
	return nil, errs.NotFoundf("station at (%v, %v)", lat, lng)
}

func (r *fakeStationRepo) GetByNameLike(ctx context.Context, name string) (*models.Station, error) {
	for _, s := range r.stations {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(name)) {
			return s, nil
		}
	}
	return nil, errs.NotFoundf("station named like %q", name)
}

func (r *fakeStationRepo) GetByCallSign(ctx context.Context, callSign string) (*models.Station, error) {
	for _, s := range r.stations {
		if s.CallSign == callSign {
			return s, nil
		}
	}
	return nil, errs.NotFoundf("station with call sign %q", callSign)
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errs.NotFoundf("user %s", id.Hex())
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errs.NotFoundf("user with email %q", email)
}

func (r *fakeUserRepo) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, errs.NotFoundf("user with phone %q", phone)
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	return nil, 0, nil
}

type fakePersonnelRepo struct {
	personnel map[primitive.ObjectID]*models.FirePersonnel
}

func (r *fakePersonnelRepo) Create(ctx context.Context, p *models.FirePersonnel) error {
	p.ID = primitive.NewObjectID()
	r.personnel[p.ID] = p
	return nil
}

func (r *fakePersonnelRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FirePersonnel, error) {
	p, ok := r.personnel[id]
	if !ok {
		return nil, errs.NotFoundf("personnel %s", id.Hex())
	}
	return p, nil
}

func (r *fakePersonnelRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.FirePersonnel, error) {
	var out []*models.FirePersonnel
	for _, id := range ids {
		if p, ok := r.personnel[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePersonnelRepo) GetByStation(ctx context.Context, stationID primitive.ObjectID) ([]*models.FirePersonnel, error) {
	var out []*models.FirePersonnel
	for _, p := range r.personnel {
		if p.StationID != nil && *p.StationID == stationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePersonnelRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakePersonnelRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (r *fakePersonnelRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.FirePersonnel, int64, error) {
	return nil, 0, nil
}

type reportFixture struct {
	svc       *reportService
	reports   *fakeReportRepo
	stations  *fakeStationRepo
	users     *fakeUserRepo
	personnel *fakePersonnelRepo
	station   *models.Station
	user      *models.User
	now       time.Time
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	lat, lng := 40.7128, -74.006
	station := &models.Station{
		ID:        primitive.NewObjectID(),
		Name:      "Central Fire Station",
		PlaceID:   "place-central",
		Latitude:  &lat,
		Longitude: &lng,
	}
	user := &models.User{ID: primitive.NewObjectID(), FirstName: "Dana", LastName: "Reyes"}

	f := &reportFixture{
		reports:   newFakeReportRepo(),
		stations:  &fakeStationRepo{stations: []*models.Station{station}},
		users:     &fakeUserRepo{users: map[primitive.ObjectID]*models.User{user.ID: user}},
		personnel: &fakePersonnelRepo{personnel: map[primitive.ObjectID]*models.FirePersonnel{}},
		station:   station,
		user:      user,
		now:       time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
	}

	f.svc = NewReportService(f.reports, f.stations, f.users, f.personnel, nil, nil, nil, testLogger(t)).(*reportService)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func validCreateRequest(f *reportFixture) *models.CreateReportRequest {
	return &models.CreateReportRequest{
		IncidentType: "fire",
		IncidentName: "Warehouse fire",
		Location: &models.IncidentLocation{
			Coordinates: models.Coordinates{Latitude: 40.7, Longitude: -74.0},
		},
		Station: models.StationRef{ID: f.station.ID.Hex()},
		UserID:  f.user.ID.Hex(),
	}
}

func TestCreateReportDefaultsAndExpansion(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.svc.CreateReport(context.Background(), validCreateRequest(f))
	require.NoError(t, err)

	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, models.ReportPriorityHigh, report.Priority)
	assert.Equal(t, models.DamageModerate, report.EstimatedDamage)
	assert.Equal(t, f.now, report.ReportedAt)
	assert.Equal(t, f.station.ID, report.StationID)
	assert.Equal(t, models.ReporterTypeUser, report.Reporter.Kind)
	assert.Equal(t, f.user.ID, report.Reporter.ID)

	require.NotNil(t, report.Station)
	assert.Equal(t, f.station.ID, report.Station.ID)
	require.NotNil(t, report.ReporterUser)
	assert.Equal(t, f.user.ID, report.ReporterUser.ID)
	assert.Nil(t, report.ReporterPersonnel)
}

func TestCreateReportValidationOrder(t *testing.T) {
	f := newReportFixture(t)

	// Missing required field reported before the bad coordinates.
	request := validCreateRequest(f)
	request.IncidentName = ""
	request.Location.Coordinates.Latitude = 200

	_, err := f.svc.CreateReport(context.Background(), request)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Contains(t, err.Error(), "incident_name")

	// Bad coordinates reported before the bad user id.
	request = validCreateRequest(f)
	request.Location.Coordinates.Longitude = -181
	request.UserID = "not-an-id"

	_, err = f.svc.CreateReport(context.Background(), request)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Contains(t, err.Error(), "coordinates")

	request = validCreateRequest(f)
	request.UserID = "not-an-id"

	_, err = f.svc.CreateReport(context.Background(), request)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Contains(t, err.Error(), "user_id")
}

func TestCreateReportBoundaryCoordinatesAccepted(t *testing.T) {
	f := newReportFixture(t)

	request := validCreateRequest(f)
	request.Location.Coordinates = models.Coordinates{Latitude: -90, Longitude: 180}

	_, err := f.svc.CreateReport(context.Background(), request)
	require.NoError(t, err)
}

func TestCreateReportResolvesPersonnelReporter(t *testing.T) {
	f := newReportFixture(t)

	firefighter := &models.FirePersonnel{ID: primitive.NewObjectID(), FirstName: "Sam", LastName: "Okafor", Phone: "+15550001111"}
	f.personnel.personnel[firefighter.ID] = firefighter

	request := validCreateRequest(f)
	request.UserID = firefighter.ID.Hex()

	report, err := f.svc.CreateReport(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, models.ReporterTypePersonnel, report.Reporter.Kind)
	assert.Equal(t, firefighter.ID, report.Reporter.ID)
	require.NotNil(t, report.ReporterPersonnel)
	assert.Nil(t, report.ReporterUser)
}

func TestCreateReportUnknownReporter(t *testing.T) {
	f := newReportFixture(t)

	request := validCreateRequest(f)
	request.UserID = primitive.NewObjectID().Hex()

	_, err := f.svc.CreateReport(context.Background(), request)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Contains(t, err.Error(), "identity collection")
}

func TestCreateReportStationDescriptorPriority(t *testing.T) {
	f := newReportFixture(t)

	// A second station that matches the descriptor's name but not its place
	// id; the place id match must win.
	other := &models.Station{ID: primitive.NewObjectID(), Name: "Central Annex"}
	f.stations.stations = append(f.stations.stations, other)

	lat, lng := 1.0, 2.0
	request := validCreateRequest(f)
	request.Station = models.StationRef{Descriptor: &models.StationDescriptor{
		Name:      "central",
		PlaceID:   "place-central",
		Latitude:  &lat,
		Longitude: &lng,
	}}

	report, err := f.svc.CreateReport(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, f.station.ID, report.StationID)
}

func TestCreateReportStationByCoordinates(t *testing.T) {
	f := newReportFixture(t)

	lat, lng := 40.7128, -74.006
	request := validCreateRequest(f)
	request.Station = models.StationRef{Descriptor: &models.StationDescriptor{
		Latitude:  &lat,
		Longitude: &lng,
	}}

	report, err := f.svc.CreateReport(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, f.station.ID, report.StationID)
}

func TestCreateReportStationByNameSubstring(t *testing.T) {
	f := newReportFixture(t)

	request := validCreateRequest(f)
	request.Station = models.StationRef{Descriptor: &models.StationDescriptor{Name: "CENTRAL"}}

	report, err := f.svc.CreateReport(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, f.station.ID, report.StationID)
}

func TestCreateReportStationNeverCreated(t *testing.T) {
	f := newReportFixture(t)

	request := validCreateRequest(f)
	request.Station = models.StationRef{Descriptor: &models.StationDescriptor{Name: "no such station"}}

	before := len(f.stations.stations)
	_, err := f.svc.CreateReport(context.Background(), request)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Contains(t, err.Error(), "must already exist")
	assert.Len(t, f.stations.stations, before)
}

func TestCreateReportInvalidStationID(t *testing.T) {
	f := newReportFixture(t)

	request := validCreateRequest(f)
	request.Station = models.StationRef{ID: "zzz"}

	_, err := f.svc.CreateReport(context.Background(), request)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCreateReportInvalidEnumRejected(t *testing.T) {
	f := newReportFixture(t)

	request := validCreateRequest(f)
	request.Priority = "urgent"

	_, err := f.svc.CreateReport(context.Background(), request)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpdateReportStampsResolvedAt(t *testing.T) {
	f := newReportFixture(t)

	created, err := f.svc.CreateReport(context.Background(), validCreateRequest(f))
	require.NoError(t, err)

	status := string(models.ReportStatusResolved)
	updated, err := f.svc.UpdateReport(context.Background(), created.ID, &models.UpdateReportRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.ReportStatusResolved, updated.Status)
	require.NotNil(t, updated.ResolvedAt)
	assert.Equal(t, f.now, *updated.ResolvedAt)
}

func TestUpdateReportKeepsExplicitResolvedAt(t *testing.T) {
	f := newReportFixture(t)

	created, err := f.svc.CreateReport(context.Background(), validCreateRequest(f))
	require.NoError(t, err)

	status := string(models.ReportStatusResolved)
	explicit := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	updated, err := f.svc.UpdateReport(context.Background(), created.ID, &models.UpdateReportRequest{
		Status:     &status,
		ResolvedAt: &explicit,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.ResolvedAt)
	assert.Equal(t, explicit, *updated.ResolvedAt)
}

func TestUpdateReportRejectsInvalidStatus(t *testing.T) {
	f := newReportFixture(t)

	created, err := f.svc.CreateReport(context.Background(), validCreateRequest(f))
	require.NoError(t, err)

	status := "done"
	_, err = f.svc.UpdateReport(context.Background(), created.ID, &models.UpdateReportRequest{Status: &status})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpdateReportNotFound(t *testing.T) {
	f := newReportFixture(t)

	status := string(models.ReportStatusClosed)
	_, err := f.svc.UpdateReport(context.Background(), primitive.NewObjectID(), &models.UpdateReportRequest{Status: &status})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestComputeStatsZeroBuckets(t *testing.T) {
	f := newReportFixture(t)

	stats, err := f.svc.ComputeStats(context.Background(), &models.ReportStatsFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.Total)
	assert.Len(t, stats.ByStatus, 4)
	assert.Len(t, stats.ByPriority, 3)
	assert.Len(t, stats.ByType, 4)
	for _, count := range stats.ByStatus {
		assert.Equal(t, int64(0), count)
	}
}
