package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationRefUnmarshalString(t *testing.T) {
	var request CreateReportRequest
	err := json.Unmarshal([]byte(`{"station": "507f1f77bcf86cd799439011"}`), &request)
	require.NoError(t, err)

	assert.Equal(t, "507f1f77bcf86cd799439011", request.Station.ID)
	assert.Nil(t, request.Station.Descriptor)
	assert.False(t, request.Station.IsZero())
}

func TestStationRefUnmarshalDescriptor(t *testing.T) {
	var request CreateReportRequest
	err := json.Unmarshal([]byte(`{"station": {"name": "Central", "place_id": "p1", "latitude": 40.7, "longitude": -74.0}}`), &request)
	require.NoError(t, err)

	assert.Empty(t, request.Station.ID)
	require.NotNil(t, request.Station.Descriptor)
	assert.Equal(t, "Central", request.Station.Descriptor.Name)
	assert.Equal(t, "p1", request.Station.Descriptor.PlaceID)
	require.NotNil(t, request.Station.Descriptor.Latitude)
	assert.Equal(t, 40.7, *request.Station.Descriptor.Latitude)
}

func TestStationRefUnmarshalRejectsOtherShapes(t *testing.T) {
	var request CreateReportRequest
	err := json.Unmarshal([]byte(`{"station": 42}`), &request)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"station": ["a"]}`), &request)
	assert.Error(t, err)
}

func TestStationRefAbsentIsZero(t *testing.T) {
	var request CreateReportRequest
	err := json.Unmarshal([]byte(`{"incident_type": "fire"}`), &request)
	require.NoError(t, err)
	assert.True(t, request.Station.IsZero())
}

func TestStationRefMarshalRoundTrip(t *testing.T) {
	ref := StationRef{ID: "507f1f77bcf86cd799439011"}
	data, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `"507f1f77bcf86cd799439011"`, string(data))

	name := "Central"
	ref = StationRef{Descriptor: &StationDescriptor{Name: name}}
	data, err = json.Marshal(ref)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"Central"`)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, ReportStatusPending.Valid())
	assert.True(t, ReportStatusClosed.Valid())
	assert.False(t, ReportStatus("done").Valid())

	assert.True(t, ReportPriorityHigh.Valid())
	assert.False(t, ReportPriority("urgent").Valid())

	assert.True(t, IncidentTypeRescue.Valid())
	assert.False(t, IncidentType("flood").Valid())

	assert.True(t, DamageExtensive.Valid())
	assert.False(t, DamageEstimate("total").Valid())
}

func TestNewReportStatsCarriesAllBuckets(t *testing.T) {
	stats := NewReportStats()

	assert.Len(t, stats.ByStatus, 4)
	assert.Len(t, stats.ByPriority, 3)
	assert.Len(t, stats.ByType, 4)
	assert.Equal(t, int64(0), stats.ByStatus[ReportStatusResponding])
	assert.Equal(t, int64(0), stats.ByType[IncidentTypeMedical])
}
