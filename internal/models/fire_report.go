package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportStatus string
type ReportPriority string
type IncidentType string
type DamageEstimate string
type ReporterType string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusResponding ReportStatus = "responding"
	ReportStatusResolved   ReportStatus = "resolved"
	ReportStatusClosed     ReportStatus = "closed"

	ReportPriorityLow    ReportPriority = "low"
	ReportPriorityMedium ReportPriority = "medium"
	ReportPriorityHigh   ReportPriority = "high"

	IncidentTypeFire    IncidentType = "fire"
	IncidentTypeRescue  IncidentType = "rescue"
	IncidentTypeMedical IncidentType = "medical"
	IncidentTypeOther   IncidentType = "other"

	DamageMinimal   DamageEstimate = "minimal"
	DamageModerate  DamageEstimate = "moderate"
	DamageSevere    DamageEstimate = "severe"
	DamageExtensive DamageEstimate = "extensive"

	ReporterTypeUser      ReporterType = "User"
	ReporterTypePersonnel ReporterType = "FirePersonnel"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

type IncidentLocation struct {
	Coordinates  Coordinates `json:"coordinates" bson:"coordinates"`
	LocationURL  string      `json:"location_url" bson:"location_url,omitempty"`
	LocationName string      `json:"location_name" bson:"location_name,omitempty"`
}

// Reporter is the resolved identity of whoever filed a report. The kind is
// derived once at ingress by probing the user and personnel collections,
// never supplied by the caller.
type Reporter struct {
	Kind ReporterType       `json:"kind" bson:"kind"`
	ID   primitive.ObjectID `json:"id" bson:"id"`
}

type FireReport struct {
	ID                  primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	IncidentType        IncidentType         `json:"incident_type" bson:"incident_type" validate:"required"`
	IncidentName        string               `json:"incident_name" bson:"incident_name" validate:"required"`
	Location            IncidentLocation     `json:"location" bson:"location" validate:"required"`
	StationID           primitive.ObjectID   `json:"station_id" bson:"station_id" validate:"required"`
	Reporter            Reporter             `json:"reporter" bson:"reporter"`
	ReportedAt          time.Time            `json:"reported_at" bson:"reported_at"`
	Status              ReportStatus         `json:"status" bson:"status"`
	Priority            ReportPriority       `json:"priority" bson:"priority"`
	Description         string               `json:"description" bson:"description"`
	EstimatedCasualties int                  `json:"estimated_casualties" bson:"estimated_casualties"`
	EstimatedDamage     DamageEstimate       `json:"estimated_damage" bson:"estimated_damage"`
	AssignedPersonnel   []primitive.ObjectID `json:"assigned_personnel" bson:"assigned_personnel"`
	ResponseTimeMinutes *int                 `json:"response_time_minutes" bson:"response_time_minutes"`
	ResolvedAt          *time.Time           `json:"resolved_at" bson:"resolved_at"`
	Notes               string               `json:"notes" bson:"notes"`
	CreatedAt           time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at" bson:"updated_at"`
}

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusPending, ReportStatusResponding, ReportStatusResolved, ReportStatusClosed:
		return true
	}
	return false
}

func (p ReportPriority) Valid() bool {
	switch p {
	case ReportPriorityLow, ReportPriorityMedium, ReportPriorityHigh:
		return true
	}
	return false
}

func (t IncidentType) Valid() bool {
	switch t {
	case IncidentTypeFire, IncidentTypeRescue, IncidentTypeMedical, IncidentTypeOther:
		return true
	}
	return false
}

func (d DamageEstimate) Valid() bool {
	switch d {
	case DamageMinimal, DamageModerate, DamageSevere, DamageExtensive:
		return true
	}
	return false
}
