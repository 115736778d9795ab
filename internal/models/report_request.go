package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StationRef is the closed input variant for the station field of a report:
// either a station id string or an inline descriptor to resolve. Exactly one
// side is set after a successful unmarshal.
type StationRef struct {
	ID         string
	Descriptor *StationDescriptor
}

func (r *StationRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.Descriptor = nil
		return nil
	}

	var desc StationDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return err
	}
	r.ID = ""
	r.Descriptor = &desc
	return nil
}

func (r StationRef) MarshalJSON() ([]byte, error) {
	if r.Descriptor != nil {
		return json.Marshal(r.Descriptor)
	}
	return json.Marshal(r.ID)
}

// IsZero reports whether the field was absent from the request body.
func (r StationRef) IsZero() bool {
	return r.ID == "" && r.Descriptor == nil
}

type CreateReportRequest struct {
	IncidentType string            `json:"incident_type"`
	IncidentName string            `json:"incident_name"`
	Location     *IncidentLocation `json:"location"`
	Station      StationRef        `json:"station"`
	UserID       string            `json:"user_id"`

	Description         string   `json:"description"`
	Priority            string   `json:"priority"`
	EstimatedCasualties *int     `json:"estimated_casualties"`
	EstimatedDamage     string   `json:"estimated_damage"`
	AssignedPersonnel   []string `json:"assigned_personnel"`
	Notes               string   `json:"notes"`
}

// UpdateReportRequest carries a partial update; nil fields are left untouched.
type UpdateReportRequest struct {
	Status              *string    `json:"status"`
	Priority            *string    `json:"priority"`
	Description         *string    `json:"description"`
	EstimatedCasualties *int       `json:"estimated_casualties"`
	EstimatedDamage     *string    `json:"estimated_damage"`
	AssignedPersonnel   []string   `json:"assigned_personnel"`
	ResponseTimeMinutes *int       `json:"response_time_minutes"`
	ResolvedAt          *time.Time `json:"resolved_at"`
	Notes               *string    `json:"notes"`
}

type ReportStatsFilter struct {
	StationID *primitive.ObjectID `json:"station_id"`
	From      *time.Time          `json:"from"`
	To        *time.Time          `json:"to"`
}

// ReportStats always carries every bucket, zeroed when nothing matched.
type ReportStats struct {
	Total      int64                    `json:"total"`
	ByStatus   map[ReportStatus]int64   `json:"by_status"`
	ByPriority map[ReportPriority]int64 `json:"by_priority"`
	ByType     map[IncidentType]int64   `json:"by_type"`
}

func NewReportStats() *ReportStats {
	return &ReportStats{
		ByStatus: map[ReportStatus]int64{
			ReportStatusPending:    0,
			ReportStatusResponding: 0,
			ReportStatusResolved:   0,
			ReportStatusClosed:     0,
		},
		ByPriority: map[ReportPriority]int64{
			ReportPriorityLow:    0,
			ReportPriorityMedium: 0,
			ReportPriorityHigh:   0,
		},
		ByType: map[IncidentType]int64{
			IncidentTypeFire:    0,
			IncidentTypeRescue:  0,
			IncidentTypeMedical: 0,
			IncidentTypeOther:   0,
		},
	}
}

// ExpandedReport is the lookup-expanded representation returned after
// creation: referenced documents are embedded alongside the raw report.
type ExpandedReport struct {
	FireReport
	Station           *Station         `json:"station"`
	ReporterUser      *User            `json:"reporter_user,omitempty"`
	ReporterPersonnel *FirePersonnel   `json:"reporter_personnel,omitempty"`
	Personnel         []*FirePersonnel `json:"personnel,omitempty"`
}
