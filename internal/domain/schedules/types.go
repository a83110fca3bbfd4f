package schedules

import "playoh/internal/domain"

type Participant struct {
	Name        string      `json:"name"`
	BookingTime domain.Time `json:"bookingTime"`
}

// Schedule is a bookable slot. CurrentPlayers and SpotsRemaining are computed
// by the backend and must be displayed as received.
type Schedule struct {
	ID               int64         `json:"id"`
	SportID          int64         `json:"sportId"`
	SportName        string        `json:"sportName"`
	SportIconURL     *string       `json:"sportIconUrl"`
	Venue            string        `json:"venue"`
	StartTime        domain.Time   `json:"startTime"`
	EndTime          domain.Time   `json:"endTime"`
	MaxPlayers       int           `json:"maxPlayers"`
	CurrentPlayers   int           `json:"currentPlayers"`
	SpotsRemaining   int           `json:"spotsRemaining"`
	EquipmentDetails *string       `json:"equipmentDetails"`
	Participants     []Participant `json:"participants"`
}

// Joinable reports whether the join action is enabled for s.
func (s Schedule) Joinable() bool {
	return s.SpotsRemaining > 0
}

type CreateRequest struct {
	SportID               int64       `json:"sportId"`
	Venue                 string      `json:"venue"`
	StartDate             string      `json:"startDate"`
	StartTime             string      `json:"startTime"`
	EndTime               string      `json:"endTime"`
	TimezoneOffsetMinutes int         `json:"timezoneOffsetMinutes"`
	MaxPlayers            int         `json:"maxPlayers"`
	EquipmentDetails      *string     `json:"equipmentDetails"`
	Recurrence            *Recurrence `json:"recurrence"`
}

// UpdateRequest carries no recurrence: a series cannot be reshaped after creation.
type UpdateRequest struct {
	Venue                 *string `json:"venue,omitempty"`
	Date                  *string `json:"date,omitempty"`
	StartTime             *string `json:"startTime,omitempty"`
	EndTime               *string `json:"endTime,omitempty"`
	TimezoneOffsetMinutes *int    `json:"timezoneOffsetMinutes,omitempty"`
	MaxPlayers            *int    `json:"maxPlayers,omitempty"`
	EquipmentDetails      *string `json:"equipmentDetails,omitempty"`
}

// Filter is encoded as the schedule list query string.
type Filter struct {
	SportID               *int64  `schema:"sportId,omitempty"`
	Venue                 *string `schema:"venue,omitempty"`
	StartDate             *string `schema:"startDate,omitempty"`
	EndDate               *string `schema:"endDate,omitempty"`
	IncludeParticipants   *bool   `schema:"includeParticipants,omitempty"`
	TimezoneOffsetMinutes *int    `schema:"timezoneOffsetMinutes,omitempty"`
	AvailableOnly         *bool   `schema:"availableOnly,omitempty"`
	ExcludeJoined         *bool   `schema:"excludeJoined,omitempty"`
}
