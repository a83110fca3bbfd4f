package bookings

import "playoh/internal/domain"

type Booking struct {
	ID          int64       `json:"id"`
	ScheduleID  int64       `json:"scheduleId"`
	BookingTime domain.Time `json:"bookingTime"`
	UserID      *int64      `json:"userId"`
	GuestName   *string     `json:"guestName"`
	GuestMobile *string     `json:"guestMobile"`
}

// View is a booking with the schedule and sport fields denormalised by the
// backend. IsPast and CanCancel are computed server-side.
type View struct {
	ID                int64       `json:"id"`
	ScheduleID        int64       `json:"scheduleId"`
	BookingTime       domain.Time `json:"bookingTime"`
	SportName         string      `json:"sportName"`
	SportIconURL      *string     `json:"sportIconUrl"`
	Venue             string      `json:"venue"`
	ScheduleStartTime domain.Time `json:"scheduleStartTime"`
	ScheduleEndTime   domain.Time `json:"scheduleEndTime"`
	MaxPlayers        int         `json:"maxPlayers"`
	CurrentPlayers    int         `json:"currentPlayers"`
	EquipmentDetails  *string     `json:"equipmentDetails"`
	IsPast            bool        `json:"isPast"`
	CanCancel         bool        `json:"canCancel"`
}

type JoinRequest struct {
	ScheduleID  int64   `json:"scheduleId"`
	GuestName   *string `json:"guestName,omitempty"`
	GuestMobile *string `json:"guestMobile,omitempty"`
}

// Filter is encoded as the my-bookings query string.
type Filter struct {
	TimezoneOffsetMinutes *int  `schema:"timezoneOffsetMinutes,omitempty"`
	IncludePast           *bool `schema:"includeAll,omitempty"`
}
