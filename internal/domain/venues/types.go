package venues

import "playoh/internal/domain"

// Venue is a read-only projection of the free-text venue names on schedules.
type Venue struct {
	Name               string      `json:"name"`
	ScheduleCount      int         `json:"scheduleCount"`
	AvailableSchedules int         `json:"availableSchedules"`
	Sports             []string    `json:"sports"`
	NextScheduleTime   domain.Time `json:"nextScheduleTime"`
}

type Statistics struct {
	VenueName                  string      `json:"venueName"`
	TotalSchedules             int         `json:"totalSchedules"`
	FutureSchedules            int         `json:"futureSchedules"`
	PastSchedules              int         `json:"pastSchedules"`
	TotalBookings              int         `json:"totalBookings"`
	MostPopularSport           string      `json:"mostPopularSport"`
	FirstScheduleDate          domain.Time `json:"firstScheduleDate"`
	LastScheduleDate           domain.Time `json:"lastScheduleDate"`
	AverageBookingsPerSchedule float64     `json:"averageBookingsPerSchedule"`
}

type RenameRequest struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

type RenameResult struct {
	OldName          string `json:"oldName"`
	NewName          string `json:"newName"`
	SchedulesUpdated int    `json:"schedulesUpdated"`
	Message          string `json:"message"`
}

type MergeRequest struct {
	TargetName    string   `json:"targetName"`
	VenuesToMerge []string `json:"venuesToMerge"`
}

type MergeResult struct {
	TargetName       string   `json:"targetName"`
	MergedVenues     []string `json:"mergedVenues"`
	SchedulesUpdated int      `json:"schedulesUpdated"`
	Message          string   `json:"message"`
}

type DeleteResult struct {
	VenueName        string `json:"venueName"`
	SchedulesDeleted int    `json:"schedulesDeleted"`
	BookingsAffected int    `json:"bookingsAffected"`
	Message          string `json:"message"`
}

type ValidateRequest struct {
	VenueName string `json:"venueName"`
}

type Validation struct {
	VenueName   string   `json:"venueName"`
	IsValid     bool     `json:"isValid"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}
