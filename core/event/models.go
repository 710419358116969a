package event

import (
	"fmt"

	"github.com/SotorivaXL/academic-event-manag-main/core"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusCompleted Status = "completed"
)

// Defaults applied to new events when the field is left empty.
const (
	DefaultCapacity                = 100
	DefaultWorkloadHours           = 4
	DefaultMinAttendancePercentage = 75
	DefaultStatus                  = StatusPublished
)

// ParseStatus maps unknown backend statuses to draft.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusPublished, StatusCompleted:
		return Status(s)
	default:
		return StatusDraft
	}
}

type Event struct {
	ID                      string   `json:"id"`
	Title                   string   `json:"title"`
	Description             string   `json:"description"`
	Location                string   `json:"location"`
	Capacity                int      `json:"capacity"`
	WorkloadHours           int      `json:"workload_hours"`
	MinAttendancePercentage int      `json:"min_attendance_percentage"`
	StartDate               string   `json:"start_date,omitempty"`
	EndDate                 string   `json:"end_date,omitempty"`
	Status                  Status   `json:"status"`
	Tracks                  []string `json:"tracks,omitempty"`
	Speakers                []string `json:"speakers,omitempty"`
	Days                    []Day    `json:"days"`
}

// IsActive reports whether check-ins and certificates are open for the event.
func (e Event) IsActive() bool {
	return e.Status == StatusPublished || e.Status == StatusCompleted
}

func (e Event) Day(id string) (Day, bool) {
	for _, d := range e.Days {
		if d.ID == id {
			return d, true
		}
	}
	return Day{}, false
}

// Day is a session of an event: a scheduled block with its own room and capacity.
type Day struct {
	ID          string `json:"id"`
	EventID     string `json:"event_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Room        string `json:"room"`
	Capacity    int    `json:"capacity"`
	SessionType string `json:"session_type,omitempty"`
}

// NewEvent contains information needed to create a new Event, optionally with its days.
type NewEvent struct {
	Title                   string   `json:"title" validate:"required"`
	Description             string   `json:"description"`
	Location                string   `json:"venue"`
	Capacity                int      `json:"capacity_total" validate:"gte=0"`
	WorkloadHours           int      `json:"workload_hours" validate:"gte=0"`
	MinAttendancePercentage int      `json:"min_presence_pct" validate:"gte=0,lte=100"`
	StartDate               string   `json:"start_at,omitempty"`
	EndDate                 string   `json:"end_at,omitempty"`
	Status                  Status   `json:"status" validate:"omitempty,oneof=draft published completed"`
	Tracks                  []string `json:"tracks,omitempty"`
	Speakers                []string `json:"speakers,omitempty"`
	Days                    []NewDay `json:"-" validate:"dive"`
}

// Clean trims text fields and fills in defaults for empty ones.
func (ne *NewEvent) Clean() {
	ne.Title = core.CleanString(ne.Title)
	ne.Description = core.CleanString(ne.Description)
	ne.Location = core.CleanString(ne.Location)
	if ne.Capacity == 0 {
		ne.Capacity = DefaultCapacity
	}
	if ne.WorkloadHours == 0 {
		ne.WorkloadHours = DefaultWorkloadHours
	}
	if ne.MinAttendancePercentage == 0 {
		ne.MinAttendancePercentage = DefaultMinAttendancePercentage
	}
	if ne.Status == "" {
		ne.Status = DefaultStatus
	}
	for i := range ne.Days {
		ne.Days[i].Clean(ne.StartDate, ne.Capacity)
	}
}

// UpdateEvent defines what information may be provided to modify an existing Event.
// Zero values are left unchanged.
type UpdateEvent struct {
	Title                   string   `json:"title,omitempty"`
	Description             string   `json:"description,omitempty"`
	Location                string   `json:"venue,omitempty"`
	Capacity                int      `json:"capacity_total,omitempty" validate:"gte=0"`
	WorkloadHours           int      `json:"workload_hours,omitempty" validate:"gte=0"`
	MinAttendancePercentage int      `json:"min_presence_pct,omitempty" validate:"gte=0,lte=100"`
	StartDate               string   `json:"start_at,omitempty"`
	EndDate                 string   `json:"end_at,omitempty"`
	Status                  Status   `json:"status,omitempty" validate:"omitempty,oneof=draft published completed"`
	Tracks                  []string `json:"tracks,omitempty"`
	Speakers                []string `json:"speakers,omitempty"`
	Days                    []NewDay `json:"-" validate:"dive"` // only used to check capacities
}

type NewDay struct {
	Date        string `json:"date" validate:"required"`
	StartTime   string `json:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	Room        string `json:"room,omitempty"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
	SessionType string `json:"session_type,omitempty"`
}

// Clean fills a day declared along with its event: the event start date, 00:00 times and the event
// capacity stand in for missing values.
func (nd *NewDay) Clean(eventStart string, eventCapacity int) {
	nd.Room = core.CleanString(nd.Room)
	if nd.Date == "" {
		nd.Date = eventStart
	}
	if nd.StartTime == "" {
		nd.StartTime = "00:00"
	}
	if nd.EndTime == "" {
		nd.EndTime = "00:00"
	}
	if nd.Capacity == 0 {
		nd.Capacity = eventCapacity
	}
}

// UpdateDay defines what may change on an existing Day. Zero values are left unchanged.
type UpdateDay struct {
	Date        string `json:"date,omitempty"`
	StartTime   string `json:"start_time,omitempty" validate:"omitempty,hhmm"`
	EndTime     string `json:"end_time,omitempty" validate:"omitempty,hhmm"`
	Room        string `json:"room,omitempty"`
	Capacity    int    `json:"capacity,omitempty" validate:"gte=0"`
	SessionType string `json:"session_type,omitempty"`
}

// CheckCapacity enforces capacity(session) <= capacity(event).
func CheckCapacity(eventCapacity int, sessionCapacities ...int) error {
	for _, c := range sessionCapacities {
		if c > eventCapacity {
			return core.NewValidationError(
				fmt.Errorf("session capacity (%d) cannot exceed event capacity (%d)", c, eventCapacity),
				core.FieldError{
					Field: "capacity",
					Error: fmt.Sprintf("session capacity (%d) cannot exceed event capacity (%d)", c, eventCapacity),
				},
			)
		}
	}
	return nil
}

func newDayCapacities(days []NewDay) []int {
	caps := make([]int, len(days))
	for i, d := range days {
		caps[i] = d.Capacity
	}
	return caps
}

func dayCapacities(days []Day) []int {
	caps := make([]int, len(days))
	for i, d := range days {
		caps[i] = d.Capacity
	}
	return caps
}
