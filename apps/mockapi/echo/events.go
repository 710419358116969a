package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	inmemdb "github.com/SotorivaXL/academic-event-manag-main/storage/inmem"
)

type (
	eventRequest struct {
		Title          string   `json:"title" validate:"required"`
		Description    string   `json:"description"`
		Venue          string   `json:"venue"`
		CapacityTotal  int      `json:"capacity_total" validate:"gte=0"`
		WorkloadHours  int      `json:"workload_hours" validate:"gte=0"`
		MinPresencePct int      `json:"min_presence_pct" validate:"gte=0,lte=100"`
		StartAt        string   `json:"start_at"`
		EndAt          string   `json:"end_at"`
		Status         string   `json:"status" validate:"omitempty,oneof=draft published completed"`
		Tracks         []string `json:"tracks"`
		Speakers       []string `json:"speakers"`
	}

	// eventPatch only changes the fields that are set.
	eventPatch struct {
		Title          string   `json:"title"`
		Description    string   `json:"description"`
		Venue          string   `json:"venue"`
		CapacityTotal  int      `json:"capacity_total" validate:"gte=0"`
		WorkloadHours  int      `json:"workload_hours" validate:"gte=0"`
		MinPresencePct int      `json:"min_presence_pct" validate:"gte=0,lte=100"`
		StartAt        string   `json:"start_at"`
		EndAt          string   `json:"end_at"`
		Status         string   `json:"status" validate:"omitempty,oneof=draft published completed"`
		Tracks         []string `json:"tracks"`
		Speakers       []string `json:"speakers"`
	}

	dayRequest struct {
		Date        string `json:"date" validate:"required"`
		StartTime   string `json:"start_time" validate:"required,hhmm"`
		EndTime     string `json:"end_time" validate:"required,hhmm"`
		Room        string `json:"room"`
		Capacity    int    `json:"capacity" validate:"gte=0"`
		SessionType string `json:"session_type"`
	}

	dayPatch struct {
		Date        string `json:"date"`
		StartTime   string `json:"start_time" validate:"omitempty,hhmm"`
		EndTime     string `json:"end_time" validate:"omitempty,hhmm"`
		Room        string `json:"room"`
		Capacity    int    `json:"capacity" validate:"gte=0"`
		SessionType string `json:"session_type"`
	}
)

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (api *resourceApi) registerEvents(g *echo.Group) {
	eg := g.Group("/events")
	eg.GET("", api.listEvents)
	eg.POST("", api.createEvent)
	eg.GET("/:id", api.getEvent)
	eg.PUT("/:id", api.updateEvent)
	eg.DELETE("/:id", api.deleteEvent)

	eg.GET("/:id/days", api.listDays)
	eg.POST("/:id/days", api.createDay)
	eg.GET("/:id/days/:dayId", api.getDay)
	eg.PUT("/:id/days/:dayId", api.updateDay)
	eg.DELETE("/:id/days/:dayId", api.deleteDay)
}

func (api *resourceApi) listEvents(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.db.ListEvents())
}

func (api *resourceApi) getEvent(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	ev, err := api.db.GetEvent(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *resourceApi) createEvent(ctx echo.Context) error {
	var data eventRequest
	if err := api.bind(ctx, &data); err != nil {
		return err
	}
	status := data.Status
	if status == "" {
		status = "draft"
	}
	ev := api.db.CreateEvent(inmemdb.Event{
		Title:          data.Title,
		Description:    data.Description,
		Venue:          data.Venue,
		CapacityTotal:  data.CapacityTotal,
		WorkloadHours:  data.WorkloadHours,
		MinPresencePct: data.MinPresencePct,
		StartAt:        optString(data.StartAt),
		EndAt:          optString(data.EndAt),
		Status:         status,
		Tracks:         data.Tracks,
		Speakers:       data.Speakers,
	})
	return created(ctx, ev)
}

func (api *resourceApi) updateEvent(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	var data eventPatch
	if err = api.bind(ctx, &data); err != nil {
		return err
	}
	ev, err := api.db.GetEvent(id)
	if err != nil {
		return err
	}

	ev.Title = orString(data.Title, ev.Title)
	ev.Description = orString(data.Description, ev.Description)
	ev.Venue = orString(data.Venue, ev.Venue)
	ev.CapacityTotal = orInt(data.CapacityTotal, ev.CapacityTotal)
	ev.WorkloadHours = orInt(data.WorkloadHours, ev.WorkloadHours)
	ev.MinPresencePct = orInt(data.MinPresencePct, ev.MinPresencePct)
	ev.Status = orString(data.Status, ev.Status)
	if data.StartAt != "" {
		ev.StartAt = optString(data.StartAt)
	}
	if data.EndAt != "" {
		ev.EndAt = optString(data.EndAt)
	}
	if data.Tracks != nil {
		ev.Tracks = data.Tracks
	}
	if data.Speakers != nil {
		ev.Speakers = data.Speakers
	}

	if data.CapacityTotal != 0 {
		days, err := api.db.ListDays(id)
		if err != nil {
			return err
		}
		for _, d := range days {
			if d.Capacity > ev.CapacityTotal {
				return fieldError("capacity_total", "event capacity cannot be lower than a day capacity")
			}
		}
	}

	ev, err = api.db.UpdateEvent(ev)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *resourceApi) deleteEvent(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.db.DeleteEvent(id); err != nil {
		if err == inmemdb.ErrConflict {
			return errEventHasDays
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *resourceApi) listDays(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	days, err := api.db.ListDays(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, days)
}

func (api *resourceApi) getDay(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	dayID, err := idParam(ctx, "dayId")
	if err != nil {
		return err
	}
	d, err := api.db.GetDay(id, dayID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

// checkDayCapacity refuses a day holding more people than its event.
func checkDayCapacity(ev inmemdb.Event, capacity int) error {
	if ev.CapacityTotal > 0 && capacity > ev.CapacityTotal {
		return fieldError("capacity", "day capacity cannot exceed the event capacity")
	}
	return nil
}

func (api *resourceApi) createDay(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	var data dayRequest
	if err = api.bind(ctx, &data); err != nil {
		return err
	}
	ev, err := api.db.GetEvent(id)
	if err != nil {
		return err
	}
	if err = checkDayCapacity(ev, data.Capacity); err != nil {
		return err
	}

	d, err := api.db.CreateDay(inmemdb.EventDay{
		EventID:     id,
		Date:        data.Date,
		StartTime:   data.StartTime,
		EndTime:     data.EndTime,
		Room:        data.Room,
		Capacity:    data.Capacity,
		SessionType: data.SessionType,
	})
	if err != nil {
		return err
	}
	return created(ctx, d)
}

func (api *resourceApi) updateDay(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	dayID, err := idParam(ctx, "dayId")
	if err != nil {
		return err
	}
	var data dayPatch
	if err = api.bind(ctx, &data); err != nil {
		return err
	}
	ev, err := api.db.GetEvent(id)
	if err != nil {
		return err
	}
	d, err := api.db.GetDay(id, dayID)
	if err != nil {
		return err
	}

	d.Date = orString(data.Date, d.Date)
	d.StartTime = orString(data.StartTime, d.StartTime)
	d.EndTime = orString(data.EndTime, d.EndTime)
	d.Room = orString(data.Room, d.Room)
	d.Capacity = orInt(data.Capacity, d.Capacity)
	d.SessionType = orString(data.SessionType, d.SessionType)
	if err = checkDayCapacity(ev, d.Capacity); err != nil {
		return err
	}

	d, err = api.db.UpdateDay(d)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *resourceApi) deleteDay(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return err
	}
	dayID, err := idParam(ctx, "dayId")
	if err != nil {
		return err
	}
	if err = api.db.DeleteDay(id, dayID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
