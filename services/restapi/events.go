package restapi

import (
	"context"
	"net/http"

	"github.com/SotorivaXL/academic-event-manag-main/core/event"
)

var _ event.Repository = (*Client)(nil)

func eventPath(id string) string {
	return "/events/" + escape(id)
}

func dayPath(eventID, dayID string) string {
	return eventPath(eventID) + "/days/" + escape(dayID)
}

func (c *Client) ListEvents(ctx context.Context) ([]event.Event, error) {
	var res []apiEvent
	if err := c.get(ctx, "/events", nil, &res); err != nil {
		return nil, err
	}
	events := make([]event.Event, len(res))
	for i, a := range res {
		events[i] = a.event()
	}
	return events, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (event.Event, error) {
	var res apiEvent
	if err := c.get(ctx, eventPath(id), nil, &res); err != nil {
		return event.Event{}, err
	}
	return res.event(), nil
}

func (c *Client) CreateEvent(ctx context.Context, ne event.NewEvent) (event.Event, error) {
	var res apiEvent
	if err := c.write(ctx, http.MethodPost, "/events", ne, &res); err != nil {
		return event.Event{}, err
	}
	return res.event(), nil
}

func (c *Client) UpdateEvent(ctx context.Context, id string, ue event.UpdateEvent) (event.Event, error) {
	var res apiEvent
	if err := c.write(ctx, http.MethodPut, eventPath(id), ue, &res); err != nil {
		return event.Event{}, err
	}
	return res.event(), nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.write(ctx, http.MethodDelete, eventPath(id), nil, nil)
}

func (c *Client) ListDays(ctx context.Context, eventID string) ([]event.Day, error) {
	var res []apiEventDay
	if err := c.get(ctx, eventPath(eventID)+"/days", nil, &res); err != nil {
		return nil, err
	}
	days := make([]event.Day, len(res))
	for i, a := range res {
		days[i] = a.day()
	}
	return days, nil
}

func (c *Client) GetDay(ctx context.Context, eventID, dayID string) (event.Day, error) {
	var res apiEventDay
	if err := c.get(ctx, dayPath(eventID, dayID), nil, &res); err != nil {
		return event.Day{}, err
	}
	return res.day(), nil
}

func (c *Client) CreateDay(ctx context.Context, eventID string, nd event.NewDay) (event.Day, error) {
	var res apiEventDay
	if err := c.write(ctx, http.MethodPost, eventPath(eventID)+"/days", nd, &res); err != nil {
		return event.Day{}, err
	}
	return res.day(), nil
}

func (c *Client) UpdateDay(ctx context.Context, eventID, dayID string, ud event.UpdateDay) (event.Day, error) {
	var res apiEventDay
	if err := c.write(ctx, http.MethodPut, dayPath(eventID, dayID), ud, &res); err != nil {
		return event.Day{}, err
	}
	return res.day(), nil
}

func (c *Client) DeleteDay(ctx context.Context, eventID, dayID string) error {
	return c.write(ctx, http.MethodDelete, dayPath(eventID, dayID), nil, nil)
}
