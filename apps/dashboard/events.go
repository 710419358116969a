package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
)

// syncEvents reloads every event into the local mirror.
func (cli *commandLine) syncEvents(ctx context.Context) ([]event.Event, error) {
	ticket := cli.guard.Begin("events")
	events, err := cli.events.List(ctx)
	if err != nil {
		return nil, err
	}
	if err = cli.guard.Commit(ticket, func() { cli.state.SetEvents(events) }); err != nil {
		return nil, err
	}
	return events, nil
}

// syncEvent reloads one event (with its days) into the local mirror.
func (cli *commandLine) syncEvent(ctx context.Context, id string) (event.Event, error) {
	ticket := cli.guard.Begin("event:" + id)
	ev, err := cli.events.Get(ctx, id)
	if err != nil {
		return event.Event{}, err
	}
	if err = cli.guard.Commit(ticket, func() { cli.state.PutEvent(ev) }); err != nil {
		return event.Event{}, err
	}
	return ev, nil
}

// localEvent returns the mirrored event, loading it when it is not known yet.
func (cli *commandLine) localEvent(ctx context.Context, id string) (event.Event, error) {
	if ev, ok := cli.state.Event(id); ok {
		return ev, nil
	}
	return cli.syncEvent(ctx, id)
}

func (cli *commandLine) listEvents() error {
	events, err := cli.syncEvents(context.Background())
	if err != nil {
		return err
	}
	w := cli.table()
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tCAPACITY\tMIN %\tDAYS")
	for _, ev := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n", ev.ID, ev.Title, ev.Status, ev.Capacity, ev.MinAttendancePercentage, len(ev.Days))
	}
	return w.Flush()
}

func (cli *commandLine) printEvent(ev event.Event) {
	fmt.Fprintf(cli.out, "%s  %s [%s]\n", ev.ID, ev.Title, ev.Status)
	if ev.Location != "" {
		fmt.Fprintf(cli.out, "  venue: %s\n", ev.Location)
	}
	fmt.Fprintf(cli.out, "  capacity: %d  workload: %dh  min attendance: %d%%\n", ev.Capacity, ev.WorkloadHours, ev.MinAttendancePercentage)
	if ev.StartDate != "" || ev.EndDate != "" {
		fmt.Fprintf(cli.out, "  dates: %s - %s\n", ev.StartDate, ev.EndDate)
	}
	for _, d := range ev.Days {
		fmt.Fprintf(cli.out, "  day %s: %s %s-%s %s (capacity %d)\n", d.ID, d.Date, d.StartTime, d.EndTime, d.Room, d.Capacity)
	}
}

type eventFlags struct {
	title, description, venue, start, end, status, tracks, speakers *string
	capacity, workload, min                                         *int
}

func newEventFlags(fs *flag.FlagSet) eventFlags {
	return eventFlags{
		title:       fs.String("title", "", "Event title."),
		description: fs.String("description", "", "Event description."),
		venue:       fs.String("venue", "", "Where the event takes place."),
		start:       fs.String("start", "", "Start date (YYYY-MM-DD)."),
		end:         fs.String("end", "", "End date (YYYY-MM-DD)."),
		status:      fs.String("status", "", "draft, published or completed."),
		tracks:      fs.String("tracks", "", "Comma separated tracks."),
		speakers:    fs.String("speakers", "", "Comma separated speakers."),
		capacity:    fs.Int("capacity", 0, "Total capacity."),
		workload:    fs.Int("workload", 0, "Workload in hours."),
		min:         fs.Int("min", 0, "Minimum attendance percentage for a certificate."),
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (cli *commandLine) eventCmd(args []string) error {
	ctx := context.Background()
	action, rest := subcommand(args)

	fs := newFlagSet("event "+action, cli.out)
	id := fs.String("id", "", "Event id.")

	switch action {
	case "create":
		f := newEventFlags(fs)
		if err := parse(fs, rest, f.title); err != nil {
			return err
		}
		ev, err := cli.events.Create(ctx, event.NewEvent{
			Title:                   *f.title,
			Description:             *f.description,
			Location:                *f.venue,
			Capacity:                *f.capacity,
			WorkloadHours:           *f.workload,
			MinAttendancePercentage: *f.min,
			StartDate:               *f.start,
			EndDate:                 *f.end,
			Status:                  event.Status(*f.status),
			Tracks:                  splitList(*f.tracks),
			Speakers:                splitList(*f.speakers),
		})
		if ev.ID != "" {
			cli.state.PutEvent(ev)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "event %s created\n", ev.ID)
		return nil

	case "update":
		f := newEventFlags(fs)
		if err := parse(fs, rest, id); err != nil {
			return err
		}
		current, err := cli.syncEvent(ctx, *id)
		if err != nil {
			return err
		}
		ev, err := cli.events.Update(ctx, current, event.UpdateEvent{
			Title:                   *f.title,
			Description:             *f.description,
			Location:                *f.venue,
			Capacity:                *f.capacity,
			WorkloadHours:           *f.workload,
			MinAttendancePercentage: *f.min,
			StartDate:               *f.start,
			EndDate:                 *f.end,
			Status:                  event.Status(*f.status),
			Tracks:                  splitList(*f.tracks),
			Speakers:                splitList(*f.speakers),
		})
		if err != nil {
			return err
		}
		cli.state.PutEvent(ev)
		fmt.Fprintf(cli.out, "event %s updated\n", ev.ID)
		return nil

	case "show":
		if err := parse(fs, rest, id); err != nil {
			return err
		}
		ev, err := cli.syncEvent(ctx, *id)
		if err != nil {
			return err
		}
		cli.printEvent(ev)
		return nil

	case "delete":
		if err := parse(fs, rest, id); err != nil {
			return err
		}
		if err := cli.events.Delete(ctx, *id); err != nil {
			return err
		}
		cli.state.DeleteEvent(*id)
		fmt.Fprintf(cli.out, "event %s deleted\n", *id)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) dayCmd(args []string) error {
	ctx := context.Background()
	action, rest := subcommand(args)

	fs := newFlagSet("day "+action, cli.out)
	eventID := fs.String("event", "", "Event id.")
	id := fs.String("id", "", "Day id.")
	date := fs.String("date", "", "Date (YYYY-MM-DD).")
	start := fs.String("start", "", "Start time (HH:MM).")
	end := fs.String("end", "", "End time (HH:MM).")
	room := fs.String("room", "", "Room.")
	sessionType := fs.String("type", "", "Session type.")
	capacity := fs.Int("capacity", 0, "Capacity, at most the event capacity.")

	switch action {
	case "add":
		if err := parse(fs, rest, eventID); err != nil {
			return err
		}
		ev, err := cli.localEvent(ctx, *eventID)
		if err != nil {
			return err
		}
		nd := event.NewDay{Date: *date, StartTime: *start, EndTime: *end, Room: *room, Capacity: *capacity, SessionType: *sessionType}
		if nd.Capacity == 0 {
			nd.Capacity = ev.Capacity
		}
		day, err := cli.events.CreateDay(ctx, ev, nd)
		if err != nil {
			return err
		}
		ev.Days = append(ev.Days, day)
		cli.state.PutEvent(ev)
		fmt.Fprintf(cli.out, "day %s added to event %s\n", day.ID, ev.ID)
		return nil

	case "update":
		if err := parse(fs, rest, eventID, id); err != nil {
			return err
		}
		ev, err := cli.syncEvent(ctx, *eventID)
		if err != nil {
			return err
		}
		day, err := cli.events.UpdateDay(ctx, ev, *id, event.UpdateDay{
			Date: *date, StartTime: *start, EndTime: *end, Room: *room, Capacity: *capacity, SessionType: *sessionType,
		})
		if err != nil {
			return err
		}
		for i := range ev.Days {
			if ev.Days[i].ID == day.ID {
				ev.Days[i] = day
			}
		}
		cli.state.PutEvent(ev)
		fmt.Fprintf(cli.out, "day %s updated\n", day.ID)
		return nil

	case "delete":
		if err := parse(fs, rest, eventID, id); err != nil {
			return err
		}
		if err := cli.events.DeleteDay(ctx, *eventID, *id); err != nil {
			return err
		}
		if _, err := cli.syncEvent(ctx, *eventID); err != nil && !core.IsNotFound(err) {
			cli.logger.Warn("reloading event "+*eventID, err)
		}
		fmt.Fprintf(cli.out, "day %s deleted\n", *id)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}
